package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rpggio/projectadmin/internal/domain/project"
	"github.com/rpggio/projectadmin/internal/view"
	"github.com/rpggio/projectadmin/internal/view/projectform"
)

const (
	fieldName = iota
	fieldDescription
	fieldTeam
	fieldManager
	fieldStatus
	fieldDeadline
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Description", "Team", "Manager", "Status", "Deadline"}

type formPage struct {
	app    *App
	ctrl   *projectform.Controller
	inputs map[int]*textinput.Model
	focus  int
}

func newFormPage(app *App, editing *project.Project) *formPage {
	opts := projectform.Options{
		Navigator:     app,
		Logger:        app.deps.Logger,
		RedirectDelay: app.deps.RedirectDelay,
		OnChange:      app.notify,
	}
	p := &formPage{app: app}
	if editing != nil {
		p.ctrl = projectform.NewEdit(app.deps.API, *editing, opts)
	} else {
		p.ctrl = projectform.New(app.deps.API, opts)
	}

	draft := p.ctrl.Snapshot().Draft
	newInput := func(placeholder, value string, limit int) *textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = limit
		in.Width = 40
		in.SetValue(value)
		return &in
	}
	p.inputs = map[int]*textinput.Model{
		fieldName:        newInput("Project name", draft.Name, 120),
		fieldDescription: newInput("What is this project about?", draft.Description, 500),
		fieldDeadline:    newInput("YYYY-MM-DD", draft.Deadline, len(project.DateLayout)),
	}
	p.setFocus(fieldName)
	return p
}

func (p *formPage) init() tea.Cmd {
	return tea.Batch(textinput.Blink, p.app.run("form.activate", p.ctrl.Activate))
}

func (p *formPage) update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	state := p.ctrl.Snapshot()

	switch key.String() {
	case "esc":
		p.app.Navigate(view.RouteProjects)
		return nil
	case "tab", "down":
		p.setFocus((p.focus + 1) % fieldCount)
		return nil
	case "shift+tab", "up":
		p.setFocus((p.focus + fieldCount - 1) % fieldCount)
		return nil
	case "enter", "ctrl+s":
		if state.Phase != projectform.PhaseIdle {
			return nil
		}
		return p.app.run("form.submit", p.ctrl.Submit)
	case "left", "right":
		if p.cycle(state, key.String() == "left") {
			return nil
		}
	}

	in, ok := p.inputs[p.focus]
	if !ok {
		return nil
	}
	before := in.Value()
	updated, cmd := in.Update(key)
	*in = updated
	if value := in.Value(); value != before {
		switch p.focus {
		case fieldName:
			p.ctrl.SetName(value)
		case fieldDescription:
			p.ctrl.SetDescription(value)
		case fieldDeadline:
			p.ctrl.SetDeadline(value)
		}
	}
	return cmd
}

// cycle moves a select field to its previous or next option. It reports
// whether the focused field is a select.
func (p *formPage) cycle(state projectform.State, back bool) bool {
	switch p.focus {
	case fieldTeam:
		ids := append([]string{""}, teamIDs(state.Teams)...)
		p.ctrl.SetTeam(step(ids, state.Draft.TeamID, back))
	case fieldManager:
		ids := append([]string{""}, managerIDs(state.Managers)...)
		p.ctrl.SetManager(step(ids, state.Draft.ManagerID, back))
	case fieldStatus:
		ids := make([]string, len(project.Statuses))
		for i, st := range project.Statuses {
			ids[i] = string(st)
		}
		p.ctrl.SetStatus(project.Status(step(ids, string(state.Draft.Status), back)))
	default:
		return false
	}
	return true
}

func step(options []string, cur string, back bool) string {
	if len(options) == 0 {
		return cur
	}
	i := 0
	for j, o := range options {
		if o == cur {
			i = j
			break
		}
	}
	if back {
		i = (i + len(options) - 1) % len(options)
	} else {
		i = (i + 1) % len(options)
	}
	return options[i]
}

func (p *formPage) setFocus(i int) {
	for _, in := range p.inputs {
		in.Blur()
	}
	p.focus = i
	if in, ok := p.inputs[i]; ok {
		in.Focus()
	}
}

func (p *formPage) view(width int, _ time.Time) string {
	s := p.app.styles
	state := p.ctrl.Snapshot()

	title := "New project"
	if state.Editing {
		title = "Edit project"
	}

	var form strings.Builder
	form.WriteString(s.Title.Render(title))
	form.WriteString("\n")
	for i := 0; i < fieldCount; i++ {
		form.WriteString(field(s, fieldLabels[i], p.focus == i, p.fieldValue(i, state)))
	}
	form.WriteString("\n")
	switch state.Phase {
	case projectform.PhaseLoading:
		form.WriteString(s.Muted.Render("Loading teams and managers..."))
	case projectform.PhaseSubmitting:
		form.WriteString(s.Muted.Render("Saving..."))
	case projectform.PhaseSuccess:
		form.WriteString(s.Muted.Render("Saved. Returning to projects..."))
	}
	if state.Error != "" {
		form.WriteString("\n")
		form.WriteString(s.Error.Render(state.Error))
	}

	left := s.Card.Render(form.String())
	right := s.Card.Render(p.previewView())
	if width > 0 && width < lipgloss.Width(left)+lipgloss.Width(right) {
		return lipgloss.JoinVertical(lipgloss.Left, left, right)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func (p *formPage) fieldValue(i int, state projectform.State) string {
	if in, ok := p.inputs[i]; ok {
		return in.View()
	}
	preview := projectform.BuildPreview(state.Draft, state.Teams, state.Managers)
	var value string
	switch i {
	case fieldTeam:
		value = preview.Team
	case fieldManager:
		value = preview.Manager
	case fieldStatus:
		value = string(preview.Status)
	}
	if p.focus == i {
		return "‹ " + value + " ›"
	}
	return value
}

func (p *formPage) previewView() string {
	s := p.app.styles
	pv := p.ctrl.Preview()
	name := pv.Name
	if strings.TrimSpace(name) == "" {
		name = s.Muted.Render("Untitled project")
	}
	desc := pv.Description
	if strings.TrimSpace(desc) == "" {
		desc = s.Muted.Render("No description")
	}
	return strings.Join([]string{
		s.Bold.Render("Preview"),
		"",
		s.Bold.Render(name),
		desc,
		"",
		"Team:     " + pv.Team,
		"Manager:  " + pv.Manager,
		"Status:   " + s.Status(pv.Status),
		"Deadline: " + pv.Deadline,
	}, "\n")
}

func (p *formPage) help() string {
	return "tab/↑↓ field • ←/→ choose • enter save • esc back"
}

func (p *formPage) toast() *view.Toast { return p.ctrl.Snapshot().Toast }

func (p *formPage) close() { p.ctrl.Close() }
