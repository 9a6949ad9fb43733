package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rpggio/projectadmin/internal/domain/project"
	"github.com/rpggio/projectadmin/internal/view"
	"github.com/rpggio/projectadmin/internal/view/projectlist"
)

const (
	filterSearch = iota
	filterFrom
	filterTo
	filterCount
)

const noFocus = -1

type listPage struct {
	app     *App
	ctrl    *projectlist.Controller
	filters [filterCount]textinput.Model
	focus   int
	table   table.Model
	rowIDs  []string
}

func newListPage(app *App) *listPage {
	p := &listPage{app: app, focus: noFocus}
	p.ctrl = projectlist.New(app.deps.API, projectlist.Options{
		Navigator:   app,
		Permissions: app.deps.Sessions,
		Logger:      app.deps.Logger,
		Debounce:    app.deps.Debounce,
		OnChange:    app.notify,
	})

	placeholders := [filterCount]string{"search name or description", "from YYYY-MM-DD", "to YYYY-MM-DD"}
	for i := range p.filters {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 100
		in.Width = 28
		if i != filterSearch {
			in.CharLimit = len(project.DateLayout)
			in.Width = 16
		}
		p.filters[i] = in
	}

	p.table = table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 28},
			{Title: "Team", Width: 14},
			{Title: "Manager", Width: 18},
			{Title: "Status", Width: 12},
			{Title: "Deadline", Width: 13},
		}),
		table.WithFocused(true),
		table.WithHeight(project.PageSize+1),
	)
	return p
}

func (p *listPage) init() tea.Cmd {
	return p.app.run("list.activate", p.ctrl.Activate)
}

func (p *listPage) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case refreshMsg:
		p.syncRows()
		return nil
	case tea.FocusMsg:
		return p.app.run("list.visibility", p.ctrl.VisibilityRegained)
	case tea.KeyMsg:
		if p.focus != noFocus {
			return p.updateFilterInput(msg)
		}
		return p.handleKey(msg)
	}
	return nil
}

func (p *listPage) updateFilterInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "enter":
		p.setFocus(noFocus)
		return nil
	case "tab":
		p.setFocus((p.focus + 1) % filterCount)
		return nil
	}

	in := &p.filters[p.focus]
	before := in.Value()
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	if value := in.Value(); value != before {
		switch p.focus {
		case filterSearch:
			p.ctrl.SetSearch(value)
		case filterFrom:
			p.ctrl.SetFrom(value)
		case filterTo:
			p.ctrl.SetTo(value)
		}
	}
	return cmd
}

func (p *listPage) handleKey(msg tea.KeyMsg) tea.Cmd {
	state := p.ctrl.Snapshot()
	key := msg.String()

	if state.DeleteModalOpen {
		switch key {
		case "y", "enter":
			return p.app.run("list.delete", p.ctrl.ConfirmDelete)
		case "n", "esc":
			if !state.Deleting {
				p.ctrl.CancelDelete()
			}
		}
		return nil
	}

	selected := p.selectedID()
	if state.OpenMenuID != "" && state.OpenMenuID == selected {
		switch key {
		case "e":
			p.ctrl.Edit(selected)
			return nil
		case "d":
			p.ctrl.RequestDelete(selected)
			return nil
		case "esc", "enter":
			p.ctrl.ToggleMenu(selected)
			return nil
		}
	}

	switch key {
	case "/", "tab":
		p.setFocus(filterSearch)
	case "s":
		p.ctrl.SetStatus(nextStatus(state.Filter.Status))
	case "g":
		p.ctrl.SetTeam(nextID(state.Filter.TeamID, teamIDs(state.Teams)))
	case "m":
		p.ctrl.SetManager(nextID(state.Filter.ManagerID, managerIDs(state.Managers)))
	case "r":
		for i := range p.filters {
			p.filters[i].SetValue("")
		}
		return p.app.run("list.reset", p.ctrl.Reset)
	case "right", "]":
		if state.HasNext() && !state.Loading {
			return p.app.run("list.next", p.ctrl.Next)
		}
	case "left", "[":
		if state.HasPrev() && !state.Loading {
			return p.app.run("list.prev", p.ctrl.Prev)
		}
	case "n":
		if state.CanManage {
			p.ctrl.NewProject()
		}
	case "enter":
		if state.CanManage && selected != "" {
			p.ctrl.ToggleMenu(selected)
		}
	default:
		var cmd tea.Cmd
		p.table, cmd = p.table.Update(msg)
		return cmd
	}
	return nil
}

func (p *listPage) setFocus(i int) {
	for j := range p.filters {
		p.filters[j].Blur()
	}
	p.focus = i
	if i == noFocus {
		p.table.Focus()
		return
	}
	p.table.Blur()
	p.filters[i].Focus()
}

func (p *listPage) selectedID() string {
	i := p.table.Cursor()
	if i < 0 || i >= len(p.rowIDs) {
		return ""
	}
	return p.rowIDs[i]
}

func (p *listPage) syncRows() {
	state := p.ctrl.Snapshot()
	rows := make([]table.Row, 0, len(state.Projects))
	ids := make([]string, 0, len(state.Projects))
	for _, proj := range state.Projects {
		rows = append(rows, table.Row{
			proj.Name,
			teamName(proj.Team),
			managerName(proj.Manager),
			string(proj.Status),
			project.FormatDeadline(proj.Deadline),
		})
		ids = append(ids, proj.ID)
	}
	p.rowIDs = ids
	p.table.SetRows(rows)
	if p.table.Cursor() >= len(rows) {
		p.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (p *listPage) view(_ int, _ time.Time) string {
	s := p.app.styles
	state := p.ctrl.Snapshot()

	var b strings.Builder
	b.WriteString(s.Title.Render("Projects"))
	b.WriteString("\n")
	b.WriteString(p.summaryView(state.Summary))
	b.WriteString("\n")
	b.WriteString(p.filterView(state))
	b.WriteString("\n\n")

	switch {
	case state.Error != "":
		b.WriteString(s.Error.Render(state.Error))
		b.WriteString("\n")
	case state.Loading && len(state.Projects) == 0:
		b.WriteString(s.Muted.Render("Loading projects..."))
		b.WriteString("\n")
	}

	if len(state.Projects) == 0 && !state.Loading && state.Error == "" {
		b.WriteString(s.Muted.Render("No projects match the current filters."))
		b.WriteString("\n")
	} else if len(state.Projects) > 0 {
		b.WriteString(p.table.View())
		b.WriteString("\n")
	}

	b.WriteString(p.pagerView(state))

	if id := state.OpenMenuID; id != "" && id == p.selectedID() {
		b.WriteString("\n")
		b.WriteString(s.Card.Render("e edit • d delete • esc close"))
	}
	if state.DeleteModalOpen {
		b.WriteString("\n")
		b.WriteString(p.deleteModalView(state))
	}
	return b.String()
}

func (p *listPage) summaryView(sum project.Summary) string {
	s := p.app.styles
	chip := func(label string, n int) string {
		return s.StatChip.Render(fmt.Sprintf("%s %d", label, n))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		chip("Total", sum.Total),
		chip("In progress", sum.InProgress),
		chip("Completed", sum.Completed),
		chip("On hold", sum.OnHold),
	)
}

func (p *listPage) filterView(state projectlist.State) string {
	s := p.app.styles
	status := "All"
	if state.Filter.Status != "" {
		status = string(state.Filter.Status)
	}
	team := "All"
	for _, t := range state.Teams {
		if t.ID == state.Filter.TeamID {
			team = t.Name
		}
	}
	manager := "All"
	for _, m := range state.Managers {
		if m.ID == state.Filter.ManagerID {
			manager = m.Name
		}
	}

	return strings.Join([]string{
		field(s, "Search", p.focus == filterSearch, p.filters[filterSearch].View()),
		field(s, "Deadline from", p.focus == filterFrom, p.filters[filterFrom].View()),
		field(s, "Deadline to", p.focus == filterTo, p.filters[filterTo].View()),
		s.Muted.Render(fmt.Sprintf("status: %s • team: %s • manager: %s", status, team, manager)),
	}, "")
}

func (p *listPage) pagerView(state projectlist.State) string {
	s := p.app.styles
	prev, next := "‹ prev", "next ›"
	if !state.HasPrev() {
		prev = s.Muted.Render(prev)
	}
	if !state.HasNext() {
		next = s.Muted.Render(next)
	}
	return fmt.Sprintf("%s  page %d  %s", prev, state.Page, next)
}

func (p *listPage) deleteModalView(state projectlist.State) string {
	s := p.app.styles
	name := state.DeleteTargetID
	for _, proj := range state.Projects {
		if proj.ID == state.DeleteTargetID {
			name = proj.Name
		}
	}
	body := fmt.Sprintf("Delete %q? This cannot be undone.\n\n", name)
	if state.Deleting {
		body += s.Muted.Render("Deleting...")
	} else {
		body += "y delete • n cancel"
	}
	return s.Modal.Render(body)
}

func (p *listPage) help() string {
	if p.focus != noFocus {
		return "tab next filter • enter/esc done"
	}
	h := "/ search • s status • g team • m manager • r reset • ←/→ page"
	if p.ctrl.Snapshot().CanManage {
		h += " • n new • enter actions"
	}
	return h
}

func (p *listPage) toast() *view.Toast { return p.ctrl.Snapshot().Toast }

func (p *listPage) close() { p.ctrl.Close() }

// nextStatus cycles All → In Progress → Completed → On Hold → All.
func nextStatus(cur project.Status) project.Status {
	if cur == "" {
		return project.Statuses[0]
	}
	for i, st := range project.Statuses {
		if st == cur && i+1 < len(project.Statuses) {
			return project.Statuses[i+1]
		}
	}
	return ""
}

// nextID cycles "" → ids[0] → ... → ids[n-1] → "".
func nextID(cur string, ids []string) string {
	if cur == "" {
		if len(ids) == 0 {
			return ""
		}
		return ids[0]
	}
	for i, id := range ids {
		if id == cur && i+1 < len(ids) {
			return ids[i+1]
		}
	}
	return ""
}

func teamIDs(teams []project.Team) []string {
	ids := make([]string, len(teams))
	for i, t := range teams {
		ids[i] = t.ID
	}
	return ids
}

func managerIDs(managers []project.Manager) []string {
	ids := make([]string, len(managers))
	for i, m := range managers {
		ids[i] = m.ID
	}
	return ids
}

func teamName(t *project.Team) string {
	if t == nil || t.Name == "" {
		return "No team"
	}
	return t.Name
}

func managerName(m *project.Manager) string {
	if m == nil || m.Name == "" {
		return "Not assigned"
	}
	return m.Name
}

