package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rpggio/projectadmin/internal/apiclient"
	"github.com/rpggio/projectadmin/internal/domain/project"
	"github.com/rpggio/projectadmin/internal/domain/session"
	"github.com/rpggio/projectadmin/internal/view"
)

// Deps are the collaborators shared by every page.
type Deps struct {
	API           apiclient.API
	Sessions      *session.Manager
	Logger        *slog.Logger
	Debounce      time.Duration
	RedirectDelay time.Duration
}

// refreshMsg asks for a re-render after a controller changed state.
type refreshMsg struct{}

// navigateMsg switches the active page.
type navigateMsg struct{ route string }

// opDoneMsg reports the end of a blocking controller operation.
type opDoneMsg struct {
	op  string
	err error
}

// page is one routed screen.
type page interface {
	init() tea.Cmd
	update(msg tea.Msg) tea.Cmd
	view(width int, now time.Time) string
	help() string
	toast() *view.Toast
	close()
}

// App is the root bubbletea model. It implements view.Navigator.
type App struct {
	deps   Deps
	styles Styles
	now    func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	send    func(tea.Msg)
	pending atomic.Bool

	route  string
	page   page
	width  int
	height int
}

var _ view.Navigator = (*App)(nil)

// New creates the root model. SetSender must be called before the program
// starts so controllers can post updates.
func New(deps Deps) *App {
	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		deps:   deps,
		styles: DefaultStyles(),
		now:    time.Now,
		ctx:    ctx,
		cancel: cancel,
		send:   func(tea.Msg) {},
	}
}

// SetSender sets how messages from other goroutines reach the program.
func (a *App) SetSender(send func(tea.Msg)) {
	a.send = send
}

// Navigate switches page. Safe to call from any goroutine, including from
// inside Update.
func (a *App) Navigate(route string) {
	a.post(navigateMsg{route: route})
}

// notify coalesces controller change callbacks into one pending refresh.
func (a *App) notify() {
	if a.pending.CompareAndSwap(false, true) {
		a.post(refreshMsg{})
	}
}

func (a *App) post(msg tea.Msg) {
	send := a.send
	go send(msg)
}

func (a *App) Init() tea.Cmd {
	return a.open(view.RouteProjects)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.shutdown()
			return a, tea.Quit
		}
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
	case navigateMsg:
		return a, a.open(msg.route)
	case refreshMsg:
		a.pending.Store(false)
		if a.page == nil {
			return a, nil
		}
		cmd := a.page.update(msg)
		return a, tea.Batch(cmd, a.expireToast())
	case opDoneMsg:
		if msg.err != nil && a.deps.Logger != nil {
			a.deps.Logger.Debug("operation failed", "op", msg.op, "route", a.route, "error", msg.err)
		}
	}

	if a.page == nil {
		return a, nil
	}
	return a, a.page.update(msg)
}

func (a *App) View() string {
	if a.page == nil {
		return ""
	}
	now := a.now()

	header := a.styles.Header.Render("Project Admin")
	if creds := a.deps.Sessions.Current(); creds.Authenticated() {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, " ", a.styles.Muted.Render(fmt.Sprintf("%s (%s)", creds.Username, creds.Role)))
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	if t := a.page.toast(); t.Visible(now) {
		b.WriteString(a.styles.Toast(t))
		b.WriteString("\n\n")
	}
	b.WriteString(a.page.view(a.width, now))
	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render(a.page.help() + " • ctrl+c quit"))
	return b.String()
}

// Route returns the active route.
func (a *App) Route() string {
	return a.route
}

// Close releases the active page.
func (a *App) Close() {
	a.shutdown()
}

func (a *App) shutdown() {
	if a.page != nil {
		a.page.close()
		a.page = nil
	}
	a.cancel()
}

// open resolves guards and switches to the page for route.
func (a *App) open(route string) tea.Cmd {
	creds := a.deps.Sessions.Current()
	if route != view.RouteLogin && !creds.Authenticated() {
		route = view.RouteLogin
	}
	if route == a.route && a.page != nil {
		return nil
	}

	var editing *project.Project
	if id, ok := editRouteID(route); ok {
		p, found := a.lookupProject(id)
		if !found {
			a.log("edit target not loaded", "project_id", id)
			route = view.RouteProjects
		} else {
			editing = &p
		}
	}
	if (route == view.RouteNewProject || editing != nil) && !creds.CanManageProjects() {
		route = view.RouteProjects
		editing = nil
	}
	if route == a.route && a.page != nil {
		return nil
	}

	if a.page != nil {
		a.page.close()
	}

	switch {
	case route == view.RouteLogin:
		a.page = newLoginPage(a)
	case route == view.RouteNewProject:
		a.page = newFormPage(a, nil)
	case editing != nil:
		a.page = newFormPage(a, editing)
	default:
		route = view.RouteProjects
		a.page = newListPage(a)
	}
	a.route = route
	a.log("navigated", "route", route)
	return a.page.init()
}

func (a *App) lookupProject(id string) (project.Project, bool) {
	list, ok := a.page.(*listPage)
	if !ok {
		return project.Project{}, false
	}
	for _, p := range list.ctrl.Snapshot().Projects {
		if p.ID == id {
			return p, true
		}
	}
	return project.Project{}, false
}

// expireToast schedules a refresh for when the visible toast expires.
func (a *App) expireToast() tea.Cmd {
	t := a.page.toast()
	now := a.now()
	if !t.Visible(now) {
		return nil
	}
	return tea.Tick(t.ExpiresAt.Sub(now), func(time.Time) tea.Msg { return refreshMsg{} })
}

// run wraps a blocking controller call so it runs off the event loop.
func (a *App) run(op string, fn func(context.Context) error) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		return opDoneMsg{op: op, err: fn(ctx)}
	}
}

func (a *App) log(msg string, args ...any) {
	if a.deps.Logger != nil {
		a.deps.Logger.Debug(msg, args...)
	}
}

func editRouteID(route string) (string, bool) {
	rest, ok := strings.CutPrefix(route, "/projects/")
	if !ok {
		return "", false
	}
	id, ok := strings.CutSuffix(rest, "/edit")
	if !ok || id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

// Run starts the terminal UI and blocks until the user quits or ctx ends.
func Run(ctx context.Context, deps Deps) error {
	app := New(deps)
	program := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)
	app.SetSender(program.Send)
	deps.Sessions.SetNavigator(app)
	defer app.Close()

	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to run terminal ui: %w", err)
	}
	return nil
}
