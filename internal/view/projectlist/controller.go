// Package projectlist implements the filterable, paginated project list with
// its delete confirmation and per-row menus.
package projectlist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rpggio/projectadmin/internal/apiclient"
	"github.com/rpggio/projectadmin/internal/debounce"
	"github.com/rpggio/projectadmin/internal/domain/project"
	"github.com/rpggio/projectadmin/internal/view"
	"golang.org/x/sync/errgroup"
)

// User-facing messages.
const (
	MsgLoadFailed   = "Failed to load projects"
	MsgDeleted      = "Project deleted successfully"
	MsgDeleteFailed = "Failed to delete project"
)

// Permissions tells the list whether to show create/edit/delete controls.
type Permissions interface {
	CanManageProjects() bool
}

// Options configures a Controller.
type Options struct {
	Navigator   view.Navigator
	Permissions Permissions
	Logger      *slog.Logger
	Debounce    time.Duration
	// OnChange is called after every state change, outside the controller lock.
	OnChange func()
	Now      func() time.Time
}

// State is a snapshot of everything the renderer needs.
type State struct {
	Filter          project.Filter
	Page            int
	Projects        []project.Project
	Summary         project.Summary
	Loading         bool
	Error           string
	Teams           []project.Team
	Managers        []project.Manager
	OpenMenuID      string
	DeleteTargetID  string
	DeleteModalOpen bool
	Deleting        bool
	Toast           *view.Toast
	CanManage       bool
}

// HasNext reports whether the last fetch returned a full page.
func (s State) HasNext() bool {
	return len(s.Projects) >= project.PageSize
}

// HasPrev reports whether a previous page exists.
func (s State) HasPrev() bool {
	return s.Page > 1
}

// Controller owns the list state. Every fetch gets a sequence number and only
// the response to the most recently issued fetch is applied.
type Controller struct {
	api       apiclient.API
	opts      Options
	debouncer *debounce.Debouncer

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	state  State
	seq    uint64
	closed bool
}

// New creates a list controller positioned on page 1 with no filter.
func New(api apiclient.API, opts Options) *Controller {
	if opts.Debounce <= 0 {
		opts.Debounce = debounce.Default
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		api:       api,
		opts:      opts,
		debouncer: debounce.New(opts.Debounce),
		ctx:       ctx,
		cancel:    cancel,
		state:     State{Page: 1},
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Projects = append([]project.Project(nil), c.state.Projects...)
	s.Teams = append([]project.Team(nil), c.state.Teams...)
	s.Managers = append([]project.Manager(nil), c.state.Managers...)
	return s
}

// Activate reads the role, loads the filter option sets and fetches page 1.
// Option set failures are logged only; the list stays usable.
func (c *Controller) Activate(ctx context.Context) error {
	canManage := c.opts.Permissions != nil && c.opts.Permissions.CanManageProjects()
	c.update(func(s *State) { s.CanManage = canManage })

	var g errgroup.Group
	g.Go(func() error {
		teams, err := c.api.Teams(ctx)
		if err != nil {
			c.warn("failed to load teams", err)
			return nil
		}
		c.update(func(s *State) { s.Teams = teams })
		return nil
	})
	g.Go(func() error {
		managers, err := c.api.Managers(ctx)
		if err != nil {
			c.warn("failed to load managers", err)
			return nil
		}
		c.update(func(s *State) { s.Managers = managers })
		return nil
	})
	g.Go(func() error {
		return c.fetch(ctx, 1)
	})
	return g.Wait()
}

// SetSearch sets the free-text search.
func (c *Controller) SetSearch(v string) { c.setFilter(func(f *project.Filter) { f.Search = v }) }

// SetStatus filters by status; "" matches all.
func (c *Controller) SetStatus(v project.Status) { c.setFilter(func(f *project.Filter) { f.Status = v }) }

// SetTeam filters by team id; "" matches all.
func (c *Controller) SetTeam(id string) { c.setFilter(func(f *project.Filter) { f.TeamID = id }) }

// SetManager filters by manager id; "" matches all.
func (c *Controller) SetManager(id string) { c.setFilter(func(f *project.Filter) { f.ManagerID = id }) }

// SetFrom sets the earliest deadline (YYYY-MM-DD). Partial dates are ignored
// until they parse.
func (c *Controller) SetFrom(v string) {
	if c.completeDate(v) {
		c.setFilter(func(f *project.Filter) { f.From = strings.TrimSpace(v) })
	}
}

// SetTo sets the latest deadline (YYYY-MM-DD), inclusive. Partial dates are
// ignored until they parse.
func (c *Controller) SetTo(v string) {
	if c.completeDate(v) {
		c.setFilter(func(f *project.Filter) { f.To = strings.TrimSpace(v) })
	}
}

func (c *Controller) completeDate(v string) bool {
	if _, err := project.ParseDeadline(v); err != nil {
		if c.opts.Logger != nil {
			c.opts.Logger.Debug("ignoring incomplete date filter", "value", v)
		}
		return false
	}
	return true
}

func (c *Controller) setFilter(fn func(*project.Filter)) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	fn(&c.state.Filter)
	c.state.Page = 1
	c.mu.Unlock()
	c.changed()

	c.debouncer.Debounce(func() {
		_ = c.fetch(c.ctx, 1)
	})
}

// Reset clears every criterion and refetches page 1 without waiting.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.state.Filter = project.Filter{}
	c.state.Page = 1
	c.mu.Unlock()
	c.changed()

	var err error
	c.debouncer.Immediate(func() {
		err = c.fetch(ctx, 1)
	})
	return err
}

// VisibilityRegained refetches the current page.
func (c *Controller) VisibilityRegained(ctx context.Context) error {
	return c.fetch(ctx, c.Snapshot().Page)
}

// Next moves to the following page when the current one was full.
func (c *Controller) Next(ctx context.Context) error {
	s := c.Snapshot()
	if !s.HasNext() {
		return nil
	}
	return c.fetch(ctx, s.Page+1)
}

// Prev moves to the previous page; it never goes below page 1.
func (c *Controller) Prev(ctx context.Context) error {
	s := c.Snapshot()
	if !s.HasPrev() {
		return nil
	}
	return c.fetch(ctx, s.Page-1)
}

func (c *Controller) fetch(ctx context.Context, page int) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.seq++
	seq := c.seq
	c.state.Page = page
	c.state.Loading = true
	filter := c.state.Filter
	c.mu.Unlock()
	c.changed()

	result, err := c.api.Projects(ctx, filter, page)

	c.mu.Lock()
	if c.closed || seq != c.seq {
		c.mu.Unlock()
		if c.opts.Logger != nil {
			c.opts.Logger.Debug("discarding stale project page", "page", page, "seq", seq)
		}
		return nil
	}
	c.state.Loading = false
	if err != nil {
		c.state.Error = MsgLoadFailed
	} else {
		c.state.Error = ""
		c.state.Projects = result.Projects
		c.state.Summary = result.Summary
	}
	c.mu.Unlock()
	c.changed()

	if err != nil {
		c.warn("failed to load projects", err)
		return fmt.Errorf("load projects page %d: %w", page, err)
	}
	return nil
}

// ToggleMenu opens the action menu of one row, closing any other.
func (c *Controller) ToggleMenu(id string) {
	c.update(func(s *State) {
		if s.OpenMenuID == id {
			s.OpenMenuID = ""
			return
		}
		s.OpenMenuID = id
	})
}

// RequestDelete opens the confirmation modal for a row.
func (c *Controller) RequestDelete(id string) {
	c.update(func(s *State) {
		s.OpenMenuID = ""
		s.DeleteTargetID = id
		s.DeleteModalOpen = true
	})
}

// CancelDelete closes the confirmation modal.
func (c *Controller) CancelDelete() {
	c.update(func(s *State) {
		s.DeleteTargetID = ""
		s.DeleteModalOpen = false
	})
}

// ConfirmDelete deletes the modal's target. Either way the modal closes; on
// success the current page is refetched.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	if c.closed || !c.state.DeleteModalOpen || c.state.DeleteTargetID == "" || c.state.Deleting {
		c.mu.Unlock()
		return nil
	}
	id := c.state.DeleteTargetID
	c.state.Deleting = true
	c.mu.Unlock()
	c.changed()

	err := c.api.DeleteProject(ctx, id)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.state.Deleting = false
	c.state.DeleteModalOpen = false
	c.state.DeleteTargetID = ""
	if err != nil {
		c.state.Toast = view.NewToast(view.ToastError, MsgDeleteFailed, c.opts.Now())
	} else {
		c.state.Toast = view.NewToast(view.ToastSuccess, MsgDeleted, c.opts.Now())
	}
	page := c.state.Page
	c.mu.Unlock()
	c.changed()

	if err != nil {
		c.warn("failed to delete project", err, "project_id", id)
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	return c.fetch(ctx, page)
}

// Edit navigates to the edit form of a row.
func (c *Controller) Edit(id string) {
	c.update(func(s *State) { s.OpenMenuID = "" })
	if c.opts.Navigator != nil {
		c.opts.Navigator.Navigate(view.EditProjectRoute(id))
	}
}

// NewProject navigates to the create form.
func (c *Controller) NewProject() {
	if c.opts.Navigator != nil {
		c.opts.Navigator.Navigate(view.RouteNewProject)
	}
}

// Close cancels the pending debounced fetch and in-flight requests started by
// it. Results arriving afterwards are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.debouncer.Cancel()
	c.cancel()
}

func (c *Controller) update(fn func(*State)) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	fn(&c.state)
	c.mu.Unlock()
	c.changed()
}

func (c *Controller) changed() {
	if c.opts.OnChange != nil {
		c.opts.OnChange()
	}
}

func (c *Controller) warn(msg string, err error, args ...any) {
	if c.opts.Logger != nil {
		c.opts.Logger.Warn(msg, append([]any{"error", err}, args...)...)
	}
}
