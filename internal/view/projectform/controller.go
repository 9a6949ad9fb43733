// Package projectform implements the create/edit project form independently of
// any renderer.
package projectform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rpggio/projectadmin/internal/apiclient"
	"github.com/rpggio/projectadmin/internal/domain/project"
	"github.com/rpggio/projectadmin/internal/view"
	"golang.org/x/sync/errgroup"
)

// Phase is the form's position in its lifecycle.
type Phase string

const (
	PhaseLoading    Phase = "loading"
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseSuccess    Phase = "success"
)

// User-facing messages.
const (
	MsgLoadOptionsFailed = "Failed to load teams or managers"
	MsgCreateFailed      = "Failed to create project"
	MsgUpdateFailed      = "Failed to update project"
	MsgCreated           = "Project created successfully"
	MsgUpdated           = "Project updated successfully"
)

// DefaultRedirectDelay is how long the success toast shows before leaving the form.
const DefaultRedirectDelay = 2 * time.Second

// Options configures a Controller.
type Options struct {
	Navigator     view.Navigator
	Logger        *slog.Logger
	RedirectDelay time.Duration
	// OnChange is called after every state change, outside the controller lock.
	OnChange func()
	Now      func() time.Time
}

// State is a snapshot of everything the renderer needs.
type State struct {
	Phase    Phase
	Draft    project.Draft
	Teams    []project.Team
	Managers []project.Manager
	Error    string
	Toast    *view.Toast
	Editing  bool
}

// Controller owns the form state.
type Controller struct {
	api    apiclient.API
	opts   Options
	editID string

	mu       sync.Mutex
	state    State
	redirect *time.Timer
	closed   bool
}

// New creates a controller for a new project.
func New(api apiclient.API, opts Options) *Controller {
	return newController(api, opts, "", project.Draft{Status: project.StatusInProgress})
}

// NewEdit creates a controller prefilled from an existing project; Submit
// updates it in place.
func NewEdit(api apiclient.API, p project.Project, opts Options) *Controller {
	draft := project.DraftFrom(p)
	if draft.Status == "" {
		draft.Status = project.StatusInProgress
	}
	return newController(api, opts, p.ID, draft)
}

func newController(api apiclient.API, opts Options, editID string, draft project.Draft) *Controller {
	if opts.RedirectDelay <= 0 {
		opts.RedirectDelay = DefaultRedirectDelay
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Controller{
		api:    api,
		opts:   opts,
		editID: editID,
		state: State{
			Phase:   PhaseLoading,
			Draft:   draft,
			Editing: editID != "",
		},
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Teams = append([]project.Team(nil), c.state.Teams...)
	s.Managers = append([]project.Manager(nil), c.state.Managers...)
	return s
}

// Activate loads the team and manager option sets concurrently. A failure of
// either leaves both empty and sets an inline error; the form stays usable.
func (c *Controller) Activate(ctx context.Context) error {
	c.update(func(s *State) {
		if s.Phase == PhaseIdle {
			s.Phase = PhaseLoading
		}
		s.Error = ""
	})

	var (
		teams    []project.Team
		managers []project.Manager
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teams, err = c.api.Teams(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		managers, err = c.api.Managers(gctx)
		return err
	})
	err := g.Wait()

	c.update(func(s *State) {
		// A save may already be under way; only loading moves to idle.
		if s.Phase == PhaseLoading {
			s.Phase = PhaseIdle
		}
		if err != nil {
			s.Teams, s.Managers = nil, nil
			s.Error = MsgLoadOptionsFailed
			return
		}
		s.Teams, s.Managers = teams, managers
	})
	if err != nil {
		c.warn("failed to load form options", err)
		return fmt.Errorf("load form options: %w", err)
	}
	return nil
}

// SetName sets the project name.
func (c *Controller) SetName(v string) { c.update(func(s *State) { s.Draft.Name = v }) }

// SetDescription sets the description.
func (c *Controller) SetDescription(v string) { c.update(func(s *State) { s.Draft.Description = v }) }

// SetTeam selects a team by id; "" clears it.
func (c *Controller) SetTeam(id string) { c.update(func(s *State) { s.Draft.TeamID = id }) }

// SetManager selects a manager by id.
func (c *Controller) SetManager(id string) { c.update(func(s *State) { s.Draft.ManagerID = id }) }

// SetStatus sets the status.
func (c *Controller) SetStatus(v project.Status) { c.update(func(s *State) { s.Draft.Status = v }) }

// SetDeadline sets the deadline as a YYYY-MM-DD date; "" clears it.
func (c *Controller) SetDeadline(v string) { c.update(func(s *State) { s.Draft.Deadline = v }) }

// Submit validates the draft and sends it. Invalid drafts set an inline error
// and return the validation error without touching the network. Submit is a
// no-op unless the form is idle.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.closed || c.state.Phase != PhaseIdle {
		c.mu.Unlock()
		return nil
	}
	req, err := c.state.Draft.Request()
	if err != nil {
		c.state.Error = ValidationMessage(err)
		c.mu.Unlock()
		c.changed()
		return err
	}
	c.state.Phase = PhaseSubmitting
	c.state.Error = ""
	c.mu.Unlock()
	c.changed()

	failMsg, okMsg := MsgCreateFailed, MsgCreated
	if c.editID == "" {
		_, err = c.api.CreateProject(ctx, req)
	} else {
		failMsg, okMsg = MsgUpdateFailed, MsgUpdated
		_, err = c.api.UpdateProject(ctx, c.editID, req)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return err
	}
	if err != nil {
		c.state.Phase = PhaseIdle
		c.state.Error = failMsg
		c.mu.Unlock()
		c.changed()
		c.warn("failed to save project", err)
		return fmt.Errorf("save project: %w", err)
	}
	c.state.Phase = PhaseSuccess
	c.state.Toast = view.NewToast(view.ToastSuccess, okMsg, c.opts.Now())
	c.redirect = time.AfterFunc(c.opts.RedirectDelay, c.leave)
	c.mu.Unlock()
	c.changed()
	return nil
}

// Close stops a pending redirect and ignores any later results.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.redirect != nil {
		c.redirect.Stop()
		c.redirect = nil
	}
}

func (c *Controller) leave() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.redirect = nil
	c.mu.Unlock()

	if c.opts.Navigator != nil {
		c.opts.Navigator.Navigate(view.RouteProjects)
	}
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

func (c *Controller) warn(msg string, err error) {
	if c.opts.Logger != nil {
		c.opts.Logger.Warn(msg, "error", err, "project_id", c.editID)
	}
}

// ValidationMessage turns a draft validation error into inline text.
func ValidationMessage(err error) string {
	switch {
	case errors.Is(err, project.ErrNameRequired):
		return "Project name is required"
	case errors.Is(err, project.ErrManagerRequired):
		return "Please select a manager"
	case errors.Is(err, project.ErrInvalidDeadline):
		return "Deadline must be a date (YYYY-MM-DD)"
	case errors.Is(err, project.ErrInvalidStatus):
		return "Please select a valid status"
	}
	return err.Error()
}
