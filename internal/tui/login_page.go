package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rpggio/projectadmin/internal/apiclient"
	"github.com/rpggio/projectadmin/internal/view"
)

const (
	msgLoginInvalid = "Invalid email or password"
	msgLoginFailed  = "Login failed"
)

type loginResultMsg struct{ err error }

type loginPage struct {
	app        *App
	email      textinput.Model
	password   textinput.Model
	focus      int
	submitting bool
	err        string
	expiredFor string
}

func newLoginPage(app *App) *loginPage {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.Width = 40

	return &loginPage{
		app:        app,
		email:      email,
		password:   password,
		expiredFor: app.deps.Sessions.Current().Username,
	}
}

func (p *loginPage) init() tea.Cmd { return textinput.Blink }

func (p *loginPage) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case loginResultMsg:
		p.submitting = false
		if msg.err == nil {
			p.app.Navigate(view.RouteProjects)
			return nil
		}
		p.err = loginMessage(msg.err)
		p.password.SetValue("")
		return nil
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			p.setFocus(1 - p.focus)
			return nil
		case "enter":
			if p.focus == 0 {
				p.setFocus(1)
				return nil
			}
			return p.submit()
		}
	}

	var cmd tea.Cmd
	if p.focus == 0 {
		p.email, cmd = p.email.Update(msg)
	} else {
		p.password, cmd = p.password.Update(msg)
	}
	return cmd
}

func (p *loginPage) setFocus(i int) {
	p.focus = i
	if i == 0 {
		p.email.Focus()
		p.password.Blur()
	} else {
		p.password.Focus()
		p.email.Blur()
	}
}

func (p *loginPage) submit() tea.Cmd {
	email := strings.TrimSpace(p.email.Value())
	password := p.password.Value()
	if p.submitting {
		return nil
	}
	if email == "" || password == "" {
		p.err = "Email and password are required"
		return nil
	}
	p.submitting = true
	p.err = ""

	api, sessions, ctx := p.app.deps.API, p.app.deps.Sessions, p.app.ctx
	return func() tea.Msg {
		creds, err := api.Login(ctx, email, password)
		if err == nil {
			err = sessions.Login(ctx, creds)
		}
		return loginResultMsg{err: err}
	}
}

func loginMessage(err error) string {
	switch {
	case errors.Is(err, apiclient.ErrUnauthorized):
		return msgLoginInvalid
	case errors.Is(err, context.Canceled):
		return ""
	default:
		return msgLoginFailed
	}
}

func (p *loginPage) view(int, time.Time) string {
	s := p.app.styles
	var b strings.Builder
	b.WriteString(s.Title.Render("Sign in"))
	b.WriteString("\n")
	if p.expiredFor != "" {
		b.WriteString(s.Muted.Render(fmt.Sprintf("Session for %s expired. Sign in again.", p.expiredFor)))
		b.WriteString("\n\n")
	}
	b.WriteString(field(s, "Email", p.focus == 0, p.email.View()))
	b.WriteString(field(s, "Password", p.focus == 1, p.password.View()))
	if p.submitting {
		b.WriteString(s.Muted.Render("Signing in..."))
		b.WriteString("\n")
	}
	if p.err != "" {
		b.WriteString(s.Error.Render(p.err))
		b.WriteString("\n")
	}
	return s.Card.Render(b.String())
}

func (p *loginPage) help() string { return "tab switch field • enter sign in" }

func (p *loginPage) toast() *view.Toast { return nil }

func (p *loginPage) close() {}

func field(s Styles, label string, focused bool, value string) string {
	style := s.Label
	if focused {
		style = s.FocusedLabel
	}
	return style.Render(label) + value + "\n"
}
