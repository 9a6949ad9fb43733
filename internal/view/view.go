// Package view holds the pieces shared by the page controllers: routes,
// navigation and transient notifications.
package view

import (
	"fmt"
	"time"
)

// Routes understood by the navigator.
const (
	RouteLogin       = "/login"
	RouteProjects    = "/projects"
	RouteNewProject  = "/projects/new"
	editRoutePattern = "/projects/%s/edit"
)

// EditProjectRoute returns the route of the edit form for a project.
func EditProjectRoute(id string) string {
	return fmt.Sprintf(editRoutePattern, id)
}

// Navigator switches the active page.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string)

// Navigate calls f(route).
func (f NavigatorFunc) Navigate(route string) { f(route) }

// ToastKind classifies a notification.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Toast is a transient notification.
type Toast struct {
	Kind      ToastKind
	Message   string
	ExpiresAt time.Time
}

// ToastDuration is how long a toast stays visible.
const ToastDuration = 3 * time.Second

// NewToast creates a toast expiring ToastDuration after now.
func NewToast(kind ToastKind, message string, now time.Time) *Toast {
	return &Toast{Kind: kind, Message: message, ExpiresAt: now.Add(ToastDuration)}
}

// Visible reports whether the toast should still be shown at now.
func (t *Toast) Visible(now time.Time) bool {
	return t != nil && now.Before(t.ExpiresAt)
}
