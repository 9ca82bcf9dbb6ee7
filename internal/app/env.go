// Package app holds what every menu handler receives.
package app

import (
	"context"
	"errors"
	"log/slog"

	"catalog-client/internal/console"
	"catalog-client/internal/database"
	"catalog-client/internal/models"
	"catalog-client/internal/session"
)

// ErrNotAuthenticated is returned by handlers that need a principal.
var ErrNotAuthenticated = errors.New("you are not logged in")

type Env struct {
	DB      database.Gateway
	Console *console.Console
	Session *session.Session
	Log     *slog.Logger
}

// Handler runs one menu action to completion.
type Handler func(ctx context.Context, env *Env) error

// Logger returns a logger tagged with the current session, if any.
func (e *Env) Logger() *slog.Logger {
	l := e.Log
	if l == nil {
		l = slog.Default()
	}
	if e.Session != nil && e.Session.Authenticated() {
		return l.With("session", e.Session.ID.String()[:8], "user_id", e.Session.UserID())
	}
	return l
}

// RequireLogin guards handlers that read the principal.
func (e *Env) RequireLogin() error {
	if e.Session == nil || !e.Session.Authenticated() {
		return ErrNotAuthenticated
	}
	return nil
}

// ErrForbidden is returned when the principal's role is below what the action needs.
var ErrForbidden = errors.New("this action is not available for your role")

// RequireRole guards handlers that the menu only offers to min and above.
func (e *Env) RequireRole(min models.UserRole) error {
	if err := e.RequireLogin(); err != nil {
		return err
	}
	if !e.Session.Role().AtLeast(min) {
		return ErrForbidden
	}
	return nil
}
