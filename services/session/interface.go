package session

import (
	"context"

	"buckler/models"
)

// Service defines the interface for the client-side auth session store.
type Service interface {
	// Initialize runs the one-time app-start check: load persisted tokens,
	// resolve the current user, and silently log out on failure. Safe to call
	// from multiple goroutines; only one check runs.
	Initialize(ctx context.Context) error
	Login(ctx context.Context, creds models.Credentials) (models.Session, error)
	Register(ctx context.Context, reg models.Registration) (models.Session, error)
	// Logout clears local session state even when server-side invalidation fails.
	Logout(ctx context.Context) error
	// Refresh rotates the token pair. Concurrent callers share one in-flight
	// refresh and its outcome.
	Refresh(ctx context.Context) error
	// EnsureFresh refreshes proactively when the access token expires within
	// the configured skew window.
	EnsureFresh(ctx context.Context) error
	CurrentUser() (models.User, error)
	Session() models.Session
	State() State
	// Subscribe registers a callback invoked after every session change.
	Subscribe(fn func(models.Session))

	// client.TokenSource.
	AccessToken() string
	Clear()
}

// State is the session store lifecycle.
type State string

const (
	StateUninitialized   State = "uninitialized"
	StateInitializing    State = "initializing"
	StateReady           State = "ready"
	StateUnauthenticated State = "unauthenticated"
)
