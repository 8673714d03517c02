// Package gate wraps protected actions: authenticated callers run them
// directly, everyone else gets the inline auth prompt while their in-progress
// draft is parked in durable storage and restored unmodified after login.
package gate

import (
	"context"
	"errors"

	"buckler/services/session"
	"buckler/storage"
	"buckler/utils"

	"go.uber.org/zap"
)

// ErrAuthRequired signals that the caller must authenticate inline and then
// call Resume. The draft passed to Require is already persisted.
var ErrAuthRequired = errors.New("authentication required")

// Action is the protected operation, e.g. "book now" or "add to wishlist".
type Action func(ctx context.Context) error

// Gate checks the session before running protected actions.
type Gate struct {
	Session session.Service
	Store   storage.Store
	Logger  *zap.Logger
}

func New(sess session.Service, store storage.Store) *Gate {
	return &Gate{Session: sess, Store: store, Logger: utils.GetLogger()}
}

// Require runs action when a user is signed in. Otherwise the draft is
// persisted under the resume key so it survives the auth round-trip, and
// ErrAuthRequired is returned so the UI shows the inline login form.
func (g *Gate) Require(ctx context.Context, resumeKey string, draft any, action Action) error {
	if g.Session.Session().IsAuthenticated() {
		return action(ctx)
	}
	if draft != nil {
		if err := g.Store.Set(storage.KeyResumePrefix+resumeKey, draft); err != nil {
			g.Logger.Warn("failed to persist draft for resume", zap.String("key", resumeKey), zap.Error(err))
		}
	}
	return ErrAuthRequired
}

// PendingDraft restores a parked draft into `into`. Returns false when
// nothing is parked under the key.
func (g *Gate) PendingDraft(resumeKey string, into any) (bool, error) {
	err := g.Store.Get(storage.KeyResumePrefix+resumeKey, into)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Resume re-runs the original action after successful inline authentication,
// restoring the parked draft first. The key is cleared once the action runs.
func (g *Gate) Resume(ctx context.Context, resumeKey string, into any, action Action) error {
	if !g.Session.Session().IsAuthenticated() {
		return ErrAuthRequired
	}
	if into != nil {
		if _, err := g.PendingDraft(resumeKey, into); err != nil {
			return err
		}
	}
	if err := action(ctx); err != nil {
		return err
	}
	if err := g.Store.Delete(storage.KeyResumePrefix + resumeKey); err != nil {
		g.Logger.Warn("failed to clear resume draft", zap.String("key", resumeKey), zap.Error(err))
	}
	return nil
}
