package query

import "context"

// Update captures one optimistic mutation: snapshot local state, apply the
// change immediately, issue the server call, roll back to the snapshot on
// failure, and reconcile with server truth either way.
type Update[S any] struct {
	Snapshot  func() S
	Apply     func()
	Call      func(ctx context.Context) error
	Rollback  func(S)
	Reconcile func()
}

// Run executes the optimistic update. The server error, if any, is returned
// after rollback and reconciliation so callers can surface it.
func Run[S any](ctx context.Context, u Update[S]) error {
	var snap S
	if u.Snapshot != nil {
		snap = u.Snapshot()
	}
	if u.Apply != nil {
		u.Apply()
	}

	err := u.Call(ctx)
	if err != nil && u.Rollback != nil {
		u.Rollback(snap)
	}
	if u.Reconcile != nil {
		u.Reconcile()
	}
	return err
}
