// Package storage provides the durable client-side store: the analog of the
// browser's localStorage. Tokens and in-progress drafts survive restarts and
// the auth redirect round-trip through it.
package storage

import "errors"

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// Store persists small JSON blobs by key.
type Store interface {
	// Get unmarshals the value stored under key into out. Returns ErrNotFound
	// when the key is absent.
	Get(key string, out any) error
	// Set marshals value and stores it under key, replacing any prior value.
	Set(key string, value any) error
	// Delete removes the key. Deleting an absent key is a no-op.
	Delete(key string) error
}

// Well-known keys.
const (
	KeyTokens       = "auth_tokens"
	KeyHostServices = "host_selected_services"
	KeyResumePrefix = "resume:"
)
