// Package host covers the become-a-host onboarding start: picking service
// types from the fixed catalog. The selection is persisted so it survives
// the sign-in redirect in the middle of the flow.
package host

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"buckler/models"
	"buckler/storage"
	"buckler/utils"

	"go.uber.org/zap"
)

// ErrEmptySelection blocks advancing with nothing selected.
var ErrEmptySelection = errors.New("select at least one service to continue")

// Selection is the set of chosen service-type identifiers.
type Selection struct {
	Store  storage.Store
	Logger *zap.Logger

	mu       sync.Mutex
	selected map[string]bool
}

// NewSelection restores any persisted selection from a prior interrupted run.
func NewSelection(store storage.Store) *Selection {
	s := &Selection{
		Store:    store,
		Logger:   utils.GetLogger(),
		selected: make(map[string]bool),
	}
	var saved []string
	if err := store.Get(storage.KeyHostServices, &saved); err == nil {
		for _, id := range saved {
			if _, ok := models.HostServiceCatalog[id]; ok {
				s.selected[id] = true
			}
		}
	}
	return s
}

// Add selects a service type. Identifiers outside the catalog are rejected.
func (s *Selection) Add(id string) error {
	if _, ok := models.HostServiceCatalog[id]; !ok {
		return fmt.Errorf("unknown service type: %s", id)
	}
	s.mu.Lock()
	s.selected[id] = true
	s.mu.Unlock()
	return s.persist()
}

// Remove deselects a service type. Removing an absent id is a no-op.
func (s *Selection) Remove(id string) error {
	s.mu.Lock()
	delete(s.selected, id)
	s.mu.Unlock()
	return s.persist()
}

// Selected returns the chosen identifiers in stable order.
func (s *Selection) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Validate enforces the non-empty rule before the flow may proceed.
func (s *Selection) Validate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.selected) == 0 {
		return ErrEmptySelection
	}
	return nil
}

// Clear drops the selection and its persisted copy, e.g. after the host
// application is submitted.
func (s *Selection) Clear() error {
	s.mu.Lock()
	s.selected = make(map[string]bool)
	s.mu.Unlock()
	return s.Store.Delete(storage.KeyHostServices)
}

func (s *Selection) persist() error {
	if err := s.Store.Set(storage.KeyHostServices, s.Selected()); err != nil {
		s.Logger.Warn("failed to persist host service selection", zap.Error(err))
		return err
	}
	return nil
}
