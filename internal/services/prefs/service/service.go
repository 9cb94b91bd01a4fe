// Package service implements the in-memory preference store
package service

import (
	"sync"

	"linguabot/internal/core/langpack"
	"linguabot/internal/services/prefs/domain"
)

// Service implements domain.StorePort
type Service struct {
	mu    sync.RWMutex
	order []domain.UserID
	index map[domain.UserID]int
	prefs map[domain.UserID]langpack.Code
}

// New constructs an empty store
func New() *Service {
	return &Service{
		index: make(map[domain.UserID]int),
		prefs: make(map[domain.UserID]langpack.Code),
	}
}

// Set unconditionally overwrites any prior preference. A user's
// snapshot position is fixed by their first Set.
func (s *Service) Set(user domain.UserID, target langpack.Code) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, seen := s.index[user]; !seen {
		s.index[user] = len(s.order)
		s.order = append(s.order, user)
	}
	s.prefs[user] = target
}

// Get returns the user's preference if one was set
func (s *Service) Get(user domain.UserID) (langpack.Code, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.prefs[user]
	return c, ok
}

// Snapshot returns a copy in first-set order
func (s *Service) Snapshot() []domain.Preference {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Preference, 0, len(s.order))
	for _, u := range s.order {
		out = append(out, domain.Preference{User: u, Target: s.prefs[u]})
	}
	return out
}

// Len reports the number of users with a preference
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
