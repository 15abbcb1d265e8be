package api

import (
	"sync"
	"time"

	"github.com/growthlab/diagnostic/internal/models"
	"github.com/growthlab/diagnostic/internal/services"
)

// memoryStore keeps results and users in process memory. Results are
// append-only; completion order is insertion order. Suitable for development
// and tests; production deployments use the SQLite store.
type memoryStore struct {
	mu           sync.RWMutex
	results      []*models.DiagnosticResult
	usersByEmail map[string]*models.User
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() Store {
	return &memoryStore{usersByEmail: map[string]*models.User{}}
}

func (s *memoryStore) AddResult(r *models.DiagnosticResult) error {
	if r == nil {
		return services.NewInvalidError("result required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, r)
	return nil
}

func (s *memoryStore) ListResultsByUser(userID string) ([]*models.DiagnosticResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.DiagnosticResult, 0, len(s.results))
	for _, r := range s.results {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memoryStore) DeleteResultsBefore(cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.results[:0]
	removed := 0
	for _, r := range s.results {
		if r.CompletedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	s.results = kept
	return removed, nil
}

func (s *memoryStore) AddUser(u *models.User) error {
	if u == nil {
		return services.NewInvalidError("user required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.usersByEmail[u.Email]; ok {
		return services.NewConflictError("email exists")
	}
	s.usersByEmail[u.Email] = u
	return nil
}

func (s *memoryStore) FindUserByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.usersByEmail[email]; ok {
		copy := *u
		return &copy, nil
	}
	return nil, nil
}
