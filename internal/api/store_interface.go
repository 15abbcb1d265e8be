package api

import (
	"time"

	"github.com/growthlab/diagnostic/internal/models"
)

// Store is the persistence surface the router needs. The narrower interfaces
// declared by the services packages are satisfied by any Store.
type Store interface {
	AddResult(r *models.DiagnosticResult) error
	ListResultsByUser(userID string) ([]*models.DiagnosticResult, error)
	DeleteResultsBefore(cutoff time.Time) (int, error)

	AddUser(u *models.User) error
	FindUserByEmail(email string) (*models.User, error)
}

var _ Store = (*memoryStore)(nil)
