package repositories

import (
	"time"

	"pasar/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	GetByPhone(phone string) (*models.User, error)
	Update(user *models.User) error
	Delete(id string) error
	// SetOTP attaches a pending code, its expiry and the role it will grant.
	SetOTP(id string, code int, expiry time.Time, pending models.Role) error
	// ConsumeOTP atomically clears the pending code and grants the role,
	// conditional on the stored code still matching. Fails if the code was
	// already consumed or replaced (compare-and-clear).
	ConsumeOTP(id string, code int, grant models.Role) error
}
