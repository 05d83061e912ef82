package repositories

import (
	"fmt"
	"sync"
	"time"

	"pasar/internal/models"

	"github.com/google/uuid"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("user with email %s already exists", user.Email)
		}
		if u.Username == user.Username {
			return fmt.Errorf("user with username %s already exists", user.Username)
		}
	}
	r.users[user.ID] = *user
	return nil
}

// GetByEmail returns a user by email.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with email %s not found", email)
}

// GetByUsername returns a user by username.
func (r *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with username %s not found", username)
}

// GetByID returns a user by ID.
func (r *MockUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %s not found", id)
	}
	return &user, nil
}

// GetByPhone returns a user by phone number.
func (r *MockUserRepository) GetByPhone(phone string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.PhoneNumber == phone {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with phone %s not found", phone)
}

// Update modifies an existing user.
func (r *MockUserRepository) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return fmt.Errorf("user with ID %s not found for update", user.ID)
	}
	r.users[user.ID] = *user
	return nil
}

// Delete removes a user by ID.
func (r *MockUserRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("user with ID %s not found for deletion", id)
	}
	delete(r.users, id)
	return nil
}

// SetOTP stores a pending verification code on the user.
func (r *MockUserRepository) SetOTP(id string, code int, expiry time.Time, pending models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user with ID %s not found for OTP update", id)
	}
	user.OTP = &code
	user.OTPExpiry = &expiry
	user.PendingRole = pending
	r.users[id] = user
	return nil
}

// ConsumeOTP clears the pending code and grants the role if the stored
// code still matches.
func (r *MockUserRepository) ConsumeOTP(id string, code int, grant models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok || user.OTP == nil || *user.OTP != code {
		return fmt.Errorf("OTP for user %s already consumed or replaced", id)
	}
	user.OTP = nil
	user.OTPExpiry = nil
	user.PendingRole = ""
	if grant == models.RoleRetailer {
		user.IsRetailer = true
	} else {
		user.IsCustomer = true
	}
	r.users[id] = user
	return nil
}
