package repositories

import (
	"fmt"
	"time"

	"pasar/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user with email %s not found", email)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user with username %s not found", username)
		}
		return nil, fmt.Errorf("failed to get user by username %s: %w", username, err)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// GetByPhone retrieves a user by their phone number from the database.
func (r *GORMUserRepository) GetByPhone(phone string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "phone_number = ?", phone).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user with phone %s not found", phone)
		}
		return nil, fmt.Errorf("failed to get user by phone %s: %w", phone, err)
	}
	return &user, nil
}

// Update saves all fields of an existing user.
func (r *GORMUserRepository) Update(user *models.User) error {
	res := r.db.Save(user)
	if res.Error != nil {
		return fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %s not found for update", user.ID)
	}
	return nil
}

// Delete removes a user by ID. The retailer detail row is removed with it.
func (r *GORMUserRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&models.Retailer{}, "user_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete retailer detail for user %s: %w", id, err)
		}
		res := tx.Unscoped().Delete(&models.User{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete user %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("user with ID %s not found for deletion", id)
		}
		return nil
	})
}

// SetOTP stores a pending verification code on the user.
func (r *GORMUserRepository) SetOTP(id string, code int, expiry time.Time, pending models.Role) error {
	res := r.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"otp":          code,
		"otp_expiry":   expiry,
		"pending_role": pending,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to set OTP for user %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %s not found for OTP update", id)
	}
	return nil
}

// ConsumeOTP clears the pending code and flips the granted role flag in a
// single conditional UPDATE. The WHERE clause on the stored code makes the
// clear atomic: a concurrent verification that already consumed the code
// leaves RowsAffected at zero here.
func (r *GORMUserRepository) ConsumeOTP(id string, code int, grant models.Role) error {
	updates := map[string]interface{}{
		"otp":          nil,
		"otp_expiry":   nil,
		"pending_role": "",
	}
	switch grant {
	case models.RoleRetailer:
		updates["is_retailer"] = true
	default:
		updates["is_customer"] = true
	}
	res := r.db.Model(&models.User{}).
		Where("id = ? AND otp = ?", id, code).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to consume OTP for user %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("OTP for user %s already consumed or replaced", id)
	}
	return nil
}
