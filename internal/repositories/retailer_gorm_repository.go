package repositories

import (
	"fmt"

	"pasar/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMRetailerRepository is a GORM implementation of RetailerRepository.
type GORMRetailerRepository struct {
	db *gorm.DB
}

// NewGORMRetailerRepository creates a new instance of GORMRetailerRepository.
func NewGORMRetailerRepository(db *gorm.DB) *GORMRetailerRepository {
	return &GORMRetailerRepository{
		db: db,
	}
}

// Create creates a new retailer detail record.
func (r *GORMRetailerRepository) Create(retailer *models.Retailer) error {
	if retailer.ID == "" {
		retailer.ID = uuid.New().String()
	}
	if err := r.db.Create(retailer).Error; err != nil {
		return fmt.Errorf("failed to create retailer detail: %w", err)
	}
	return nil
}

// GetByUserID retrieves the retailer detail owned by the given user.
func (r *GORMRetailerRepository) GetByUserID(userID string) (*models.Retailer, error) {
	var retailer models.Retailer
	if err := r.db.First(&retailer, "user_id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("retailer detail for user %s not found", userID)
		}
		return nil, fmt.Errorf("failed to get retailer detail for user %s: %w", userID, err)
	}
	return &retailer, nil
}

// DeleteByUserID removes the retailer detail owned by the given user.
// Deleting a user without a retailer detail is not an error.
func (r *GORMRetailerRepository) DeleteByUserID(userID string) error {
	if err := r.db.Unscoped().Delete(&models.Retailer{}, "user_id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to delete retailer detail for user %s: %w", userID, err)
	}
	return nil
}
