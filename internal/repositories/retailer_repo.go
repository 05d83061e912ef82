package repositories

import "pasar/internal/models"

// RetailerRepository defines the interface for retailer-detail data access.
type RetailerRepository interface {
	Create(retailer *models.Retailer) error
	GetByUserID(userID string) (*models.Retailer, error)
	DeleteByUserID(userID string) error
}
