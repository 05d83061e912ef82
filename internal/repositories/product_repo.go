package repositories

import (
	"pasar/internal/models"
)

// ProductRepository defines the interface for product data access.
// Products are addressed by their display name within a category.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByNameAndCategory(name, category string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(name, category string) error
}
