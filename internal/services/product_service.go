package services

import (
	"fmt"

	"pasar/internal/models"
	"pasar/internal/repositories"
)

// CatalogEntry is a product as presented in the grouped listing: the display
// name split out of the detail bag.
type CatalogEntry struct {
	Name    string                 `json:"name"`
	Details map[string]interface{} `json:"details"`
}

// ProductService handles business logic related to the product catalog.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetGroupedProducts returns the catalog grouped by category.
func (s *ProductService) GetGroupedProducts() (map[string][]CatalogEntry, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]CatalogEntry)
	for _, p := range products {
		details := make(map[string]interface{})
		for key, value := range p.Details {
			if key != models.ProductNameKey {
				details[key] = value
			}
		}
		grouped[p.Category] = append(grouped[p.Category], CatalogEntry{
			Name:    p.Name(),
			Details: details,
		})
	}
	return grouped, nil
}

// CreateProduct creates a new catalog entry.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if product.Category == "" {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}
	return s.repo.Create(product)
}

// UpdateProduct merges the submitted detail keys into the product addressed
// by display name and category. Existing keys are overwritten, new keys are
// added, keys not submitted are kept.
func (s *ProductService) UpdateProduct(name, category string, details map[string]interface{}) (*models.Product, error) {
	product, err := s.repo.GetByNameAndCategory(name, category)
	if err != nil {
		return nil, err
	}

	if product.Details == nil {
		product.Details = make(map[string]interface{})
	}
	for key, value := range details {
		product.Details[key] = value
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes the product addressed by display name and category.
func (s *ProductService) DeleteProduct(name, category string) error {
	return s.repo.Delete(name, category)
}
