package repositories

import (
	"fmt"
	"sync"

	"pasar/internal/models"

	"github.com/google/uuid"
)

// MockRetailerRepository is an in-memory implementation of RetailerRepository.
type MockRetailerRepository struct {
	retailers map[string]models.Retailer // keyed by user ID
	mu        sync.RWMutex
}

// NewMockRetailerRepository creates a new instance of MockRetailerRepository.
func NewMockRetailerRepository() *MockRetailerRepository {
	return &MockRetailerRepository{
		retailers: make(map[string]models.Retailer),
	}
}

// Create adds a new retailer detail record.
func (r *MockRetailerRepository) Create(retailer *models.Retailer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if retailer.ID == "" {
		retailer.ID = uuid.New().String()
	}
	if _, ok := r.retailers[retailer.UserID]; ok {
		return fmt.Errorf("retailer detail for user %s already exists", retailer.UserID)
	}
	r.retailers[retailer.UserID] = *retailer
	return nil
}

// GetByUserID returns the retailer detail owned by the given user.
func (r *MockRetailerRepository) GetByUserID(userID string) (*models.Retailer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	retailer, ok := r.retailers[userID]
	if !ok {
		return nil, fmt.Errorf("retailer detail for user %s not found", userID)
	}
	return &retailer, nil
}

// DeleteByUserID removes the retailer detail owned by the given user.
func (r *MockRetailerRepository) DeleteByUserID(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.retailers, userID)
	return nil
}
