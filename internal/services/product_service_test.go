package services_test

import (
	"testing"

	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductService_GetGroupedProducts(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	svc := services.NewProductService(repo)

	require.NoError(t, repo.Create(&models.Product{
		Category: "electronics",
		Details:  map[string]interface{}{"name": "Laptop", "price": 1200.0, "brand": "Acme"},
	}))
	require.NoError(t, repo.Create(&models.Product{
		Category: "electronics",
		Details:  map[string]interface{}{"name": "Mouse", "price": 25.0},
	}))
	require.NoError(t, repo.Create(&models.Product{
		Category: "grocery",
		Details:  map[string]interface{}{"name": "Rice", "weight": "5kg"},
	}))

	grouped, err := svc.GetGroupedProducts()
	require.NoError(t, err)
	assert.Len(t, grouped, 2)
	assert.Len(t, grouped["electronics"], 2)
	assert.Len(t, grouped["grocery"], 1)

	// The reserved name key is split out of the detail bag.
	entry := grouped["grocery"][0]
	assert.Equal(t, "Rice", entry.Name)
	assert.Equal(t, "5kg", entry.Details["weight"])
	assert.NotContains(t, entry.Details, "name")
}

func TestProductService_CreateProduct_RequiresCategory(t *testing.T) {
	svc := services.NewProductService(repositories.NewMockProductRepository())

	err := svc.CreateProduct(&models.Product{
		Details: map[string]interface{}{"name": "Orphan"},
	})
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestProductService_UpdateProduct_MergesDetails(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	svc := services.NewProductService(repo)

	require.NoError(t, repo.Create(&models.Product{
		Category: "electronics",
		Details:  map[string]interface{}{"name": "Laptop", "price": 1200.0, "brand": "Acme"},
	}))

	updated, err := svc.UpdateProduct("Laptop", "electronics", map[string]interface{}{
		"price": 999.0,
		"ram":   "16GB",
	})
	require.NoError(t, err)
	// Submitted keys overwrite or extend; untouched keys survive.
	assert.Equal(t, 999.0, updated.Details["price"])
	assert.Equal(t, "16GB", updated.Details["ram"])
	assert.Equal(t, "Acme", updated.Details["brand"])
	assert.Equal(t, "Laptop", updated.Name())
}

func TestProductService_UpdateProduct_NotFound(t *testing.T) {
	svc := services.NewProductService(repositories.NewMockProductRepository())

	_, err := svc.UpdateProduct("Ghost", "electronics", map[string]interface{}{"price": 1.0})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestProductService_DeleteProduct(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	svc := services.NewProductService(repo)

	require.NoError(t, repo.Create(&models.Product{
		Category: "grocery",
		Details:  map[string]interface{}{"name": "Rice"},
	}))

	require.NoError(t, svc.DeleteProduct("Rice", "grocery"))
	err := svc.DeleteProduct("Rice", "grocery")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
