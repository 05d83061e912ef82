package handlers

import (
	"errors"
	"log"
	"strings"

	"pasar/internal/models"
	"pasar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app. The routes
// must sit behind the JWT middleware.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/", h.HandleUpdateProduct)
	productRoutes.Delete("/", h.HandleDeleteProduct)
}

// HandleListProducts returns the catalog grouped by category.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	grouped, err := h.service.GetGroupedProducts()
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return respond(c, fiber.StatusInternalServerError, "An error occurred", err.Error())
	}
	return respond(c, fiber.StatusOK, "Products fetched successfully.", grouped)
}

// HandleCreateProduct creates a new catalog entry.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing product body: %v", err)
		return respond(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}

	if err := h.validate.Struct(product); err != nil {
		return respond(c, fiber.StatusBadRequest, "Validation failed", validationErrorMap(err))
	}

	if err := h.service.CreateProduct(&product); err != nil {
		log.Printf("Error creating product: %v", err)
		if errors.Is(err, services.ErrValidation) {
			return respond(c, fiber.StatusBadRequest, "Something went wrong", err.Error())
		}
		return respond(c, fiber.StatusInternalServerError, "An error occurred", err.Error())
	}

	return respond(c, fiber.StatusOK, "Product created successfully.", product)
}

// productTargetRequest addresses a product by display name and category.
type productTargetRequest struct {
	Name     string                 `json:"name" validate:"required"`
	Category string                 `json:"category" validate:"required"`
	Product  map[string]interface{} `json:"product"`
}

// HandleUpdateProduct merges submitted detail keys into an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var req productTargetRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing product update body: %v", err)
		return respond(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}
	if req.Name == "" || req.Category == "" {
		return respond(c, fiber.StatusBadRequest, "Product name and category are required.", nil)
	}

	product, err := h.service.UpdateProduct(req.Name, req.Category, req.Product)
	if err != nil {
		log.Printf("Error updating product %s/%s: %v", req.Category, req.Name, err)
		if strings.Contains(err.Error(), "not found") {
			return respond(c, fiber.StatusNotFound, "Product not found.", nil)
		}
		return respond(c, fiber.StatusInternalServerError, "An error occurred", err.Error())
	}

	return respond(c, fiber.StatusOK, "Product updated successfully.", product)
}

// HandleDeleteProduct removes a product addressed by name and category.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	var req productTargetRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing product delete body: %v", err)
		return respond(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}
	if req.Name == "" || req.Category == "" {
		return respond(c, fiber.StatusBadRequest, "Product name and category are required.", nil)
	}

	if err := h.service.DeleteProduct(req.Name, req.Category); err != nil {
		log.Printf("Error deleting product %s/%s: %v", req.Category, req.Name, err)
		if strings.Contains(err.Error(), "not found") {
			return respond(c, fiber.StatusNotFound, "Product not found.", nil)
		}
		return respond(c, fiber.StatusInternalServerError, "An error occurred", err.Error())
	}

	return respond(c, fiber.StatusOK, "Product deleted successfully.", nil)
}
