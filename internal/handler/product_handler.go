package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/stockroom/inventory_api/internal/service"
)

// ProductHandler handles product CRUD HTTP endpoints. Response bodies follow
// the published wire contract: entities and arrays are returned raw, field
// validation failures come back as 422 {"errors": {field: [messages]}}.
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.productService.ListProducts(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list products")
		c.JSON(500, gin.H{"message": "failed to retrieve products"})
		return
	}

	c.JSON(200, products)
}

// GetProduct handles GET /api/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(404, gin.H{"message": "product not found"})
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(404, gin.H{"message": "product not found"})
			return
		}
		log.Error().Err(err).Int64("id", id).Msg("failed to get product")
		c.JSON(500, gin.H{"message": "failed to retrieve product"})
		return
	}

	c.JSON(200, product)
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req service.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"message": "invalid request body"})
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(422, gin.H{"errors": verr.Fields})
			return
		}
		log.Error().Err(err).Msg("failed to create product")
		c.JSON(500, gin.H{"message": "failed to create product"})
		return
	}

	c.JSON(201, product)
}

// UpdateProduct handles PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(404, gin.H{"message": "product not found"})
		return
	}

	var req service.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"message": "invalid request body"})
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(422, gin.H{"errors": verr.Fields})
			return
		}
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(404, gin.H{"message": "product not found"})
			return
		}
		log.Error().Err(err).Int64("id", id).Msg("failed to update product")
		c.JSON(500, gin.H{"message": "failed to update product"})
		return
	}

	c.JSON(200, product)
}

// DeleteProduct handles DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(404, gin.H{"message": "product not found"})
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(404, gin.H{"message": "product not found"})
			return
		}
		log.Error().Err(err).Int64("id", id).Msg("failed to delete product")
		c.JSON(500, gin.H{"message": "failed to delete product"})
		return
	}

	c.Status(204)
}

// ListCategories handles GET /api/categories
func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.productService.ListCategories(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list categories")
		c.JSON(500, gin.H{"message": "failed to retrieve categories"})
		return
	}

	c.JSON(200, categories)
}
