package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/stockroom/inventory_api/internal/cache"
	"github.com/stockroom/inventory_api/internal/models"
)

// ProductStore is the persistence contract the service depends on. It is
// implemented by repository.ProductRepository.
type ProductStore interface {
	List() ([]models.Product, error)
	GetByID(id int64) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	SoftDelete(id int64) (bool, error)
	Categories() ([]string, error)
}

// ProductService handles product CRUD operations: validation, not-found
// mapping, and keeping the list cache in step with mutations.
type ProductService struct {
	store    ProductStore
	cache    *cache.ProductCache
	validate *validator.Validate
}

// NewProductService constructs a ProductService. cache may be nil, in which
// case every list goes to the store.
func NewProductService(store ProductStore, productCache *cache.ProductCache) *ProductService {
	v := validator.New()
	// Report fields under their wire names so validation errors key by the
	// same names the client submitted.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &ProductService{
		store:    store,
		cache:    productCache,
		validate: v,
	}
}

// ProductRequest carries the fillable fields for create and update. Price and
// quantity are pointers so a missing field is distinguishable from a zero.
type ProductRequest struct {
	Name        string           `json:"product_name" validate:"required"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Quantity    *int             `json:"quantity" validate:"required,min=0"`
	Category    *string          `json:"category"`
}

// ListProducts returns all active products, serving from the cache when warm.
// Cache failures degrade to a store read and are logged, never surfaced.
func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	if s.cache != nil {
		products, hit, err := s.cache.GetList(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("product list cache read failed")
		} else if hit {
			return products, nil
		}
	}

	products, err := s.store.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetList(ctx, products); err != nil {
			log.Warn().Err(err).Msg("product list cache write failed")
		}
	}
	return products, nil
}

// ListCategories returns the distinct non-empty categories of active products.
func (s *ProductService) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := s.store.Categories()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetProduct returns an active product by id. Returns ErrProductNotFound for
// unknown or soft-deleted ids.
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.store.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// CreateProduct validates the request and stores a new product.
func (s *ProductService) CreateProduct(ctx context.Context, req *ProductRequest) (*models.Product, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: normalizeOptional(req.Description),
		Price:       req.Price.Round(2),
		Quantity:    *req.Quantity,
		Category:    normalizeOptional(req.Category),
	}

	if err := s.store.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.invalidateCache(ctx)
	return product, nil
}

// UpdateProduct validates the request and replaces the fillable fields of the
// product with the given id. Returns ErrProductNotFound when the id does not
// reference an active product.
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, req *ProductRequest) (*models.Product, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Description: normalizeOptional(req.Description),
		Price:       req.Price.Round(2),
		Quantity:    *req.Quantity,
		Category:    normalizeOptional(req.Category),
	}

	if err := s.store.Update(product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.invalidateCache(ctx)
	return product, nil
}

// DeleteProduct soft-deletes the product with the given id.
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	deleted, err := s.store.SoftDelete(id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !deleted {
		return ErrProductNotFound
	}

	s.invalidateCache(ctx)
	return nil
}

// RefreshCache reloads the active product list into the cache unconditionally.
// Used by the cache warm worker.
func (s *ProductService) RefreshCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	products, err := s.store.List()
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}
	return s.cache.SetList(ctx, products)
}

// validateRequest checks presence and well-formedness of the fillable fields
// and returns a *ValidationError keyed by wire field names.
func (s *ProductService) validateRequest(req *ProductRequest) error {
	verr := &ValidationError{}

	if err := s.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validation internal error: %w", err)
		}
		for _, fe := range fieldErrs {
			verr.add(fe.Field(), validationMessage(fe))
		}
	}

	// Checks the validator tags cannot express.
	if req.Name != "" && strings.TrimSpace(req.Name) == "" {
		verr.add("product_name", "The product_name field is required.")
	}
	if req.Price != nil && req.Price.IsNegative() {
		verr.add("price", "The price field must be at least 0.")
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// validationMessage renders a single human-readable message for a failed rule.
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", fe.Field())
	case "min":
		return fmt.Sprintf("The %s field must be at least %s.", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("The %s field is invalid.", fe.Field())
	}
}

// normalizeOptional trims an optional string and maps empty to NULL, so blank
// form inputs do not persist as empty strings.
func normalizeOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (s *ProductService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("product list cache invalidation failed")
	}
}
