package service

import (
	"context"
	"database/sql"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/inventory_api/internal/models"
)

type memoryStore struct {
	products map[int64]models.Product
	nextID   int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{products: make(map[int64]models.Product)}
}

func (s *memoryStore) List() ([]models.Product, error) {
	var ids []int64
	for id, p := range s.products {
		if p.DeletedAt == nil {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	list := []models.Product{}
	for _, id := range ids {
		list = append(list, s.products[id])
	}
	return list, nil
}

func (s *memoryStore) GetByID(id int64) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok || p.DeletedAt != nil {
		return nil, sql.ErrNoRows
	}
	return &p, nil
}

func (s *memoryStore) Create(product *models.Product) error {
	s.nextID++
	product.ID = s.nextID
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	s.products[product.ID] = *product
	return nil
}

func (s *memoryStore) Update(product *models.Product) error {
	existing, ok := s.products[product.ID]
	if !ok || existing.DeletedAt != nil {
		return sql.ErrNoRows
	}
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now()
	s.products[product.ID] = *product
	return nil
}

func (s *memoryStore) SoftDelete(id int64) (bool, error) {
	p, ok := s.products[id]
	if !ok || p.DeletedAt != nil {
		return false, nil
	}
	now := time.Now()
	p.DeletedAt = &now
	s.products[id] = p
	return true, nil
}

func (s *memoryStore) Categories() ([]string, error) {
	seen := map[string]bool{}
	for _, p := range s.products {
		if p.DeletedAt != nil || p.Category == nil || *p.Category == "" {
			continue
		}
		seen[*p.Category] = true
	}
	categories := []string{}
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories, nil
}

func validRequest() *ProductRequest {
	price := decimal.RequireFromString("250.00")
	quantity := 10
	category := "Grains"
	return &ProductRequest{
		Name:     "Rice 5kg",
		Price:    &price,
		Quantity: &quantity,
		Category: &category,
	}
}

func TestCreateProduct(t *testing.T) {
	store := newMemoryStore()
	svc := NewProductService(store, nil)

	product, err := svc.CreateProduct(context.Background(), validRequest())
	require.NoError(t, err)
	require.Equal(t, int64(1), product.ID)
	require.Equal(t, "Rice 5kg", product.Name)
	require.Equal(t, "250.00", product.Price.StringFixed(2))
	require.Equal(t, 10, product.Quantity)
	require.NotNil(t, product.Category)
	require.Equal(t, "Grains", *product.Category)

	list, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)

	categories, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Grains"}, categories)
}

func TestCreateProductMissingName(t *testing.T) {
	store := newMemoryStore()
	svc := NewProductService(store, nil)

	req := validRequest()
	req.Name = ""

	_, err := svc.CreateProduct(context.Background(), req)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "product_name")
	require.Equal(t, "The product_name field is required.", verr.Fields["product_name"][0])

	// The failed create must not add a record.
	list, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestCreateProductWhitespaceName(t *testing.T) {
	store := newMemoryStore()
	svc := NewProductService(store, nil)

	req := validRequest()
	req.Name = "   "

	_, err := svc.CreateProduct(context.Background(), req)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "product_name")
}

func TestCreateProductMissingPriceAndQuantity(t *testing.T) {
	store := newMemoryStore()
	svc := NewProductService(store, nil)

	req := &ProductRequest{Name: "Rice 5kg"}

	_, err := svc.CreateProduct(context.Background(), req)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "price")
	require.Contains(t, verr.Fields, "quantity")
}

func TestCreateProductNegativeValues(t *testing.T) {
	store := newMemoryStore()
	svc := NewProductService(store, nil)

	req := validRequest()
	price := decimal.RequireFromString("-1.00")
	quantity := -5
	req.Price = &price
	req.Quantity = &quantity

	_, err := svc.CreateProduct(context.Background(), req)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "price")
	require.Contains(t, verr.Fields, "quantity")
}

func TestCreateProductNormalizesFields(t *testing.T) {
	store := newMemoryStore()
	svc := NewProductService(store, nil)

	req := validRequest()
	price := decimal.RequireFromString("250.5")
	empty := "   "
	req.Price = &price
	req.Category = &empty
	req.Description = &empty

	product, err := svc.CreateProduct(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "250.50", product.Price.StringFixed(2))
	require.Nil(t, product.Category)
	require.Nil(t, product.Description)
}

func TestGetProduct(t *testing.T) {
	store := newMemoryStore()
	svc := NewProductService(store, nil)

	created, err := svc.CreateProduct(context.Background(), validRequest())
	require.NoError(t, err)

	got, err := svc.GetProduct(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)

	_, err = svc.GetProduct(context.Background(), 999)
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateProductNotFound(t *testing.T) {
	store := newMemoryStore()
	svc := NewProductService(store, nil)

	_, err := svc.UpdateProduct(context.Background(), 999, validRequest())
	require.ErrorIs(t, err, ErrProductNotFound)

	// A soft-deleted id behaves the same as an unknown one.
	created, err := svc.CreateProduct(context.Background(), validRequest())
	require.NoError(t, err)
	require.NoError(t, svc.DeleteProduct(context.Background(), created.ID))

	_, err = svc.UpdateProduct(context.Background(), created.ID, validRequest())
	require.ErrorIs(t, err, ErrProductNotFound)

	list, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestDeleteProduct(t *testing.T) {
	store := newMemoryStore()
	svc := NewProductService(store, nil)

	created, err := svc.CreateProduct(context.Background(), validRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(context.Background(), created.ID))

	// Deleted records never appear in list results.
	list, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)

	// A second delete on the same id reports not found.
	err = svc.DeleteProduct(context.Background(), created.ID)
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeletedIDIsNeverReused(t *testing.T) {
	store := newMemoryStore()
	svc := NewProductService(store, nil)

	first, err := svc.CreateProduct(context.Background(), validRequest())
	require.NoError(t, err)
	require.NoError(t, svc.DeleteProduct(context.Background(), first.ID))

	second, err := svc.CreateProduct(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
}

func TestCreateUpdateRoundTrip(t *testing.T) {
	store := newMemoryStore()
	svc := NewProductService(store, nil)

	created, err := svc.CreateProduct(context.Background(), validRequest())
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(context.Background(), created.ID, validRequest())
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)

	list, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Rice 5kg", list[0].Name)
	require.True(t, list[0].Price.Equal(decimal.RequireFromString("250.00")))
	require.Equal(t, 10, list[0].Quantity)
	require.Equal(t, "Grains", *list[0].Category)
}

func TestListOrderIsStable(t *testing.T) {
	store := newMemoryStore()
	svc := NewProductService(store, nil)

	for _, name := range []string{"Rice 5kg", "Sugar 1kg", "Salt 500g"} {
		req := validRequest()
		req.Name = name
		_, err := svc.CreateProduct(context.Background(), req)
		require.NoError(t, err)
	}

	first, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	second, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Equal(t, first, second)
}
