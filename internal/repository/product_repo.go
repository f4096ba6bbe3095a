package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/stockroom/inventory_api/internal/models"
)

// ProductRepository handles data access for products. All read paths exclude
// soft-deleted rows; writes only touch active rows so the not-found check and
// the mutation are a single atomic statement.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns all active products ordered by id, so repeated calls agree on
// order absent mutation.
func (r *ProductRepository) List() ([]models.Product, error) {
	const q = `SELECT * FROM products WHERE deleted_at IS NULL ORDER BY id`

	stmt, err := r.db.Preparex(q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	products := []models.Product{}
	if err := stmt.Select(&products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID returns a single active product by id.
func (r *ProductRepository) GetByID(id int64) (*models.Product, error) {
	const q = `SELECT * FROM products WHERE id = $1 AND deleted_at IS NULL LIMIT 1`

	stmt, err := r.db.Preparex(q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var p models.Product
	if err := stmt.Get(&p, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts a new product and fills in its generated id and timestamps.
func (r *ProductRepository) Create(product *models.Product) error {
	const q = `INSERT INTO products (product_name, description, price, quantity, category)
              VALUES ($1, $2, $3, $4, $5)
              RETURNING id, created_at, updated_at`

	return r.db.QueryRowx(q,
		product.Name,
		product.Description,
		product.Price,
		product.Quantity,
		product.Category,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

// Update replaces the fillable fields of an active product. It returns
// sql.ErrNoRows when the id does not reference an active row, so callers can
// distinguish not-found from other failures.
func (r *ProductRepository) Update(product *models.Product) error {
	const q = `UPDATE products
              SET product_name = $1, description = $2, price = $3, quantity = $4, category = $5,
                  updated_at = NOW()
              WHERE id = $6 AND deleted_at IS NULL
              RETURNING created_at, updated_at`

	return r.db.QueryRowx(q,
		product.Name,
		product.Description,
		product.Price,
		product.Quantity,
		product.Category,
		product.ID,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
}

// SoftDelete marks an active product as deleted. It reports whether a row was
// affected; false means the id was unknown or already deleted.
func (r *ProductRepository) SoftDelete(id int64) (bool, error) {
	const q = `UPDATE products SET deleted_at = NOW(), updated_at = NOW()
              WHERE id = $1 AND deleted_at IS NULL`

	res, err := r.db.Exec(q, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Categories returns the distinct non-empty categories across active products.
func (r *ProductRepository) Categories() ([]string, error) {
	const q = `SELECT DISTINCT category FROM products
              WHERE deleted_at IS NULL AND category IS NOT NULL AND category <> ''
              ORDER BY category`

	categories := []string{}
	if err := r.db.Select(&categories, q); err != nil {
		return nil, err
	}
	return categories, nil
}
