package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"product-api/pkg/database"
	"product-api/pkg/model"

	"github.com/google/uuid"
)

// ErrNotFound is returned by writes that matched no row
var ErrNotFound = errors.New("product not found")

// Repository defines the product repository interface
type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	GetAll(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// repository implements the product repository
type repository struct {
	db database.DBTX
}

// NewRepository creates a new product repository
func NewRepository(db *sql.DB) Repository {
	return &repository{
		db: db,
	}
}

const selectProducts = `
	SELECT p.id, p.user_id, u.name, p.name, p.description, p.price, p.created_at, p.updated_at
	FROM products p
	JOIN users u ON u.id = p.user_id`

// Create inserts a new product. Price is read back as stored.
func (r *repository) Create(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (id, user_id, name, description, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING price`

	err := r.db.QueryRowContext(ctx, query,
		product.ID, product.UserID, product.Name, product.Description, product.Price,
		product.CreatedAt, product.UpdatedAt).Scan(&product.Price)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

// GetByID retrieves a product together with its owner's name
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := selectProducts + ` WHERE p.id = $1`

	product := &model.Product{}
	err := scanProduct(r.db.QueryRowContext(ctx, query, id), product)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Product not found
		}
		return nil, err
	}

	return product, nil
}

// GetAll lists every product, newest first
func (r *repository) GetAll(ctx context.Context) ([]model.Product, error) {
	query := selectProducts + ` ORDER BY p.created_at DESC, p.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		var product model.Product
		if err := scanProduct(rows, &product); err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, rows.Err()
}

// Update persists the mutable fields of a product. Owner and creation time never change.
func (r *repository) Update(ctx context.Context, product *model.Product) error {
	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, updated_at = $4
		WHERE id = $5
		RETURNING price`

	err := r.db.QueryRowContext(ctx, query,
		product.Name, product.Description, product.Price, product.UpdatedAt, product.ID).Scan(&product.Price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// Delete removes a product
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return requireRow(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner, p *model.Product) error {
	return row.Scan(&p.ID, &p.UserID, &p.OwnerName, &p.Name, &p.Description, &p.Price, &p.CreatedAt, &p.UpdatedAt)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
