package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/automaten-pro/automaten-api/internal/domain"
	"github.com/automaten-pro/automaten-api/internal/domain/entity"
	"github.com/automaten-pro/automaten-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, barcode, COALESCE(category_id::TEXT, ''), buy_price, sell_price, vat_rate, deposit,
	current_stock, min_stock, expiry_date, status, created_at, updated_at`

// ProductRepo implements ProductRepository on PostgreSQL (pool or tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository builds the persistence adapter. Pass pool or tx.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persists a new product. Stock starts at whatever the caller set;
// the initial movement is written by the inventory engine.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, barcode, category_id, buy_price, sell_price, vat_rate, deposit,
			current_stock, min_stock, expiry_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, '')::UUID, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.Barcode, p.CategoryID, p.BuyPrice, p.SellPrice, p.VATRate, p.Deposit,
		p.CurrentStock, p.MinStock, p.ExpiryDate, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrBarcodeExists
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID returns a product or (nil, nil) when absent.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByBarcode returns a product by its unique barcode or (nil, nil).
func (r *ProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE barcode = $1`, barcode)
}

// GetForUpdate locks the product row for the rest of the transaction. Only
// meaningful when the repo is bound to a tx.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) getOne(query string, arg any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.Name, &p.Barcode, &p.CategoryID, &p.BuyPrice, &p.SellPrice, &p.VATRate, &p.Deposit,
		&p.CurrentStock, &p.MinStock, &p.ExpiryDate, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update rewrites the editable fields. Stock is excluded on purpose: it only
// changes through UpdateStock inside a movement transaction.
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, barcode = $3, category_id = NULLIF($4, '')::UUID, buy_price = $5,
			sell_price = $6, vat_rate = $7, deposit = $8, min_stock = $9, expiry_date = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.Barcode, p.CategoryID, p.BuyPrice, p.SellPrice, p.VATRate, p.Deposit,
		p.MinStock, p.ExpiryDate, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrBarcodeExists
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock sets the tracked quantity. Callers hold the row lock.
func (r *ProductRepo) UpdateStock(id string, stock int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET current_stock = $2, updated_at = now() WHERE id = $1`, id, stock)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// SetStatus flips the soft-delete flag.
func (r *ProductRepo) SetStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set product status: %w", err)
	}
	return nil
}

// List returns products, optionally filtered by status, newest first.
func (r *ProductRepo) List(status string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE ($1 = '' OR status = $1) ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, status, limit, offset)
}

// CountActiveByCategory counts active products in a category (delete guard).
func (r *ProductRepo) CountActiveByCategory(categoryID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM products WHERE category_id = $1::UUID AND status = 'active'`, categoryID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return n, nil
}

// ListExpiring returns active products whose expiry date falls within the
// window, soonest first.
func (r *ProductRepo) ListExpiring(withinDays int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE status = 'active' AND expiry_date IS NOT NULL
		  AND expiry_date <= CURRENT_DATE + $1 * INTERVAL '1 day'
		ORDER BY expiry_date ASC`
	return r.list(query, withinDays)
}

// ListLowStock returns active products at or below their minimum stock.
func (r *ProductRepo) ListLowStock() ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE status = 'active' AND min_stock > 0 AND current_stock <= min_stock
		ORDER BY current_stock ASC`
	return r.list(query)
}

func (r *ProductRepo) list(query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var out []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Barcode, &p.CategoryID, &p.BuyPrice, &p.SellPrice, &p.VATRate, &p.Deposit,
			&p.CurrentStock, &p.MinStock, &p.ExpiryDate, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
