package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/automaten-pro/automaten-api/internal/domain/entity"
	"github.com/automaten-pro/automaten-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, product_id, type, quantity, previous_stock, new_stock,
	reference_type, reference_id, note, COALESCE(user_id::TEXT, ''), created_at`

// StockMovementRepo implements the append-only movement ledger on PostgreSQL.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository builds the persistence adapter.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create appends one ledger row.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, type, quantity, previous_stock, new_stock,
			reference_type, reference_id, note, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, '')::UUID, $11)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductID, m.Type, m.Quantity, m.PreviousStock, m.NewStock,
		m.ReferenceType, m.ReferenceID, m.Note, m.UserID, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByProduct returns the ledger for one product, newest first.
func (r *StockMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements
		WHERE product_id = $1
		  AND ($2::TIMESTAMPTZ IS NULL OR created_at >= $2)
		  AND ($3::TIMESTAMPTZ IS NULL OR created_at <= $3)
		ORDER BY created_at DESC LIMIT $4 OFFSET $5`
	return r.list(query, productID, from, to, limit, offset)
}

// ListRecent returns the latest ledger rows across all products.
func (r *StockMovementRepo) ListRecent(limit int) ([]*entity.StockMovement, error) {
	return r.list(`SELECT `+movementColumns+` FROM stock_movements ORDER BY created_at DESC LIMIT $1`, limit)
}

func (r *StockMovementRepo) list(query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var out []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.PreviousStock, &m.NewStock,
			&m.ReferenceType, &m.ReferenceID, &m.Note, &m.UserID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
