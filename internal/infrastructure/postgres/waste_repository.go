package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/automaten-pro/automaten-api/internal/domain/entity"
	"github.com/automaten-pro/automaten-api/internal/domain/repository"
)

var _ repository.WasteRepository = (*WasteRepo)(nil)

// WasteRepo implements the append-only waste audit trail on PostgreSQL.
// There is no update or delete: the rows are tax records.
type WasteRepo struct {
	q Querier
}

// NewWasteRepository builds the persistence adapter.
func NewWasteRepository(q Querier) *WasteRepo {
	return &WasteRepo{q: q}
}

// Create appends one waste entry. Photos are stored as a jsonb array.
func (r *WasteRepo) Create(e *entity.WasteEntry) error {
	photos := e.Photos
	if photos == nil {
		photos = []string{}
	}
	photosJSON, err := json.Marshal(photos)
	if err != nil {
		return fmt.Errorf("marshal photos: %w", err)
	}
	query := `
		INSERT INTO waste_entries (id, product_id, quantity, reason, unit_cost, total_cost,
			tax_deductible, estimated_tax_saving, photos, note, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, '')::UUID, $12)`
	_, err = r.q.Exec(context.Background(), query,
		e.ID, e.ProductID, e.Quantity, e.Reason, e.UnitCost, e.TotalCost,
		e.TaxDeductible, e.EstimatedTaxSaving, photosJSON, e.Note, e.UserID, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert waste entry: %w", err)
	}
	return nil
}

// GetByID returns one entry or (nil, nil) when absent.
func (r *WasteRepo) GetByID(id string) (*entity.WasteEntry, error) {
	query := `SELECT id, product_id, quantity, reason, unit_cost, total_cost,
			tax_deductible, estimated_tax_saving, photos, note, COALESCE(user_id::TEXT, ''), created_at
		FROM waste_entries WHERE id = $1`
	e, err := scanWasteEntry(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get waste entry: %w", err)
	}
	return e, nil
}

// ListPeriod returns entries in the window, newest first.
func (r *WasteRepo) ListPeriod(from, to time.Time, limit, offset int) ([]*entity.WasteEntry, error) {
	query := `SELECT id, product_id, quantity, reason, unit_cost, total_cost,
			tax_deductible, estimated_tax_saving, photos, note, COALESCE(user_id::TEXT, ''), created_at
		FROM waste_entries WHERE created_at BETWEEN $1 AND $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list waste entries: %w", err)
	}
	defer rows.Close()
	var out []*entity.WasteEntry
	for rows.Next() {
		e, err := scanWasteEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan waste entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanWasteEntry(row pgx.Row) (*entity.WasteEntry, error) {
	var e entity.WasteEntry
	var photosJSON []byte
	if err := row.Scan(&e.ID, &e.ProductID, &e.Quantity, &e.Reason, &e.UnitCost, &e.TotalCost,
		&e.TaxDeductible, &e.EstimatedTaxSaving, &photosJSON, &e.Note, &e.UserID, &e.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(photosJSON, &e.Photos); err != nil {
		return nil, fmt.Errorf("unmarshal photos: %w", err)
	}
	return &e, nil
}
