package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/automaten-pro/automaten-api/internal/domain/entity"
	"github.com/automaten-pro/automaten-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implements CategoryRepository on PostgreSQL (pool or tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository builds the persistence adapter.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persists a new category.
func (r *CategoryRepo) Create(c *entity.Category) error {
	query := `
		INSERT INTO categories (id, name, color, parent_id, sort_order, status, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, '')::UUID, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.Color, c.ParentID, c.SortOrder, c.Status, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID returns a category or (nil, nil) when absent.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	query := `SELECT id, name, color, COALESCE(parent_id::TEXT, ''), sort_order, status, created_at, updated_at
		FROM categories WHERE id = $1`
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.Color, &c.ParentID, &c.SortOrder, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// Update rewrites the editable fields.
func (r *CategoryRepo) Update(c *entity.Category) error {
	query := `
		UPDATE categories SET name = $2, color = $3, parent_id = NULLIF($4, '')::UUID, sort_order = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.Color, c.ParentID, c.SortOrder, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// SetStatus flips the soft-delete flag.
func (r *CategoryRepo) SetStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE categories SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set category status: %w", err)
	}
	return nil
}

// List returns categories ordered for menu display.
func (r *CategoryRepo) List(status string) ([]*entity.Category, error) {
	query := `SELECT id, name, color, COALESCE(parent_id::TEXT, ''), sort_order, status, created_at, updated_at
		FROM categories WHERE ($1 = '' OR status = $1) ORDER BY sort_order ASC, name ASC`
	rows, err := r.q.Query(context.Background(), query, status)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var out []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.ParentID, &c.SortOrder, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
