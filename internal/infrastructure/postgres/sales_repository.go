package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/automaten-pro/automaten-api/internal/domain"
	"github.com/automaten-pro/automaten-api/internal/domain/entity"
	"github.com/automaten-pro/automaten-api/internal/domain/repository"
)

var _ repository.SalesRepository = (*SalesRepo)(nil)

const sessionColumns = `id, machine_id, status, total_net, total_vat, total_deposit, total_gross,
	item_count, email_sent, COALESCE(opened_by::TEXT, ''), opened_at, closed_at`

// SalesRepo implements SalesRepository on PostgreSQL (pool or tx).
type SalesRepo struct {
	q Querier
}

// NewSalesRepository builds the persistence adapter.
func NewSalesRepository(q Querier) *SalesRepo {
	return &SalesRepo{q: q}
}

// CreateSession opens a session. The partial unique index on (machine_id)
// WHERE status = 'open' rejects a second open session per machine.
func (r *SalesRepo) CreateSession(s *entity.SalesSession) error {
	query := `
		INSERT INTO sales_sessions (id, machine_id, status, total_net, total_vat, total_deposit, total_gross,
			item_count, email_sent, opened_by, opened_at, closed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, '')::UUID, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.MachineID, s.Status, s.TotalNet, s.TotalVAT, s.TotalDeposit, s.TotalGross,
		s.ItemCount, s.EmailSent, s.OpenedBy, s.OpenedAt, s.ClosedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSessionAlreadyOpen
		}
		return fmt.Errorf("insert sales session: %w", err)
	}
	return nil
}

// GetSession returns a session or (nil, nil) when absent.
func (r *SalesRepo) GetSession(id string) (*entity.SalesSession, error) {
	return r.getOne(`SELECT `+sessionColumns+` FROM sales_sessions WHERE id = $1`, id)
}

// GetOpenByMachine returns the open session of a machine or (nil, nil).
func (r *SalesRepo) GetOpenByMachine(machineID string) (*entity.SalesSession, error) {
	return r.getOne(`SELECT `+sessionColumns+` FROM sales_sessions WHERE machine_id = $1 AND status = 'open'`, machineID)
}

func (r *SalesRepo) getOne(query string, arg any) (*entity.SalesSession, error) {
	var s entity.SalesSession
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&s.ID, &s.MachineID, &s.Status, &s.TotalNet, &s.TotalVAT, &s.TotalDeposit, &s.TotalGross,
		&s.ItemCount, &s.EmailSent, &s.OpenedBy, &s.OpenedAt, &s.ClosedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales session: %w", err)
	}
	return &s, nil
}

// CloseSession writes the final totals and the closed state.
func (r *SalesRepo) CloseSession(s *entity.SalesSession) error {
	query := `
		UPDATE sales_sessions SET status = $2, total_net = $3, total_vat = $4, total_deposit = $5,
			total_gross = $6, item_count = $7, closed_at = $8
		WHERE id = $1 AND status = 'open'`
	cmd, err := r.q.Exec(context.Background(), query,
		s.ID, s.Status, s.TotalNet, s.TotalVAT, s.TotalDeposit, s.TotalGross, s.ItemCount, s.ClosedAt)
	if err != nil {
		return fmt.Errorf("close sales session: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrSessionClosed
	}
	return nil
}

// MarkEmailSent flags the session after the receipt mail went out.
func (r *SalesRepo) MarkEmailSent(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sales_sessions SET email_sent = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark session email sent: %w", err)
	}
	return nil
}

// CountOpen counts currently open sessions across all machines.
func (r *SalesRepo) CountOpen() (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM sales_sessions WHERE status = 'open'`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count open sessions: %w", err)
	}
	return n, nil
}

// ListSessions returns sessions opened in the window, newest first.
func (r *SalesRepo) ListSessions(from, to time.Time, limit, offset int) ([]*entity.SalesSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM sales_sessions
		WHERE opened_at BETWEEN $1 AND $2 ORDER BY opened_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales sessions: %w", err)
	}
	defer rows.Close()
	var out []*entity.SalesSession
	for rows.Next() {
		var s entity.SalesSession
		if err := rows.Scan(&s.ID, &s.MachineID, &s.Status, &s.TotalNet, &s.TotalVAT, &s.TotalDeposit, &s.TotalGross,
			&s.ItemCount, &s.EmailSent, &s.OpenedBy, &s.OpenedAt, &s.ClosedAt); err != nil {
			return nil, fmt.Errorf("scan sales session: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// AddItem appends one sold line.
func (r *SalesRepo) AddItem(i *entity.SalesItem) error {
	query := `
		INSERT INTO sales_items (id, session_id, product_id, quantity, unit_price, vat_rate, deposit, line_total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		i.ID, i.SessionID, i.ProductID, i.Quantity, i.UnitPrice, i.VATRate, i.Deposit, i.LineTotal, i.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert sales item: %w", err)
	}
	return nil
}

// ListItems returns the lines of a session in sale order.
func (r *SalesRepo) ListItems(sessionID string) ([]*entity.SalesItem, error) {
	query := `SELECT id, session_id, product_id, quantity, unit_price, vat_rate, deposit, line_total, created_at
		FROM sales_items WHERE session_id = $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list sales items: %w", err)
	}
	defer rows.Close()
	var out []*entity.SalesItem
	for rows.Next() {
		var i entity.SalesItem
		if err := rows.Scan(&i.ID, &i.SessionID, &i.ProductID, &i.Quantity, &i.UnitPrice, &i.VATRate,
			&i.Deposit, &i.LineTotal, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sales item: %w", err)
		}
		out = append(out, &i)
	}
	return out, rows.Err()
}
