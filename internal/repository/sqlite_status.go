package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/campaignos/internal/db"
	"github.com/alexanderramin/campaignos/internal/domain"
)

type SQLiteStatusRepo struct {
	db db.DBTX
}

func NewSQLiteStatusRepo(conn db.DBTX) *SQLiteStatusRepo {
	return &SQLiteStatusRepo{db: conn}
}

const statusColumns = `id, calendar_id, name, color, sort_order`

func (r *SQLiteStatusRepo) Create(ctx context.Context, s *domain.Status) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO statuses (`+statusColumns+`) VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.CalendarID, s.Name, s.Color, s.SortOrder)
	if err != nil {
		return fmt.Errorf("inserting status: %w", err)
	}
	return nil
}

func (r *SQLiteStatusRepo) GetByID(ctx context.Context, id string) (*domain.Status, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+statusColumns+` FROM statuses WHERE id = ?`, id)
	return scanStatus(row)
}

func (r *SQLiteStatusRepo) ListByCalendar(ctx context.Context, calendarID string) ([]*domain.Status, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+statusColumns+` FROM statuses WHERE calendar_id = ? ORDER BY sort_order, name`, calendarID)
	if err != nil {
		return nil, fmt.Errorf("listing statuses: %w", err)
	}
	defer rows.Close()

	var statuses []*domain.Status
	for rows.Next() {
		s, err := scanStatus(rows)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating statuses: %w", err)
	}
	return statuses, nil
}

// NextSortOrder returns one past the highest sort order in the calendar.
func (r *SQLiteStatusRepo) NextSortOrder(ctx context.Context, calendarID string) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(sort_order) + 1, 0) FROM statuses WHERE calendar_id = ?`, calendarID).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("reading status sort order: %w", err)
	}
	return next, nil
}

func (r *SQLiteStatusRepo) Update(ctx context.Context, s *domain.Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE statuses SET name = ?, color = ?, sort_order = ? WHERE id = ?`,
		s.Name, s.Color, s.SortOrder, s.ID)
	if err != nil {
		return fmt.Errorf("updating status: %w", err)
	}
	return requireAffected("status", res)
}

func (r *SQLiteStatusRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM statuses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting status: %w", err)
	}
	return requireAffected("status", res)
}

func scanStatus(row rowScanner) (*domain.Status, error) {
	var s domain.Status
	if err := row.Scan(&s.ID, &s.CalendarID, &s.Name, &s.Color, &s.SortOrder); err != nil {
		return nil, scanErr("status", err)
	}
	return &s, nil
}
