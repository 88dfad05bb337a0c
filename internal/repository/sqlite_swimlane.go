package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/campaignos/internal/db"
	"github.com/alexanderramin/campaignos/internal/domain"
)

type SQLiteSwimlaneRepo struct {
	db db.DBTX
}

func NewSQLiteSwimlaneRepo(conn db.DBTX) *SQLiteSwimlaneRepo {
	return &SQLiteSwimlaneRepo{db: conn}
}

const swimlaneColumns = `id, calendar_id, name, sort_order`

func (r *SQLiteSwimlaneRepo) Create(ctx context.Context, s *domain.Swimlane) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO swimlanes (`+swimlaneColumns+`) VALUES (?, ?, ?, ?)`,
		s.ID, s.CalendarID, s.Name, s.SortOrder)
	if err != nil {
		return fmt.Errorf("inserting swimlane: %w", err)
	}
	return nil
}

func (r *SQLiteSwimlaneRepo) GetByID(ctx context.Context, id string) (*domain.Swimlane, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+swimlaneColumns+` FROM swimlanes WHERE id = ?`, id)
	return scanSwimlane(row)
}

// ListByCalendar returns swimlanes in display order.
func (r *SQLiteSwimlaneRepo) ListByCalendar(ctx context.Context, calendarID string) ([]*domain.Swimlane, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+swimlaneColumns+` FROM swimlanes WHERE calendar_id = ? ORDER BY sort_order, name`, calendarID)
	if err != nil {
		return nil, fmt.Errorf("listing swimlanes: %w", err)
	}
	defer rows.Close()

	var lanes []*domain.Swimlane
	for rows.Next() {
		s, err := scanSwimlane(rows)
		if err != nil {
			return nil, err
		}
		lanes = append(lanes, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating swimlanes: %w", err)
	}
	return lanes, nil
}

func (r *SQLiteSwimlaneRepo) NextSortOrder(ctx context.Context, calendarID string) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(sort_order) + 1, 0) FROM swimlanes WHERE calendar_id = ?`, calendarID).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("reading swimlane sort order: %w", err)
	}
	return next, nil
}

func (r *SQLiteSwimlaneRepo) Update(ctx context.Context, s *domain.Swimlane) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE swimlanes SET name = ?, sort_order = ? WHERE id = ?`, s.Name, s.SortOrder, s.ID)
	if err != nil {
		return fmt.Errorf("updating swimlane: %w", err)
	}
	return requireAffected("swimlane", res)
}

func (r *SQLiteSwimlaneRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM swimlanes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting swimlane: %w", err)
	}
	return requireAffected("swimlane", res)
}

func scanSwimlane(row rowScanner) (*domain.Swimlane, error) {
	var s domain.Swimlane
	if err := row.Scan(&s.ID, &s.CalendarID, &s.Name, &s.SortOrder); err != nil {
		return nil, scanErr("swimlane", err)
	}
	return &s, nil
}
