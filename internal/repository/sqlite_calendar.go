package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/campaignos/internal/db"
	"github.com/alexanderramin/campaignos/internal/domain"
)

type SQLiteCalendarRepo struct {
	db db.DBTX
}

func NewSQLiteCalendarRepo(conn db.DBTX) *SQLiteCalendarRepo {
	return &SQLiteCalendarRepo{db: conn}
}

const calendarColumns = `id, name, created_at`

func (r *SQLiteCalendarRepo) Create(ctx context.Context, c *domain.Calendar) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO calendars (`+calendarColumns+`) VALUES (?, ?, ?)`,
		c.ID, c.Name, formatTimestamp(c.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting calendar: %w", err)
	}
	return nil
}

func (r *SQLiteCalendarRepo) GetByID(ctx context.Context, id string) (*domain.Calendar, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+calendarColumns+` FROM calendars WHERE id = ?`, id)
	return scanCalendar(row)
}

func (r *SQLiteCalendarRepo) List(ctx context.Context) ([]*domain.Calendar, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+calendarColumns+` FROM calendars ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("listing calendars: %w", err)
	}
	defer rows.Close()

	var calendars []*domain.Calendar
	for rows.Next() {
		c, err := scanCalendar(rows)
		if err != nil {
			return nil, err
		}
		calendars = append(calendars, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating calendars: %w", err)
	}
	return calendars, nil
}

func (r *SQLiteCalendarRepo) Update(ctx context.Context, c *domain.Calendar) error {
	res, err := r.db.ExecContext(ctx, `UPDATE calendars SET name = ? WHERE id = ?`, c.Name, c.ID)
	if err != nil {
		return fmt.Errorf("updating calendar: %w", err)
	}
	return requireAffected("calendar", res)
}

func (r *SQLiteCalendarRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM calendars WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting calendar: %w", err)
	}
	return requireAffected("calendar", res)
}

func scanCalendar(row rowScanner) (*domain.Calendar, error) {
	var c domain.Calendar
	var createdAt string
	if err := row.Scan(&c.ID, &c.Name, &createdAt); err != nil {
		return nil, scanErr("calendar", err)
	}
	var err error
	if c.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
		return nil, err
	}
	return &c, nil
}
