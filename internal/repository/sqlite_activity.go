package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/campaignos/internal/db"
	"github.com/alexanderramin/campaignos/internal/domain"
)

type SQLiteActivityRepo struct {
	db db.DBTX
}

func NewSQLiteActivityRepo(conn db.DBTX) *SQLiteActivityRepo {
	return &SQLiteActivityRepo{db: conn}
}

const activityColumns = `id, calendar_id, swimlane_id, status_id, campaign_id, title,
	start_date, end_date, description, cost_cents, currency, region, tags, color,
	created_at, updated_at`

func (r *SQLiteActivityRepo) Create(ctx context.Context, a *domain.Activity) error {
	query := `INSERT INTO activities (` + activityColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.CalendarID,
		a.SwimlaneID,
		a.StatusID,
		nullableString(a.CampaignID),
		a.Title,
		domain.FormatDate(a.StartDate),
		domain.FormatDate(a.EndDate),
		a.Description,
		a.CostCents,
		string(a.Currency),
		string(a.Region),
		a.Tags,
		a.Color,
		formatTimestamp(a.CreatedAt),
		formatTimestamp(a.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting activity: %w", err)
	}
	return nil
}

func (r *SQLiteActivityRepo) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+activityColumns+` FROM activities WHERE id = ?`, id)
	return scanActivity(row)
}

// ListByCalendar returns every activity in the calendar ordered by start date.
func (r *SQLiteActivityRepo) ListByCalendar(ctx context.Context, calendarID string) ([]*domain.Activity, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+activityColumns+` FROM activities WHERE calendar_id = ? ORDER BY start_date, id`, calendarID)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	defer rows.Close()

	var activities []*domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activities: %w", err)
	}
	return activities, nil
}

func (r *SQLiteActivityRepo) CountByStatus(ctx context.Context, statusID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM activities WHERE status_id = ?`, statusID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting activities by status: %w", err)
	}
	return n, nil
}

func (r *SQLiteActivityRepo) Update(ctx context.Context, a *domain.Activity) error {
	query := `UPDATE activities SET swimlane_id = ?, status_id = ?, campaign_id = ?, title = ?,
		start_date = ?, end_date = ?, description = ?, cost_cents = ?, currency = ?, region = ?,
		tags = ?, color = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		a.SwimlaneID,
		a.StatusID,
		nullableString(a.CampaignID),
		a.Title,
		domain.FormatDate(a.StartDate),
		domain.FormatDate(a.EndDate),
		a.Description,
		a.CostCents,
		string(a.Currency),
		string(a.Region),
		a.Tags,
		a.Color,
		formatTimestamp(a.UpdatedAt),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating activity: %w", err)
	}
	return requireAffected("activity", res)
}

func (r *SQLiteActivityRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting activity: %w", err)
	}
	return requireAffected("activity", res)
}

func scanActivity(row rowScanner) (*domain.Activity, error) {
	var a domain.Activity
	var campaignID sql.NullString
	var start, end, currency, region, createdAt, updatedAt string

	err := row.Scan(
		&a.ID, &a.CalendarID, &a.SwimlaneID, &a.StatusID, &campaignID, &a.Title,
		&start, &end, &a.Description, &a.CostCents, &currency, &region, &a.Tags, &a.Color,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, scanErr("activity", err)
	}

	a.CampaignID = stringPtr(campaignID)
	a.Currency = domain.Currency(currency)
	a.Region = domain.Region(region)

	if a.StartDate, err = parseDate("start_date", start); err != nil {
		return nil, err
	}
	if a.EndDate, err = parseDate("end_date", end); err != nil {
		return nil, err
	}
	if a.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = parseTimestamp("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
