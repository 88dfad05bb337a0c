package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/campaignos/internal/db"
	"github.com/alexanderramin/campaignos/internal/domain"
)

type SQLiteCampaignRepo struct {
	db db.DBTX
}

func NewSQLiteCampaignRepo(conn db.DBTX) *SQLiteCampaignRepo {
	return &SQLiteCampaignRepo{db: conn}
}

func (r *SQLiteCampaignRepo) Create(ctx context.Context, c *domain.Campaign) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO campaigns (id, calendar_id, name) VALUES (?, ?, ?)`, c.ID, c.CalendarID, c.Name)
	if err != nil {
		return fmt.Errorf("inserting campaign: %w", err)
	}
	return nil
}

func (r *SQLiteCampaignRepo) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, calendar_id, name FROM campaigns WHERE id = ?`, id)
	var c domain.Campaign
	if err := row.Scan(&c.ID, &c.CalendarID, &c.Name); err != nil {
		return nil, scanErr("campaign", err)
	}
	return &c, nil
}

func (r *SQLiteCampaignRepo) ListByCalendar(ctx context.Context, calendarID string) ([]*domain.Campaign, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, calendar_id, name FROM campaigns WHERE calendar_id = ? ORDER BY name COLLATE NOCASE, id`, calendarID)
	if err != nil {
		return nil, fmt.Errorf("listing campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []*domain.Campaign
	for rows.Next() {
		var c domain.Campaign
		if err := rows.Scan(&c.ID, &c.CalendarID, &c.Name); err != nil {
			return nil, scanErr("campaign", err)
		}
		campaigns = append(campaigns, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating campaigns: %w", err)
	}
	return campaigns, nil
}

func (r *SQLiteCampaignRepo) Update(ctx context.Context, c *domain.Campaign) error {
	res, err := r.db.ExecContext(ctx, `UPDATE campaigns SET name = ? WHERE id = ?`, c.Name, c.ID)
	if err != nil {
		return fmt.Errorf("updating campaign: %w", err)
	}
	return requireAffected("campaign", res)
}

func (r *SQLiteCampaignRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM campaigns WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting campaign: %w", err)
	}
	return requireAffected("campaign", res)
}
