package db

import (
	"database/sql"
	"fmt"
	"strings"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS calendars (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS statuses (
		id TEXT PRIMARY KEY,
		calendar_id TEXT NOT NULL REFERENCES calendars(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		color TEXT NOT NULL,
		sort_order INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS swimlanes (
		id TEXT PRIMARY KEY,
		calendar_id TEXT NOT NULL REFERENCES calendars(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		sort_order INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS campaigns (
		id TEXT PRIMARY KEY,
		calendar_id TEXT NOT NULL REFERENCES calendars(id) ON DELETE CASCADE,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS activities (
		id TEXT PRIMARY KEY,
		calendar_id TEXT NOT NULL REFERENCES calendars(id) ON DELETE CASCADE,
		swimlane_id TEXT NOT NULL REFERENCES swimlanes(id) ON DELETE CASCADE,
		status_id TEXT NOT NULL REFERENCES statuses(id),
		campaign_id TEXT REFERENCES campaigns(id) ON DELETE SET NULL,
		title TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL CHECK (end_date >= start_date),
		description TEXT NOT NULL DEFAULT '',
		cost_cents INTEGER NOT NULL DEFAULT 0 CHECK (cost_cents >= 0),
		currency TEXT NOT NULL DEFAULT 'USD' CHECK (currency IN ('USD','GBP','EUR')),
		region TEXT NOT NULL DEFAULT 'US' CHECK (region IN ('US','EMEA','ROW')),
		tags TEXT NOT NULL DEFAULT '',
		color TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_statuses_calendar ON statuses(calendar_id, sort_order)`,
	`CREATE INDEX IF NOT EXISTS idx_swimlanes_calendar ON swimlanes(calendar_id, sort_order)`,
	`CREATE INDEX IF NOT EXISTS idx_campaigns_calendar ON campaigns(calendar_id)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_calendar ON activities(calendar_id, start_date)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_swimlane ON activities(swimlane_id)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_status ON activities(status_id)`,
}

// Migrate applies every schema statement. Statements are idempotent so it is
// safe to run on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
