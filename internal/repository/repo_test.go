package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/campaignos/internal/domain"
	"github.com/alexanderramin/campaignos/internal/testutil"
	"github.com/stretchr/testify/require"
)

// fixture is a calendar with one status and one swimlane, ready for activities.
type fixture struct {
	db       *sql.DB
	calendar *domain.Calendar
	status   *domain.Status
	swimlane *domain.Swimlane
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	cal := testutil.NewTestCalendar("Q3 Plan")
	require.NoError(t, NewSQLiteCalendarRepo(database).Create(ctx, cal))
	st := testutil.NewTestStatus(cal.ID, "Considering", "#3B82F6", 0)
	require.NoError(t, NewSQLiteStatusRepo(database).Create(ctx, st))
	lane := testutil.NewTestSwimlane(cal.ID, "Events", 0)
	require.NoError(t, NewSQLiteSwimlaneRepo(database).Create(ctx, lane))

	return fixture{db: database, calendar: cal, status: st, swimlane: lane}
}
