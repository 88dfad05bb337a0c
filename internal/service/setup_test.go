package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/campaignos/internal/db"
	"github.com/alexanderramin/campaignos/internal/domain"
	"github.com/alexanderramin/campaignos/internal/repository"
	"github.com/alexanderramin/campaignos/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db         *sql.DB
	calendars  repository.CalendarRepo
	statuses   repository.StatusRepo
	swimlanes  repository.SwimlaneRepo
	campaigns  repository.CampaignRepo
	activities repository.ActivityRepo
	uow        db.UnitOfWork
}

func setupRepos(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testEnv{
		db:         database,
		calendars:  repository.NewSQLiteCalendarRepo(database),
		statuses:   repository.NewSQLiteStatusRepo(database),
		swimlanes:  repository.NewSQLiteSwimlaneRepo(database),
		campaigns:  repository.NewSQLiteCampaignRepo(database),
		activities: repository.NewSQLiteActivityRepo(database),
		uow:        testutil.NewTestUoW(database),
	}
}

func (e *testEnv) calendarService(observers ...UseCaseObserver) CalendarService {
	return NewCalendarService(e.calendars, e.statuses, e.swimlanes, e.campaigns, e.activities, e.uow, observers...)
}

func (e *testEnv) activityService(observers ...UseCaseObserver) ActivityService {
	return NewActivityService(e.activities, e.swimlanes, e.statuses, e.campaigns, e.uow, observers...)
}

// seeded is a calendar with its default statuses and two swimlanes.
type seeded struct {
	calendar *domain.Calendar
	statuses []*domain.Status
	social   *domain.Swimlane
	events   *domain.Swimlane
}

func (e *testEnv) seed(t *testing.T, name string) seeded {
	t.Helper()
	ctx := context.Background()
	cal, err := e.calendarService().Create(ctx, name)
	require.NoError(t, err)
	statuses, err := e.statuses.ListByCalendar(ctx, cal.ID)
	require.NoError(t, err)

	lanes := NewSwimlaneService(e.swimlanes, e.uow)
	social, err := lanes.Create(ctx, cal.ID, "Social")
	require.NoError(t, err)
	events, err := lanes.Create(ctx, cal.ID, "Events")
	require.NoError(t, err)
	return seeded{calendar: cal, statuses: statuses, social: social, events: events}
}

// recordingObserver keeps every event it sees.
type recordingObserver struct {
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	if len(o.events) == 0 {
		return UseCaseEvent{}
	}
	return o.events[len(o.events)-1]
}
