package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/campaignos/internal/domain"
	"github.com/alexanderramin/campaignos/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusRepo_CRUD(t *testing.T) {
	f := newFixture(t)
	repo := NewSQLiteStatusRepo(f.db)
	ctx := context.Background()

	booked := testutil.NewTestStatus(f.calendar.ID, "Booked", "#10B981", 1)
	require.NoError(t, repo.Create(ctx, booked))

	booked.Color = "#000000"
	require.NoError(t, repo.Update(ctx, booked))
	got, err := repo.GetByID(ctx, booked.ID)
	require.NoError(t, err)
	assert.Equal(t, "#000000", got.Color)

	list, err := repo.ListByCalendar(ctx, f.calendar.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Considering", list[0].Name)

	require.NoError(t, repo.Delete(ctx, booked.ID))
	_, err = repo.GetByID(ctx, booked.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStatusRepo_CountInUse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acts := NewSQLiteActivityRepo(f.db)

	n, err := acts.CountByStatus(ctx, f.status.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, acts.Create(ctx, testutil.NewTestActivity(f.calendar.ID, f.swimlane.ID, f.status.ID, "A")))
	require.NoError(t, acts.Create(ctx, testutil.NewTestActivity(f.calendar.ID, f.swimlane.ID, f.status.ID, "B")))

	n, err = acts.CountByStatus(ctx, f.status.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
