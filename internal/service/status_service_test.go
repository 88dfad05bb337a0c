package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/campaignos/internal/domain"
	"github.com/alexanderramin/campaignos/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusService_Create(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	s := env.seed(t, "Statuses")
	svc := NewStatusService(env.statuses, env.activities)

	st, err := svc.Create(ctx, s.calendar.ID, "Live", "#EF4444")
	require.NoError(t, err)
	assert.Equal(t, 3, st.SortOrder)

	_, err = svc.Create(ctx, s.calendar.ID, "Bad", "red")
	assert.ErrorIs(t, err, domain.ErrInvalid)
	_, err = svc.Create(ctx, s.calendar.ID, " ", "#EF4444")
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestStatusService_Update(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	s := env.seed(t, "Statuses")
	svc := NewStatusService(env.statuses, env.activities)

	name := "Pitched"
	color := "#000000"
	got, err := svc.Update(ctx, s.statuses[0].ID, StatusUpdate{Name: &name, Color: &color})
	require.NoError(t, err)
	assert.Equal(t, "Pitched", got.Name)
	assert.Equal(t, "#000000", got.Color)

	_, err = svc.Update(ctx, s.statuses[0].ID, StatusUpdate{})
	assert.ErrorIs(t, err, domain.ErrInvalid)

	bad := "nope"
	_, err = svc.Update(ctx, s.statuses[0].ID, StatusUpdate{Color: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestStatusService_Delete_RefusedWhileInUse(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	s := env.seed(t, "Statuses")
	svc := NewStatusService(env.statuses, env.activities)

	a := testutil.NewTestActivity(s.calendar.ID, s.social.ID, s.statuses[0].ID, "Post")
	require.NoError(t, env.activities.Create(ctx, a))

	err := svc.Delete(ctx, s.statuses[0].ID)
	require.ErrorIs(t, err, domain.ErrInvalid)
	assert.Contains(t, err.Error(), "used by 1 activities")

	require.NoError(t, svc.Delete(ctx, s.statuses[1].ID))
	remaining, err := svc.List(ctx, s.calendar.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
}

func TestCampaignService_DeleteUnlinksActivities(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	s := env.seed(t, "Campaigns")
	svc := NewCampaignService(env.campaigns)

	camp, err := svc.Create(ctx, s.calendar.ID, "Black Friday")
	require.NoError(t, err)
	_, err = svc.Create(ctx, s.calendar.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalid)

	renamed, err := svc.Rename(ctx, camp.ID, "Cyber Week")
	require.NoError(t, err)
	assert.Equal(t, "Cyber Week", renamed.Name)

	a := testutil.NewTestActivity(s.calendar.ID, s.social.ID, s.statuses[0].ID, "Teaser", testutil.WithCampaign(camp.ID))
	require.NoError(t, env.activities.Create(ctx, a))

	require.NoError(t, svc.Delete(ctx, camp.ID))
	got, err := env.activities.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CampaignID)

	list, err := svc.List(ctx, s.calendar.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStatusAndCampaignServices_ReportUseCases(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	s := env.seed(t, "Observed")
	obs := &recordingObserver{}
	statuses := NewStatusService(env.statuses, env.activities, obs)
	campaigns := NewCampaignService(env.campaigns, obs)

	st, err := statuses.Create(ctx, s.calendar.ID, "Live", "#EF4444")
	require.NoError(t, err)
	assert.Equal(t, "create-status", obs.last().Name)
	assert.True(t, obs.last().Success())
	assert.Equal(t, s.calendar.ID, obs.last().Fields["calendar_id"])

	_, err = statuses.Update(ctx, st.ID, StatusUpdate{})
	require.Error(t, err)
	assert.Equal(t, "update-status", obs.last().Name)
	assert.True(t, obs.last().Rejected())

	require.NoError(t, statuses.Delete(ctx, st.ID))
	assert.Equal(t, "delete-status", obs.last().Name)

	camp, err := campaigns.Create(ctx, s.calendar.ID, "Launch")
	require.NoError(t, err)
	assert.Equal(t, "create-campaign", obs.last().Name)

	_, err = campaigns.Rename(ctx, camp.ID, " ")
	require.Error(t, err)
	assert.Equal(t, "rename-campaign", obs.last().Name)
	assert.True(t, obs.last().Rejected())

	require.NoError(t, campaigns.Delete(ctx, camp.ID))
	assert.Equal(t, "delete-campaign", obs.last().Name)
	assert.Equal(t, camp.ID, obs.last().Fields["campaign_id"])

	// List is a read and is not reported.
	_, err = statuses.List(ctx, s.calendar.ID)
	require.NoError(t, err)
	assert.Len(t, obs.events, 6)
}
