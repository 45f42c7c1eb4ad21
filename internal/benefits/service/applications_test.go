package service

import (
	"context"
	"testing"

	"github.com/benefitsnav/benefits-backend/internal/benefits/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplications_Lifecycle(t *testing.T) {
	env := setupEnv(t, false)
	apps := env.svc.Applications
	ctx := context.Background()

	_, _, err := apps.Create(ctx, "u", domain.CreateApplicationRequest{ProgramID: "nope"})
	assert.ErrorIs(t, err, domain.ErrProgramNotFound)

	app, status, err := apps.Create(ctx, "u", domain.CreateApplicationRequest{ProgramID: "snap", Notes: "first try"})
	require.NoError(t, err)
	assert.Equal(t, SyncLocal, status)
	assert.Equal(t, domain.StatusStarted, app.Status)
	assert.NotEmpty(t, app.ProgramName)
	assert.False(t, app.StartedAt.IsZero())

	t.Run("user cannot jump to a decision", func(t *testing.T) {
		_, _, err := apps.UpdateStatus(ctx, "u", app.ID, domain.UpdateApplicationStatusRequest{Status: domain.StatusApproved})
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("submit", func(t *testing.T) {
		sub, _, err := apps.Submit(ctx, "u", app.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusSubmitted, sub.Status)
		require.NotNil(t, sub.SubmittedAt)

		_, _, err = apps.Submit(ctx, "u", app.ID)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("admin decision notifies the user", func(t *testing.T) {
		notes := "documents verified"
		dec, _, err := apps.UpdateStatus(ctx, "u", app.ID, domain.UpdateApplicationStatusRequest{Status: domain.StatusApproved, Notes: &notes})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusApproved, dec.Status)
		assert.Equal(t, notes, dec.Notes)
		require.NotNil(t, dec.DecidedAt)

		list, err := env.svc.Notifications.List(ctx, "u")
		require.NoError(t, err)
		require.Len(t, list.Notifications, 1)
		assert.Equal(t, domain.NotificationStatusUpdate, list.Notifications[0].Type)
	})

	t.Run("invalid status value", func(t *testing.T) {
		_, _, err := apps.UpdateStatus(ctx, "u", app.ID, domain.UpdateApplicationStatusRequest{Status: "lost"})
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})

	t.Run("unknown application", func(t *testing.T) {
		_, err := apps.Get(ctx, "u", "missing")
		assert.ErrorIs(t, err, domain.ErrApplicationNotFound)
	})
}

func TestApplications_ListFilters(t *testing.T) {
	env := setupEnv(t, false)
	apps := env.svc.Applications
	ctx := context.Background()

	a1, _, err := apps.Create(ctx, "u", domain.CreateApplicationRequest{ProgramID: "snap"})
	require.NoError(t, err)
	_, _, err = apps.Create(ctx, "u", domain.CreateApplicationRequest{ProgramID: "wic"})
	require.NoError(t, err)
	_, _, err = apps.Submit(ctx, "u", a1.ID)
	require.NoError(t, err)

	all, err := apps.List(ctx, "u", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	submitted, err := apps.List(ctx, "u", domain.StatusSubmitted)
	require.NoError(t, err)
	require.Len(t, submitted, 1)
	assert.Equal(t, a1.ID, submitted[0].ID)

	_, err = apps.List(ctx, "u", "bogus")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestApplications_Simulate(t *testing.T) {
	env := setupEnv(t, false)
	apps := env.svc.Applications
	ctx := context.Background()

	for _, tc := range []struct {
		approve bool
		want    string
	}{
		{true, domain.StatusApproved},
		{false, domain.StatusDenied},
	} {
		apps.approve = func() bool { return tc.approve }

		app, _, err := apps.Create(ctx, "u", domain.CreateApplicationRequest{ProgramID: "liheap"})
		require.NoError(t, err)

		got, _, err := apps.Simulate(ctx, "u", app.ID)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got.Status)
		assert.NotNil(t, got.SubmittedAt)
		assert.NotNil(t, got.DecidedAt)

		_, _, err = apps.Simulate(ctx, "u", app.ID)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	}
}
