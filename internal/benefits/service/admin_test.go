package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/benefitsnav/benefits-backend/internal/benefits/domain"
	"github.com/benefitsnav/benefits-backend/internal/benefits/repository"
	"github.com/benefitsnav/benefits-backend/internal/catalog"
	"github.com/benefitsnav/benefits-backend/internal/govapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmin_ProgramCRUD(t *testing.T) {
	env := setupEnv(t, false)
	admin := env.svc.Admin
	ctx := context.Background()

	seeded, err := admin.ListPrograms(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, seeded)
	for _, p := range seeded {
		assert.GreaterOrEqual(t, p.ApprovalRate, 55.0)
		assert.LessOrEqual(t, p.ApprovalRate, 95.0)
	}

	_, err = admin.CreateProgram(ctx, domain.AdminProgramRequest{Name: "Pilot", Category: "astrology"})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)

	p, err := admin.CreateProgram(ctx, domain.AdminProgramRequest{Name: "Pilot", Category: "housing"})
	require.NoError(t, err)
	assert.Equal(t, domain.AdminProgramDraft, p.Status)

	all, err := admin.ListPrograms(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(seeded)+1)

	up, err := admin.UpdateProgram(ctx, p.ID, domain.AdminProgramRequest{Name: "Pilot v2", Category: "housing", Status: domain.AdminProgramActive})
	require.NoError(t, err)
	assert.Equal(t, "Pilot v2", up.Name)

	_, err = admin.UpdateProgram(ctx, p.ID, domain.AdminProgramRequest{Name: "x", Category: "housing", Status: "paused"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, admin.DeleteProgram(ctx, p.ID))
	assert.ErrorIs(t, admin.DeleteProgram(ctx, p.ID), domain.ErrAdminProgramNotFound)
	_, err = admin.GetProgram(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrAdminProgramNotFound)
}

func TestAdmin_FabricatedTables(t *testing.T) {
	env := setupEnv(t, false)
	admin := env.svc.Admin
	ctx := context.Background()

	integrations, err := admin.Integrations(ctx)
	require.NoError(t, err)
	assert.Len(t, integrations, len(govapi.AgencyEndpoints)+1)

	again, err := admin.Integrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, integrations[0].Uptime, again[0].Uptime, "seeded once")

	audits, err := admin.SecurityAudits(ctx)
	require.NoError(t, err)
	require.Len(t, audits, len(auditTemplates))
	for i := 1; i < len(audits); i++ {
		assert.False(t, audits[i].Timestamp.After(audits[i-1].Timestamp))
	}

	enc, err := admin.Encryption(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, enc)
	for _, e := range enc {
		assert.True(t, e.InTransit)
	}
}

func TestAdmin_TestIntegration(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	env := setupEnv(t, false)
	ctx := context.Background()

	cat, err := catalog.Load()
	require.NoError(t, err)
	live := NewAdminService(env.store, cat, govapi.NewClient(govapi.Options{Mode: govapi.SourceLive}, cat, nil))

	_, err = live.Integrations(ctx)
	require.NoError(t, err)
	_, err = env.store.Integrations.Update(ctx, repository.AdminOwner, "ssa", func(in *domain.APIIntegration) error {
		in.Endpoint = srv.URL
		in.Status = IntegrationError
		return nil
	})
	require.NoError(t, err)

	updated, probe, err := live.TestIntegration(ctx, "ssa")
	require.NoError(t, err)
	assert.True(t, probe.Reachable)
	assert.Equal(t, IntegrationConnected, updated.Status)
	assert.Equal(t, string(govapi.SourceLive), updated.DataSource)

	t.Run("static mode never probes", func(t *testing.T) {
		updated, probe, err := env.svc.Admin.TestIntegration(ctx, "ssa")
		require.NoError(t, err)
		assert.False(t, probe.Reachable)
		assert.Equal(t, IntegrationStatic, updated.Status)
	})

	t.Run("unknown integration", func(t *testing.T) {
		_, _, err := live.TestIntegration(ctx, "nasa")
		assert.ErrorIs(t, err, domain.ErrIntegrationNotFound)
	})
}
