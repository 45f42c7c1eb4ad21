package govapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benefitsnav/benefits-backend/internal/benefits/domain"
	"github.com/benefitsnav/benefits-backend/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	return cat
}

// pointAt rewires the federal and one state endpoint at a test server.
func pointAt(c *Client, url string) {
	c.federal.URL = url + "/federal"
	ca := c.states["CA"]
	ca.URL = url + "/ca"
	c.states["CA"] = ca
}

func TestClient_StaticModeNeverTouchesNetwork(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	cat := testCatalog(t)
	c := NewClient(Options{Mode: SourceStatic}, cat, nil)
	pointAt(c, srv.URL)
	ctx := context.Background()

	fed, err := c.FederalPrograms(ctx)
	require.NoError(t, err)
	assert.Equal(t, SourceStatic, fed.Source)
	assert.Len(t, fed.Programs, len(cat.Federal()))

	st, err := c.StatePrograms(ctx, "ca")
	require.NoError(t, err)
	assert.Equal(t, SourceStatic, st.Source)
	for _, p := range st.Programs {
		assert.Equal(t, "CA", p.State)
	}

	el, err := c.ProgramEligibility(ctx, "snap")
	require.NoError(t, err)
	assert.Equal(t, SourceStatic, el.Source)
	assert.NotEmpty(t, el.Requirements)

	probe := c.Probe(ctx, c.federal)
	assert.False(t, probe.Reachable)

	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestClient_LiveFetchIsLabeledAndCached(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "key-123", r.Header.Get("X-Api-Key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"programs":[{"id":"live-1","name":"Live Program","category":"food"}]}`))
	}))
	defer srv.Close()

	c := NewClient(Options{Mode: SourceLive, APIKey: "key-123"}, testCatalog(t), nil)
	pointAt(c, srv.URL)
	ctx := context.Background()

	res, err := c.FederalPrograms(ctx)
	require.NoError(t, err)
	assert.Equal(t, SourceLive, res.Source)
	require.Len(t, res.Programs, 1)
	assert.Equal(t, "live-1", res.Programs[0].ID)

	_, err = c.FederalPrograms(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "second call should be served from cache")

	assert.Equal(t, 1, c.ClearCache())
	_, err = c.FederalPrograms(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestClient_CacheExpiresLazily(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(`{"programs":[]}`))
	}))
	defer srv.Close()

	c := NewClient(Options{Mode: SourceLive, CacheTTL: time.Minute}, testCatalog(t), nil)
	pointAt(c, srv.URL)

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.programs.now = func() time.Time { return now }

	_, err := c.StatePrograms(context.Background(), "CA")
	require.NoError(t, err)
	assert.Equal(t, 1, c.programs.len())

	now = now.Add(2 * time.Minute)
	_, err = c.StatePrograms(context.Background(), "CA")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestClient_LiveFailureFallsBackToStatic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cat := testCatalog(t)
	c := NewClient(Options{Mode: SourceLive}, cat, nil)
	pointAt(c, srv.URL)
	ctx := context.Background()

	res, err := c.FederalPrograms(ctx)
	require.NoError(t, err)
	assert.Equal(t, SourceStatic, res.Source)
	assert.Len(t, res.Programs, len(cat.Federal()))
	assert.Zero(t, c.programs.len(), "fallback results are not cached")

	el, err := c.ProgramEligibility(ctx, "ca-calfresh")
	require.NoError(t, err)
	assert.Equal(t, SourceStatic, el.Source)
	assert.Equal(t, "state-ca", el.Endpoint)
}

func TestClient_Errors(t *testing.T) {
	c := NewClient(Options{Mode: SourceStatic}, testCatalog(t), nil)

	_, err := c.StatePrograms(context.Background(), "ZZ")
	assert.ErrorIs(t, err, ErrUnknownState)

	_, err = c.ProgramEligibility(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, domain.ErrProgramNotFound)
}

func TestClient_Probe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(Options{Mode: SourceLive}, testCatalog(t), nil)

	up := c.Probe(context.Background(), Endpoint{ID: "test", URL: srv.URL})
	assert.True(t, up.Reachable)
	assert.Equal(t, http.StatusOK, up.StatusCode)

	srv.Close()
	down := c.Probe(context.Background(), Endpoint{ID: "test", URL: srv.URL})
	assert.False(t, down.Reachable)
	assert.NotEmpty(t, down.Error)
}

func TestStateEndpoints(t *testing.T) {
	eps := StateEndpoints()
	assert.Len(t, eps, 51)
	assert.Contains(t, eps, "DC")
	assert.Equal(t, KindState, eps["TX"].Kind)
	assert.Len(t, StateCodes(), 51)

	ep, ok := LookupAgency("ssa")
	require.True(t, ok)
	assert.Equal(t, KindAgency, ep.Kind)
}
