package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/benefitsnav/benefits-backend/internal/benefits/domain"
	"github.com/benefitsnav/benefits-backend/internal/benefits/repository"
	"github.com/benefitsnav/benefits-backend/internal/catalog"
	"github.com/benefitsnav/benefits-backend/internal/govapi"
	"github.com/benefitsnav/benefits-backend/internal/offline"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type fakeMirror struct {
	mu        sync.Mutex
	fail      bool
	apps      map[string]domain.Application
	favorites map[string][]string
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{apps: map[string]domain.Application{}, favorites: map[string][]string{}}
}

func (m *fakeMirror) setFail(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = v
}

func (m *fakeMirror) UpsertApplication(_ context.Context, _ string, app domain.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("connection refused")
	}
	m.apps[app.ID] = app
	return nil
}

func (m *fakeMirror) SetFavorite(_ context.Context, userID, programID string, favorite bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("connection refused")
	}
	ids := m.favorites[userID]
	out := ids[:0]
	for _, id := range ids {
		if id != programID {
			out = append(out, id)
		}
	}
	if favorite {
		out = append(out, programID)
	}
	m.favorites[userID] = out
	return nil
}

func (m *fakeMirror) ListFavorites(_ context.Context, userID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, errors.New("connection refused")
	}
	return append([]string(nil), m.favorites[userID]...), nil
}

type testEnv struct {
	svc    *Services
	store  *repository.Store
	cache  *offline.Cache
	mirror *fakeMirror
	mr     *miniredis.Miniredis
	client *redis.Client
}

func setupEnv(t *testing.T, withMirror bool) *testEnv {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	cat, err := catalog.Load()
	require.NoError(t, err)

	store := repository.NewStore(repository.NewGateway(client, nil))
	cache := offline.NewCache(client, offline.DefaultMaxRetries, nil)
	gov := govapi.NewClient(govapi.Options{Mode: govapi.SourceStatic}, cat, nil)

	env := &testEnv{store: store, cache: cache, mr: mr, client: client}
	deps := Deps{Store: store, Catalog: cat, Offline: cache, GovAPI: gov}
	if withMirror {
		env.mirror = newFakeMirror()
		deps.Mirror = env.mirror
	}
	env.svc = New(deps)
	return env
}

// touchOnce rewrites key with its current value before the first
// transaction, so that transaction loses its WATCH and is retried.
type touchOnce struct {
	mr   *miniredis.Miniredis
	key  string
	once sync.Once
}

func (h *touchOnce) DialHook(next redis.DialHook) redis.DialHook { return next }

func (h *touchOnce) ProcessHook(next redis.ProcessHook) redis.ProcessHook { return next }

func (h *touchOnce) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		h.once.Do(func() {
			if v, err := h.mr.Get(h.key); err == nil {
				_ = h.mr.Set(h.key, v)
			}
		})
		return next(ctx, cmds)
	}
}
