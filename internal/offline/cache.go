package offline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/benefitsnav/benefits-backend/internal/benefits/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Object stores
const (
	StorePrograms     = "programs"
	StoreFavorites    = "favorites"
	StoreApplications = "applications"
	StoreSearches     = "search_history"
	StoreQueue        = "queue"
)

var Stores = []string{StorePrograms, StoreFavorites, StoreApplications, StoreSearches, StoreQueue}

const (
	keyPrefix        = "benefits:offline:" // benefits:offline:{owner}:{store}
	ownersKey        = "benefits:offline:owners"
	MaxSearchHistory = 50
)

// CachedProgram is a program snapshot stamped with the time it was cached.
type CachedProgram struct {
	domain.Program
	LastUpdated time.Time `json:"last_updated"`
}

type ProgramFilter struct {
	MaxAge   time.Duration
	Category string
	State    string
}

type cachedFavorite struct {
	ProgramID string    `json:"program_id"`
	CachedAt  time.Time `json:"cached_at"`
}

type SearchEntry struct {
	ID          string            `json:"id"`
	Query       string            `json:"query"`
	Filters     map[string]string `json:"filters,omitempty"`
	ResultCount int               `json:"result_count"`
	Timestamp   time.Time         `json:"timestamp"`
}

// Cache is the offline object store. Each (owner, store) pair is one Redis
// hash keyed by record id; queries load the whole hash and filter in memory.
type Cache struct {
	client     *redis.Client
	log        *zap.Logger
	now        func() time.Time
	maxRetries int
}

func NewCache(client *redis.Client, maxRetries int, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	if maxRetries < 1 {
		maxRetries = DefaultMaxRetries
	}
	return &Cache{client: client, log: log.Named("offline"), now: time.Now, maxRetries: maxRetries}
}

func (c *Cache) key(owner, store string) string {
	return keyPrefix + owner + ":" + store
}

// replaceHash swaps the whole content of a store in one MULTI/EXEC.
func (c *Cache) replaceHash(ctx context.Context, key string, fields map[string]any) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(fields) > 0 {
			pipe.HSet(ctx, key, fields)
		}
		return nil
	})
	return err
}

// CachePrograms stamps every program with the current time and stores it,
// replacing any earlier copy with the same id.
func (c *Cache) CachePrograms(ctx context.Context, owner string, programs []domain.Program) (int, error) {
	if len(programs) == 0 {
		return 0, nil
	}
	now := c.now().UTC()
	fields := make(map[string]any, len(programs))
	for _, p := range programs {
		data, err := json.Marshal(CachedProgram{Program: p, LastUpdated: now})
		if err != nil {
			return 0, fmt.Errorf("marshal program %s: %w", p.ID, err)
		}
		fields[p.ID] = data
	}
	if err := c.client.HSet(ctx, c.key(owner, StorePrograms), fields).Err(); err != nil {
		return 0, fmt.Errorf("cache programs: %w", err)
	}
	return len(programs), nil
}

func (c *Cache) CachedPrograms(ctx context.Context, owner string, f ProgramFilter) ([]CachedProgram, error) {
	out, err := loadAll[CachedProgram](ctx, c, owner, StorePrograms)
	if err != nil {
		return nil, err
	}

	now := c.now()
	kept := out[:0]
	for _, p := range out {
		if f.MaxAge > 0 && now.Sub(p.LastUpdated) > f.MaxAge {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.State != "" && !strings.EqualFold(p.State, f.State) {
			continue
		}
		kept = append(kept, p)
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].ID < kept[j].ID })
	return kept, nil
}

// CacheFavorites replaces the cached favorite list.
func (c *Cache) CacheFavorites(ctx context.Context, owner string, programIDs []string) error {
	now := c.now().UTC()
	fields := make(map[string]any, len(programIDs))
	for i, id := range programIDs {
		// keep list order through the cached_at stamp
		data, err := json.Marshal(cachedFavorite{ProgramID: id, CachedAt: now.Add(time.Duration(i))})
		if err != nil {
			return err
		}
		fields[id] = data
	}
	if err := c.replaceHash(ctx, c.key(owner, StoreFavorites), fields); err != nil {
		return fmt.Errorf("cache favorites: %w", err)
	}
	return nil
}

func (c *Cache) CachedFavorites(ctx context.Context, owner string) ([]string, error) {
	favs, err := loadAll[cachedFavorite](ctx, c, owner, StoreFavorites)
	if err != nil {
		return nil, err
	}
	sort.Slice(favs, func(i, j int) bool { return favs[i].CachedAt.Before(favs[j].CachedAt) })
	out := make([]string, 0, len(favs))
	for _, f := range favs {
		out = append(out, f.ProgramID)
	}
	return out, nil
}

// CacheApplications replaces the cached application list.
func (c *Cache) CacheApplications(ctx context.Context, owner string, apps []domain.Application) error {
	fields := make(map[string]any, len(apps))
	for _, a := range apps {
		data, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("marshal application %s: %w", a.ID, err)
		}
		fields[a.ID] = data
	}
	if err := c.replaceHash(ctx, c.key(owner, StoreApplications), fields); err != nil {
		return fmt.Errorf("cache applications: %w", err)
	}
	return nil
}

// CachedApplications returns cached applications, optionally narrowed to one status.
func (c *Cache) CachedApplications(ctx context.Context, owner, status string) ([]domain.Application, error) {
	apps, err := loadAll[domain.Application](ctx, c, owner, StoreApplications)
	if err != nil {
		return nil, err
	}
	kept := apps[:0]
	for _, a := range apps {
		if status == "" || a.Status == status {
			kept = append(kept, a)
		}
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].StartedAt.Before(kept[j].StartedAt) })
	return kept, nil
}

func (c *Cache) AddSearch(ctx context.Context, owner, query string, filters map[string]string, resultCount int) (SearchEntry, error) {
	entry := SearchEntry{
		ID:          uuid.NewString(),
		Query:       query,
		Filters:     filters,
		ResultCount: resultCount,
		Timestamp:   c.now().UTC(),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return SearchEntry{}, err
	}

	key := c.key(owner, StoreSearches)
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, data)
		pipe.LTrim(ctx, key, 0, MaxSearchHistory-1)
		return nil
	})
	if err != nil {
		return SearchEntry{}, fmt.Errorf("add search: %w", err)
	}
	return entry, nil
}

// RecentSearches returns up to limit entries, newest first.
func (c *Cache) RecentSearches(ctx context.Context, owner string, limit int) ([]SearchEntry, error) {
	if limit <= 0 || limit > MaxSearchHistory {
		limit = MaxSearchHistory
	}
	raw, err := c.client.LRange(ctx, c.key(owner, StoreSearches), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("recent searches: %w", err)
	}
	out := make([]SearchEntry, 0, len(raw))
	for _, r := range raw {
		var e SearchEntry
		if err := json.Unmarshal([]byte(r), &e); err != nil {
			c.log.Warn("skipping unreadable search entry", zap.String("owner", owner), zap.Error(err))
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

type Stats struct {
	Owner  string           `json:"owner"`
	Stores map[string]int64 `json:"stores"`
	Total  int64            `json:"total"`
}

func (c *Cache) Stats(ctx context.Context, owner string) (Stats, error) {
	cmds := make(map[string]*redis.IntCmd, len(Stores))
	_, err := c.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, s := range Stores {
			if s == StoreSearches {
				cmds[s] = pipe.LLen(ctx, c.key(owner, s))
				continue
			}
			cmds[s] = pipe.HLen(ctx, c.key(owner, s))
		}
		return nil
	})
	if err != nil {
		return Stats{}, fmt.Errorf("offline stats: %w", err)
	}

	st := Stats{Owner: owner, Stores: make(map[string]int64, len(Stores))}
	for s, cmd := range cmds {
		st.Stores[s] = cmd.Val()
		st.Total += cmd.Val()
	}
	return st, nil
}

// Clear deletes every store for owner, including queued mutations.
func (c *Cache) Clear(ctx context.Context, owner string) error {
	keys := make([]string, 0, len(Stores))
	for _, s := range Stores {
		keys = append(keys, c.key(owner, s))
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, keys...)
		pipe.SRem(ctx, ownersKey, owner)
		return nil
	})
	if err != nil {
		return fmt.Errorf("clear offline cache: %w", err)
	}
	return nil
}

// loadAll decodes every field of one store. Fields that fail to decode are
// logged and skipped.
func loadAll[T any](ctx context.Context, c *Cache, owner, store string) ([]T, error) {
	raw, err := c.client.HGetAll(ctx, c.key(owner, store)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("load %s: %w", store, err)
	}
	out := make([]T, 0, len(raw))
	for field, v := range raw {
		var rec T
		if err := json.Unmarshal([]byte(v), &rec); err != nil {
			c.log.Warn("skipping unreadable cache entry",
				zap.String("owner", owner), zap.String("store", store), zap.String("id", field), zap.Error(err))
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}
