package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benefitsnav/benefits-backend/internal/benefits/domain"
	"github.com/benefitsnav/benefits-backend/internal/metrics"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyPrefix        = "benefits:user:" // benefits:user:{owner}:{entity}
	maxWriteAttempts = 3
)

// Gateway is the key-value persistence layer. Every entity lives as one JSON
// value under a fixed key per owner. There is no schema version; a value that
// fails to parse is logged and read back as the entity's default.
type Gateway struct {
	client *redis.Client
	log    *zap.Logger
}

func NewGateway(client *redis.Client, log *zap.Logger) *Gateway {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{client: client, log: log.Named("gateway")}
}

func (g *Gateway) key(owner, entity string) string {
	return fmt.Sprintf("%s%s:%s", keyPrefix, owner, entity)
}

// Ping checks the underlying Redis connection.
func (g *Gateway) Ping(ctx context.Context) error {
	return g.client.Ping(ctx).Err()
}

// getter is satisfied by both *redis.Client and *redis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// load reads and decodes the value stored under key. found is false when the
// key is absent or the stored bytes do not decode into T.
func load[T any](ctx context.Context, g *Gateway, r getter, owner, entity string) (v T, found bool, err error) {
	data, err := r.Get(ctx, g.key(owner, entity)).Bytes()
	if errors.Is(err, redis.Nil) {
		return v, false, nil
	}
	if err != nil {
		metrics.GatewayOps.WithLabelValues(entity, "get", "error").Inc()
		return v, false, fmt.Errorf("read %s: %w", entity, err)
	}

	var decoded T
	if err := json.Unmarshal(data, &decoded); err != nil {
		g.log.Warn("stored value is not valid JSON, using default",
			zap.String("owner", owner),
			zap.String("entity", entity),
			zap.Error(err),
		)
		metrics.GatewayResets.WithLabelValues(entity).Inc()
		return v, false, nil
	}
	return decoded, true, nil
}

// update runs a read-modify-write cycle on one key inside a WATCH transaction.
// fn receives the current value and returns the value to store. fn runs again
// on every retry, so anything it captures must be reset on entry. A write that
// keeps losing the race fails with domain.ErrConflict.
func update[T any](ctx context.Context, g *Gateway, owner, entity string, fn func(cur T, found bool) (T, error)) (T, error) {
	key := g.key(owner, entity)
	var out T

	txf := func(tx *redis.Tx) error {
		cur, found, err := load[T](ctx, g, tx, owner, entity)
		if err != nil {
			return err
		}
		next, err := fn(cur, found)
		if err != nil {
			return err
		}
		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", entity, err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		if err == nil {
			out = next
		}
		return err
	}

	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		err := g.client.Watch(ctx, txf, key)
		if err == nil {
			metrics.GatewayOps.WithLabelValues(entity, "write", "ok").Inc()
			return out, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		metrics.GatewayOps.WithLabelValues(entity, "write", "error").Inc()
		return out, err
	}

	metrics.GatewayOps.WithLabelValues(entity, "write", "conflict").Inc()
	g.log.Warn("write conflict", zap.String("owner", owner), zap.String("entity", entity))
	return out, domain.ErrConflict
}

// Document stores a single JSON object per owner.
type Document[T any] struct {
	gw     *Gateway
	entity string
}

func NewDocument[T any](gw *Gateway, entity string) *Document[T] {
	return &Document[T]{gw: gw, entity: entity}
}

// Get returns the stored object; found is false when absent or unparseable.
func (d *Document[T]) Get(ctx context.Context, owner string) (T, bool, error) {
	v, found, err := load[T](ctx, d.gw, d.gw.client, owner, d.entity)
	if err == nil {
		metrics.GatewayOps.WithLabelValues(d.entity, "get", "ok").Inc()
	}
	return v, found, err
}

// Put overwrites the stored object wholesale.
func (d *Document[T]) Put(ctx context.Context, owner string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", d.entity, err)
	}
	if err := d.gw.client.Set(ctx, d.gw.key(owner, d.entity), data, 0).Err(); err != nil {
		metrics.GatewayOps.WithLabelValues(d.entity, "write", "error").Inc()
		return fmt.Errorf("write %s: %w", d.entity, err)
	}
	metrics.GatewayOps.WithLabelValues(d.entity, "write", "ok").Inc()
	return nil
}

func (d *Document[T]) Update(ctx context.Context, owner string, fn func(cur T, found bool) (T, error)) (T, error) {
	return update(ctx, d.gw, owner, d.entity, fn)
}

func (d *Document[T]) Delete(ctx context.Context, owner string) error {
	if err := d.gw.client.Del(ctx, d.gw.key(owner, d.entity)).Err(); err != nil {
		return fmt.Errorf("delete %s: %w", d.entity, err)
	}
	return nil
}

// Collection stores an id-keyed array of records per owner.
type Collection[T domain.Record] struct {
	gw       *Gateway
	entity   string
	notFound error
}

func NewCollection[T domain.Record](gw *Gateway, entity string, notFound error) *Collection[T] {
	return &Collection[T]{gw: gw, entity: entity, notFound: notFound}
}

// List returns every stored record, or an empty slice when none are stored.
func (c *Collection[T]) List(ctx context.Context, owner string) ([]T, error) {
	items, found, err := load[[]T](ctx, c.gw, c.gw.client, owner, c.entity)
	if err != nil {
		return nil, err
	}
	metrics.GatewayOps.WithLabelValues(c.entity, "get", "ok").Inc()
	if !found || items == nil {
		return []T{}, nil
	}
	return items, nil
}

func (c *Collection[T]) Get(ctx context.Context, owner, id string) (T, error) {
	var zero T
	items, err := c.List(ctx, owner)
	if err != nil {
		return zero, err
	}
	for _, it := range items {
		if it.RecordID() == id {
			return it, nil
		}
	}
	return zero, c.notFound
}

// Save upserts rec by id: an existing record is replaced in place, a new one is appended.
func (c *Collection[T]) Save(ctx context.Context, owner string, rec T) error {
	_, err := update(ctx, c.gw, owner, c.entity, func(items []T, _ bool) ([]T, error) {
		return Upsert(items, rec), nil
	})
	return err
}

// Update applies fn to the record with the given id and stores the result.
func (c *Collection[T]) Update(ctx context.Context, owner, id string, fn func(*T) error) (T, error) {
	var updated T
	_, err := update(ctx, c.gw, owner, c.entity, func(items []T, _ bool) ([]T, error) {
		for i := range items {
			if items[i].RecordID() != id {
				continue
			}
			if err := fn(&items[i]); err != nil {
				return nil, err
			}
			updated = items[i]
			return items, nil
		}
		return nil, c.notFound
	})
	return updated, err
}

// Delete removes the record with the given id and reports whether one was removed.
func (c *Collection[T]) Delete(ctx context.Context, owner, id string) (bool, error) {
	var removed bool
	_, err := update(ctx, c.gw, owner, c.entity, func(items []T, _ bool) ([]T, error) {
		removed = false
		out := items[:0]
		for _, it := range items {
			if it.RecordID() == id {
				removed = true
				continue
			}
			out = append(out, it)
		}
		if out == nil {
			out = []T{}
		}
		return out, nil
	})
	return removed, err
}

// Modify runs fn over the whole collection inside one transaction and stores its result.
func (c *Collection[T]) Modify(ctx context.Context, owner string, fn func([]T) []T) ([]T, error) {
	return update(ctx, c.gw, owner, c.entity, func(items []T, _ bool) ([]T, error) {
		if items == nil {
			items = []T{}
		}
		out := fn(items)
		if out == nil {
			out = []T{}
		}
		return out, nil
	})
}

// ReplaceAll overwrites the whole collection.
func (c *Collection[T]) ReplaceAll(ctx context.Context, owner string, items []T) error {
	if items == nil {
		items = []T{}
	}
	_, err := update(ctx, c.gw, owner, c.entity, func([]T, bool) ([]T, error) {
		return items, nil
	})
	return err
}

// Upsert replaces the record with rec's id in place, or appends rec.
func Upsert[T domain.Record](items []T, rec T) []T {
	for i := range items {
		if items[i].RecordID() == rec.RecordID() {
			items[i] = rec
			return items
		}
	}
	return append(items, rec)
}
