package offline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/benefitsnav/benefits-backend/internal/metrics"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const DefaultMaxRetries = 3

// QueuedMutation is a write that could not reach the remote database.
type QueuedMutation struct {
	ID        string          `json:"id"`
	Owner     string          `json:"owner"`
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	Retries   int             `json:"retries"`
	CreatedAt time.Time       `json:"created_at"`
	LastError string          `json:"last_error,omitempty"`
}

// Replayer re-applies a queued mutation against the remote side.
type Replayer interface {
	Replay(ctx context.Context, m QueuedMutation) error
}

type ReplayFunc func(ctx context.Context, m QueuedMutation) error

func (f ReplayFunc) Replay(ctx context.Context, m QueuedMutation) error { return f(ctx, m) }

type DrainReport struct {
	Owner        string   `json:"owner"`
	Processed    int      `json:"processed"`
	Succeeded    int      `json:"succeeded"`
	Retried      int      `json:"retried"`
	Discarded    int      `json:"discarded"`
	DiscardedIDs []string `json:"discarded_ids"`
}

// Enqueue stores a failed mutation with a zero retry count and registers the
// owner for background draining.
func (c *Cache) Enqueue(ctx context.Context, owner, kind string, payload any) (QueuedMutation, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return QueuedMutation{}, fmt.Errorf("marshal %s payload: %w", kind, err)
	}
	m := QueuedMutation{
		ID:        uuid.NewString(),
		Owner:     owner,
		Kind:      kind,
		Payload:   raw,
		CreatedAt: c.now().UTC(),
	}
	data, err := json.Marshal(m)
	if err != nil {
		return QueuedMutation{}, err
	}

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, c.key(owner, StoreQueue), m.ID, data)
		pipe.SAdd(ctx, ownersKey, owner)
		return nil
	})
	if err != nil {
		return QueuedMutation{}, fmt.Errorf("enqueue %s: %w", kind, err)
	}
	metrics.QueueOutcomes.WithLabelValues("enqueued").Inc()
	return m, nil
}

// Pending lists queued mutations in creation order.
func (c *Cache) Pending(ctx context.Context, owner string) ([]QueuedMutation, error) {
	items, err := loadAll[QueuedMutation](ctx, c, owner, StoreQueue)
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

// Owners returns every owner that has had mutations queued since its last full drain.
func (c *Cache) Owners(ctx context.Context) ([]string, error) {
	owners, err := c.client.SMembers(ctx, ownersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list queue owners: %w", err)
	}
	sort.Strings(owners)
	return owners, nil
}

// ProcessQueue replays the owner's queue once, oldest first. A successful
// replay deletes the entry; a failed one bumps its retry counter, and the
// entry is discarded once the counter would reach the retry cap.
func (c *Cache) ProcessQueue(ctx context.Context, owner string, r Replayer) (DrainReport, error) {
	report := DrainReport{Owner: owner, DiscardedIDs: []string{}}

	pending, err := c.Pending(ctx, owner)
	if err != nil {
		return report, err
	}

	key := c.key(owner, StoreQueue)
	for _, m := range pending {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Processed++

		replayErr := r.Replay(ctx, m)
		switch {
		case replayErr == nil:
			if err := c.client.HDel(ctx, key, m.ID).Err(); err != nil {
				return report, fmt.Errorf("remove replayed mutation: %w", err)
			}
			report.Succeeded++
			metrics.QueueOutcomes.WithLabelValues("succeeded").Inc()

		case m.Retries+1 < c.maxRetries:
			m.Retries++
			m.LastError = replayErr.Error()
			data, err := json.Marshal(m)
			if err != nil {
				return report, err
			}
			if err := c.client.HSet(ctx, key, m.ID, data).Err(); err != nil {
				return report, fmt.Errorf("update queued mutation: %w", err)
			}
			report.Retried++
			metrics.QueueOutcomes.WithLabelValues("retried").Inc()

		default:
			if err := c.client.HDel(ctx, key, m.ID).Err(); err != nil {
				return report, fmt.Errorf("discard mutation: %w", err)
			}
			report.Discarded++
			report.DiscardedIDs = append(report.DiscardedIDs, m.ID)
			metrics.QueueOutcomes.WithLabelValues("discarded").Inc()
			c.log.Warn("discarding queued mutation after retry cap",
				zap.String("owner", owner),
				zap.String("id", m.ID),
				zap.String("kind", m.Kind),
				zap.Int("retries", m.Retries+1),
				zap.Error(replayErr),
			)
		}
	}

	if err := c.unregisterIfEmpty(ctx, owner); err != nil {
		return report, err
	}
	return report, nil
}

// unregisterIfEmpty drops owner from the drain set once its queue is empty.
// The queue key is watched, so an Enqueue that lands between the count and
// the removal aborts the removal and the owner stays registered.
func (c *Cache) unregisterIfEmpty(ctx context.Context, owner string) error {
	key := c.key(owner, StoreQueue)
	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		left, err := tx.HLen(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("count queue: %w", err)
		}
		if left > 0 {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.SRem(ctx, ownersKey, owner)
			return nil
		})
		return err
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("unregister owner: %w", err)
	}
	return nil
}

// DrainAll runs ProcessQueue for every registered owner. An owner whose drain
// fails is logged and skipped.
func (c *Cache) DrainAll(ctx context.Context, r Replayer) ([]DrainReport, error) {
	owners, err := c.Owners(ctx)
	if err != nil {
		return nil, err
	}
	reports := make([]DrainReport, 0, len(owners))
	for _, owner := range owners {
		rep, err := c.ProcessQueue(ctx, owner, r)
		if err != nil {
			if ctx.Err() != nil {
				return reports, ctx.Err()
			}
			c.log.Error("queue drain failed", zap.String("owner", owner), zap.Error(err))
			continue
		}
		reports = append(reports, rep)
	}
	return reports, nil
}
