package offline

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler drains every owner's retry queue on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	cache    *Cache
	replayer Replayer
	schedule string
	timeout  time.Duration
	log      *zap.Logger
	running  atomic.Bool
}

func NewScheduler(cache *Cache, replayer Replayer, schedule string, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	if schedule == "" {
		schedule = "@every 1m"
	}
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		cache:    cache,
		replayer: replayer,
		schedule: schedule,
		timeout:  30 * time.Second,
		log:      log.Named("offline-sync"),
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.tick); err != nil {
		return err
	}
	s.log.Info("offline sync scheduler started", zap.String("schedule", s.schedule))
	s.cron.Start()
	return nil
}

// Stop halts the schedule and returns a context that is done once any running
// drain has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) tick() {
	// overlapping ticks are skipped
	if !s.running.CompareAndSwap(false, true) {
		return
	}
	defer s.running.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.RunOnce(ctx)
}

// RunOnce performs a single drain pass over every owner and logs a summary.
func (s *Scheduler) RunOnce(ctx context.Context) []DrainReport {
	reports, err := s.cache.DrainAll(ctx, s.replayer)
	if err != nil {
		s.log.Error("offline sync failed", zap.Error(err))
	}

	var ok, retried, discarded int
	for _, r := range reports {
		ok += r.Succeeded
		retried += r.Retried
		discarded += r.Discarded
	}
	if len(reports) > 0 {
		s.log.Info("offline sync pass complete",
			zap.Int("owners", len(reports)),
			zap.Int("succeeded", ok),
			zap.Int("retried", retried),
			zap.Int("discarded", discarded),
		)
	}
	return reports
}
