package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benefitsnav/benefits-backend/internal/benefits/domain"
	"github.com/benefitsnav/benefits-backend/internal/offline"
	"go.uber.org/zap"
)

// Queued mutation kinds
const (
	KindApplicationUpsert = "application.upsert"
	KindFavoriteSet       = "favorite.set"
)

// SyncStatus describes what happened to the remote copy of a local write.
type SyncStatus string

const (
	SyncLocal  SyncStatus = "local" // no remote database configured
	SyncSynced SyncStatus = "synced"
	SyncQueued SyncStatus = "queued"
)

var ErrRemoteDisabled = errors.New("remote database not configured")

// Mirror is the remote side of offline-first writes.
type Mirror interface {
	UpsertApplication(ctx context.Context, userID string, app domain.Application) error
	SetFavorite(ctx context.Context, userID, programID string, favorite bool) error
	ListFavorites(ctx context.Context, userID string) ([]string, error)
}

type favoritePayload struct {
	ProgramID string `json:"program_id"`
	Favorite  bool   `json:"favorite"`
}

// Syncer pushes local writes to the mirror and queues them when it is unreachable.
type Syncer struct {
	mirror Mirror
	queue  *offline.Cache
	log    *zap.Logger
}

func NewSyncer(mirror Mirror, queue *offline.Cache, log *zap.Logger) *Syncer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Syncer{mirror: mirror, queue: queue, log: log.Named("sync")}
}

func (s *Syncer) Enabled() bool { return s != nil && s.mirror != nil }

func (s *Syncer) application(ctx context.Context, owner string, app domain.Application) SyncStatus {
	if !s.Enabled() {
		return SyncLocal
	}
	return s.push(ctx, owner, KindApplicationUpsert, app, func(ctx context.Context) error {
		return s.mirror.UpsertApplication(ctx, owner, app)
	})
}

func (s *Syncer) favorite(ctx context.Context, owner, programID string, favorite bool) SyncStatus {
	if !s.Enabled() {
		return SyncLocal
	}
	payload := favoritePayload{ProgramID: programID, Favorite: favorite}
	return s.push(ctx, owner, KindFavoriteSet, payload, func(ctx context.Context) error {
		return s.mirror.SetFavorite(ctx, owner, programID, favorite)
	})
}

func (s *Syncer) push(ctx context.Context, owner, kind string, payload any, write func(context.Context) error) SyncStatus {
	err := write(ctx)
	if err == nil {
		return SyncSynced
	}
	s.log.Warn("remote write failed, queueing for retry",
		zap.String("owner", owner), zap.String("kind", kind), zap.Error(err))

	if s.queue == nil {
		return SyncLocal
	}
	if _, qerr := s.queue.Enqueue(ctx, owner, kind, payload); qerr != nil {
		s.log.Error("could not queue mutation", zap.String("owner", owner), zap.String("kind", kind), zap.Error(qerr))
		return SyncLocal
	}
	return SyncQueued
}

// Replayer applies queued mutations to the mirror. It satisfies offline.Replayer.
type Replayer struct {
	mirror Mirror
}

func NewReplayer(mirror Mirror) *Replayer {
	return &Replayer{mirror: mirror}
}

func (r *Replayer) Enabled() bool { return r != nil && r.mirror != nil }

func (r *Replayer) Replay(ctx context.Context, m offline.QueuedMutation) error {
	if r.mirror == nil {
		return ErrRemoteDisabled
	}

	switch m.Kind {
	case KindApplicationUpsert:
		var app domain.Application
		if err := json.Unmarshal(m.Payload, &app); err != nil {
			return fmt.Errorf("decode %s: %w", m.Kind, err)
		}
		return r.mirror.UpsertApplication(ctx, m.Owner, app)

	case KindFavoriteSet:
		var fav favoritePayload
		if err := json.Unmarshal(m.Payload, &fav); err != nil {
			return fmt.Errorf("decode %s: %w", m.Kind, err)
		}
		return r.mirror.SetFavorite(ctx, m.Owner, fav.ProgramID, fav.Favorite)
	}
	return fmt.Errorf("unknown mutation kind %q", m.Kind)
}
