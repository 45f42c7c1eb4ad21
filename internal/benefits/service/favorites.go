package service

import (
	"context"

	"github.com/benefitsnav/benefits-backend/internal/benefits/domain"
	"github.com/benefitsnav/benefits-backend/internal/benefits/repository"
	"github.com/benefitsnav/benefits-backend/internal/catalog"
	"go.uber.org/zap"
)

type FavoriteService struct {
	store   *repository.Store
	catalog *catalog.Catalog
	sync    *Syncer
	log     *zap.Logger
}

func NewFavoriteService(store *repository.Store, cat *catalog.Catalog, sync *Syncer, log *zap.Logger) *FavoriteService {
	if log == nil {
		log = zap.NewNop()
	}
	return &FavoriteService{store: store, catalog: cat, sync: sync, log: log.Named("favorites")}
}

// Toggle flips a program in or out of the favorites and reports the new state.
func (s *FavoriteService) Toggle(ctx context.Context, userID, programID string) (bool, SyncStatus, error) {
	if _, err := s.catalog.Get(programID); err != nil {
		return false, "", err
	}
	on, err := s.store.Favorites.Toggle(ctx, userID, programID)
	if err != nil {
		return false, "", err
	}
	return on, s.sync.favorite(ctx, userID, programID, on), nil
}

// IDs returns the favorite program ids. When nothing is stored locally and a
// remote database is configured, the remote list is copied into local storage.
func (s *FavoriteService) IDs(ctx context.Context, userID string) ([]string, error) {
	ids, err := s.store.Favorites.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) > 0 || !s.sync.Enabled() {
		return ids, nil
	}

	remote, err := s.sync.mirror.ListFavorites(ctx, userID)
	if err != nil {
		s.log.Warn("remote favorites unavailable", zap.String("user_id", userID), zap.Error(err))
		return ids, nil
	}
	if len(remote) == 0 {
		return ids, nil
	}
	if err := s.store.Favorites.Replace(ctx, userID, remote); err != nil {
		return nil, err
	}
	return remote, nil
}

// List resolves favorites against the catalog; ids the catalog does not know are skipped.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]domain.Program, error) {
	ids, err := s.IDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Program, 0, len(ids))
	for _, id := range ids {
		p, err := s.catalog.Get(id)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
