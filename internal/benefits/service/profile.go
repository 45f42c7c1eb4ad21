package service

import (
	"context"
	"time"

	"github.com/benefitsnav/benefits-backend/internal/benefits/domain"
	"github.com/benefitsnav/benefits-backend/internal/benefits/repository"
)

type ProfileService struct {
	store *repository.Store
}

func NewProfileService(store *repository.Store) *ProfileService {
	return &ProfileService{store: store}
}

// Get returns the saved profile. A missing or unreadable profile is ErrProfileNotFound.
func (s *ProfileService) Get(ctx context.Context, userID string) (domain.UserProfile, error) {
	p, found, err := s.store.Profiles.Get(ctx, userID)
	if err != nil {
		return domain.UserProfile{}, err
	}
	if !found {
		return domain.UserProfile{}, domain.ErrProfileNotFound
	}
	return p, nil
}

// Put replaces the profile wholesale. Only the creation time survives from the
// previous version.
func (s *ProfileService) Put(ctx context.Context, userID string, p domain.UserProfile) (domain.UserProfile, error) {
	if err := validateProfile(&p); err != nil {
		return domain.UserProfile{}, err
	}
	if p.Needs == nil {
		p.Needs = []string{}
	}

	return s.store.Profiles.Update(ctx, userID, func(cur domain.UserProfile, found bool) (domain.UserProfile, error) {
		now := time.Now().UTC()
		p.UserID = userID
		p.CreatedAt = now
		if found && !cur.CreatedAt.IsZero() {
			p.CreatedAt = cur.CreatedAt
		}
		p.UpdatedAt = now
		return p, nil
	})
}
