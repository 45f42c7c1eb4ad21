package service

import (
	"context"
	"errors"

	"github.com/benefitsnav/benefits-backend/internal/benefits/domain"
	"github.com/benefitsnav/benefits-backend/internal/catalog"
	"github.com/benefitsnav/benefits-backend/internal/govapi"
	"github.com/benefitsnav/benefits-backend/internal/offline"
	"go.uber.org/zap"
)

// ProgramService answers catalog queries and keeps the offline program copy
// and search history up to date.
type ProgramService struct {
	catalog  *catalog.Catalog
	profiles *ProfileService
	cache    *offline.Cache
	gov      *govapi.Client
	log      *zap.Logger
}

func NewProgramService(cat *catalog.Catalog, profiles *ProfileService, cache *offline.Cache, gov *govapi.Client, log *zap.Logger) *ProgramService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProgramService{catalog: cat, profiles: profiles, cache: cache, gov: gov, log: log.Named("programs")}
}

// Browse filters the catalog and records the query in the user's search
// history. A failure to record history does not fail the query.
func (s *ProgramService) Browse(ctx context.Context, userID string, q catalog.Query) []domain.Program {
	programs := s.catalog.Filter(q)

	if s.cache != nil && (q.Search != "" || q.Category != "" || q.State != "" || q.AudienceTier != "") {
		filters := map[string]string{}
		for k, v := range map[string]string{"category": q.Category, "state": q.State, "audience_tier": q.AudienceTier} {
			if v != "" {
				filters[k] = v
			}
		}
		if _, err := s.cache.AddSearch(ctx, userID, q.Search, filters, len(programs)); err != nil {
			s.log.Warn("could not record search", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return programs
}

func (s *ProgramService) Get(id string) (domain.Program, error) {
	return s.catalog.Get(id)
}

func (s *ProgramService) Categories() []string {
	return s.catalog.Categories()
}

// Matches runs the matcher against the saved profile.
func (s *ProgramService) Matches(ctx context.Context, userID string) ([]domain.Program, error) {
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.catalog.Match(p), nil
}

// SyncOffline copies the user's matches into the offline store, or the whole
// catalog when the user has no profile yet.
func (s *ProgramService) SyncOffline(ctx context.Context, userID string) (int, error) {
	programs, err := s.Matches(ctx, userID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		programs, err = s.catalog.All(), nil
	}
	if err != nil {
		return 0, err
	}
	return s.cache.CachePrograms(ctx, userID, programs)
}

func (s *ProgramService) FederalSource(ctx context.Context) (govapi.ProgramsResult, error) {
	return s.gov.FederalPrograms(ctx)
}

func (s *ProgramService) StateSource(ctx context.Context, state string) (govapi.ProgramsResult, error) {
	return s.gov.StatePrograms(ctx, state)
}

func (s *ProgramService) Eligibility(ctx context.Context, programID string) (govapi.EligibilityResult, error) {
	return s.gov.ProgramEligibility(ctx, programID)
}
