package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/benefitsnav/benefits-backend/internal/benefits/domain"
	"github.com/benefitsnav/benefits-backend/internal/benefits/repository"
	"github.com/benefitsnav/benefits-backend/internal/catalog"
)

// CompleteResult is returned when the wizard finishes.
type CompleteResult struct {
	Profile       domain.UserProfile `json:"profile"`
	Matches       []domain.Program   `json:"matches"`
	Notifications int                `json:"notifications_seeded"`
}

// FunnelService drives the five-step eligibility wizard. Answers are kept in
// the funnel document until Complete turns them into a profile.
type FunnelService struct {
	store         *repository.Store
	catalog       *catalog.Catalog
	profiles      *ProfileService
	notifications *NotificationService
}

func NewFunnelService(store *repository.Store, cat *catalog.Catalog, profiles *ProfileService, notifications *NotificationService) *FunnelService {
	return &FunnelService{store: store, catalog: cat, profiles: profiles, notifications: notifications}
}

// State returns the persisted wizard state, or a fresh one.
func (s *FunnelService) State(ctx context.Context, userID string) (domain.FunnelState, error) {
	st, found, err := s.store.Funnels.Get(ctx, userID)
	if err != nil {
		return domain.FunnelState{}, err
	}
	if !found {
		return domain.FunnelState{}, nil
	}
	return st, nil
}

// Submit records the answer for step and advances the wizard. Only the
// current step may be submitted.
func (s *FunnelService) Submit(ctx context.Context, userID, step string, in domain.FunnelAnswers) (domain.FunnelState, error) {
	if !slices.Contains(domain.FunnelSteps, step) {
		return domain.FunnelState{}, invalid("unknown funnel step %q", step)
	}
	if err := applyStep(step, &in); err != nil {
		return domain.FunnelState{}, err
	}

	return s.store.Funnels.Update(ctx, userID, func(st domain.FunnelState, _ bool) (domain.FunnelState, error) {
		if st.CurrentStep() != step {
			return st, domain.ErrStepOutOfOrder
		}
		a := &st.Answers
		switch step {
		case domain.StepHousehold:
			a.HouseholdSize, a.HouseholdType = in.HouseholdSize, in.HouseholdType
		case domain.StepIncome:
			a.IncomeBracket = in.IncomeBracket
		case domain.StepLocation:
			a.ZipCode, a.State = in.ZipCode, in.State
		case domain.StepNeeds:
			a.Needs = in.Needs
		case domain.StepLanguage:
			a.Language, a.AudienceTier = in.Language, in.AudienceTier
		}
		st.Step++
		st.Completed = false
		st.UpdatedAt = time.Now().UTC()
		return st, nil
	})
}

// Back moves the wizard one step back. At the first step it is a no-op.
func (s *FunnelService) Back(ctx context.Context, userID string) (domain.FunnelState, error) {
	return s.store.Funnels.Update(ctx, userID, func(st domain.FunnelState, _ bool) (domain.FunnelState, error) {
		if st.Step > 0 {
			st.Step--
		}
		st.Completed = false
		st.UpdatedAt = time.Now().UTC()
		return st, nil
	})
}

// Complete writes the profile from the collected answers, seeds notifications
// and returns the matching programs.
func (s *FunnelService) Complete(ctx context.Context, userID string) (CompleteResult, error) {
	st, err := s.State(ctx, userID)
	if err != nil {
		return CompleteResult{}, err
	}
	if st.Step < len(domain.FunnelSteps) {
		return CompleteResult{}, domain.ErrFunnelIncomplete
	}

	a := st.Answers
	profile, err := s.profiles.Put(ctx, userID, domain.UserProfile{
		HouseholdSize: a.HouseholdSize,
		HouseholdType: a.HouseholdType,
		IncomeBracket: a.IncomeBracket,
		ZipCode:       a.ZipCode,
		State:         a.State,
		Needs:         a.Needs,
		Language:      a.Language,
		AudienceTier:  a.AudienceTier,
	})
	if err != nil {
		return CompleteResult{}, err
	}

	st.Completed = true
	st.UpdatedAt = time.Now().UTC()
	if err := s.store.Funnels.Put(ctx, userID, st); err != nil {
		return CompleteResult{}, err
	}

	seeded, err := s.notifications.Seed(ctx, userID)
	if err != nil {
		return CompleteResult{}, err
	}

	return CompleteResult{
		Profile:       profile,
		Matches:       s.catalog.Match(profile),
		Notifications: seeded,
	}, nil
}

// Reset discards all answers and restarts at the first step.
func (s *FunnelService) Reset(ctx context.Context, userID string) (domain.FunnelState, error) {
	if err := s.store.Funnels.Delete(ctx, userID); err != nil {
		return domain.FunnelState{}, err
	}
	return domain.FunnelState{}, nil
}

// applyStep validates the fields that belong to step and normalizes them in place.
func applyStep(step string, in *domain.FunnelAnswers) error {
	switch step {
	case domain.StepHousehold:
		return validateHousehold(in.HouseholdSize, in.HouseholdType)
	case domain.StepIncome:
		if !domain.IsValidIncomeBracket(in.IncomeBracket) {
			return invalid("unknown income_bracket %q", in.IncomeBracket)
		}
	case domain.StepLocation:
		state, err := resolveLocation(strings.TrimSpace(in.ZipCode), in.State)
		if err != nil {
			return err
		}
		in.ZipCode = strings.TrimSpace(in.ZipCode)
		in.State = state
	case domain.StepNeeds:
		if in.Needs == nil {
			in.Needs = []string{}
		}
		return validateNeeds(in.Needs)
	case domain.StepLanguage:
		return validateLanguage(in.Language, in.AudienceTier)
	}
	return nil
}
