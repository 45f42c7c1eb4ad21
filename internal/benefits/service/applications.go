package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/benefitsnav/benefits-backend/internal/benefits/domain"
	"github.com/benefitsnav/benefits-backend/internal/benefits/repository"
	"github.com/benefitsnav/benefits-backend/internal/catalog"
	"github.com/google/uuid"
)

type ApplicationService struct {
	store         *repository.Store
	catalog       *catalog.Catalog
	sync          *Syncer
	notifications *NotificationService

	// approve decides the outcome of a simulated review.
	approve func() bool
}

func NewApplicationService(store *repository.Store, cat *catalog.Catalog, sync *Syncer, notifications *NotificationService) *ApplicationService {
	return &ApplicationService{
		store:         store,
		catalog:       cat,
		sync:          sync,
		notifications: notifications,
		approve:       func() bool { return rand.IntN(2) == 0 },
	}
}

// Create starts an application for a catalog program.
func (s *ApplicationService) Create(ctx context.Context, userID string, req domain.CreateApplicationRequest) (domain.Application, SyncStatus, error) {
	prog, err := s.catalog.Get(strings.TrimSpace(req.ProgramID))
	if err != nil {
		return domain.Application{}, "", err
	}

	now := time.Now().UTC()
	app := domain.Application{
		ID:          uuid.NewString(),
		ProgramID:   prog.ID,
		ProgramName: prog.Name,
		Status:      domain.StatusStarted,
		Notes:       req.Notes,
		StartedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Applications.Save(ctx, userID, app); err != nil {
		return domain.Application{}, "", err
	}
	return app, s.sync.application(ctx, userID, app), nil
}

// List returns the user's applications, newest first, optionally filtered by status.
func (s *ApplicationService) List(ctx context.Context, userID, status string) ([]domain.Application, error) {
	if status != "" && !domain.IsValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	apps, err := s.store.Applications.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Application, 0, len(apps))
	for _, a := range apps {
		if status == "" || a.Status == status {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	return out, nil
}

func (s *ApplicationService) Get(ctx context.Context, userID, id string) (domain.Application, error) {
	return s.store.Applications.Get(ctx, userID, id)
}

// Submit moves a started application to submitted.
func (s *ApplicationService) Submit(ctx context.Context, userID, id string) (domain.Application, SyncStatus, error) {
	return s.transition(ctx, userID, id, domain.StatusSubmitted, nil)
}

// UpdateStatus is the admin's manual review action.
func (s *ApplicationService) UpdateStatus(ctx context.Context, userID, id string, req domain.UpdateApplicationStatusRequest) (domain.Application, SyncStatus, error) {
	if !domain.IsValidStatus(req.Status) {
		return domain.Application{}, "", domain.ErrInvalidStatus
	}
	return s.transition(ctx, userID, id, req.Status, req.Notes)
}

// Simulate runs a random review. A started application is submitted first,
// then approved or denied with even odds.
func (s *ApplicationService) Simulate(ctx context.Context, userID, id string) (domain.Application, SyncStatus, error) {
	app, err := s.Get(ctx, userID, id)
	if err != nil {
		return domain.Application{}, "", err
	}
	if app.Status == domain.StatusStarted {
		if _, _, err := s.transition(ctx, userID, id, domain.StatusSubmitted, nil); err != nil {
			return domain.Application{}, "", err
		}
	}

	outcome := domain.StatusDenied
	if s.approve() {
		outcome = domain.StatusApproved
	}
	return s.transition(ctx, userID, id, outcome, nil)
}

func (s *ApplicationService) transition(ctx context.Context, userID, id, to string, notes *string) (domain.Application, SyncStatus, error) {
	app, err := s.store.Applications.Update(ctx, userID, id, func(a *domain.Application) error {
		if !domain.CanTransition(a.Status, to) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, a.Status, to)
		}
		now := time.Now().UTC()
		a.Status = to
		a.UpdatedAt = now
		switch to {
		case domain.StatusSubmitted:
			a.SubmittedAt = &now
		case domain.StatusApproved, domain.StatusDenied:
			a.DecidedAt = &now
		}
		if notes != nil {
			a.Notes = *notes
		}
		return nil
	})
	if err != nil {
		return domain.Application{}, "", err
	}

	if to == domain.StatusApproved || to == domain.StatusDenied {
		name := app.ProgramName
		if name == "" {
			name = app.ProgramID
		}
		if _, err := s.notifications.Push(ctx, userID, domain.Notification{
			Type:      domain.NotificationStatusUpdate,
			Title:     "Application " + to,
			Message:   fmt.Sprintf("Your %s application was %s.", name, to),
			ProgramID: app.ProgramID,
		}); err != nil {
			return domain.Application{}, "", err
		}
	}

	return app, s.sync.application(ctx, userID, app), nil
}
