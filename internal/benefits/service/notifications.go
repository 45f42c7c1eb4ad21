package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/benefitsnav/benefits-backend/internal/benefits/domain"
	"github.com/benefitsnav/benefits-backend/internal/benefits/repository"
	"github.com/benefitsnav/benefits-backend/internal/catalog"
	"github.com/google/uuid"
)

// NotificationService manages in-app notifications. Nothing is delivered
// outside the app; notifications are generated from the user's own data.
type NotificationService struct {
	store   *repository.Store
	catalog *catalog.Catalog
}

func NewNotificationService(store *repository.Store, cat *catalog.Catalog) *NotificationService {
	return &NotificationService{store: store, catalog: cat}
}

type NotificationList struct {
	Notifications []domain.Notification `json:"notifications"`
	Unread        int                   `json:"unread"`
}

// List returns notifications newest first with the unread count.
func (s *NotificationService) List(ctx context.Context, userID string) (NotificationList, error) {
	items, err := s.store.Notifications.List(ctx, userID)
	if err != nil {
		return NotificationList{}, err
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Timestamp.After(items[j].Timestamp) })

	unread := 0
	for _, n := range items {
		if !n.Read {
			unread++
		}
	}
	return NotificationList{Notifications: items, Unread: unread}, nil
}

// Seed generates the synthetic notification set: a welcome message, a reminder
// per favorite and a deadline per application still in progress. Ids are
// derived from their source so seeding twice updates instead of duplicating,
// and notifications already read stay read.
func (s *NotificationService) Seed(ctx context.Context, userID string) (int, error) {
	favs, err := s.store.Favorites.List(ctx, userID)
	if err != nil {
		return 0, err
	}
	apps, err := s.store.Applications.List(ctx, userID)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	seed := []domain.Notification{{
		ID:        "welcome",
		Type:      domain.NotificationWelcome,
		Title:     "Welcome to Benefits Navigator",
		Message:   "Your profile is saved. Browse the programs matched to your household.",
		Timestamp: now,
	}}

	for _, id := range favs {
		p, err := s.catalog.Get(id)
		if err != nil {
			continue
		}
		seed = append(seed, domain.Notification{
			ID:        "reminder-" + p.ID,
			Type:      domain.NotificationReminder,
			Title:     "Ready to apply?",
			Message:   fmt.Sprintf("You saved %s. Start your application when you are ready.", p.Name),
			ProgramID: p.ID,
			Timestamp: now,
		})
	}

	for _, a := range apps {
		if a.Status != domain.StatusStarted {
			continue
		}
		name := a.ProgramName
		if name == "" {
			name = a.ProgramID
		}
		seed = append(seed, domain.Notification{
			ID:        "deadline-" + a.ID,
			Type:      domain.NotificationDeadline,
			Title:     "Finish your application",
			Message:   fmt.Sprintf("Your %s application was started but not submitted.", name),
			ProgramID: a.ProgramID,
			Timestamp: now,
		})
	}

	_, err = s.store.Notifications.Modify(ctx, userID, func(cur []domain.Notification) []domain.Notification {
		read := make(map[string]bool, len(cur))
		for _, n := range cur {
			read[n.ID] = n.Read
		}
		for i := range seed {
			seed[i].Read = read[seed[i].ID]
			cur = repository.Upsert(cur, seed[i])
		}
		return cur
	})
	if err != nil {
		return 0, err
	}
	return len(seed), nil
}

// Push adds a single notification.
func (s *NotificationService) Push(ctx context.Context, userID string, n domain.Notification) (domain.Notification, error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now().UTC()
	}
	if err := s.store.Notifications.Save(ctx, userID, n); err != nil {
		return domain.Notification{}, err
	}
	return n, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) (domain.Notification, error) {
	return s.store.Notifications.Update(ctx, userID, id, func(n *domain.Notification) error {
		n.Read = true
		return nil
	})
}

// MarkAllRead flags every notification as read and returns how many changed.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	var changed int
	_, err := s.store.Notifications.Modify(ctx, userID, func(cur []domain.Notification) []domain.Notification {
		changed = 0
		for i := range cur {
			if !cur[i].Read {
				cur[i].Read = true
				changed++
			}
		}
		return cur
	})
	return changed, err
}

func (s *NotificationService) Delete(ctx context.Context, userID, id string) error {
	removed, err := s.store.Notifications.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrNotificationNotFound
	}
	return nil
}
