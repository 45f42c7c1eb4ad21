package repository

import (
	"context"
	"slices"

	"github.com/benefitsnav/benefits-backend/internal/benefits/domain"
)

// Fixed entity keys.
const (
	EntityProfile         = "profile"
	EntityFunnel          = "funnel"
	EntityApplications    = "applications"
	EntityFavorites       = "favorites"
	EntityTodos           = "todos"
	EntityNotifications   = "notifications"
	EntityAdminPrograms   = "admin_programs"
	EntityAPIIntegrations = "api_integrations"
	EntitySecurityAudits  = "security_audits"
	EntityDataEncryption  = "data_encryption"
)

// AdminOwner namespaces the admin console entities, which are not per user.
const AdminOwner = "admin"

// Store groups the typed accessors for every persisted entity.
type Store struct {
	gw *Gateway

	Profiles      *Document[domain.UserProfile]
	Funnels       *Document[domain.FunnelState]
	Applications  *Collection[domain.Application]
	Favorites     *FavoriteRepository
	Todos         *Collection[domain.TodoItem]
	Notifications *Collection[domain.Notification]

	AdminPrograms  *Collection[domain.AdminProgram]
	Integrations   *Collection[domain.APIIntegration]
	SecurityAudits *Collection[domain.SecurityAudit]
	Encryption     *Collection[domain.DataEncryption]
}

func NewStore(gw *Gateway) *Store {
	return &Store{
		gw:            gw,
		Profiles:      NewDocument[domain.UserProfile](gw, EntityProfile),
		Funnels:       NewDocument[domain.FunnelState](gw, EntityFunnel),
		Applications:  NewCollection[domain.Application](gw, EntityApplications, domain.ErrApplicationNotFound),
		Favorites:     &FavoriteRepository{doc: NewDocument[[]string](gw, EntityFavorites)},
		Todos:         NewCollection[domain.TodoItem](gw, EntityTodos, domain.ErrTodoNotFound),
		Notifications: NewCollection[domain.Notification](gw, EntityNotifications, domain.ErrNotificationNotFound),

		AdminPrograms:  NewCollection[domain.AdminProgram](gw, EntityAdminPrograms, domain.ErrAdminProgramNotFound),
		Integrations:   NewCollection[domain.APIIntegration](gw, EntityAPIIntegrations, domain.ErrIntegrationNotFound),
		SecurityAudits: NewCollection[domain.SecurityAudit](gw, EntitySecurityAudits, domain.ErrRecordNotFound),
		Encryption:     NewCollection[domain.DataEncryption](gw, EntityDataEncryption, domain.ErrRecordNotFound),
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.gw.Ping(ctx)
}

// FavoriteRepository keeps favorites as a plain list of program ids.
type FavoriteRepository struct {
	doc *Document[[]string]
}

func (r *FavoriteRepository) List(ctx context.Context, owner string) ([]string, error) {
	ids, found, err := r.doc.Get(ctx, owner)
	if err != nil {
		return nil, err
	}
	if !found || ids == nil {
		return []string{}, nil
	}
	return ids, nil
}

// Replace overwrites the stored favorite list.
func (r *FavoriteRepository) Replace(ctx context.Context, owner string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	return r.doc.Put(ctx, owner, ids)
}

// Toggle flips membership of programID and reports whether it is now a favorite.
func (r *FavoriteRepository) Toggle(ctx context.Context, owner, programID string) (bool, error) {
	var favorited bool
	_, err := r.doc.Update(ctx, owner, func(ids []string, _ bool) ([]string, error) {
		if i := slices.Index(ids, programID); i >= 0 {
			favorited = false
			return slices.Delete(ids, i, i+1), nil
		}
		favorited = true
		return append(ids, programID), nil
	})
	return favorited, err
}
