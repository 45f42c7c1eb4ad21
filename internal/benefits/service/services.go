package service

import (
	"github.com/benefitsnav/benefits-backend/internal/benefits/repository"
	"github.com/benefitsnav/benefits-backend/internal/catalog"
	"github.com/benefitsnav/benefits-backend/internal/govapi"
	"github.com/benefitsnav/benefits-backend/internal/offline"
	"go.uber.org/zap"
)

type Deps struct {
	Store   *repository.Store
	Catalog *catalog.Catalog
	Offline *offline.Cache
	GovAPI  *govapi.Client
	// Mirror is nil when no remote database is configured.
	Mirror Mirror
	Log    *zap.Logger
}

// Services is the full set wired for the HTTP layer.
type Services struct {
	Profiles      *ProfileService
	Funnel        *FunnelService
	Programs      *ProgramService
	Applications  *ApplicationService
	Favorites     *FavoriteService
	Todos         *TodoService
	Notifications *NotificationService
	Admin         *AdminService
	Replayer      *Replayer
}

func New(d Deps) *Services {
	syncer := NewSyncer(d.Mirror, d.Offline, d.Log)
	profiles := NewProfileService(d.Store)
	notifications := NewNotificationService(d.Store, d.Catalog)

	return &Services{
		Profiles:      profiles,
		Funnel:        NewFunnelService(d.Store, d.Catalog, profiles, notifications),
		Programs:      NewProgramService(d.Catalog, profiles, d.Offline, d.GovAPI, d.Log),
		Applications:  NewApplicationService(d.Store, d.Catalog, syncer, notifications),
		Favorites:     NewFavoriteService(d.Store, d.Catalog, syncer, d.Log),
		Todos:         NewTodoService(d.Store),
		Notifications: notifications,
		Admin:         NewAdminService(d.Store, d.Catalog, d.GovAPI),
		Replayer:      NewReplayer(d.Mirror),
	}
}
