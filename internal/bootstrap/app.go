package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/benefitsnav/benefits-backend/config"
	"github.com/benefitsnav/benefits-backend/internal/auth"
	"github.com/benefitsnav/benefits-backend/internal/benefits/repository"
	"github.com/benefitsnav/benefits-backend/internal/benefits/service"
	"github.com/benefitsnav/benefits-backend/internal/catalog"
	"github.com/benefitsnav/benefits-backend/internal/govapi"
	"github.com/benefitsnav/benefits-backend/internal/offline"
	"github.com/benefitsnav/benefits-backend/internal/storage/postgres"
	"github.com/benefitsnav/benefits-backend/internal/users"
)

// App holds every long-lived dependency of the process.
type App struct {
	Config   *config.Config
	Log      *zap.Logger
	Redis    *redis.Client
	Store    *repository.Store
	Offline  *offline.Cache
	Services *service.Services

	// Remote and Pool are nil when no PostgreSQL database is configured.
	SQL    *sql.DB
	Remote *repository.RemoteRepository
	Pool   *pgxpool.Pool

	Firebase *auth.Firebase
}

// NewApp connects to Redis and, when configured, PostgreSQL, then wires the
// services. Firebase is initialized only when withAuth is set.
func NewApp(ctx context.Context, cfg *config.Config, log *zap.Logger, withAuth bool) (*App, error) {
	app := &App{Config: cfg, Log: log}

	rdb, err := OpenRedis(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	app.Redis = rdb

	if cfg.Database.Enabled() {
		if err := app.openPostgres(ctx); err != nil {
			app.Close()
			return nil, err
		}
	} else {
		log.Info("no database configured, running local-only")
	}

	if withAuth && cfg.Firebase.CredentialsPath != "" {
		fb, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.Firebase = fb
	}

	cat, err := catalog.Load()
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	app.Store = repository.NewStore(repository.NewGateway(rdb, log))
	app.Offline = offline.NewCache(rdb, cfg.Offline.MaxRetries, log)

	deps := service.Deps{
		Store:   app.Store,
		Catalog: cat,
		Offline: app.Offline,
		GovAPI:  govapi.NewClient(govOptions(cfg.GovAPI), cat, log),
		Log:     log,
	}
	if app.Remote != nil {
		deps.Mirror = app.Remote
	}
	app.Services = service.New(deps)
	return app, nil
}

func (a *App) openPostgres(ctx context.Context) error {
	db, err := postgres.NewConnection(ctx, &a.Config.Database)
	if err != nil {
		return err
	}
	a.SQL = db

	applied, err := postgres.Migrate(ctx, db)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if len(applied) > 0 {
		a.Log.Info("migrations applied", zap.Int64s("versions", applied))
	}
	a.Remote = repository.NewRemoteRepository(db)

	pool, err := OpenDB(ctx, DBOptions{DSN: postgres.DSN(&a.Config.Database), MaxConns: 10, MinConns: 2})
	if err != nil {
		return err
	}
	a.Pool = pool
	return nil
}

func govOptions(c config.GovAPIConfig) govapi.Options {
	opts := govapi.Options{
		Mode:     govapi.DataSource(c.DataSource),
		Timeout:  c.Timeout,
		Rate:     c.Rate,
		Burst:    c.Burst,
		CacheTTL: c.CacheTTL,
		APIKey:   c.APIKey,
	}
	if c.OAuthClientID != "" && c.OAuthTokenURL != "" {
		opts.OAuth = &clientcredentials.Config{
			ClientID:     c.OAuthClientID,
			ClientSecret: c.OAuthClientSecret,
			TokenURL:     c.OAuthTokenURL,
		}
	}
	return opts
}

// RouterDeps returns the router wiring for this app.
func (a *App) RouterDeps(serviceName string) RouterDeps {
	d := RouterDeps{
		ServiceName:    serviceName,
		Version:        a.Config.App.Version,
		AllowedOrigins: a.Config.Server.AllowedOrigins,
		Log:            a.Log,
		Redis:          a.Store,
		Services:       a.Services,
		Offline:        a.Offline,
	}
	if a.Remote != nil {
		d.DB = a.Remote
	}
	if a.Pool != nil {
		d.Accounts = users.NewRepo(a.Pool)
	}
	if a.Firebase != nil {
		d.Verifier = a.Firebase
	}
	return d
}

func (a *App) Close() {
	if a.Pool != nil {
		a.Pool.Close()
	}
	if a.SQL != nil {
		_ = a.SQL.Close()
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
}
