package main

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/benefitsnav/benefits-backend/config"
	"github.com/benefitsnav/benefits-backend/internal/auth"
	"github.com/benefitsnav/benefits-backend/internal/bootstrap"
	"github.com/benefitsnav/benefits-backend/internal/logger"
	"github.com/benefitsnav/benefits-backend/internal/offline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "console").Fatal("load config", zap.Error(err))
	}
	log := logger.New(cfg.App.LogLevel, cfg.App.LogFormat)
	defer log.Sync()

	if len(os.Args) < 2 {
		log.Fatal("usage: worker <drain|migrate|stats|role> [args]")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if os.Args[1] == "role" {
		runRole(ctx, cfg, os.Args[2:], log)
		return
	}

	app, err := bootstrap.NewApp(ctx, cfg, log, false)
	if err != nil {
		log.Fatal("startup failed", zap.Error(err))
	}
	defer app.Close()

	switch os.Args[1] {
	case "drain":
		runDrain(ctx, app, log)
	case "migrate":
		// NewApp already applied pending migrations.
		if app.SQL == nil {
			log.Fatal("no database configured")
		}
		log.Info("migrations up to date")
	case "stats":
		runStats(ctx, app, os.Args[2:], log)
	default:
		log.Fatal("unknown command", zap.String("command", os.Args[1]))
	}
}

// runDrain replays every owner's queue once.
func runDrain(ctx context.Context, app *bootstrap.App, log *zap.Logger) {
	if !app.Services.Replayer.Enabled() {
		log.Fatal("no database configured, nothing to drain into")
	}
	reports := offline.NewScheduler(app.Offline, app.Services.Replayer, "", log).RunOnce(ctx)
	for _, r := range reports {
		log.Info("owner drained",
			zap.String("owner", r.Owner),
			zap.Int("succeeded", r.Succeeded),
			zap.Int("retried", r.Retried),
			zap.Strings("discarded", r.DiscardedIDs),
		)
	}
}

// runRole sets a user's role claim: worker role <firebase-uid> <admin|user>.
func runRole(ctx context.Context, cfg *config.Config, args []string, log *zap.Logger) {
	if len(args) != 2 {
		log.Fatal("usage: worker role <firebase-uid> <admin|user>")
	}
	fb, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
	if err != nil {
		log.Fatal("firebase init failed", zap.Error(err))
	}
	if err := fb.SetRole(ctx, args[0], args[1]); err != nil {
		log.Fatal("set role failed", zap.Error(err))
	}
	log.Info("role updated", zap.String("uid", args[0]), zap.String("role", args[1]))
}

func runStats(ctx context.Context, app *bootstrap.App, args []string, log *zap.Logger) {
	owners := args
	if len(owners) == 0 {
		var err error
		if owners, err = app.Offline.Owners(ctx); err != nil {
			log.Fatal("list owners", zap.Error(err))
		}
	}
	for _, o := range owners {
		st, err := app.Offline.Stats(ctx, o)
		if err != nil {
			log.Error("stats failed", zap.String("owner", o), zap.Error(err))
			continue
		}
		log.Info("offline stats", zap.String("owner", o), zap.Int64("total", st.Total), zap.Any("stores", st.Stores))
	}
}
