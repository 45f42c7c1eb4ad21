package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/benefitsnav/benefits-backend/config"
	"github.com/benefitsnav/benefits-backend/internal/bootstrap"
	"github.com/benefitsnav/benefits-backend/internal/logger"
	"github.com/benefitsnav/benefits-backend/internal/offline"
)

const serviceName = "benefits-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "console").Fatal("load config", zap.Error(err))
	}

	log := logger.New(cfg.App.LogLevel, cfg.App.LogFormat)
	defer log.Sync()

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("api exited", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

// run owns every resource of the process. It returns once ctx is cancelled
// and shutdown completes, or as soon as the server fails.
func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	app, err := bootstrap.NewApp(ctx, cfg, log, true)
	if err != nil {
		return fmt.Errorf("startup: %w", err)
	}
	defer app.Close()

	var sched *offline.Scheduler
	if app.Services.Replayer.Enabled() {
		sched = offline.NewScheduler(app.Offline, app.Services.Replayer, cfg.Offline.SyncSchedule, log)
		if err := sched.Start(); err != nil {
			return fmt.Errorf("start offline sync: %w", err)
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           bootstrap.BuildRouter(app.RouterDeps(serviceName)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		if sched != nil {
			<-sched.Stop().Done()
		}
		return fmt.Errorf("listen: %w", err)
	}
	log.Info("listening",
		zap.String("addr", srv.Addr),
		zap.String("env", cfg.App.Environment),
		zap.String("gov_data_source", cfg.GovAPI.DataSource),
	)

	serveErr := serve(ctx, srv, ln, cfg.Server.ShutdownTimeout, log)

	if sched != nil {
		stopCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		select {
		case <-sched.Stop().Done():
		case <-stopCtx.Done():
			log.Warn("offline sync still running at shutdown")
		}
	}
	return serveErr
}

// serve runs srv on ln until ctx is cancelled, then shuts it down gracefully.
// A server failure is returned immediately.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, timeout time.Duration, log *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
