// Package server owns the boot sequence: config, database, cache,
// storage, queue, listeners, router, and the graceful-shutdown loop.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shringarlabs/shringar/app/jobs"
	"github.com/shringarlabs/shringar/app/listeners"
	"github.com/shringarlabs/shringar/app/routes"
	"github.com/shringarlabs/shringar/config"
	"github.com/shringarlabs/shringar/pkg/cache"
	"github.com/shringarlabs/shringar/pkg/database"
	"github.com/shringarlabs/shringar/pkg/logger"
	"github.com/shringarlabs/shringar/pkg/orm"
	"github.com/shringarlabs/shringar/pkg/queue"
	"github.com/shringarlabs/shringar/pkg/router"
	"github.com/shringarlabs/shringar/pkg/storage"
)

const (
	shutdownGrace = 15 * time.Second
	queueWorkers  = 5
)

// Start boots every subsystem and serves until SIGINT/SIGTERM.
func Start() error {
	if err := Boot(); err != nil {
		return err
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	queue.StartWorkers(ctx, queueWorkers)

	r := router.New()
	routes.RegisterAPI(r)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Boot brings up every dependency short of the HTTP listener. The CLI
// database commands use it too, so it must stay idempotent-ish and
// tolerate optional services being away.
func Boot() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger.Setup()

	if err := database.Connect(); err != nil {
		return err
	}

	// The cache is optional: pricing falls back to the settings table
	// and the queue falls back to its in-memory driver.
	if err := cache.Connect(); err != nil {
		logger.Warn("server: redis unavailable, continuing without cache", "error", err)
	}
	orm.CacheStore = cache.Store{}

	storage.Connect()

	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	} else {
		queue.SetDriver(queue.NewMemoryDriver())
	}
	queue.UseDB(database.DB)
	jobs.RegisterAll()

	listeners.Register()

	return nil
}
