// Package server boots the HTTP API: configuration, database connection,
// indexes, optional Mongo log sink, routes, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/freshmart/api/app/routes"
	"github.com/freshmart/api/config"
	"github.com/freshmart/api/pkg/database"
	"github.com/freshmart/api/pkg/logger"
)

const shutdownGrace = 15 * time.Second

// Start runs the API server until ctx is cancelled or a termination
// signal arrives.
func Start(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return err
	}

	db, err := database.Connect(ctx, config.MongoURI(), config.MongoDatabase())
	if err != nil {
		return err
	}
	defer db.Close(context.Background()) //nolint:errcheck

	if err := db.EnsureIndexes(ctx); err != nil {
		return err
	}

	if config.LogToMongo() {
		sink := logger.NewMongoHandler(db.Collection(database.ColLogs))
		logger.Attach(sink)
		defer sink.Close()
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           routes.New(db).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		return shutdown(srv)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		return shutdown(srv)
	}

	return nil
}

func shutdown(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(ctx)
}
