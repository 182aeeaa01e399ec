// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mergington/activity-signups/internal/catalog"
	"github.com/mergington/activity-signups/internal/config"
	"github.com/mergington/activity-signups/internal/handler"
	"github.com/mergington/activity-signups/internal/logger"
	"github.com/mergington/activity-signups/internal/service"
	"github.com/mergington/activity-signups/web"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logg, err := logger.New(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logg.Sync() }()

	// The catalog is seeded once; only rosters mutate after this point.
	cat := catalog.New(catalog.Seed())
	svc := service.New(cat, logg)
	h := handler.NewActivityHandler(svc)

	staticFS, err := fs.Sub(web.Assets, "static")
	if err != nil {
		logg.Fatalw("static assets", "error", err)
	}

	r := handler.NewRouter(h, logg, staticFS)

	srv := &http.Server{
		Addr:         cfg.ServerAddr(),
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		logg.Infow("server listening", "addr", cfg.ServerAddr(), "activities", cat.Len())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatalw("server error", "error", err)
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Infow("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Fatalw("graceful shutdown failed", "error", err)
	}
	logg.Infow("server stopped")
}
