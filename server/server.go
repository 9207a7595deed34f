package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"hzfm/catalog"
	"hzfm/cdn"
	"hzfm/config"
	"hzfm/core/finder"
	"hzfm/logger"
)

// NewRouter wires the API routes and middleware.
func NewRouter(h *APIHandler) *mux.Router {
	router := mux.NewRouter()
	router.Use(requestIDMiddleware, accessLogMiddleware, corsMiddleware)

	router.HandleFunc("/healthz", h.HealthHandler).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/tracks", h.GetTracksHandler).Methods(http.MethodGet)
	api.HandleFunc("/match", h.MatchHandler).Methods(http.MethodGet)
	api.HandleFunc("/recommend", h.RecommendHandler).Methods(http.MethodPost)
	// let the CORS middleware answer preflight requests
	api.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	return router
}

// NewFinder builds the catalog store and media resolver described by cfg.
// The returned cleanup closes any Redis connection.
func NewFinder(ctx context.Context, cfg *config.Config) (*finder.Finder, func(), error) {
	source, err := catalog.NewSource(cfg)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {}
	var opts []catalog.Option
	if cfg.RedisEnabled() {
		client, err := catalog.ConnectRedis(ctx, cfg)
		if err != nil {
			// the shared cache is optional
			logger.Warn("Redis unavailable, continuing without shared cache", logger.ErrorField(err))
		} else {
			logger.Info("Successfully connected to Redis")
			opts = append(opts, catalog.WithCache(catalog.NewRedisCache(client, cfg.CatalogTTL)))
			cleanup = func() { client.Close() }
		}
	}

	if cfg.Cloudinary.CloudName == "" {
		logger.Warn("CLOUDINARY_CLOUD_NAME is not set, tracks will have no playable URL")
	}

	store := catalog.NewStore(source, opts...)
	return finder.New(store, cdn.NewResolver(&cfg.Cloudinary)), cleanup, nil
}

// Start initializes and starts the HTTP server and blocks until SIGINT or SIGTERM.
func Start(cfg *config.Config) error {
	f, cleanup, err := NewFinder(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      NewRouter(NewAPIHandler(f)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", logger.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}
