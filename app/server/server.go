package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"blogapi/app/config"
	"blogapi/app/controllers"
	"blogapi/app/repositories"
	"blogapi/app/routes"
	"blogapi/app/services"

	"github.com/gorilla/mux"
)

type Server struct {
	repo   repositories.PostRepository
	config *config.ServerEnvironment
	logger *slog.Logger
	router *mux.Router
}

// NewServer wires the posts service, controller and routes on top of an open store.
func NewServer(repo repositories.PostRepository, cfg *config.ServerEnvironment, logger *slog.Logger) *Server {
	postController := controllers.NewPostController(services.NewPostService(repo))

	return &Server{
		repo:   repo,
		config: cfg,
		logger: logger,
		router: routes.SetupRoutes(postController, logger, routes.Options{
			MaxRequestBytes: cfg.MaxRequestBytes,
			RateLimitRPS:    cfg.RateLimitRPS,
			RateLimitBurst:  cfg.RateLimitBurst,
		}),
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves HTTP until ctx is cancelled, then drains in-flight requests
// within SERVER_SHUTDOWN_TIMEOUT.
func (s *Server) Start(ctx context.Context) error {
	serverAddr := s.config.Addr()

	httpServer := &http.Server{
		Addr:         serverAddr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("service listening",
			slog.String("environment", s.config.Environment),
			slog.String("address", serverAddr))

		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.config.ServerShutdownTimeout)
	defer shutdownCancel()

	s.logger.Info("shutting down HTTP server")

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("HTTP server shutdown error",
			slog.String("error", err.Error()))
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}

	s.logger.Info("HTTP server shutdown complete")
	return nil
}

// StoreShutdown closes the record store.
func (s *Server) StoreShutdown() {
	if err := s.repo.Close(); err != nil {
		s.logger.Warn("store close error", slog.String("error", err.Error()))
		return
	}
	s.logger.Info("store closed")
}
