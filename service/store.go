package service

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"blogapi/app/config"
	"blogapi/app/logger"
	"blogapi/app/repositories"
)

// environment bundles what every command needs before touching the store.
type environment struct {
	config *config.ServerEnvironment
	logger *slog.Logger
}

func loadEnvironment() (*environment, error) {
	cfg, err := config.NewServerConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	appLogger := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)
	return &environment{config: cfg, logger: appLogger}, nil
}

// openStore opens the configured backend, bounded by STORE_CONNECT_TIMEOUT.
func (e *environment) openStore(ctx context.Context) (repositories.PostRepository, error) {
	ctx, cancel := context.WithTimeout(ctx, e.config.StoreConnectTimeout)
	defer cancel()

	repo, err := repositories.Open(ctx, repositories.Options{
		Type:          e.config.StoreType,
		BadgerPath:    e.config.BadgerPath,
		MongoURI:      e.config.MongoURI,
		MongoDatabase: e.config.MongoDatabase,
		Logger:        e.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", e.config.StoreType, err)
	}
	return repo, nil
}

// openBadger opens the store and insists on the badger backend, which is the
// only one with backup support.
func (e *environment) openBadger(ctx context.Context) (*repositories.BadgerPostRepository, error) {
	if e.config.StoreType != repositories.StoreBadger {
		return nil, fmt.Errorf("backup and restore need STORE_TYPE=badger, got %s", e.config.StoreType)
	}
	repo, err := e.openStore(ctx)
	if err != nil {
		return nil, err
	}
	return repo.(*repositories.BadgerPostRepository), nil
}

// confirm asks a y/N question; anything but y or Y is a no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	response, _ := bufio.NewReader(in).ReadString('\n')
	response = strings.TrimSpace(response)
	return response == "y" || response == "Y"
}
