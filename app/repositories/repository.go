package repositories

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Supported store backends
const (
	StoreBadger = "badger"
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// Options selects and configures a store backend.
type Options struct {
	Type          string
	BadgerPath    string
	MongoURI      string
	MongoDatabase string
	Logger        *slog.Logger
}

// Open connects to the backend named by opts.Type. The returned repository
// must be closed by the caller.
func Open(ctx context.Context, opts Options) (PostRepository, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var (
		repo PostRepository
		err  error
		attr slog.Attr
	)
	switch opts.Type {
	case StoreBadger, "":
		opts.Type = StoreBadger
		repo, err = OpenBadger(opts.BadgerPath, logger)
		attr = slog.String("path", opts.BadgerPath)
	case StoreMemory:
		repo = NewMemoryPostRepository()
	case StoreMongo:
		repo, err = OpenMongo(ctx, opts.MongoURI, opts.MongoDatabase)
		attr = slog.String("database", opts.MongoDatabase)
	default:
		return nil, fmt.Errorf("unknown store type %q", opts.Type)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Use storage", slog.String("storeType", opts.Type), attr)
	return repo, nil
}
