package routes

import (
	"io"
	"log/slog"
	"testing"

	"blogapi/app/controllers"
	"blogapi/app/repositories"
	"blogapi/app/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupTestRepo opens an in-memory badger store closed at test end.
func setupTestRepo(t *testing.T) *repositories.BadgerPostRepository {
	t.Helper()
	repo, err := repositories.OpenBadger("", nil)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func setupTestRouter(repo repositories.PostRepository, opts Options) *mux.Router {
	postController := controllers.NewPostController(services.NewPostService(repo))
	return SetupRoutes(postController, discardLogger(), opts)
}
