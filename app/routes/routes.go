package routes

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"blogapi/app/controllers"
	"blogapi/app/middleware"

	"github.com/gorilla/mux"
)

// Options tunes the request guards applied to every route.
type Options struct {
	MaxRequestBytes int64
	RateLimitRPS    int32
	RateLimitBurst  int32
}

// SetupRoutes defines the application's routes and returns a router.
// The posts resource is served at /posts and, with a forced JSON content
// type, at /api/posts.
func SetupRoutes(postController *controllers.PostController, logger *slog.Logger, opts Options) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID(logger))
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst))
	if opts.MaxRequestBytes > 0 {
		router.Use(middleware.RequestSizeLimit(opts.MaxRequestBytes))
	}

	router.NotFoundHandler = jsonError(http.StatusNotFound, "Not found")
	router.MethodNotAllowedHandler = jsonError(http.StatusMethodNotAllowed, "Method not allowed")

	router.HandleFunc("/healthz", postController.Health).Methods("GET")

	registerPostRoutes(router.PathPrefix("/posts").Subrouter(), postController)

	// API routes with JSON content type
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)
	registerPostRoutes(api.PathPrefix("/posts").Subrouter(), postController)

	return router
}

func registerPostRoutes(posts *mux.Router, postController *controllers.PostController) {
	posts.HandleFunc("", postController.Index).Methods("GET")
	posts.HandleFunc("", postController.Create).Methods("POST")
	posts.HandleFunc("/{id}", postController.Show).Methods("GET")
	posts.HandleFunc("/{id}", postController.Edit).Methods("PUT")
	posts.HandleFunc("/{id}", postController.Delete).Methods("DELETE")
}

func jsonError(status int, message string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"error": message})
	})
}
