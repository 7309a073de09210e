package controllers

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"blogapi/app/logger"
	"blogapi/app/models"
	"blogapi/app/repositories"
	"blogapi/app/services"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/blake2b"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	postService *services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService) *PostController {
	return &PostController{postService: postService}
}

// Index handles listing all posts
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPosts(r.Context())
	if err != nil {
		pc.sendServiceError(w, r, "Failed to fetch posts", err)
		return
	}

	body := make([]models.SerializedPost, 0, len(posts))
	for _, post := range posts {
		body = append(body, post.Serialize())
	}
	pc.sendJSON(w, r, http.StatusOK, body)
}

// Show handles displaying a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	post, err := pc.postService.GetPost(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		pc.sendServiceError(w, r, "Failed to fetch post", err)
		return
	}
	pc.sendJSON(w, r, http.StatusOK, post.Serialize())
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var input models.PostInput
	if !pc.decodeJSON(w, r, &input) {
		return
	}

	post, err := pc.postService.CreatePost(r.Context(), &input)
	if err != nil {
		pc.sendServiceError(w, r, "Failed to create post", err)
		return
	}

	logger.ContextRequestLogger(r.Context()).Debug("post created", slog.String("id", post.ID))
	w.Header().Set("Location", strings.TrimSuffix(r.URL.Path, "/")+"/"+post.ID)
	pc.sendJSON(w, r, http.StatusCreated, post.Serialize())
}

// Edit handles updating the title and content of an existing post
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	var update models.PostUpdate
	if !pc.decodeJSON(w, r, &update) {
		return
	}

	if err := pc.postService.UpdatePost(r.Context(), mux.Vars(r)["id"], &update); err != nil {
		pc.sendServiceError(w, r, "Failed to update post", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles deleting a post
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := pc.postService.DeletePost(r.Context(), mux.Vars(r)["id"]); err != nil {
		pc.sendServiceError(w, r, "Failed to delete post", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Health reports whether the store is reachable
func (pc *PostController) Health(w http.ResponseWriter, r *http.Request) {
	if err := pc.postService.Ping(r.Context()); err != nil {
		logger.ContextRequestLogger(r.Context()).Error("health check failed", slog.String("error", err.Error()))
		pc.sendJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	pc.sendJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// Helper methods for consistent response handling

// decodeJSON reads the request body into v, writing an error response and
// returning false when that is not possible.
func (pc *PostController) decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}

	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		pc.sendError(w, "Request body too large", http.StatusRequestEntityTooLarge)
	case errors.Is(err, io.EOF):
		pc.sendError(w, "Request body is required", http.StatusBadRequest)
	default:
		pc.sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
	}
	return false
}

// sendJSON writes data with a content ETag. GET requests whose If-None-Match
// matches the ETag get 304 and no body.
func (pc *PostController) sendJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		logger.ContextRequestLogger(r.Context()).Error("failed to encode response", slog.String("error", err.Error()))
		pc.sendError(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if r.Method == http.MethodGet && status == http.StatusOK {
		etag := contentETag(body)
		w.Header().Set("ETag", etag)
		if match := r.Header.Get("If-None-Match"); match != "" && etagMatches(match, etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	w.WriteHeader(status)
	w.Write(body)
}

func (pc *PostController) sendError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// sendServiceError maps service and store errors onto HTTP statuses.
func (pc *PostController) sendServiceError(w http.ResponseWriter, r *http.Request, message string, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		pc.sendError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, repositories.ErrNotFound):
		pc.sendError(w, "Post not found", http.StatusNotFound)
	default:
		logger.ContextRequestLogger(r.Context()).Error(message, slog.String("error", err.Error()))
		pc.sendError(w, message, http.StatusInternalServerError)
	}
}

func contentETag(body []byte) string {
	sum := blake2b.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}
