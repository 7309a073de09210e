package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blogapi/app/models"
	"blogapi/app/repositories"
)

// ErrInvalidInput marks errors caused by a malformed client request.
var ErrInvalidInput = errors.New("invalid input")

// PostService handles business logic for blog posts
type PostService struct {
	postRepo repositories.PostRepository
	now      func() time.Time
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func invalid(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

// CreatePost validates input and stores it as a new post. The returned post
// carries the ID assigned by the store.
func (s *PostService) CreatePost(ctx context.Context, input *models.PostInput) (*models.Post, error) {
	if err := input.Validate(); err != nil {
		return nil, invalid(err)
	}

	post := input.ToPost()
	post.CreatedAt = s.now()
	if err := post.Validate(); err != nil {
		return nil, invalid(err)
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// GetPost retrieves a post by ID
func (s *PostService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// ListPosts retrieves every stored post
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// UpdatePost overwrites the title and content present in update. The author,
// ID and creation time of the stored post are preserved. A missing post yields
// repositories.ErrNotFound.
func (s *PostService) UpdatePost(ctx context.Context, id string, update *models.PostUpdate) error {
	if update.ID != "" && update.ID != id {
		return invalid(fmt.Errorf("request path id (%s) and request body id (%s) must match", id, update.ID))
	}
	if err := update.Validate(); err != nil {
		return invalid(err)
	}

	existing, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	existing.Apply(update)
	return s.postRepo.Update(ctx, existing)
}

// DeletePost removes a post. Deleting a post that does not exist succeeds.
func (s *PostService) DeletePost(ctx context.Context, id string) error {
	err := s.postRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil
	}
	return err
}

// Ping reports whether the store is reachable.
func (s *PostService) Ping(ctx context.Context) error {
	return s.postRepo.Ping(ctx)
}
