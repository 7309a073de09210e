package repositories

import (
	"context"

	"blogapi/app/models"
)

// PostRepository defines the interface for post data access
type PostRepository interface {
	// Create assigns a new ID to post and stores it.
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	// Update persists the title and content of the post with the same ID.
	// It returns ErrNotFound if no such post exists.
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id string) error
	// Clear removes every post, leaving the store empty.
	Clear(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
