// Package fixtures generates random blog posts and manages seeding and
// teardown of a post store. It backs both the integration tests and the seed
// and clean commands.
package fixtures

import (
	"context"
	"fmt"

	"blogapi/app/models"
	"blogapi/app/repositories"

	"github.com/Pallinder/go-randomdata"
)

// NewPostInput returns a random, valid create request body.
func NewPostInput() *models.PostInput {
	return &models.PostInput{
		Author: &models.Author{
			FirstName: randomdata.FirstName(randomdata.RandomGender),
			LastName:  randomdata.LastName(),
		},
		Title:   randomdata.Adjective() + " " + randomdata.Noun(),
		Content: randomdata.Paragraph(),
	}
}

// NewPost returns a random post ready to be stored.
func NewPost() *models.Post {
	post := NewPostInput().ToPost()
	post.BeforeCreate()
	return post
}

// Seed stores n random posts directly in repo and returns them with their
// assigned IDs.
func Seed(ctx context.Context, repo repositories.PostRepository, n int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		post := NewPost()
		if err := repo.Create(ctx, post); err != nil {
			return posts, fmt.Errorf("failed to seed post %d of %d: %w", i+1, n, err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// TearDown empties repo so nothing leaks into the next test.
func TearDown(ctx context.Context, repo repositories.PostRepository) error {
	if err := repo.Clear(ctx); err != nil {
		return fmt.Errorf("failed to tear down store: %w", err)
	}
	return nil
}
