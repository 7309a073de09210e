package repositories

import (
	"context"
	"testing"
	"time"

	"blogapi/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPost(title string) *models.Post {
	return &models.Post{
		Author:    models.Author{FirstName: "Ada", LastName: "Lovelace"},
		Title:     title,
		Content:   "Content for " + title,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

// testPostRepository exercises behaviour every backend must share.
func testPostRepository(t *testing.T, repo PostRepository) {
	ctx := context.Background()
	require.NoError(t, repo.Clear(ctx))

	t.Run("create and get post", func(t *testing.T) {
		post := newTestPost("Test Post")
		require.NoError(t, repo.Create(ctx, post))
		assert.NotEmpty(t, post.ID)

		retrieved, err := repo.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, post.ID, retrieved.ID)
		assert.Equal(t, post.Author, retrieved.Author)
		assert.Equal(t, post.Title, retrieved.Title)
		assert.Equal(t, post.Content, retrieved.Content)
		assert.True(t, post.CreatedAt.Equal(retrieved.CreatedAt))
	})

	t.Run("get missing post", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "does-not-exist")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update post", func(t *testing.T) {
		post := newTestPost("Original Title")
		require.NoError(t, repo.Create(ctx, post))

		post.Title = "Updated Title"
		post.Content = "Updated content"
		require.NoError(t, repo.Update(ctx, post))

		updated, err := repo.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "Updated Title", updated.Title)
		assert.Equal(t, "Updated content", updated.Content)
		assert.Equal(t, post.Author, updated.Author)
	})

	t.Run("update missing post", func(t *testing.T) {
		post := newTestPost("Ghost")
		post.ID = newID()
		assert.ErrorIs(t, repo.Update(ctx, post), ErrNotFound)
	})

	t.Run("delete post", func(t *testing.T) {
		post := newTestPost("Post to Delete")
		require.NoError(t, repo.Create(ctx, post))

		require.NoError(t, repo.Delete(ctx, post.ID))

		_, err := repo.GetByID(ctx, post.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, post.ID), ErrNotFound)
	})

	t.Run("list and clear", func(t *testing.T) {
		require.NoError(t, repo.Clear(ctx))

		posts, err := repo.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)

		var ids []string
		for i := 0; i < 3; i++ {
			post := newTestPost("List Test Post")
			require.NoError(t, repo.Create(ctx, post))
			ids = append(ids, post.ID)
		}

		posts, err = repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 3)
		for i, post := range posts {
			assert.Equal(t, ids[i], post.ID)
		}

		require.NoError(t, repo.Clear(ctx))
		posts, err = repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, repo.Ping(ctx))
	})
}
