package repositories

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"testing"

	"blogapi/app/models"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgerPostRepository(t *testing.T) {
	repo, err := OpenBadger(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
	})

	testPostRepository(t, repo)

	t.Run("document layout", func(t *testing.T) {
		post := newTestPost("Stored Post")
		require.NoError(t, repo.Create(context.Background(), post))

		// Read the raw document to check the author is stored nested
		var retrieved models.Post
		err := repo.DB().View(func(txn *badger.Txn) error {
			item, err := txn.Get([]byte(fmt.Sprintf("post:%s", post.ID)))
			if err != nil {
				return err
			}
			return item.Value(func(val []byte) error {
				assert.Contains(t, string(val), `"author":{"firstName":"Ada","lastName":"Lovelace"}`)
				return unmarshalEntity(val, &retrieved)
			})
		})
		require.NoError(t, err)
		assert.Equal(t, post.Title, retrieved.Title)
	})

	t.Run("clear leaves other keys", func(t *testing.T) {
		ctx := context.Background()
		require.NoError(t, repo.DB().Update(func(txn *badger.Txn) error {
			return txn.Set([]byte("meta:version"), []byte("1"))
		}))
		require.NoError(t, repo.Create(ctx, newTestPost("Doomed")))

		require.NoError(t, repo.Clear(ctx))

		posts, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, posts)
		assert.NoError(t, repo.DB().View(func(txn *badger.Txn) error {
			_, err := txn.Get([]byte("meta:version"))
			return err
		}))
	})
}

func TestBadgerInMemory(t *testing.T) {
	repo, err := OpenBadger("", slog.Default())
	require.NoError(t, err)

	testPostRepository(t, repo)

	require.NoError(t, repo.Close())
	assert.Error(t, repo.Ping(context.Background()))
}

func TestBadgerBackupRestore(t *testing.T) {
	ctx := context.Background()

	src, err := OpenBadger(filepath.Join(t.TempDir(), "src"), nil)
	require.NoError(t, err)
	defer src.Close()

	post := newTestPost("Backed up")
	require.NoError(t, src.Create(ctx, post))

	var buf bytes.Buffer
	require.NoError(t, src.Backup(&buf))

	dst, err := OpenBadger(filepath.Join(t.TempDir(), "dst"), nil)
	require.NoError(t, err)
	defer dst.Close()

	require.NoError(t, dst.Restore(&buf))

	restored, err := dst.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.Title, restored.Title)
	assert.Equal(t, post.Author, restored.Author)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		repo, err := Open(ctx, Options{Type: StoreMemory})
		require.NoError(t, err)
		assert.IsType(t, &MemoryPostRepository{}, repo)
		assert.NoError(t, repo.Close())
	})

	t.Run("badger by default", func(t *testing.T) {
		repo, err := Open(ctx, Options{BadgerPath: filepath.Join(t.TempDir(), "db")})
		require.NoError(t, err)
		assert.IsType(t, &BadgerPostRepository{}, repo)
		assert.NoError(t, repo.Close())
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := Open(ctx, Options{Type: "cassandra"})
		assert.Error(t, err)
	})
}
