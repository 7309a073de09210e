package repositories

import (
	"context"
	"slices"
	"sync"

	"blogapi/app/models"
)

// MemoryPostRepository keeps posts in a map. Stored and returned posts are
// copies, so callers never share state with the store.
type MemoryPostRepository struct {
	posts map[string]models.Post
	mutex sync.RWMutex
}

func NewMemoryPostRepository() *MemoryPostRepository {
	return &MemoryPostRepository{
		posts: make(map[string]models.Post),
	}
}

func (m *MemoryPostRepository) Create(ctx context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post.ID = newID()
	m.posts[post.ID] = *post
	return nil
}

func (m *MemoryPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, ErrNotFound
	}
	return &post, nil
}

func (m *MemoryPostRepository) List(ctx context.Context) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	ids := make([]string, 0, len(m.posts))
	for id := range m.posts {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	posts := make([]*models.Post, 0, len(ids))
	for _, id := range ids {
		post := m.posts[id]
		posts = append(posts, &post)
	}
	return posts, nil
}

func (m *MemoryPostRepository) Update(ctx context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[post.ID]; !exists {
		return ErrNotFound
	}
	m.posts[post.ID] = *post
	return nil
}

func (m *MemoryPostRepository) Delete(ctx context.Context, id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[id]; !exists {
		return ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

func (m *MemoryPostRepository) Clear(ctx context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.posts = make(map[string]models.Post)
	return nil
}

func (m *MemoryPostRepository) Ping(ctx context.Context) error { return nil }

func (m *MemoryPostRepository) Close() error { return nil }
