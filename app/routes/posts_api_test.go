package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"blogapi/app/controllers"
	"blogapi/app/fixtures"
	"blogapi/app/models"
	"blogapi/app/repositories"
	"blogapi/app/services"

	"github.com/stretchr/testify/suite"
)

const seedCount = 10

// PostsAPISuite drives the running HTTP server against a real badger store.
// Every test starts from exactly seedCount random posts.
type PostsAPISuite struct {
	suite.Suite
	repo   *repositories.BadgerPostRepository
	server *httptest.Server
	client *http.Client
	ctx    context.Context
}

func TestPostsAPI(t *testing.T) {
	suite.Run(t, new(PostsAPISuite))
}

func (s *PostsAPISuite) SetupSuite() {
	s.ctx = context.Background()

	repo, err := repositories.OpenBadger("", discardLogger())
	s.Require().NoError(err)
	s.repo = repo

	postController := controllers.NewPostController(services.NewPostService(repo))
	s.server = httptest.NewServer(SetupRoutes(postController, discardLogger(), Options{MaxRequestBytes: 1 << 20}))
	s.client = s.server.Client()
}

func (s *PostsAPISuite) SetupTest() {
	_, err := fixtures.Seed(s.ctx, s.repo, seedCount)
	s.Require().NoError(err)
}

func (s *PostsAPISuite) TearDownTest() {
	s.Require().NoError(fixtures.TearDown(s.ctx, s.repo))
}

func (s *PostsAPISuite) TearDownSuite() {
	s.server.Close()
	s.Require().NoError(s.repo.Close())
}

func (s *PostsAPISuite) do(method, path string, body interface{}) *http.Response {
	var rd io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		rd = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, s.server.URL+path, rd)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	res, err := s.client.Do(req)
	s.Require().NoError(err)
	s.T().Cleanup(func() { res.Body.Close() })
	return res
}

func (s *PostsAPISuite) anyPost() *models.Post {
	posts, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Require().NotEmpty(posts)
	return posts[0]
}

func (s *PostsAPISuite) TestListReturnsSeededPosts() {
	res := s.do(http.MethodGet, "/posts", nil)

	s.Equal(http.StatusOK, res.StatusCode)
	s.Contains(res.Header.Get("Content-Type"), "application/json")

	var posts []map[string]interface{}
	s.Require().NoError(json.NewDecoder(res.Body).Decode(&posts))
	s.Require().GreaterOrEqual(len(posts), 1)

	for _, item := range posts {
		for _, key := range []string{"id", "title", "content", "author"} {
			s.Contains(item, key)
		}
	}

	first := posts[0]
	stored, err := s.repo.GetByID(s.ctx, first["id"].(string))
	s.Require().NoError(err)
	s.Equal(stored.ID, first["id"])
	s.Equal(stored.Title, first["title"])
	s.Equal(stored.Content, first["content"])
	s.Equal(stored.Author.String(), first["author"])
}

func (s *PostsAPISuite) TestCreate() {
	input := fixtures.NewPostInput()

	res := s.do(http.MethodPost, "/posts", input)
	s.Require().Equal(http.StatusCreated, res.StatusCode)
	s.Contains(res.Header.Get("Content-Type"), "application/json")

	var created models.SerializedPost
	s.Require().NoError(json.NewDecoder(res.Body).Decode(&created))
	s.NotEmpty(created.ID)
	s.Equal(input.Title, created.Title)
	s.Equal(input.Content, created.Content)
	s.Equal(input.Author.FirstName+" "+input.Author.LastName, created.Author)

	stored, err := s.repo.GetByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(created.ID, stored.ID)
	s.Equal(input.Title, stored.Title)
	s.Equal(input.Content, stored.Content)
	s.Equal(*input.Author, stored.Author)
}

func (s *PostsAPISuite) TestUpdate() {
	post := s.anyPost()
	update := map[string]string{"id": post.ID, "title": "Title", "content": "Content"}

	res := s.do(http.MethodPut, "/posts/"+post.ID, update)
	s.Require().Equal(http.StatusNoContent, res.StatusCode)

	stored, err := s.repo.GetByID(s.ctx, post.ID)
	s.Require().NoError(err)
	s.Equal("Title", stored.Title)
	s.Equal("Content", stored.Content)
	s.Equal(post.Author, stored.Author)
	s.True(post.CreatedAt.Equal(stored.CreatedAt))
}

func (s *PostsAPISuite) TestDelete() {
	post := s.anyPost()

	res := s.do(http.MethodDelete, "/posts/"+post.ID, nil)
	s.Require().Equal(http.StatusNoContent, res.StatusCode)

	_, err := s.repo.GetByID(s.ctx, post.ID)
	s.ErrorIs(err, repositories.ErrNotFound)
}

func (s *PostsAPISuite) TestEachCaseStartsFromSeed() {
	posts, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Len(posts, seedCount)

	res := s.do(http.MethodGet, "/api/posts", nil)
	s.Require().Equal(http.StatusOK, res.StatusCode)

	var listed []models.SerializedPost
	s.Require().NoError(json.NewDecoder(res.Body).Decode(&listed))
	s.Len(listed, seedCount)
}
