package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hipis/internal/models"
	"hipis/internal/repository"
	"hipis/internal/testutil"
)

// memForumStore is an in-memory ForumStore.
type memForumStore struct {
	posts map[string]*models.ForumPost
}

func newMemForumStore() *memForumStore {
	return &memForumStore{posts: make(map[string]*models.ForumPost)}
}

func (s *memForumStore) List(_ context.Context, category, _, _ string) ([]models.ForumPost, error) {
	var out []models.ForumPost
	for _, post := range s.posts {
		if category != "" && post.Category != category {
			continue
		}
		out = append(out, *post)
	}
	return out, nil
}

func (s *memForumStore) Create(_ context.Context, post *models.ForumPost) error {
	post.ID = primitive.NewObjectID()
	if post.Replies == nil {
		post.Replies = []models.ForumReply{}
	}
	s.posts[post.ID.Hex()] = post
	return nil
}

func (s *memForumStore) get(id string) (*models.ForumPost, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repository.ErrInvalidID
	}
	post, ok := s.posts[id]
	if !ok {
		return nil, repository.ErrPostNotFound
	}
	return post, nil
}

func (s *memForumStore) IncrementLikes(_ context.Context, id string) (*models.ForumPost, error) {
	post, err := s.get(id)
	if err != nil {
		return nil, err
	}
	post.Likes++
	return post, nil
}

func (s *memForumStore) IncrementViews(_ context.Context, id string) (*models.ForumPost, error) {
	post, err := s.get(id)
	if err != nil {
		return nil, err
	}
	post.Views++
	return post, nil
}

func (s *memForumStore) AddReply(_ context.Context, id string, reply models.ForumReply) (*models.ForumPost, error) {
	post, err := s.get(id)
	if err != nil {
		return nil, err
	}
	post.Replies = append(post.Replies, reply)
	return post, nil
}

// memUserStore backs author-name resolution.
type memUserStore struct {
	users map[string]*models.User
}

func (s *memUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func TestForumCreate(t *testing.T) {
	author := &models.User{ID: primitive.NewObjectID(), Name: "Priya Nair", Role: models.RoleStudent}
	users := &memUserStore{users: map[string]*models.User{author.ID.Hex(): author}}

	t.Run("anonymous by default", func(t *testing.T) {
		store := newMemForumStore()
		h := NewForumHandler(store, users)

		req := testutil.AuthedRequest(t, http.MethodPost, "/api/forum", map[string]interface{}{
			"title":    "Exam stress",
			"content":  "How do you all cope?",
			"category": "Academic Stress",
		}, testutil.Student(author.ID.Hex()))
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
		}
		env := testutil.DecodeEnvelope(t, rec)
		var post models.ForumPost
		if err := json.Unmarshal(env.Data, &post); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if post.AuthorName != "Anonymous" {
			t.Errorf("authorName = %q, want Anonymous", post.AuthorName)
		}
		if !post.AuthorID.IsZero() {
			t.Error("authorId leaked on anonymous post")
		}
		if post.Views != 1 {
			t.Errorf("views = %d, want 1", post.Views)
		}
	})

	t.Run("named when author opts out", func(t *testing.T) {
		store := newMemForumStore()
		h := NewForumHandler(store, users)

		req := testutil.AuthedRequest(t, http.MethodPost, "/api/forum", map[string]interface{}{
			"title":     "Exam stress",
			"content":   "How do you all cope?",
			"category":  "Academic Stress",
			"anonymous": false,
		}, testutil.Student(author.ID.Hex()))
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		env := testutil.DecodeEnvelope(t, rec)
		var post models.ForumPost
		if err := json.Unmarshal(env.Data, &post); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if post.AuthorName != "Priya Nair" {
			t.Errorf("authorName = %q, want Priya Nair", post.AuthorName)
		}
		if post.AuthorID != author.ID {
			t.Errorf("authorId = %s, want %s", post.AuthorID.Hex(), author.ID.Hex())
		}
	})

	t.Run("missing title rejected", func(t *testing.T) {
		h := NewForumHandler(newMemForumStore(), users)

		req := testutil.AuthedRequest(t, http.MethodPost, "/api/forum", map[string]interface{}{
			"content":  "no title",
			"category": "General",
		}, testutil.Student(author.ID.Hex()))
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestForumLikeAndReply(t *testing.T) {
	store := newMemForumStore()
	users := &memUserStore{users: map[string]*models.User{}}
	h := NewForumHandler(store, users)

	post := &models.ForumPost{Title: "t", Content: "c", Category: "General", AuthorName: "Anonymous"}
	if err := store.Create(context.Background(), post); err != nil {
		t.Fatalf("seed post: %v", err)
	}

	t.Run("like bumps counter", func(t *testing.T) {
		req := testutil.AuthedRequest(t, http.MethodPost, "/api/forum/"+post.ID.Hex()+"/like", nil, testutil.Student(primitive.NewObjectID().Hex()))
		req.SetPathValue("id", post.ID.Hex())
		rec := httptest.NewRecorder()

		h.Like(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if post.Likes != 1 {
			t.Errorf("likes = %d, want 1", post.Likes)
		}
	})

	t.Run("like on missing post", func(t *testing.T) {
		id := primitive.NewObjectID().Hex()
		req := testutil.AuthedRequest(t, http.MethodPost, "/api/forum/"+id+"/like", nil, testutil.Student(primitive.NewObjectID().Hex()))
		req.SetPathValue("id", id)
		rec := httptest.NewRecorder()

		h.Like(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("reply appends", func(t *testing.T) {
		req := testutil.AuthedRequest(t, http.MethodPost, "/api/forum/"+post.ID.Hex()+"/replies", map[string]interface{}{
			"content": "Same here, pomodoro helps",
		}, testutil.Student(primitive.NewObjectID().Hex()))
		req.SetPathValue("id", post.ID.Hex())
		rec := httptest.NewRecorder()

		h.Reply(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
		if len(post.Replies) != 1 {
			t.Fatalf("replies = %d, want 1", len(post.Replies))
		}
		if post.Replies[0].AuthorName != "Anonymous" {
			t.Errorf("reply author = %q, want Anonymous", post.Replies[0].AuthorName)
		}
	})
}
