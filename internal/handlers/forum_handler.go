package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hipis/internal/middleware"
	"hipis/internal/models"
	"hipis/internal/repository"
	"hipis/pkg/validator"
)

// ForumStore is what the forum routes need from storage.
type ForumStore interface {
	List(ctx context.Context, category, query, sort string) ([]models.ForumPost, error)
	Create(ctx context.Context, post *models.ForumPost) error
	IncrementLikes(ctx context.Context, id string) (*models.ForumPost, error)
	IncrementViews(ctx context.Context, id string) (*models.ForumPost, error)
	AddReply(ctx context.Context, id string, reply models.ForumReply) (*models.ForumPost, error)
}

// UserStore resolves author names for non-anonymous posts.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// ForumHandler handles peer support forum requests
type ForumHandler struct {
	store ForumStore
	users UserStore
}

// NewForumHandler creates a new forum handler
func NewForumHandler(store ForumStore, users UserStore) *ForumHandler {
	return &ForumHandler{store: store, users: users}
}

// List returns posts matching the optional category, search query and sort
// order. This route is public.
func (h *ForumHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	posts, err := h.store.List(r.Context(), q.Get("category"), q.Get("q"), q.Get("sort"))
	if err != nil {
		respondStorageError(w, "forum.list", err)
		return
	}
	respondWithJSON(w, http.StatusOK, posts)
}

// Create publishes a post. Posts are anonymous unless the author opts out,
// in which case their account name is resolved server-side.
func (h *ForumHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromRequest(r)

	var req struct {
		Title     string   `json:"title" validate:"required"`
		Content   string   `json:"content" validate:"required"`
		Category  string   `json:"category" validate:"required"`
		Tags      []string `json:"tags"`
		Anonymous *bool    `json:"anonymous"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validator.ValidateStruct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	anonymous := req.Anonymous == nil || *req.Anonymous

	post := &models.ForumPost{
		Title:      validator.SanitizeString(req.Title),
		Content:    validator.SanitizeString(req.Content),
		Category:   req.Category,
		Tags:       req.Tags,
		Anonymous:  anonymous,
		AuthorName: "Anonymous",
		Views:      1,
	}
	if !anonymous {
		post.AuthorName = h.authorName(r.Context(), identity)
		if oid, err := primitive.ObjectIDFromHex(identity.ID); err == nil {
			post.AuthorID = oid
		}
	}

	if err := h.store.Create(r.Context(), post); err != nil {
		respondStorageError(w, "forum.create", err)
		return
	}
	respondWithJSON(w, http.StatusCreated, post)
}

// Like bumps the like counter atomically.
func (h *ForumHandler) Like(w http.ResponseWriter, r *http.Request) {
	post, err := h.store.IncrementLikes(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) || errors.Is(err, repository.ErrInvalidID) {
			respondWithError(w, http.StatusNotFound, "Post not found")
			return
		}
		respondStorageError(w, "forum.like", err)
		return
	}
	respondWithJSON(w, http.StatusOK, post)
}

// View bumps the view counter atomically. This route is public.
func (h *ForumHandler) View(w http.ResponseWriter, r *http.Request) {
	post, err := h.store.IncrementViews(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) || errors.Is(err, repository.ErrInvalidID) {
			respondWithError(w, http.StatusNotFound, "Post not found")
			return
		}
		respondStorageError(w, "forum.view", err)
		return
	}
	respondWithJSON(w, http.StatusOK, post)
}

// Reply appends a reply to a post.
func (h *ForumHandler) Reply(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromRequest(r)

	var req struct {
		Content   string `json:"content" validate:"required"`
		Anonymous *bool  `json:"anonymous"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validator.ValidateStruct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	anonymous := req.Anonymous == nil || *req.Anonymous

	reply := models.ForumReply{
		Content:    validator.SanitizeString(req.Content),
		Anonymous:  anonymous,
		AuthorName: "Anonymous",
	}
	if !anonymous {
		reply.AuthorName = h.authorName(r.Context(), identity)
		if oid, err := primitive.ObjectIDFromHex(identity.ID); err == nil {
			reply.UserID = oid
		}
	}

	post, err := h.store.AddReply(r.Context(), r.PathValue("id"), reply)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) || errors.Is(err, repository.ErrInvalidID) {
			respondWithError(w, http.StatusNotFound, "Post not found")
			return
		}
		respondStorageError(w, "forum.reply", err)
		return
	}
	respondWithJSON(w, http.StatusCreated, post)
}

func (h *ForumHandler) authorName(ctx context.Context, identity middleware.Identity) string {
	user, err := h.users.GetByID(ctx, identity.ID)
	if err != nil {
		return "Anonymous"
	}
	return user.Name
}
