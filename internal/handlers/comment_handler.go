package handlers

import (
	"context"
	"net/http"
	"time"

	"hipis/internal/models"
	"hipis/pkg/validator"
)

// CommentStore is what the comment routes need from storage.
type CommentStore interface {
	ListByResource(ctx context.Context, resourceID string) ([]models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
}

// CommentHandler handles resource comments
type CommentHandler struct {
	store CommentStore
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(store CommentStore) *CommentHandler {
	return &CommentHandler{store: store}
}

// List returns a resource's comments. Public.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	comments, err := h.store.ListByResource(r.Context(), r.PathValue("resourceId"))
	if err != nil {
		respondStorageError(w, "comments.list", err)
		return
	}
	respondWithJSON(w, http.StatusOK, comments)
}

// Create posts a comment on a resource.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ResourceID string `json:"resourceId" validate:"required"`
		Author     string `json:"author" validate:"required"`
		Text       string `json:"text" validate:"required"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validator.ValidateStruct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	comment := &models.Comment{
		ResourceID: req.ResourceID,
		Author:     validator.SanitizeString(req.Author),
		Text:       validator.SanitizeString(req.Text),
		Timestamp:  time.Now().Format(time.RFC3339),
	}
	if err := h.store.Create(r.Context(), comment); err != nil {
		respondStorageError(w, "comments.create", err)
		return
	}
	respondWithJSON(w, http.StatusCreated, comment)
}
