package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"hipis/internal/models"
	"hipis/internal/repository"
	"hipis/pkg/validator"
)

// ResourceStore is what the resource library routes need from storage.
type ResourceStore interface {
	List(ctx context.Context) ([]models.Resource, error)
	GetByID(ctx context.Context, id string) (*models.Resource, error)
	Create(ctx context.Context, resource *models.Resource) error
	AdjustLikes(ctx context.Context, id string, delta int) (*models.Resource, error)
}

// ResourceHandler handles the self-help resource library
type ResourceHandler struct {
	store ResourceStore
}

// NewResourceHandler creates a new resource handler
func NewResourceHandler(store ResourceStore) *ResourceHandler {
	return &ResourceHandler{store: store}
}

// List returns all resources. Public.
func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	resources, err := h.store.List(r.Context())
	if err != nil {
		respondStorageError(w, "resources.list", err)
		return
	}
	respondWithJSON(w, http.StatusOK, resources)
}

// Get returns one resource and counts the view. Public.
func (h *ResourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	resource, err := h.store.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repository.ErrResourceNotFound) || errors.Is(err, repository.ErrInvalidID) {
			respondWithError(w, http.StatusNotFound, "Resource not found")
			return
		}
		respondStorageError(w, "resources.get", err)
		return
	}
	respondWithJSON(w, http.StatusOK, resource)
}

// Create publishes a resource.
func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title         string `json:"title" validate:"required"`
		Description   string `json:"description" validate:"required"`
		Category      string `json:"category" validate:"required"`
		Type          string `json:"type" validate:"required,oneof=video article audio infographic"`
		Language      string `json:"language"`
		Icon          string `json:"icon"`
		Duration      string `json:"duration"`
		Content       string `json:"content" validate:"required"`
		VideoURL      string `json:"videoUrl"`
		AudioURL      string `json:"audioUrl"`
		ImageURL      string `json:"imageUrl"`
		Author        string `json:"author" validate:"required"`
		PublishedDate string `json:"publishedDate"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validator.ValidateStruct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	resource := &models.Resource{
		Title:         validator.SanitizeString(req.Title),
		Description:   validator.SanitizeString(req.Description),
		Category:      req.Category,
		Type:          req.Type,
		Language:      req.Language,
		Icon:          req.Icon,
		Duration:      req.Duration,
		Content:       req.Content,
		VideoURL:      req.VideoURL,
		AudioURL:      req.AudioURL,
		ImageURL:      req.ImageURL,
		Author:        req.Author,
		PublishedDate: req.PublishedDate,
	}
	if err := h.store.Create(r.Context(), resource); err != nil {
		respondStorageError(w, "resources.create", err)
		return
	}
	respondWithJSON(w, http.StatusCreated, resource)
}

// Likes increments or decrements the like counter, never below zero. Public.
// An empty body counts as a like.
func (h *ResourceHandler) Likes(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Action string `json:"action" validate:"omitempty,oneof=like unlike"`
	}
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validator.ValidateStruct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	delta := 1
	if req.Action == "unlike" {
		delta = -1
	}

	resource, err := h.store.AdjustLikes(r.Context(), r.PathValue("id"), delta)
	if err != nil {
		if errors.Is(err, repository.ErrResourceNotFound) || errors.Is(err, repository.ErrInvalidID) {
			respondWithError(w, http.StatusNotFound, "Resource not found")
			return
		}
		respondStorageError(w, "resources.likes", err)
		return
	}
	respondWithJSON(w, http.StatusOK, resource)
}
