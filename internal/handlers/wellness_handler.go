package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hipis/internal/middleware"
	"hipis/internal/models"
	"hipis/internal/policy"
	"hipis/internal/repository"
	"hipis/pkg/validator"
)

// MoodStore is what the wellness routes need from storage.
type MoodStore interface {
	Create(ctx context.Context, entry *models.MoodEntry) error
	GetByID(ctx context.Context, id string) (*models.MoodEntry, error)
	ListByUser(ctx context.Context, userID string) ([]models.MoodEntry, error)
	Delete(ctx context.Context, id string) error
}

// WellnessHandler handles mood tracking requests
type WellnessHandler struct {
	store MoodStore
}

// NewWellnessHandler creates a new wellness handler
func NewWellnessHandler(store MoodStore) *WellnessHandler {
	return &WellnessHandler{store: store}
}

// List returns a student's mood history, newest first.
func (h *WellnessHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromRequest(r)
	userID := r.PathValue("userId")

	if !policy.CanAccess(identity.ID, identity.Role, userID, "") {
		respondWithError(w, http.StatusForbidden, ErrMsgForbidden)
		return
	}

	entries, err := h.store.ListByUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidID) {
			respondWithError(w, http.StatusBadRequest, "Invalid user id")
			return
		}
		respondStorageError(w, "wellness.list", err)
		return
	}

	respondWithJSON(w, http.StatusOK, entries)
}

// Create records a mood check-in for the authenticated caller.
func (h *WellnessHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromRequest(r)

	var req struct {
		Date     string  `json:"date" validate:"required"`
		Mood     string  `json:"mood" validate:"required"`
		Stress   int     `json:"stress" validate:"min=1,max=10"`
		Sleep    float64 `json:"sleep" validate:"min=0,max=24"`
		Energy   int     `json:"energy" validate:"min=1,max=10"`
		Exercise bool    `json:"exercise"`
		Notes    string  `json:"notes"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validator.ValidateStruct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ownerID, err := primitive.ObjectIDFromHex(identity.ID)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	entry := &models.MoodEntry{
		UserID:   ownerID,
		Date:     req.Date,
		Mood:     req.Mood,
		Stress:   req.Stress,
		Sleep:    req.Sleep,
		Energy:   req.Energy,
		Exercise: req.Exercise,
		Notes:    validator.SanitizeString(req.Notes),
	}
	if err := h.store.Create(r.Context(), entry); err != nil {
		respondStorageError(w, "wellness.create", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, entry)
}

// Delete removes a mood entry. Absent and not-owned are the same 404.
func (h *WellnessHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromRequest(r)
	id := r.PathValue("id")

	entry, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMoodEntryNotFound) || errors.Is(err, repository.ErrInvalidID) {
			respondWithError(w, http.StatusNotFound, "Mood entry not found")
			return
		}
		respondStorageError(w, "wellness.delete", err)
		return
	}

	if !policy.CanAccess(identity.ID, identity.Role, entry.UserID.Hex(), "") {
		respondWithError(w, http.StatusNotFound, "Mood entry not found")
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		respondStorageError(w, "wellness.delete", err)
		return
	}

	respondWithMessage(w, http.StatusOK, nil, "Mood entry deleted")
}
