package handlers

import (
	"context"
	"errors"
	"net/http"

	"hipis/internal/middleware"
	"hipis/internal/models"
	"hipis/internal/policy"
	"hipis/internal/repository"
)

// NotificationStore is what the notification routes need from storage.
type NotificationStore interface {
	ListByUser(ctx context.Context, userID string, limit int64) ([]models.Notification, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Notification, error)
}

// NotificationHandler handles in-app notification requests
type NotificationHandler struct {
	store NotificationStore
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(store NotificationStore) *NotificationHandler {
	return &NotificationHandler{store: store}
}

// List returns a user's latest notifications.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromRequest(r)
	userID := r.PathValue("userId")

	if !policy.CanAccess(identity.ID, identity.Role, userID, "") {
		respondWithError(w, http.StatusForbidden, ErrMsgForbidden)
		return
	}

	list, err := h.store.ListByUser(r.Context(), userID, 50)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidID) {
			respondWithError(w, http.StatusBadRequest, "Invalid user id")
			return
		}
		respondStorageError(w, "notifications.list", err)
		return
	}

	respondWithJSON(w, http.StatusOK, list)
}

// MarkAllRead marks every unread notification of the path user as read.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromRequest(r)
	userID := r.PathValue("userId")

	if !policy.CanAccess(identity.ID, identity.Role, userID, "") {
		respondWithError(w, http.StatusForbidden, ErrMsgForbidden)
		return
	}

	updated, err := h.store.MarkAllRead(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidID) {
			respondWithError(w, http.StatusBadRequest, "Invalid user id")
			return
		}
		respondStorageError(w, "notifications.markAllRead", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"updated": updated})
}

// MarkRead marks a single notification as read. Absent and not-owned are
// the same 404.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromRequest(r)
	id := r.PathValue("id")

	n, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) || errors.Is(err, repository.ErrInvalidID) {
			respondWithError(w, http.StatusNotFound, "Notification not found")
			return
		}
		respondStorageError(w, "notifications.markRead", err)
		return
	}

	if !policy.CanAccess(identity.ID, identity.Role, n.UserID.Hex(), "") {
		respondWithError(w, http.StatusNotFound, "Notification not found")
		return
	}

	if err := h.store.MarkRead(r.Context(), id); err != nil {
		respondStorageError(w, "notifications.markRead", err)
		return
	}

	n.Read = true
	respondWithJSON(w, http.StatusOK, n)
}
