package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hipis/internal/middleware"
	"hipis/internal/models"
	"hipis/pkg/validator"
)

// ContactStore is what the support routes need from storage.
type ContactStore interface {
	Create(ctx context.Context, req *models.ContactRequest) error
}

// NotificationCreator posts the confirmation notification.
type NotificationCreator interface {
	Create(ctx context.Context, n *models.Notification) error
}

// SupportHandler handles "connect me with a counsellor" requests
type SupportHandler struct {
	contacts      ContactStore
	notifications NotificationCreator
	users         UserStore
}

// NewSupportHandler creates a new support handler
func NewSupportHandler(contacts ContactStore, notifications NotificationCreator, users UserStore) *SupportHandler {
	return &SupportHandler{contacts: contacts, notifications: notifications, users: users}
}

// Contact files a counsellor contact request for the authenticated caller
// and confirms it with a notification.
func (h *SupportHandler) Contact(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromRequest(r)

	var req struct {
		Message string `json:"message" validate:"omitempty,max=500"`
		Source  string `json:"source"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid contact payload")
		return
	}
	if err := validator.ValidateStruct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Message == "" {
		req.Message = "Please connect me with a counselor"
	}
	if req.Source == "" {
		req.Source = "assessments"
	}

	userID, err := primitive.ObjectIDFromHex(identity.ID)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	contact := &models.ContactRequest{
		UserID:  userID,
		Source:  req.Source,
		Message: validator.SanitizeString(req.Message),
	}
	if user, err := h.users.GetByID(r.Context(), identity.ID); err == nil {
		contact.Name = user.Name
		contact.Email = user.Email
	}

	if err := h.contacts.Create(r.Context(), contact); err != nil {
		respondStorageError(w, "support.contact", err)
		return
	}

	// Best effort; the request itself already succeeded.
	notification := &models.Notification{
		UserID:  userID,
		Title:   "Counselor request received",
		Message: "We'll connect you to a counselor shortly.",
		Type:    "support",
		Link:    "/assessments",
	}
	if err := h.notifications.Create(r.Context(), notification); err != nil {
		slog.Warn("Failed to create contact confirmation", "user_id", identity.ID, "error", err)
	}

	respondWithJSON(w, http.StatusCreated, contact)
}
