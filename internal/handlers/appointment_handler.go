package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hipis/internal/middleware"
	"hipis/internal/models"
	"hipis/internal/policy"
	"hipis/internal/repository"
	"hipis/pkg/validator"
)

// AppointmentStore is what the appointment routes need from storage.
type AppointmentStore interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]models.Appointment, error)
	SetStatus(ctx context.Context, id, status string) error
}

// AppointmentHandler handles appointment scheduling requests
type AppointmentHandler struct {
	store AppointmentStore
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(store AppointmentStore) *AppointmentHandler {
	return &AppointmentHandler{store: store}
}

// List returns a student's appointments. The path id must match the caller
// unless the caller is an admin; no lookup happens on a mismatch.
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromRequest(r)
	userID := r.PathValue("userId")

	if !policy.CanAccess(identity.ID, identity.Role, userID, "") {
		respondWithError(w, http.StatusForbidden, ErrMsgForbidden)
		return
	}

	appts, err := h.store.ListByUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidID) {
			respondWithError(w, http.StatusBadRequest, "Invalid user id")
			return
		}
		respondStorageError(w, "appointments.list", err)
		return
	}

	respondWithJSON(w, http.StatusOK, appts)
}

// Create books an appointment. The owner is always the authenticated caller;
// a client-supplied userId is ignored.
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromRequest(r)

	var req struct {
		Counsellor string `json:"counsellor" validate:"required"`
		Type       string `json:"type" validate:"required,oneof=individual group crisis video-call in-person phone"`
		Date       string `json:"date" validate:"required"`
		Time       string `json:"time" validate:"required"`
		Notes      string `json:"notes"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validator.ValidateStruct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		if date, err = time.Parse("2006-01-02", req.Date); err != nil {
			respondWithError(w, http.StatusBadRequest, "Date must be an ISO date")
			return
		}
	}

	ownerID, err := primitive.ObjectIDFromHex(identity.ID)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	counsellorID, err := primitive.ObjectIDFromHex(req.Counsellor)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid counsellor id")
		return
	}

	appt := &models.Appointment{
		UserID:       ownerID,
		CounsellorID: counsellorID,
		Type:         req.Type,
		Date:         date,
		Time:         req.Time,
		Notes:        validator.SanitizeString(req.Notes),
		Status:       models.AppointmentUpcoming,
	}
	if err := h.store.Create(r.Context(), appt); err != nil {
		respondStorageError(w, "appointments.create", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, appt)
}

// Cancel moves an appointment to cancelled. Absent and not-owned look the
// same to the caller; cancelling twice is a no-op success; a completed
// appointment stays completed.
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromRequest(r)
	id := r.PathValue("id")

	appt, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrAppointmentNotFound) || errors.Is(err, repository.ErrInvalidID) {
			respondWithError(w, http.StatusNotFound, "Appointment not found")
			return
		}
		respondStorageError(w, "appointments.cancel", err)
		return
	}

	if !policy.CanAccess(identity.ID, identity.Role, appt.UserID.Hex(), appt.CounsellorID.Hex()) {
		respondWithError(w, http.StatusNotFound, "Appointment not found")
		return
	}

	switch appt.Status {
	case models.AppointmentCancelled:
		respondWithMessage(w, http.StatusOK, appt, "Appointment already cancelled")
		return
	case models.AppointmentCompleted:
		respondWithError(w, http.StatusBadRequest, "Completed appointments cannot be cancelled")
		return
	}

	if err := h.store.SetStatus(r.Context(), id, models.AppointmentCancelled); err != nil {
		respondStorageError(w, "appointments.cancel", err)
		return
	}

	appt.Status = models.AppointmentCancelled
	respondWithMessage(w, http.StatusOK, appt, "Appointment cancelled")
}
