package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hipis/internal/middleware"
	"hipis/internal/models"
	"hipis/internal/repository"
	"hipis/internal/service"
	"hipis/pkg/validator"
)

// CounselorService is what the counsellor workspace routes need from the
// service layer.
type CounselorService interface {
	Clients(ctx context.Context, counselorID string) ([]models.CounselorClient, error)
	ClientDetail(ctx context.Context, counselorID, clientID string) (*models.ClientDetail, error)
	TodaysAppointments(ctx context.Context, counselorID string) ([]models.AppointmentWithUser, error)
	UpcomingAppointments(ctx context.Context, counselorID string) ([]models.AppointmentWithUser, error)
	CreateNote(ctx context.Context, counselorID string, note *models.CounselorNote) error
	RecentNotes(ctx context.Context, counselorID string) ([]models.NoteWithClient, error)
	Stats(ctx context.Context, counselorID string) (*models.CounselorStats, error)
	AddClient(ctx context.Context, counselorID, clientID, primaryIssue string) (*models.CounselorClient, error)
}

// CounselorHandler handles the counsellor workspace
type CounselorHandler struct {
	counselorSvc CounselorService
}

// NewCounselorHandler creates a new counselor handler
func NewCounselorHandler(counselorSvc CounselorService) *CounselorHandler {
	return &CounselorHandler{counselorSvc: counselorSvc}
}

// Clients returns the caller's roster.
func (h *CounselorHandler) Clients(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromRequest(r)

	clients, err := h.counselorSvc.Clients(r.Context(), identity.ID)
	if err != nil {
		respondStorageError(w, "counselor.clients", err)
		return
	}
	respondWithJSON(w, http.StatusOK, clients)
}

// ClientDetail returns one relationship with its notes.
func (h *CounselorHandler) ClientDetail(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromRequest(r)

	detail, err := h.counselorSvc.ClientDetail(r.Context(), identity.ID, r.PathValue("clientId"))
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) || errors.Is(err, repository.ErrInvalidID) {
			respondWithError(w, http.StatusNotFound, "Client not found")
			return
		}
		respondStorageError(w, "counselor.clientDetail", err)
		return
	}
	respondWithJSON(w, http.StatusOK, detail)
}

// Appointments returns today's schedule.
func (h *CounselorHandler) Appointments(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromRequest(r)

	appts, err := h.counselorSvc.TodaysAppointments(r.Context(), identity.ID)
	if err != nil {
		respondStorageError(w, "counselor.appointments", err)
		return
	}
	respondWithJSON(w, http.StatusOK, appts)
}

// UpcomingAppointments returns the next seven days.
func (h *CounselorHandler) UpcomingAppointments(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromRequest(r)

	appts, err := h.counselorSvc.UpcomingAppointments(r.Context(), identity.ID)
	if err != nil {
		respondStorageError(w, "counselor.upcoming", err)
		return
	}
	respondWithJSON(w, http.StatusOK, appts)
}

// CreateNote records a session note for one of the caller's clients.
func (h *CounselorHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromRequest(r)

	var req struct {
		ClientID  string   `json:"clientId" validate:"required"`
		Content   string   `json:"content" validate:"required"`
		FollowUp  string   `json:"followUp"`
		KeyPoints []string `json:"keyPoints"`
		Mood      string   `json:"mood"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validator.ValidateStruct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	clientID, err := primitive.ObjectIDFromHex(req.ClientID)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid client id")
		return
	}

	note := &models.CounselorNote{
		ClientID:    clientID,
		Content:     validator.SanitizeString(req.Content),
		FollowUp:    validator.SanitizeString(req.FollowUp),
		KeyPoints:   req.KeyPoints,
		Mood:        req.Mood,
		SessionDate: time.Now(),
	}
	if err := h.counselorSvc.CreateNote(r.Context(), identity.ID, note); err != nil {
		switch {
		case errors.Is(err, service.ErrNotAClient):
			respondWithError(w, http.StatusForbidden, "You do not have access to this client")
		case errors.Is(err, repository.ErrInvalidID):
			respondWithError(w, http.StatusBadRequest, "Invalid client id")
		default:
			respondStorageError(w, "counselor.createNote", err)
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, note)
}

// RecentNotes returns the caller's latest session notes.
func (h *CounselorHandler) RecentNotes(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromRequest(r)

	notes, err := h.counselorSvc.RecentNotes(r.Context(), identity.ID)
	if err != nil {
		respondStorageError(w, "counselor.recentNotes", err)
		return
	}
	respondWithJSON(w, http.StatusOK, notes)
}

// Stats returns the dashboard summary.
func (h *CounselorHandler) Stats(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromRequest(r)

	stats, err := h.counselorSvc.Stats(r.Context(), identity.ID)
	if err != nil {
		respondStorageError(w, "counselor.stats", err)
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}

// AddClient starts a relationship with an active student.
func (h *CounselorHandler) AddClient(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromRequest(r)

	var req struct {
		ClientID     string `json:"clientId" validate:"required"`
		PrimaryIssue string `json:"primaryIssue"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validator.ValidateStruct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	rel, err := h.counselorSvc.AddClient(r.Context(), identity.ID, req.ClientID, req.PrimaryIssue)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClientNotStudent):
			respondWithError(w, http.StatusNotFound, "Client not found")
		case errors.Is(err, repository.ErrClientExists):
			respondWithError(w, http.StatusBadRequest, "Client already added")
		case errors.Is(err, repository.ErrInvalidID):
			respondWithError(w, http.StatusBadRequest, "Invalid client id")
		default:
			respondStorageError(w, "counselor.addClient", err)
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, rel)
}
