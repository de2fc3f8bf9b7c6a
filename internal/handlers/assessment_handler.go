package handlers

import (
	"context"
	"errors"
	"net/http"

	"hipis/internal/assessment"
	"hipis/internal/middleware"
	"hipis/internal/models"
	"hipis/internal/policy"
	"hipis/internal/repository"
	"hipis/pkg/validator"
)

// AssessmentService is what the assessment routes need from the service layer.
type AssessmentService interface {
	Submit(ctx context.Context, userID string, typ assessment.Type, answers []int) (*models.Assessment, bool, error)
	History(ctx context.Context, userID string) ([]models.Assessment, error)
}

// AssessmentHandler handles questionnaire submissions
type AssessmentHandler struct {
	assessmentSvc AssessmentService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessmentSvc AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentSvc: assessmentSvc}
}

// List returns a student's assessment history.
func (h *AssessmentHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromRequest(r)
	userID := r.PathValue("userId")

	if !policy.CanAccess(identity.ID, identity.Role, userID, "") {
		respondWithError(w, http.StatusForbidden, ErrMsgForbidden)
		return
	}

	history, err := h.assessmentSvc.History(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidID) {
			respondWithError(w, http.StatusBadRequest, "Invalid user id")
			return
		}
		respondStorageError(w, "assessments.list", err)
		return
	}

	respondWithJSON(w, http.StatusOK, history)
}

// Submit scores a questionnaire for the authenticated caller. When the score
// was computed but could not be stored, the caller still gets the computed
// record with a warning instead of an error.
func (h *AssessmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromRequest(r)

	// An absent or empty answer list is allowed and scores zero; only the
	// item range is enforced here.
	var req struct {
		Type    string `json:"type" validate:"required"`
		Answers []int  `json:"answers" validate:"dive,min=0,max=3"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validator.ValidateStruct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	typ := assessment.Type(req.Type)
	if !assessment.Valid(typ) {
		respondWithError(w, http.StatusBadRequest, "Type must be one of: PHQ-9 GAD-7 GHQ-12")
		return
	}

	record, persisted, err := h.assessmentSvc.Submit(r.Context(), identity.ID, typ, req.Answers)
	if err != nil {
		if errors.Is(err, assessment.ErrUnknownType) || errors.Is(err, repository.ErrInvalidID) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondStorageError(w, "assessments.submit", err)
		return
	}

	if !persisted {
		respondWithMessage(w, http.StatusOK, record, "Assessment scored but could not be saved")
		return
	}
	respondWithJSON(w, http.StatusCreated, record)
}
