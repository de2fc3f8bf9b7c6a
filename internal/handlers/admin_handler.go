package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"hipis/internal/models"
	"hipis/internal/repository"
	"hipis/pkg/validator"
)

// AdminService is what the admin routes need from the service layer.
type AdminService interface {
	Stats(ctx context.Context) (*models.AdminStats, error)
	Users(ctx context.Context, role string, page, limit int64) ([]models.User, *models.Pagination, error)
	WellnessMetrics(ctx context.Context) (*models.WellnessMetrics, error)
	AppointmentAnalytics(ctx context.Context) (*models.AppointmentAnalytics, error)
	ResourceEngagement(ctx context.Context) ([]models.ResourceEngagement, error)
	ForumActivity(ctx context.Context) ([]models.ForumActivity, error)
	HighRiskFlags(ctx context.Context) ([]models.RiskFlag, error)
	SystemAlerts(ctx context.Context) []models.SystemAlert
	SetUserStatus(ctx context.Context, userID string, active bool) (*models.User, error)
	AssignCounselor(ctx context.Context, studentIDs []string, counselorID string) (int64, error)
}

// AdminHandler handles the admin dashboard. Every route sits behind the
// admin role gate.
type AdminHandler struct {
	adminSvc AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminSvc AdminService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc}
}

// Stats returns the platform headline numbers.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminSvc.Stats(r.Context())
	if err != nil {
		respondStorageError(w, "admin.stats", err)
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}

// Users returns a paged account listing with an optional role filter.
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)

	users, pagination, err := h.adminSvc.Users(r.Context(), q.Get("role"), page, limit)
	if err != nil {
		respondStorageError(w, "admin.users", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"users":      users,
		"pagination": pagination,
	})
}

// Wellness returns mood distribution and derived indices.
func (h *AdminHandler) Wellness(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.adminSvc.WellnessMetrics(r.Context())
	if err != nil {
		respondStorageError(w, "admin.wellness", err)
		return
	}
	respondWithJSON(w, http.StatusOK, metrics)
}

// Appointments returns appointment analytics.
func (h *AdminHandler) Appointments(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.adminSvc.AppointmentAnalytics(r.Context())
	if err != nil {
		respondStorageError(w, "admin.appointments", err)
		return
	}
	respondWithJSON(w, http.StatusOK, analytics)
}

// Resources returns the top resources by views.
func (h *AdminHandler) Resources(w http.ResponseWriter, r *http.Request) {
	engagement, err := h.adminSvc.ResourceEngagement(r.Context())
	if err != nil {
		respondStorageError(w, "admin.resources", err)
		return
	}
	respondWithJSON(w, http.StatusOK, engagement)
}

// Forum returns forum activity per category.
func (h *AdminHandler) Forum(w http.ResponseWriter, r *http.Request) {
	activity, err := h.adminSvc.ForumActivity(r.Context())
	if err != nil {
		respondStorageError(w, "admin.forum", err)
		return
	}
	respondWithJSON(w, http.StatusOK, activity)
}

// RiskFlags returns assessments above the high-risk threshold.
func (h *AdminHandler) RiskFlags(w http.ResponseWriter, r *http.Request) {
	flags, err := h.adminSvc.HighRiskFlags(r.Context())
	if err != nil {
		respondStorageError(w, "admin.riskFlags", err)
		return
	}
	respondWithJSON(w, http.StatusOK, flags)
}

// Alerts returns operational notices.
func (h *AdminHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.adminSvc.SystemAlerts(r.Context()))
}

// UserStatus activates or deactivates an account.
func (h *AdminHandler) UserStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IsActive *bool `json:"isActive" validate:"required"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validator.ValidateStruct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.adminSvc.SetUserStatus(r.Context(), r.PathValue("userId"), *req.IsActive)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) || errors.Is(err, repository.ErrInvalidID) {
			respondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		respondStorageError(w, "admin.userStatus", err)
		return
	}

	message := "User deactivated"
	if *req.IsActive {
		message = "User activated"
	}
	respondWithMessage(w, http.StatusOK, user, message)
}

// AssignCounselor bulk-assigns a counsellor to students.
func (h *AdminHandler) AssignCounselor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StudentIDs  []string `json:"studentIds" validate:"required,min=1"`
		CounselorID string   `json:"counselorId" validate:"required"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validator.ValidateStruct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	assigned, err := h.adminSvc.AssignCounselor(r.Context(), req.StudentIDs, req.CounselorID)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidID) {
			respondWithError(w, http.StatusBadRequest, "studentIds and counselorId must be valid ids")
			return
		}
		respondStorageError(w, "admin.assignCounselor", err)
		return
	}

	respondWithMessage(w, http.StatusOK, map[string]interface{}{"assigned": assigned},
		strconv.FormatInt(assigned, 10)+" students assigned to counselor")
}
