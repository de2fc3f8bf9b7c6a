package service

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hipis/internal/assessment"
	"hipis/internal/models"
	"hipis/internal/repository"
)

// AssessmentService scores questionnaire submissions and persists the result.
type AssessmentService struct {
	assessmentRepo   *repository.AssessmentRepository
	notificationRepo *repository.NotificationRepository
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(assessmentRepo *repository.AssessmentRepository, notificationRepo *repository.NotificationRepository) *AssessmentService {
	return &AssessmentService{
		assessmentRepo:   assessmentRepo,
		notificationRepo: notificationRepo,
	}
}

// Submit scores the answers server-side and stores the record under the
// submitting user. The returned bool reports whether the record was
// persisted: a storage failure after a successful computation is not an
// error, the caller still gets the computed record.
func (s *AssessmentService) Submit(ctx context.Context, userID string, typ assessment.Type, answers []int) (*models.Assessment, bool, error) {
	result, err := assessment.Score(typ, answers)
	if err != nil {
		return nil, false, err
	}

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, false, repository.ErrInvalidID
	}

	record := &models.Assessment{
		UserID:          oid,
		Type:            string(typ),
		Score:           result.Score,
		Severity:        result.Severity,
		Interpretation:  result.Interpretation,
		Recommendations: result.Recommendations,
		Answers:         answers,
	}

	if err := s.assessmentRepo.Create(ctx, record); err != nil {
		slog.Error("Failed to persist assessment", "user_id", userID, "type", typ, "error", err)
		return record, false, nil
	}

	// Best effort; the submission already succeeded.
	notification := &models.Notification{
		UserID:  oid,
		Title:   "Assessment Completed",
		Message: fmt.Sprintf("Your %s assessment has been saved. Severity: %s.", typ, result.Severity),
		Type:    "assessment",
		Link:    "/assessments",
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		slog.Warn("Failed to create assessment notification", "user_id", userID, "error", err)
	}

	return record, true, nil
}

// History returns the user's past submissions, newest first.
func (s *AssessmentService) History(ctx context.Context, userID string) ([]models.Assessment, error) {
	return s.assessmentRepo.ListByUser(ctx, userID)
}
