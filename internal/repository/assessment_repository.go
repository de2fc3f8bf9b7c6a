package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hipis/internal/database"
	"hipis/internal/models"
)

// AssessmentRepository handles assessment collection operations
type AssessmentRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewAssessmentRepository creates a new assessment repository
func NewAssessmentRepository(db *database.Database) *AssessmentRepository {
	return &AssessmentRepository{
		coll:    db.Collection(database.CollAssessments),
		timeout: db.QueryTimeout(),
	}
}

// Create inserts a completed assessment. Records are immutable after this.
func (r *AssessmentRepository) Create(ctx context.Context, a *models.Assessment) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	a.CreatedAt = time.Now()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}

	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("failed to create assessment: %w", err)
	}
	return nil
}

// ListByUser returns a student's assessment history, newest first.
func (r *AssessmentRepository) ListByUser(ctx context.Context, userID string) ([]models.Assessment, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer cursor.Close(ctx)

	var list []models.Assessment
	if err := cursor.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("failed to decode assessments: %w", err)
	}
	return list, nil
}

// ListHighRisk returns recent assessments scoring above the threshold,
// highest score first.
func (r *AssessmentRepository) ListHighRisk(ctx context.Context, minScore int, limit int64) ([]models.Assessment, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "score", Value: -1}, {Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{"score": bson.M{"$gt": minScore}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list high-risk assessments: %w", err)
	}
	defer cursor.Close(ctx)

	var list []models.Assessment
	if err := cursor.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("failed to decode assessments: %w", err)
	}
	return list, nil
}

// Count returns the total number of assessments.
func (r *AssessmentRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count assessments: %w", err)
	}
	return n, nil
}
