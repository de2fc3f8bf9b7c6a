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

// ContactRepository handles counsellor contact request operations
type ContactRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *database.Database) *ContactRepository {
	return &ContactRepository{
		coll:    db.Collection(database.CollContactRequests),
		timeout: db.QueryTimeout(),
	}
}

// Create inserts a new contact request
func (r *ContactRepository) Create(ctx context.Context, req *models.ContactRequest) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req.CreatedAt = time.Now()
	if req.ID.IsZero() {
		req.ID = primitive.NewObjectID()
	}
	if req.Status == "" {
		req.Status = "pending"
	}

	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("failed to create contact request: %w", err)
	}
	return nil
}

// ListPending returns unhandled requests, oldest first.
func (r *ContactRepository) ListPending(ctx context.Context) ([]models.ContactRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"status": "pending"}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact requests: %w", err)
	}
	defer cursor.Close(ctx)

	var reqs []models.ContactRequest
	if err := cursor.All(ctx, &reqs); err != nil {
		return nil, fmt.Errorf("failed to decode contact requests: %w", err)
	}
	return reqs, nil
}

// CountPending counts unhandled requests.
func (r *ContactRepository) CountPending(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"status": "pending"})
	if err != nil {
		return 0, fmt.Errorf("failed to count contact requests: %w", err)
	}
	return n, nil
}
