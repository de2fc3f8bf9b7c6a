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

// CommentRepository handles comment collection operations
type CommentRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *database.Database) *CommentRepository {
	return &CommentRepository{
		coll:    db.Collection(database.CollComments),
		timeout: db.QueryTimeout(),
	}
}

// ListByResource returns a resource's comments, newest first.
func (r *CommentRepository) ListByResource(ctx context.Context, resourceID string) ([]models.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"resourceId": resourceID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	return comments, nil
}

// Create inserts a new comment
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	comment.CreatedAt = time.Now()
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}

	if _, err := r.coll.InsertOne(ctx, comment); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}
