package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hipis/internal/database"
	"hipis/internal/models"
)

var ErrResourceNotFound = errors.New("resource not found")

// ResourceRepository handles resource collection operations
type ResourceRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewResourceRepository creates a new resource repository
func NewResourceRepository(db *database.Database) *ResourceRepository {
	return &ResourceRepository{
		coll:    db.Collection(database.CollResources),
		timeout: db.QueryTimeout(),
	}
}

// List returns all resources, newest first.
func (r *ResourceRepository) List(ctx context.Context) ([]models.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	defer cursor.Close(ctx)

	var resources []models.Resource
	if err := cursor.All(ctx, &resources); err != nil {
		return nil, fmt.Errorf("failed to decode resources: %w", err)
	}
	return resources, nil
}

// GetByID retrieves a resource and bumps its view counter.
func (r *ResourceRepository) GetByID(ctx context.Context, id string) (*models.Resource, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resource := &models.Resource{}
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"views": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(resource)
	if err == mongo.ErrNoDocuments {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}
	return resource, nil
}

// Create inserts a new resource
func (r *ResourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resource.CreatedAt = time.Now()
	if resource.ID.IsZero() {
		resource.ID = primitive.NewObjectID()
	}

	if _, err := r.coll.InsertOne(ctx, resource); err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}
	return nil
}

// AdjustLikes moves the like counter by delta, never below zero. The floor
// is enforced in the update filter so concurrent decrements cannot race the
// counter negative.
func (r *ResourceRepository) AdjustLikes(ctx context.Context, id string, delta int) (*models.Resource, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.M{"_id": oid}
	if delta < 0 {
		filter["likes"] = bson.M{"$gte": -delta}
	}

	resource := &models.Resource{}
	err = r.coll.FindOneAndUpdate(ctx,
		filter,
		bson.M{"$inc": bson.M{"likes": delta}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(resource)
	if err == mongo.ErrNoDocuments {
		// Either absent or already at the floor; re-read to tell them apart.
		err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(resource)
		if err == mongo.ErrNoDocuments {
			return nil, ErrResourceNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get resource: %w", err)
		}
		return resource, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to adjust likes: %w", err)
	}
	return resource, nil
}

// TopByViews returns the most viewed resources.
func (r *ResourceRepository) TopByViews(ctx context.Context, limit int64) ([]models.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "views", Value: -1}}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	defer cursor.Close(ctx)

	var resources []models.Resource
	if err := cursor.All(ctx, &resources); err != nil {
		return nil, fmt.Errorf("failed to decode resources: %w", err)
	}
	return resources, nil
}

// Count returns the total number of resources.
func (r *ResourceRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count resources: %w", err)
	}
	return n, nil
}
