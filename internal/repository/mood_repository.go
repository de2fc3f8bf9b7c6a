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

var ErrMoodEntryNotFound = errors.New("mood entry not found")

// MoodRepository handles mood entry collection operations
type MoodRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMoodRepository creates a new mood repository
func NewMoodRepository(db *database.Database) *MoodRepository {
	return &MoodRepository{
		coll:    db.Collection(database.CollMoodEntries),
		timeout: db.QueryTimeout(),
	}
}

// Create inserts a new mood entry
func (r *MoodRepository) Create(ctx context.Context, entry *models.MoodEntry) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	entry.CreatedAt = time.Now()
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}

	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to create mood entry: %w", err)
	}
	return nil
}

// GetByID retrieves a mood entry by ID
func (r *MoodRepository) GetByID(ctx context.Context, id string) (*models.MoodEntry, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	entry := &models.MoodEntry{}
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(entry)
	if err == mongo.ErrNoDocuments {
		return nil, ErrMoodEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mood entry: %w", err)
	}
	return entry, nil
}

// ListByUser returns a student's mood entries, newest first.
func (r *MoodRepository) ListByUser(ctx context.Context, userID string) ([]models.MoodEntry, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list mood entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.MoodEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode mood entries: %w", err)
	}
	return entries, nil
}

// Delete removes a mood entry.
func (r *MoodRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete mood entry: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrMoodEntryNotFound
	}
	return nil
}

// ListRecent returns the latest entries across all users, newest first.
// Admin wellness metrics are computed over this window.
func (r *MoodRepository) ListRecent(ctx context.Context, limit int64) ([]models.MoodEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list mood entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.MoodEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode mood entries: %w", err)
	}
	return entries, nil
}

// Count returns the total number of mood entries.
func (r *MoodRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count mood entries: %w", err)
	}
	return n, nil
}
