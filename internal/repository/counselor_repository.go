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

var (
	ErrClientNotFound = errors.New("client relationship not found")
	ErrClientExists   = errors.New("client already assigned to this counselor")
)

// CounselorRepository handles the counselor-client relationships and session
// notes. Both collections are scoped to a single counsellor on every query.
type CounselorRepository struct {
	clients *mongo.Collection
	notes   *mongo.Collection
	timeout time.Duration
}

// NewCounselorRepository creates a new counselor repository
func NewCounselorRepository(db *database.Database) *CounselorRepository {
	return &CounselorRepository{
		clients: db.Collection(database.CollCounselorClients),
		notes:   db.Collection(database.CollCounselorNotes),
		timeout: db.QueryTimeout(),
	}
}

// ListClients returns a counsellor's client roster, most recent first.
func (r *CounselorRepository) ListClients(ctx context.Context, counselorID string) ([]models.CounselorClient, error) {
	oid, err := primitive.ObjectIDFromHex(counselorID)
	if err != nil {
		return nil, ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := r.clients.Find(ctx, bson.M{"counselorId": oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer cursor.Close(ctx)

	var list []models.CounselorClient
	if err := cursor.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("failed to decode clients: %w", err)
	}
	return list, nil
}

// GetClient returns a single relationship, scoped to the counsellor.
func (r *CounselorRepository) GetClient(ctx context.Context, counselorID, clientID string) (*models.CounselorClient, error) {
	cid, err := primitive.ObjectIDFromHex(counselorID)
	if err != nil {
		return nil, ErrInvalidID
	}
	clid, err := primitive.ObjectIDFromHex(clientID)
	if err != nil {
		return nil, ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rel := &models.CounselorClient{}
	err = r.clients.FindOne(ctx, bson.M{"counselorId": cid, "clientId": clid}).Decode(rel)
	if err == mongo.ErrNoDocuments {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return rel, nil
}

// AddClient creates a counsellor-client relationship. The unique compound
// index rejects duplicates as ErrClientExists.
func (r *CounselorRepository) AddClient(ctx context.Context, rel *models.CounselorClient) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	now := time.Now()
	rel.CreatedAt = now
	rel.UpdatedAt = now
	if rel.ID.IsZero() {
		rel.ID = primitive.NewObjectID()
	}
	if rel.StartDate.IsZero() {
		rel.StartDate = now
	}

	if _, err := r.clients.InsertOne(ctx, rel); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrClientExists
		}
		return fmt.Errorf("failed to add client: %w", err)
	}
	return nil
}

// HasClient reports whether the counsellor has an active relationship with
// the given student.
func (r *CounselorRepository) HasClient(ctx context.Context, counselorID, clientID string) (bool, error) {
	_, err := r.GetClient(ctx, counselorID, clientID)
	if err == ErrClientNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// TouchLastSession records that a session happened now.
func (r *CounselorRepository) TouchLastSession(ctx context.Context, counselorID, clientID string, at time.Time) error {
	cid, err := primitive.ObjectIDFromHex(counselorID)
	if err != nil {
		return ErrInvalidID
	}
	clid, err := primitive.ObjectIDFromHex(clientID)
	if err != nil {
		return ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.clients.UpdateOne(ctx,
		bson.M{"counselorId": cid, "clientId": clid},
		bson.M{"$set": bson.M{"lastSessionDate": at, "updatedAt": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update last session: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrClientNotFound
	}
	return nil
}

// CountActiveClients counts a counsellor's clients with status "active".
func (r *CounselorRepository) CountActiveClients(ctx context.Context, counselorID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(counselorID)
	if err != nil {
		return 0, ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	n, err := r.clients.CountDocuments(ctx, bson.M{"counselorId": oid, "status": "active"})
	if err != nil {
		return 0, fmt.Errorf("failed to count clients: %w", err)
	}
	return n, nil
}

// CreateNote inserts a session note
func (r *CounselorRepository) CreateNote(ctx context.Context, note *models.CounselorNote) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	note.CreatedAt = time.Now()
	if note.ID.IsZero() {
		note.ID = primitive.NewObjectID()
	}
	if note.SessionDate.IsZero() {
		note.SessionDate = note.CreatedAt
	}
	if note.KeyPoints == nil {
		note.KeyPoints = []string{}
	}

	if _, err := r.notes.InsertOne(ctx, note); err != nil {
		return fmt.Errorf("failed to create session note: %w", err)
	}
	return nil
}

// ListNotesByClient returns a counsellor's notes for one client, latest first.
func (r *CounselorRepository) ListNotesByClient(ctx context.Context, counselorID, clientID string) ([]models.CounselorNote, error) {
	cid, err := primitive.ObjectIDFromHex(counselorID)
	if err != nil {
		return nil, ErrInvalidID
	}
	clid, err := primitive.ObjectIDFromHex(clientID)
	if err != nil {
		return nil, ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "sessionDate", Value: -1}})
	cursor, err := r.notes.Find(ctx, bson.M{"counselorId": cid, "clientId": clid}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list session notes: %w", err)
	}
	defer cursor.Close(ctx)

	var notes []models.CounselorNote
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("failed to decode session notes: %w", err)
	}
	return notes, nil
}

// ListRecentNotes returns a counsellor's latest notes across all clients.
func (r *CounselorRepository) ListRecentNotes(ctx context.Context, counselorID string, limit int64) ([]models.CounselorNote, error) {
	oid, err := primitive.ObjectIDFromHex(counselorID)
	if err != nil {
		return nil, ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "sessionDate", Value: -1}}).SetLimit(limit)
	cursor, err := r.notes.Find(ctx, bson.M{"counselorId": oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list session notes: %w", err)
	}
	defer cursor.Close(ctx)

	var notes []models.CounselorNote
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("failed to decode session notes: %w", err)
	}
	return notes, nil
}
