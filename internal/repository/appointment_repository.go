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

var ErrAppointmentNotFound = errors.New("appointment not found")

// AppointmentRepository handles appointment collection operations
type AppointmentRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(db *database.Database) *AppointmentRepository {
	return &AppointmentRepository{
		coll:    db.Collection(database.CollAppointments),
		timeout: db.QueryTimeout(),
	}
}

// Create inserts a new appointment
func (r *AppointmentRepository) Create(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	now := time.Now()
	appt.CreatedAt = now
	appt.UpdatedAt = now
	if appt.ID.IsZero() {
		appt.ID = primitive.NewObjectID()
	}
	if appt.Status == "" {
		appt.Status = models.AppointmentUpcoming
	}

	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

// GetByID retrieves an appointment by ID
func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	appt := &models.Appointment{}
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(appt)
	if err == mongo.ErrNoDocuments {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return appt, nil
}

// ListByUser returns a student's appointments sorted by date then slot.
func (r *AppointmentRepository) ListByUser(ctx context.Context, userID string) ([]models.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}

// ListByCounsellorBetween returns a counsellor's appointments in [from, to),
// sorted by date then slot. Pass a zero `to` for an open upper bound.
func (r *AppointmentRepository) ListByCounsellorBetween(ctx context.Context, counsellorID string, from, to time.Time) ([]models.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(counsellorID)
	if err != nil {
		return nil, ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	dateRange := bson.M{"$gte": from}
	if !to.IsZero() {
		dateRange["$lt"] = to
	}
	filter := bson.M{"counsellor": oid, "date": dateRange}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}

// SetStatus moves an appointment to a new status.
func (r *AppointmentRepository) SetStatus(ctx context.Context, id string, status string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

// CountByCounsellor counts a counsellor's appointments matching extra criteria.
func (r *AppointmentRepository) CountByCounsellor(ctx context.Context, counsellorID string, extra bson.M) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(counsellorID)
	if err != nil {
		return 0, ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.M{"counsellor": oid}
	for k, v := range extra {
		filter[k] = v
	}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return n, nil
}

// Count returns the number of appointments matching the filter; nil for all.
func (r *AppointmentRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if filter == nil {
		filter = bson.M{}
	}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return n, nil
}

// ListRecent returns the latest appointments across all users, newest first.
func (r *AppointmentRepository) ListRecent(ctx context.Context, limit int64) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}
