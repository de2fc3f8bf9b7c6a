package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hipis/internal/database"
	"hipis/internal/models"
)

var ErrPostNotFound = errors.New("forum post not found")

// Forum sort orders.
const (
	ForumSortRecent  = "recent"
	ForumSortPopular = "popular"
	ForumSortActive  = "active"
)

// ForumRepository handles forum post collection operations
type ForumRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewForumRepository creates a new forum repository
func NewForumRepository(db *database.Database) *ForumRepository {
	return &ForumRepository{
		coll:    db.Collection(database.CollForumPosts),
		timeout: db.QueryTimeout(),
	}
}

// List returns posts filtered by category and free-text query, in the given
// sort order. The query matches title, content or tags case-insensitively.
func (r *ForumRepository) List(ctx context.Context, category, query, sort string) ([]models.ForumPost, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.M{}
	if category != "" && category != "all" {
		filter["category"] = category
	}
	if query != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"content": pattern},
			bson.M{"tags": pattern},
		}
	}

	var order bson.D
	switch sort {
	case ForumSortPopular:
		order = bson.D{{Key: "likes", Value: -1}}
	case ForumSortActive:
		order = bson.D{{Key: "views", Value: -1}}
	default:
		order = bson.D{{Key: "createdAt", Value: -1}}
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(order))
	if err != nil {
		return nil, fmt.Errorf("failed to list forum posts: %w", err)
	}
	defer cursor.Close(ctx)

	var posts []models.ForumPost
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode forum posts: %w", err)
	}
	return posts, nil
}

// Create inserts a new post
func (r *ForumRepository) Create(ctx context.Context, post *models.ForumPost) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	if post.Replies == nil {
		post.Replies = []models.ForumReply{}
	}

	if _, err := r.coll.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("failed to create forum post: %w", err)
	}
	return nil
}

// IncrementLikes bumps the like counter in a single atomic update.
func (r *ForumRepository) IncrementLikes(ctx context.Context, id string) (*models.ForumPost, error) {
	return r.incrementField(ctx, id, "likes")
}

// IncrementViews bumps the view counter in a single atomic update.
func (r *ForumRepository) IncrementViews(ctx context.Context, id string) (*models.ForumPost, error) {
	return r.incrementField(ctx, id, "views")
}

func (r *ForumRepository) incrementField(ctx context.Context, id, field string) (*models.ForumPost, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	post := &models.ForumPost{}
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{field: 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(post)
	if err == mongo.ErrNoDocuments {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to increment %s: %w", field, err)
	}
	return post, nil
}

// AddReply appends a reply to the post's embedded reply list.
func (r *ForumRepository) AddReply(ctx context.Context, id string, reply models.ForumReply) (*models.ForumPost, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	reply.CreatedAt = time.Now()

	post := &models.ForumPost{}
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$push": bson.M{"replies": reply},
			"$set":  bson.M{"updatedAt": reply.CreatedAt},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(post)
	if err == mongo.ErrNoDocuments {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to add reply: %w", err)
	}
	return post, nil
}

// CategoryActivity is one row of the per-category activity aggregate.
type CategoryActivity struct {
	Category string `bson:"_id"`
	Posts    int    `bson:"posts"`
	Comments int    `bson:"comments"`
}

// ActivityByCategory aggregates post and reply counts per category.
func (r *ForumRepository) ActivityByCategory(ctx context.Context) ([]CategoryActivity, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":      "$category",
			"posts":    bson.M{"$sum": 1},
			"comments": bson.M{"$sum": bson.M{"$size": bson.M{"$ifNull": bson.A{"$replies", bson.A{}}}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate forum categories: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []CategoryActivity
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode forum categories: %w", err)
	}
	return rows, nil
}

// Count returns the total number of posts.
func (r *ForumRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count forum posts: %w", err)
	}
	return n, nil
}
