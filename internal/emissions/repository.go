package emissions

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"carbontrack/carbontrack-backend/pkg/apperrors"
)

// ListFilter narrows the owner-scoped listing of records.
type ListFilter struct {
	Category  Category
	StartDate *time.Time
	EndDate   *time.Time
	Page      int64
	Limit     int64
}

type Repository interface {
	Create(ctx context.Context, emission *Emission) error
	FindByID(ctx context.Context, id, userID string) (*Emission, error)
	List(ctx context.Context, userID string, filter ListFilter) ([]Emission, int64, error)
	Update(ctx context.Context, emission *Emission) error
	Delete(ctx context.Context, id, userID string) error

	// FindInWindow returns every record owned by userID whose occurrence
	// date falls inside [start, end], in ascending date order.
	FindInWindow(ctx context.Context, userID string, start, end time.Time) ([]Emission, error)

	// FindRecent returns up to limit records since the given time, newest first.
	FindRecent(ctx context.Context, userID string, since time.Time, limit int64) ([]Emission, error)
}

type mongoRepository struct {
	collection *mongo.Collection
}

// NewRepository creates an emissions repository backed by the given database.
func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{collection: db.Collection("emissions")}
}

// EnsureIndexes creates the query indexes the repository relies on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("emissions").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}

func (r *mongoRepository) Create(ctx context.Context, emission *Emission) error {
	_, err := r.collection.InsertOne(ctx, emission)
	return err
}

// FindByID filters on both id and owner in one query so that a record owned
// by someone else is indistinguishable from a missing one.
func (r *mongoRepository) FindByID(ctx context.Context, id, userID string) (*Emission, error) {
	var emission Emission
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "user": userID}).Decode(&emission)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &emission, nil
}

func (r *mongoRepository) List(ctx context.Context, userID string, filter ListFilter) ([]Emission, int64, error) {
	query := bson.M{"user": userID}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.StartDate != nil || filter.EndDate != nil {
		dateRange := bson.M{}
		if filter.StartDate != nil {
			dateRange["$gte"] = *filter.StartDate
		}
		if filter.EndDate != nil {
			dateRange["$lte"] = *filter.EndDate
		}
		query["date"] = dateRange
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	var results []Emission
	if err := cursor.All(ctx, &results); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

// Update replaces the whole document in one write so the recomputed CO2e and
// the edited fields land atomically.
func (r *mongoRepository) Update(ctx context.Context, emission *Emission) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": emission.ID, "user": emission.UserID}, emission)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *mongoRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *mongoRepository) FindInWindow(ctx context.Context, userID string, start, end time.Time) ([]Emission, error) {
	query := bson.M{
		"user": userID,
		"date": bson.M{"$gte": start, "$lte": end},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	var results []Emission
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *mongoRepository) FindRecent(ctx context.Context, userID string, since time.Time, limit int64) ([]Emission, error) {
	query := bson.M{
		"user": userID,
		"date": bson.M{"$gte": since},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	var results []Emission
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
