package reports

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	SaveWeeklyReport(ctx context.Context, report *WeeklyReport) error
	ListWeeklyReports(ctx context.Context, userID string, limit int64) ([]WeeklyReport, error)
}

type mongoRepository struct {
	collection *mongo.Collection
}

// NewRepository creates a weekly-report repository backed by the given database.
func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{collection: db.Collection("weekly_reports")}
}

func (r *mongoRepository) SaveWeeklyReport(ctx context.Context, report *WeeklyReport) error {
	_, err := r.collection.InsertOne(ctx, report)
	return err
}

func (r *mongoRepository) ListWeeklyReports(ctx context.Context, userID string, limit int64) ([]WeeklyReport, error) {
	if limit < 1 {
		limit = 12
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "week_end", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		return nil, err
	}
	var results []WeeklyReport
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
