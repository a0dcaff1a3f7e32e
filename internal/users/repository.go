package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"carbontrack/carbontrack-backend/pkg/apperrors"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, id string, username, email *string, profile *Profile) (*User, error)
	UpdatePreferences(ctx context.Context, id string, prefs Preferences) (*User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	TouchLastActive(ctx context.Context, id string, at time.Time) error

	// ListWeeklyReportSubscribers returns every user who opted into the
	// weekly email digest.
	ListWeeklyReportSubscribers(ctx context.Context) ([]User, error)
}

type mongoRepository struct {
	collection *mongo.Collection
}

// NewRepository creates a users repository backed by the given database.
func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{collection: db.Collection("users")}
}

// EnsureIndexes creates the unique identity indexes.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	return err
}

func (r *mongoRepository) Create(ctx context.Context, user *User) error {
	_, err := r.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.ErrDuplicate
	}
	return err
}

func (r *mongoRepository) FindByID(ctx context.Context, id string) (*User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(email)})
}

func (r *mongoRepository) findOne(ctx context.Context, filter bson.M) (*User, error) {
	var user User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *mongoRepository) UpdateProfile(ctx context.Context, id string, username, email *string, profile *Profile) (*User, error) {
	set := bson.M{"updated_at": time.Now()}
	if username != nil {
		set["username"] = *username
	}
	if email != nil {
		set["email"] = strings.ToLower(*email)
	}
	if profile != nil {
		set["profile"] = *profile
	}
	return r.findAndUpdate(ctx, id, bson.M{"$set": set})
}

func (r *mongoRepository) UpdatePreferences(ctx context.Context, id string, prefs Preferences) (*User, error) {
	return r.findAndUpdate(ctx, id, bson.M{"$set": bson.M{
		"preferences": prefs,
		"updated_at":  time.Now(),
	}})
}

func (r *mongoRepository) findAndUpdate(ctx context.Context, id string, update bson.M) (*User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, apperrors.ErrDuplicate
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *mongoRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"password":   passwordHash,
		"updated_at": time.Now(),
	}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *mongoRepository) TouchLastActive(ctx context.Context, id string, at time.Time) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"stats.last_active": at,
	}})
	return err
}

func (r *mongoRepository) ListWeeklyReportSubscribers(ctx context.Context) ([]User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"preferences.notifications.weekly_report": true})
	if err != nil {
		return nil, err
	}
	var subscribers []User
	if err := cursor.All(ctx, &subscribers); err != nil {
		return nil, err
	}
	return subscribers, nil
}
