package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/community-platform/backend/internal/models"
)

// Repository handles user persistence.
type Repository struct {
	users *mongo.Collection
}

// NewRepository creates a user repository.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{users: db.Collection("users")}
}

// GetCredentialsByEmail fetches only the fields needed to verify a login.
func (r *Repository) GetCredentialsByEmail(ctx context.Context, email string) (*models.User, error) {
	opts := options.FindOne().SetProjection(bson.M{"password": 1, "name": 1})
	var u models.User
	err := r.users.FindOne(ctx, bson.M{"email": email}, opts).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}

// EmailExists reports whether a user with the email is already registered.
func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	err := r.users.FindOne(ctx, bson.M{"email": email}, opts).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return true, nil
}

// Create inserts a new user and fills in its ID and creation time.
func (r *Repository) Create(ctx context.Context, u *models.User) error {
	u.CreatedAt = time.Now().UTC()
	res, err := r.users.InsertOne(ctx, u)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	u.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

// GetByID returns a user without the password hash.
func (r *Repository) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidID, id)
	}
	opts := options.FindOne().SetProjection(bson.M{"password": 0})
	var u models.User
	err = r.users.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

// List returns a page of users sorted by creation time descending, passwords
// excluded, plus the estimated total.
func (r *Repository) List(ctx context.Context, skip, limit int64) ([]models.UserPublic, int64, error) {
	total, err := r.users.EstimatedDocumentCount(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	opts := options.Find().
		SetProjection(bson.M{"password": 0}).
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := r.users.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var raw []models.User
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, 0, fmt.Errorf("decode users: %w", err)
	}
	list := make([]models.UserPublic, 0, len(raw))
	for i := range raw {
		list = append(list, raw[i].ToPublic())
	}
	return list, total, nil
}

// Count returns the estimated number of users.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	return r.users.EstimatedDocumentCount(ctx)
}
