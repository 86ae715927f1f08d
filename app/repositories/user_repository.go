// Package repositories contains the MongoDB access layer. Each repository
// is constructed with an injected *database.DB and exposes a small interface
// the services depend on; mongo.ErrNoDocuments is translated to the
// application's NotFound error at this boundary.
package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/foodnest/foodnest/app/models"
	"github.com/foodnest/foodnest/pkg/apperr"
	"github.com/foodnest/foodnest/pkg/database"
)

// UserRepository handles storage operations for User documents.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type userRepository struct {
	col *mongo.Collection
}

// NewUserRepository returns the MongoDB-backed UserRepository.
func NewUserRepository(db *database.DB) UserRepository {
	return &userRepository{col: db.Collection(database.ColUsers)}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("email already registered")
		}
		return fmt.Errorf("users: insert: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("user %s", id.Hex())
		}
		return nil, fmt.Errorf("users: find by id: %w", err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("user %s", email)
		}
		return nil, fmt.Errorf("users: find by email: %w", err)
	}
	return &user, nil
}

// UpdateFields applies a partial $set in place; updated_at is always stamped.
func (r *userRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updated_at"] = time.Now()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("users: update: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("user %s", id.Hex())
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("users: delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("user %s", id.Hex())
	}
	return nil
}
