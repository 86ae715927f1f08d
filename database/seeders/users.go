package seeders

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/foodnest/foodnest/app/models"
	"github.com/foodnest/foodnest/config"
	"github.com/foodnest/foodnest/pkg/auth"
	"github.com/foodnest/foodnest/pkg/database"
)

func init() {
	Register("admin", SeedAdmin)
}

// SeedAdmin creates the bootstrap administrator account. Idempotent: if the
// admin email already exists nothing is written. Credentials come from
// ADMIN_EMAIL / ADMIN_PASSWORD in the environment config.
func SeedAdmin(ctx context.Context, db *database.DB) error {
	email := config.Get("ADMIN_EMAIL", "admin@foodnest.local")
	password := config.Get("ADMIN_PASSWORD", "changeme123")

	col := db.Collection(database.ColUsers)

	err := col.FindOne(ctx, bson.M{"email": email}).Err()
	if err == nil {
		return nil // already seeded
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = col.InsertOne(ctx, models.User{
		Email:     email,
		Password:  hash,
		FirstName: "Admin",
		Role:      models.RoleAdmin,
		IsActive:  true,
		IsAdmin:   true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return err
}
