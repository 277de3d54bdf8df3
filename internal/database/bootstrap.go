package database

import (
	"context"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"lifesource-backend/internal/models"
)

// SeedAdmin creates the back-office account from the environment when the
// admins collection is empty. Does nothing when credentials are unset or an
// admin already exists, so redeploys never clobber a rotated password.
func SeedAdmin(db *mongo.Database, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := db.Collection("admins").CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.Collection("admins").InsertOne(ctx, models.Admin{
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return err
	}

	log.Println("SeedAdmin: created back-office account for", email)
	return nil
}
