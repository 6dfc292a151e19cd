// Seeds a demo user and a handful of tasks through the same store layer
// the server uses. Intended for local development against a real Mongo.
package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/taskhive/taskhive/internal/auth"
	"github.com/taskhive/taskhive/internal/db"
	"github.com/taskhive/taskhive/internal/models"
	"github.com/taskhive/taskhive/internal/utils"
)

func main() {
	_ = godotenv.Load()

	cfg, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Mongo.URI == "" {
		log.Fatal("MONGO_URI must be set to seed")
	}

	ctx := context.Background()

	store, err := db.NewMongo(ctx, cfg.Mongo)
	if err != nil {
		log.Fatalf("connect mongo: %v", err)
	}
	defer store.Close(context.Background())

	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatalf("ensure indexes: %v", err)
	}

	hash, err := auth.HashPassword("demo-pass-1")
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		Name:         "Demo User",
		Email:        "demo@taskhive.dev",
		Age:          30,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := store.InsertUser(ctx, user); err != nil {
		log.Fatalf("insert user: %v", err)
	}

	descriptions := []string{
		"Read the onboarding guide",
		"Set up the local environment",
		"File first expense report",
	}
	for i, description := range descriptions {
		task := &models.Task{
			ID:          uuid.NewString(),
			Description: description,
			Completed:   i == 0,
			OwnerID:     user.ID,
			CreatedAt:   now.Add(time.Duration(i) * time.Second),
			UpdatedAt:   now.Add(time.Duration(i) * time.Second),
		}
		if err := store.InsertTask(ctx, task); err != nil {
			log.Fatalf("insert task: %v", err)
		}
	}

	log.Printf("seeded user %s with %d tasks (login demo@taskhive.dev / demo-pass-1)", user.ID, len(descriptions))
}
