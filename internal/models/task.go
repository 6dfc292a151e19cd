package models

import "time"

// Task is a to-do item owned by a single user.
type Task struct {
	ID          string    `bson:"_id" json:"id"`
	Description string    `bson:"description" json:"description"`
	Completed   bool      `bson:"completed" json:"completed"`
	OwnerID     string    `bson:"owner_id" json:"ownerId"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}
