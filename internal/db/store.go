package db

import (
	"context"

	"github.com/taskhive/taskhive/internal/models"
)

// TaskFilter narrows and orders a task listing. A nil Completed means no
// completion filter; Limit <= 0 means no limit.
type TaskFilter struct {
	Completed *bool
	Limit     int64
	Skip      int64
	SortField string
	SortAsc   bool
}

// Store is the persistence surface the API layer works against. Both the
// Mongo store and the in-memory store implement it.
type Store interface {
	InsertUser(ctx context.Context, user *models.User) error
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id string) error

	AddToken(ctx context.Context, userID, token string) error
	RemoveToken(ctx context.Context, userID, token string) error
	ClearTokens(ctx context.Context, userID string) error

	SetAvatar(ctx context.Context, userID string, avatar []byte) error
	ClearAvatar(ctx context.Context, userID string) error

	InsertTask(ctx context.Context, task *models.Task) error
	FindTask(ctx context.Context, ownerID, id string) (*models.Task, error)
	ListTasks(ctx context.Context, ownerID string, filter TaskFilter) ([]models.Task, error)
	SaveTask(ctx context.Context, task *models.Task) error
	DeleteTask(ctx context.Context, ownerID, id string) error
}
