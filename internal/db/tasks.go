package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskhive/taskhive/internal/models"
)

func (m *Mongo) InsertTask(ctx context.Context, task *models.Task) error {
	if _, err := m.Tasks.InsertOne(ctx, task); err != nil {
		return fmt.Errorf("mongo: insert task: %w", err)
	}
	return nil
}

func (m *Mongo) FindTask(ctx context.Context, ownerID, id string) (*models.Task, error) {
	var task models.Task
	filter := bson.M{"_id": id, "owner_id": ownerID}
	if err := m.Tasks.FindOne(ctx, filter).Decode(&task); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("mongo: find task: %w", err)
	}
	return &task, nil
}

func (m *Mongo) ListTasks(ctx context.Context, ownerID string, filter TaskFilter) ([]models.Task, error) {
	query := bson.M{"owner_id": ownerID}
	if filter.Completed != nil {
		query["completed"] = *filter.Completed
	}

	findOpts := options.Find()
	if filter.Limit > 0 {
		findOpts.SetLimit(filter.Limit)
	}
	if filter.Skip > 0 {
		findOpts.SetSkip(filter.Skip)
	}
	if filter.SortField != "" {
		order := -1
		if filter.SortAsc {
			order = 1
		}
		findOpts.SetSort(bson.D{{Key: filter.SortField, Value: order}})
	}

	cursor, err := m.Tasks.Find(ctx, query, findOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo: list tasks: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("mongo: decode tasks: %w", err)
	}
	return tasks, nil
}

func (m *Mongo) SaveTask(ctx context.Context, task *models.Task) error {
	task.UpdatedAt = time.Now().UTC()

	filter := bson.M{"_id": task.ID, "owner_id": task.OwnerID}
	result, err := m.Tasks.ReplaceOne(ctx, filter, task)
	if err != nil {
		return fmt.Errorf("mongo: save task: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) DeleteTask(ctx context.Context, ownerID, id string) error {
	result, err := m.Tasks.DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("mongo: delete task: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
