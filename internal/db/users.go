package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskhive/taskhive/internal/models"
)

func (m *Mongo) InsertUser(ctx context.Context, user *models.User) error {
	if _, err := m.Users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("mongo: insert user: %w", err)
	}
	return nil
}

func (m *Mongo) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	return m.findUser(ctx, bson.M{"_id": id})
}

func (m *Mongo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.findUser(ctx, bson.M{"email": email})
}

func (m *Mongo) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := m.Users.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("mongo: find user: %w", err)
	}
	return &user, nil
}

// SaveUser replaces the whole document in one write. Last writer wins for
// concurrent updates to the same user.
func (m *Mongo) SaveUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()

	result, err := m.Users.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("mongo: save user: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser removes the user document (avatar and tokens go with it) and
// cascades to the user's tasks.
func (m *Mongo) DeleteUser(ctx context.Context, id string) error {
	result, err := m.Users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("mongo: delete user: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	if _, err := m.Tasks.DeleteMany(ctx, bson.M{"owner_id": id}); err != nil {
		return fmt.Errorf("mongo: delete user tasks: %w", err)
	}
	return nil
}

func (m *Mongo) AddToken(ctx context.Context, userID, token string) error {
	return m.updateUser(ctx, userID, bson.M{
		"$push": bson.M{"tokens": models.SessionToken{Token: token}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
}

func (m *Mongo) RemoveToken(ctx context.Context, userID, token string) error {
	return m.updateUser(ctx, userID, bson.M{
		"$pull": bson.M{"tokens": bson.M{"token": token}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
}

func (m *Mongo) ClearTokens(ctx context.Context, userID string) error {
	return m.updateUser(ctx, userID, bson.M{
		"$set": bson.M{"tokens": []models.SessionToken{}, "updated_at": time.Now().UTC()},
	})
}

func (m *Mongo) SetAvatar(ctx context.Context, userID string, avatar []byte) error {
	return m.updateUser(ctx, userID, bson.M{
		"$set": bson.M{
			"avatar":     primitive.Binary{Data: avatar},
			"updated_at": time.Now().UTC(),
		},
	})
}

func (m *Mongo) ClearAvatar(ctx context.Context, userID string) error {
	return m.updateUser(ctx, userID, bson.M{
		"$unset": bson.M{"avatar": ""},
		"$set":   bson.M{"updated_at": time.Now().UTC()},
	})
}

func (m *Mongo) updateUser(ctx context.Context, userID string, update bson.M) error {
	result, err := m.Users.UpdateByID(ctx, userID, update)
	if err != nil {
		return fmt.Errorf("mongo: update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
