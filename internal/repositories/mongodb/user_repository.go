package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cabgo/internal/models"
	"cabgo/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) interfaces.UserRepository {
	return &userRepository{
		collection: db.Collection("users"),
	}
}

func (r *userRepository) UpsertRole(ctx context.Context, uid string, role models.Role) error {
	update := bson.M{
		"$set": bson.M{
			"role":       role,
			"updated_at": time.Now(),
		},
	}

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": uid},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user role: %w", err)
	}

	return nil
}

func (r *userRepository) AdminExists(ctx context.Context) (bool, error) {
	err := r.collection.FindOne(
		ctx,
		bson.M{"role": models.RoleAdmin},
		options.FindOne().SetProjection(bson.M{"_id": 1}),
	).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up admin users: %w", err)
	}

	return true, nil
}
