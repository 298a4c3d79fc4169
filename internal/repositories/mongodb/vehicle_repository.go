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

type vehicleRepository struct {
	collection *mongo.Collection
}

func NewVehicleRepository(db *mongo.Database) interfaces.VehicleRepository {
	return &vehicleRepository{
		collection: db.Collection("vehicles"),
	}
}

func (r *vehicleRepository) GetByID(ctx context.Context, id string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&vehicle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	return &vehicle, nil
}

func (r *vehicleRepository) ListActive(ctx context.Context) ([]*models.Vehicle, error) {
	filter := bson.M{"status": models.VehicleStatusActive}

	cursor, err := r.collection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list active vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	vehicles := make([]*models.Vehicle, 0)
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, fmt.Errorf("failed to decode vehicles: %w", err)
	}

	return vehicles, nil
}

func (r *vehicleRepository) Upsert(ctx context.Context, vehicle *models.Vehicle) error {
	now := time.Now()

	update := bson.M{
		"$set": bson.M{
			"name":                 vehicle.Name,
			"type":                 vehicle.Type,
			"capacity":             vehicle.Capacity,
			"base_fare_flat":       vehicle.BaseFareFlat,
			"base_fare_per_km":     vehicle.BaseFarePerKm,
			"base_fare_per_minute": vehicle.BaseFarePerMinute,
			"minimum_fare":         vehicle.MinimumFare,
			"status":               vehicle.Status,
			"updated_at":           now,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": vehicle.ID},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert vehicle: %w", err)
	}

	return nil
}
