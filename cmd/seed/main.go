// Seeds the vehicle rate cards. Out-of-band utility, not part of the
// request path; safe to re-run, existing records keep their creation
// timestamps.
package main

import (
	"context"
	"log"

	"cabgo/internal/config"
	"cabgo/internal/models"
	"cabgo/pkg/database"

	repos "cabgo/internal/repositories/mongodb"
)

var vehicles = []*models.Vehicle{
	{
		ID:                "swift",
		Name:              "Swift",
		Type:              models.VehicleTypeHatchback,
		Capacity:          4,
		BaseFareFlat:      80,
		BaseFarePerKm:     10,
		BaseFarePerMinute: 1.5,
		MinimumFare:       400,
		Status:            models.VehicleStatusActive,
	},
	{
		ID:                "dzire",
		Name:              "Dzire",
		Type:              models.VehicleTypeSedan,
		Capacity:          4,
		BaseFareFlat:      100,
		BaseFarePerKm:     12,
		BaseFarePerMinute: 2,
		MinimumFare:       500,
		Status:            models.VehicleStatusActive,
	},
	{
		ID:                "innova",
		Name:              "Innova",
		Type:              models.VehicleTypeSUV,
		Capacity:          8,
		BaseFareFlat:      150,
		BaseFarePerKm:     16,
		BaseFarePerMinute: 2.5,
		MinimumFare:       700,
		Status:            models.VehicleStatusActive,
	},
	{
		ID:                "camry",
		Name:              "Camry",
		Type:              models.VehicleTypePremium,
		Capacity:          4,
		BaseFareFlat:      250,
		BaseFarePerKm:     24,
		BaseFarePerMinute: 4,
		MinimumFare:       1200,
		Status:            models.VehicleStatusActive,
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	vehicleRepo := repos.NewVehicleRepository(db.Database)

	ctx := context.Background()
	for _, vehicle := range vehicles {
		if err := vehicleRepo.Upsert(ctx, vehicle); err != nil {
			log.Fatalf("Failed to seed vehicle %s: %v", vehicle.ID, err)
		}
		log.Printf("Seeded vehicle %s (%s)", vehicle.ID, vehicle.Name)
	}

	log.Printf("Seeded %d vehicles", len(vehicles))
}
