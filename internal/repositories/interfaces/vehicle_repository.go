package interfaces

import (
	"context"

	"cabgo/internal/models"
)

type VehicleRepository interface {
	// GetByID reads one rate card. Returns ErrNotFound when absent.
	// Never cached: pricing always reflects the stored rate card.
	GetByID(ctx context.Context, id string) (*models.Vehicle, error)

	// ListActive returns every active rate card ordered by creation
	// time ascending.
	ListActive(ctx context.Context) ([]*models.Vehicle, error)

	// Upsert writes a rate card by its slug id, preserving the original
	// creation timestamp on re-seeding. Used by the out-of-band seeder.
	Upsert(ctx context.Context, vehicle *models.Vehicle) error
}
