package interfaces

import (
	"context"

	"cabgo/internal/models"
)

type BookingRepository interface {
	// Create persists a fresh booking, assigning its id and the
	// created/updated timestamps. Bookings are never deleted here;
	// later status/payment mutation belongs to the payment flow.
	Create(ctx context.Context, booking *models.Booking) error
}
