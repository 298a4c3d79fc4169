package services

import (
	"context"
	"errors"
	"fmt"

	"cabgo/internal/models"
	"cabgo/internal/pricing"
	"cabgo/internal/repositories/interfaces"
	"cabgo/pkg/identity"
	"cabgo/pkg/logger"
)

// BookingService is the quote-and-book orchestrator: it resolves the
// vehicle, prices the trip and (for CreateBooking) persists the record.
type BookingService interface {
	// Quote prices a validated request without persisting anything. It
	// shares the full pricing path with CreateBooking, so both produce
	// identical amounts for identical inputs and vehicle state.
	Quote(ctx context.Context, input *models.BookingInput) (*models.QuoteResult, error)

	// CreateBooking prices a validated request and persists a pending
	// booking owned by the verified caller.
	CreateBooking(ctx context.Context, ident *identity.Identity, input *models.BookingInput) (*models.BookingReceipt, error)

	// ListActiveVehicles returns the active rate cards in creation order.
	ListActiveVehicles(ctx context.Context) ([]*models.Vehicle, error)
}

type bookingService struct {
	vehicleRepo interfaces.VehicleRepository
	bookingRepo interfaces.BookingRepository
	currency    string
	logger      *logger.Logger
}

func NewBookingService(
	vehicleRepo interfaces.VehicleRepository,
	bookingRepo interfaces.BookingRepository,
	currency string,
	logger *logger.Logger,
) BookingService {
	return &bookingService{
		vehicleRepo: vehicleRepo,
		bookingRepo: bookingRepo,
		currency:    currency,
		logger:      logger,
	}
}

func (s *bookingService) Quote(ctx context.Context, input *models.BookingInput) (*models.QuoteResult, error) {
	vehicle, amount, err := s.priceRequest(ctx, input)
	if err != nil {
		return nil, err
	}

	return &models.QuoteResult{
		Amount:   amount,
		Currency: s.currency,
		Vehicle:  vehicle.Summary(),
	}, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, ident *identity.Identity, input *models.BookingInput) (*models.BookingReceipt, error) {
	vehicle, amount, err := s.priceRequest(ctx, input)
	if err != nil {
		return nil, err
	}

	// Owner comes from the verified identity, never from the body, and
	// the amount is always this service's own pricing output.
	booking := &models.Booking{
		UserID:          ident.UID,
		VehicleID:       vehicle.ID,
		PickupAddress:   input.PickupAddress,
		DropAddress:     input.DropAddress,
		DistanceKm:      input.Metrics.DistanceKm,
		DurationMinutes: input.Metrics.DurationMinutes,
		Amount:          amount,
		Currency:        s.currency,
		Status:          models.BookingStatusPending,
		PaymentStatus:   models.PaymentStatusNotStarted,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"booking_id": booking.ID.Hex(),
		"uid":        ident.UID,
		"vehicle_id": vehicle.ID,
		"amount":     amount,
	}).Info("Booking created")

	return &models.BookingReceipt{
		BookingID: booking.ID.Hex(),
		Amount:    amount,
		Currency:  s.currency,
		Status:    booking.Status,
	}, nil
}

func (s *bookingService) ListActiveVehicles(ctx context.Context) ([]*models.Vehicle, error) {
	return s.vehicleRepo.ListActive(ctx)
}

// priceRequest runs steps shared by Quote and CreateBooking: resolve the
// active vehicle, then price the validated metrics against its fare.
func (s *bookingService) priceRequest(ctx context.Context, input *models.BookingInput) (*models.Vehicle, int64, error) {
	vehicle, err := s.resolveActiveVehicle(ctx, input.VehicleID)
	if err != nil {
		return nil, 0, err
	}

	amount, err := pricing.Amount(vehicleFare(vehicle), input.Metrics)
	if err != nil {
		return nil, 0, err
	}

	return vehicle, amount, nil
}

// resolveActiveVehicle re-reads the store on every call; rate cards are
// never cached so a quote can never be computed from a stale fare.
func (s *bookingService) resolveActiveVehicle(ctx context.Context, vehicleID string) (*models.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to resolve vehicle %s: %w", vehicleID, err)
	}

	if vehicle.Status != models.VehicleStatusActive {
		return nil, ErrVehicleInactive
	}

	return vehicle, nil
}

func vehicleFare(v *models.Vehicle) pricing.Fare {
	return pricing.Fare{
		Flat:      v.BaseFareFlat,
		PerKm:     v.BaseFarePerKm,
		PerMinute: v.BaseFarePerMinute,
		Minimum:   v.MinimumFare,
	}
}
