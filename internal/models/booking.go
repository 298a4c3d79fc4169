package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cabgo/internal/pricing"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

// Every booking starts at not_started; later values are written by the
// payment collaborator, never by this service.
const (
	PaymentStatusNotStarted PaymentStatus = "not_started"
)

// Booking is a persisted request to use a vehicle. Amount is always the
// pricing-engine output for the rate card and metrics stored on the same
// record; callers can never supply it. ID and timestamps are assigned by
// the repository at write time.
type Booking struct {
	ID                   primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID               string             `json:"userId" bson:"user_id" validate:"required"`
	VehicleID            string             `json:"vehicleId" bson:"vehicle_id" validate:"required"`
	PickupAddress        string             `json:"pickupAddress" bson:"pickup_address" validate:"required"`
	DropAddress          string             `json:"dropAddress" bson:"drop_address" validate:"required"`
	DistanceKm           float64            `json:"distanceKm" bson:"distance_km"`
	DurationMinutes      float64            `json:"durationMinutes" bson:"duration_minutes"`
	Amount               int64              `json:"amount" bson:"amount"`
	Currency             string             `json:"currency" bson:"currency"`
	Status               BookingStatus      `json:"status" bson:"status" default:"pending"`
	PaymentStatus        PaymentStatus      `json:"paymentStatus" bson:"payment_status" default:"not_started"`
	PaymentOrderID       *string            `json:"paymentOrderId" bson:"payment_order_id"`
	PaymentTransactionID *string            `json:"paymentTransactionId" bson:"payment_transaction_id"`
	CreatedAt            time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt            time.Time          `json:"updatedAt" bson:"updated_at"`
}

// BookingInput is a fully validated booking/quote request: addresses and
// vehicle id trimmed and non-empty, metrics positive and finite.
type BookingInput struct {
	VehicleID     string
	PickupAddress string
	DropAddress   string
	Metrics       pricing.TripMetrics
}

// QuoteResult is the read-only price preview for a booking request.
type QuoteResult struct {
	Amount   int64          `json:"amount"`
	Currency string         `json:"currency"`
	Vehicle  VehicleSummary `json:"vehicle"`
}

// BookingReceipt is what createBooking returns to the caller.
type BookingReceipt struct {
	BookingID string        `json:"bookingId"`
	Amount    int64         `json:"amount"`
	Currency  string        `json:"currency"`
	Status    BookingStatus `json:"status"`
}
