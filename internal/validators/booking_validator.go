package validators

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"cabgo/internal/models"
	"cabgo/internal/pricing"
)

// ErrInvalidBookingRequest wraps every booking-payload validation failure.
var ErrInvalidBookingRequest = errors.New("invalid booking request")

// Numeric accepts both JSON numbers and numeric strings, since clients
// are allowed to send metrics either way. Anything that does not parse
// as a number decodes to NaN, so the metrics validation rejects it with
// the proper field message rather than a decode error.
type Numeric float64

func (n *Numeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) == 0 || string(data) == "null" {
		*n = Numeric(math.NaN())
		return nil
	}

	s := string(data)
	if s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			*n = Numeric(math.NaN())
			return nil
		}
		s = strings.TrimSpace(unquoted)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*n = Numeric(math.NaN())
		return nil
	}

	*n = Numeric(f)
	return nil
}

// BookingRequest is the raw createBooking/quote payload before any
// validation has happened.
type BookingRequest struct {
	VehicleID       string  `json:"vehicleId"`
	PickupAddress   string  `json:"pickupAddress"`
	DropAddress     string  `json:"dropAddress"`
	DistanceKm      Numeric `json:"distanceKm"`
	DurationMinutes Numeric `json:"durationMinutes"`
}

// ParseBookingRequest decodes and validates a raw request body. The rest
// of the pipeline only ever sees the validated BookingInput it returns.
func ParseBookingRequest(body []byte) (*models.BookingInput, error) {
	var req BookingRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidBookingRequest, unmarshalMessage(err))
	}

	return ValidateBookingRequest(&req)
}

// ValidateBookingRequest trims the text fields, requires all of them, and
// runs the metrics through the pricing engine's validation.
func ValidateBookingRequest(req *BookingRequest) (*models.BookingInput, error) {
	vehicleID := strings.TrimSpace(req.VehicleID)
	pickupAddress := strings.TrimSpace(req.PickupAddress)
	dropAddress := strings.TrimSpace(req.DropAddress)

	if vehicleID == "" || pickupAddress == "" || dropAddress == "" {
		return nil, fmt.Errorf("%w: vehicleId, pickupAddress and dropAddress are required",
			ErrInvalidBookingRequest)
	}

	// Already classified by pricing.ErrInvalidMetrics; propagate as-is.
	metrics, err := pricing.ValidateMetrics(float64(req.DistanceKm), float64(req.DurationMinutes))
	if err != nil {
		return nil, err
	}

	return &models.BookingInput{
		VehicleID:     vehicleID,
		PickupAddress: pickupAddress,
		DropAddress:   dropAddress,
		Metrics:       metrics,
	}, nil
}

// unmarshalMessage keeps field-level decode errors readable instead of
// leaking encoding/json type names to clients.
func unmarshalMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return typeErr.Field + " is invalid"
	}
	return "malformed JSON body"
}
