package models

import (
	"time"
)

type VehicleStatus string

const (
	VehicleStatusActive   VehicleStatus = "active"
	VehicleStatusInactive VehicleStatus = "inactive"
)

type VehicleType string

const (
	VehicleTypeHatchback VehicleType = "hatchback"
	VehicleTypeSedan     VehicleType = "sedan"
	VehicleTypeSUV       VehicleType = "suv"
	VehicleTypePremium   VehicleType = "premium"
)

// Vehicle is the per-vehicle rate card. Records are created by the
// out-of-band seeder (cmd/seed) and keyed by a stable slug identifier.
// All fare parameters are non-negative; MinimumFare is a floor on the
// computed total, not a component of it.
type Vehicle struct {
	ID                string        `json:"id" bson:"_id"`
	Name              string        `json:"name" bson:"name" validate:"required"`
	Type              VehicleType   `json:"type" bson:"type" validate:"required"`
	Capacity          int           `json:"capacity" bson:"capacity" validate:"required"`
	BaseFareFlat      float64       `json:"baseFareFlat" bson:"base_fare_flat"`
	BaseFarePerKm     float64       `json:"baseFarePerKm" bson:"base_fare_per_km"`
	BaseFarePerMinute float64       `json:"baseFarePerMinute" bson:"base_fare_per_minute"`
	MinimumFare       float64       `json:"minimumFare" bson:"minimum_fare"`
	Status            VehicleStatus `json:"status" bson:"status" default:"inactive"`
	CreatedAt         time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt         time.Time     `json:"updatedAt" bson:"updated_at"`
}

// VehicleSummary is the subset of the rate card echoed back on quotes.
type VehicleSummary struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Type VehicleType `json:"type"`
}

func (v *Vehicle) Summary() VehicleSummary {
	return VehicleSummary{ID: v.ID, Name: v.Name, Type: v.Type}
}
