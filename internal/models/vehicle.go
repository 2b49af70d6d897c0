package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlaceholderImage is served when a vehicle was created without a photo.
const PlaceholderImage = "/placeholder.svg?height=300&width=400"

type Vehicle struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Model              string             `bson:"model" json:"model"`
	RegistrationNumber string             `bson:"registrationNumber" json:"registrationNumber"`
	PricePerDay        float64            `bson:"pricePerDay" json:"pricePerDay"`
	// IsAvailable is derived state: it mirrors "no booking in an occupying
	// status references this vehicle". After creation it is written only by
	// the booking service, never by catalog updates.
	IsAvailable bool      `bson:"isAvailable" json:"isAvailable"`
	Image       string    `bson:"image" json:"image"`
	Description string    `bson:"description" json:"description"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// VehicleSummary is the subset of Vehicle attached to a booking for display.
type VehicleSummary struct {
	ID                 string  `bson:"id" json:"id"`
	Model              string  `bson:"model" json:"model"`
	RegistrationNumber string  `bson:"registrationNumber" json:"registrationNumber"`
	PricePerDay        float64 `bson:"pricePerDay" json:"pricePerDay"`
	Image              string  `bson:"image" json:"image"`
}

// DeletedVehicleSummary stands in for a vehicle document that no longer
// exists, so bookings that outlive their vehicle still render.
func DeletedVehicleSummary() VehicleSummary {
	return VehicleSummary{
		ID:                 "deleted",
		Model:              "Deleted Vehicle",
		RegistrationNumber: "N/A",
		PricePerDay:        0,
		Image:              PlaceholderImage,
	}
}

func (v *Vehicle) Summary() VehicleSummary {
	return VehicleSummary{
		ID:                 v.ID.Hex(),
		Model:              v.Model,
		RegistrationNumber: v.RegistrationNumber,
		PricePerDay:        v.PricePerDay,
		Image:              v.Image,
	}
}
