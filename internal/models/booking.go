package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status is the booking lifecycle state. "pending" and "confirmed" occupy
// the vehicle; "cancelled" and "completed" release it.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Occupies reports whether a booking in this status reserves its vehicle.
func (s Status) Occupies() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Releases reports whether a booking in this status frees its vehicle.
func (s Status) Releases() bool {
	return s == StatusCancelled || s == StatusCompleted
}

type Booking struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user" json:"userId"`
	VehicleID primitive.ObjectID `bson:"vehicle" json:"vehicleId"`
	StartDate time.Time          `bson:"startDate" json:"startDate"`
	EndDate   time.Time          `bson:"endDate" json:"endDate"`
	// TotalAmount is computed once at creation (days x pricePerDay) and is
	// never recomputed, even when the status changes afterwards.
	TotalAmount float64   `bson:"totalAmount" json:"totalAmount"`
	Status      Status    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// BookingDetails is a booking with its referenced user and vehicle resolved
// for display. Dangling references are substituted with placeholders.
type BookingDetails struct {
	Booking
	Vehicle VehicleSummary `json:"vehicle"`
	User    UserSummary    `json:"user"`
}
