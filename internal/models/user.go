package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles. There is no role hierarchy; "admin" simply unlocks the
// catalog-management and all-bookings endpoints.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"` // bcrypt hash, never serialized
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserSummary is the subset of User attached to a booking for display.
type UserSummary struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
}

// DeletedUserSummary stands in for a user document that no longer exists.
// List views must keep rendering bookings whose owner account was removed.
func DeletedUserSummary() UserSummary {
	return UserSummary{
		ID:    "deleted",
		Name:  "Deleted User",
		Email: "N/A",
	}
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
	}
}
