package booking

import (
	"context"
	"errors"

	"bajaj-rental-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrVehicleTaken is returned by Store.ReserveVehicle when the conditional
// update found isAvailable already false, i.e. another booking won the race.
var ErrVehicleTaken = errors.New("vehicle already reserved")

// Store is the persistence contract the booking service runs against.
// Absent documents are signaled with mongo.ErrNoDocuments, matching the
// driver the production implementation is built on.
type Store interface {
	FindUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)

	FindVehicle(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error)
	ListAvailableVehicles(ctx context.Context) ([]models.Vehicle, error)
	// ReserveVehicle atomically flips isAvailable from true to false. It is
	// the single compare-and-set that serializes competing creates for one
	// vehicle: ErrVehicleTaken when the flag was already false,
	// mongo.ErrNoDocuments when the vehicle is gone.
	ReserveVehicle(ctx context.Context, id primitive.ObjectID) error
	// ReleaseVehicle sets isAvailable to true unconditionally.
	ReleaseVehicle(ctx context.Context, id primitive.ObjectID) error
	// OccupyVehicle sets isAvailable to false unconditionally. Used when a
	// booking that already holds the vehicle is confirmed.
	OccupyVehicle(ctx context.Context, id primitive.ObjectID) error

	InsertBooking(ctx context.Context, b *models.Booking) error
	FindBooking(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id primitive.ObjectID, status models.Status) error
	DeleteBooking(ctx context.Context, id primitive.ObjectID) error
	ListBookingsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Booking, error)
	ListAllBookings(ctx context.Context) ([]models.Booking, error)
}
