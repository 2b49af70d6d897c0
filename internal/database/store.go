package database

import (
	"context"
	"time"

	"bajaj-rental-api-server/internal/booking"
	"bajaj-rental-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store implements booking.Store on top of MongoDB.
type Store struct {
	DB *mongo.Database
}

var _ booking.Store = (*Store)(nil)

func NewStore(db *mongo.Database) *Store {
	return &Store{DB: db}
}

func (s *Store) users() *mongo.Collection    { return s.DB.Collection("users") }
func (s *Store) vehicles() *mongo.Collection { return s.DB.Collection("vehicles") }
func (s *Store) bookings() *mongo.Collection { return s.DB.Collection("bookings") }

func (s *Store) FindUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := s.users().FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) FindVehicle(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := s.vehicles().FindOne(ctx, bson.M{"_id": id}).Decode(&vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (s *Store) ListAvailableVehicles(ctx context.Context) ([]models.Vehicle, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.vehicles().Find(ctx, bson.M{"isAvailable": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var vehicles []models.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// ReserveVehicle is the compare-and-set that prevents double-booking: the
// update matches only while isAvailable is still true, so of any number of
// concurrent reservations for one vehicle exactly one can succeed.
func (s *Store) ReserveVehicle(ctx context.Context, id primitive.ObjectID) error {
	err := s.vehicles().FindOneAndUpdate(ctx,
		bson.M{"_id": id, "isAvailable": true},
		bson.M{"$set": bson.M{"isAvailable": false, "updatedAt": time.Now()}},
	).Err()
	if err == mongo.ErrNoDocuments {
		// Either the vehicle is gone or the flag was already false; find out
		// which so the service can report a precise failure.
		count, countErr := s.vehicles().CountDocuments(ctx, bson.M{"_id": id})
		if countErr == nil && count > 0 {
			return booking.ErrVehicleTaken
		}
		return mongo.ErrNoDocuments
	}
	return err
}

func (s *Store) ReleaseVehicle(ctx context.Context, id primitive.ObjectID) error {
	return s.setAvailability(ctx, id, true)
}

func (s *Store) OccupyVehicle(ctx context.Context, id primitive.ObjectID) error {
	return s.setAvailability(ctx, id, false)
}

func (s *Store) setAvailability(ctx context.Context, id primitive.ObjectID, available bool) error {
	result, err := s.vehicles().UpdateByID(ctx, id,
		bson.M{"$set": bson.M{"isAvailable": available, "updatedAt": time.Now()}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *Store) InsertBooking(ctx context.Context, b *models.Booking) error {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	result, err := s.bookings().InsertOne(ctx, b)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		b.ID = oid
	}
	return nil
}

func (s *Store) FindBooking(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	var b models.Booking
	if err := s.bookings().FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Store) UpdateBookingStatus(ctx context.Context, id primitive.ObjectID, status models.Status) error {
	result, err := s.bookings().UpdateByID(ctx, id,
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *Store) DeleteBooking(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.bookings().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *Store) ListBookingsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Booking, error) {
	return s.findBookings(ctx, bson.M{"user": userID})
}

func (s *Store) ListAllBookings(ctx context.Context) ([]models.Booking, error) {
	return s.findBookings(ctx, bson.M{})
}

func (s *Store) findBookings(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.bookings().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
