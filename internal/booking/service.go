package booking

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"bajaj-rental-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Service is the sole writer of booking state. It owns the invariant that a
// vehicle's isAvailable flag always mirrors "no pending or confirmed booking
// references this vehicle", including under concurrent creates.
type Service struct {
	store  Store
	events EventSink
	now    func() time.Time
}

// New builds a booking service on top of a store. events may be nil.
func New(store Store, events EventSink) *Service {
	return &Service{
		store:  store,
		events: events,
		now:    time.Now,
	}
}

// Create reserves vehicleID for userID over [start, end) and inserts the
// resulting booking with status pending.
//
// Validation short-circuits in this order: missing vehicle, vehicle not
// available, bad dates. The reservation itself is a compare-and-set on the
// availability flag, so of two concurrent creates for the same vehicle
// exactly one wins; the loser gets a conflict even though its initial read
// saw the vehicle available.
func (s *Service) Create(ctx context.Context, userID, vehicleID primitive.ObjectID, start, end time.Time) (*models.BookingDetails, error) {
	vehicle, err := s.store.FindVehicle(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, E(KindNotFound, "vehicle not found")
		}
		return nil, Wrap(KindInternal, "failed to load vehicle", err)
	}

	if !vehicle.IsAvailable {
		return nil, E(KindConflict, "vehicle is not available")
	}

	today := startOfDay(s.now())
	if startOfDay(start).Before(today) {
		return nil, E(KindInvalidInput, "start date cannot be in the past")
	}
	if !end.After(start) {
		return nil, E(KindInvalidInput, "end date must be after start date")
	}

	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	totalAmount := float64(days) * vehicle.PricePerDay

	// The availability check above is advisory only; this conditional update
	// is what actually decides the race.
	if err := s.store.ReserveVehicle(ctx, vehicleID); err != nil {
		if errors.Is(err, ErrVehicleTaken) || errors.Is(err, mongo.ErrNoDocuments) {
			return nil, E(KindConflict, "vehicle is not available")
		}
		return nil, Wrap(KindInternal, "failed to reserve vehicle", err)
	}

	b := &models.Booking{
		UserID:      userID,
		VehicleID:   vehicleID,
		StartDate:   start,
		EndDate:     end,
		TotalAmount: totalAmount,
		Status:      models.StatusPending,
	}
	if err := s.store.InsertBooking(ctx, b); err != nil {
		// Roll the flag back so a failed insert does not strand the vehicle
		// in an occupied state with no booking to account for it.
		if relErr := s.store.ReleaseVehicle(ctx, vehicleID); relErr != nil {
			log.Printf("failed to release vehicle %s after booking insert error: %v", vehicleID.Hex(), relErr)
		}
		return nil, Wrap(KindInternal, "failed to create booking", err)
	}

	details := s.resolve(ctx, b)
	s.publish(Event{Type: EventCreated, Booking: details, ID: b.ID.Hex()})
	return details, nil
}

// SetStatus moves bookingID to newStatus and re-derives the vehicle's
// availability from it: confirmed occupies, cancelled and completed release,
// pending leaves the flag alone. Allowed for admins and the booking's owner.
// The total amount is never recomputed.
func (s *Service) SetStatus(ctx context.Context, bookingID, callerID primitive.ObjectID, callerRole string, newStatus models.Status) (*models.BookingDetails, error) {
	if !newStatus.IsValid() {
		return nil, E(KindInvalidInput, "invalid status")
	}

	b, err := s.store.FindBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, E(KindNotFound, "booking not found")
		}
		return nil, Wrap(KindInternal, "failed to load booking", err)
	}

	if callerRole != models.RoleAdmin && b.UserID != callerID {
		return nil, E(KindForbidden, "access denied")
	}

	if err := s.store.UpdateBookingStatus(ctx, bookingID, newStatus); err != nil {
		return nil, Wrap(KindInternal, "failed to update booking status", err)
	}
	b.Status = newStatus
	b.UpdatedAt = s.now()

	switch {
	case newStatus == models.StatusConfirmed:
		err = s.store.OccupyVehicle(ctx, b.VehicleID)
	case newStatus.Releases():
		err = s.store.ReleaseVehicle(ctx, b.VehicleID)
	}
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, Wrap(KindInternal, "failed to update vehicle availability", err)
	}

	details := s.resolve(ctx, b)
	s.publish(Event{Type: EventStatusChanged, Booking: details, ID: b.ID.Hex()})
	return details, nil
}

// Delete removes a booking outright. Admin only. The vehicle is released
// unconditionally first, whatever status the booking was in, so a deleted
// occupying booking cannot leave its vehicle stuck unavailable.
func (s *Service) Delete(ctx context.Context, bookingID primitive.ObjectID, callerRole string) error {
	if callerRole != models.RoleAdmin {
		return E(KindForbidden, "admin role required")
	}

	b, err := s.store.FindBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return E(KindNotFound, "booking not found")
		}
		return Wrap(KindInternal, "failed to load booking", err)
	}

	if err := s.store.ReleaseVehicle(ctx, b.VehicleID); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return Wrap(KindInternal, "failed to release vehicle", err)
	}

	if err := s.store.DeleteBooking(ctx, bookingID); err != nil {
		return Wrap(KindInternal, "failed to delete booking", err)
	}

	s.publish(Event{Type: EventDeleted, ID: bookingID.Hex()})
	return nil
}

// ListAvailable returns all vehicles currently bookable.
func (s *Service) ListAvailable(ctx context.Context) ([]models.Vehicle, error) {
	vehicles, err := s.store.ListAvailableVehicles(ctx)
	if err != nil {
		return nil, Wrap(KindInternal, "failed to list available vehicles", err)
	}
	return vehicles, nil
}

// ListByUser returns userID's bookings, newest first, with display summaries.
func (s *Service) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.BookingDetails, error) {
	bookings, err := s.store.ListBookingsByUser(ctx, userID)
	if err != nil {
		return nil, Wrap(KindInternal, "failed to list bookings", err)
	}
	return s.resolveAll(ctx, bookings), nil
}

// ListAll returns every booking with display summaries. Admin only.
func (s *Service) ListAll(ctx context.Context, callerRole string) ([]models.BookingDetails, error) {
	if callerRole != models.RoleAdmin {
		return nil, E(KindForbidden, "admin role required")
	}
	bookings, err := s.store.ListAllBookings(ctx)
	if err != nil {
		return nil, Wrap(KindInternal, "failed to list bookings", err)
	}
	return s.resolveAll(ctx, bookings), nil
}

// resolve attaches user and vehicle summaries to a booking. A dangling
// reference yields a placeholder instead of failing the whole read.
func (s *Service) resolve(ctx context.Context, b *models.Booking) *models.BookingDetails {
	details := &models.BookingDetails{
		Booking: *b,
		Vehicle: models.DeletedVehicleSummary(),
		User:    models.DeletedUserSummary(),
	}
	if vehicle, err := s.store.FindVehicle(ctx, b.VehicleID); err == nil {
		details.Vehicle = vehicle.Summary()
	}
	if user, err := s.store.FindUser(ctx, b.UserID); err == nil {
		details.User = user.Summary()
	}
	return details
}

func (s *Service) resolveAll(ctx context.Context, bookings []models.Booking) []models.BookingDetails {
	details := make([]models.BookingDetails, 0, len(bookings))
	for i := range bookings {
		details = append(details, *s.resolve(ctx, &bookings[i]))
	}
	return details
}

func (s *Service) publish(e Event) {
	if s.events != nil {
		s.events.Publish(e)
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
