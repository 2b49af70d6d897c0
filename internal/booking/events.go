package booking

import "bajaj-rental-api-server/internal/models"

// Event types pushed to connected admin clients.
const (
	EventCreated       = "booking_created"
	EventStatusChanged = "booking_status_changed"
	EventDeleted       = "booking_deleted"
)

type Event struct {
	Type    string                 `json:"type"`
	Booking *models.BookingDetails `json:"booking,omitempty"`
	ID      string                 `json:"id"`
}

// EventSink receives booking lifecycle events. Delivery is best-effort; the
// service never fails an operation because a sink could not be notified.
type EventSink interface {
	Publish(event Event)
}
