package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"bajaj-rental-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// memStore is an in-memory Store for tests. It honors the same contract as
// the Mongo implementation: mongo.ErrNoDocuments for absent documents and
// ErrVehicleTaken for a lost reservation race.
type memStore struct {
	mu       sync.Mutex
	users    map[primitive.ObjectID]models.User
	vehicles map[primitive.ObjectID]models.Vehicle
	bookings map[primitive.ObjectID]models.Booking

	insertBookingErr error // forced failure for rollback tests
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[primitive.ObjectID]models.User),
		vehicles: make(map[primitive.ObjectID]models.Vehicle),
		bookings: make(map[primitive.ObjectID]models.Booking),
	}
}

func (m *memStore) addUser(u models.User) primitive.ObjectID {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	m.users[u.ID] = u
	return u.ID
}

func (m *memStore) addVehicle(v models.Vehicle) primitive.ObjectID {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v.ID.IsZero() {
		v.ID = primitive.NewObjectID()
	}
	m.vehicles[v.ID] = v
	return v.ID
}

func (m *memStore) vehicle(id primitive.ObjectID) models.Vehicle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vehicles[id]
}

func (m *memStore) booking(id primitive.ObjectID) (models.Booking, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	return b, ok
}

func (m *memStore) occupyingCount(vehicleID primitive.ObjectID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, b := range m.bookings {
		if b.VehicleID == vehicleID && b.Status.Occupies() {
			n++
		}
	}
	return n
}

func (m *memStore) FindUser(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &u, nil
}

func (m *memStore) FindVehicle(_ context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vehicles[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &v, nil
}

func (m *memStore) ListAvailableVehicles(_ context.Context) ([]models.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Vehicle
	for _, v := range m.vehicles {
		if v.IsAvailable {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memStore) ReserveVehicle(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vehicles[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if !v.IsAvailable {
		return ErrVehicleTaken
	}
	v.IsAvailable = false
	m.vehicles[id] = v
	return nil
}

func (m *memStore) ReleaseVehicle(_ context.Context, id primitive.ObjectID) error {
	return m.setAvailability(id, true)
}

func (m *memStore) OccupyVehicle(_ context.Context, id primitive.ObjectID) error {
	return m.setAvailability(id, false)
}

func (m *memStore) setAvailability(id primitive.ObjectID, available bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vehicles[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	v.IsAvailable = available
	m.vehicles[id] = v
	return nil
}

func (m *memStore) InsertBooking(_ context.Context, b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertBookingErr != nil {
		return m.insertBookingErr
	}
	b.ID = primitive.NewObjectID()
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	m.bookings[b.ID] = *b
	return nil
}

func (m *memStore) FindBooking(_ context.Context, id primitive.ObjectID) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &b, nil
}

func (m *memStore) UpdateBookingStatus(_ context.Context, id primitive.ObjectID, status models.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	b.Status = status
	b.UpdatedAt = time.Now()
	m.bookings[id] = b
	return nil
}

func (m *memStore) DeleteBooking(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(m.bookings, id)
	return nil
}

func (m *memStore) ListBookingsByUser(_ context.Context, userID primitive.ObjectID) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (m *memStore) ListAllBookings(_ context.Context) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Booking, 0, len(m.bookings))
	for _, b := range m.bookings {
		out = append(out, b)
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(bookings []models.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
}
