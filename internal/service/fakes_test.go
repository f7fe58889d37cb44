package service

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"parkvue/internal/db"
	"parkvue/internal/entities"
	"parkvue/internal/repository"
)

// fakeStore is an in-memory stand-in for the booking and spot repositories.
// It mirrors the row-locking semantics of the real store: spot claims are
// serialized under one mutex, so two concurrent claims can never win the same
// spot.
type fakeStore struct {
	mu       sync.Mutex
	spots    map[int]*db.ParkingSpot
	bookings map[string]*db.Booking
}

func newFakeStore(spots ...db.ParkingSpot) *fakeStore {
	s := &fakeStore{
		spots:    make(map[int]*db.ParkingSpot),
		bookings: make(map[string]*db.Booking),
	}
	for i := range spots {
		spot := spots[i]
		s.spots[spot.ID] = &spot
	}
	return s
}

func (s *fakeStore) CreateWithSpot(ctx context.Context, booking *db.Booking) (*db.ParkingSpot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int, 0, len(s.spots))
	for id := range s.spots {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		spot := s.spots[id]
		if spot.SpotType == booking.PlanType && !spot.IsOccupied {
			spot.IsOccupied = true
			booking.SpotID = spot.ID
			booking.CreatedAt = time.Now().UTC()
			booking.UpdatedAt = booking.CreatedAt
			copied := *booking
			s.bookings[booking.ID] = &copied
			result := *spot
			return &result, nil
		}
	}
	return nil, repository.ErrNoSpotAvailable
}

func (s *fakeStore) GetByID(ctx context.Context, id string) (*db.Booking, *db.ParkingSpot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, nil, repository.ErrBookingNotFound
	}
	booking := *b
	spot := *s.spots[b.SpotID]
	return &booking, &spot, nil
}

func (s *fakeStore) FindActive(ctx context.Context, contactNumber, vehicleNumber string) (*db.Booking, *db.ParkingSpot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.findActiveLocked(contactNumber, vehicleNumber)
	if b == nil {
		return nil, nil, repository.ErrBookingNotFound
	}
	booking := *b
	spot := *s.spots[b.SpotID]
	return &booking, &spot, nil
}

func (s *fakeStore) Release(ctx context.Context, contactNumber, vehicleNumber string, exitTime time.Time) (*db.Booking, *db.ParkingSpot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.findActiveLocked(contactNumber, vehicleNumber)
	if b == nil {
		return nil, nil, repository.ErrBookingNotFound
	}
	b.Status = db.BookingStatusCompleted
	b.ExitTime = sql.NullTime{Time: exitTime, Valid: true}
	b.UpdatedAt = exitTime
	s.spots[b.SpotID].IsOccupied = false

	booking := *b
	spot := *s.spots[b.SpotID]
	return &booking, &spot, nil
}

func (s *fakeStore) findActiveLocked(contactNumber, vehicleNumber string) *db.Booking {
	for _, b := range s.bookings {
		if b.ContactNumber == contactNumber && b.VehicleNumber == vehicleNumber && b.Status == db.BookingStatusActive {
			return b
		}
	}
	return nil
}

func (s *fakeStore) ListWithSpots(ctx context.Context) ([]repository.BookingWithSpot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []repository.BookingWithSpot
	for _, b := range s.bookings {
		result = append(result, repository.BookingWithSpot{Booking: *b, Spot: *s.spots[b.SpotID]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Booking.CreatedAt.After(result[j].Booking.CreatedAt)
	})
	return result, nil
}

func (s *fakeStore) Stats(ctx context.Context) (*entities.StatsResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := &entities.StatsResponse{TotalSpots: len(s.spots)}
	for _, spot := range s.spots {
		if spot.IsOccupied {
			stats.OccupiedSpots++
		}
	}
	stats.AvailableSpots = stats.TotalSpots - stats.OccupiedSpots
	for _, b := range s.bookings {
		if b.Status == db.BookingStatusActive {
			stats.ActiveBookings++
		}
		stats.TotalRevenue += b.PaymentAmount
	}
	return stats, nil
}

func (s *fakeStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, spot := range s.spots {
		spot.IsOccupied = false
	}
	s.bookings = make(map[string]*db.Booking)
	return nil
}

func (s *fakeStore) ListSpots(ctx context.Context, onlyAvailable bool, spotType string) ([]db.ParkingSpot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var spots []db.ParkingSpot
	for _, spot := range s.spots {
		if onlyAvailable && spot.IsOccupied {
			continue
		}
		if spotType != "" && spot.SpotType != spotType {
			continue
		}
		spots = append(spots, *spot)
	}
	sort.Slice(spots, func(i, j int) bool { return spots[i].SpotNumber < spots[j].SpotNumber })
	return spots, nil
}

// fakeOTPStore is an in-memory repository.OTPRepository.
type fakeOTPStore struct {
	mu     sync.Mutex
	nextID int
	codes  []*db.OTPCode
}

func newFakeOTPStore() *fakeOTPStore {
	return &fakeOTPStore{nextID: 1}
}

func (s *fakeOTPStore) Create(ctx context.Context, code *db.OTPCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	code.ID = s.nextID
	s.nextID++
	code.CreatedAt = time.Now().UTC()
	copied := *code
	s.codes = append(s.codes, &copied)
	return nil
}

func (s *fakeOTPStore) LatestActive(ctx context.Context, phoneNumber string, now time.Time) (*db.OTPCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.codes) - 1; i >= 0; i-- {
		c := s.codes[i]
		if c.PhoneNumber == phoneNumber && !c.Consumed && c.ExpiresAt.After(now) {
			copied := *c
			return &copied, nil
		}
	}
	return nil, repository.ErrOTPNotFound
}

func (s *fakeOTPStore) MarkConsumed(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.codes {
		if c.ID == id {
			c.Consumed = true
			return nil
		}
	}
	return nil
}

func (s *fakeOTPStore) DeleteStale(ctx context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var kept []*db.OTPCode
	var deleted int64
	for _, c := range s.codes {
		if c.Consumed || !c.ExpiresAt.After(now) {
			deleted++
			continue
		}
		kept = append(kept, c)
	}
	s.codes = kept
	return deleted, nil
}

// expire backdates every stored code, simulating the passage of time.
func (s *fakeOTPStore) expire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.codes {
		c.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	}
}
