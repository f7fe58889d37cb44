package db

import (
	"database/sql"
	"time"
)

// Spot categories shared by parking_spots.spot_type and bookings.plan_type.
const (
	SpotTypeNormal     = "normal"
	SpotTypeVIP        = "vip"
	SpotTypeEVCharging = "ev_charging"
)

const (
	BookingStatusActive    = "active"
	BookingStatusCompleted = "completed"
)

type ParkingSpot struct {
	ID         int       `json:"id"`
	SpotNumber string    `json:"spot_number"`
	SpotType   string    `json:"spot_type"`
	IsOccupied bool      `json:"is_occupied"`
	FloorLevel int       `json:"floor_level"`
	Section    string    `json:"section"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Booking struct {
	ID            string       `json:"id"`
	UserName      string       `json:"user_name"`
	ContactNumber string       `json:"contact_number"`
	Email         string       `json:"email"`
	VehicleType   string       `json:"vehicle_type"`
	VehicleNumber string       `json:"vehicle_number"`
	SpotID        int          `json:"spot_id"`
	PlanType      string       `json:"plan_type"`
	PaymentMethod string       `json:"payment_method"`
	PaymentAmount int          `json:"payment_amount"`
	EntryTime     time.Time    `json:"entry_time"`
	ExitTime      sql.NullTime `json:"-"`
	Status        string       `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

type OTPCode struct {
	ID          int
	PhoneNumber string
	CodeHash    string
	ExpiresAt   time.Time
	Consumed    bool
	CreatedAt   time.Time
}
