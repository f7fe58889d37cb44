package entities

import (
	"parkvue/internal/db"
	"time"
)

// BookingResponse is what the kiosk renders on the receipt and exit screens.
type BookingResponse struct {
	ID            string          `json:"id"`
	UserName      string          `json:"user_name"`
	ContactNumber string          `json:"contact_number"`
	Email         string          `json:"email"`
	VehicleType   string          `json:"vehicle_type"`
	VehicleNumber string          `json:"vehicle_number"`
	SpotID        int             `json:"spot_id"`
	PlanType      string          `json:"plan_type"`
	PaymentMethod string          `json:"payment_method"`
	PaymentAmount int             `json:"payment_amount"`
	EntryTime     time.Time       `json:"entry_time"`
	ExitTime      *time.Time      `json:"exit_time,omitempty"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	Spot          *db.ParkingSpot `json:"spot,omitempty"`
	PaymentURL    string          `json:"payment_url,omitempty"`
}

func NewBookingResponse(b *db.Booking, spot *db.ParkingSpot) *BookingResponse {
	resp := &BookingResponse{
		ID:            b.ID,
		UserName:      b.UserName,
		ContactNumber: b.ContactNumber,
		Email:         b.Email,
		VehicleType:   b.VehicleType,
		VehicleNumber: b.VehicleNumber,
		SpotID:        b.SpotID,
		PlanType:      b.PlanType,
		PaymentMethod: b.PaymentMethod,
		PaymentAmount: b.PaymentAmount,
		EntryTime:     b.EntryTime,
		Status:        b.Status,
		CreatedAt:     b.CreatedAt,
		Spot:          spot,
	}
	if b.ExitTime.Valid {
		t := b.ExitTime.Time
		resp.ExitTime = &t
	}
	return resp
}
