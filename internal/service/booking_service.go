package service

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/google/uuid"

	"parkvue/internal/db"
	"parkvue/internal/entities"
	"parkvue/internal/repository"
	"parkvue/internal/utils"
)

var (
	contactPattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidationError marks malformed user input caught before any store call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type BookingService struct {
	Repo          repository.BookingRepository
	SpotRepo      repository.SpotRepository
	stripeService *StripeService
}

func NewBookingService(repo repository.BookingRepository, spotRepo repository.SpotRepository, stripeService *StripeService) *BookingService {
	return &BookingService{Repo: repo, SpotRepo: spotRepo, stripeService: stripeService}
}

func validateBookingRequest(req *entities.BookingRequest) error {
	if req.UserName == "" {
		return &ValidationError{Field: "user_name", Message: "name is required"}
	}
	if !contactPattern.MatchString(req.ContactNumber) {
		return &ValidationError{Field: "contact_number", Message: "contact number must be 10 digits"}
	}
	if !emailPattern.MatchString(req.Email) {
		return &ValidationError{Field: "email", Message: "invalid email address"}
	}
	if utils.NormalizePlate(req.VehicleNumber) == "" {
		return &ValidationError{Field: "vehicle_number", Message: "vehicle number is required"}
	}
	switch req.VehicleType {
	case "2wheeler", "3wheeler", "4wheeler":
	default:
		return &ValidationError{Field: "vehicle_type", Message: "vehicle type must be 2wheeler, 3wheeler or 4wheeler"}
	}
	switch req.PaymentMethod {
	case "card", "online":
	default:
		return &ValidationError{Field: "payment_method", Message: "payment method must be card or online"}
	}
	return nil
}

// CreateBooking validates the request, claims a free spot of the requested
// plan category and persists the booking, all within one repository
// transaction. The paid amount always comes from the server-side plan table.
func (s *BookingService) CreateBooking(ctx context.Context, req *entities.BookingRequest) (*entities.BookingResponse, error) {
	if err := validateBookingRequest(req); err != nil {
		return nil, err
	}
	plan, err := PlanByType(req.PlanType)
	if err != nil {
		return nil, &ValidationError{Field: "plan_type", Message: err.Error()}
	}

	booking := &db.Booking{
		ID:            uuid.NewString(),
		UserName:      req.UserName,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		VehicleType:   req.VehicleType,
		VehicleNumber: utils.NormalizePlate(req.VehicleNumber),
		PlanType:      plan.Type,
		PaymentMethod: req.PaymentMethod,
		PaymentAmount: plan.Price,
		EntryTime:     time.Now().UTC(),
		Status:        db.BookingStatusActive,
	}

	spot, err := s.Repo.CreateWithSpot(ctx, booking)
	if err != nil {
		return nil, err
	}

	resp := entities.NewBookingResponse(booking, spot)
	if req.PaymentMethod == "online" && s.stripeService != nil {
		url, err := s.stripeService.CreateCheckoutSession(int64(plan.Price)*100, "inr",
			fmt.Sprintf("Parking booking %s (%s)", booking.ID, plan.Name), booking.Email)
		if err != nil {
			// The spot is already held; the kiosk falls back to on-site payment.
			log.Printf("Could not create checkout session for booking %s: %v", booking.ID, err)
		} else {
			resp.PaymentURL = url
		}
	}
	return resp, nil
}

// VerifyExit locates the active booking for the exit screen without touching it.
func (s *BookingService) VerifyExit(ctx context.Context, req *entities.ExitRequest) (*entities.BookingResponse, error) {
	if req.ContactNumber == "" || req.VehicleNumber == "" {
		return nil, &ValidationError{Field: "exit", Message: "contact number and vehicle number are required"}
	}
	booking, spot, err := s.Repo.FindActive(ctx, req.ContactNumber, utils.NormalizePlate(req.VehicleNumber))
	if err != nil {
		return nil, err
	}
	return entities.NewBookingResponse(booking, spot), nil
}

// Exit completes the booking and frees its spot in one transaction.
func (s *BookingService) Exit(ctx context.Context, req *entities.ExitRequest) (*entities.BookingResponse, error) {
	if req.ContactNumber == "" || req.VehicleNumber == "" {
		return nil, &ValidationError{Field: "exit", Message: "contact number and vehicle number are required"}
	}
	booking, spot, err := s.Repo.Release(ctx, req.ContactNumber, utils.NormalizePlate(req.VehicleNumber), time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return entities.NewBookingResponse(booking, spot), nil
}

func (s *BookingService) GetBooking(ctx context.Context, id string) (*entities.BookingResponse, error) {
	booking, spot, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return entities.NewBookingResponse(booking, spot), nil
}

func (s *BookingService) ListSpots(ctx context.Context, onlyAvailable bool, spotType string) ([]db.ParkingSpot, error) {
	return s.SpotRepo.ListSpots(ctx, onlyAvailable, spotType)
}
