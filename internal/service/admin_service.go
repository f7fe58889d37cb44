package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"parkvue/internal/entities"
	"parkvue/internal/repository"
	"parkvue/internal/utils"
)

var csvHeaders = []string{
	"Name",
	"Arriving Time",
	"Contact No",
	"Email ID",
	"Vehicle Type",
	"Vehicle Number",
	"Parking Type",
	"Payment Details",
	"Exit Time",
}

type AdminService struct {
	Repo repository.BookingRepository
}

func NewAdminService(repo repository.BookingRepository) *AdminService {
	return &AdminService{Repo: repo}
}

func (s *AdminService) ComputeStats(ctx context.Context) (*entities.StatsResponse, error) {
	return s.Repo.Stats(ctx)
}

func (s *AdminService) ListBookings(ctx context.Context) ([]*entities.BookingResponse, error) {
	rows, err := s.Repo.ListWithSpots(ctx)
	if err != nil {
		return nil, err
	}
	bookings := make([]*entities.BookingResponse, 0, len(rows))
	for i := range rows {
		bookings = append(bookings, entities.NewBookingResponse(&rows[i].Booking, &rows[i].Spot))
	}
	return bookings, nil
}

func (s *AdminService) ResetSystem(ctx context.Context) error {
	return s.Repo.Reset(ctx)
}

// ExportCSV renders every booking in the dashboard's fixed column order.
func (s *AdminService) ExportCSV(ctx context.Context) ([]byte, error) {
	rows, err := s.Repo.ListWithSpots(ctx)
	if err != nil {
		return nil, err
	}

	indiaLoc, errLoc := time.LoadLocation("Asia/Kolkata")
	if errLoc != nil {
		indiaLoc = time.FixedZone("IST", 5*60*60+30*60)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeaders); err != nil {
		return nil, fmt.Errorf("error writing csv header: %w", err)
	}

	for i := range rows {
		b := rows[i].Booking
		exitTime := "NOT_EXITED"
		if b.ExitTime.Valid {
			exitTime = b.ExitTime.Time.In(indiaLoc).Format("02/01/2006, 15:04:05")
		}
		record := []string{
			b.UserName,
			b.EntryTime.In(indiaLoc).Format("02/01/2006, 15:04:05"),
			b.ContactNumber,
			b.Email,
			utils.VehicleTypeLabel(b.VehicleType),
			b.VehicleNumber,
			b.PlanType,
			fmt.Sprintf("%s - ₹%d", b.PaymentMethod, b.PaymentAmount),
			exitTime,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("error writing csv record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("error flushing csv: %w", err)
	}
	return buf.Bytes(), nil
}
