package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"parkvue/internal/db"
	"parkvue/internal/entities"
)

var (
	// ErrNoSpotAvailable means no free spot of the requested category exists.
	ErrNoSpotAvailable = errors.New("no spot available for requested category")
	// ErrBookingNotFound means no active booking matched the given identifiers.
	ErrBookingNotFound = errors.New("booking not found")
)

// BookingWithSpot joins a booking row with its parking spot for admin views.
type BookingWithSpot struct {
	Booking db.Booking
	Spot    db.ParkingSpot
}

type BookingRepository interface {
	CreateWithSpot(ctx context.Context, booking *db.Booking) (*db.ParkingSpot, error)
	GetByID(ctx context.Context, id string) (*db.Booking, *db.ParkingSpot, error)
	FindActive(ctx context.Context, contactNumber, vehicleNumber string) (*db.Booking, *db.ParkingSpot, error)
	Release(ctx context.Context, contactNumber, vehicleNumber string, exitTime time.Time) (*db.Booking, *db.ParkingSpot, error)
	ListWithSpots(ctx context.Context) ([]BookingWithSpot, error)
	Stats(ctx context.Context) (*entities.StatsResponse, error)
	Reset(ctx context.Context) error
}

type bookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) BookingRepository {
	return &bookingRepository{DB: database}
}

const bookingColumns = `id, user_name, contact_number, email, vehicle_type, vehicle_number,
	spot_id, plan_type, payment_method, payment_amount, entry_time, exit_time, status, created_at, updated_at`

const spotColumns = `id, spot_number, spot_type, is_occupied, floor_level, section, created_at, updated_at`

// CreateWithSpot claims one free spot of booking.PlanType and inserts the
// booking row in a single transaction. The free spot with the lowest id wins;
// FOR UPDATE SKIP LOCKED keeps two concurrent kiosks from claiming the same
// row. Rolling back on any failure frees the spot again, so a failed insert
// never strands an occupied spot.
func (r *bookingRepository) CreateWithSpot(ctx context.Context, booking *db.Booking) (*db.ParkingSpot, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error starting booking transaction: %w", err)
	}
	defer tx.Rollback()

	var spot db.ParkingSpot
	err = tx.QueryRowContext(ctx, `
		SELECT `+spotColumns+`
		FROM parking_spots
		WHERE spot_type = $1 AND NOT is_occupied
		ORDER BY id
		LIMIT 1
		FOR UPDATE SKIP LOCKED`, booking.PlanType).Scan(
		&spot.ID, &spot.SpotNumber, &spot.SpotType, &spot.IsOccupied,
		&spot.FloorLevel, &spot.Section, &spot.CreatedAt, &spot.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoSpotAvailable
		}
		return nil, fmt.Errorf("error selecting free spot: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE parking_spots SET is_occupied = TRUE, updated_at = NOW() WHERE id = $1`, spot.ID)
	if err != nil {
		return nil, fmt.Errorf("error marking spot %d occupied: %w", spot.ID, err)
	}

	booking.SpotID = spot.ID
	err = tx.QueryRowContext(ctx, `
		INSERT INTO bookings
		(id, user_name, contact_number, email, vehicle_type, vehicle_number, spot_id, plan_type, payment_method, payment_amount, entry_time, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`,
		booking.ID,
		booking.UserName,
		booking.ContactNumber,
		booking.Email,
		booking.VehicleType,
		booking.VehicleNumber,
		booking.SpotID,
		booking.PlanType,
		booking.PaymentMethod,
		booking.PaymentAmount,
		booking.EntryTime,
		booking.Status,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("error inserting booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing booking transaction: %w", err)
	}

	spot.IsOccupied = true
	return &spot, nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*db.Booking, *db.ParkingSpot, error) {
	return r.queryOne(ctx, `WHERE b.id = $1`, id)
}

// FindActive looks up the unique active booking for the given contact number
// and (already upper-cased) vehicle number without mutating anything.
func (r *bookingRepository) FindActive(ctx context.Context, contactNumber, vehicleNumber string) (*db.Booking, *db.ParkingSpot, error) {
	return r.queryOne(ctx,
		`WHERE b.contact_number = $1 AND b.vehicle_number = $2 AND b.status = 'active'`,
		contactNumber, vehicleNumber)
}

func (r *bookingRepository) queryOne(ctx context.Context, where string, args ...interface{}) (*db.Booking, *db.ParkingSpot, error) {
	query := `
		SELECT b.id, b.user_name, b.contact_number, b.email, b.vehicle_type, b.vehicle_number,
			b.spot_id, b.plan_type, b.payment_method, b.payment_amount, b.entry_time, b.exit_time,
			b.status, b.created_at, b.updated_at,
			s.id, s.spot_number, s.spot_type, s.is_occupied, s.floor_level, s.section, s.created_at, s.updated_at
		FROM bookings b
		JOIN parking_spots s ON s.id = b.spot_id ` + where

	var booking db.Booking
	var spot db.ParkingSpot
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID, &booking.UserName, &booking.ContactNumber, &booking.Email, &booking.VehicleType,
		&booking.VehicleNumber, &booking.SpotID, &booking.PlanType, &booking.PaymentMethod,
		&booking.PaymentAmount, &booking.EntryTime, &booking.ExitTime, &booking.Status,
		&booking.CreatedAt, &booking.UpdatedAt,
		&spot.ID, &spot.SpotNumber, &spot.SpotType, &spot.IsOccupied,
		&spot.FloorLevel, &spot.Section, &spot.CreatedAt, &spot.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrBookingNotFound
		}
		return nil, nil, fmt.Errorf("error querying booking: %w", err)
	}
	return &booking, &spot, nil
}

// Release completes the active booking matching the identifiers and frees its
// spot. Both mutations run in one transaction so a completed booking can never
// leave its spot stranded as occupied.
func (r *bookingRepository) Release(ctx context.Context, contactNumber, vehicleNumber string, exitTime time.Time) (*db.Booking, *db.ParkingSpot, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("error starting release transaction: %w", err)
	}
	defer tx.Rollback()

	var booking db.Booking
	err = tx.QueryRowContext(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE contact_number = $1 AND vehicle_number = $2 AND status = 'active'
		FOR UPDATE`, contactNumber, vehicleNumber).Scan(
		&booking.ID, &booking.UserName, &booking.ContactNumber, &booking.Email, &booking.VehicleType,
		&booking.VehicleNumber, &booking.SpotID, &booking.PlanType, &booking.PaymentMethod,
		&booking.PaymentAmount, &booking.EntryTime, &booking.ExitTime, &booking.Status,
		&booking.CreatedAt, &booking.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrBookingNotFound
		}
		return nil, nil, fmt.Errorf("error locking active booking: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE bookings SET status = 'completed', exit_time = $2, updated_at = NOW()
		WHERE id = $1`, booking.ID, exitTime)
	if err != nil {
		return nil, nil, fmt.Errorf("error completing booking %s: %w", booking.ID, err)
	}

	var spot db.ParkingSpot
	err = tx.QueryRowContext(ctx, `
		UPDATE parking_spots SET is_occupied = FALSE, updated_at = NOW()
		WHERE id = $1
		RETURNING `+spotColumns, booking.SpotID).Scan(
		&spot.ID, &spot.SpotNumber, &spot.SpotType, &spot.IsOccupied,
		&spot.FloorLevel, &spot.Section, &spot.CreatedAt, &spot.UpdatedAt,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("error freeing spot %d: %w", booking.SpotID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("error committing release transaction: %w", err)
	}

	booking.Status = db.BookingStatusCompleted
	booking.ExitTime = sql.NullTime{Time: exitTime, Valid: true}
	return &booking, &spot, nil
}

func (r *bookingRepository) ListWithSpots(ctx context.Context) ([]BookingWithSpot, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT b.id, b.user_name, b.contact_number, b.email, b.vehicle_type, b.vehicle_number,
			b.spot_id, b.plan_type, b.payment_method, b.payment_amount, b.entry_time, b.exit_time,
			b.status, b.created_at, b.updated_at,
			s.id, s.spot_number, s.spot_type, s.is_occupied, s.floor_level, s.section, s.created_at, s.updated_at
		FROM bookings b
		JOIN parking_spots s ON s.id = b.spot_id
		ORDER BY b.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	defer rows.Close()

	var result []BookingWithSpot
	for rows.Next() {
		var bs BookingWithSpot
		err := rows.Scan(
			&bs.Booking.ID, &bs.Booking.UserName, &bs.Booking.ContactNumber, &bs.Booking.Email,
			&bs.Booking.VehicleType, &bs.Booking.VehicleNumber, &bs.Booking.SpotID, &bs.Booking.PlanType,
			&bs.Booking.PaymentMethod, &bs.Booking.PaymentAmount, &bs.Booking.EntryTime, &bs.Booking.ExitTime,
			&bs.Booking.Status, &bs.Booking.CreatedAt, &bs.Booking.UpdatedAt,
			&bs.Spot.ID, &bs.Spot.SpotNumber, &bs.Spot.SpotType, &bs.Spot.IsOccupied,
			&bs.Spot.FloorLevel, &bs.Spot.Section, &bs.Spot.CreatedAt, &bs.Spot.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking row: %w", err)
		}
		result = append(result, bs)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating booking rows: %w", err)
	}
	return result, nil
}

// Stats computes the dashboard rollups. Revenue sums payment_amount over all
// bookings, completed ones included.
func (r *bookingRepository) Stats(ctx context.Context) (*entities.StatsResponse, error) {
	var stats entities.StatsResponse
	err := r.DB.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM parking_spots),
			(SELECT COUNT(*) FROM parking_spots WHERE is_occupied),
			(SELECT COUNT(*) FROM bookings WHERE status = 'active'),
			(SELECT COALESCE(SUM(payment_amount), 0) FROM bookings)`).Scan(
		&stats.TotalSpots, &stats.OccupiedSpots, &stats.ActiveBookings, &stats.TotalRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("error computing stats: %w", err)
	}
	stats.AvailableSpots = stats.TotalSpots - stats.OccupiedSpots
	return &stats, nil
}

// Reset frees every spot and deletes every booking in one transaction.
func (r *bookingRepository) Reset(ctx context.Context) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting reset transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE parking_spots SET is_occupied = FALSE, updated_at = NOW()`); err != nil {
		return fmt.Errorf("error freeing spots during reset: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM bookings`); err != nil {
		return fmt.Errorf("error deleting bookings during reset: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing reset transaction: %w", err)
	}
	return nil
}
