package service

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkvue/internal/db"
	"parkvue/internal/entities"
)

func TestStatsIdempotent(t *testing.T) {
	store := newFakeStore(testSpots()...)
	bookingSvc := newTestBookingService(store)
	adminSvc := NewAdminService(store)

	_, err := bookingSvc.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)

	first, err := adminSvc.ComputeStats(context.Background())
	require.NoError(t, err)
	second, err := adminSvc.ComputeStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestStatsCounts(t *testing.T) {
	store := newFakeStore(testSpots()...)
	bookingSvc := newTestBookingService(store)
	adminSvc := NewAdminService(store)

	req := validRequest()
	req.PlanType = db.SpotTypeVIP
	_, err := bookingSvc.CreateBooking(context.Background(), req)
	require.NoError(t, err)

	stats, err := adminSvc.ComputeStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalSpots)
	assert.Equal(t, 1, stats.OccupiedSpots)
	assert.Equal(t, 3, stats.AvailableSpots)
	assert.Equal(t, 1, stats.ActiveBookings)
	assert.Equal(t, 120, stats.TotalRevenue)
}

func TestResetClearsEverything(t *testing.T) {
	store := newFakeStore(testSpots()...)
	bookingSvc := newTestBookingService(store)
	adminSvc := NewAdminService(store)

	_, err := bookingSvc.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)

	require.NoError(t, adminSvc.ResetSystem(context.Background()))

	stats, err := adminSvc.ComputeStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.OccupiedSpots)
	assert.Equal(t, 0, stats.ActiveBookings)
	assert.Equal(t, 0, stats.TotalRevenue)

	bookings, err := adminSvc.ListBookings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestExportCSVColumnOrder(t *testing.T) {
	store := newFakeStore(testSpots()...)
	bookingSvc := newTestBookingService(store)
	adminSvc := NewAdminService(store)

	req := validRequest()
	req.UserName = "Asha"
	req.VehicleType = "2wheeler"
	_, err := bookingSvc.CreateBooking(context.Background(), req)
	require.NoError(t, err)

	data, err := adminSvc.ExportCSV(context.Background())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{
		"Name", "Arriving Time", "Contact No", "Email ID", "Vehicle Type",
		"Vehicle Number", "Parking Type", "Payment Details", "Exit Time",
	}, records[0])

	row := records[1]
	assert.Equal(t, "Asha", row[0])
	assert.Equal(t, "9999999999", row[2])
	assert.Equal(t, "a@a.com", row[3])
	assert.Equal(t, "2-Wheeler", row[4])
	assert.Equal(t, "MH12AB1234", row[5])
	assert.Equal(t, "normal", row[6])
	assert.Equal(t, "card - ₹50", row[7])
	assert.Equal(t, "NOT_EXITED", row[8])
}

func TestExportCSVCompletedBookingHasExitTime(t *testing.T) {
	store := newFakeStore(testSpots()...)
	bookingSvc := newTestBookingService(store)
	adminSvc := NewAdminService(store)

	_, err := bookingSvc.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)
	_, err = bookingSvc.Exit(context.Background(), &entities.ExitRequest{
		ContactNumber: "9999999999", VehicleNumber: "MH12AB1234",
	})
	require.NoError(t, err)

	data, err := adminSvc.ExportCSV(context.Background())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.NotEqual(t, "NOT_EXITED", records[1][8])
}
