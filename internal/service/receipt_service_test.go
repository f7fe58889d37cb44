package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkvue/internal/entities"
)

func TestBuildReceiptPDF(t *testing.T) {
	store := newFakeStore(testSpots()...)
	bookingSvc := newTestBookingService(store)

	booking, err := bookingSvc.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)

	svc := NewReceiptService()
	pdfBytes, err := svc.BuildReceiptPDF(booking)
	require.NoError(t, err)
	assert.True(t, len(pdfBytes) > 500)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}

func TestBuildReceiptPDFUnknownPlan(t *testing.T) {
	svc := NewReceiptService()
	_, err := svc.BuildReceiptPDF(&entities.BookingResponse{PlanType: "platinum"})
	require.Error(t, err)
}
