package service

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"parkvue/internal/entities"
)

// serviceCharge is the convenience fee shown on receipts. It is applied at
// display time only and never stored on the booking.
const serviceCharge = 10

type ReceiptService struct{}

func NewReceiptService() *ReceiptService {
	return &ReceiptService{}
}

// BuildReceiptPDF renders the parking receipt: booking details, parking
// location, timing and the payment summary with the convenience fee.
func (s *ReceiptService) BuildReceiptPDF(booking *entities.BookingResponse) ([]byte, error) {
	plan, err := PlanByType(booking.PlanType)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 15, 20)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(pageWidth-40, 12, "PARKING RECEIPT", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(pageWidth-40, 6, "PARKVUE Smart Parking", "", 1, "C", false, 0, "")
	pdf.Ln(8)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
	}
	line := func(format string, args ...interface{}) {
		pdf.CellFormat(0, 6, fmt.Sprintf(format, args...), "", 1, "L", false, 0, "")
	}

	section("Booking Details")
	line("Booking ID: %s", booking.ID)
	line("Date: %s", booking.CreatedAt.Format("02 Jan 2006"))
	line("Status: %s", strings.ToUpper(booking.Status))
	line("Name: %s", booking.UserName)
	line("Vehicle: %s (%s)", booking.VehicleNumber, booking.VehicleType)
	pdf.Ln(6)

	if booking.Spot != nil {
		section("Parking Location")
		line("Spot Number: %s", booking.Spot.SpotNumber)
		line("Floor: %d", booking.Spot.FloorLevel)
		line("Section: %s", booking.Spot.Section)
		line("Type: %s", plan.Name)
		pdf.Ln(6)
	}

	section("Timing Details")
	line("Entry Time: %s", booking.EntryTime.Format("02 Jan 2006 15:04"))
	if booking.ExitTime != nil {
		line("Exit Time: %s", booking.ExitTime.Format("02 Jan 2006 15:04"))
	}
	pdf.Ln(6)

	section("Payment Summary")
	line("Plan: %s", plan.Name)
	line("Amount: Rs. %d", booking.PaymentAmount)
	line("Convenience Fee: Rs. %d", serviceCharge)
	pdf.SetFont("Helvetica", "B", 11)
	line("Total Paid: Rs. %d (%s)", booking.PaymentAmount+serviceCharge, booking.PaymentMethod)

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, "Thank you for choosing PARKVUE.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("error rendering receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// EmailReceipt renders the PDF and mails it asynchronously, the same way the
// reservation emails went out in the kiosk's predecessor.
func (s *ReceiptService) EmailReceipt(booking *entities.BookingResponse, recipientEmail string) error {
	pdfBytes, err := s.BuildReceiptPDF(booking)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Your PARKVUE parking receipt - Booking %s", booking.ID)
	plainBody := fmt.Sprintf(
		"Hello %s,\n\nYour parking receipt is attached.\n\n"+
			"Booking ID: %s\n"+
			"Vehicle: %s\n"+
			"Entry: %s\n"+
			"Total Paid: Rs. %d\n\n"+
			"Thank you for choosing PARKVUE.",
		booking.UserName, booking.ID, booking.VehicleNumber,
		booking.EntryTime.Format("02 Jan 2006 15:04"),
		booking.PaymentAmount+serviceCharge,
	)

	go func() {
		filename := fmt.Sprintf("parkvue-receipt-%s.pdf", booking.ID)
		if err := SendEmailWithSendGrid(recipientEmail, booking.UserName, subject, plainBody, "", pdfBytes, filename); err != nil {
			log.Printf("ALERT (async): receipt email for booking %s failed: %v", booking.ID, err)
		}
	}()
	return nil
}
