package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"parkvue/internal/entities"
	"parkvue/internal/service"
)

type UserBookingHandler struct {
	Service        *service.BookingService
	ReceiptService *service.ReceiptService
}

func NewUserBookingHandler(svc *service.BookingService, receiptSvc *service.ReceiptService) *UserBookingHandler {
	return &UserBookingHandler{Service: svc, ReceiptService: receiptSvc}
}

// ListSpots backs the entry-screen counters and the plan availability view.
func (h *UserBookingHandler) ListSpots(w http.ResponseWriter, r *http.Request) {
	onlyAvailable := r.URL.Query().Get("available") == "true"
	spotType := r.URL.Query().Get("type")
	spots, err := h.Service.ListSpots(r.Context(), onlyAvailable, spotType)
	if err != nil {
		log.Printf("Error listing spots: %v", err)
		http.Error(w, "Could not list parking spots", http.StatusInternalServerError)
		return
	}
	writeJSON(w, spots)
}

func (h *UserBookingHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, service.ListPlans())
}

func (h *UserBookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req entities.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	booking, err := h.Service.CreateBooking(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, booking)
}

func (h *UserBookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	booking, err := h.Service.GetBooking(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, booking)
}

// VerifyExit is the read-only first step of the exit flow.
func (h *UserBookingHandler) VerifyExit(w http.ResponseWriter, r *http.Request) {
	var req entities.ExitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	booking, err := h.Service.VerifyExit(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, booking)
}

// Exit completes the booking and frees the spot.
func (h *UserBookingHandler) Exit(w http.ResponseWriter, r *http.Request) {
	var req entities.ExitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	booking, err := h.Service.Exit(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, booking)
}

// SendReceipt emails the PDF receipt for a booking. The recipient defaults to
// the email on the booking.
func (h *UserBookingHandler) SendReceipt(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req SendReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	booking, err := h.Service.GetBooking(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	recipient := req.RecipientEmail
	if recipient == "" {
		recipient = booking.Email
	}
	if err := h.ReceiptService.EmailReceipt(booking, recipient); err != nil {
		log.Printf("Error building receipt for booking %s: %v", id, err)
		http.Error(w, "Could not generate receipt", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"message": "Receipt sent"})
}
