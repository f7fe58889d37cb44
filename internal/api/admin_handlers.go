package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"parkvue/internal/service"
)

type AdminHandler struct {
	Service *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.ComputeStats(r.Context())
	if err != nil {
		log.Printf("Error computing stats: %v", err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, stats)
}

func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Service.ListBookings(r.Context())
	if err != nil {
		log.Printf("Error listing bookings: %v", err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, bookings)
}

// ResetSystem frees every spot and deletes every booking in one transaction.
func (h *AdminHandler) ResetSystem(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.ResetSystem(r.Context()); err != nil {
		log.Printf("Error resetting system: %v", err)
		http.Error(w, "Could not reset the parking system", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"message": "All bookings cleared and parking spots are now available"})
}

func (h *AdminHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.ExportCSV(r.Context())
	if err != nil {
		log.Printf("Error exporting bookings: %v", err)
		http.Error(w, "Could not export booking data", http.StatusInternalServerError)
		return
	}
	filename := fmt.Sprintf("parking-data-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Write(data)
}
