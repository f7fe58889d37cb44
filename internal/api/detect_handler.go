package api

import (
	"encoding/json"
	"log"
	"net/http"

	"parkvue/internal/service"
)

type DetectHandler struct {
	Service *service.DetectService
}

func NewDetectHandler(svc *service.DetectService) *DetectHandler {
	return &DetectHandler{Service: svc}
}

// DetectPlate reads the plate and vehicle type off an uploaded vehicle image.
// A failed detection still carries the fallback vehicle type so the form can
// pre-select it.
func (h *DetectHandler) DetectPlate(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		http.Error(w, "Plate detection is not configured", http.StatusServiceUnavailable)
		return
	}
	var req DetectPlateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.ImageBase64 == "" {
		http.Error(w, "Image data is required", http.StatusBadRequest)
		return
	}
	result, err := h.Service.DetectPlate(r.Context(), req.ImageBase64)
	if err != nil {
		log.Printf("Error detecting number plate: %v", err)
		http.Error(w, "Failed to detect number plate", http.StatusBadGateway)
		return
	}
	if !result.Success {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(result)
		return
	}
	writeJSON(w, result)
}
