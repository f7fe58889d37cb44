package entities

// DetectionResult carries what the vision model read off a vehicle image.
// VehicleType is always populated, falling back to 4wheeler when the model
// cannot classify the vehicle.
type DetectionResult struct {
	Success     bool   `json:"success"`
	NumberPlate string `json:"number_plate,omitempty"`
	VehicleType string `json:"vehicle_type"`
	Error       string `json:"error,omitempty"`
}
