package entities

type BookingRequest struct {
	UserName      string `json:"user_name"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`
	VehicleType   string `json:"vehicle_type"`
	VehicleNumber string `json:"vehicle_number"`
	PlanType      string `json:"plan_type"`
	PaymentMethod string `json:"payment_method"`
}

type ExitRequest struct {
	ContactNumber string `json:"contact_number"`
	VehicleNumber string `json:"vehicle_number"`
}
