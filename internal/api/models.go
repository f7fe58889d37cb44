package api

// OTP
type SendOTPRequest struct {
	PhoneNumber string `json:"phone_number"`
}
type VerifyOTPRequest struct {
	PhoneNumber string `json:"phone_number"`
	OTP         string `json:"otp"`
}

// Plate detection
type DetectPlateRequest struct {
	ImageBase64 string `json:"image_base64"`
}

// Receipt
type SendReceiptRequest struct {
	RecipientEmail string `json:"recipient_email"`
}
