package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"parkvue/internal/db"
	"parkvue/internal/repository"
)

const otpExpiry = 5 * time.Minute

// devOTPCode is the fixed code used when OTP_DEV_MODE=true and no SMS is sent.
const devOTPCode = "123456"

var (
	ErrInvalidOTP = errors.New("invalid otp code")
	ErrOTPExpired = errors.New("otp expired or not issued")
)

type OTPService struct {
	Repo repository.OTPRepository
}

func NewOTPService(repo repository.OTPRepository) *OTPService {
	return &OTPService{Repo: repo}
}

// generateOTP creates a 6-digit random code (100000 to 999999).
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("crypto rand failed: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func devMode() bool {
	return os.Getenv("OTP_DEV_MODE") == "true"
}

// Send issues a time-boxed single-use code for the phone number. Only the
// bcrypt hash is stored; the plain code goes out over SMS and is never
// returned to the caller.
func (s *OTPService) Send(ctx context.Context, phoneNumber string) error {
	if !contactPattern.MatchString(phoneNumber) {
		return &ValidationError{Field: "phone_number", Message: "phone number must be 10 digits"}
	}

	code := devOTPCode
	if !devMode() {
		var err error
		code, err = generateOTP()
		if err != nil {
			return err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing otp code: %w", err)
	}

	otp := &db.OTPCode{
		PhoneNumber: phoneNumber,
		CodeHash:    string(hash),
		ExpiresAt:   time.Now().UTC().Add(otpExpiry),
	}
	if err := s.Repo.Create(ctx, otp); err != nil {
		return err
	}

	if devMode() {
		log.Printf("DEV MODE: using fixed OTP for %s, skipping SMS", phoneNumber)
		return nil
	}

	message := fmt.Sprintf("Your PARKVUE OTP is %s. Valid for 5 minutes.", code)
	if err := SendSMS("+91"+phoneNumber, message); err != nil {
		return fmt.Errorf("error delivering otp sms: %w", err)
	}
	return nil
}

// Verify checks the submitted code against the latest live one for the phone
// number and consumes it on success so it cannot be replayed.
func (s *OTPService) Verify(ctx context.Context, phoneNumber, code string) error {
	otp, err := s.Repo.LatestActive(ctx, phoneNumber, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrOTPNotFound) {
			return ErrOTPExpired
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(otp.CodeHash), []byte(code)) != nil {
		return ErrInvalidOTP
	}
	if err := s.Repo.MarkConsumed(ctx, otp.ID); err != nil {
		return err
	}
	return nil
}
