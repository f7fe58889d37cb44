package service

import (
	"context"
	"log"
	"time"

	"parkvue/internal/repository"
)

type JobService struct {
	OTPRepo repository.OTPRepository
}

func NewJobService(otpRepo repository.OTPRepository) *JobService {
	return &JobService{OTPRepo: otpRepo}
}

// PurgeStaleOTPs deletes consumed and expired otp rows. Runs hourly from the
// cron scheduler in main.
func (s *JobService) PurgeStaleOTPs() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := s.OTPRepo.DeleteStale(ctx, time.Now().UTC())
	if err != nil {
		log.Printf("Cron Job: failed to purge stale otp codes: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("Cron Job: purged %d stale otp codes", deleted)
	}
}
