package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"parkvue/internal/db"
)

// ErrOTPNotFound means no live OTP exists for the phone number.
var ErrOTPNotFound = errors.New("no active otp for phone number")

type OTPRepository interface {
	Create(ctx context.Context, code *db.OTPCode) error
	LatestActive(ctx context.Context, phoneNumber string, now time.Time) (*db.OTPCode, error)
	MarkConsumed(ctx context.Context, id int) error
	DeleteStale(ctx context.Context, now time.Time) (int64, error)
}

type otpRepository struct {
	DB *sql.DB
}

func NewOTPRepository(database *sql.DB) OTPRepository {
	return &otpRepository{DB: database}
}

func (r *otpRepository) Create(ctx context.Context, code *db.OTPCode) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO otp_codes (phone_number, code_hash, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		code.PhoneNumber, code.CodeHash, code.ExpiresAt,
	).Scan(&code.ID, &code.CreatedAt)
	if err != nil {
		return fmt.Errorf("error storing otp code: %w", err)
	}
	return nil
}

// LatestActive returns the most recently issued unconsumed, unexpired code
// for the phone number. Older codes are superseded by a resend.
func (r *otpRepository) LatestActive(ctx context.Context, phoneNumber string, now time.Time) (*db.OTPCode, error) {
	var code db.OTPCode
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, phone_number, code_hash, expires_at, consumed, created_at
		FROM otp_codes
		WHERE phone_number = $1 AND NOT consumed AND expires_at > $2
		ORDER BY created_at DESC
		LIMIT 1`, phoneNumber, now).Scan(
		&code.ID, &code.PhoneNumber, &code.CodeHash, &code.ExpiresAt, &code.Consumed, &code.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOTPNotFound
		}
		return nil, fmt.Errorf("error querying otp code: %w", err)
	}
	return &code, nil
}

func (r *otpRepository) MarkConsumed(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE otp_codes SET consumed = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error consuming otp code %d: %w", id, err)
	}
	return nil
}

func (r *otpRepository) DeleteStale(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM otp_codes WHERE consumed OR expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("error deleting stale otp codes: %w", err)
	}
	return result.RowsAffected()
}
