package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPhone = "9999999999"

func TestOTPSendAndVerify(t *testing.T) {
	t.Setenv("OTP_DEV_MODE", "true")
	store := newFakeOTPStore()
	svc := NewOTPService(store)

	require.NoError(t, svc.Send(context.Background(), testPhone))
	require.NoError(t, svc.Verify(context.Background(), testPhone, devOTPCode))
}

func TestOTPWrongCode(t *testing.T) {
	t.Setenv("OTP_DEV_MODE", "true")
	store := newFakeOTPStore()
	svc := NewOTPService(store)

	require.NoError(t, svc.Send(context.Background(), testPhone))
	err := svc.Verify(context.Background(), testPhone, "000000")
	require.ErrorIs(t, err, ErrInvalidOTP)

	// Failed attempts do not consume the code.
	require.NoError(t, svc.Verify(context.Background(), testPhone, devOTPCode))
}

func TestOTPSingleUse(t *testing.T) {
	t.Setenv("OTP_DEV_MODE", "true")
	store := newFakeOTPStore()
	svc := NewOTPService(store)

	require.NoError(t, svc.Send(context.Background(), testPhone))
	require.NoError(t, svc.Verify(context.Background(), testPhone, devOTPCode))

	err := svc.Verify(context.Background(), testPhone, devOTPCode)
	require.ErrorIs(t, err, ErrOTPExpired)
}

func TestOTPExpiry(t *testing.T) {
	t.Setenv("OTP_DEV_MODE", "true")
	store := newFakeOTPStore()
	svc := NewOTPService(store)

	require.NoError(t, svc.Send(context.Background(), testPhone))
	store.expire()

	err := svc.Verify(context.Background(), testPhone, devOTPCode)
	require.ErrorIs(t, err, ErrOTPExpired)
}

func TestOTPVerifyWithoutSend(t *testing.T) {
	store := newFakeOTPStore()
	svc := NewOTPService(store)

	err := svc.Verify(context.Background(), testPhone, "123456")
	require.ErrorIs(t, err, ErrOTPExpired)
}

func TestOTPRejectsBadPhoneNumber(t *testing.T) {
	store := newFakeOTPStore()
	svc := NewOTPService(store)

	var vErr *ValidationError
	require.ErrorAs(t, svc.Send(context.Background(), "12345"), &vErr)
	require.ErrorAs(t, svc.Send(context.Background(), "not-a-number"), &vErr)
}

func TestOTPPurgeStale(t *testing.T) {
	t.Setenv("OTP_DEV_MODE", "true")
	store := newFakeOTPStore()
	svc := NewOTPService(store)

	require.NoError(t, svc.Send(context.Background(), testPhone))
	require.NoError(t, svc.Send(context.Background(), "8888888888"))
	require.NoError(t, svc.Verify(context.Background(), testPhone, devOTPCode))

	jobs := NewJobService(store)
	jobs.PurgeStaleOTPs()

	// The consumed code is gone, the live one stays.
	require.NoError(t, svc.Verify(context.Background(), "8888888888", devOTPCode))
	err := svc.Verify(context.Background(), testPhone, devOTPCode)
	assert.ErrorIs(t, err, ErrOTPExpired)
}

func TestGenerateOTPShape(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := generateOTP()
		require.NoError(t, err)
		require.Len(t, code, 6)
		assert.GreaterOrEqual(t, code, "100000")
		assert.LessOrEqual(t, code, "999999")
	}
}
