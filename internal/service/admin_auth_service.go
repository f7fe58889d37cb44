package service

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	apperrors "parkvue/internal/errors"
	"parkvue/internal/repository"
)

type AdminAuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	CreateAdmin(ctx context.Context, email, password string) error
}

type adminAuthService struct {
	repo repository.AdminAuthRepository
}

func NewAdminAuthService(repo repository.AdminAuthRepository) AdminAuthService {
	return &adminAuthService{repo: repo}
}

// Login verifies the password against the stored bcrypt hash and issues a
// short-lived JWT. When ADMIN_EMAIL_DOMAIN is set, only emails under that
// domain may log in.
func (s *adminAuthService) Login(ctx context.Context, email, password string) (string, error) {
	if domain := os.Getenv("ADMIN_EMAIL_DOMAIN"); domain != "" {
		if !strings.HasSuffix(email, "@"+domain) {
			return "", apperrors.ErrUnauthorized("invalid credentials")
		}
	}

	admin, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if admin == nil {
		return "", apperrors.ErrUnauthorized("invalid credentials")
	}

	err = bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password))
	if err != nil {
		return "", apperrors.ErrUnauthorized("invalid credentials")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET not set")
	}

	claims := jwt.MapClaims{
		"admin_id": admin.ID,
		"email":    admin.Email,
		"exp":      time.Now().Add(time.Hour * 1).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (s *adminAuthService) CreateAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return apperrors.ErrBadRequest("email and password cannot be empty")
	}
	return s.repo.CreateAdmin(ctx, email, password)
}
