package service

import (
	"context"
	"strings"

	"spendenlauf-api/core/config"
	"spendenlauf-api/core/errors"
	"spendenlauf-api/core/logger"
	"spendenlauf-api/core/utils"
	"spendenlauf-api/modules/auth/dto"

	"golang.org/x/crypto/bcrypt"
)

const adminRole = "admin"

// AuthService authenticates the single configured admin account. There is no
// user table; the admin email and bcrypt hash come from config.
type AuthService struct{}

// AuthServiceInterface defines the service contract.
type AuthServiceInterface interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError)
}

func NewAuthService() AuthServiceInterface {
	return &AuthService{}
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError) {
	cfg := config.Get()

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if cfg.Auth.AdminEmail == "" || email != strings.ToLower(cfg.Auth.AdminEmail) {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Ungültige Zugangsdaten.", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cfg.Auth.AdminPasswordHash), []byte(req.Password)); err != nil {
		logger.Warn("AuthService:Login:BadPassword", "email", email)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Ungültige Zugangsdaten.", nil)
	}

	token, err := utils.GenerateToken(email, adminRole)
	if err != nil {
		logger.Error("AuthService:Login:GenerateToken", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Login fehlgeschlagen.", err)
	}

	return &dto.LoginResponse{Token: token, Email: email, Role: adminRole}, nil
}
