package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	user.UserRepository
	revoked auth.RevokedTokenRepository
	jwt.Service
}

func NewAuthService(userRepository user.UserRepository, revokedTokenRepository auth.RevokedTokenRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepository,
		revoked:        revokedTokenRepository,
		Service:        jwtService,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest) (auth.TokenResponse, error) {
	userData, err := a.UserRepository.GetByEmail(ctx, loginReq.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	// Cek password
	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if userData.Status != user.StatusActive {
		slog.Info("login rejected for inactive account", "user_id", userData.ID)
		return auth.TokenResponse{}, auth.ErrAccountInactive
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(userData.ID, userData.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:          token,
		AccessTokenExpiresIn: expiresAt,
		UserID:               userData.ID,
		Role:                 string(userData.Role),
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, actor user.Actor, token string, expiresAt time.Time) error {
	if token == "" || !actor.IsAuthenticated() {
		return auth.ErrInvalidToken
	}
	if err := a.revoked.Revoke(ctx, actor.UserID, token, expiresAt); err != nil {
		return err
	}
	slog.Info("access token revoked", "user_id", actor.UserID, "expires_at", expiresAt)
	return nil
}

// IsTokenRevoked implements auth.AuthService.
func (a *AuthServiceImpl) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	revoked, err := a.revoked.IsRevoked(ctx, token)
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return revoked, nil
}
