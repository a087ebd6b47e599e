package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/auth"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/user"
	"github.com/nippo-dev/nippo-backend-go/internal/pkg/jwt"
	"github.com/nippo-dev/nippo-backend-go/internal/pkg/password"
)

type AuthServiceImpl struct {
	user.UserRepository
	jwt jwt.Service
}

func NewAuthService(userRepository user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepository,
		jwt:            jwtService,
	}
}

// Login implements auth.AuthService. Unknown email, wrong password and a
// deactivated account all collapse into the same ErrInvalidCredentials so the
// response does not reveal which part failed.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, time.Time, error) {
	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.LoginResponse{}, time.Time{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, time.Time{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !userData.IsActive {
		return auth.LoginResponse{}, time.Time{}, auth.ErrInvalidCredentials
	}

	if !password.Verify(req.Password, userData.PasswordHash) {
		return auth.LoginResponse{}, time.Time{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.jwt.Issue(jwt.Claims{
		UserID: userData.ID,
		Email:  userData.Email,
		Role:   userData.Role,
	})
	if err != nil {
		return auth.LoginResponse{}, time.Time{}, fmt.Errorf("failed to issue token: %w", err)
	}

	profile, err := a.UserRepository.GetProfile(ctx, userData.ID)
	if err != nil {
		return auth.LoginResponse{}, time.Time{}, fmt.Errorf("failed to load user profile: %w", err)
	}

	return auth.LoginResponse{
		Token: token,
		User: auth.LoginUser{
			ID:         profile.ID,
			Name:       profile.Name,
			Email:      profile.Email,
			Role:       profile.Role.Lower(),
			Department: profile.Department,
		},
	}, expiresAt, nil
}

// Me implements auth.AuthService. The user record is loaded fresh so a
// promotion, demotion or deactivation takes effect without waiting for token
// expiry.
func (a *AuthServiceImpl) Me(ctx context.Context, userID int) (auth.MeResponse, error) {
	profile, err := a.UserRepository.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.MeResponse{}, auth.ErrUserDisabled
		}
		return auth.MeResponse{}, fmt.Errorf("failed to load user profile: %w", err)
	}
	if !profile.IsActive {
		return auth.MeResponse{}, auth.ErrUserDisabled
	}

	return auth.MeResponse{
		ID:         profile.ID,
		Name:       profile.Name,
		Email:      profile.Email,
		Role:       profile.Role.Lower(),
		Department: profile.Department,
		Manager:    profile.Manager,
	}, nil
}
