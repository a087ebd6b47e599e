package auth

import (
	"context"
	"time"
)

type AuthService interface {
	// Login verifies credentials and mints a signed token. The returned
	// expiry is used by the handler to set the auth cookie lifetime.
	Login(ctx context.Context, req LoginRequest) (LoginResponse, time.Time, error)
	Me(ctx context.Context, userID int) (MeResponse, error)
}
