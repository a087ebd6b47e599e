package jwt

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/auth"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/user"
)

// AuthTokenCookieName is the cookie the login flow sets and the request
// authenticator falls back to when no Authorization header is present.
const AuthTokenCookieName = "auth_token"

// Claims are the identity fields embedded in a signed token. They are fixed
// at login time; authorization decisions re-derive the role from the current
// user record instead of trusting the copy in the token.
type Claims struct {
	UserID int
	Email  string
	Role   user.Role
}

type Service interface {
	Issue(claims Claims) (token string, expiresAt time.Time, err error)
	Verify(tokenString string) (Claims, error)
	AuthTokenCookie(token string, expiresAt time.Time) *http.Cookie
	ClearAuthTokenCookie() *http.Cookie
}

type JWTService struct {
	secretKey    string
	expiration   string
	secureCookie bool
	tokenAuth    *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, expiration string, secureCookie bool) Service {
	return &JWTService{
		secretKey:    secretKey,
		expiration:   expiration,
		secureCookie: secureCookie,
		tokenAuth:    jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) Issue(claims Claims) (string, time.Time, error) {
	expDuration, err := time.ParseDuration(j.expiration)
	if err != nil {
		return "", time.Time{}, err
	}
	expiresAt := time.Now().Add(expDuration)

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": claims.UserID,
		"email":   claims.Email,
		"role":    string(claims.Role),
		"jti":     uuid.NewString(),
		"exp":     expiresAt.Unix(),
	})
	return tokenString, expiresAt, err
}

// Verify validates signature and expiry and returns the embedded claims.
// Expired tokens fail with auth.ErrTokenExpired, everything else with
// auth.ErrTokenInvalid.
func (j *JWTService) Verify(tokenString string) (Claims, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		if errors.Is(err, jwtauth.ErrExpired) {
			return Claims{}, auth.ErrTokenExpired
		}
		return Claims{}, auth.ErrTokenInvalid
	}

	userID, ok := claimInt(token, "user_id")
	if !ok || userID <= 0 {
		return Claims{}, auth.ErrTokenInvalid
	}
	email, ok := claimString(token, "email")
	if !ok {
		return Claims{}, auth.ErrTokenInvalid
	}
	roleStr, ok := claimString(token, "role")
	if !ok {
		return Claims{}, auth.ErrTokenInvalid
	}
	role := user.Role(roleStr)
	if !role.Valid() {
		return Claims{}, auth.ErrTokenInvalid
	}

	return Claims{UserID: userID, Email: email, Role: role}, nil
}

// AuthTokenCookie builds the login cookie: http-only, SameSite=Lax, secure in
// production.
func (j *JWTService) AuthTokenCookie(token string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     AuthTokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearAuthTokenCookie builds an expired cookie for logout.
func (j *JWTService) ClearAuthTokenCookie() *http.Cookie {
	return &http.Cookie{
		Name:     AuthTokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

func claimInt(token jwt.Token, name string) (int, bool) {
	value, ok := token.Get(name)
	if !ok {
		return 0, false
	}
	switch n := value.(type) {
	case float64:
		return int(n), true
	case int64:
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}

func claimString(token jwt.Token, name string) (string, bool) {
	value, ok := token.Get(name)
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}
