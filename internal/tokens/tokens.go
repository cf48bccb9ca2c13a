package tokens

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/teamsite/teamsite/internal/sessions"
)

// ErrInvalidToken covers every reason a cookie value is rejected: bad
// signature, wrong algorithm, expired, malformed.
var ErrInvalidToken = errors.New("invalid session token")

// Claims is the payload of the signed session cookie.
type Claims struct {
	SessionID string `json:"sid"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	jwt.RegisteredClaims
}

// SignSession creates the HS256-signed cookie value for a stored session.
func SignSession(secret []byte, s *sessions.Session) (string, error) {
	if len(secret) == 0 {
		return "", fmt.Errorf("session secret is empty")
	}
	claims := Claims{
		SessionID: s.ID,
		Email:     s.Email,
		Name:      s.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(s.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseSession verifies a cookie value and returns its claims.
func ParseSession(secret []byte, raw string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.SessionID == "" {
		return nil, fmt.Errorf("%w: missing sid", ErrInvalidToken)
	}
	return &claims, nil
}
