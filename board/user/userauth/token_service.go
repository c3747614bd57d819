package userauth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/easilyhq/easily/board/user"
	"github.com/easilyhq/easily/pkg/errx"
	"github.com/easilyhq/easily/pkg/kernel"
)

// DefaultSessionTTL is how long a session token stays valid
const DefaultSessionTTL = 24 * time.Hour

// SessionClaims are the JWT claims carried by a session token
type SessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService signs and validates session tokens
type TokenService struct {
	secret []byte
	ttl    time.Duration
	clock  kernel.Clock
}

// NewTokenService creates a token service. A zero ttl falls back to the
// default session length.
func NewTokenService(secret []byte, ttl time.Duration, clock kernel.Clock) *TokenService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if clock == nil {
		clock = kernel.SystemClock
	}
	return &TokenService{
		secret: secret,
		ttl:    ttl,
		clock:  clock,
	}
}

// Generate issues a signed session token for the user
func (s *TokenService) Generate(userID kernel.UserID, email kernel.Email) (string, error) {
	now := s.clock.Now()
	claims := SessionClaims{
		Email: email.Normalized().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    "easily",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errx.Wrap(err, "failed to sign session token", errx.TypeInternal)
	}
	return signed, nil
}

// Validate parses and verifies a session token
func (s *TokenService) Validate(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil || !token.Valid {
		return nil, user.ErrUnauthenticated()
	}
	return claims, nil
}

// UserID extracts the subject of validated claims
func (c *SessionClaims) UserID() kernel.UserID {
	return kernel.NewUserID(c.Subject)
}
