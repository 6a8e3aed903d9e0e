package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"

	"yen-network/internal/domain"
)

const (
	// DefaultSecret is used when no signing secret is configured. Running
	// with it in production lets anyone mint tokens.
	DefaultSecret = "your_secret_key"
	// DefaultExpiry is the token lifetime when none is configured.
	DefaultExpiry = 7 * 24 * time.Hour
)

var (
	// ErrTokenExpired means the token was well formed and signed but is past its expiry.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenInvalid covers malformed tokens, bad signatures and unexpected algorithms.
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims is the JWT payload: the user id and role plus registered claims.
type Claims struct {
	UserID string      `json:"id"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 tokens.
type TokenIssuer struct {
	secret []byte
	expiry time.Duration
}

// NewTokenIssuer creates a TokenIssuer. An empty secret falls back to
// DefaultSecret and a non-positive expiry to DefaultExpiry.
func NewTokenIssuer(secret string, expiry time.Duration) *TokenIssuer {
	if secret == "" {
		logrus.Warn("JWT secret not configured, falling back to the built-in default; set JWT_SECRET before deploying")
		secret = DefaultSecret
	}
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &TokenIssuer{secret: []byte(secret), expiry: expiry}
}

// Expiry returns the configured token lifetime.
func (t *TokenIssuer) Expiry() time.Duration { return t.expiry }

// Issue returns a signed token for the user.
func (t *TokenIssuer) Issue(userID string, role domain.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses the token and returns its claims. A token whose only fault
// is its expiry yields ErrTokenExpired; every other failure, including an
// expired token with a bad signature, yields ErrTokenInvalid.
func (t *TokenIssuer) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		var validationErr *jwt.ValidationError
		// jwt/v4 checks claims before the signature and ORs every failure bit together.
		if errors.As(err, &validationErr) && validationErr.Errors == jwt.ValidationErrorExpired {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// ParseExpiry accepts Go durations ("168h", "30m") and whole days ("7d").
// An empty string yields DefaultExpiry.
func ParseExpiry(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultExpiry, nil
	}
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid token expiry %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid token expiry %q", s)
	}
	return d, nil
}
