// Package stubserver implements an in-memory development server exposing
// the clinic REST API. It exists so the client and CLI can be exercised
// end to end without the production backend: it issues real JWT pairs,
// enforces bearer auth and computes bill totals the way the backend does.
package stubserver

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/guttosm/clinic-client/internal/domain/model"
)

// ErrInvalidToken is returned when a token fails validation or has expired.
var ErrInvalidToken = errors.New("invalid or expired token")

// claims carries the identity embedded in issued tokens.
type claims struct {
	UserID   int64      `json:"user_id"`
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
	jwt.RegisteredClaims
}

// tokenService issues and validates HS256 access/refresh token pairs.
// Access and refresh tokens are signed with distinct secrets so one can
// never be presented in place of the other.
type tokenService struct {
	secretKey        []byte
	refreshSecretKey []byte
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
}

func newTokenService(secret, refreshSecret string, accessTTL, refreshTTL time.Duration) *tokenService {
	return &tokenService{
		secretKey:        []byte(secret),
		refreshSecretKey: []byte(refreshSecret),
		accessTokenTTL:   accessTTL,
		refreshTokenTTL:  refreshTTL,
	}
}

// GeneratePair issues a fresh access/refresh pair for the user.
func (s *tokenService) GeneratePair(user *model.User) (access, refresh string, err error) {
	access, err = s.sign(user, s.secretKey, s.accessTokenTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = s.sign(user, s.refreshSecretKey, s.refreshTokenTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// GenerateAccess issues a new access token only, as the refresh endpoint does.
func (s *tokenService) GenerateAccess(user *model.User) (string, error) {
	return s.sign(user, s.secretKey, s.accessTokenTTL)
}

// ValidateAccess parses and verifies an access token.
func (s *tokenService) ValidateAccess(tokenString string) (*claims, error) {
	return s.parse(tokenString, s.secretKey)
}

// ValidateRefresh parses and verifies a refresh token.
func (s *tokenService) ValidateRefresh(tokenString string) (*claims, error) {
	return s.parse(tokenString, s.refreshSecretKey)
}

func (s *tokenService) sign(user *model.User, key []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	c := &claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(key)
}

func (s *tokenService) parse(tokenString string, key []byte) (*claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return key, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	if c, ok := token.Claims.(*claims); ok && token.Valid {
		return c, nil
	}
	return nil, ErrInvalidToken
}
