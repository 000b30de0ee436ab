package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTTokenService implements ports.TokenService using HS256 JWT. The token
// only carries the session's account binding across HTTP requests; the
// session gate remains the authority on whether that binding is active.
type JWTTokenService struct {
	secret []byte
	expiry time.Duration
	issuer string
}

// NewJWTTokenService creates a new JWT token service.
func NewJWTTokenService(secret string, expiry time.Duration, issuer string) *JWTTokenService {
	return &JWTTokenService{
		secret: []byte(secret),
		expiry: expiry,
		issuer: issuer,
	}
}

// Generate creates a signed session token for the given account.
func (s *JWTTokenService) Generate(accountID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiry)

	claims := jwt.MapClaims{
		"sub": accountID,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
		"iss": s.issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// Validate parses and validates a session token, returning the account id
// it was issued for.
func (s *JWTTokenService) Validate(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", fmt.Errorf("missing subject claim")
	}

	return sub, nil
}
