package jwtinfra

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/planventure-api/internal/config"
	"github.com/planventure-api/internal/domain"
)

// Kind discriminates what a token may be used for. A token presented in the
// wrong context (e.g. a refresh token as a bearer credential) must be rejected.
type Kind string

const (
	KindAccess            Kind = "access"
	KindRefresh           Kind = "refresh"
	KindEmailVerification Kind = "email_verification"
)

// Both sentinels wrap domain.ErrUnauthorized so callers that only care about
// the admit/reject outcome can match on the domain error.
var (
	ErrExpiredToken = fmt.Errorf("token has expired: %w", domain.ErrUnauthorized)
	ErrInvalidToken = fmt.Errorf("invalid token: %w", domain.ErrUnauthorized)
)

// Claims holds the JWT payload fields.
type Claims struct {
	UserID string `json:"user_id"`
	Kind   Kind   `json:"kind"`
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 JWTs with a server-held symmetric secret.
// It is a pure codec: no state beyond the key and the configured TTLs.
type Provider struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewProvider(cfg *config.Config) (*Provider, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	return &Provider{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
	}, nil
}

// Sign encodes a token of the given kind for userID, expiring after ttl.
func (p *Provider) Sign(userID string, kind Kind, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID: userID,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// AccessToken signs an access token with the configured TTL.
func (p *Provider) AccessToken(userID string) (string, error) {
	return p.Sign(userID, KindAccess, p.accessTTL)
}

// RefreshToken signs a refresh token with the configured TTL.
func (p *Provider) RefreshToken(userID string) (string, error) {
	return p.Sign(userID, KindRefresh, p.refreshTTL)
}

// Verify checks the signature and expiry of tokenStr and returns its claims.
// Expiry failures map to ErrExpiredToken; everything else to ErrInvalidToken.
func (p *Provider) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// IsRefresh reports whether tokenStr is a valid, unexpired refresh token.
// It never returns an error; any decode failure is false.
func (p *Provider) IsRefresh(tokenStr string) bool {
	claims, err := p.Verify(tokenStr)
	if err != nil {
		return false
	}
	return claims.Kind == KindRefresh
}
