package verification

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/planventure-api/internal/domain"
	pkgtoken "github.com/planventure-api/internal/pkg/token"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldEmailVerified           = "email_verified"
	fieldEmailVerificationToken  = "email_verification_token"
	fieldEmailVerificationSentAt = "email_verification_sent_at"
	fieldResetTokenHash          = "reset_token_hash"
	fieldResetTokenExpires       = "reset_token_expires"
)

// All sentinels wrap a domain error so handlers can map them without
// special-casing this package.
var (
	ErrTokenMissing    = fmt.Errorf("no verification token issued: %w", domain.ErrUnauthorized)
	ErrTokenMismatch   = fmt.Errorf("verification token mismatch: %w", domain.ErrUnauthorized)
	ErrTokenExpired    = fmt.Errorf("verification token has expired: %w", domain.ErrUnauthorized)
	ErrAlreadyVerified = fmt.Errorf("email is already verified: %w", domain.ErrConflict)
)

// Service manages the single-use, time-bounded secrets bound to a user record:
// the email verification token (stored verbatim, short-lived) and the password
// reset token (stored by sha256 digest only).
type Service interface {
	// IssueEmailToken generates a fresh verification token and stores it on the
	// user record together with the issue timestamp, overwriting any prior
	// unconsumed token. Rejected with ErrAlreadyVerified for verified users.
	IssueEmailToken(ctx context.Context, u *domain.User) (string, error)
	// VerifyEmail consumes the token: on success the token fields are cleared
	// and email_verified is set in one atomic write, and a fresh access/refresh
	// pair is returned so the caller is logged in immediately.
	VerifyEmail(ctx context.Context, u *domain.User, token string) (*domain.User, string, string, error)
	// IssueResetToken generates a reset secret, stores its sha256 digest and an
	// absolute expiry on the user record, and returns the plaintext secret.
	IssueResetToken(ctx context.Context, u *domain.User) (string, error)
	// VerifyResetToken reports whether token matches the stored digest and the
	// expiry has not passed. Fails closed on unset fields.
	VerifyResetToken(u *domain.User, token string) bool
}

type userStore interface {
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type tokenSigner interface {
	AccessToken(userID string) (string, error)
	RefreshToken(userID string) (string, error)
}

type service struct {
	users    userStore
	signer   tokenSigner
	timeout  time.Duration // how long an email verification token stays valid
	resetTTL time.Duration
}

type ServiceDeps struct {
	UserRepo     userStore
	TokenSigner  tokenSigner
	EmailTimeout time.Duration
	ResetTTL     time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		users:    deps.UserRepo,
		signer:   deps.TokenSigner,
		timeout:  deps.EmailTimeout,
		resetTTL: deps.ResetTTL,
	}
}

func (s *service) IssueEmailToken(ctx context.Context, u *domain.User) (string, error) {
	if u.EmailVerified {
		return "", ErrAlreadyVerified
	}
	tok, err := pkgtoken.New()
	if err != nil {
		return "", err
	}
	sentAt := time.Now().UTC()
	if err := s.users.Update(ctx, u.UserID, map[string]interface{}{
		fieldEmailVerificationToken:  tok,
		fieldEmailVerificationSentAt: sentAt,
	}); err != nil {
		return "", err
	}
	u.EmailVerificationToken = &tok
	u.EmailVerificationSentAt = &sentAt
	return tok, nil
}

func (s *service) VerifyEmail(ctx context.Context, u *domain.User, token string) (*domain.User, string, string, error) {
	if u.EmailVerificationToken == nil || u.EmailVerificationSentAt == nil {
		return nil, "", "", ErrTokenMissing
	}
	if subtle.ConstantTimeCompare([]byte(*u.EmailVerificationToken), []byte(token)) != 1 {
		return nil, "", "", ErrTokenMismatch
	}
	if time.Now().UTC().Sub(*u.EmailVerificationSentAt) > s.timeout {
		return nil, "", "", ErrTokenExpired
	}

	// Clearing the token and flipping the flag must land together.
	if err := s.users.Update(ctx, u.UserID, map[string]interface{}{
		fieldEmailVerified:           true,
		fieldEmailVerificationToken:  nil,
		fieldEmailVerificationSentAt: nil,
	}); err != nil {
		return nil, "", "", err
	}
	u.EmailVerified = true
	u.EmailVerificationToken = nil
	u.EmailVerificationSentAt = nil

	access, err := s.signer.AccessToken(u.UserID)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := s.signer.RefreshToken(u.UserID)
	if err != nil {
		return nil, "", "", err
	}
	return u, access, refresh, nil
}

func (s *service) IssueResetToken(ctx context.Context, u *domain.User) (string, error) {
	tok, err := pkgtoken.New()
	if err != nil {
		return "", err
	}
	digest := pkgtoken.HashSHA256(tok)
	expires := time.Now().UTC().Add(s.resetTTL)
	if err := s.users.Update(ctx, u.UserID, map[string]interface{}{
		fieldResetTokenHash:    digest,
		fieldResetTokenExpires: expires,
	}); err != nil {
		return "", err
	}
	u.ResetTokenHash = &digest
	u.ResetTokenExpires = &expires
	return tok, nil
}

func (s *service) VerifyResetToken(u *domain.User, token string) bool {
	if u.ResetTokenHash == nil || u.ResetTokenExpires == nil {
		return false
	}
	if time.Now().UTC().After(*u.ResetTokenExpires) {
		return false
	}
	digest := pkgtoken.HashSHA256(token)
	return subtle.ConstantTimeCompare([]byte(*u.ResetTokenHash), []byte(digest)) == 1
}
