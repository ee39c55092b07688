package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/planventure-api/internal/application/verification"
	"github.com/planventure-api/internal/domain"
	jwtinfra "github.com/planventure-api/internal/infrastructure/jwt"
	"github.com/planventure-api/internal/infrastructure/smtp"
	"github.com/planventure-api/internal/pkg/id"
	"github.com/planventure-api/internal/pkg/password"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldPasswordHash      = "password_hash"
	fieldPasswordSalt      = "password_salt"
	fieldResetTokenHash    = "reset_token_hash"
	fieldResetTokenExpires = "reset_token_expires"
	fieldLastLogin         = "last_login"
)

// ErrInvalidCredentials is deliberately the same for a wrong password and an
// unknown username, so a caller cannot tell which one was wrong.
var ErrInvalidCredentials = fmt.Errorf("invalid username or password: %w", domain.ErrUnauthorized)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

type LoginResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

// Service orchestrates registration, login, token refresh and the
// verification/reset flows on top of the credential store, the token codec
// and the verification workflow.
type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
	VerifyEmail(ctx context.Context, token string) (*LoginResult, error)
	ResendVerification(ctx context.Context, email string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByVerificationToken(ctx context.Context, token string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type tokenProvider interface {
	AccessToken(userID string) (string, error)
	RefreshToken(userID string) (string, error)
	Verify(tokenStr string) (*jwtinfra.Claims, error)
	IsRefresh(tokenStr string) bool
}

type service struct {
	users       userStore
	tokens      tokenProvider
	workflow    verification.Service
	mailer      smtp.Mailer
	frontendURL string
}

type ServiceDeps struct {
	UserRepo    userStore
	Tokens      tokenProvider
	Workflow    verification.Service
	Mailer      smtp.Mailer
	FrontendURL string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		users:       deps.UserRepo,
		tokens:      deps.Tokens,
		workflow:    deps.Workflow,
		mailer:      deps.Mailer,
		frontendURL: deps.FrontendURL,
	}
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}
	username := req.Username
	if username == "" {
		derived, err := s.deriveUsername(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		username = derived
	} else if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("username already taken: %w", domain.ErrConflict)
	}

	hash, salt, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Username:     username,
		Email:        req.Email,
		PasswordHash: hash,
		PasswordSalt: salt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Put(ctx, u); err != nil {
		return nil, err
	}

	tok, err := s.workflow.IssueEmailToken(ctx, u)
	if err != nil {
		return nil, err
	}
	s.sendVerificationEmail(u, tok)
	return u, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	u, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !password.Verify(u.PasswordHash, req.Password, u.PasswordSalt) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.users.Update(ctx, u.UserID, map[string]interface{}{fieldLastLogin: now}); err != nil {
		return nil, err
	}
	u.LastLogin = &now

	access, err := s.tokens.AccessToken(u.UserID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.RefreshToken(u.UserID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: u, AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The refresh
// token itself is not rotated.
func (s *service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if !s.tokens.IsRefresh(refreshToken) {
		return "", fmt.Errorf("invalid refresh token: %w", domain.ErrUnauthorized)
	}
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return "", err
	}
	u, err := s.users.Get(ctx, claims.UserID)
	if err != nil {
		return "", fmt.Errorf("unknown token subject: %w", domain.ErrUnauthorized)
	}
	return s.tokens.AccessToken(u.UserID)
}

func (s *service) VerifyEmail(ctx context.Context, token string) (*LoginResult, error) {
	u, err := s.users.GetByVerificationToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("invalid verification token: %w", domain.ErrUnauthorized)
	}
	verified, access, refresh, err := s.workflow.VerifyEmail(ctx, u, token)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: verified, AccessToken: access, RefreshToken: refresh}, nil
}

func (s *service) ResendVerification(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	tok, err := s.workflow.IssueEmailToken(ctx, u)
	if err != nil {
		return err
	}
	s.sendVerificationEmail(u, tok)
	return nil
}

func (s *service) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	tok, err := s.workflow.IssueResetToken(ctx, u)
	if err != nil {
		return err
	}
	go func() {
		subject, body := smtp.ResetMessage(s.frontendURL, tok)
		if err := s.mailer.SendEmail(u.Email, subject, body); err != nil {
			slog.Error("failed to send password reset email", "user_id", u.UserID, "err", err)
		}
	}()
	return nil
}

func (s *service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("invalid or expired reset token: %w", domain.ErrUnauthorized)
	}
	if !s.workflow.VerifyResetToken(u, req.Token) {
		return fmt.Errorf("invalid or expired reset token: %w", domain.ErrUnauthorized)
	}
	hash, salt, err := password.Hash(req.NewPassword)
	if err != nil {
		return err
	}
	// New credentials and token consumption land in one write.
	return s.users.Update(ctx, u.UserID, map[string]interface{}{
		fieldPasswordHash:      hash,
		fieldPasswordSalt:      salt,
		fieldResetTokenHash:    nil,
		fieldResetTokenExpires: nil,
	})
}

// deriveUsername takes the email local-part and appends the first free numeric
// suffix: alice, alice1, alice2, …
func (s *service) deriveUsername(ctx context.Context, email string) (string, error) {
	base := email
	if at := strings.Index(email, "@"); at > 0 {
		base = email[:at]
	}
	name := base
	for i := 1; ; i++ {
		_, err := s.users.GetByUsername(ctx, name)
		if errors.Is(err, domain.ErrNotFound) {
			return name, nil
		}
		if err != nil {
			return "", err
		}
		name = fmt.Sprintf("%s%d", base, i)
	}
}

// sendVerificationEmail dispatches the message after the user row is committed.
// Failures are logged, never surfaced to the caller.
func (s *service) sendVerificationEmail(u *domain.User, token string) {
	go func() {
		subject, body := smtp.VerificationMessage(s.frontendURL, token)
		if err := s.mailer.SendEmail(u.Email, subject, body); err != nil {
			slog.Error("failed to send verification email", "user_id", u.UserID, "err", err)
		}
	}()
}
