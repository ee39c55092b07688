package domain

import "time"

type User struct {
	UserID       string `json:"id" dynamodbav:"user_id"`
	Username     string `json:"username" dynamodbav:"username"`
	Email        string `json:"email" dynamodbav:"email"`
	PasswordHash string `json:"-" dynamodbav:"password_hash"`
	PasswordSalt string `json:"-" dynamodbav:"password_salt"`

	EmailVerified bool `json:"email_verified" dynamodbav:"email_verified"`
	// Both set together at issue time, both cleared together at consumption.
	// Nil is omitted at write time: the token is the hash key of a sparse GSI,
	// and DynamoDB rejects NULL-typed writes to index key attributes.
	EmailVerificationToken  *string    `json:"-" dynamodbav:"email_verification_token,omitempty"`
	EmailVerificationSentAt *time.Time `json:"-" dynamodbav:"email_verification_sent_at,omitempty"`

	// Only the sha256 of the reset secret is stored, never the secret itself.
	ResetTokenHash    *string    `json:"-" dynamodbav:"reset_token_hash,omitempty"`
	ResetTokenExpires *time.Time `json:"-" dynamodbav:"reset_token_expires,omitempty"`

	LastLogin *time.Time `json:"last_login,omitempty" dynamodbav:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" dynamodbav:"updated_at"`
}

type RegisterRequest struct {
	// Username is optional; when empty it is derived from the email local-part.
	Username string `json:"username" validate:"omitempty,min=3,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}
