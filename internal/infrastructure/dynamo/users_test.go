package dynamo

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/planventure-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserMarshal_OmitsUnsetTokenFields(t *testing.T) {
	// email_verification_token keys a GSI; a fresh user must not write a
	// NULL-typed value for it, so unset pointer fields are omitted entirely.
	item, err := attributevalue.MarshalMap(&domain.User{
		UserID:    "u1",
		Username:  "alice",
		Email:     "alice@example.com",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	assert.NotContains(t, item, "email_verification_token")
	assert.NotContains(t, item, "email_verification_sent_at")
	assert.NotContains(t, item, "reset_token_hash")
	assert.NotContains(t, item, "reset_token_expires")
	assert.NotContains(t, item, "last_login")
	assert.Contains(t, item, "user_id")
	assert.Contains(t, item, "email")
}

func TestUserMarshal_IncludesIssuedToken(t *testing.T) {
	tok := "verify-token"
	sentAt := time.Now().UTC()
	item, err := attributevalue.MarshalMap(&domain.User{
		UserID:                  "u1",
		EmailVerificationToken:  &tok,
		EmailVerificationSentAt: &sentAt,
	})
	require.NoError(t, err)

	assert.Contains(t, item, "email_verification_token")
	assert.Contains(t, item, "email_verification_sent_at")
}
