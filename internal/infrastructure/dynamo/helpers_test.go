package dynamo

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUpdateExpr_SingleField(t *testing.T) {
	ue, err := buildUpdateExpr(map[string]interface{}{"username": "alice"})
	require.NoError(t, err)
	assert.Equal(t, "SET #f0 = :v0", ue.Expr)
	assert.Equal(t, map[string]string{"#f0": "username"}, ue.Names)
	_, ok := ue.Values[":v0"]
	assert.True(t, ok)
}

func TestBuildUpdateExpr_MultipleFields_Deterministic(t *testing.T) {
	updates := map[string]interface{}{
		"email":    "a@b.com",
		"title":    "Summer trip",
		"username": "alice",
	}
	// Call twice to verify determinism.
	ue1, err := buildUpdateExpr(updates)
	require.NoError(t, err)
	ue2, err := buildUpdateExpr(updates)
	require.NoError(t, err)

	assert.Equal(t, ue1.Expr, ue2.Expr)

	// Keys must be sorted: email < title < username
	assert.Equal(t, "email", ue1.Names["#f0"])
	assert.Equal(t, "title", ue1.Names["#f1"])
	assert.Equal(t, "username", ue1.Names["#f2"])
	assert.Equal(t, "SET #f0 = :v0, #f1 = :v1, #f2 = :v2", ue1.Expr)
}

func TestBuildUpdateExpr_ValuesMarshalledCorrectly(t *testing.T) {
	ue, err := buildUpdateExpr(map[string]interface{}{"email_verified": true})
	require.NoError(t, err)
	av, ok := ue.Values[":v0"]
	require.True(t, ok)
	boolVal, isBool := av.(*types.AttributeValueMemberBOOL)
	require.True(t, isBool)
	assert.True(t, boolVal.Value)
}

func TestBuildUpdateExpr_NilEmitsRemove(t *testing.T) {
	// A NULL-typed SET on email_verification_token would be rejected by
	// DynamoDB because the attribute keys a GSI; nil must clear via REMOVE.
	ue, err := buildUpdateExpr(map[string]interface{}{"email_verification_token": nil})
	require.NoError(t, err)
	assert.Equal(t, "REMOVE #f0", ue.Expr)
	assert.Equal(t, "email_verification_token", ue.Names["#f0"])
	assert.Empty(t, ue.Values)
}

func TestBuildUpdateExpr_MixedSetAndRemove(t *testing.T) {
	ue, err := buildUpdateExpr(map[string]interface{}{
		"email_verified":             true,
		"email_verification_token":   nil,
		"email_verification_sent_at": nil,
	})
	require.NoError(t, err)

	// Sorted: sent_at (#f0), token (#f1), verified (#f2).
	assert.Equal(t, "SET #f2 = :v2 REMOVE #f0, #f1", ue.Expr)
	assert.Equal(t, "email_verification_sent_at", ue.Names["#f0"])
	assert.Equal(t, "email_verification_token", ue.Names["#f1"])
	assert.Equal(t, "email_verified", ue.Names["#f2"])
	require.Len(t, ue.Values, 1)
	boolVal, isBool := ue.Values[":v2"].(*types.AttributeValueMemberBOOL)
	require.True(t, isBool)
	assert.True(t, boolVal.Value)
}

func TestWithUpdatedAt_DoesNotMutateCaller(t *testing.T) {
	updates := map[string]interface{}{"title": "Summer trip"}
	merged := withUpdatedAt(updates)

	assert.NotContains(t, updates, "updated_at")
	assert.Equal(t, "Summer trip", merged["title"])
	_, isTime := merged["updated_at"].(time.Time)
	assert.True(t, isTime)
}

func TestBuildUpdateExpr_EmptyMap_ReturnsError(t *testing.T) {
	_, err := buildUpdateExpr(map[string]interface{}{})
	assert.ErrorContains(t, err, "no fields to update")
}
