package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"buildmart/internal/domain"
	apperrors "buildmart/internal/errors"
)

func TestIssueAndParseToken(t *testing.T) {
	token, err := IssueToken("test-secret", 42, domain.RoleDealer, time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ParseAuthHeader("Bearer "+token, "test-secret")
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, domain.RoleDealer, claims.Role)
}

func TestParseAuthHeader_WrongSecret(t *testing.T) {
	token, err := IssueToken("test-secret", 1, domain.RoleCustomer, time.Hour)
	assert.NoError(t, err)

	_, err = ParseAuthHeader("Bearer "+token, "other-secret")
	_, ok := apperrors.IsForbiddenError(err)
	assert.True(t, ok)
}

func TestParseAuthHeader_ExpiredToken(t *testing.T) {
	token, err := IssueToken("test-secret", 1, domain.RoleCustomer, -time.Minute)
	assert.NoError(t, err)

	_, err = ParseAuthHeader("Bearer "+token, "test-secret")
	_, ok := apperrors.IsForbiddenError(err)
	assert.True(t, ok)
}

func TestParseAuthHeader_MissingToken(t *testing.T) {
	_, err := ParseAuthHeader("", "test-secret")
	fe, ok := apperrors.IsForbiddenError(err)
	assert.True(t, ok)
	assert.Equal(t, "missing authorization token", fe.Message)

	_, err = ParseAuthHeader("Bearer   ", "test-secret")
	_, ok = apperrors.IsForbiddenError(err)
	assert.True(t, ok)
}

func TestParseAuthHeader_Garbage(t *testing.T) {
	_, err := ParseAuthHeader("Bearer not-a-jwt", "test-secret")
	_, ok := apperrors.IsForbiddenError(err)
	assert.True(t, ok)
}
