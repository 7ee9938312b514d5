package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("order with id 7 not found")
	assert.Equal(t, "order with id 7 not found", err.Error())

	nfe, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.Equal(t, err, nfe)

	_, ok = IsNotFoundError(errors.New("plain error"))
	assert.False(t, ok)
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("validation failed",
		ValidationDetail{Field: "Items[0].Quantity", Message: "must be greater than 0"},
	)

	ve, ok := IsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "validation failed", ve.Message)
	assert.Len(t, ve.Details, 1)
	assert.Equal(t, "Items[0].Quantity", ve.Details[0].Field)
}

func TestConflictError(t *testing.T) {
	err := NewConflictError("advance already paid")

	ce, ok := IsConflictError(err)
	assert.True(t, ok)
	assert.Equal(t, "advance already paid", ce.Message)

	_, ok = IsConflictError(NewNotFoundError("nope"))
	assert.False(t, ok)
}

func TestForbiddenError(t *testing.T) {
	err := NewForbiddenError("invalid credentials")

	fe, ok := IsForbiddenError(err)
	assert.True(t, ok)
	assert.Equal(t, "invalid credentials", fe.Error())
}

func TestInvalidTransitionError(t *testing.T) {
	err := NewInvalidTransitionError("pending", "delivered")
	assert.Equal(t, "invalid transition from pending to delivered", err.Error())

	ite, ok := IsInvalidTransitionError(err)
	assert.True(t, ok)
	assert.Equal(t, "pending", ite.From)
	assert.Equal(t, "delivered", ite.To)
}

func TestDeadlockError(t *testing.T) {
	err := NewDeadlockError("max retries exceeded")

	_, ok := IsDeadlockError(err)
	assert.True(t, ok)
}

func TestInternalError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternalError("pinging database", cause)

	assert.Equal(t, "pinging database: connection refused", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))

	bare := NewInternalError("no cause", nil)
	assert.Equal(t, "no cause", bare.Error())
}
