package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := Conflict("site %s is taken", "A-1")
	wrapped := fmt.Errorf("admit: %w", err)

	assert.True(t, errors.Is(wrapped, ErrConflict))
	assert.False(t, errors.Is(wrapped, ErrPriceMismatch))
	assert.Equal(t, CodeConflict, CodeOf(wrapped))
	assert.Equal(t, "[CONFLICT] site A-1 is taken", err.Error())
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, Code(""), CodeOf(errors.New("boom")))
}

func TestIsIntegrity(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"price mismatch", PriceMismatch("off by 500"), true},
		{"configuration", Configuration("no rule"), true},
		{"conflict", Conflict("taken"), false},
		{"invalid range", InvalidRange("empty"), false},
		{"plain", errors.New("x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsIntegrity(tt.err))
		})
	}
}

func TestUnwrapKeepsCause(t *testing.T) {
	cause := errors.New("pg down")
	err := New(CodeConfiguration, "load rules", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "pg down")
}

func TestSentinelsMatchConstructors(t *testing.T) {
	tests := []struct {
		err      error
		sentinel *Error
	}{
		{InvalidRange("check-out before check-in"), ErrInvalidRange},
		{Conflict("taken"), ErrConflict},
		{PriceMismatch("off by 500"), ErrPriceMismatch},
		{Configuration("no rule"), ErrConfiguration},
		{Validation("guests required"), ErrValidation},
		{NotFound("site missing"), ErrNotFound},
		{InvalidState("already cancelled"), ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(string(tt.sentinel.Code), func(t *testing.T) {
			assert.ErrorIs(t, fmt.Errorf("wrapped: %w", tt.err), tt.sentinel)
			for _, other := range tests {
				if other.sentinel != tt.sentinel {
					assert.NotErrorIs(t, tt.err, other.sentinel)
				}
			}
		})
	}
}
