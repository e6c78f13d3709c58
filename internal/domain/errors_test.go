package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Messages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{NewNotFoundError("image", "FocusOnArgentina.png"), `image "FocusOnArgentina.png" not found`},
		{NewNotFoundError("report", ""), "report not found"},
		{NewValidationError("max_price", "must be at most 100"), "validation failed for max_price: must be at most 100"},
		{NewValidationError("", "bad input"), "validation failed: bad input"},
		{NewUnavailableError("wine store", "database is closed"), "wine store unavailable: database is closed"},
		{NewUnavailableError("wine store", ""), "wine store unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_MatchesOneSentinel(t *testing.T) {
	tests := []struct {
		err      error
		kind     ErrorKind
		sentinel error
	}{
		{NewNotFoundError("report", "x"), KindNotFound, ErrNotFound},
		{NewValidationError("min_count", "too big"), KindValidation, ErrValidation},
		{NewUnavailableError("sqlite", "locked"), KindUnavailable, ErrUnavailable},
	}

	sentinels := []error{ErrNotFound, ErrValidation, ErrUnavailable}

	for _, tt := range tests {
		t.Run(tt.sentinel.Error(), func(t *testing.T) {
			wrapped := fmt.Errorf("rendering report: %w", tt.err)

			assert.Equal(t, tt.kind, KindOf(wrapped))

			for _, s := range sentinels {
				assert.Equal(t, s == tt.sentinel, errors.Is(wrapped, s), s.Error())
			}
		})
	}
}

func TestIsHelpers(t *testing.T) {
	wrapped := fmt.Errorf("rendering report: %w", NewNotFoundError("report", "x"))

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsValidation(wrapped))
	assert.False(t, IsUnavailable(wrapped))

	assert.False(t, IsNotFound(errors.New("plain")))
	assert.Zero(t, KindOf(errors.New("plain")))
}

func TestValidationError_CarriesValue(t *testing.T) {
	err := NewValidationErrorWithValue(SliderMaxPrice, "must be at most 100", 250.0)

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, SliderMaxPrice, e.Subject)
	assert.Equal(t, "must be at most 100", e.Detail)
	assert.InDelta(t, 250.0, e.Value, 0)
}
