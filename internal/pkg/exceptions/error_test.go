package exceptions

import (
	"errors"
	"fmt"
	"testing"

	"doctor-booking-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
)

func TestIsKindThroughWrapping(t *testing.T) {
	base := ErrSlotUnavailable(nil, "2026-03-02", "09:00", "doc-1")
	wrapped := fmt.Errorf("booking failed: %w", ErrServerProcess(base))

	assert.True(t, IsKind(wrapped, KindSlotUnavailable))
	assert.False(t, IsKind(wrapped, KindConflict))
	assert.False(t, IsKind(errors.New("plain"), KindInternal))
}

func TestBuildNewCustomErrorKeepsInnermostClassification(t *testing.T) {
	inner := ErrBookingNotFound(nil, "bk-1")
	outer := ErrServerProcess(inner)

	assert.Equal(t, constvars.StatusNotFound, outer.StatusCode)
	assert.Equal(t, KindNotFound, outer.Kind)
	assert.Len(t, outer.Locations, 2)
}

func TestRetryable(t *testing.T) {
	cases := []struct {
		name      string
		err       *CustomError
		retryable bool
	}{
		{"slot unavailable", ErrSlotUnavailable(nil, "d", "s", "doc"), true},
		{"conflict", ErrSlotAlreadyBooked(nil, "d", "s", "doc"), true},
		{"lock contention", ErrLockNotAcquired(nil, "booking:doc"), true},
		{"storage failure", ErrMongoDBInsertDocument(errors.New("io")), true},
		{"validation", ErrInvalidInterval(nil, "a", "b"), false},
		{"overlap", ErrAvailabilityOverlap(nil, "r", "doc", "daily"), false},
		{"forbidden", ErrBookingForbidden(nil, "p", "b"), false},
		{"not found", ErrAvailabilityNotFound(nil, "r", "doc"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.retryable, tc.err.Retryable())
			assert.Equal(t, tc.retryable, IsRetryable(fmt.Errorf("wrap: %w", tc.err)))
		})
	}
}

func TestBuildNewCustomErrorDerivesKindFromStatus(t *testing.T) {
	err := BuildNewCustomError(errors.New("boom"), constvars.StatusForbidden, "no", "dev")

	assert.Equal(t, KindForbidden, err.Kind)
	assert.Contains(t, err.DevMessage, "boom")
	assert.True(t, errors.Is(err, err.Unwrap()))
}
