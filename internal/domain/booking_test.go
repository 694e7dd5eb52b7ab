package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusHelpers(t *testing.T) {
	cases := []struct {
		status    BookingStatus
		active    bool
		cancelled bool
		finished  bool
	}{
		{StatusConfirmed, true, false, false},
		{StatusActive, true, false, false},
		{StatusCompleted, false, false, true},
		{StatusCancelled, false, true, true},
	}

	for _, tc := range cases {
		b := Booking{Status: tc.status}
		assert.Equal(t, tc.active, b.IsActive(), "IsActive for %s", tc.status)
		assert.Equal(t, tc.cancelled, b.IsCancelled(), "IsCancelled for %s", tc.status)
		assert.Equal(t, tc.finished, b.IsFinished(), "IsFinished for %s", tc.status)
	}
}

func TestVehicleIsOperational(t *testing.T) {
	assert.True(t, (&Vehicle{Status: VehicleStatusAvailable}).IsOperational())
	assert.True(t, (&Vehicle{Status: VehicleStatusInService}).IsOperational())
	assert.False(t, (&Vehicle{Status: VehicleStatusRetired}).IsOperational())
}
