package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStatusIsValid(t *testing.T) {
	for _, s := range []BookingStatus{StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled} {
		assert.True(t, s.IsValid(), string(s))
	}
	assert.False(t, BookingStatus("TELEPORTED").IsValid())
	assert.False(t, BookingStatus("").IsValid())
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusInProgress, true},
		{StatusConfirmed, StatusCompleted, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
	}

	for _, tc := range cases {
		b := Booking{Status: tc.from}
		assert.Equal(t, tc.want, b.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestBookingAddressRoundTrip(t *testing.T) {
	in := BookingAddress{
		Type:    "HOME",
		Street:  "12 MG Road",
		City:    "Bengaluru",
		State:   "Karnataka",
		ZipCode: "560001",
	}

	value, err := in.Value()
	require.NoError(t, err)

	var out BookingAddress
	require.NoError(t, out.Scan(value))
	assert.Equal(t, in, out)

	// Byte slices from the driver scan the same way
	var fromBytes BookingAddress
	require.NoError(t, fromBytes.Scan([]byte(value.(string))))
	assert.Equal(t, in, fromBytes)

	// NULL column leaves the zero value alone
	var fromNil BookingAddress
	require.NoError(t, fromNil.Scan(nil))
	assert.Equal(t, BookingAddress{}, fromNil)

	assert.Error(t, new(BookingAddress).Scan(42))
}
