package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRentalCost(t *testing.T) {
	tests := []struct {
		name        string
		dailyRate   int64
		days        int
		wantTotal   int64
		wantDeposit int64
	}{
		{"one week", 5000, 7, 35000, 7000},
		{"single day", 9999, 1, 9999, 2000},
		{"deposit rounds half up", 101, 1, 101, 20},
		{"zero days", 5000, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, deposit := RentalCost(tt.dailyRate, tt.days)
			assert.Equal(t, tt.wantTotal, total)
			assert.Equal(t, tt.wantDeposit, deposit)
		})
	}
}

func TestCanTransitionBooking(t *testing.T) {
	tests := []struct {
		name string
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{"pending to approved", BookingStatusPending, BookingStatusApproved, true},
		{"pending to cancelled", BookingStatusPending, BookingStatusCancelled, true},
		{"approved to active", BookingStatusApproved, BookingStatusActive, true},
		{"active to completed", BookingStatusActive, BookingStatusCompleted, true},
		{"active to cancelled", BookingStatusActive, BookingStatusCancelled, true},
		{"pending cannot skip to active", BookingStatusPending, BookingStatusActive, false},
		{"approved cannot complete", BookingStatusApproved, BookingStatusCompleted, false},
		{"completed is frozen", BookingStatusCompleted, BookingStatusCancelled, false},
		{"cancelled is frozen", BookingStatusCancelled, BookingStatusApproved, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransitionBooking(tt.from, tt.to))
		})
	}
}

func TestBookingStatus_Terminal(t *testing.T) {
	assert.True(t, BookingStatusCompleted.Terminal())
	assert.True(t, BookingStatusCancelled.Terminal())
	assert.False(t, BookingStatusPending.Terminal())
	assert.False(t, BookingStatusActive.Terminal())
}

func TestParseBookingStatus(t *testing.T) {
	st, ok := ParseBookingStatus("approved")
	assert.True(t, ok)
	assert.Equal(t, BookingStatusApproved, st)

	_, ok = ParseBookingStatus("returned")
	assert.False(t, ok)
}
