package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusApproved  BookingStatus = "approved"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

var bookingNext = map[BookingStatus]map[BookingStatus]bool{
	BookingStatusPending:   {BookingStatusApproved: true, BookingStatusCancelled: true},
	BookingStatusApproved:  {BookingStatusActive: true, BookingStatusCancelled: true},
	BookingStatusActive:    {BookingStatusCompleted: true, BookingStatusCancelled: true},
	BookingStatusCompleted: {},
	BookingStatusCancelled: {},
}

func CanTransitionBooking(from, to BookingStatus) bool {
	return bookingNext[from][to]
}

func ParseBookingStatus(s string) (BookingStatus, bool) {
	st := BookingStatus(s)
	_, ok := bookingNext[st]
	return st, ok
}

func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

type Booking struct {
	ID                   uint
	BookingNumber        string
	CustomerID           uint
	MerchantID           uint
	EquipmentName        string
	DailyRateCents       int64
	Days                 int
	TotalCostCents       int64
	SecurityDepositCents int64
	Status               BookingStatus
	StartDate            time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// RentalCost computes the booking total and the 20% security deposit,
// rounded half up to the cent.
func RentalCost(dailyRateCents int64, days int) (total, deposit int64) {
	total = dailyRateCents * int64(days)
	deposit = (total*20 + 50) / 100
	return total, deposit
}
