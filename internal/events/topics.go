package events

import "fmt"

// Partition key per entity id keeps one entity's events ordered.
func OrderKey(orderID uint) []byte {
	return []byte(fmt.Sprintf("order:%d", orderID))
}

func BookingKey(bookingID uint) []byte {
	return []byte(fmt.Sprintf("booking:%d", bookingID))
}
