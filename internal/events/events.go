package events

import (
	"encoding/json"
	"time"
)

const (
	EventOrderPlaced          = "OrderPlaced"
	EventOrderConfirmed       = "OrderConfirmed"
	EventOrderVerified        = "OrderVerified"
	EventAdvancePaid          = "AdvancePaid"
	EventDuePaid              = "DuePaid"
	EventOrderStatusChanged   = "OrderStatusChanged"
	EventOrderCancelled       = "OrderCancelled"
	EventBookingPlaced        = "BookingPlaced"
	EventBookingStatusChanged = "BookingStatusChanged"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

type OrderConfirmedPayload struct {
	OrderID  uint   `json:"order_id"`
	Party    string `json:"party"` // dealer | customer
	Verified bool   `json:"verified"`
}

type PaymentPayload struct {
	OrderID     uint   `json:"order_id"`
	Stage       string `json:"stage"` // advance | due
	AmountCents int64  `json:"amount_cents"`
}

type StatusChangedPayload struct {
	OrderID uint   `json:"order_id"`
	From    string `json:"from"`
	To      string `json:"to"`
}

type BookingStatusPayload struct {
	BookingID uint   `json:"booking_id"`
	From      string `json:"from"`
	To        string `json:"to"`
}
