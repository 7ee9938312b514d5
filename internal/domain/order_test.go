package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitAdvance(t *testing.T) {
	tests := []struct {
		name        string
		totalCents  int64
		wantAdvance int64
		wantDue     int64
	}{
		{"round total", 100000, 30000, 70000},
		{"thousand cents", 1000, 300, 700},
		{"rounds half up", 101, 30, 71},
		{"single cent", 1, 0, 1},
		{"zero", 0, 0, 0},
		{"large total", 123456789, 37037037, 86419752},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			advance, due := SplitAdvance(tt.totalCents)
			assert.Equal(t, tt.wantAdvance, advance)
			assert.Equal(t, tt.wantDue, due)
			assert.Equal(t, tt.totalCents, advance+due, "advance and due must sum to total")
		})
	}
}

func TestCanAdvance(t *testing.T) {
	tests := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{"verified to processing", OrderStatusVerified, OrderStatusProcessing, true},
		{"paid to processing", OrderStatusPaid, OrderStatusProcessing, true},
		{"processing to shipped", OrderStatusProcessing, OrderStatusShipped, true},
		{"shipped to out for delivery", OrderStatusShipped, OrderStatusOutForDelivery, true},
		{"out for delivery to delivered", OrderStatusOutForDelivery, OrderStatusDelivered, true},
		{"no skipping steps", OrderStatusVerified, OrderStatusShipped, false},
		{"no moving backwards", OrderStatusShipped, OrderStatusProcessing, false},
		{"pending is not advanceable", OrderStatusPending, OrderStatusDelivered, false},
		{"cannot target verified", OrderStatusVerified, OrderStatusPaid, false},
		{"delivered is terminal", OrderStatusDelivered, OrderStatusDelivered, false},
		{"cancelled is not advanceable", OrderStatusCancelled, OrderStatusProcessing, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAdvance(tt.from, tt.to))
		})
	}
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.True(t, OrderStatusDelivered.Terminal())
	assert.True(t, OrderStatusCancelled.Terminal())
	assert.False(t, OrderStatusPending.Terminal())
	assert.False(t, OrderStatusOutForDelivery.Terminal())
}

func TestParseOrderStatus(t *testing.T) {
	st, ok := ParseOrderStatus("out_for_delivery")
	assert.True(t, ok)
	assert.Equal(t, OrderStatusOutForDelivery, st)

	_, ok = ParseOrderStatus("SHIPPED")
	assert.False(t, ok)

	_, ok = ParseOrderStatus("")
	assert.False(t, ok)
}

func TestOrder_BothConfirmed(t *testing.T) {
	order := Order{DealerConfirmed: true}
	assert.False(t, order.BothConfirmed())

	order.CustomerConfirmed = true
	assert.True(t, order.BothConfirmed())
}

func TestOrder_NextAction(t *testing.T) {
	tests := []struct {
		status OrderStatus
		want   OrderAction
	}{
		{OrderStatusPending, ActionAwaitConfirmation},
		{OrderStatusVerified, ActionPayAdvance},
		{OrderStatusPaid, ActionPayDue},
		{OrderStatusProcessing, ActionInFulfilment},
		{OrderStatusShipped, ActionInFulfilment},
		{OrderStatusOutForDelivery, ActionInFulfilment},
		{OrderStatusDelivered, ActionCompleted},
		{OrderStatusCancelled, ActionCancelled},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			order := Order{Status: tt.status}
			assert.Equal(t, tt.want, order.NextAction())
		})
	}
}
