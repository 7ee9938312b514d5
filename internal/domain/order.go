package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusVerified       OrderStatus = "verified"
	OrderStatusPaid           OrderStatus = "paid"
	OrderStatusProcessing     OrderStatus = "processing"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending       PaymentStatus = "pending"
	PaymentStatusPartiallyPaid PaymentStatus = "partially_paid"
	PaymentStatusPaid          PaymentStatus = "paid"
)

var orderStatuses = map[OrderStatus]bool{
	OrderStatusPending:        true,
	OrderStatusVerified:       true,
	OrderStatusPaid:           true,
	OrderStatusProcessing:     true,
	OrderStatusShipped:        true,
	OrderStatusOutForDelivery: true,
	OrderStatusDelivered:      true,
	OrderStatusCancelled:      true,
}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	st := OrderStatus(s)
	return st, orderStatuses[st]
}

// Fulfilment positions along the forward-only sequence. verified and paid
// share a slot: the administrative endpoint may move either to processing
// (payment milestones are tracked separately on the record).
var orderRank = map[OrderStatus]int{
	OrderStatusVerified:       0,
	OrderStatusPaid:           0,
	OrderStatusProcessing:     1,
	OrderStatusShipped:        2,
	OrderStatusOutForDelivery: 3,
	OrderStatusDelivered:      4,
}

// CanAdvance reports whether the administrative status endpoint may move an
// order from one status to the next. Only single forward steps along
// verified/paid -> processing -> shipped -> out_for_delivery -> delivered
// are permitted; pending, verified, paid and cancelled are reached through
// their dedicated operations.
func CanAdvance(from, to OrderStatus) bool {
	fromRank, ok := orderRank[from]
	if !ok {
		return false
	}
	toRank, ok := orderRank[to]
	if !ok || to == OrderStatusVerified || to == OrderStatusPaid {
		return false
	}
	return toRank == fromRank+1
}

func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

type Order struct {
	ID                uint
	OrderNumber       string
	CustomerID        uint
	DealerID          uint
	Status            OrderStatus
	PaymentStatus     PaymentStatus
	DealerConfirmed   bool
	CustomerConfirmed bool
	TotalCents        int64
	AdvancePaidCents  int64
	DueAmountCents    int64
	IsAdvancePaid     bool
	IsDuePaid         bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type OrderItem struct {
	ID         uint
	OrderID    uint
	MaterialID uint
	Quantity   int
	PriceCents int64
}

func (o Order) BothConfirmed() bool {
	return o.DealerConfirmed && o.CustomerConfirmed
}

// SplitAdvance computes the 30% advance, rounded half up to the cent, and
// reconciles the due amount against the total so the two always sum exactly.
func SplitAdvance(totalCents int64) (advance, due int64) {
	advance = (totalCents*30 + 50) / 100
	return advance, totalCents - advance
}

type OrderAction string

const (
	ActionAwaitConfirmation OrderAction = "await_confirmation"
	ActionPayAdvance        OrderAction = "pay_advance"
	ActionPayDue            OrderAction = "pay_due"
	ActionInFulfilment      OrderAction = "in_fulfilment"
	ActionCompleted         OrderAction = "completed"
	ActionCancelled         OrderAction = "cancelled"
)

// NextAction projects the order onto the single action the tracking view
// should offer. It is a pure function of the record.
func (o Order) NextAction() OrderAction {
	switch o.Status {
	case OrderStatusPending:
		return ActionAwaitConfirmation
	case OrderStatusVerified:
		return ActionPayAdvance
	case OrderStatusPaid:
		return ActionPayDue
	case OrderStatusProcessing, OrderStatusShipped, OrderStatusOutForDelivery:
		return ActionInFulfilment
	case OrderStatusDelivered:
		return ActionCompleted
	default:
		return ActionCancelled
	}
}
