package controller

import (
	"time"

	"buildmart/internal/domain"
)

type CreateOrderRequest struct {
	DealerID uint              `json:"dealerId" validate:"required,gt=0"`
	Items    []CreateOrderItem `json:"items" validate:"required,min=1,max=100,dive"`
}

type CreateOrderItem struct {
	MaterialID uint `json:"materialId" validate:"required,gt=0"`
	Quantity   int  `json:"quantity" validate:"required,min=1,max=10000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type OrderResponse struct {
	ID                uint                 `json:"id"`
	OrderNumber       string               `json:"orderNumber"`
	CustomerID        uint                 `json:"customerId"`
	DealerID          uint                 `json:"dealerId"`
	Status            domain.OrderStatus   `json:"status"`
	PaymentStatus     domain.PaymentStatus `json:"paymentStatus"`
	DealerConfirmed   bool                 `json:"dealerConfirmed"`
	CustomerConfirmed bool                 `json:"customerConfirmed"`
	TotalCents        int64                `json:"totalCents"`
	AdvancePaidCents  int64                `json:"advancePaidCents"`
	DueAmountCents    int64                `json:"dueAmountCents"`
	IsAdvancePaid     bool                 `json:"isAdvancePaid"`
	IsDuePaid         bool                 `json:"isDuePaid"`
	CreatedAt         time.Time            `json:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt"`
}

func toOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:                order.ID,
		OrderNumber:       order.OrderNumber,
		CustomerID:        order.CustomerID,
		DealerID:          order.DealerID,
		Status:            order.Status,
		PaymentStatus:     order.PaymentStatus,
		DealerConfirmed:   order.DealerConfirmed,
		CustomerConfirmed: order.CustomerConfirmed,
		TotalCents:        order.TotalCents,
		AdvancePaidCents:  order.AdvancePaidCents,
		DueAmountCents:    order.DueAmountCents,
		IsAdvancePaid:     order.IsAdvancePaid,
		IsDuePaid:         order.IsDuePaid,
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
	}
}

func toOrderResponses(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = toOrderResponse(&orders[i])
	}
	return out
}
