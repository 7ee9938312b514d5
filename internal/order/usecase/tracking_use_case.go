package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"buildmart/internal/domain"
	"buildmart/internal/infrastructure/redisx"
)

type OrderReader interface {
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
}

// TrackingView is the read-only projection the client tracking screen
// renders. NextAction is the single valid action for the current status.
type TrackingView struct {
	OrderID           uint                 `json:"orderId"`
	OrderNumber       string               `json:"orderNumber"`
	Status            domain.OrderStatus   `json:"status"`
	PaymentStatus     domain.PaymentStatus `json:"paymentStatus"`
	DealerConfirmed   bool                 `json:"dealerConfirmed"`
	CustomerConfirmed bool                 `json:"customerConfirmed"`
	TotalCents        int64                `json:"totalCents"`
	AdvancePaidCents  int64                `json:"advancePaidCents"`
	DueAmountCents    int64                `json:"dueAmountCents"`
	IsAdvancePaid     bool                 `json:"isAdvancePaid"`
	IsDuePaid         bool                 `json:"isDuePaid"`
	NextAction        domain.OrderAction   `json:"nextAction"`
	UpdatedAt         time.Time            `json:"updatedAt"`
}

// TrackingUseCase serves the polling tracking view with a Redis cache in
// front of the database. A nil Redis client disables caching.
type TrackingUseCase struct {
	orderRepo OrderReader
	rdb       *redis.Client
	ttl       time.Duration
	logger    *zap.Logger
}

func NewTrackingUseCase(orderRepo OrderReader, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *TrackingUseCase {
	return &TrackingUseCase{
		orderRepo: orderRepo,
		rdb:       rdb,
		ttl:       ttl,
		logger:    logger,
	}
}

func (uc *TrackingUseCase) Track(ctx context.Context, orderID uint) (*TrackingView, error) {
	if uc.rdb != nil {
		key := fmt.Sprintf(redisx.KeyOrderTracking, orderID)
		if cached, err := uc.rdb.Get(ctx, key).Result(); err == nil && cached != "" {
			var view TrackingView
			if err := json.Unmarshal([]byte(cached), &view); err == nil {
				return &view, nil
			}
		}
	}

	order, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	view := Project(order)

	if uc.rdb != nil {
		key := fmt.Sprintf(redisx.KeyOrderTracking, orderID)
		if b, err := json.Marshal(view); err == nil {
			if err := uc.rdb.Set(ctx, key, b, uc.ttl).Err(); err != nil {
				uc.logger.Warn("failed to cache tracking view", zap.Uint("orderId", orderID), zap.Error(err))
			}
		}
	}

	return view, nil
}

// Invalidate drops the cached projection after a mutation.
func (uc *TrackingUseCase) Invalidate(ctx context.Context, orderID uint) {
	if uc.rdb == nil {
		return
	}
	key := fmt.Sprintf(redisx.KeyOrderTracking, orderID)
	if err := uc.rdb.Del(ctx, key).Err(); err != nil {
		uc.logger.Warn("failed to invalidate tracking cache", zap.Uint("orderId", orderID), zap.Error(err))
	}
}

// Project maps an order record to its tracking view. Pure; no side effects.
func Project(order *domain.Order) *TrackingView {
	return &TrackingView{
		OrderID:           order.ID,
		OrderNumber:       order.OrderNumber,
		Status:            order.Status,
		PaymentStatus:     order.PaymentStatus,
		DealerConfirmed:   order.DealerConfirmed,
		CustomerConfirmed: order.CustomerConfirmed,
		TotalCents:        order.TotalCents,
		AdvancePaidCents:  order.AdvancePaidCents,
		DueAmountCents:    order.DueAmountCents,
		IsAdvancePaid:     order.IsAdvancePaid,
		IsDuePaid:         order.IsDuePaid,
		NextAction:        order.NextAction(),
		UpdatedAt:         order.UpdatedAt,
	}
}
