package usecase

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"buildmart/internal/domain"
	apperrors "buildmart/internal/errors"
	"buildmart/internal/events"
	"buildmart/internal/order/service"
)

type CheckoutService interface {
	PlaceOrder(ctx context.Context, customerID, dealerID uint, items []service.CheckoutItem) (*domain.Order, error)
}

type PlaceOrderUseCase struct {
	checkoutSvc      CheckoutService
	publisher        *events.Publisher
	logger           *zap.Logger
	maxRetryAttempts int
}

func NewPlaceOrderUseCase(
	checkoutSvc CheckoutService,
	publisher *events.Publisher,
	logger *zap.Logger,
	maxRetryAttempts int,
) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{
		checkoutSvc:      checkoutSvc,
		publisher:        publisher,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
	}
}

func (uc *PlaceOrderUseCase) PlaceOrder(
	ctx context.Context,
	traceID string,
	customerID uint,
	dealerID uint,
	items []service.CheckoutItem,
) (*domain.Order, error) {
	uc.logger.Info("checkout started",
		zap.String("traceId", traceID),
		zap.Uint("customerId", customerID),
		zap.Uint("dealerId", dealerID),
		zap.Int("itemCount", len(items)),
	)

	order, err := uc.placeWithRetry(ctx, customerID, dealerID, items)
	if err != nil {
		return nil, err
	}

	uc.publisher.PublishOrder(events.EventOrderPlaced, traceID, order.ID, events.StatusChangedPayload{
		OrderID: order.ID,
		To:      string(domain.OrderStatusPending),
	})

	return order, nil
}

func (uc *PlaceOrderUseCase) placeWithRetry(
	ctx context.Context,
	customerID uint,
	dealerID uint,
	items []service.CheckoutItem,
) (*domain.Order, error) {
	maxAttempts := uc.maxRetryAttempts
	backoffs := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		order, err := uc.checkoutSvc.PlaceOrder(ctx, customerID, dealerID, items)
		if err == nil {
			return order, nil
		}

		if isDeadlockError(err) {
			if attempt < maxAttempts {
				backoff := backoffs[(attempt-1)%len(backoffs)]
				jitter := time.Duration(float64(backoff) * (0.8 + rand.Float64()*0.4))
				time.Sleep(jitter)
				uc.logger.Warn("deadlock detected, retrying checkout",
					zap.Int("attempt", attempt), zap.Int("maxAttempts", maxAttempts))
				continue
			}
			break
		}

		return nil, err
	}

	return nil, apperrors.NewDeadlockError("max retries exceeded")
}

func isDeadlockError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	return false
}
