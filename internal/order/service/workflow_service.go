package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"buildmart/internal/domain"
	apperrors "buildmart/internal/errors"
	"buildmart/internal/events"
)

type OrderRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	ConfirmDealer(ctx context.Context, id uint) (bool, error)
	ConfirmCustomer(ctx context.Context, id uint) (bool, error)
	ApplyAdvancePayment(ctx context.Context, id uint, advanceCents, dueCents int64) (bool, error)
	ApplyDuePayment(ctx context.Context, id uint) (bool, error)
	UpdateStatus(ctx context.Context, id uint, from, to domain.OrderStatus) (bool, error)
	Delete(ctx context.Context, id uint) error
	FindPending(ctx context.Context) ([]domain.Order, error)
	FindConfirmed(ctx context.Context) ([]domain.Order, error)
	FindByCustomer(ctx context.Context, customerID uint) ([]domain.Order, error)
	FindByDealer(ctx context.Context, dealerID uint) ([]domain.Order, error)
}

type NotificationWriter interface {
	Insert(ctx context.Context, n domain.Notification) (uint, error)
}

type TrackingCache interface {
	Invalidate(ctx context.Context, orderID uint)
}

// WorkflowService owns every post-checkout order mutation: the dual
// confirmation, the 30/70 payment milestones, the forward-only status
// progression and cancellation.
type WorkflowService struct {
	orderRepo OrderRepository
	notifRepo NotificationWriter
	publisher *events.Publisher
	cache     TrackingCache
	logger    *zap.Logger
}

func NewWorkflowService(
	orderRepo OrderRepository,
	notifRepo NotificationWriter,
	publisher *events.Publisher,
	cache TrackingCache,
	logger *zap.Logger,
) *WorkflowService {
	return &WorkflowService{
		orderRepo: orderRepo,
		notifRepo: notifRepo,
		publisher: publisher,
		cache:     cache,
		logger:    logger,
	}
}

// ConfirmFromDealer is monotonic: a repeated call returns the order
// unchanged. Once the customer flag is already set, the repository promotes
// the status to verified in the same statement.
func (s *WorkflowService) ConfirmFromDealer(ctx context.Context, traceID string, id uint) (*domain.Order, error) {
	return s.confirm(ctx, traceID, id, "dealer")
}

func (s *WorkflowService) ConfirmFromCustomer(ctx context.Context, traceID string, id uint) (*domain.Order, error) {
	return s.confirm(ctx, traceID, id, "customer")
}

func (s *WorkflowService) confirm(ctx context.Context, traceID string, id uint, party string) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	alreadyConfirmed := order.DealerConfirmed
	if party == "customer" {
		alreadyConfirmed = order.CustomerConfirmed
	}
	if alreadyConfirmed {
		return order, nil
	}

	if order.Status != domain.OrderStatusPending {
		return nil, apperrors.NewConflictError("order is not awaiting confirmation")
	}

	var applied bool
	if party == "dealer" {
		applied, err = s.orderRepo.ConfirmDealer(ctx, id)
	} else {
		applied, err = s.orderRepo.ConfirmCustomer(ctx, id)
	}
	if err != nil {
		return nil, err
	}

	updated, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !applied {
		// The order moved underneath us between the read and the conditional
		// update. A racing duplicate confirmation is still a no-op; anything
		// else means the order left pending and the write never landed.
		confirmed := updated.DealerConfirmed
		if party == "customer" {
			confirmed = updated.CustomerConfirmed
		}
		if confirmed {
			return updated, nil
		}
		return nil, apperrors.NewConflictError("order is not awaiting confirmation")
	}

	verified := updated.Status == domain.OrderStatusVerified
	eventType := events.EventOrderConfirmed
	if verified {
		eventType = events.EventOrderVerified
	}
	s.publisher.PublishOrder(eventType, traceID, id, events.OrderConfirmedPayload{
		OrderID:  id,
		Party:    party,
		Verified: verified,
	})

	if verified {
		s.notify(ctx, updated.CustomerID, "order",
			fmt.Sprintf("Order %s is verified, the advance payment is now due", updated.OrderNumber))
	}
	s.invalidate(ctx, id)

	s.logger.Info("order confirmed",
		zap.String("traceId", traceID),
		zap.Uint("orderId", id),
		zap.String("party", party),
		zap.Bool("verified", verified),
	)

	return updated, nil
}

// PayAdvance records the 30% milestone. The advance is rounded half up and
// the due amount is the exact remainder, so the two always sum to the total.
// A repeated call is rejected, never re-applied.
func (s *WorkflowService) PayAdvance(ctx context.Context, traceID string, id uint) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.IsAdvancePaid {
		return nil, apperrors.NewConflictError("advance already paid")
	}
	if order.Status != domain.OrderStatusVerified {
		return nil, apperrors.NewConflictError("order is not verified")
	}

	advance, due := domain.SplitAdvance(order.TotalCents)
	applied, err := s.orderRepo.ApplyAdvancePayment(ctx, id, advance, due)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, apperrors.NewConflictError("advance already paid")
	}

	updated, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publisher.PublishOrder(events.EventAdvancePaid, traceID, id, events.PaymentPayload{
		OrderID:     id,
		Stage:       "advance",
		AmountCents: advance,
	})
	s.notify(ctx, updated.DealerID, "payment",
		fmt.Sprintf("Advance received for order %s", updated.OrderNumber))
	s.invalidate(ctx, id)

	s.logger.Info("advance paid",
		zap.String("traceId", traceID),
		zap.Uint("orderId", id),
		zap.Int64("advanceCents", advance),
		zap.Int64("dueCents", due),
	)

	return updated, nil
}

// PayDue settles the remainder and moves the order into processing.
func (s *WorkflowService) PayDue(ctx context.Context, traceID string, id uint) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.IsAdvancePaid {
		return nil, apperrors.NewConflictError("advance has not been paid")
	}
	if order.IsDuePaid {
		return nil, apperrors.NewConflictError("due amount already paid")
	}

	applied, err := s.orderRepo.ApplyDuePayment(ctx, id)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, apperrors.NewConflictError("due amount already paid")
	}

	updated, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publisher.PublishOrder(events.EventDuePaid, traceID, id, events.PaymentPayload{
		OrderID:     id,
		Stage:       "due",
		AmountCents: order.DueAmountCents,
	})
	s.notify(ctx, updated.DealerID, "payment",
		fmt.Sprintf("Order %s fully paid, ready for processing", updated.OrderNumber))
	s.invalidate(ctx, id)

	s.logger.Info("due paid", zap.String("traceId", traceID), zap.Uint("orderId", id))

	return updated, nil
}

// AdvanceStatus applies an administrative forward step along the fulfilment
// sequence. Anything else is an invalid transition.
func (s *WorkflowService) AdvanceStatus(ctx context.Context, traceID string, id uint, next domain.OrderStatus) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanAdvance(order.Status, next) {
		return nil, apperrors.NewInvalidTransitionError(string(order.Status), string(next))
	}

	applied, err := s.orderRepo.UpdateStatus(ctx, id, order.Status, next)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, apperrors.NewConflictError("order status changed concurrently")
	}

	updated, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publisher.PublishOrder(events.EventOrderStatusChanged, traceID, id, events.StatusChangedPayload{
		OrderID: id,
		From:    string(order.Status),
		To:      string(next),
	})
	s.notify(ctx, updated.CustomerID, "order",
		fmt.Sprintf("Order %s is now %s", updated.OrderNumber, next))
	s.invalidate(ctx, id)

	s.logger.Info("order status advanced",
		zap.String("traceId", traceID),
		zap.Uint("orderId", id),
		zap.String("from", string(order.Status)),
		zap.String("to", string(next)),
	)

	return updated, nil
}

// Cancel moves any non-terminal order to cancelled.
func (s *WorkflowService) Cancel(ctx context.Context, traceID string, id uint) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status.Terminal() {
		return nil, apperrors.NewInvalidTransitionError(string(order.Status), string(domain.OrderStatusCancelled))
	}

	applied, err := s.orderRepo.UpdateStatus(ctx, id, order.Status, domain.OrderStatusCancelled)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, apperrors.NewConflictError("order status changed concurrently")
	}

	updated, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publisher.PublishOrder(events.EventOrderCancelled, traceID, id, events.StatusChangedPayload{
		OrderID: id,
		From:    string(order.Status),
		To:      string(domain.OrderStatusCancelled),
	})
	s.notify(ctx, updated.CustomerID, "order",
		fmt.Sprintf("Order %s was cancelled", updated.OrderNumber))
	s.invalidate(ctx, id)

	s.logger.Info("order cancelled", zap.String("traceId", traceID), zap.Uint("orderId", id))

	return updated, nil
}

func (s *WorkflowService) Delete(ctx context.Context, id uint) error {
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *WorkflowService) GetByID(ctx context.Context, id uint) (*domain.Order, error) {
	return s.orderRepo.FindByID(ctx, id)
}

func (s *WorkflowService) ListPending(ctx context.Context) ([]domain.Order, error) {
	return s.orderRepo.FindPending(ctx)
}

func (s *WorkflowService) ListConfirmed(ctx context.Context) ([]domain.Order, error) {
	return s.orderRepo.FindConfirmed(ctx)
}

func (s *WorkflowService) ListByCustomer(ctx context.Context, customerID uint) ([]domain.Order, error) {
	return s.orderRepo.FindByCustomer(ctx, customerID)
}

func (s *WorkflowService) ListByDealer(ctx context.Context, dealerID uint) ([]domain.Order, error) {
	return s.orderRepo.FindByDealer(ctx, dealerID)
}

func (s *WorkflowService) invalidate(ctx context.Context, id uint) {
	if s.cache == nil {
		return
	}
	s.cache.Invalidate(ctx, id)
}

// Notification failures never fail the order operation.
func (s *WorkflowService) notify(ctx context.Context, userID uint, kind, message string) {
	if s.notifRepo == nil {
		return
	}
	if _, err := s.notifRepo.Insert(ctx, domain.Notification{
		UserID:  userID,
		Kind:    kind,
		Message: message,
	}); err != nil {
		s.logger.Warn("failed to write notification", zap.Uint("userId", userID), zap.Error(err))
	}
}
