package service

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"buildmart/internal/domain"
	apperrors "buildmart/internal/errors"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type MaterialRepository interface {
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.Material, error)
	DecrementStock(ctx context.Context, tx *sql.Tx, id uint, quantity int) error
}

type OrderWriter interface {
	Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error)
}

type OrderItemWriter interface {
	Insert(ctx context.Context, tx *sql.Tx, item domain.OrderItem) (uint, error)
}

type CheckoutItem struct {
	MaterialID uint
	Quantity   int
}

type CheckoutService struct {
	db            TransactionManager
	materialRepo  MaterialRepository
	orderRepo     OrderWriter
	orderItemRepo OrderItemWriter
	logger        *zap.Logger
	txTimeout     time.Duration
}

func NewCheckoutService(
	db TransactionManager,
	materialRepo MaterialRepository,
	orderRepo OrderWriter,
	orderItemRepo OrderItemWriter,
	logger *zap.Logger,
	txTimeout time.Duration,
) *CheckoutService {
	return &CheckoutService{
		db:            db,
		materialRepo:  materialRepo,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		logger:        logger,
		txTimeout:     txTimeout,
	}
}

// PlaceOrder creates a pending order. Prices come from the materials table,
// never from the client, and stock is locked and decremented in the same
// transaction. All items must be available; there is no partial checkout.
func (s *CheckoutService) PlaceOrder(
	ctx context.Context,
	customerID uint,
	dealerID uint,
	items []CheckoutItem,
) (*domain.Order, error) {
	// Lock rows in a fixed order so concurrent checkouts cannot deadlock.
	sort.Slice(items, func(i, j int) bool { return items[i].MaterialID < items[j].MaterialID })

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	// MySQL ignores rollback after a commit.
	defer tx.Rollback()

	var totalCents int64
	orderItems := make([]domain.OrderItem, 0, len(items))

	for _, item := range items {
		material, err := s.materialRepo.FindByIDForUpdate(txCtx, tx, item.MaterialID)
		if err != nil {
			return nil, err
		}

		if material.DealerID != dealerID {
			return nil, apperrors.NewValidationError("material does not belong to dealer", apperrors.ValidationDetail{
				Field:   "items",
				Message: "all items must come from the order's dealer",
			})
		}

		if !material.Available(item.Quantity) {
			return nil, apperrors.NewConflictError(material.Name + " is out of stock")
		}

		if err := s.materialRepo.DecrementStock(txCtx, tx, item.MaterialID, item.Quantity); err != nil {
			return nil, err
		}

		totalCents += material.PriceCents * int64(item.Quantity)
		orderItems = append(orderItems, domain.OrderItem{
			MaterialID: item.MaterialID,
			Quantity:   item.Quantity,
			PriceCents: material.PriceCents,
		})
	}

	order := domain.Order{
		OrderNumber:   uuid.NewString(),
		CustomerID:    customerID,
		DealerID:      dealerID,
		Status:        domain.OrderStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
		TotalCents:    totalCents,
	}

	orderID, err := s.orderRepo.Insert(txCtx, tx, order)
	if err != nil {
		s.logger.Error("failed to insert order", zap.Error(err))
		return nil, err
	}
	order.ID = orderID

	for _, item := range orderItems {
		item.OrderID = orderID
		if _, err := s.orderItemRepo.Insert(txCtx, tx, item); err != nil {
			s.logger.Error("failed to insert order item", zap.Uint("orderId", orderID), zap.Error(err))
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit checkout", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("order placed",
		zap.Uint("orderId", orderID),
		zap.Uint("customerId", customerID),
		zap.Uint("dealerId", dealerID),
		zap.Int64("totalCents", totalCents),
	)

	return &order, nil
}
