package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"buildmart/internal/auth"
	"buildmart/internal/domain"
	apperrors "buildmart/internal/errors"
	"buildmart/internal/order/service"
	"buildmart/internal/order/usecase"
	"buildmart/internal/validation"
)

type PlaceOrderUseCase interface {
	PlaceOrder(ctx context.Context, traceID string, customerID, dealerID uint, items []service.CheckoutItem) (*domain.Order, error)
}

type WorkflowService interface {
	ConfirmFromDealer(ctx context.Context, traceID string, id uint) (*domain.Order, error)
	ConfirmFromCustomer(ctx context.Context, traceID string, id uint) (*domain.Order, error)
	PayAdvance(ctx context.Context, traceID string, id uint) (*domain.Order, error)
	PayDue(ctx context.Context, traceID string, id uint) (*domain.Order, error)
	AdvanceStatus(ctx context.Context, traceID string, id uint, next domain.OrderStatus) (*domain.Order, error)
	Cancel(ctx context.Context, traceID string, id uint) (*domain.Order, error)
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*domain.Order, error)
	ListPending(ctx context.Context) ([]domain.Order, error)
	ListConfirmed(ctx context.Context) ([]domain.Order, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]domain.Order, error)
	ListByDealer(ctx context.Context, dealerID uint) ([]domain.Order, error)
}

type TrackingUseCase interface {
	Track(ctx context.Context, orderID uint) (*usecase.TrackingView, error)
}

type OrderController struct {
	placeOrder PlaceOrderUseCase
	workflow   WorkflowService
	tracking   TrackingUseCase
	validator  *validation.Validator
	logger     *zap.Logger
}

func NewOrderController(
	placeOrder PlaceOrderUseCase,
	workflow WorkflowService,
	tracking TrackingUseCase,
	validator *validation.Validator,
	logger *zap.Logger,
) *OrderController {
	return &OrderController{
		placeOrder: placeOrder,
		workflow:   workflow,
		tracking:   tracking,
		validator:  validator,
		logger:     logger,
	}
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		c.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}

	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body", []apperrors.ValidationDetail{
			{Field: "body", Message: "request body must be valid JSON"},
		})
		return
	}

	if err := c.validator.Validate(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", ve.Message, ve.Details)
		return
	}

	items := make([]service.CheckoutItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.CheckoutItem{
			MaterialID: item.MaterialID,
			Quantity:   item.Quantity,
		}
	}

	order, err := c.placeOrder.PlaceOrder(r.Context(), traceID, claims.UserID, req.DealerID, items)
	if err != nil {
		c.handleServiceError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	id, ok := c.orderID(w, r)
	if !ok {
		return
	}

	order, err := c.workflow.GetByID(r.Context(), id)
	if err != nil {
		c.handleServiceError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// ListMine returns the caller's orders: a dealer sees the orders placed
// against their catalog, everyone else the orders they placed.
func (c *OrderController) ListMine(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		c.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}

	var (
		orders []domain.Order
		err    error
	)
	if claims.Role == domain.RoleDealer {
		orders, err = c.workflow.ListByDealer(r.Context(), claims.UserID)
	} else {
		orders, err = c.workflow.ListByCustomer(r.Context(), claims.UserID)
	}
	if err != nil {
		c.handleServiceError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (c *OrderController) ListPending(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orders, err := c.workflow.ListPending(r.Context())
	if err != nil {
		c.handleServiceError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (c *OrderController) ListConfirmed(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orders, err := c.workflow.ListConfirmed(r.Context())
	if err != nil {
		c.handleServiceError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (c *OrderController) Track(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	id, ok := c.orderID(w, r)
	if !ok {
		return
	}

	view, err := c.tracking.Track(r.Context(), id)
	if err != nil {
		c.handleServiceError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, view)
}

func (c *OrderController) ConfirmDealer(w http.ResponseWriter, r *http.Request) {
	c.mutate(w, r, func(ctx context.Context, traceID string, id uint) (*domain.Order, error) {
		return c.workflow.ConfirmFromDealer(ctx, traceID, id)
	})
}

func (c *OrderController) ConfirmCustomer(w http.ResponseWriter, r *http.Request) {
	c.mutate(w, r, func(ctx context.Context, traceID string, id uint) (*domain.Order, error) {
		return c.workflow.ConfirmFromCustomer(ctx, traceID, id)
	})
}

func (c *OrderController) PayAdvance(w http.ResponseWriter, r *http.Request) {
	c.mutate(w, r, func(ctx context.Context, traceID string, id uint) (*domain.Order, error) {
		return c.workflow.PayAdvance(ctx, traceID, id)
	})
}

func (c *OrderController) PayDue(w http.ResponseWriter, r *http.Request) {
	c.mutate(w, r, func(ctx context.Context, traceID string, id uint) (*domain.Order, error) {
		return c.workflow.PayDue(ctx, traceID, id)
	})
}

func (c *OrderController) Cancel(w http.ResponseWriter, r *http.Request) {
	c.mutate(w, r, func(ctx context.Context, traceID string, id uint) (*domain.Order, error) {
		return c.workflow.Cancel(ctx, traceID, id)
	})
}

func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	id, ok := c.orderID(w, r)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body", []apperrors.ValidationDetail{
			{Field: "body", Message: "request body must be valid JSON"},
		})
		return
	}

	if err := c.validator.Validate(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", ve.Message, ve.Details)
		return
	}

	next, ok := domain.ParseOrderStatus(req.Status)
	if !ok {
		c.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", []apperrors.ValidationDetail{
			{Field: "status", Message: "unknown order status"},
		})
		return
	}

	order, err := c.workflow.AdvanceStatus(r.Context(), traceID, id, next)
	if err != nil {
		c.handleServiceError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (c *OrderController) Delete(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	id, ok := c.orderID(w, r)
	if !ok {
		return
	}

	if err := c.workflow.Delete(r.Context(), id); err != nil {
		c.handleServiceError(w, traceID, err, logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *OrderController) mutate(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, traceID string, id uint) (*domain.Order, error),
) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	id, ok := c.orderID(w, r)
	if !ok {
		return
	}

	order, err := op(r.Context(), traceID, id)
	if err != nil {
		c.handleServiceError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (c *OrderController) orderID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		c.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid order id", []apperrors.ValidationDetail{
			{Field: "id", Message: "id must be a positive integer"},
		})
		return 0, false
	}
	return uint(id), true
}

func (c *OrderController) handleServiceError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
		return
	}
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", ve.Message, ve.Details)
		return
	}
	if _, ok := apperrors.IsConflictError(err); ok {
		c.writeError(w, http.StatusConflict, "CONFLICT", err.Error(), nil)
		return
	}
	if _, ok := apperrors.IsForbiddenError(err); ok {
		c.writeError(w, http.StatusForbidden, "FORBIDDEN", err.Error(), nil)
		return
	}
	if _, ok := apperrors.IsInvalidTransitionError(err); ok {
		c.writeError(w, http.StatusUnprocessableEntity, "INVALID_TRANSITION", err.Error(), nil)
		return
	}
	if _, ok := apperrors.IsDeadlockError(err); ok {
		c.writeError(w, http.StatusConflict, "DEADLOCK", err.Error(), nil)
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred", nil)
}

type errorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details,omitempty"`
}

func (c *OrderController) writeError(w http.ResponseWriter, status int, code, message string, details []apperrors.ValidationDetail) {
	c.writeJSON(w, status, errorResponse{
		Error:   code,
		Message: message,
		Details: details,
	})
}

func (c *OrderController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
