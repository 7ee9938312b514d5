package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"buildmart/internal/auth"
	"buildmart/internal/booking/service"
	"buildmart/internal/domain"
	apperrors "buildmart/internal/errors"
	"buildmart/internal/validation"
)

type BookingService interface {
	Create(ctx context.Context, traceID string, in service.CreateBookingInput) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, traceID string, id uint, next domain.BookingStatus) (*domain.Booking, error)
	Cancel(ctx context.Context, traceID string, id uint) (*domain.Booking, error)
	GetByID(ctx context.Context, id uint) (*domain.Booking, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]domain.Booking, error)
	ListByMerchant(ctx context.Context, merchantID uint) ([]domain.Booking, error)
}

type CreateBookingRequest struct {
	MerchantID     uint      `json:"merchantId" validate:"required,gt=0"`
	EquipmentName  string    `json:"equipmentName" validate:"required,max=255"`
	DailyRateCents int64     `json:"dailyRateCents" validate:"required,gt=0"`
	Days           int       `json:"days" validate:"required,min=1,max=365"`
	StartDate      time.Time `json:"startDate" validate:"required"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type BookingResponse struct {
	ID                   uint                 `json:"id"`
	BookingNumber        string               `json:"bookingNumber"`
	CustomerID           uint                 `json:"customerId"`
	MerchantID           uint                 `json:"merchantId"`
	EquipmentName        string               `json:"equipmentName"`
	DailyRateCents       int64                `json:"dailyRateCents"`
	Days                 int                  `json:"days"`
	TotalCostCents       int64                `json:"totalCostCents"`
	SecurityDepositCents int64                `json:"securityDepositCents"`
	Status               domain.BookingStatus `json:"status"`
	StartDate            time.Time            `json:"startDate"`
	CreatedAt            time.Time            `json:"createdAt"`
	UpdatedAt            time.Time            `json:"updatedAt"`
}

func toBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:                   b.ID,
		BookingNumber:        b.BookingNumber,
		CustomerID:           b.CustomerID,
		MerchantID:           b.MerchantID,
		EquipmentName:        b.EquipmentName,
		DailyRateCents:       b.DailyRateCents,
		Days:                 b.Days,
		TotalCostCents:       b.TotalCostCents,
		SecurityDepositCents: b.SecurityDepositCents,
		Status:               b.Status,
		StartDate:            b.StartDate,
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.UpdatedAt,
	}
}

type BookingController struct {
	bookingSvc BookingService
	validator  *validation.Validator
	logger     *zap.Logger
}

func NewBookingController(bookingSvc BookingService, validator *validation.Validator, logger *zap.Logger) *BookingController {
	return &BookingController{
		bookingSvc: bookingSvc,
		validator:  validator,
		logger:     logger,
	}
}

func (c *BookingController) Create(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		c.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}

	var req CreateBookingRequest
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

	booking, err := c.bookingSvc.Create(r.Context(), traceID, service.CreateBookingInput{
		CustomerID:     claims.UserID,
		MerchantID:     req.MerchantID,
		EquipmentName:  req.EquipmentName,
		DailyRateCents: req.DailyRateCents,
		Days:           req.Days,
		StartDate:      req.StartDate,
	})
	if err != nil {
		c.handleServiceError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, toBookingResponse(booking))
}

func (c *BookingController) Get(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	id, ok := c.bookingID(w, r)
	if !ok {
		return
	}

	booking, err := c.bookingSvc.GetByID(r.Context(), id)
	if err != nil {
		c.handleServiceError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toBookingResponse(booking))
}

// ListMine returns the caller's bookings: merchants see requests against
// their equipment, everyone else their own bookings.
func (c *BookingController) ListMine(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		c.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}

	var (
		bookings []domain.Booking
		err      error
	)
	if claims.Role == domain.RoleRentalMerchant {
		bookings, err = c.bookingSvc.ListByMerchant(r.Context(), claims.UserID)
	} else {
		bookings, err = c.bookingSvc.ListByCustomer(r.Context(), claims.UserID)
	}
	if err != nil {
		c.handleServiceError(w, traceID, err, logger)
		return
	}

	out := make([]BookingResponse, len(bookings))
	for i := range bookings {
		out[i] = toBookingResponse(&bookings[i])
	}
	c.writeJSON(w, http.StatusOK, out)
}

func (c *BookingController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	id, ok := c.bookingID(w, r)
	if !ok {
		return
	}

	var req UpdateBookingStatusRequest
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

	next, ok := domain.ParseBookingStatus(req.Status)
	if !ok {
		c.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", []apperrors.ValidationDetail{
			{Field: "status", Message: "unknown booking status"},
		})
		return
	}

	booking, err := c.bookingSvc.UpdateStatus(r.Context(), traceID, id, next)
	if err != nil {
		c.handleServiceError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toBookingResponse(booking))
}

func (c *BookingController) Cancel(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	id, ok := c.bookingID(w, r)
	if !ok {
		return
	}

	booking, err := c.bookingSvc.Cancel(r.Context(), traceID, id)
	if err != nil {
		c.handleServiceError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toBookingResponse(booking))
}

func (c *BookingController) bookingID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		c.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid booking id", []apperrors.ValidationDetail{
			{Field: "id", Message: "id must be a positive integer"},
		})
		return 0, false
	}
	return uint(id), true
}

func (c *BookingController) handleServiceError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
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
	if _, ok := apperrors.IsInvalidTransitionError(err); ok {
		c.writeError(w, http.StatusUnprocessableEntity, "INVALID_TRANSITION", err.Error(), nil)
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

func (c *BookingController) writeError(w http.ResponseWriter, status int, code, message string, details []apperrors.ValidationDetail) {
	c.writeJSON(w, status, errorResponse{
		Error:   code,
		Message: message,
		Details: details,
	})
}

func (c *BookingController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
