package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"buildmart/internal/domain"
	apperrors "buildmart/internal/errors"
	"buildmart/internal/events"
)

type BookingRepository interface {
	Insert(ctx context.Context, booking domain.Booking) (uint, error)
	FindByID(ctx context.Context, id uint) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id uint, from, to domain.BookingStatus) (bool, error)
	FindByCustomer(ctx context.Context, customerID uint) ([]domain.Booking, error)
	FindByMerchant(ctx context.Context, merchantID uint) ([]domain.Booking, error)
}

type NotificationWriter interface {
	Insert(ctx context.Context, n domain.Notification) (uint, error)
}

// BookingService runs the rental workflow. Unlike orders there is no dual
// confirmation: a booking becomes approved through the merchant alone.
type BookingService struct {
	bookingRepo BookingRepository
	notifRepo   NotificationWriter
	publisher   *events.Publisher
	logger      *zap.Logger
}

func NewBookingService(
	bookingRepo BookingRepository,
	notifRepo NotificationWriter,
	publisher *events.Publisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		notifRepo:   notifRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

type CreateBookingInput struct {
	CustomerID     uint
	MerchantID     uint
	EquipmentName  string
	DailyRateCents int64
	Days           int
	StartDate      time.Time
}

func (s *BookingService) Create(ctx context.Context, traceID string, in CreateBookingInput) (*domain.Booking, error) {
	total, deposit := domain.RentalCost(in.DailyRateCents, in.Days)

	booking := domain.Booking{
		BookingNumber:        uuid.NewString(),
		CustomerID:           in.CustomerID,
		MerchantID:           in.MerchantID,
		EquipmentName:        in.EquipmentName,
		DailyRateCents:       in.DailyRateCents,
		Days:                 in.Days,
		TotalCostCents:       total,
		SecurityDepositCents: deposit,
		Status:               domain.BookingStatusPending,
		StartDate:            in.StartDate,
	}

	id, err := s.bookingRepo.Insert(ctx, booking)
	if err != nil {
		return nil, err
	}
	booking.ID = id

	s.publisher.PublishBooking(events.EventBookingPlaced, traceID, id, events.BookingStatusPayload{
		BookingID: id,
		To:        string(domain.BookingStatusPending),
	})
	s.notify(ctx, in.MerchantID, "booking",
		fmt.Sprintf("New booking request %s for %s", booking.BookingNumber, in.EquipmentName))

	s.logger.Info("booking placed",
		zap.String("traceId", traceID),
		zap.Uint("bookingId", id),
		zap.Uint("customerId", in.CustomerID),
		zap.Int64("totalCostCents", total),
	)

	return &booking, nil
}

// UpdateStatus moves the booking along pending -> approved -> active ->
// completed. Anything off the sequence is an invalid transition.
func (s *BookingService) UpdateStatus(ctx context.Context, traceID string, id uint, next domain.BookingStatus) (*domain.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransitionBooking(booking.Status, next) {
		return nil, apperrors.NewInvalidTransitionError(string(booking.Status), string(next))
	}

	applied, err := s.bookingRepo.UpdateStatus(ctx, id, booking.Status, next)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, apperrors.NewConflictError("booking status changed concurrently")
	}

	updated, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publisher.PublishBooking(events.EventBookingStatusChanged, traceID, id, events.BookingStatusPayload{
		BookingID: id,
		From:      string(booking.Status),
		To:        string(next),
	})
	s.notify(ctx, updated.CustomerID, "booking",
		fmt.Sprintf("Booking %s is now %s", updated.BookingNumber, next))

	s.logger.Info("booking status changed",
		zap.String("traceId", traceID),
		zap.Uint("bookingId", id),
		zap.String("from", string(booking.Status)),
		zap.String("to", string(next)),
	)

	return updated, nil
}

func (s *BookingService) Cancel(ctx context.Context, traceID string, id uint) (*domain.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.Status.Terminal() {
		return nil, apperrors.NewInvalidTransitionError(string(booking.Status), string(domain.BookingStatusCancelled))
	}

	return s.UpdateStatus(ctx, traceID, id, domain.BookingStatusCancelled)
}

func (s *BookingService) GetByID(ctx context.Context, id uint) (*domain.Booking, error) {
	return s.bookingRepo.FindByID(ctx, id)
}

func (s *BookingService) ListByCustomer(ctx context.Context, customerID uint) ([]domain.Booking, error) {
	return s.bookingRepo.FindByCustomer(ctx, customerID)
}

func (s *BookingService) ListByMerchant(ctx context.Context, merchantID uint) ([]domain.Booking, error) {
	return s.bookingRepo.FindByMerchant(ctx, merchantID)
}

func (s *BookingService) notify(ctx context.Context, userID uint, kind, message string) {
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
