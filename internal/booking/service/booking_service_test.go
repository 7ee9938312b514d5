package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"buildmart/internal/domain"
	apperrors "buildmart/internal/errors"
)

type mockBookingRepository struct {
	InsertFunc         func(ctx context.Context, booking domain.Booking) (uint, error)
	FindByIDFunc       func(ctx context.Context, id uint) (*domain.Booking, error)
	UpdateStatusFunc   func(ctx context.Context, id uint, from, to domain.BookingStatus) (bool, error)
	FindByCustomerFunc func(ctx context.Context, customerID uint) ([]domain.Booking, error)
	FindByMerchantFunc func(ctx context.Context, merchantID uint) ([]domain.Booking, error)
}

func (m *mockBookingRepository) Insert(ctx context.Context, booking domain.Booking) (uint, error) {
	return m.InsertFunc(ctx, booking)
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id uint) (*domain.Booking, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id uint, from, to domain.BookingStatus) (bool, error) {
	return m.UpdateStatusFunc(ctx, id, from, to)
}

func (m *mockBookingRepository) FindByCustomer(ctx context.Context, customerID uint) ([]domain.Booking, error) {
	return m.FindByCustomerFunc(ctx, customerID)
}

func (m *mockBookingRepository) FindByMerchant(ctx context.Context, merchantID uint) ([]domain.Booking, error) {
	return m.FindByMerchantFunc(ctx, merchantID)
}

type mockNotificationWriter struct {
	inserted []domain.Notification
}

func (m *mockNotificationWriter) Insert(ctx context.Context, n domain.Notification) (uint, error) {
	m.inserted = append(m.inserted, n)
	return uint(len(m.inserted)), nil
}

func bookingStateRepo(booking *domain.Booking) *mockBookingRepository {
	return &mockBookingRepository{
		InsertFunc: func(ctx context.Context, b domain.Booking) (uint, error) {
			return 1, nil
		},
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Booking, error) {
			copied := *booking
			return &copied, nil
		},
		UpdateStatusFunc: func(ctx context.Context, id uint, from, to domain.BookingStatus) (bool, error) {
			if booking.Status != from {
				return false, nil
			}
			booking.Status = to
			return true, nil
		},
	}
}

func TestCreateBooking_ComputesCost(t *testing.T) {
	notifs := &mockNotificationWriter{}
	repo := bookingStateRepo(&domain.Booking{})
	svc := NewBookingService(repo, notifs, nil, zap.NewNop())

	booking, err := svc.Create(context.Background(), "trace", CreateBookingInput{
		CustomerID:     10,
		MerchantID:     30,
		EquipmentName:  "excavator",
		DailyRateCents: 5000,
		Days:           7,
		StartDate:      time.Now().AddDate(0, 0, 3),
	})
	assert.NoError(t, err)
	assert.Equal(t, uint(1), booking.ID)
	assert.NotEmpty(t, booking.BookingNumber)
	assert.Equal(t, domain.BookingStatusPending, booking.Status)
	assert.Equal(t, int64(35000), booking.TotalCostCents)
	assert.Equal(t, int64(7000), booking.SecurityDepositCents)

	// The merchant gets the new-request notification.
	assert.Len(t, notifs.inserted, 1)
	assert.Equal(t, uint(30), notifs.inserted[0].UserID)
}

func TestUpdateBookingStatus_Approve(t *testing.T) {
	booking := &domain.Booking{ID: 1, CustomerID: 10, Status: domain.BookingStatusPending}
	notifs := &mockNotificationWriter{}
	svc := NewBookingService(bookingStateRepo(booking), notifs, nil, zap.NewNop())

	updated, err := svc.UpdateStatus(context.Background(), "trace", 1, domain.BookingStatusApproved)
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusApproved, updated.Status)

	assert.Len(t, notifs.inserted, 1)
	assert.Equal(t, uint(10), notifs.inserted[0].UserID)
}

func TestUpdateBookingStatus_RejectsSkips(t *testing.T) {
	booking := &domain.Booking{ID: 1, Status: domain.BookingStatusPending}
	svc := NewBookingService(bookingStateRepo(booking), nil, nil, zap.NewNop())

	_, err := svc.UpdateStatus(context.Background(), "trace", 1, domain.BookingStatusCompleted)
	ite, ok := apperrors.IsInvalidTransitionError(err)
	assert.True(t, ok)
	assert.Equal(t, "pending", ite.From)
	assert.Equal(t, "completed", ite.To)
}

func TestUpdateBookingStatus_ConcurrentChange(t *testing.T) {
	booking := &domain.Booking{ID: 1, Status: domain.BookingStatusPending}
	repo := bookingStateRepo(booking)
	repo.UpdateStatusFunc = func(ctx context.Context, id uint, from, to domain.BookingStatus) (bool, error) {
		return false, nil
	}
	svc := NewBookingService(repo, nil, nil, zap.NewNop())

	_, err := svc.UpdateStatus(context.Background(), "trace", 1, domain.BookingStatusApproved)
	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
}

func TestCancelBooking(t *testing.T) {
	booking := &domain.Booking{ID: 1, Status: domain.BookingStatusActive}
	svc := NewBookingService(bookingStateRepo(booking), nil, nil, zap.NewNop())

	updated, err := svc.Cancel(context.Background(), "trace", 1)
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, updated.Status)
}

func TestCancelBooking_Terminal(t *testing.T) {
	booking := &domain.Booking{ID: 1, Status: domain.BookingStatusCompleted}
	svc := NewBookingService(bookingStateRepo(booking), nil, nil, zap.NewNop())

	_, err := svc.Cancel(context.Background(), "trace", 1)
	_, ok := apperrors.IsInvalidTransitionError(err)
	assert.True(t, ok)
}
