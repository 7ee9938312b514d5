package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildmart/internal/domain"
	"buildmart/internal/testutil"
)

func seedBooking(t *testing.T, repo *MySQLBookingRepository, b domain.Booking) uint {
	t.Helper()

	if b.BookingNumber == "" {
		b.BookingNumber = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = domain.BookingStatusPending
	}
	if b.StartDate.IsZero() {
		b.StartDate = time.Now().AddDate(0, 0, 7)
	}

	id, err := repo.Insert(context.Background(), b)
	require.NoError(t, err)
	return id
}

func TestBookingRepository_InsertAndFind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLBookingRepository(db)

	id := seedBooking(t, repo, domain.Booking{
		CustomerID:           10,
		MerchantID:           30,
		EquipmentName:        "excavator",
		DailyRateCents:       5000,
		Days:                 7,
		TotalCostCents:       35000,
		SecurityDepositCents: 7000,
	})

	booking, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "excavator", booking.EquipmentName)
	assert.Equal(t, domain.BookingStatusPending, booking.Status)
	assert.Equal(t, int64(35000), booking.TotalCostCents)
	assert.Equal(t, int64(7000), booking.SecurityDepositCents)
}

func TestBookingRepository_UpdateStatus_Conditional(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLBookingRepository(db)
	ctx := context.Background()

	id := seedBooking(t, repo, domain.Booking{
		CustomerID: 10, MerchantID: 30, EquipmentName: "scaffolding",
		DailyRateCents: 1000, Days: 3, TotalCostCents: 3000, SecurityDepositCents: 600,
	})

	applied, err := repo.UpdateStatus(ctx, id, domain.BookingStatusPending, domain.BookingStatusApproved)
	require.NoError(t, err)
	assert.True(t, applied)

	// Stale expected status affects zero rows.
	applied, err = repo.UpdateStatus(ctx, id, domain.BookingStatusPending, domain.BookingStatusApproved)
	require.NoError(t, err)
	assert.False(t, applied)

	booking, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusApproved, booking.Status)
}

func TestBookingRepository_Lists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLBookingRepository(db)
	ctx := context.Background()

	seedBooking(t, repo, domain.Booking{CustomerID: 10, MerchantID: 30, EquipmentName: "crane", DailyRateCents: 9000, Days: 1, TotalCostCents: 9000, SecurityDepositCents: 1800})
	seedBooking(t, repo, domain.Booking{CustomerID: 11, MerchantID: 30, EquipmentName: "mixer", DailyRateCents: 2000, Days: 2, TotalCostCents: 4000, SecurityDepositCents: 800})

	byCustomer, err := repo.FindByCustomer(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, byCustomer, 1)
	assert.Equal(t, "crane", byCustomer[0].EquipmentName)

	byMerchant, err := repo.FindByMerchant(ctx, 30)
	require.NoError(t, err)
	assert.Len(t, byMerchant, 2)
}
