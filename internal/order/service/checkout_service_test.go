package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildmart/internal/domain"
	apperrors "buildmart/internal/errors"
	materialrepo "buildmart/internal/material/repository"
	orderrepo "buildmart/internal/order/repository"
	"buildmart/internal/testutil"

	"go.uber.org/zap"
)

// Integration Tests: checkout runs a real transaction, so these need the
// test database.

func newCheckoutFixture(t *testing.T) (*CheckoutService, *materialrepo.MySQLMaterialRepository, func()) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)

	materials := materialrepo.NewMySQLMaterialRepository(db)
	orders := orderrepo.NewMySQLOrderRepository(db)
	orderItems := orderrepo.NewMySQLOrderItemRepository(db)

	svc := NewCheckoutService(db, materials, orders, orderItems, zap.NewNop(), 5*time.Second)

	return svc, materials, func() { testutil.CleanupTestDB(t, db) }
}

func seedMaterial(t *testing.T, materials *materialrepo.MySQLMaterialRepository, m domain.Material) uint {
	t.Helper()
	id, err := materials.Insert(context.Background(), m)
	require.NoError(t, err)
	return id
}

func TestPlaceOrder_PricesFromCatalog(t *testing.T) {
	svc, materials, cleanup := newCheckoutFixture(t)
	defer cleanup()
	ctx := context.Background()

	cementID := seedMaterial(t, materials, domain.Material{
		DealerID: 20, Name: "cement", Category: "masonry", Unit: "bag",
		PriceCents: 450, Stock: 100, IsActive: true,
	})
	sandID := seedMaterial(t, materials, domain.Material{
		DealerID: 20, Name: "sand", Category: "masonry", Unit: "kg",
		PriceCents: 10, Stock: 500, IsActive: true,
	})

	order, err := svc.PlaceOrder(ctx, 10, 20, []CheckoutItem{
		{MaterialID: cementID, Quantity: 2},
		{MaterialID: sandID, Quantity: 50},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, domain.PaymentStatusPending, order.PaymentStatus)
	assert.NotEmpty(t, order.OrderNumber)
	assert.Equal(t, int64(2*450+50*10), order.TotalCents)

	// Stock came down inside the same transaction.
	cement, err := materials.FindByID(ctx, cementID)
	require.NoError(t, err)
	assert.Equal(t, 98, cement.Stock)
}

func TestPlaceOrder_OutOfStock(t *testing.T) {
	svc, materials, cleanup := newCheckoutFixture(t)
	defer cleanup()
	ctx := context.Background()

	id := seedMaterial(t, materials, domain.Material{
		DealerID: 20, Name: "bricks", Category: "masonry", Unit: "pallet",
		PriceCents: 20000, Stock: 1, IsActive: true,
	})

	_, err := svc.PlaceOrder(ctx, 10, 20, []CheckoutItem{{MaterialID: id, Quantity: 5}})
	ce, ok := apperrors.IsConflictError(err)
	require.True(t, ok)
	assert.Equal(t, "bricks is out of stock", ce.Message)

	// The failed checkout must not touch stock.
	material, err := materials.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, material.Stock)
}

func TestPlaceOrder_WrongDealer(t *testing.T) {
	svc, materials, cleanup := newCheckoutFixture(t)
	defer cleanup()

	id := seedMaterial(t, materials, domain.Material{
		DealerID: 99, Name: "gravel", Category: "masonry", Unit: "kg",
		PriceCents: 5, Stock: 100, IsActive: true,
	})

	_, err := svc.PlaceOrder(context.Background(), 10, 20, []CheckoutItem{{MaterialID: id, Quantity: 1}})
	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestPlaceOrder_InactiveMaterial(t *testing.T) {
	svc, materials, cleanup := newCheckoutFixture(t)
	defer cleanup()

	id := seedMaterial(t, materials, domain.Material{
		DealerID: 20, Name: "rebar", Category: "steel", Unit: "rod",
		PriceCents: 900, Stock: 100, IsActive: false,
	})

	_, err := svc.PlaceOrder(context.Background(), 10, 20, []CheckoutItem{{MaterialID: id, Quantity: 1}})
	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
}

func TestPlaceOrder_UnknownMaterial(t *testing.T) {
	svc, _, cleanup := newCheckoutFixture(t)
	defer cleanup()

	_, err := svc.PlaceOrder(context.Background(), 10, 20, []CheckoutItem{{MaterialID: 424242, Quantity: 1}})
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}
