package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildmart/internal/domain"
	"buildmart/internal/testutil"
)

// Unit Tests

func TestNewMySQLMaterialRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLMaterialRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

// Integration Tests

func seedMaterial(t *testing.T, repo *MySQLMaterialRepository, m domain.Material) uint {
	t.Helper()
	id, err := repo.Insert(context.Background(), m)
	require.NoError(t, err)
	return id
}

func TestMaterialRepository_InsertAndFind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLMaterialRepository(db)

	id := seedMaterial(t, repo, domain.Material{
		DealerID: 20, Name: "cement", Category: "masonry", Unit: "bag",
		PriceCents: 450, Stock: 100, IsActive: true,
	})

	material, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "cement", material.Name)
	assert.Equal(t, int64(450), material.PriceCents)
	assert.Equal(t, 100, material.Stock)
	assert.True(t, material.IsActive)
}

func TestMaterialRepository_DecrementStock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLMaterialRepository(db)
	ctx := context.Background()

	id := seedMaterial(t, repo, domain.Material{
		DealerID: 20, Name: "sand", Category: "masonry", Unit: "kg",
		PriceCents: 10, Stock: 5, IsActive: true,
	})

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	require.NoError(t, repo.DecrementStock(ctx, tx, id, 3))
	require.NoError(t, tx.Commit())

	material, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, material.Stock)

	// Decrementing past the remaining stock affects zero rows.
	tx, err = db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	err = repo.DecrementStock(ctx, tx, id, 3)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient stock")
}

func TestMaterialRepository_Search(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLMaterialRepository(db)
	ctx := context.Background()

	seedMaterial(t, repo, domain.Material{DealerID: 20, Name: "cement", Category: "masonry", Unit: "bag", PriceCents: 450, Stock: 10, IsActive: true})
	seedMaterial(t, repo, domain.Material{DealerID: 20, Name: "rebar", Category: "steel", Unit: "rod", PriceCents: 900, Stock: 10, IsActive: true})
	seedMaterial(t, repo, domain.Material{DealerID: 21, Name: "bricks", Category: "masonry", Unit: "pallet", PriceCents: 20000, Stock: 10, IsActive: true})
	seedMaterial(t, repo, domain.Material{DealerID: 20, Name: "old stock", Category: "masonry", Unit: "bag", PriceCents: 100, Stock: 10, IsActive: false})

	all, err := repo.Search(ctx, 0, "")
	require.NoError(t, err)
	assert.Len(t, all, 3, "inactive materials are hidden")

	masonry, err := repo.Search(ctx, 0, "masonry")
	require.NoError(t, err)
	assert.Len(t, masonry, 2)

	dealer20, err := repo.Search(ctx, 20, "masonry")
	require.NoError(t, err)
	assert.Len(t, dealer20, 1)
	assert.Equal(t, "cement", dealer20[0].Name)
}

func TestMaterialRepository_UpdateAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLMaterialRepository(db)
	ctx := context.Background()

	id := seedMaterial(t, repo, domain.Material{
		DealerID: 20, Name: "gravel", Category: "masonry", Unit: "kg",
		PriceCents: 5, Stock: 100, IsActive: true,
	})

	material, err := repo.FindByID(ctx, id)
	require.NoError(t, err)

	material.PriceCents = 7
	material.Stock = 80
	require.NoError(t, repo.Update(ctx, *material))

	updated, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(7), updated.PriceCents)
	assert.Equal(t, 80, updated.Stock)

	require.NoError(t, repo.Delete(ctx, id))

	err = repo.Delete(ctx, id)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
