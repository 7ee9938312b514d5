package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildmart/internal/domain"
	apperrors "buildmart/internal/errors"
	"buildmart/internal/testutil"
)

func TestUserRepository_InsertAndFind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLUserRepository(db)
	ctx := context.Background()

	phone := "5551234"
	id, err := repo.Insert(ctx, domain.User{
		Name:         "Jordan",
		Email:        "jordan@example.com",
		PasswordHash: "$2a$10$hash",
		Role:         domain.RoleDealer,
		Phone:        &phone,
	})
	require.NoError(t, err)

	byID, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "jordan@example.com", byID.Email)
	assert.Equal(t, domain.RoleDealer, byID.Role)
	require.NotNil(t, byID.Phone)
	assert.Equal(t, phone, *byID.Phone)

	byEmail, err := repo.FindByEmail(ctx, "jordan@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, byEmail.ID)
}

func TestUserRepository_EmailExists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLUserRepository(db)
	ctx := context.Background()

	exists, err := repo.EmailExists(ctx, "ghost@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.Insert(ctx, domain.User{
		Name: "Sam", Email: "sam@example.com", PasswordHash: "x", Role: domain.RoleCustomer,
	})
	require.NoError(t, err)

	exists, err = repo.EmailExists(ctx, "sam@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepository_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLUserRepository(db)

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}
