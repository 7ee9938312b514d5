package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"buildmart/internal/domain"
	apperrors "buildmart/internal/errors"
)

type mockUserRepository struct {
	InsertFunc      func(ctx context.Context, user domain.User) (uint, error)
	FindByIDFunc    func(ctx context.Context, id uint) (*domain.User, error)
	FindByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	EmailExistsFunc func(ctx context.Context, email string) (bool, error)
}

func (m *mockUserRepository) Insert(ctx context.Context, user domain.User) (uint, error) {
	return m.InsertFunc(ctx, user)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.FindByEmailFunc(ctx, email)
}

func (m *mockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return m.EmailExistsFunc(ctx, email)
}

func newTestAuthService(repo UserRepository) *Service {
	return NewService(repo, zap.NewNop(), "test-secret", time.Hour)
}

func TestRegister_Success(t *testing.T) {
	var inserted domain.User
	repo := &mockUserRepository{
		EmailExistsFunc: func(ctx context.Context, email string) (bool, error) {
			return false, nil
		},
		InsertFunc: func(ctx context.Context, user domain.User) (uint, error) {
			inserted = user
			return 7, nil
		},
	}
	svc := newTestAuthService(repo)

	user, token, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Jordan",
		Email:    "jordan@example.com",
		Password: "hunter2hunter2",
		Role:     domain.RoleDealer,
	})
	assert.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
	assert.NotEmpty(t, token)

	// The stored hash must verify against the plain password.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(inserted.PasswordHash), []byte("hunter2hunter2")))

	claims, err := ParseAuthHeader("Bearer "+token, "test-secret")
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, domain.RoleDealer, claims.Role)
}

func TestRegister_EmailTaken(t *testing.T) {
	repo := &mockUserRepository{
		EmailExistsFunc: func(ctx context.Context, email string) (bool, error) {
			return true, nil
		},
	}
	svc := newTestAuthService(repo)

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Jordan",
		Email:    "taken@example.com",
		Password: "hunter2hunter2",
		Role:     domain.RoleCustomer,
	})
	ce, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
	assert.Equal(t, "email already registered", ce.Message)
}

func TestLogin_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	repo := &mockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: 3, Email: email, PasswordHash: string(hash), Role: domain.RoleCustomer}, nil
		},
	}
	svc := newTestAuthService(repo)

	user, token, err := svc.Login(context.Background(), "jordan@example.com", "correct-horse")
	assert.NoError(t, err)
	assert.Equal(t, uint(3), user.ID)
	assert.NotEmpty(t, token)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	repo := &mockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: 3, PasswordHash: string(hash)}, nil
		},
	}
	svc := newTestAuthService(repo)

	_, _, err = svc.Login(context.Background(), "jordan@example.com", "wrong")
	fe, ok := apperrors.IsForbiddenError(err)
	assert.True(t, ok)
	assert.Equal(t, "invalid credentials", fe.Message)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := &mockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return nil, apperrors.NewNotFoundError("user not found")
		},
	}
	svc := newTestAuthService(repo)

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	fe, ok := apperrors.IsForbiddenError(err)
	assert.True(t, ok)
	// Unknown emails and bad passwords are indistinguishable to the caller.
	assert.Equal(t, "invalid credentials", fe.Message)
}

func TestProfile(t *testing.T) {
	repo := &mockUserRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.User, error) {
			return &domain.User{ID: id, Name: "Jordan", Email: "jordan@example.com", Role: domain.RoleCustomer}, nil
		},
	}
	svc := newTestAuthService(repo)

	user, err := svc.Profile(context.Background(), 3)
	assert.NoError(t, err)
	assert.Equal(t, uint(3), user.ID)
	assert.Equal(t, "jordan@example.com", user.Email)
}

func TestProfile_UnknownUser(t *testing.T) {
	repo := &mockUserRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.User, error) {
			return nil, apperrors.NewNotFoundError("user not found")
		},
	}
	svc := newTestAuthService(repo)

	_, err := svc.Profile(context.Background(), 99)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}
