package auth

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"buildmart/internal/domain"
	apperrors "buildmart/internal/errors"
)

type UserRepository interface {
	Insert(ctx context.Context, user domain.User) (uint, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type Service struct {
	userRepo  UserRepository
	logger    *zap.Logger
	jwtSecret string
	tokenTTL  time.Duration
}

func NewService(userRepo UserRepository, logger *zap.Logger, jwtSecret string, tokenTTL time.Duration) *Service {
	return &Service{
		userRepo:  userRepo,
		logger:    logger,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
	Phone    *string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	taken, err := s.userRepo.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", apperrors.NewConflictError("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperrors.NewInternalError("hashing password", err)
	}

	user := domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hashed),
		Role:         in.Role,
		Phone:        in.Phone,
	}

	id, err := s.userRepo.Insert(ctx, user)
	if err != nil {
		return nil, "", err
	}
	user.ID = id

	token, err := IssueToken(s.jwtSecret, user.ID, user.Role, s.tokenTTL)
	if err != nil {
		return nil, "", apperrors.NewInternalError("issuing token", err)
	}

	s.logger.Info("user registered", zap.Uint("userId", user.ID), zap.String("role", string(user.Role)))
	return &user, token, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, "", apperrors.NewForbiddenError("invalid credentials")
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.NewForbiddenError("invalid credentials")
	}

	token, err := IssueToken(s.jwtSecret, user.ID, user.Role, s.tokenTTL)
	if err != nil {
		return nil, "", apperrors.NewInternalError("issuing token", err)
	}

	s.logger.Info("user logged in", zap.Uint("userId", user.ID))
	return user, token, nil
}

// Profile returns the account behind an authenticated token.
func (s *Service) Profile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}
