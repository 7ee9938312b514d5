package service

import (
	"context"

	"go.uber.org/zap"

	"buildmart/internal/domain"
	apperrors "buildmart/internal/errors"
)

type MaterialRepository interface {
	Insert(ctx context.Context, material domain.Material) (uint, error)
	FindByID(ctx context.Context, id uint) (*domain.Material, error)
	Update(ctx context.Context, material domain.Material) error
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, dealerID uint, category string) ([]domain.Material, error)
}

type CatalogService struct {
	materialRepo MaterialRepository
	logger       *zap.Logger
}

func NewCatalogService(materialRepo MaterialRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		materialRepo: materialRepo,
		logger:       logger,
	}
}

type MaterialInput struct {
	Name       string
	Category   string
	Unit       string
	PriceCents int64
	Stock      int
	IsActive   bool
}

func (s *CatalogService) Create(ctx context.Context, dealerID uint, in MaterialInput) (*domain.Material, error) {
	id, err := s.materialRepo.Insert(ctx, domain.Material{
		DealerID:   dealerID,
		Name:       in.Name,
		Category:   in.Category,
		Unit:       in.Unit,
		PriceCents: in.PriceCents,
		Stock:      in.Stock,
		IsActive:   in.IsActive,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("material created",
		zap.Uint("materialId", id),
		zap.Uint("dealerId", dealerID),
	)

	return s.materialRepo.FindByID(ctx, id)
}

// Update lets a dealer change only their own listings. Admins bypass the
// ownership check.
func (s *CatalogService) Update(ctx context.Context, actorID uint, actorRole domain.Role, id uint, in MaterialInput) (*domain.Material, error) {
	material, err := s.materialRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if material.DealerID != actorID && actorRole != domain.RoleAdmin {
		return nil, apperrors.NewForbiddenError("material belongs to another dealer")
	}

	material.Name = in.Name
	material.Category = in.Category
	material.Unit = in.Unit
	material.PriceCents = in.PriceCents
	material.Stock = in.Stock
	material.IsActive = in.IsActive

	if err := s.materialRepo.Update(ctx, *material); err != nil {
		return nil, err
	}

	return s.materialRepo.FindByID(ctx, id)
}

func (s *CatalogService) Delete(ctx context.Context, actorID uint, actorRole domain.Role, id uint) error {
	material, err := s.materialRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if material.DealerID != actorID && actorRole != domain.RoleAdmin {
		return apperrors.NewForbiddenError("material belongs to another dealer")
	}

	if err := s.materialRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("material deleted", zap.Uint("materialId", id), zap.Uint("actorId", actorID))
	return nil
}

func (s *CatalogService) GetByID(ctx context.Context, id uint) (*domain.Material, error) {
	return s.materialRepo.FindByID(ctx, id)
}

func (s *CatalogService) Search(ctx context.Context, dealerID uint, category string) ([]domain.Material, error) {
	return s.materialRepo.Search(ctx, dealerID, category)
}
