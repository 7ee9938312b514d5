package material

import (
	"database/sql"

	"go.uber.org/zap"

	"buildmart/internal/material/controller"
	"buildmart/internal/material/repository"
	"buildmart/internal/material/service"
	"buildmart/internal/validation"
)

type Module struct {
	Repository *repository.MySQLMaterialRepository
	Catalog    *service.CatalogService
	Controller *controller.MaterialController
}

func NewModule(db *sql.DB, validator *validation.Validator, logger *zap.Logger) *Module {
	repo := repository.NewMySQLMaterialRepository(db)
	catalog := service.NewCatalogService(repo, logger)
	ctrl := controller.NewMaterialController(catalog, validator, logger)

	return &Module{
		Repository: repo,
		Catalog:    catalog,
		Controller: ctrl,
	}
}
