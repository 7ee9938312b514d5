package professional

import (
	"database/sql"

	"go.uber.org/zap"

	"buildmart/internal/professional/repository"
	"buildmart/internal/validation"
)

func NewModule(db *sql.DB, validator *validation.Validator, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLProfessionalRepository(db)
	return NewController(repo, validator, logger)
}
