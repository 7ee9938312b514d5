package auth

import (
	"database/sql"

	"go.uber.org/zap"

	"buildmart/internal/config"
	userrepo "buildmart/internal/user/repository"
	"buildmart/internal/validation"
)

func NewModule(db *sql.DB, cfg *config.Config, validator *validation.Validator, logger *zap.Logger) *Controller {
	repo := userrepo.NewMySQLUserRepository(db)
	svc := NewService(repo, logger, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	return NewController(svc, validator, logger)
}
