package order

import (
	"database/sql"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"buildmart/internal/config"
	"buildmart/internal/events"
	materialrepo "buildmart/internal/material/repository"
	"buildmart/internal/order/controller"
	"buildmart/internal/order/repository"
	"buildmart/internal/order/service"
	"buildmart/internal/order/usecase"
	"buildmart/internal/validation"
)

func NewModule(
	db *sql.DB,
	rdb *redis.Client,
	publisher *events.Publisher,
	notifRepo service.NotificationWriter,
	cfg *config.Config,
	validator *validation.Validator,
	logger *zap.Logger,
) *controller.OrderController {
	orderRepo := repository.NewMySQLOrderRepository(db)
	orderItemRepo := repository.NewMySQLOrderItemRepository(db)
	materialRepo := materialrepo.NewMySQLMaterialRepository(db)

	checkoutSvc := service.NewCheckoutService(
		db,
		materialRepo,
		orderRepo,
		orderItemRepo,
		logger,
		cfg.Order.TxTimeout,
	)

	placeOrderUC := usecase.NewPlaceOrderUseCase(
		checkoutSvc,
		publisher,
		logger,
		cfg.Order.MaxRetryAttempts,
	)

	trackingUC := usecase.NewTrackingUseCase(orderRepo, rdb, cfg.Redis.TrackingTTL, logger)

	workflowSvc := service.NewWorkflowService(orderRepo, notifRepo, publisher, trackingUC, logger)

	return controller.NewOrderController(placeOrderUC, workflowSvc, trackingUC, validator, logger)
}
