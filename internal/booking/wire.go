package booking

import (
	"database/sql"

	"go.uber.org/zap"

	"buildmart/internal/booking/controller"
	"buildmart/internal/booking/repository"
	"buildmart/internal/booking/service"
	"buildmart/internal/events"
	"buildmart/internal/validation"
)

func NewModule(
	db *sql.DB,
	publisher *events.Publisher,
	notifRepo service.NotificationWriter,
	validator *validation.Validator,
	logger *zap.Logger,
) *controller.BookingController {
	bookingRepo := repository.NewMySQLBookingRepository(db)
	bookingSvc := service.NewBookingService(bookingRepo, notifRepo, publisher, logger)
	return controller.NewBookingController(bookingSvc, validator, logger)
}
