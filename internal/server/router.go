package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"buildmart/internal/auth"
	bookingcontroller "buildmart/internal/booking/controller"
	"buildmart/internal/domain"
	materialcontroller "buildmart/internal/material/controller"
	"buildmart/internal/notification"
	ordercontroller "buildmart/internal/order/controller"
	"buildmart/internal/professional"
)

type Controllers struct {
	Auth         *auth.Controller
	Professional *professional.Controller
	Material     *materialcontroller.MaterialController
	Order        *ordercontroller.OrderController
	Booking      *bookingcontroller.BookingController
	Notification *notification.Controller
}

func NewRouter(ctrl Controllers, jwtSecret string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	authenticated := auth.RequireAuth(jwtSecret)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", ctrl.Auth.Register)
		r.Post("/auth/login", ctrl.Auth.Login)
		r.With(authenticated).Get("/auth/me", ctrl.Auth.Me)

		r.Route("/professionals", func(r chi.Router) {
			r.Get("/", ctrl.Professional.List)
			r.Get("/{id}", ctrl.Professional.Get)
			r.With(authenticated, auth.RequireRole(
				domain.RoleContractor, domain.RoleArchitect,
				domain.RoleDealer, domain.RoleRentalMerchant,
			)).Post("/", ctrl.Professional.Create)
		})

		r.Route("/materials", func(r chi.Router) {
			r.Get("/", ctrl.Material.List)
			r.Get("/{id}", ctrl.Material.Get)

			r.Group(func(r chi.Router) {
				r.Use(authenticated, auth.RequireRole(domain.RoleDealer))
				r.Post("/", ctrl.Material.Create)
				r.Put("/{id}", ctrl.Material.Update)
				r.Delete("/{id}", ctrl.Material.Delete)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(authenticated)

			r.Post("/", ctrl.Order.Create)
			r.Get("/", ctrl.Order.ListMine)
			r.With(auth.RequireRole(domain.RoleDealer)).Get("/pending", ctrl.Order.ListPending)
			r.With(auth.RequireRole(domain.RoleDealer)).Get("/confirmed", ctrl.Order.ListConfirmed)
			r.Get("/{id}", ctrl.Order.Get)
			r.Get("/{id}/tracking", ctrl.Order.Track)

			r.With(auth.RequireRole(domain.RoleDealer)).Put("/{id}/confirm-dealer", ctrl.Order.ConfirmDealer)
			r.Put("/{id}/confirm-customer", ctrl.Order.ConfirmCustomer)
			r.Put("/{id}/pay-advance", ctrl.Order.PayAdvance)
			r.Put("/{id}/pay-due", ctrl.Order.PayDue)
			r.With(auth.RequireRole(domain.RoleAdmin)).Put("/{id}/status", ctrl.Order.UpdateStatus)
			r.Put("/{id}/cancel", ctrl.Order.Cancel)
			r.With(auth.RequireRole(domain.RoleAdmin)).Delete("/{id}", ctrl.Order.Delete)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Use(authenticated)

			r.Post("/", ctrl.Booking.Create)
			r.Get("/", ctrl.Booking.ListMine)
			r.Get("/{id}", ctrl.Booking.Get)
			r.With(auth.RequireRole(domain.RoleRentalMerchant)).Put("/{id}/status", ctrl.Booking.UpdateStatus)
			r.Put("/{id}/cancel", ctrl.Booking.Cancel)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Use(authenticated)

			r.Get("/", ctrl.Notification.List)
			r.Put("/{id}/read", ctrl.Notification.MarkRead)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	logger.Info("router initialized")
	return r
}
