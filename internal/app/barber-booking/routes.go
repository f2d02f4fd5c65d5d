package barberbooking

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	appointmentcancel "github.com/magabrotheeeer/barber-booking/internal/http/handlers/appointment/cancel"
	appointmentlist "github.com/magabrotheeeer/barber-booking/internal/http/handlers/appointment/list"
	"github.com/magabrotheeeer/barber-booking/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/barber-booking/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/barber-booking/internal/http/handlers/booking/appointmentcreate"
	bookingservices "github.com/magabrotheeeer/barber-booking/internal/http/handlers/booking/services"
	"github.com/magabrotheeeer/barber-booking/internal/http/handlers/health"
	"github.com/magabrotheeeer/barber-booking/internal/http/handlers/payment/providerconfig"
	"github.com/magabrotheeeer/barber-booking/internal/http/handlers/payment/verify"
	servicecreate "github.com/magabrotheeeer/barber-booking/internal/http/handlers/service/create"
	servicelist "github.com/magabrotheeeer/barber-booking/internal/http/handlers/service/list"
	serviceremove "github.com/magabrotheeeer/barber-booking/internal/http/handlers/service/remove"
	serviceupdate "github.com/magabrotheeeer/barber-booking/internal/http/handlers/service/update"
	settingsupdate "github.com/magabrotheeeer/barber-booking/internal/http/handlers/settings/update"
	"github.com/magabrotheeeer/barber-booking/internal/http/handlers/subscription/status"
	"github.com/magabrotheeeer/barber-booking/internal/http/middlewarectx"

	"github.com/magabrotheeeer/barber-booking/internal/config"
	authservice "github.com/magabrotheeeer/barber-booking/internal/services/auth"
	bookingservice "github.com/magabrotheeeer/barber-booking/internal/services/booking"
	paymentservice "github.com/magabrotheeeer/barber-booking/internal/services/payment"
	subservice "github.com/magabrotheeeer/barber-booking/internal/services/subscription"
	"github.com/magabrotheeeer/barber-booking/internal/storage"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	store storage.Store, authService *authservice.Service,
	subscriptionService *subservice.Service, paymentService *paymentservice.Service,
	bookingService *bookingservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/paypal/subscription-config", providerconfig.New(logger, cfg.PayPalPlanID, cfg.PayPalButtonID).ServeHTTP)

		// Публичная страница записи: доступна клиентам без аутентификации
		r.Get("/booking/{barberUID}/services", bookingservices.New(logger, bookingService).ServeHTTP)
		r.Post("/booking/{barberUID}/appointments", appointmentcreate.New(logger, bookingService).ServeHTTP)

		// Группа с JWT аутентификацией: доступна и при истекшей подписке,
		// иначе барбер не смог бы посмотреть статус и оплатить продление
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Get("/subscriptions/status/{barberUID}", status.New(logger, subscriptionService).ServeHTTP)
			r.Post("/paypal/verify-payment", verify.New(logger, paymentService).ServeHTTP)
		})

		// Группа кабинета: JWT + активная подписка
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.SubscriptionGateMiddleware(logger, subscriptionService))
			r.Use(middlewarectx.RateLimitMiddleware(logger, 5, 10))
			r.Post("/services", servicecreate.New(logger, bookingService).ServeHTTP)
			r.Get("/services", servicelist.New(logger, bookingService).ServeHTTP)
			r.Put("/services/{id}", serviceupdate.New(logger, bookingService).ServeHTTP)
			r.Delete("/services/{id}", serviceremove.New(logger, bookingService).ServeHTTP)
			r.Get("/appointments", appointmentlist.New(logger, bookingService).ServeHTTP)
			r.Delete("/appointments/{id}", appointmentcancel.New(logger, bookingService).ServeHTTP)
			r.Put("/settings", settingsupdate.New(logger, bookingService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, store).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
