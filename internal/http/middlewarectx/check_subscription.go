package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/barber-booking/internal/http/response"
	"github.com/magabrotheeeer/barber-booking/internal/lib/sl"
	sub "github.com/magabrotheeeer/barber-booking/internal/subscription"
)

// SubscriptionService описывает интерфейс для получения статуса подписки.
type SubscriptionService interface {
	GetStatus(ctx context.Context, barberUID string) (*sub.View, error)
}

// SubscriptionGateMiddleware создает middleware, пропускающий только барберов
// с активной подпиской. Доступ определяется исключительно датой окончания,
// строковый статус аккаунта не учитывается.
func SubscriptionGateMiddleware(log *slog.Logger, subService SubscriptionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			barberUID, ok := r.Context().Value(BarberUID).(string)
			if !ok || barberUID == "" {
				log.Error("barber identification missing")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("barber identification missing"))
				return
			}

			view, err := subService.GetStatus(r.Context(), barberUID)
			if err != nil {
				log.Error("failed to get subscription status", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			if !view.IsActive {
				log.Info("subscription expired, access denied", slog.String("barber_uid", barberUID))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("subscription expired, access denied"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
