// Package status реализует HTTP-обработчик получения статуса подписки барбера.
//
// Обработчик доступен без проверки активности подписки: барбер с истёкшей
// подпиской должен видеть свой статус, чтобы продлить её.
package status

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/barber-booking/internal/http/middlewarectx"
	"github.com/magabrotheeeer/barber-booking/internal/http/response"
	"github.com/magabrotheeeer/barber-booking/internal/lib/sl"
	"github.com/magabrotheeeer/barber-booking/internal/storage"
	sub "github.com/magabrotheeeer/barber-booking/internal/subscription"
)

// Service описывает интерфейс бизнес-логики получения статуса.
type Service interface {
	GetStatus(ctx context.Context, barberUID string) (*sub.View, error)
}

// Handler обрабатывает запросы на получение статуса подписки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Статус подписки барбера
// @Description Возвращает вычисленный статус подписки: активность, дни до окончания, сообщение и бейдж.
// @Tags Subscription
// @Produce  json
// @Param barberUID path string true "UID барбера"
// @Success 200 {object} map[string]any "Статус подписки"
// @Failure 403 {object} response.ErrorResponse "Чужой аккаунт"
// @Failure 404 {object} response.ErrorResponse "Барбер не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /subscriptions/status/{barberUID} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.status"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	barberUID := chi.URLParam(r, "barberUID")

	// барбер видит только собственный статус
	ctxUID, _ := r.Context().Value(middlewarectx.BarberUID).(string)
	role, _ := r.Context().Value(middlewarectx.Role).(string)
	if barberUID != ctxUID && role != "admin" {
		log.Info("access to foreign account denied", slog.String("barber_uid", barberUID))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("access denied"))
		return
	}

	view, err := h.service.GetStatus(r.Context(), barberUID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("barber not found", slog.String("barber_uid", barberUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("barber not found"))
			return
		}
		log.Error("failed to get subscription status", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get subscription status"))
		return
	}

	log.Info("subscription status computed", slog.String("barber_uid", barberUID),
		slog.Bool("is_active", view.IsActive))
	render.JSON(w, r, response.StatusOKWithData(view))
}
