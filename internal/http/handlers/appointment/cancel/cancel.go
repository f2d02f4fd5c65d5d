// Package cancel реализует HTTP-обработчик отмены записи клиента.
package cancel

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/barber-booking/internal/http/middlewarectx"
	"github.com/magabrotheeeer/barber-booking/internal/http/response"
	"github.com/magabrotheeeer/barber-booking/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики записей клиентов.
type Service interface {
	CancelAppointment(ctx context.Context, id, barberUID string) (int, error)
}

// Handler обрабатывает запросы на отмену записи.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Отменить запись клиента
// @Description Переводит запись клиента в статус cancelled.
// @Tags Appointments
// @Produce  json
// @Param id path string true "ID записи"
// @Success 200 {object} map[string]any "Число отменённых записей"
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /appointments/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.appointment.cancel"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	barberUID, _ := r.Context().Value(middlewarectx.BarberUID).(string)
	id := chi.URLParam(r, "id")

	count, err := h.service.CancelAppointment(r.Context(), id, barberUID)
	if err != nil {
		log.Error("failed to cancel appointment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not cancel appointment"))
		return
	}
	if count == 0 {
		log.Info("appointment not found", slog.String("appointment_id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("appointment not found"))
		return
	}

	log.Info("appointment cancelled", slog.String("appointment_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"cancelled": count,
	}))
}
