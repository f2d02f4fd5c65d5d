// Package remove реализует HTTP-обработчик отключения услуги барбера.
//
// Услуга не удаляется физически: существующие записи клиентов
// продолжают ссылаться на неё.
package remove

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

// Service описывает интерфейс бизнес-логики каталога услуг.
type Service interface {
	RemoveService(ctx context.Context, id, barberUID string) (int, error)
}

// Handler обрабатывает запросы на отключение услуги.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Отключить услугу
// @Description Отключает услугу в каталоге барбера, не удаляя её физически.
// @Tags Services
// @Produce  json
// @Param id path string true "ID услуги"
// @Success 200 {object} map[string]any "Число отключённых услуг"
// @Failure 404 {object} response.ErrorResponse "Услуга не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /services/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.service.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	barberUID, _ := r.Context().Value(middlewarectx.BarberUID).(string)
	id := chi.URLParam(r, "id")

	count, err := h.service.RemoveService(r.Context(), id, barberUID)
	if err != nil {
		log.Error("failed to remove service", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove service"))
		return
	}
	if count == 0 {
		log.Info("service not found", slog.String("service_id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("service not found"))
		return
	}

	log.Info("service removed", slog.String("service_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"removed": count,
	}))
}
