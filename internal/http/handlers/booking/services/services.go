// Package services реализует публичный HTTP-обработчик каталога услуг
// для клиентской страницы бронирования.
package services

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/barber-booking/internal/http/response"
	"github.com/magabrotheeeer/barber-booking/internal/lib/sl"
	"github.com/magabrotheeeer/barber-booking/internal/models"
)

// Service описывает интерфейс бизнес-логики каталога услуг.
type Service interface {
	ListServices(ctx context.Context, barberUID string, onlyActive bool) ([]*models.Service, error)
}

// Handler обрабатывает публичные запросы каталога услуг барбера.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Услуги барбера для страницы бронирования
// @Description Возвращает только активные услуги барбера.
// @Tags Booking
// @Produce  json
// @Param barberUID path string true "UID барбера"
// @Success 200 {object} map[string]any "Список активных услуг"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /booking/{barberUID}/services [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.booking.services"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	barberUID := chi.URLParam(r, "barberUID")

	services, err := h.service.ListServices(r.Context(), barberUID, true)
	if err != nil {
		log.Error("failed to list services", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list services"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"services": services,
	}))
}
