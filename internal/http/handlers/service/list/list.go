// Package list реализует HTTP-обработчик получения каталога услуг барбера.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/barber-booking/internal/http/middlewarectx"
	"github.com/magabrotheeeer/barber-booking/internal/http/response"
	"github.com/magabrotheeeer/barber-booking/internal/lib/sl"
	"github.com/magabrotheeeer/barber-booking/internal/models"
)

// Service описывает интерфейс бизнес-логики каталога услуг.
type Service interface {
	ListServices(ctx context.Context, barberUID string, onlyActive bool) ([]*models.Service, error)
}

// Handler обрабатывает запросы на получение каталога услуг владельцем.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Каталог услуг барбера
// @Description Возвращает все услуги барбера, включая отключённые.
// @Tags Services
// @Produce  json
// @Success 200 {object} map[string]any "Список услуг"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /services [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.service.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	barberUID, _ := r.Context().Value(middlewarectx.BarberUID).(string)

	services, err := h.service.ListServices(r.Context(), barberUID, false)
	if err != nil {
		log.Error("failed to list services", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list services"))
		return
	}

	log.Info("services listed", slog.Int("count", len(services)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"services": services,
	}))
}
