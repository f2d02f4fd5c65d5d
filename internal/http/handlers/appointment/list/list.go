// Package list реализует HTTP-обработчик получения записей клиентов барбера.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/barber-booking/internal/http/middlewarectx"
	"github.com/magabrotheeeer/barber-booking/internal/http/response"
	"github.com/magabrotheeeer/barber-booking/internal/lib/sl"
	"github.com/magabrotheeeer/barber-booking/internal/models"
)

// Service описывает интерфейс бизнес-логики записей клиентов.
type Service interface {
	ListAppointments(ctx context.Context, barberUID string, limit, offset int) ([]*models.Appointment, error)
}

// Handler обрабатывает запросы на получение записей барбера.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Записи клиентов барбера
// @Description Возвращает записи клиентов барбера с пагинацией.
// @Tags Appointments
// @Produce  json
// @Param limit query int false "Максимум записей (по умолчанию 50)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} map[string]any "Список записей"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /appointments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.appointment.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	barberUID, _ := r.Context().Value(middlewarectx.BarberUID).(string)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > 200 {
		limit = 50
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	appointments, err := h.service.ListAppointments(r.Context(), barberUID, limit, offset)
	if err != nil {
		log.Error("failed to list appointments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list appointments"))
		return
	}

	log.Info("appointments listed", slog.Int("count", len(appointments)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"appointments": appointments,
	}))
}
