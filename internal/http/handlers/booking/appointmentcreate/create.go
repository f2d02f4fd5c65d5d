// Package appointmentcreate реализует публичный HTTP-обработчик записи
// клиента к барберу со страницы бронирования.
package appointmentcreate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/barber-booking/internal/http/response"
	"github.com/magabrotheeeer/barber-booking/internal/lib/sl"
	"github.com/magabrotheeeer/barber-booking/internal/models"
	"github.com/magabrotheeeer/barber-booking/internal/services/booking"
	"github.com/magabrotheeeer/barber-booking/internal/storage"
)

// Service описывает интерфейс бизнес-логики записей клиентов.
type Service interface {
	CreateAppointment(ctx context.Context, barberUID string, req models.DummyAppointment) (string, error)
}

// Handler обрабатывает публичные запросы на запись клиента.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Записаться к барберу
// @Description Создает запись клиента. Запись возможна только к барберу с активной подпиской и на активную услугу.
// @Tags Booking
// @Accept  json
// @Produce  json
// @Param barberUID path string true "UID барбера"
// @Param request body models.DummyAppointment true "Данные записи"
// @Success 200 {object} map[string]any "Запись создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или дата"
// @Failure 404 {object} response.ErrorResponse "Барбер или услуга не найдены"
// @Failure 409 {object} response.ErrorResponse "Барбер недоступен или услуга отключена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /booking/{barberUID}/appointments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.booking.appointmentcreate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	barberUID := chi.URLParam(r, "barberUID")

	var req models.DummyAppointment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id, err := h.service.CreateAppointment(r.Context(), barberUID, req)
	if err != nil {
		var parseErr *time.ParseError
		switch {
		case errors.As(err, &parseErr):
			log.Info("invalid starts_at", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid starts_at, expected RFC3339"))
		case errors.Is(err, booking.ErrBarberInactive), errors.Is(err, booking.ErrServiceInactive):
			log.Info("booking rejected", sl.Err(err))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("booking is not available"))
		case errors.Is(err, storage.ErrNotFound):
			log.Info("barber or service not found", slog.String("barber_uid", barberUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("barber or service not found"))
		default:
			log.Error("failed to create appointment", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not create appointment"))
		}
		return
	}

	log.Info("appointment created", slog.String("appointment_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"appointment_id": id,
	}))
}
