// Package verify реализует HTTP-обработчик подтверждения оплаты PayPal.
//
// Обработчик доступен без проверки активности подписки: именно барбер
// с истёкшей подпиской и приходит сюда после оплаты.
package verify

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/barber-booking/internal/http/response"
	"github.com/magabrotheeeer/barber-booking/internal/lib/sl"
	"github.com/magabrotheeeer/barber-booking/internal/paymentprovider/paypal"
	"github.com/magabrotheeeer/barber-booking/internal/services/payment"
	"github.com/magabrotheeeer/barber-booking/internal/storage"
)

// Request — входные данные для подтверждения оплаты. Почта необязательна:
// без неё аккаунт находится по почте плательщика из заказа PayPal.
type Request struct {
	OrderID       string `json:"order_id" validate:"required"`
	CustomerEmail string `json:"customer_email" validate:"omitempty,email"`
}

// Service описывает интерфейс бизнес-логики подтверждения оплаты.
type Service interface {
	VerifyPayment(ctx context.Context, orderID, customerEmail string) error
}

// Handler обрабатывает запросы на подтверждение оплаты.
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
// @Summary Подтверждение оплаты PayPal
// @Description Проверяет заказ PayPal и продлевает подписку барбера на месяц. Повторная проверка того же заказа не продлевает подписку ещё раз.
// @Tags Payment
// @Accept  json
// @Produce  json
// @Param request body Request true "Идентификатор заказа и необязательная почта плательщика"
// @Success 200 {object} map[string]any "Оплата подтверждена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или незавершённый заказ"
// @Failure 404 {object} response.ErrorResponse "Заказ или барбер не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /paypal/verify-payment [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.verify"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
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

	err := h.service.VerifyPayment(r.Context(), req.OrderID, req.CustomerEmail)
	switch {
	case err == nil, errors.Is(err, payment.ErrAlreadyProcessed):
		// повторное подтверждение того же заказа — тоже успех для клиента
		log.Info("payment verified", slog.String("order_id", req.OrderID))
		render.JSON(w, r, map[string]any{"success": true})
	case errors.Is(err, paypal.ErrOrderNotFound), errors.Is(err, storage.ErrNotFound):
		log.Info("order or barber not found", slog.String("order_id", req.OrderID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, map[string]any{"success": false, "error": "order or barber not found"})
	case errors.Is(err, payment.ErrPaymentNotCompleted):
		log.Info("payment not completed", slog.String("order_id", req.OrderID))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, map[string]any{"success": false, "error": "payment not completed"})
	default:
		log.Error("payment verification failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, map[string]any{"success": false, "error": "payment verification failed"})
	}
}
