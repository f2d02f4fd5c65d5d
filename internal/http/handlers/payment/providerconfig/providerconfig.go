// Package providerconfig реализует HTTP-обработчик выдачи публичной
// конфигурации PayPal для страницы оплаты.
package providerconfig

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/barber-booking/internal/http/response"
)

// Handler отдает идентификаторы плана и кнопки PayPal.
type Handler struct {
	log      *slog.Logger
	planID   string
	buttonID string
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, planID, buttonID string) *Handler {
	return &Handler{log: log, planID: planID, buttonID: buttonID}
}

// ServeHTTP godoc
// @Summary Конфигурация подписки PayPal
// @Description Возвращает публичные идентификаторы плана и кнопки PayPal.
// @Tags Payment
// @Produce  json
// @Success 200 {object} map[string]any "Конфигурация PayPal"
// @Router /paypal/subscription-config [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"plan_id":   h.planID,
		"button_id": h.buttonID,
	}))
}
