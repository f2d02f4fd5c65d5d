package models

import "time"

// Состояния платёжного ордера в журнале. Ордер захватывается в состоянии
// pending до обращения к провайдеру и помечается applied только после
// успешного продления подписки.
const (
	PaymentOrderPending = "pending"
	PaymentOrderApplied = "applied"
)

// PaymentOrder представляет платёжный ордер PayPal в журнале идемпотентности.
// Идентификатор ордера служит ключом: повторная верификация уже применённого
// ордера не должна продлевать подписку второй раз, а зависший pending-захват
// может быть перехвачен повторной попыткой.
type PaymentOrder struct {
	OrderID   string     `json:"order_id"`
	BarberUID string     `json:"barber_uid"`
	Amount    string     `json:"amount"`
	Status    string     `json:"status"`
	AppliedAt *time.Time `json:"applied_at,omitempty"`
}
