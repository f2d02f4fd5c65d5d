// Package subscription реализует вычисление состояния подписки барбера.
//
// Evaluate — чистая функция без побочных эффектов: по полям подписки
// аккаунта и текущему моменту времени она определяет, активен ли доступ,
// сколько дней осталось до окончания и требуется ли продление.
// Единственным источником истины для доступа является дата
// SubscriptionExpiry, строка статуса носит информационный характер.
package subscription

import (
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/barber-booking/internal/models"
)

// ErrInvalidAccount возвращается, когда данные подписки аккаунта
// некорректны и вычислить состояние невозможно.
var ErrInvalidAccount = errors.New("invalid account subscription data")

// DefaultRenewalWindowDays — окно продления по умолчанию: за сколько дней
// до окончания подписки барберу предлагается продление.
const DefaultRenewalWindowDays = 5

// Бейджи состояния подписки, отображаемые в кабинете барбера.
const (
	BadgeActive  = "ATIVA"
	BadgeExpired = "EXPIRADA"
)

// View — вычисленное представление состояния подписки.
type View struct {
	Status          string     `json:"subscription_status"`
	ExpiresAt       time.Time  `json:"subscription_expiry"`
	TrialEndsAt     *time.Time `json:"trial_ends_at,omitempty"`
	DaysUntilExpiry int        `json:"days_until_expiry"`
	IsActive        bool       `json:"is_active"`
	NeedsRenewal    bool       `json:"needs_renewal"`
	Message         string     `json:"message"`
	Badge           string     `json:"badge"`
}

// Evaluate вычисляет состояние подписки аккаунта на момент now.
//
// daysUntilExpiry считается округлением вверх разницы до окончания,
// поэтому подписка, истекающая сегодня позже текущего момента, даёт 1,
// а уже истекшая — 0 или отрицательное значение.
func Evaluate(acc *models.BarberAccount, now time.Time, renewalWindowDays int) (*View, error) {
	const op = "subscription.Evaluate"
	if acc == nil || acc.SubscriptionExpiry == nil || acc.SubscriptionExpiry.IsZero() {
		return nil, fmt.Errorf("%s: %w: subscription expiry is not set", op, ErrInvalidAccount)
	}
	if acc.SubscriptionStatus == models.SubscriptionStatusTrial &&
		acc.TrialEndDate != nil && acc.SubscriptionExpiry.Before(*acc.TrialEndDate) {
		return nil, fmt.Errorf("%s: %w: expiry precedes trial end", op, ErrInvalidAccount)
	}
	if renewalWindowDays <= 0 {
		renewalWindowDays = DefaultRenewalWindowDays
	}

	expiry := *acc.SubscriptionExpiry
	days := daysUntil(now, expiry)
	isActive := !now.After(expiry)
	needsRenewal := isActive && days <= renewalWindowDays

	view := &View{
		Status:          acc.SubscriptionStatus,
		ExpiresAt:       expiry,
		TrialEndsAt:     acc.TrialEndDate,
		DaysUntilExpiry: days,
		IsActive:        isActive,
		NeedsRenewal:    needsRenewal,
		Badge:           BadgeActive,
	}
	if !isActive {
		view.Badge = BadgeExpired
	}
	view.Message = selectMessage(view)
	return view, nil
}

// daysUntil считает количество дней до expiry с округлением вверх.
func daysUntil(now, expiry time.Time) int {
	diff := expiry.Sub(now)
	days := int(diff / (24 * time.Hour))
	if diff > 0 && diff%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// selectMessage выбирает сообщение о состоянии подписки.
// Цепочка приоритетов, срабатывает первое подходящее условие.
func selectMessage(v *View) string {
	switch {
	case !v.IsActive:
		return "subscription has expired"
	case v.DaysUntilExpiry <= 0:
		return "subscription expires today"
	case v.DaysUntilExpiry == 1:
		return "subscription expires tomorrow"
	case v.NeedsRenewal:
		return fmt.Sprintf("subscription expires in %d days", v.DaysUntilExpiry)
	default:
		return fmt.Sprintf("subscription active, %d days remaining", v.DaysUntilExpiry)
	}
}
