// Package models содержит доменные структуры барбершоп-сервиса:
// аккаунт барбера с полями подписки, услуги, записи клиентов,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Статусы подписки аккаунта барбера. Строка статуса носит информационный
// характер: доступ к сервису определяется только датой subscription_expiry.
const (
	SubscriptionStatusTrial     = "trial"
	SubscriptionStatusActive    = "active"
	SubscriptionStatusCancelled = "cancelled"
	SubscriptionStatusExpired   = "expired"
)

// BarberAccount представляет зарегистрированного барбера и состояние его подписки.
type BarberAccount struct {
	UID                string     // Уникальный идентификатор барбера
	Email              string     // Электронная почта (уникальная)
	Name               string     // Отображаемое имя барбера
	PasswordHash       string     // Хэш пароля
	Role               string     // Роль, по умолчанию barber
	SubscriptionStatus string     // trial, active, cancelled или expired
	TrialEndDate       *time.Time // Дата окончания пробного периода
	SubscriptionExpiry *time.Time // Дата окончания оплаченного доступа
	PaymentCustomerID  string     // Идентификатор покупателя у платёжного провайдера
	PaymentSubID       string     // Идентификатор подписки у платёжного провайдера
	WorkStart          string     // Начало рабочего дня, формат HH:MM
	WorkEnd            string     // Конец рабочего дня, формат HH:MM
	BreakStart         string     // Начало перерыва, формат HH:MM
	BreakEnd           string     // Конец перерыва, формат HH:MM
	DefaultCutPrice    int        // Устаревшая цена стрижки по умолчанию, в центах
	DefaultBeardPrice  int        // Устаревшая цена бороды по умолчанию, в центах
	CreatedAt          time.Time
}

// AccountSettings содержит изменяемые настройки аккаунта: расписание
// рабочего дня и устаревшие цены по умолчанию. Обновляется целиком,
// конфликтующие записи разрешаются по принципу «последняя запись побеждает».
type AccountSettings struct {
	WorkStart         string
	WorkEnd           string
	BreakStart        string
	BreakEnd          string
	DefaultCutPrice   int
	DefaultBeardPrice int
}

// DummySettings используется для приёма настроек аккаунта из JSON-запроса.
type DummySettings struct {
	WorkStart         string `json:"work_start" validate:"required,len=5"`
	WorkEnd           string `json:"work_end" validate:"required,len=5"`
	BreakStart        string `json:"break_start" validate:"omitempty,len=5"`
	BreakEnd          string `json:"break_end" validate:"omitempty,len=5"`
	DefaultCutPrice   int    `json:"default_cut_price" validate:"omitempty,gt=0"`
	DefaultBeardPrice int    `json:"default_beard_price" validate:"omitempty,gt=0"`
}
