package models

import "time"

// RenewalNotice — сообщение о скором окончании подписки,
// публикуемое планировщиком в очередь уведомлений.
type RenewalNotice struct {
	BarberUID string    `json:"barber_uid"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expires_at"`
	DaysLeft  int       `json:"days_left"`
}
