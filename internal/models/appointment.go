package models

import "time"

// Статусы записи клиента. Запись изменяется только отменой.
const (
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCancelled = "cancelled"
)

// Appointment представляет запись клиента к барберу. Поле BarberUID —
// строковый ключ связи: в реляционном хранилище это внешний ключ,
// в документном — часть ключа документа.
type Appointment struct {
	ID          string    // Уникальный идентификатор записи
	BarberUID   string    // Идентификатор барбера
	ServiceID   string    // Идентификатор услуги
	ClientName  string    // Имя клиента
	ClientPhone string    // Телефон клиента
	Price       int       // Цена на момент записи, в центах
	StartsAt    time.Time // Дата и время записи
	Status      string    // confirmed или cancelled
	CreatedAt   time.Time
}

// DummyAppointment используется для приёма данных записи из JSON-запроса
// клиентской страницы бронирования. Дата приходит строкой в формате RFC3339.
type DummyAppointment struct {
	ServiceID   string `json:"service_id" validate:"required,uuid"`
	ClientName  string `json:"client_name" validate:"required,min=2,max=100"`
	ClientPhone string `json:"client_phone" validate:"required,min=5,max=20"`
	StartsAt    string `json:"starts_at" validate:"required"`
}
