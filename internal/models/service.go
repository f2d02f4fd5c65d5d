package models

import "time"

// Service представляет услугу из каталога барбера. Услуга принадлежит
// ровно одному барберу и не удаляется физически: вместо удаления
// снимается флаг Active.
type Service struct {
	ID              string // Уникальный идентификатор услуги
	BarberUID       string // Идентификатор барбера-владельца
	Name            string // Название услуги
	Price           int    // Цена в центах
	DurationMinutes int    // Длительность в минутах
	Active          bool   // Доступна ли услуга для записи
	DisplayOrder    int    // Порядок отображения в каталоге
	CreatedAt       time.Time
}

// DummyService используется для приёма данных услуги из JSON-запроса.
type DummyService struct {
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Price           int    `json:"price" validate:"required,gt=0"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gt=0"`
	DisplayOrder    int    `json:"display_order" validate:"omitempty,gte=0"`
}
