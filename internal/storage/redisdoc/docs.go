package redisdoc

import (
	"errors"
	"time"

	"github.com/magabrotheeeer/barber-booking/internal/models"
	"github.com/magabrotheeeer/barber-booking/internal/storage"
)

func isNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound)
}

// serviceDoc — JSON-представление услуги в документном хранилище.
type serviceDoc struct {
	ID              string    `json:"id"`
	BarberUID       string    `json:"barber_uid"`
	Name            string    `json:"name"`
	Price           int       `json:"price"`
	DurationMinutes int       `json:"duration_minutes"`
	Active          bool      `json:"active"`
	DisplayOrder    int       `json:"display_order"`
	CreatedAt       time.Time `json:"created_at"`
}

func serviceToDoc(svc models.Service) serviceDoc {
	return serviceDoc{
		ID:              svc.ID,
		BarberUID:       svc.BarberUID,
		Name:            svc.Name,
		Price:           svc.Price,
		DurationMinutes: svc.DurationMinutes,
		Active:          svc.Active,
		DisplayOrder:    svc.DisplayOrder,
		CreatedAt:       svc.CreatedAt,
	}
}

func (d serviceDoc) toModel() *models.Service {
	return &models.Service{
		ID:              d.ID,
		BarberUID:       d.BarberUID,
		Name:            d.Name,
		Price:           d.Price,
		DurationMinutes: d.DurationMinutes,
		Active:          d.Active,
		DisplayOrder:    d.DisplayOrder,
		CreatedAt:       d.CreatedAt,
	}
}

// appointmentDoc — JSON-представление записи клиента в документном хранилище.
type appointmentDoc struct {
	ID          string    `json:"id"`
	BarberUID   string    `json:"barber_uid"`
	ServiceID   string    `json:"service_id"`
	ClientName  string    `json:"client_name"`
	ClientPhone string    `json:"client_phone"`
	Price       int       `json:"price"`
	StartsAt    time.Time `json:"starts_at"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func appointmentToDoc(appt models.Appointment) appointmentDoc {
	return appointmentDoc{
		ID:          appt.ID,
		BarberUID:   appt.BarberUID,
		ServiceID:   appt.ServiceID,
		ClientName:  appt.ClientName,
		ClientPhone: appt.ClientPhone,
		Price:       appt.Price,
		StartsAt:    appt.StartsAt,
		Status:      appt.Status,
		CreatedAt:   appt.CreatedAt,
	}
}

func (d appointmentDoc) toModel() *models.Appointment {
	return &models.Appointment{
		ID:          d.ID,
		BarberUID:   d.BarberUID,
		ServiceID:   d.ServiceID,
		ClientName:  d.ClientName,
		ClientPhone: d.ClientPhone,
		Price:       d.Price,
		StartsAt:    d.StartsAt,
		Status:      d.Status,
		CreatedAt:   d.CreatedAt,
	}
}
