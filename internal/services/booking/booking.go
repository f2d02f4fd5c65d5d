// Package booking содержит бизнес-логику каталога услуг барбера,
// клиентских записей и настроек расписания.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/barber-booking/internal/models"
	"github.com/magabrotheeeer/barber-booking/internal/storage"
	sub "github.com/magabrotheeeer/barber-booking/internal/subscription"
)

// Ошибки сервиса бронирования.
var (
	// ErrBarberInactive возвращается при попытке записи к барберу
	// с неактивной подпиской.
	ErrBarberInactive = errors.New("barber subscription is not active")
	// ErrServiceInactive возвращается при попытке записи на отключённую услугу.
	ErrServiceInactive = errors.New("service is not active")
)

// ServiceRepository описывает контракт для работы с каталогом услуг.
type ServiceRepository interface {
	CreateService(ctx context.Context, service models.Service) error
	GetService(ctx context.Context, id string) (*models.Service, error)
	ListServices(ctx context.Context, barberUID string, onlyActive bool) ([]*models.Service, error)
	UpdateService(ctx context.Context, id, barberUID string, req models.DummyService) (int, error)
	DeactivateService(ctx context.Context, id, barberUID string) (int, error)
}

// AppointmentRepository описывает контракт для работы с записями клиентов.
type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, appointment models.Appointment) error
	ListAppointments(ctx context.Context, barberUID string, limit, offset int) ([]*models.Appointment, error)
	CancelAppointment(ctx context.Context, id, barberUID string) (int, error)
}

// AccountRepository описывает контракт для работы с аккаунтами барберов.
type AccountRepository interface {
	GetAccount(ctx context.Context, uid string) (*models.BarberAccount, error)
	UpdateAccountSettings(ctx context.Context, uid string, settings models.AccountSettings) error
}

// Service реализует операции бронирования.
type Service struct {
	services          ServiceRepository
	appointments      AppointmentRepository
	accounts          AccountRepository
	renewalWindowDays int
	log               *slog.Logger
}

// New создает новый экземпляр Service.
func New(services ServiceRepository, appointments AppointmentRepository,
	accounts AccountRepository, renewalWindowDays int, log *slog.Logger) *Service {
	return &Service{
		services:          services,
		appointments:      appointments,
		accounts:          accounts,
		renewalWindowDays: renewalWindowDays,
		log:               log,
	}
}

// CreateService добавляет услугу в каталог барбера.
func (s *Service) CreateService(ctx context.Context, barberUID string, req models.DummyService) (string, error) {
	service := models.Service{
		ID:              uuid.NewString(),
		BarberUID:       barberUID,
		Name:            req.Name,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Active:          true,
		DisplayOrder:    req.DisplayOrder,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.services.CreateService(ctx, service); err != nil {
		return "", err
	}
	s.log.Info("created new service", slog.String("service_id", service.ID))
	return service.ID, nil
}

// ListServices возвращает каталог услуг барбера.
// Для клиентской страницы бронирования возвращаются только активные услуги.
func (s *Service) ListServices(ctx context.Context, barberUID string, onlyActive bool) ([]*models.Service, error) {
	return s.services.ListServices(ctx, barberUID, onlyActive)
}

// UpdateService изменяет услугу барбера, возвращает число обновлённых записей.
func (s *Service) UpdateService(ctx context.Context, id, barberUID string, req models.DummyService) (int, error) {
	return s.services.UpdateService(ctx, id, barberUID, req)
}

// RemoveService отключает услугу, не удаляя её физически:
// существующие записи продолжают ссылаться на неё.
func (s *Service) RemoveService(ctx context.Context, id, barberUID string) (int, error) {
	return s.services.DeactivateService(ctx, id, barberUID)
}

// CreateAppointment создает запись клиента к барберу со страницы бронирования.
// Запись возможна только к барберу с активной подпиской и на активную услугу.
func (s *Service) CreateAppointment(ctx context.Context, barberUID string, req models.DummyAppointment) (string, error) {
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return "", fmt.Errorf("invalid starts_at: %w", err)
	}

	acc, err := s.accounts.GetAccount(ctx, barberUID)
	if err != nil {
		return "", err
	}
	view, err := sub.Evaluate(acc, time.Now().UTC(), s.renewalWindowDays)
	if err != nil {
		return "", err
	}
	if !view.IsActive {
		return "", ErrBarberInactive
	}

	service, err := s.services.GetService(ctx, req.ServiceID)
	if err != nil {
		return "", err
	}
	if service.BarberUID != barberUID {
		// услуга другого барбера недоступна на этой странице
		return "", storage.ErrNotFound
	}
	if !service.Active {
		return "", ErrServiceInactive
	}

	appointment := models.Appointment{
		ID:          uuid.NewString(),
		BarberUID:   barberUID,
		ServiceID:   service.ID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		Price:       service.Price, // цена фиксируется на момент записи
		StartsAt:    startsAt,
		Status:      models.AppointmentStatusConfirmed,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.appointments.CreateAppointment(ctx, appointment); err != nil {
		return "", err
	}
	s.log.Info("created new appointment",
		slog.String("appointment_id", appointment.ID),
		slog.String("barber_uid", barberUID))
	return appointment.ID, nil
}

// ListAppointments возвращает записи барбера.
func (s *Service) ListAppointments(ctx context.Context, barberUID string, limit, offset int) ([]*models.Appointment, error) {
	return s.appointments.ListAppointments(ctx, barberUID, limit, offset)
}

// CancelAppointment отменяет запись, возвращает число изменённых записей.
func (s *Service) CancelAppointment(ctx context.Context, id, barberUID string) (int, error) {
	return s.appointments.CancelAppointment(ctx, id, barberUID)
}

// UpdateSettings изменяет расписание и дефолтные цены барбера.
// Конкурентные изменения применяются по принципу «последний выигрывает».
func (s *Service) UpdateSettings(ctx context.Context, barberUID string, req models.DummySettings) error {
	settings := models.AccountSettings{
		WorkStart:         req.WorkStart,
		WorkEnd:           req.WorkEnd,
		BreakStart:        req.BreakStart,
		BreakEnd:          req.BreakEnd,
		DefaultCutPrice:   req.DefaultCutPrice,
		DefaultBeardPrice: req.DefaultBeardPrice,
	}
	return s.accounts.UpdateAccountSettings(ctx, barberUID, settings)
}
