package redisdoc

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/magabrotheeeer/barber-booking/internal/models"
	"github.com/magabrotheeeer/barber-booking/internal/storage"
)

// CreateService сохраняет новую услугу каталога.
func (s *Storage) CreateService(ctx context.Context, svc models.Service) error {
	const op = "redisdoc.CreateService"

	data, err := json.Marshal(serviceToDoc(svc))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	pipe := s.Db.TxPipeline()
	pipe.Set(ctx, serviceKey(svc.ID), data, 0)
	pipe.SAdd(ctx, servicesSetKey(svc.BarberUID), svc.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetService возвращает услугу по её идентификатору.
func (s *Storage) GetService(ctx context.Context, id string) (*models.Service, error) {
	const op = "redisdoc.GetService"

	var doc serviceDoc
	found, err := s.getJSON(ctx, serviceKey(id), &doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return doc.toModel(), nil
}

// ListServices возвращает каталог услуг барбера, отсортированный по
// порядку отображения.
func (s *Storage) ListServices(ctx context.Context, barberUID string, onlyActive bool) ([]*models.Service, error) {
	const op = "redisdoc.ListServices"

	ids, err := s.Db.SMembers(ctx, servicesSetKey(barberUID)).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*models.Service, 0, len(ids))
	for _, id := range ids {
		svc, err := s.GetService(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if onlyActive && !svc.Active {
			continue
		}
		result = append(result, svc)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].DisplayOrder != result[j].DisplayOrder {
			return result[i].DisplayOrder < result[j].DisplayOrder
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// UpdateService обновляет услугу барбера и возвращает количество
// изменённых документов.
func (s *Storage) UpdateService(ctx context.Context, id, barberUID string, req models.DummyService) (int, error) {
	const op = "redisdoc.UpdateService"

	svc, err := s.GetService(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if svc.BarberUID != barberUID {
		return 0, nil
	}
	svc.Name = req.Name
	svc.Price = req.Price
	svc.DurationMinutes = req.DurationMinutes
	svc.DisplayOrder = req.DisplayOrder

	data, err := json.Marshal(serviceToDoc(*svc))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.Db.Set(ctx, serviceKey(id), data, 0).Err(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return 1, nil
}

// DeactivateService снимает флаг активности услуги, документ не удаляется.
func (s *Storage) DeactivateService(ctx context.Context, id, barberUID string) (int, error) {
	const op = "redisdoc.DeactivateService"

	svc, err := s.GetService(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if svc.BarberUID != barberUID {
		return 0, nil
	}
	svc.Active = false

	data, err := json.Marshal(serviceToDoc(*svc))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.Db.Set(ctx, serviceKey(id), data, 0).Err(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return 1, nil
}

// CreateAppointment сохраняет новую запись клиента.
func (s *Storage) CreateAppointment(ctx context.Context, appt models.Appointment) error {
	const op = "redisdoc.CreateAppointment"

	data, err := json.Marshal(appointmentToDoc(appt))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	pipe := s.Db.TxPipeline()
	pipe.Set(ctx, appointmentKey(appt.ID), data, 0)
	pipe.ZAdd(ctx, apptsSetKey(appt.BarberUID), zMember(appt.ID, appt.StartsAt))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListAppointments возвращает записи клиентов барбера с пагинацией
// в порядке времени начала.
func (s *Storage) ListAppointments(ctx context.Context, barberUID string, limit, offset int) ([]*models.Appointment, error) {
	const op = "redisdoc.ListAppointments"

	ids, err := s.Db.ZRange(ctx, apptsSetKey(barberUID), int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*models.Appointment, 0, len(ids))
	for _, id := range ids {
		var doc appointmentDoc
		found, err := s.getJSON(ctx, appointmentKey(id), &doc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if !found {
			continue
		}
		result = append(result, doc.toModel())
	}
	return result, nil
}

// CancelAppointment переводит запись в статус cancelled и возвращает
// количество изменённых документов.
func (s *Storage) CancelAppointment(ctx context.Context, id, barberUID string) (int, error) {
	const op = "redisdoc.CancelAppointment"

	var doc appointmentDoc
	found, err := s.getJSON(ctx, appointmentKey(id), &doc)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if !found || doc.BarberUID != barberUID {
		return 0, nil
	}
	doc.Status = models.AppointmentStatusCancelled

	data, err := json.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.Db.Set(ctx, appointmentKey(id), data, 0).Err(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return 1, nil
}

// ClaimPaymentOrder захватывает платёжный ордер в состоянии pending через
// SETNX: из двух конкурентных захватов одного ордера побеждает ровно одна.
// Уже применённый ордер не перезаписывается, зависший pending-захват
// перехватывается повторным вызовом.
func (s *Storage) ClaimPaymentOrder(ctx context.Context, order models.PaymentOrder) error {
	const op = "redisdoc.ClaimPaymentOrder"

	order.Status = models.PaymentOrderPending
	order.AppliedAt = nil
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	ok, err := s.Db.SetNX(ctx, paymentOrderKey(order.OrderID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if ok {
		return nil
	}

	var existing models.PaymentOrder
	found, err := s.getJSON(ctx, paymentOrderKey(order.OrderID), &existing)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if found && existing.Status == models.PaymentOrderApplied {
		return fmt.Errorf("%s: %w", op, storage.ErrOrderAlreadyApplied)
	}
	if err := s.Db.Set(ctx, paymentOrderKey(order.OrderID), data, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// MarkPaymentOrderApplied переводит захваченный ордер в applied.
func (s *Storage) MarkPaymentOrderApplied(ctx context.Context, orderID string, appliedAt time.Time) error {
	const op = "redisdoc.MarkPaymentOrderApplied"

	var order models.PaymentOrder
	found, err := s.getJSON(ctx, paymentOrderKey(orderID), &order)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	order.Status = models.PaymentOrderApplied
	order.AppliedAt = &appliedAt
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.Db.Set(ctx, paymentOrderKey(orderID), data, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ReleasePaymentOrder снимает pending-захват ордера после неуспешной
// верификации. Применённый ордер не удаляется.
func (s *Storage) ReleasePaymentOrder(ctx context.Context, orderID string) error {
	const op = "redisdoc.ReleasePaymentOrder"

	var order models.PaymentOrder
	found, err := s.getJSON(ctx, paymentOrderKey(orderID), &order)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !found || order.Status == models.PaymentOrderApplied {
		return nil
	}
	if err := s.Db.Del(ctx, paymentOrderKey(orderID)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
