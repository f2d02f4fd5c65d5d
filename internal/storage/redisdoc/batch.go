package redisdoc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/magabrotheeeer/barber-booking/internal/models"
)

// Пакетные операции для миграции данных между бэкендами. Каждый пакет
// записывается одним конвейером, чтобы не делать сетевой вызов на документ.

// PutAccounts записывает пакет аккаунтов вместе с индексами почты.
func (s *Storage) PutAccounts(ctx context.Context, accs []*models.BarberAccount) error {
	const op = "redisdoc.PutAccounts"

	pipe := s.Db.TxPipeline()
	for _, acc := range accs {
		data, err := json.Marshal(toAccountDoc(*acc))
		if err != nil {
			return fmt.Errorf("%s: account %s: %w", op, acc.UID, err)
		}
		pipe.Set(ctx, accountKey(acc.UID), data, 0)
		pipe.Set(ctx, emailIndexKey(acc.Email), acc.UID, 0)
		pipe.ZAdd(ctx, accountsZSetKey, zMember(acc.UID, acc.CreatedAt))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// PutServices записывает пакет услуг.
func (s *Storage) PutServices(ctx context.Context, svcs []*models.Service) error {
	const op = "redisdoc.PutServices"

	pipe := s.Db.TxPipeline()
	for _, svc := range svcs {
		data, err := json.Marshal(serviceToDoc(*svc))
		if err != nil {
			return fmt.Errorf("%s: service %s: %w", op, svc.ID, err)
		}
		pipe.Set(ctx, serviceKey(svc.ID), data, 0)
		pipe.SAdd(ctx, servicesSetKey(svc.BarberUID), svc.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// PutAppointments записывает пакет записей клиентов.
func (s *Storage) PutAppointments(ctx context.Context, appts []*models.Appointment) error {
	const op = "redisdoc.PutAppointments"

	pipe := s.Db.TxPipeline()
	for _, appt := range appts {
		data, err := json.Marshal(appointmentToDoc(*appt))
		if err != nil {
			return fmt.Errorf("%s: appointment %s: %w", op, appt.ID, err)
		}
		pipe.Set(ctx, appointmentKey(appt.ID), data, 0)
		pipe.ZAdd(ctx, apptsSetKey(appt.BarberUID), zMember(appt.ID, appt.StartsAt))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
