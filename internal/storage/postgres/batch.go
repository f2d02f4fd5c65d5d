package postgres

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/barber-booking/internal/models"
)

// Пакетные операции для миграции данных между бэкендами. Каждый пакет
// выполняется в одной транзакции: либо весь пакет записан, либо ничего.
// Идентификаторы и временные метки сохраняются как есть.

// PutAccounts записывает пакет аккаунтов, перезаписывая существующие.
func (s *Storage) PutAccounts(ctx context.Context, accs []*models.BarberAccount) error {
	const op = "postgres.PutAccounts"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `INSERT INTO barbers (uid, email, name, password_hash, role, subscription_status,
			      trial_end_date, subscription_expiry, payment_customer_id, payment_sub_id,
			      work_start, work_end, break_start, break_end,
			      default_cut_price, default_beard_price, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
			  ON CONFLICT (uid) DO UPDATE SET
			      email = EXCLUDED.email, name = EXCLUDED.name,
			      password_hash = EXCLUDED.password_hash, role = EXCLUDED.role,
			      subscription_status = EXCLUDED.subscription_status,
			      trial_end_date = EXCLUDED.trial_end_date,
			      subscription_expiry = EXCLUDED.subscription_expiry,
			      payment_customer_id = EXCLUDED.payment_customer_id,
			      payment_sub_id = EXCLUDED.payment_sub_id,
			      work_start = EXCLUDED.work_start, work_end = EXCLUDED.work_end,
			      break_start = EXCLUDED.break_start, break_end = EXCLUDED.break_end,
			      default_cut_price = EXCLUDED.default_cut_price,
			      default_beard_price = EXCLUDED.default_beard_price`
	for _, acc := range accs {
		if _, err := tx.ExecContext(ctx, query,
			acc.UID, acc.Email, acc.Name, acc.PasswordHash, acc.Role, acc.SubscriptionStatus,
			acc.TrialEndDate, acc.SubscriptionExpiry, acc.PaymentCustomerID, acc.PaymentSubID,
			acc.WorkStart, acc.WorkEnd, acc.BreakStart, acc.BreakEnd,
			acc.DefaultCutPrice, acc.DefaultBeardPrice, acc.CreatedAt); err != nil {
			return fmt.Errorf("%s: account %s: %w", op, acc.UID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// PutServices записывает пакет услуг, перезаписывая существующие.
func (s *Storage) PutServices(ctx context.Context, svcs []*models.Service) error {
	const op = "postgres.PutServices"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `INSERT INTO services (id, barber_uid, name, price, duration_minutes, active, display_order, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  ON CONFLICT (id) DO UPDATE SET
			      name = EXCLUDED.name, price = EXCLUDED.price,
			      duration_minutes = EXCLUDED.duration_minutes,
			      active = EXCLUDED.active, display_order = EXCLUDED.display_order`
	for _, svc := range svcs {
		if _, err := tx.ExecContext(ctx, query,
			svc.ID, svc.BarberUID, svc.Name, svc.Price, svc.DurationMinutes,
			svc.Active, svc.DisplayOrder, svc.CreatedAt); err != nil {
			return fmt.Errorf("%s: service %s: %w", op, svc.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// PutAppointments записывает пакет записей клиентов, перезаписывая существующие.
func (s *Storage) PutAppointments(ctx context.Context, appts []*models.Appointment) error {
	const op = "postgres.PutAppointments"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `INSERT INTO appointments (id, barber_uid, service_id, client_name, client_phone, price, starts_at, status, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  ON CONFLICT (id) DO UPDATE SET
			      client_name = EXCLUDED.client_name, client_phone = EXCLUDED.client_phone,
			      price = EXCLUDED.price, starts_at = EXCLUDED.starts_at, status = EXCLUDED.status`
	for _, appt := range appts {
		if _, err := tx.ExecContext(ctx, query,
			appt.ID, appt.BarberUID, appt.ServiceID, appt.ClientName, appt.ClientPhone,
			appt.Price, appt.StartsAt, appt.Status, appt.CreatedAt); err != nil {
			return fmt.Errorf("%s: appointment %s: %w", op, appt.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
