package postgres

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/barber-booking/internal/models"
)

const appointmentColumns = `id, barber_uid, service_id, client_name, client_phone, price, starts_at, status, created_at`

func scanAppointment(scanner interface{ Scan(...any) error }) (*models.Appointment, error) {
	var appt models.Appointment
	if err := scanner.Scan(&appt.ID, &appt.BarberUID, &appt.ServiceID, &appt.ClientName,
		&appt.ClientPhone, &appt.Price, &appt.StartsAt, &appt.Status, &appt.CreatedAt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// CreateAppointment сохраняет новую запись клиента.
func (s *Storage) CreateAppointment(ctx context.Context, appt models.Appointment) error {
	const op = "postgres.CreateAppointment"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO appointments (id, barber_uid, service_id, client_name, client_phone, price, starts_at, status, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := s.DB.ExecContext(ctx, query,
		appt.ID, appt.BarberUID, appt.ServiceID, appt.ClientName, appt.ClientPhone,
		appt.Price, appt.StartsAt, appt.Status, appt.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListAppointments возвращает записи клиентов барбера с пагинацией.
func (s *Storage) ListAppointments(ctx context.Context, barberUID string, limit, offset int) ([]*models.Appointment, error) {
	const op = "postgres.ListAppointments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + appointmentColumns + `
			  FROM appointments
			  WHERE barber_uid = $1
			  ORDER BY starts_at
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, barberUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CancelAppointment переводит запись в статус cancelled и возвращает
// количество изменённых строк.
func (s *Storage) CancelAppointment(ctx context.Context, id, barberUID string) (int, error) {
	const op = "postgres.CancelAppointment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE appointments SET status = $1 WHERE id = $2 AND barber_uid = $3`
	result, err := s.DB.ExecContext(ctx, query, models.AppointmentStatusCancelled, id, barberUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
