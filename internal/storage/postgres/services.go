package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/barber-booking/internal/models"
	"github.com/magabrotheeeer/barber-booking/internal/storage"
)

const serviceColumns = `id, barber_uid, name, price, duration_minutes, active, display_order, created_at`

func scanService(scanner interface{ Scan(...any) error }) (*models.Service, error) {
	var svc models.Service
	if err := scanner.Scan(&svc.ID, &svc.BarberUID, &svc.Name, &svc.Price,
		&svc.DurationMinutes, &svc.Active, &svc.DisplayOrder, &svc.CreatedAt); err != nil {
		return nil, err
	}
	return &svc, nil
}

// CreateService сохраняет новую услугу каталога.
func (s *Storage) CreateService(ctx context.Context, svc models.Service) error {
	const op = "postgres.CreateService"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO services (id, barber_uid, name, price, duration_minutes, active, display_order, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := s.DB.ExecContext(ctx, query,
		svc.ID, svc.BarberUID, svc.Name, svc.Price, svc.DurationMinutes,
		svc.Active, svc.DisplayOrder, svc.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetService возвращает услугу по её идентификатору.
func (s *Storage) GetService(ctx context.Context, id string) (*models.Service, error) {
	const op = "postgres.GetService"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	row := s.DB.QueryRowContext(ctx,
		`SELECT `+serviceColumns+` FROM services WHERE id = $1`, id)
	svc, err := scanService(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return svc, nil
}

// ListServices возвращает каталог услуг барбера. При onlyActive
// возвращаются только услуги, доступные для записи.
func (s *Storage) ListServices(ctx context.Context, barberUID string, onlyActive bool) ([]*models.Service, error) {
	const op = "postgres.ListServices"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + serviceColumns + `
			  FROM services
			  WHERE barber_uid = $1 AND (NOT $2 OR active)
			  ORDER BY display_order, created_at`
	rows, err := s.DB.QueryContext(ctx, query, barberUID, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Service
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateService обновляет услугу барбера и возвращает количество изменённых строк.
func (s *Storage) UpdateService(ctx context.Context, id, barberUID string, req models.DummyService) (int, error) {
	const op = "postgres.UpdateService"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE services
			  SET name = $1, price = $2, duration_minutes = $3, display_order = $4
			  WHERE id = $5 AND barber_uid = $6`
	result, err := s.DB.ExecContext(ctx, query,
		req.Name, req.Price, req.DurationMinutes, req.DisplayOrder, id, barberUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeactivateService снимает флаг активности услуги и возвращает количество
// изменённых строк. Запись не удаляется.
func (s *Storage) DeactivateService(ctx context.Context, id, barberUID string) (int, error) {
	const op = "postgres.DeactivateService"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE services SET active = FALSE WHERE id = $1 AND barber_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, id, barberUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
