package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/barber-booking/internal/models"
	"github.com/magabrotheeeer/barber-booking/internal/storage"
)

const accountColumns = `uid, email, name, password_hash, role, subscription_status,
			      trial_end_date, subscription_expiry, payment_customer_id, payment_sub_id,
			      work_start, work_end, break_start, break_end,
			      default_cut_price, default_beard_price, created_at`

func scanAccount(scanner interface{ Scan(...any) error }) (*models.BarberAccount, error) {
	var acc models.BarberAccount
	var trialEndDate, subscriptionExpiry sql.NullTime
	if err := scanner.Scan(&acc.UID, &acc.Email, &acc.Name, &acc.PasswordHash, &acc.Role,
		&acc.SubscriptionStatus, &trialEndDate, &subscriptionExpiry,
		&acc.PaymentCustomerID, &acc.PaymentSubID,
		&acc.WorkStart, &acc.WorkEnd, &acc.BreakStart, &acc.BreakEnd,
		&acc.DefaultCutPrice, &acc.DefaultBeardPrice, &acc.CreatedAt); err != nil {
		return nil, err
	}
	if trialEndDate.Valid {
		acc.TrialEndDate = &trialEndDate.Time
	}
	if subscriptionExpiry.Valid {
		acc.SubscriptionExpiry = &subscriptionExpiry.Time
	}
	return &acc, nil
}

// CreateAccount сохраняет новый аккаунт барбера. Уникальность почты
// гарантирует индекс, нарушение транслируется в storage.ErrEmailTaken.
func (s *Storage) CreateAccount(ctx context.Context, acc models.BarberAccount) error {
	const op = "postgres.CreateAccount"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO barbers (uid, email, name, password_hash, role, subscription_status,
			      trial_end_date, subscription_expiry, payment_customer_id, payment_sub_id,
			      work_start, work_end, break_start, break_end,
			      default_cut_price, default_beard_price, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := s.DB.ExecContext(ctx, query,
		acc.UID, acc.Email, acc.Name, acc.PasswordHash, acc.Role, acc.SubscriptionStatus,
		acc.TrialEndDate, acc.SubscriptionExpiry, acc.PaymentCustomerID, acc.PaymentSubID,
		acc.WorkStart, acc.WorkEnd, acc.BreakStart, acc.BreakEnd,
		acc.DefaultCutPrice, acc.DefaultBeardPrice, acc.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrEmailTaken)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetAccount возвращает аккаунт барбера по его UID.
func (s *Storage) GetAccount(ctx context.Context, uid string) (*models.BarberAccount, error) {
	const op = "postgres.GetAccount"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	row := s.DB.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM barbers WHERE uid = $1`, uid)
	acc, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return acc, nil
}

// GetAccountByEmail возвращает аккаунт барбера по его почте.
func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*models.BarberAccount, error) {
	const op = "postgres.GetAccountByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	row := s.DB.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM barbers WHERE email = $1`, email)
	acc, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return acc, nil
}

// UpdateAccountSettings обновляет расписание и цены по умолчанию целиком,
// конфликт одновременных записей разрешается по последней записи.
func (s *Storage) UpdateAccountSettings(ctx context.Context, uid string, settings models.AccountSettings) error {
	const op = "postgres.UpdateAccountSettings"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE barbers
			  SET work_start = $1, work_end = $2, break_start = $3, break_end = $4,
			      default_cut_price = $5, default_beard_price = $6
			  WHERE uid = $7`
	result, err := s.DB.ExecContext(ctx, query,
		settings.WorkStart, settings.WorkEnd, settings.BreakStart, settings.BreakEnd,
		settings.DefaultCutPrice, settings.DefaultBeardPrice, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}

// UpdateAccountSubscription переводит подписку аккаунта в новое состояние.
func (s *Storage) UpdateAccountSubscription(ctx context.Context, uid, status string, expiry time.Time, clearTrial bool) error {
	const op = "postgres.UpdateAccountSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE barbers
			  SET subscription_status = $1, subscription_expiry = $2,
			      trial_end_date = CASE WHEN $3 THEN NULL ELSE trial_end_date END
			  WHERE uid = $4`
	result, err := s.DB.ExecContext(ctx, query, status, expiry, clearTrial, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}

// ListAccounts возвращает аккаунты барберов с пагинацией.
func (s *Storage) ListAccounts(ctx context.Context, limit, offset int) ([]*models.BarberAccount, error) {
	const op = "postgres.ListAccounts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + accountColumns + `
			  FROM barbers
			  ORDER BY created_at
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.BarberAccount
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAccountsExpiringWithin находит аккаунты с активной подпиской,
// истекающей в ближайшие days дней.
func (s *Storage) ListAccountsExpiringWithin(ctx context.Context, now time.Time, days int) ([]*models.BarberAccount, error) {
	const op = "postgres.ListAccountsExpiringWithin"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + accountColumns + `
			  FROM barbers
			  WHERE subscription_expiry >= $1
			    AND subscription_expiry <= $2`
	rows, err := s.DB.QueryContext(ctx, query, now, now.AddDate(0, 0, days))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.BarberAccount
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
