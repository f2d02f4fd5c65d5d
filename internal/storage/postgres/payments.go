package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/barber-booking/internal/models"
	"github.com/magabrotheeeer/barber-booking/internal/storage"
)

// ClaimPaymentOrder захватывает платёжный ордер в состоянии pending.
// Первичный ключ по order_id делает захват атомарным; уже применённый
// ордер не перезаписывается, а зависший pending-захват перехватывается.
func (s *Storage) ClaimPaymentOrder(ctx context.Context, order models.PaymentOrder) error {
	const op = "postgres.ClaimPaymentOrder"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO paypal_orders (order_id, barber_uid, amount, status)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (order_id) DO UPDATE
			  SET barber_uid = EXCLUDED.barber_uid,
			      amount = EXCLUDED.amount,
			      claimed_at = NOW()
			  WHERE paypal_orders.status = $5`
	res, err := s.DB.ExecContext(ctx, query,
		order.OrderID, order.BarberUID, order.Amount,
		models.PaymentOrderPending, models.PaymentOrderPending)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrOrderAlreadyApplied)
	}
	return nil
}

// MarkPaymentOrderApplied переводит захваченный ордер в applied.
func (s *Storage) MarkPaymentOrderApplied(ctx context.Context, orderID string, appliedAt time.Time) error {
	const op = "postgres.MarkPaymentOrderApplied"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE paypal_orders
			  SET status = $2, applied_at = $3
			  WHERE order_id = $1`
	res, err := s.DB.ExecContext(ctx, query, orderID, models.PaymentOrderApplied, appliedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}

// ReleasePaymentOrder снимает pending-захват ордера, чтобы неуспешная
// верификация могла быть повторена. Применённый ордер не удаляется.
func (s *Storage) ReleasePaymentOrder(ctx context.Context, orderID string) error {
	const op = "postgres.ReleasePaymentOrder"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM paypal_orders WHERE order_id = $1 AND status = $2`
	_, err := s.DB.ExecContext(ctx, query, orderID, models.PaymentOrderPending)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
