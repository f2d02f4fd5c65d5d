// Package payment содержит бизнес-логику подтверждения оплаты PayPal
// и продления подписки барбера.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/barber-booking/internal/lib/sl"
	"github.com/magabrotheeeer/barber-booking/internal/models"
	"github.com/magabrotheeeer/barber-booking/internal/paymentprovider/paypal"
	"github.com/magabrotheeeer/barber-booking/internal/storage"
)

// Ошибки сервиса оплаты.
var (
	// ErrAlreadyProcessed возвращается, если заказ уже был применён ранее.
	// Повторная проверка того же заказа не продлевает подписку ещё раз.
	ErrAlreadyProcessed = errors.New("order already processed")
	// ErrPaymentNotCompleted возвращается, если заказ не был завершён в PayPal.
	ErrPaymentNotCompleted = errors.New("payment not completed")
)

// Provider описывает контракт платёжного провайдера.
type Provider interface {
	GetOrder(ctx context.Context, orderID string) (*paypal.OrderResponse, error)
	CaptureOrder(ctx context.Context, orderID string) (*paypal.OrderResponse, error)
}

// AccountRepository описывает контракт для работы с аккаунтами барберов.
type AccountRepository interface {
	GetAccountByEmail(ctx context.Context, email string) (*models.BarberAccount, error)
	UpdateAccountSubscription(ctx context.Context, uid, status string, expiry time.Time, clearTrial bool) error
}

// OrderRepository описывает контракт идемпотентности заказов: заказ
// захватывается в состоянии pending до применения, помечается applied
// после продления подписки и освобождается при сбое.
type OrderRepository interface {
	// ClaimPaymentOrder захватывает заказ; возвращает storage.ErrOrderAlreadyApplied,
	// если заказ уже был применён.
	ClaimPaymentOrder(ctx context.Context, order models.PaymentOrder) error
	MarkPaymentOrderApplied(ctx context.Context, orderID string, appliedAt time.Time) error
	ReleasePaymentOrder(ctx context.Context, orderID string) error
}

// StatusInvalidator сбрасывает закэшированный статус подписки барбера.
type StatusInvalidator interface {
	InvalidateStatus(barberUID string)
}

// Service подтверждает оплату и продлевает подписку.
type Service struct {
	provider Provider
	accounts AccountRepository
	orders   OrderRepository
	statuses StatusInvalidator
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(provider Provider, accounts AccountRepository, orders OrderRepository,
	statuses StatusInvalidator, log *slog.Logger) *Service {
	return &Service{
		provider: provider,
		accounts: accounts,
		orders:   orders,
		statuses: statuses,
		log:      log,
	}
}

// VerifyPayment проверяет заказ PayPal и продлевает подписку барбера
// на один месяц от момента подтверждения.
//
// Аккаунт находится по явно переданной почте; без неё берётся почта
// плательщика из самого заказа. Заказ применяется не более одного раза:
// повторный вызов с тем же orderID возвращает ErrAlreadyProcessed,
// не меняя дату окончания подписки.
func (s *Service) VerifyPayment(ctx context.Context, orderID, customerEmail string) error {
	const op = "payment.VerifyPayment"
	log := s.log.With(slog.String("op", op), slog.String("order_id", orderID))

	email := customerEmail
	if email == "" {
		providerOrder, err := s.provider.GetOrder(ctx, orderID)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		email = providerOrder.Payer.EmailAddress
		if email == "" {
			log.Info("order carries no payer email")
			return fmt.Errorf("%s: order has no payer email: %w", op, storage.ErrNotFound)
		}
	}

	acc, err := s.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	order := models.PaymentOrder{
		OrderID:   orderID,
		BarberUID: acc.UID,
	}
	if err := s.orders.ClaimPaymentOrder(ctx, order); err != nil {
		if errors.Is(err, storage.ErrOrderAlreadyApplied) {
			log.Info("order already applied, skipping")
			return ErrAlreadyProcessed
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.applyOrder(ctx, log, orderID, acc); err != nil {
		// заказ не применён, освобождаем захват для повторной попытки
		if releaseErr := s.orders.ReleasePaymentOrder(ctx, orderID); releaseErr != nil {
			log.Error("failed to release claimed order", sl.Err(releaseErr))
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.orders.MarkPaymentOrderApplied(ctx, orderID, time.Now().UTC()); err != nil {
		// подписка уже продлена, заказ остался pending в журнале
		log.Error("failed to mark order as applied", sl.Err(err))
	}

	s.statuses.InvalidateStatus(acc.UID)
	log.Info("payment applied", slog.String("barber_uid", acc.UID))
	return nil
}

func (s *Service) applyOrder(ctx context.Context, log *slog.Logger, orderID string, acc *models.BarberAccount) error {
	providerOrder, err := s.provider.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	if providerOrder.Status == paypal.OrderStatusApproved {
		providerOrder, err = s.provider.CaptureOrder(ctx, orderID)
		if err != nil {
			return err
		}
		log.Info("order captured")
	}

	if providerOrder.Status != paypal.OrderStatusCompleted {
		return fmt.Errorf("order status %s: %w", providerOrder.Status, ErrPaymentNotCompleted)
	}

	newExpiry := time.Now().UTC().AddDate(0, 1, 0)
	return s.accounts.UpdateAccountSubscription(ctx, acc.UID,
		models.SubscriptionStatusActive, newExpiry, true)
}
