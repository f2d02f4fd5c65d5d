package payment

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/barber-booking/internal/models"
	"github.com/magabrotheeeer/barber-booking/internal/paymentprovider/paypal"
	"github.com/magabrotheeeer/barber-booking/internal/storage"
)

type ProviderMock struct{ mock.Mock }

func (m *ProviderMock) GetOrder(ctx context.Context, orderID string) (*paypal.OrderResponse, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paypal.OrderResponse), args.Error(1)
}

func (m *ProviderMock) CaptureOrder(ctx context.Context, orderID string) (*paypal.OrderResponse, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paypal.OrderResponse), args.Error(1)
}

type AccountsMock struct{ mock.Mock }

func (m *AccountsMock) GetAccountByEmail(ctx context.Context, email string) (*models.BarberAccount, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BarberAccount), args.Error(1)
}

func (m *AccountsMock) UpdateAccountSubscription(ctx context.Context, uid, status string, expiry time.Time, clearTrial bool) error {
	return m.Called(ctx, uid, status, expiry, clearTrial).Error(0)
}

type OrdersMock struct{ mock.Mock }

func (m *OrdersMock) ClaimPaymentOrder(ctx context.Context, order models.PaymentOrder) error {
	return m.Called(ctx, order).Error(0)
}

func (m *OrdersMock) MarkPaymentOrderApplied(ctx context.Context, orderID string, appliedAt time.Time) error {
	return m.Called(ctx, orderID, appliedAt).Error(0)
}

func (m *OrdersMock) ReleasePaymentOrder(ctx context.Context, orderID string) error {
	return m.Called(ctx, orderID).Error(0)
}

type InvalidatorMock struct{ mock.Mock }

func (m *InvalidatorMock) InvalidateStatus(barberUID string) {
	m.Called(barberUID)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func testAccount() *models.BarberAccount {
	expiry := time.Now().UTC().AddDate(0, 0, -3) // подписка истекла
	return &models.BarberAccount{
		UID:                "c9a646d3-9c61-4cb7-bfcd-ee2522c8f633",
		Email:              "barber@example.com",
		SubscriptionStatus: models.SubscriptionStatusExpired,
		SubscriptionExpiry: &expiry,
	}
}

func TestVerifyPayment_ExtendsExpiredSubscription(t *testing.T) {
	acc := testAccount()

	provider := new(ProviderMock)
	provider.On("GetOrder", mock.Anything, "ORDER-1").Return(&paypal.OrderResponse{
		ID:     "ORDER-1",
		Status: paypal.OrderStatusCompleted,
	}, nil)

	accounts := new(AccountsMock)
	accounts.On("GetAccountByEmail", mock.Anything, acc.Email).Return(acc, nil)

	var appliedExpiry time.Time
	accounts.On("UpdateAccountSubscription", mock.Anything, acc.UID,
		models.SubscriptionStatusActive, mock.MatchedBy(func(expiry time.Time) bool {
			appliedExpiry = expiry
			return true
		}), true).Return(nil)

	orders := new(OrdersMock)
	orders.On("ClaimPaymentOrder", mock.Anything, mock.MatchedBy(func(order models.PaymentOrder) bool {
		return order.OrderID == "ORDER-1" && order.BarberUID == acc.UID
	})).Return(nil)
	orders.On("MarkPaymentOrderApplied", mock.Anything, "ORDER-1", mock.Anything).Return(nil)

	invalidator := new(InvalidatorMock)
	invalidator.On("InvalidateStatus", acc.UID)

	svc := New(provider, accounts, orders, invalidator, newNoopLogger())

	err := svc.VerifyPayment(context.Background(), "ORDER-1", acc.Email)
	require.NoError(t, err)

	// продление отсчитывается от момента подтверждения, не от старой даты
	assert.WithinDuration(t, time.Now().UTC().AddDate(0, 1, 0), appliedExpiry, time.Minute)

	accounts.AssertExpectations(t)
	orders.AssertExpectations(t)
	invalidator.AssertExpectations(t)
	orders.AssertNotCalled(t, "ReleasePaymentOrder", mock.Anything, mock.Anything)
}

func TestVerifyPayment_ApprovedOrderIsCaptured(t *testing.T) {
	acc := testAccount()

	provider := new(ProviderMock)
	provider.On("GetOrder", mock.Anything, "ORDER-2").Return(&paypal.OrderResponse{
		ID:     "ORDER-2",
		Status: paypal.OrderStatusApproved,
	}, nil)
	provider.On("CaptureOrder", mock.Anything, "ORDER-2").Return(&paypal.OrderResponse{
		ID:     "ORDER-2",
		Status: paypal.OrderStatusCompleted,
	}, nil)

	accounts := new(AccountsMock)
	accounts.On("GetAccountByEmail", mock.Anything, acc.Email).Return(acc, nil)
	accounts.On("UpdateAccountSubscription", mock.Anything, acc.UID,
		models.SubscriptionStatusActive, mock.Anything, true).Return(nil)

	orders := new(OrdersMock)
	orders.On("ClaimPaymentOrder", mock.Anything, mock.Anything).Return(nil)
	orders.On("MarkPaymentOrderApplied", mock.Anything, "ORDER-2", mock.Anything).Return(nil)

	invalidator := new(InvalidatorMock)
	invalidator.On("InvalidateStatus", acc.UID)

	svc := New(provider, accounts, orders, invalidator, newNoopLogger())

	err := svc.VerifyPayment(context.Background(), "ORDER-2", acc.Email)
	require.NoError(t, err)
	provider.AssertExpectations(t)
	orders.AssertExpectations(t)
}

func TestVerifyPayment_DuplicateOrderDoesNotExtendTwice(t *testing.T) {
	acc := testAccount()

	provider := new(ProviderMock)
	accounts := new(AccountsMock)
	accounts.On("GetAccountByEmail", mock.Anything, acc.Email).Return(acc, nil)

	orders := new(OrdersMock)
	orders.On("ClaimPaymentOrder", mock.Anything, mock.Anything).Return(storage.ErrOrderAlreadyApplied)

	svc := New(provider, accounts, orders, new(InvalidatorMock), newNoopLogger())

	err := svc.VerifyPayment(context.Background(), "ORDER-1", acc.Email)
	require.ErrorIs(t, err, ErrAlreadyProcessed)

	// подписка не продлевается повторно
	accounts.AssertNotCalled(t, "UpdateAccountSubscription",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	provider.AssertNotCalled(t, "GetOrder", mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "ReleasePaymentOrder", mock.Anything, mock.Anything)
}

func TestVerifyPayment_IncompleteOrderReleasesClaim(t *testing.T) {
	acc := testAccount()

	provider := new(ProviderMock)
	provider.On("GetOrder", mock.Anything, "ORDER-3").Return(&paypal.OrderResponse{
		ID:     "ORDER-3",
		Status: paypal.OrderStatusCreated,
	}, nil)

	accounts := new(AccountsMock)
	accounts.On("GetAccountByEmail", mock.Anything, acc.Email).Return(acc, nil)

	orders := new(OrdersMock)
	orders.On("ClaimPaymentOrder", mock.Anything, mock.Anything).Return(nil)
	orders.On("ReleasePaymentOrder", mock.Anything, "ORDER-3").Return(nil)

	svc := New(provider, accounts, orders, new(InvalidatorMock), newNoopLogger())

	err := svc.VerifyPayment(context.Background(), "ORDER-3", acc.Email)
	require.ErrorIs(t, err, ErrPaymentNotCompleted)

	orders.AssertExpectations(t)
	orders.AssertNotCalled(t, "MarkPaymentOrderApplied",
		mock.Anything, mock.Anything, mock.Anything)
	accounts.AssertNotCalled(t, "UpdateAccountSubscription",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyPayment_UnknownOrderReleasesClaim(t *testing.T) {
	acc := testAccount()

	provider := new(ProviderMock)
	provider.On("GetOrder", mock.Anything, "MISSING").Return(nil, paypal.ErrOrderNotFound)

	accounts := new(AccountsMock)
	accounts.On("GetAccountByEmail", mock.Anything, acc.Email).Return(acc, nil)

	orders := new(OrdersMock)
	orders.On("ClaimPaymentOrder", mock.Anything, mock.Anything).Return(nil)
	orders.On("ReleasePaymentOrder", mock.Anything, "MISSING").Return(nil)

	svc := New(provider, accounts, orders, new(InvalidatorMock), newNoopLogger())

	err := svc.VerifyPayment(context.Background(), "MISSING", acc.Email)
	require.ErrorIs(t, err, paypal.ErrOrderNotFound)
	orders.AssertExpectations(t)
}

func TestVerifyPayment_ResolvesPayerEmailFromOrder(t *testing.T) {
	acc := testAccount()

	provider := new(ProviderMock)
	provider.On("GetOrder", mock.Anything, "ORDER-4").Return(&paypal.OrderResponse{
		ID:     "ORDER-4",
		Status: paypal.OrderStatusCompleted,
		Payer:  &paypal.Payer{EmailAddress: acc.Email},
	}, nil)

	accounts := new(AccountsMock)
	accounts.On("GetAccountByEmail", mock.Anything, acc.Email).Return(acc, nil)
	accounts.On("UpdateAccountSubscription", mock.Anything, acc.UID,
		models.SubscriptionStatusActive, mock.Anything, true).Return(nil)

	orders := new(OrdersMock)
	orders.On("ClaimPaymentOrder", mock.Anything, mock.Anything).Return(nil)
	orders.On("MarkPaymentOrderApplied", mock.Anything, "ORDER-4", mock.Anything).Return(nil)

	invalidator := new(InvalidatorMock)
	invalidator.On("InvalidateStatus", acc.UID)

	svc := New(provider, accounts, orders, invalidator, newNoopLogger())

	// почта не передана — аккаунт находится по почте плательщика из заказа
	err := svc.VerifyPayment(context.Background(), "ORDER-4", "")
	require.NoError(t, err)
	accounts.AssertExpectations(t)
	orders.AssertExpectations(t)
}

func TestVerifyPayment_OrderWithoutPayerEmail(t *testing.T) {
	provider := new(ProviderMock)
	provider.On("GetOrder", mock.Anything, "ORDER-5").Return(&paypal.OrderResponse{
		ID:     "ORDER-5",
		Status: paypal.OrderStatusCompleted,
	}, nil)

	accounts := new(AccountsMock)
	orders := new(OrdersMock)

	svc := New(provider, accounts, orders, new(InvalidatorMock), newNoopLogger())

	err := svc.VerifyPayment(context.Background(), "ORDER-5", "")
	require.ErrorIs(t, err, storage.ErrNotFound)
	accounts.AssertNotCalled(t, "GetAccountByEmail", mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "ClaimPaymentOrder", mock.Anything, mock.Anything)
}

func TestVerifyPayment_UnknownCustomer(t *testing.T) {
	provider := new(ProviderMock)
	accounts := new(AccountsMock)
	accounts.On("GetAccountByEmail", mock.Anything, "missing@example.com").Return(nil, storage.ErrNotFound)

	orders := new(OrdersMock)

	svc := New(provider, accounts, orders, new(InvalidatorMock), newNoopLogger())

	err := svc.VerifyPayment(context.Background(), "ORDER-1", "missing@example.com")
	require.ErrorIs(t, err, storage.ErrNotFound)
	orders.AssertNotCalled(t, "ClaimPaymentOrder", mock.Anything, mock.Anything)
}
