// Package storage определяет интерфейс хранилища данных барбершоп-сервиса.
//
// Сервис работает с одним из двух взаимозаменяемых бэкендов: реляционным
// (PostgreSQL) или документным (Redis). Бэкенд выбирается при старте
// процесса по конфигурации, весь остальной код зависит только от
// интерфейса Store.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/magabrotheeeer/barber-booking/internal/models"
)

// Ошибки хранилища, общие для обоих бэкендов.
var (
	// ErrNotFound — запрошенная запись отсутствует.
	ErrNotFound = errors.New("record not found")
	// ErrEmailTaken — аккаунт с такой почтой уже существует.
	ErrEmailTaken = errors.New("email already taken")
	// ErrOrderAlreadyApplied — платёжный ордер уже был применён.
	ErrOrderAlreadyApplied = errors.New("payment order already applied")
)

// Store описывает возможности хранилища: CRUD для аккаунтов, услуг и
// записей, журнал платёжных ордеров и пакетные операции для миграции
// данных между бэкендами.
type Store interface {
	// CreateAccount сохраняет новый аккаунт. Возвращает ErrEmailTaken,
	// если почта уже занята; уникальность гарантирует бэкенд, а не
	// проверка перед вставкой.
	CreateAccount(ctx context.Context, acc models.BarberAccount) error
	GetAccount(ctx context.Context, uid string) (*models.BarberAccount, error)
	GetAccountByEmail(ctx context.Context, email string) (*models.BarberAccount, error)
	UpdateAccountSettings(ctx context.Context, uid string, settings models.AccountSettings) error
	// UpdateAccountSubscription переводит подписку аккаунта в новое
	// состояние. При clearTrial дата окончания пробного периода обнуляется.
	UpdateAccountSubscription(ctx context.Context, uid, status string, expiry time.Time, clearTrial bool) error
	ListAccounts(ctx context.Context, limit, offset int) ([]*models.BarberAccount, error)
	// ListAccountsExpiringWithin возвращает аккаунты с ещё активной
	// подпиской, истекающей в ближайшие days дней.
	ListAccountsExpiringWithin(ctx context.Context, now time.Time, days int) ([]*models.BarberAccount, error)

	CreateService(ctx context.Context, svc models.Service) error
	GetService(ctx context.Context, id string) (*models.Service, error)
	ListServices(ctx context.Context, barberUID string, onlyActive bool) ([]*models.Service, error)
	UpdateService(ctx context.Context, id, barberUID string, req models.DummyService) (int, error)
	// DeactivateService снимает флаг активности, запись не удаляется.
	DeactivateService(ctx context.Context, id, barberUID string) (int, error)

	CreateAppointment(ctx context.Context, appt models.Appointment) error
	ListAppointments(ctx context.Context, barberUID string, limit, offset int) ([]*models.Appointment, error)
	CancelAppointment(ctx context.Context, id, barberUID string) (int, error)

	// ClaimPaymentOrder атомарно захватывает ордер в состоянии pending.
	// Уже применённый order_id возвращает ErrOrderAlreadyApplied;
	// зависший pending-захват перехватывается повторным вызовом.
	ClaimPaymentOrder(ctx context.Context, order models.PaymentOrder) error
	// MarkPaymentOrderApplied переводит захваченный ордер в applied
	// и проставляет момент применения.
	MarkPaymentOrderApplied(ctx context.Context, orderID string, appliedAt time.Time) error
	ReleasePaymentOrder(ctx context.Context, orderID string) error

	// Пакетные операции для миграции между бэкендами. Идентификаторы и
	// временные метки сохраняются как есть.
	PutAccounts(ctx context.Context, accs []*models.BarberAccount) error
	PutServices(ctx context.Context, svcs []*models.Service) error
	PutAppointments(ctx context.Context, appts []*models.Appointment) error

	CheckReady(ctx context.Context) error
	Close() error
}
