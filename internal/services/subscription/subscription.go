// Package subscription содержит бизнес-логику получения статуса подписки барбера
// с кэшированием результата.
package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/barber-booking/internal/models"
	sub "github.com/magabrotheeeer/barber-booking/internal/subscription"
)

// statusCacheTTL — время жизни закэшированного статуса подписки.
// Короткое, чтобы после оплаты статус обновился быстро.
const statusCacheTTL = time.Minute

// AccountRepository описывает контракт для чтения аккаунтов барберов.
type AccountRepository interface {
	GetAccount(ctx context.Context, uid string) (*models.BarberAccount, error)
}

// Cache описывает контракт кэша статусов.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service вычисляет статус подписки барбера.
type Service struct {
	accounts          AccountRepository
	cache             Cache
	renewalWindowDays int
	log               *slog.Logger
}

// New создает новый экземпляр Service.
func New(accounts AccountRepository, cache Cache, renewalWindowDays int, log *slog.Logger) *Service {
	return &Service{
		accounts:          accounts,
		cache:             cache,
		renewalWindowDays: renewalWindowDays,
		log:               log,
	}
}

func statusCacheKey(barberUID string) string {
	return fmt.Sprintf("substatus:%s", barberUID)
}

// GetStatus возвращает вычисленный статус подписки барбера.
// Результат кэшируется на statusCacheTTL.
func (s *Service) GetStatus(ctx context.Context, barberUID string) (*sub.View, error) {
	cacheKey := statusCacheKey(barberUID)

	var cached *sub.View
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read status from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found && cached != nil {
		return cached, nil
	}

	acc, err := s.accounts.GetAccount(ctx, barberUID)
	if err != nil {
		return nil, err
	}

	view, err := sub.Evaluate(acc, time.Now().UTC(), s.renewalWindowDays)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, view, statusCacheTTL); err != nil {
		s.log.Warn("failed to cache status", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return view, nil
}

// InvalidateStatus сбрасывает закэшированный статус барбера.
// Вызывается после подтверждения оплаты.
func (s *Service) InvalidateStatus(barberUID string) {
	cacheKey := statusCacheKey(barberUID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate status cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
}
