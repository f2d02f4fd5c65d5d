// Package scheduler содержит планировщик напоминаний о продлении подписки:
// периодически находит барберов с истекающей подпиской и публикует
// уведомления в очередь.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/barber-booking/internal/lib/sl"
	"github.com/magabrotheeeer/barber-booking/internal/models"
	"github.com/magabrotheeeer/barber-booking/internal/rabbitmq"
	sub "github.com/magabrotheeeer/barber-booking/internal/subscription"
)

// tickInterval — период между проходами планировщика.
const tickInterval = 12 * time.Hour

// AccountRepository описывает контракт для поиска аккаунтов с истекающей подпиской.
type AccountRepository interface {
	ListAccountsExpiringWithin(ctx context.Context, now time.Time, days int) ([]*models.BarberAccount, error)
}

// Service периодически публикует напоминания о продлении.
type Service struct {
	accounts          AccountRepository
	renewalWindowDays int
	log               *slog.Logger
}

// New создает новый экземпляр Service.
func New(accounts AccountRepository, renewalWindowDays int, log *slog.Logger) *Service {
	return &Service{
		accounts:          accounts,
		renewalWindowDays: renewalWindowDays,
		log:               log,
	}
}

// Run запускает планировщик: первый проход выполняется сразу,
// далее каждые tickInterval, пока не отменён контекст.
func (s *Service) Run(ctx context.Context, channel *amqp.Channel) {
	s.runOnce(ctx, channel)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runOnce(ctx, channel)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Service) runOnce(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting renewal reminder pass")

	now := time.Now().UTC()
	accounts, err := s.accounts.ListAccountsExpiringWithin(ctx, now, s.renewalWindowDays)
	if err != nil {
		s.log.Error("failed to list expiring accounts", sl.Err(err))
		return
	}
	if len(accounts) == 0 {
		s.log.Info("no expiring subscriptions found")
		return
	}
	s.log.Info("found expiring subscriptions", "count", len(accounts))

	for _, acc := range accounts {
		notice, ok := s.buildNotice(acc, now)
		if !ok {
			continue
		}
		err = rabbitmq.PublishMessage(channel, rabbitmq.NotificationsExchange, rabbitmq.RenewalRoutingKey, notice)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}

// buildNotice строит уведомление для аккаунта. Аккаунты с уже истекшей
// подпиской пропускаются: им напоминание о продлении не отправляется.
func (s *Service) buildNotice(acc *models.BarberAccount, now time.Time) (*models.RenewalNotice, bool) {
	view, err := sub.Evaluate(acc, now, s.renewalWindowDays)
	if err != nil {
		s.log.Error("failed to evaluate account", slog.String("barber_uid", acc.UID), sl.Err(err))
		return nil, false
	}
	if !view.IsActive || !view.NeedsRenewal {
		return nil, false
	}
	return &models.RenewalNotice{
		BarberUID: acc.UID,
		Email:     acc.Email,
		Name:      acc.Name,
		ExpiresAt: *acc.SubscriptionExpiry,
		DaysLeft:  view.DaysUntilExpiry,
	}, true
}
