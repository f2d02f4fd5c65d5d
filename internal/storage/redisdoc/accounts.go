package redisdoc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/magabrotheeeer/barber-booking/internal/models"
	"github.com/magabrotheeeer/barber-booking/internal/storage"
)

// CreateAccount сохраняет новый аккаунт барбера. Индексный ключ почты
// записывается через SETNX до документа: из двух конкурентных регистраций
// одной почты побеждает ровно одна.
func (s *Storage) CreateAccount(ctx context.Context, acc models.BarberAccount) error {
	const op = "redisdoc.CreateAccount"

	ok, err := s.Db.SetNX(ctx, emailIndexKey(acc.Email), acc.UID, 0).Result()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrEmailTaken)
	}

	if err := s.putAccountDoc(ctx, acc); err != nil {
		// снимаем индекс, чтобы почта не осталась занятой без аккаунта
		_ = s.Db.Del(ctx, emailIndexKey(acc.Email)).Err()
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) putAccountDoc(ctx context.Context, acc models.BarberAccount) error {
	data, err := json.Marshal(toAccountDoc(acc))
	if err != nil {
		return err
	}
	pipe := s.Db.TxPipeline()
	pipe.Set(ctx, accountKey(acc.UID), data, 0)
	pipe.ZAdd(ctx, accountsZSetKey, zMember(acc.UID, acc.CreatedAt))
	_, err = pipe.Exec(ctx)
	return err
}

// GetAccount возвращает аккаунт барбера по его UID.
func (s *Storage) GetAccount(ctx context.Context, uid string) (*models.BarberAccount, error) {
	const op = "redisdoc.GetAccount"

	var doc accountDoc
	found, err := s.getJSON(ctx, accountKey(uid), &doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return doc.toModel(), nil
}

// GetAccountByEmail возвращает аккаунт барбера по его почте,
// используя индексный ключ почты.
func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*models.BarberAccount, error) {
	const op = "redisdoc.GetAccountByEmail"

	uid, err := s.Db.Get(ctx, emailIndexKey(email)).Result()
	if err != nil {
		if isNil(err) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.GetAccount(ctx, uid)
}

// UpdateAccountSettings перечитывает документ, заменяет настройки и
// записывает документ целиком: последняя запись побеждает.
func (s *Storage) UpdateAccountSettings(ctx context.Context, uid string, settings models.AccountSettings) error {
	const op = "redisdoc.UpdateAccountSettings"

	acc, err := s.GetAccount(ctx, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	acc.WorkStart = settings.WorkStart
	acc.WorkEnd = settings.WorkEnd
	acc.BreakStart = settings.BreakStart
	acc.BreakEnd = settings.BreakEnd
	acc.DefaultCutPrice = settings.DefaultCutPrice
	acc.DefaultBeardPrice = settings.DefaultBeardPrice

	if err := s.putAccountDoc(ctx, *acc); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateAccountSubscription переводит подписку аккаунта в новое состояние.
func (s *Storage) UpdateAccountSubscription(ctx context.Context, uid, status string, expiry time.Time, clearTrial bool) error {
	const op = "redisdoc.UpdateAccountSubscription"

	acc, err := s.GetAccount(ctx, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	acc.SubscriptionStatus = status
	acc.SubscriptionExpiry = &expiry
	if clearTrial {
		acc.TrialEndDate = nil
	}

	if err := s.putAccountDoc(ctx, *acc); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListAccounts возвращает аккаунты барберов с пагинацией в порядке создания.
func (s *Storage) ListAccounts(ctx context.Context, limit, offset int) ([]*models.BarberAccount, error) {
	const op = "redisdoc.ListAccounts"

	uids, err := s.Db.ZRange(ctx, accountsZSetKey, int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*models.BarberAccount, 0, len(uids))
	for _, uid := range uids {
		acc, err := s.GetAccount(ctx, uid)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, acc)
	}
	return result, nil
}

// ListAccountsExpiringWithin находит аккаунты с активной подпиской,
// истекающей в ближайшие days дней. Документное хранилище не умеет
// выбирать по дате, поэтому фильтрация выполняется по всем аккаунтам.
func (s *Storage) ListAccountsExpiringWithin(ctx context.Context, now time.Time, days int) ([]*models.BarberAccount, error) {
	const op = "redisdoc.ListAccountsExpiringWithin"

	uids, err := s.Db.ZRange(ctx, accountsZSetKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	deadline := now.AddDate(0, 0, days)
	var result []*models.BarberAccount
	for _, uid := range uids {
		acc, err := s.GetAccount(ctx, uid)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if acc.SubscriptionExpiry == nil {
			continue
		}
		expiry := *acc.SubscriptionExpiry
		if !expiry.Before(now) && !expiry.After(deadline) {
			result = append(result, acc)
		}
	}
	return result, nil
}
