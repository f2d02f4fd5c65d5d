// Package redisdoc реализует документный бэкенд хранилища на Redis.
//
// Аккаунты, услуги и записи хранятся JSON-документами, ключ документа
// строится из идентификатора сущности. Уникальность почты обеспечивает
// индексный ключ barber:email:{email}, записываемый через SETNX, поэтому
// конкурентная регистрация одной почты не создаёт двух аккаунтов.
package redisdoc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/barber-booking/internal/config"
	"github.com/magabrotheeeer/barber-booking/internal/models"
)

// Storage инкапсулирует клиент Redis и реализует storage.Store.
type Storage struct {
	Db *redis.Client
}

// New создаёт подключение к Redis и проверяет его доступность.
func New(ctx context.Context, cfg config.RedisConnection) (*Storage, error) {
	const op = "redisdoc.New"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Storage{Db: db}, nil
}

// CheckReady проверяет готовность Redis принимать запросы.
func (s *Storage) CheckReady(ctx context.Context) error {
	const op = "redisdoc.CheckReady"
	if err := s.Db.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает подключение к Redis.
func (s *Storage) Close() error {
	return s.Db.Close()
}

func accountKey(uid string) string { return "barber:" + uid }
func emailIndexKey(email string) string { return "barber:email:" + email }
func serviceKey(id string) string { return "service:" + id }
func servicesSetKey(uid string) string { return "barber:" + uid + ":services" }
func appointmentKey(id string) string { return "appointment:" + id }
func apptsSetKey(uid string) string { return "barber:" + uid + ":appointments" }
func paymentOrderKey(id string) string { return "paypal:order:" + id }

const accountsZSetKey = "barbers"

// accountDoc — JSON-представление аккаунта в документном хранилище.
type accountDoc struct {
	UID                string     `json:"uid"`
	Email              string     `json:"email"`
	Name               string     `json:"name"`
	PasswordHash       string     `json:"password_hash"`
	Role               string     `json:"role"`
	SubscriptionStatus string     `json:"subscription_status"`
	TrialEndDate       *time.Time `json:"trial_end_date,omitempty"`
	SubscriptionExpiry *time.Time `json:"subscription_expiry,omitempty"`
	PaymentCustomerID  string     `json:"payment_customer_id,omitempty"`
	PaymentSubID       string     `json:"payment_sub_id,omitempty"`
	WorkStart          string     `json:"work_start"`
	WorkEnd            string     `json:"work_end"`
	BreakStart         string     `json:"break_start,omitempty"`
	BreakEnd           string     `json:"break_end,omitempty"`
	DefaultCutPrice    int        `json:"default_cut_price,omitempty"`
	DefaultBeardPrice  int        `json:"default_beard_price,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

func toAccountDoc(acc models.BarberAccount) accountDoc {
	return accountDoc{
		UID:                acc.UID,
		Email:              acc.Email,
		Name:               acc.Name,
		PasswordHash:       acc.PasswordHash,
		Role:               acc.Role,
		SubscriptionStatus: acc.SubscriptionStatus,
		TrialEndDate:       acc.TrialEndDate,
		SubscriptionExpiry: acc.SubscriptionExpiry,
		PaymentCustomerID:  acc.PaymentCustomerID,
		PaymentSubID:       acc.PaymentSubID,
		WorkStart:          acc.WorkStart,
		WorkEnd:            acc.WorkEnd,
		BreakStart:         acc.BreakStart,
		BreakEnd:           acc.BreakEnd,
		DefaultCutPrice:    acc.DefaultCutPrice,
		DefaultBeardPrice:  acc.DefaultBeardPrice,
		CreatedAt:          acc.CreatedAt,
	}
}

func (d accountDoc) toModel() *models.BarberAccount {
	return &models.BarberAccount{
		UID:                d.UID,
		Email:              d.Email,
		Name:               d.Name,
		PasswordHash:       d.PasswordHash,
		Role:               d.Role,
		SubscriptionStatus: d.SubscriptionStatus,
		TrialEndDate:       d.TrialEndDate,
		SubscriptionExpiry: d.SubscriptionExpiry,
		PaymentCustomerID:  d.PaymentCustomerID,
		PaymentSubID:       d.PaymentSubID,
		WorkStart:          d.WorkStart,
		WorkEnd:            d.WorkEnd,
		BreakStart:         d.BreakStart,
		BreakEnd:           d.BreakEnd,
		DefaultCutPrice:    d.DefaultCutPrice,
		DefaultBeardPrice:  d.DefaultBeardPrice,
		CreatedAt:          d.CreatedAt,
	}
}

func zMember(uid string, createdAt time.Time) redis.Z {
	return redis.Z{Score: float64(createdAt.Unix()), Member: uid}
}

func isNil(err error) bool {
	return errors.Is(err, redis.Nil)
}

func (s *Storage) getJSON(ctx context.Context, key string, dest any) (bool, error) {
	val, err := s.Db.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}
