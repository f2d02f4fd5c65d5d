// Package auth содержит бизнес-логику регистрации, авторизации
// и валидации JWT токенов барберов.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/barber-booking/internal/lib/jwt"
	"github.com/magabrotheeeer/barber-booking/internal/lib/password"
	"github.com/magabrotheeeer/barber-booking/internal/models"
)

// TrialDays — длительность пробного периода при регистрации.
const TrialDays = 30

// Ошибки сервиса авторизации.
var (
	// ErrInvalidCredentials возвращается при неизвестной почте или неверном пароле.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrRegistrationClosed возвращается, когда регистрация новых барберов отключена.
	ErrRegistrationClosed = errors.New("registration is closed")
)

// AccountRepository описывает контракт для работы с аккаунтами барберов в базе данных.
type AccountRepository interface {
	// CreateAccount сохраняет нового барбера; возвращает storage.ErrEmailTaken,
	// если почта уже занята.
	CreateAccount(ctx context.Context, acc models.BarberAccount) error

	// GetAccountByEmail возвращает барбера по почте или ошибку, если не найден.
	GetAccountByEmail(ctx context.Context, email string) (*models.BarberAccount, error)
}

// Service отвечает за регистрацию, авторизацию и валидацию JWT.
type Service struct {
	accounts         AccountRepository
	jwtMaker         jwt.Maker
	registrationOpen bool
}

// New создает новый экземпляр Service.
func New(accounts AccountRepository, jwtMaker jwt.Maker, registrationOpen bool) *Service {
	return &Service{
		accounts:         accounts,
		jwtMaker:         jwtMaker,
		registrationOpen: registrationOpen,
	}
}

// Register создает нового барбера с хэшированием пароля и пробным периодом.
// Дата окончания подписки выставляется равной концу пробного периода.
func (s *Service) Register(ctx context.Context, email, name, rawPassword string) (string, error) {
	if !s.registrationOpen {
		return "", ErrRegistrationClosed
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}

	trialEndDate := time.Now().UTC().AddDate(0, 0, TrialDays)
	acc := models.BarberAccount{
		UID:                uuid.NewString(),
		Email:              email,
		Name:               name,
		PasswordHash:       hashed,
		Role:               "barber", // дефолтная роль при регистрации
		SubscriptionStatus: models.SubscriptionStatusTrial,
		TrialEndDate:       &trialEndDate,
		SubscriptionExpiry: &trialEndDate,
		WorkStart:          "09:00",
		WorkEnd:            "19:00",
		CreatedAt:          time.Now().UTC(),
	}
	if err := s.accounts.CreateAccount(ctx, acc); err != nil {
		return "", err
	}
	return acc.UID, nil
}

// Login проверяет пароль барбера и генерирует JWT.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (token, role, barberUID string, err error) {
	acc, err := s.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		return "", "", "", ErrInvalidCredentials
	}
	if err := password.CompareHash(acc.PasswordHash, rawPassword); err != nil {
		return "", "", "", ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(acc.Email, acc.Role, acc.UID)
	if err != nil {
		return "", "", "", err
	}
	return token, acc.Role, acc.UID, nil
}

// ValidateToken проверяет JWT и возвращает claims с данными барбера.
func (s *Service) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	return s.jwtMaker.ParseToken(token)
}
