package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/barber-booking/internal/lib/jwt"
	"github.com/magabrotheeeer/barber-booking/internal/lib/password"
	"github.com/magabrotheeeer/barber-booking/internal/models"
	"github.com/magabrotheeeer/barber-booking/internal/storage"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateAccount(ctx context.Context, acc models.BarberAccount) error {
	return m.Called(ctx, acc).Error(0)
}

func (m *RepoMock) GetAccountByEmail(ctx context.Context, email string) (*models.BarberAccount, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BarberAccount), args.Error(1)
}

func newMaker() jwt.Maker {
	return jwt.NewJWTMaker("test_secret_key", 15*time.Minute)
}

func TestRegister_CreatesTrialAccount(t *testing.T) {
	repo := new(RepoMock)
	svc := New(repo, newMaker(), true)

	var saved models.BarberAccount
	repo.On("CreateAccount", mock.Anything, mock.MatchedBy(func(acc models.BarberAccount) bool {
		saved = acc
		return true
	})).Return(nil)

	uid, err := svc.Register(context.Background(), "barber@example.com", "Иван", "strongpass")
	require.NoError(t, err)
	assert.NotEmpty(t, uid)
	assert.Equal(t, uid, saved.UID)

	assert.Equal(t, "barber@example.com", saved.Email)
	assert.Equal(t, "barber", saved.Role)
	assert.Equal(t, models.SubscriptionStatusTrial, saved.SubscriptionStatus)
	require.NotNil(t, saved.TrialEndDate)
	require.NotNil(t, saved.SubscriptionExpiry)
	assert.Equal(t, *saved.TrialEndDate, *saved.SubscriptionExpiry)
	assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, TrialDays), *saved.TrialEndDate, time.Minute)

	// пароль хранится только в виде bcrypt-хэша
	assert.NotEqual(t, "strongpass", saved.PasswordHash)
	assert.NoError(t, password.CompareHash(saved.PasswordHash, "strongpass"))

	repo.AssertExpectations(t)
}

func TestRegister_EmailTaken(t *testing.T) {
	repo := new(RepoMock)
	svc := New(repo, newMaker(), true)

	repo.On("CreateAccount", mock.Anything, mock.Anything).Return(storage.ErrEmailTaken)

	_, err := svc.Register(context.Background(), "taken@example.com", "Иван", "strongpass")
	require.ErrorIs(t, err, storage.ErrEmailTaken)
}

func TestRegister_RegistrationClosed(t *testing.T) {
	repo := new(RepoMock)
	svc := New(repo, newMaker(), false)

	_, err := svc.Register(context.Background(), "barber@example.com", "Иван", "strongpass")
	require.ErrorIs(t, err, ErrRegistrationClosed)
	repo.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	hash, err := password.GetHash("strongpass")
	require.NoError(t, err)

	acc := &models.BarberAccount{
		UID:          "c9a646d3-9c61-4cb7-bfcd-ee2522c8f633",
		Email:        "barber@example.com",
		PasswordHash: hash,
		Role:         "barber",
	}

	tests := []struct {
		name     string
		email    string
		password string
		repoAcc  *models.BarberAccount
		repoErr  error
		wantErr  error
	}{
		{
			name:     "успешный вход",
			email:    "barber@example.com",
			password: "strongpass",
			repoAcc:  acc,
		},
		{
			name:     "неизвестная почта",
			email:    "missing@example.com",
			password: "strongpass",
			repoErr:  storage.ErrNotFound,
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "неверный пароль",
			email:    "barber@example.com",
			password: "wrongpass",
			repoAcc:  acc,
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			repo.On("GetAccountByEmail", mock.Anything, tt.email).Return(tt.repoAcc, tt.repoErr)

			svc := New(repo, newMaker(), true)
			token, role, barberUID, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "barber", role)
			assert.Equal(t, acc.UID, barberUID)

			claims, err := svc.ValidateToken(context.Background(), token)
			require.NoError(t, err)
			assert.Equal(t, acc.Email, claims.Email)
			assert.Equal(t, acc.UID, claims.BarberUID)
		})
	}
}
