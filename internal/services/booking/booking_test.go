package booking

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
	"github.com/magabrotheeeer/barber-booking/internal/storage"
	sub "github.com/magabrotheeeer/barber-booking/internal/subscription"
)

type ServicesMock struct{ mock.Mock }

func (m *ServicesMock) CreateService(ctx context.Context, service models.Service) error {
	return m.Called(ctx, service).Error(0)
}

func (m *ServicesMock) GetService(ctx context.Context, id string) (*models.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *ServicesMock) ListServices(ctx context.Context, barberUID string, onlyActive bool) ([]*models.Service, error) {
	args := m.Called(ctx, barberUID, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Service), args.Error(1)
}

func (m *ServicesMock) UpdateService(ctx context.Context, id, barberUID string, req models.DummyService) (int, error) {
	args := m.Called(ctx, id, barberUID, req)
	return args.Int(0), args.Error(1)
}

func (m *ServicesMock) DeactivateService(ctx context.Context, id, barberUID string) (int, error) {
	args := m.Called(ctx, id, barberUID)
	return args.Int(0), args.Error(1)
}

type AppointmentsMock struct{ mock.Mock }

func (m *AppointmentsMock) CreateAppointment(ctx context.Context, appointment models.Appointment) error {
	return m.Called(ctx, appointment).Error(0)
}

func (m *AppointmentsMock) ListAppointments(ctx context.Context, barberUID string, limit, offset int) ([]*models.Appointment, error) {
	args := m.Called(ctx, barberUID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Appointment), args.Error(1)
}

func (m *AppointmentsMock) CancelAppointment(ctx context.Context, id, barberUID string) (int, error) {
	args := m.Called(ctx, id, barberUID)
	return args.Int(0), args.Error(1)
}

type AccountsMock struct{ mock.Mock }

func (m *AccountsMock) GetAccount(ctx context.Context, uid string) (*models.BarberAccount, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BarberAccount), args.Error(1)
}

func (m *AccountsMock) UpdateAccountSettings(ctx context.Context, uid string, settings models.AccountSettings) error {
	return m.Called(ctx, uid, settings).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

const (
	barberUID = "c9a646d3-9c61-4cb7-bfcd-ee2522c8f633"
	serviceID = "4f2c8b5a-7d02-4cb7-bfcd-ee2522c8f633"
)

func activeBarber() *models.BarberAccount {
	expiry := time.Now().UTC().AddDate(0, 0, 20)
	return &models.BarberAccount{
		UID:                barberUID,
		SubscriptionStatus: models.SubscriptionStatusActive,
		SubscriptionExpiry: &expiry,
	}
}

func expiredBarber() *models.BarberAccount {
	expiry := time.Now().UTC().AddDate(0, 0, -2)
	return &models.BarberAccount{
		UID:                barberUID,
		SubscriptionStatus: models.SubscriptionStatusExpired,
		SubscriptionExpiry: &expiry,
	}
}

func TestCreateService(t *testing.T) {
	services := new(ServicesMock)

	var saved models.Service
	services.On("CreateService", mock.Anything, mock.MatchedBy(func(service models.Service) bool {
		saved = service
		return true
	})).Return(nil)

	svc := New(services, new(AppointmentsMock), new(AccountsMock), sub.DefaultRenewalWindowDays, newNoopLogger())

	id, err := svc.CreateService(context.Background(), barberUID, models.DummyService{
		Name:            "Corte",
		Price:           4500,
		DurationMinutes: 30,
		DisplayOrder:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, id, saved.ID)
	assert.Equal(t, barberUID, saved.BarberUID)
	assert.True(t, saved.Active)
	assert.Equal(t, 4500, saved.Price)
}

func TestCreateAppointment(t *testing.T) {
	startsAt := time.Now().UTC().AddDate(0, 0, 1).Truncate(time.Second)
	validReq := models.DummyAppointment{
		ServiceID:   serviceID,
		ClientName:  "João",
		ClientPhone: "+5511999999999",
		StartsAt:    startsAt.Format(time.RFC3339),
	}

	tests := []struct {
		name    string
		acc     *models.BarberAccount
		service *models.Service
		req     models.DummyAppointment
		wantErr error
	}{
		{
			name:    "успешная запись",
			acc:     activeBarber(),
			service: &models.Service{ID: serviceID, BarberUID: barberUID, Price: 4500, Active: true},
			req:     validReq,
		},
		{
			name:    "подписка барбера неактивна",
			acc:     expiredBarber(),
			req:     validReq,
			wantErr: ErrBarberInactive,
		},
		{
			name:    "услуга отключена",
			acc:     activeBarber(),
			service: &models.Service{ID: serviceID, BarberUID: barberUID, Price: 4500, Active: false},
			req:     validReq,
			wantErr: ErrServiceInactive,
		},
		{
			name: "некорректная дата",
			acc:  activeBarber(),
			req: models.DummyAppointment{
				ServiceID:   serviceID,
				ClientName:  "João",
				ClientPhone: "+5511999999999",
				StartsAt:    "завтра в три",
			},
			wantErr: assert.AnError, // любая ошибка парсинга
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := new(AccountsMock)
			accounts.On("GetAccount", mock.Anything, barberUID).Return(tt.acc, nil)

			services := new(ServicesMock)
			if tt.service != nil {
				services.On("GetService", mock.Anything, serviceID).Return(tt.service, nil)
			}

			appointments := new(AppointmentsMock)
			var saved models.Appointment
			appointments.On("CreateAppointment", mock.Anything, mock.MatchedBy(func(a models.Appointment) bool {
				saved = a
				return true
			})).Return(nil)

			svc := New(services, appointments, accounts, sub.DefaultRenewalWindowDays, newNoopLogger())

			id, err := svc.CreateAppointment(context.Background(), barberUID, tt.req)
			if tt.wantErr != nil {
				require.Error(t, err)
				if tt.wantErr != assert.AnError {
					require.ErrorIs(t, err, tt.wantErr)
				}
				appointments.AssertNotCalled(t, "CreateAppointment", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, id, saved.ID)
			assert.Equal(t, models.AppointmentStatusConfirmed, saved.Status)
			assert.Equal(t, startsAt, saved.StartsAt.Truncate(time.Second))
			// цена берётся из услуги на момент записи
			assert.Equal(t, 4500, saved.Price)
		})
	}
}

func TestCreateAppointment_UnknownService(t *testing.T) {
	accounts := new(AccountsMock)
	accounts.On("GetAccount", mock.Anything, barberUID).Return(activeBarber(), nil)

	services := new(ServicesMock)
	services.On("GetService", mock.Anything, serviceID).Return(nil, storage.ErrNotFound)

	svc := New(services, new(AppointmentsMock), accounts, sub.DefaultRenewalWindowDays, newNoopLogger())

	_, err := svc.CreateAppointment(context.Background(), barberUID, models.DummyAppointment{
		ServiceID:   serviceID,
		ClientName:  "João",
		ClientPhone: "+5511999999999",
		StartsAt:    time.Now().UTC().Format(time.RFC3339),
	})
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCreateAppointment_ForeignServiceHidden(t *testing.T) {
	accounts := new(AccountsMock)
	accounts.On("GetAccount", mock.Anything, barberUID).Return(activeBarber(), nil)

	services := new(ServicesMock)
	services.On("GetService", mock.Anything, serviceID).Return(&models.Service{
		ID:        serviceID,
		BarberUID: "another-barber",
		Active:    true,
	}, nil)

	svc := New(services, new(AppointmentsMock), accounts, sub.DefaultRenewalWindowDays, newNoopLogger())

	_, err := svc.CreateAppointment(context.Background(), barberUID, models.DummyAppointment{
		ServiceID:   serviceID,
		ClientName:  "João",
		ClientPhone: "+5511999999999",
		StartsAt:    time.Now().UTC().Format(time.RFC3339),
	})
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRemoveService(t *testing.T) {
	services := new(ServicesMock)
	services.On("DeactivateService", mock.Anything, serviceID, barberUID).Return(1, nil)

	svc := New(services, new(AppointmentsMock), new(AccountsMock), sub.DefaultRenewalWindowDays, newNoopLogger())

	count, err := svc.RemoveService(context.Background(), serviceID, barberUID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUpdateSettings(t *testing.T) {
	accounts := new(AccountsMock)
	accounts.On("UpdateAccountSettings", mock.Anything, barberUID, models.AccountSettings{
		WorkStart:         "10:00",
		WorkEnd:           "20:00",
		BreakStart:        "13:00",
		BreakEnd:          "14:00",
		DefaultCutPrice:   5000,
		DefaultBeardPrice: 3000,
	}).Return(nil)

	svc := New(new(ServicesMock), new(AppointmentsMock), accounts, sub.DefaultRenewalWindowDays, newNoopLogger())

	err := svc.UpdateSettings(context.Background(), barberUID, models.DummySettings{
		WorkStart:         "10:00",
		WorkEnd:           "20:00",
		BreakStart:        "13:00",
		BreakEnd:          "14:00",
		DefaultCutPrice:   5000,
		DefaultBeardPrice: 3000,
	})
	require.NoError(t, err)
	accounts.AssertExpectations(t)
}
