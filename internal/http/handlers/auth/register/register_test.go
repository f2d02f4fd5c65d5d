package register

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/barber-booking/internal/services/auth"
	"github.com/magabrotheeeer/barber-booking/internal/storage"
)

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, email, name, password string) (string, error) {
	args := m.Called(ctx, email, name, password)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestRegisterHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			body: `{"email":"barber@example.com","name":"Carlos","password":"strongpass"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "barber@example.com", "Carlos", "strongpass").
					Return("c9a646d3-9c61-4cb7-bfcd-ee2522c8f633", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"barber_uid":"c9a646d3-9c61-4cb7-bfcd-ee2522c8f633"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{not json`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid request body",
		},
		{
			name:           "короткий пароль не проходит валидацию",
			body:           `{"email":"barber@example.com","name":"Carlos","password":"123"}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "Password",
		},
		{
			name: "почта уже занята",
			body: `{"email":"taken@example.com","name":"Carlos","password":"strongpass"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "taken@example.com", "Carlos", "strongpass").
					Return("", storage.ErrEmailTaken)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   "email already taken",
		},
		{
			name: "регистрация закрыта",
			body: `{"email":"barber@example.com","name":"Carlos","password":"strongpass"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "barber@example.com", "Carlos", "strongpass").
					Return("", auth.ErrRegistrationClosed)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   "registration is closed",
		},
		{
			name: "внутренняя ошибка",
			body: `{"email":"barber@example.com","name":"Carlos","password":"strongpass"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "barber@example.com", "Carlos", "strongpass").
					Return("", errors.New("storage down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "failed to register barber",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcMock := new(MockService)
			if tt.setupMock != nil {
				tt.setupMock(svcMock)
			}

			handler := New(newNoopLogger(), svcMock)

			req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			svcMock.AssertExpectations(t)
		})
	}
}
