package login

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/barber-booking/internal/services/auth"
)

// MockService реализует интерфейс login.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, email, password string) (string, string, string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.String(1), args.String(2), args.Error(3)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный вход",
			body: `{"email":"barber@example.com","password":"strongpass"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "barber@example.com", "strongpass").
					Return("jwt-token", "barber", "c9a646d3-9c61-4cb7-bfcd-ee2522c8f633", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"token":"jwt-token"`,
		},
		{
			name: "неверные учетные данные",
			body: `{"email":"barber@example.com","password":"wrongpass1"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "barber@example.com", "wrongpass1").
					Return("", "", "", auth.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "invalid credentials",
		},
		{
			name:           "некорректный JSON",
			body:           `{`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid request body",
		},
		{
			name:           "не почта",
			body:           `{"email":"not-an-email","password":"strongpass"}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "Email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcMock := new(MockService)
			if tt.setupMock != nil {
				tt.setupMock(svcMock)
			}

			handler := New(newNoopLogger(), svcMock)

			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			svcMock.AssertExpectations(t)
		})
	}
}
