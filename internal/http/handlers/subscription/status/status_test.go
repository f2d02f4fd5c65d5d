package status

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/barber-booking/internal/http/middlewarectx"
	"github.com/magabrotheeeer/barber-booking/internal/storage"
	sub "github.com/magabrotheeeer/barber-booking/internal/subscription"
)

// MockService реализует интерфейс status.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) GetStatus(ctx context.Context, barberUID string) (*sub.View, error) {
	args := m.Called(ctx, barberUID)
	if res := args.Get(0); res != nil {
		return res.(*sub.View), args.Error(1)
	}
	return nil, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

const ownUID = "c9a646d3-9c61-4cb7-bfcd-ee2522c8f633"

func TestStatusHandler(t *testing.T) {
	expiry := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		urlUID         string
		ctxUID         string
		ctxRole        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "собственный статус",
			urlUID:  ownUID,
			ctxUID:  ownUID,
			ctxRole: "barber",
			setupMock: func(m *MockService) {
				m.On("GetStatus", mock.Anything, ownUID).Return(&sub.View{
					Status:          "active",
					ExpiresAt:       expiry,
					DaysUntilExpiry: 12,
					IsActive:        true,
					Badge:           sub.BadgeActive,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"badge":"ATIVA"`,
		},
		{
			name:           "чужой аккаунт запрещён",
			urlUID:         "другой-uid",
			ctxUID:         ownUID,
			ctxRole:        "barber",
			expectedStatus: http.StatusForbidden,
			expectedBody:   "access denied",
		},
		{
			name:    "администратор видит любой аккаунт",
			urlUID:  ownUID,
			ctxUID:  "admin-uid",
			ctxRole: "admin",
			setupMock: func(m *MockService) {
				m.On("GetStatus", mock.Anything, ownUID).Return(&sub.View{
					IsActive: false,
					Badge:    sub.BadgeExpired,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"badge":"EXPIRADA"`,
		},
		{
			name:    "барбер не найден",
			urlUID:  ownUID,
			ctxUID:  ownUID,
			ctxRole: "barber",
			setupMock: func(m *MockService) {
				m.On("GetStatus", mock.Anything, ownUID).Return(nil, storage.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "barber not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcMock := new(MockService)
			if tt.setupMock != nil {
				tt.setupMock(svcMock)
			}

			handler := New(newNoopLogger(), svcMock)

			router := chi.NewRouter()
			router.Get("/subscriptions/status/{barberUID}", handler.ServeHTTP)

			req := httptest.NewRequest(http.MethodGet, "/subscriptions/status/"+tt.urlUID, nil)
			ctx := context.WithValue(req.Context(), middlewarectx.BarberUID, tt.ctxUID)
			ctx = context.WithValue(ctx, middlewarectx.Role, tt.ctxRole)
			req = req.WithContext(ctx)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			svcMock.AssertExpectations(t)
		})
	}
}
