package middlewarectx_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/barber-booking/internal/http/middlewarectx"
	"github.com/magabrotheeeer/barber-booking/internal/lib/jwt"
	sub "github.com/magabrotheeeer/barber-booking/internal/subscription"
)

type AuthServiceMock struct{ mock.Mock }

func (m *AuthServiceMock) ValidateToken(ctx context.Context, token string) (*jwt.CustomClaims, error) {
	args := m.Called(ctx, token)
	claims, _ := args.Get(0).(*jwt.CustomClaims)
	return claims, args.Error(1)
}

type SubServiceMock struct{ mock.Mock }

func (m *SubServiceMock) GetStatus(ctx context.Context, barberUID string) (*sub.View, error) {
	args := m.Called(ctx, barberUID)
	view, _ := args.Get(0).(*sub.View)
	return view, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestJWTMiddleware(t *testing.T) {
	validClaims := &jwt.CustomClaims{
		Email:     "barber@example.com",
		Role:      "barber",
		BarberUID: "c9a646d3-9c61-4cb7-bfcd-ee2522c8f633",
	}

	tests := []struct {
		name           string
		authHeader     string
		mockClaims     *jwt.CustomClaims
		mockErr        error
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "отсутствует заголовок Authorization",
			authHeader:     "",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "неверный префикс заголовка",
			authHeader:     "Basic sometoken",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "токен не прошёл проверку",
			authHeader:     "Bearer token",
			mockErr:        errors.New("token is expired"),
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "валидный токен",
			authHeader:     "Bearer token",
			mockClaims:     validClaims,
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			if tt.mockClaims != nil || tt.mockErr != nil {
				authMock.On("ValidateToken", mock.Anything, "token").Return(tt.mockClaims, tt.mockErr)
			}

			handlerCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				assert.Equal(t, validClaims.Email, r.Context().Value(middlewarectx.User))
				assert.Equal(t, validClaims.BarberUID, r.Context().Value(middlewarectx.BarberUID))
				assert.Equal(t, validClaims.Role, r.Context().Value(middlewarectx.Role))
				w.WriteHeader(http.StatusOK)
			})

			handler := middlewarectx.JWTMiddleware(authMock, newNoopLogger())(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/services", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
		})
	}
}

func TestSubscriptionGateMiddleware(t *testing.T) {
	barberUID := "c9a646d3-9c61-4cb7-bfcd-ee2522c8f633"

	tests := []struct {
		name           string
		ctxUID         any
		mockView       *sub.View
		mockErr        error
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "активная подписка пропускается",
			ctxUID:         barberUID,
			mockView:       &sub.View{IsActive: true},
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
		{
			name:           "истёкшая подписка блокируется",
			ctxUID:         barberUID,
			mockView:       &sub.View{IsActive: false},
			wantStatusCode: http.StatusForbidden,
		},
		{
			name:           "нет uid в контексте",
			ctxUID:         nil,
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "ошибка получения статуса",
			ctxUID:         barberUID,
			mockErr:        errors.New("storage down"),
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subMock := new(SubServiceMock)
			if tt.mockView != nil || tt.mockErr != nil {
				subMock.On("GetStatus", mock.Anything, barberUID).Return(tt.mockView, tt.mockErr)
			}

			handlerCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})

			handler := middlewarectx.SubscriptionGateMiddleware(newNoopLogger(), subMock)(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/services", nil)
			if tt.ctxUID != nil {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.BarberUID, tt.ctxUID))
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
		})
	}
}
