package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTMaker_GenerateAndParseToken_ValidCases(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	tokenTTL := 15 * time.Minute
	maker := NewJWTMaker(secretKey, tokenTTL)

	tests := []struct {
		name      string
		email     string
		role      string
		barberUID string
	}{
		{
			name:      "обычный барбер",
			email:     "barber@example.com",
			role:      "barber",
			barberUID: "c9a646d3-9c61-4cb7-bfcd-ee2522c8f633",
		},
		{
			name:      "администратор",
			email:     "admin@example.com",
			role:      "admin",
			barberUID: "4f2c8b5a-1111-4cb7-bfcd-ee2522c8f633",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateToken(tt.email, tt.role, tt.barberUID)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.email, claims.Email)
			assert.Equal(t, tt.role, claims.Role)
			assert.Equal(t, tt.barberUID, claims.BarberUID)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(tokenTTL), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestJWTMaker_ParseToken_InvalidTokens(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	maker := NewJWTMaker(secretKey, 15*time.Minute)

	tests := []struct {
		name  string
		token string
	}{
		{name: "пустой токен", token: ""},
		{name: "повреждённый токен", token: "invalid.token.here"},
		{name: "истёкший токен", token: createExpiredToken(t, secretKey)},
		{name: "чужой секретный ключ", token: createTokenWithKey(t, "another_secret_key")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := maker.ParseToken(tt.token)
			require.Error(t, err)
		})
	}
}

func createExpiredToken(t *testing.T, secretKey string) string {
	t.Helper()
	claims := CustomClaims{
		Email:     "barber@example.com",
		Role:      "barber",
		BarberUID: "uid",
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secretKey))
	require.NoError(t, err)
	return signed
}

func createTokenWithKey(t *testing.T, secretKey string) string {
	t.Helper()
	maker := NewJWTMaker(secretKey, 15*time.Minute)
	signed, err := maker.GenerateToken("barber@example.com", "barber", "uid")
	require.NoError(t, err)
	return signed
}
