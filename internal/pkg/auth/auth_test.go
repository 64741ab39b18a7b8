package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlaaron/trosset-app/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "trosset-test"},
		JWT: config.JWTConfig{
			Secret:             "test-secret-key-that-is-long-enough-123",
			AccessTokenExpiry:  time.Hour,
			RefreshTokenExpiry: 24 * time.Hour,
		},
		Security: config.SecurityConfig{BcryptCost: 4},
	}
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	m := NewJWTManager(testConfig())

	token, err := m.GenerateAccessToken(42, "baker@trosset.local", "baker")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "baker@trosset.local", claims.Email)
	assert.Equal(t, "baker", claims.Role)
	assert.Equal(t, "access", claims.TokenType)
}

func TestRefreshTokenCarriesNoRole(t *testing.T) {
	m := NewJWTManager(testConfig())

	token, err := m.GenerateRefreshToken(7, "admin@trosset.local")
	require.NoError(t, err)

	claims, err := m.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Empty(t, claims.Role)
}

func TestTokenTypeMismatchRejected(t *testing.T) {
	m := NewJWTManager(testConfig())

	access, err := m.GenerateAccessToken(1, "a@trosset.local", "admin")
	require.NoError(t, err)
	refresh, err := m.GenerateRefreshToken(1, "a@trosset.local")
	require.NoError(t, err)

	_, err = m.ValidateRefreshToken(access)
	assert.Error(t, err)

	_, err = m.ValidateAccessToken(refresh)
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	m := NewJWTManager(testConfig())
	token, err := m.GenerateAccessToken(1, "a@trosset.local", "admin")
	require.NoError(t, err)

	other := testConfig()
	other.JWT.Secret = "a-completely-different-secret-key-456"
	_, err = NewJWTManager(other).ValidateToken(token)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc123", ExtractTokenFromHeader("Bearer abc123"))
	assert.Empty(t, ExtractTokenFromHeader("abc123"))
	assert.Empty(t, ExtractTokenFromHeader(""))
	assert.Empty(t, ExtractTokenFromHeader("Bearer "))
}

func TestHashAndVerifyPassword(t *testing.T) {
	p := NewPasswordManager(testConfig())

	hash, err := p.HashPassword("Horno&Masa9")
	require.NoError(t, err)
	require.NotEqual(t, "Horno&Masa9", hash)

	assert.NoError(t, p.VerifyPassword(hash, "Horno&Masa9"))
	assert.Error(t, p.VerifyPassword(hash, "otra-cosa"))
}

func TestHasRepeatedRun(t *testing.T) {
	assert.True(t, hasRepeatedRun("aaa", 3))
	assert.True(t, hasRepeatedRun("xxañññz", 3))
	assert.False(t, hasRepeatedRun("aabbaa", 3))
	assert.False(t, hasRepeatedRun("", 3))
	assert.False(t, hasRepeatedRun("abcabcabc", 3))
}

func TestValidatePassword(t *testing.T) {
	p := NewPasswordManager(testConfig())

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Horno&Masa9", false},
		{"too short", "Ab1!", true},
		{"no uppercase", "horno&masa9", true},
		{"no number", "Horno&Masa!", true},
		{"no special", "HornoMasa91", true},
		{"sequential numbers", "Horno&Masa123", true},
		{"repeating characters", "Horno&Maaasa9", true},
		{"double characters allowed", "Horno&&Masa9", false},
		{"common word", "Password9!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
