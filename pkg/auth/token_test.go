package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Richyi/promosophia/pkg/config"
	"github.com/Richyi/promosophia/pkg/enums"
)

func tokenConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "test-secret",
		Issuer:                 "promosophia",
		ExpirationMinutes:      30,
		RefreshTokenTTLMinutes: 43200,
	}
}

func TestMintAndParseRoundTrip(t *testing.T) {
	cfg := tokenConfig()
	payload := AccessTokenPayload{
		UserID:   uuid.New(),
		TenantID: uuid.New(),
		Role:     enums.UserRoleRevenueManager,
		JTI:      "session-123",
	}

	token, err := MintAccessToken(cfg, time.Now(), payload)
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, payload.UserID, claims.UserID)
	assert.Equal(t, payload.TenantID, claims.TenantID)
	assert.Equal(t, enums.UserRoleRevenueManager, claims.Role)
	assert.Equal(t, "session-123", claims.ID)
	assert.Equal(t, "promosophia", claims.Issuer)
}

func TestMintGeneratesJTIWhenBlank(t *testing.T) {
	cfg := tokenConfig()
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID:   uuid.New(),
		TenantID: uuid.New(),
		Role:     enums.UserRoleAnalyst,
	})
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, token)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)
}

func TestMintValidation(t *testing.T) {
	valid := AccessTokenPayload{UserID: uuid.New(), TenantID: uuid.New(), Role: enums.UserRoleAnalyst}

	cases := map[string]struct {
		cfg     config.JWTConfig
		payload AccessTokenPayload
	}{
		"missing secret": {
			cfg:     config.JWTConfig{Issuer: "promosophia", ExpirationMinutes: 30},
			payload: valid,
		},
		"missing issuer": {
			cfg:     config.JWTConfig{Secret: "s", ExpirationMinutes: 30},
			payload: valid,
		},
		"zero expiry": {
			cfg:     config.JWTConfig{Secret: "s", Issuer: "promosophia"},
			payload: valid,
		},
		"invalid role": {
			cfg:     tokenConfig(),
			payload: AccessTokenPayload{UserID: uuid.New(), TenantID: uuid.New(), Role: enums.UserRole("INTERN")},
		},
		"nil tenant": {
			cfg:     tokenConfig(),
			payload: AccessTokenPayload{UserID: uuid.New(), Role: enums.UserRoleAnalyst},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := MintAccessToken(tc.cfg, time.Now(), tc.payload)
			assert.Error(t, err)
		})
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	cfg := tokenConfig()
	payload := AccessTokenPayload{UserID: uuid.New(), TenantID: uuid.New(), Role: enums.UserRoleAnalyst, JTI: "old-session"}

	token, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), payload)
	require.NoError(t, err)

	_, err = ParseAccessToken(cfg, token)
	require.Error(t, err)

	// Refresh still needs the jti out of an expired token.
	claims, err := ParseAccessTokenAllowExpired(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, "old-session", claims.ID)
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	minterCfg := tokenConfig()
	minterCfg.Issuer = "someone-else"
	token, err := MintAccessToken(minterCfg, time.Now(), AccessTokenPayload{
		UserID: uuid.New(), TenantID: uuid.New(), Role: enums.UserRoleAnalyst,
	})
	require.NoError(t, err)

	_, err = ParseAccessToken(tokenConfig(), token)
	assert.Error(t, err)
}

func TestParseRejectsTamperedSignature(t *testing.T) {
	cfg := tokenConfig()
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID: uuid.New(), TenantID: uuid.New(), Role: enums.UserRoleAnalyst,
	})
	require.NoError(t, err)

	otherCfg := cfg
	otherCfg.Secret = "different-secret"
	_, err = ParseAccessToken(otherCfg, token)
	assert.Error(t, err)
}
