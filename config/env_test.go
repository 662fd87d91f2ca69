package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequiresJWTSecret(t *testing.T) {
	Set("JWT_SECRET", "")
	assert.ErrorIs(t, Validate(), ErrMissingJWTSecret)

	Set("JWT_SECRET", "s3cret")
	t.Cleanup(func() { Set("JWT_SECRET", "") })
	assert.NoError(t, Validate())
}

func TestValidateRejectsBadTTL(t *testing.T) {
	Set("JWT_SECRET", "s3cret")
	Set("TOKEN_TTL", "five days")
	t.Cleanup(func() {
		Set("JWT_SECRET", "")
		Set("TOKEN_TTL", defaultTokenTTL.String())
	})

	assert.Error(t, Validate())
}

func TestTokenTTLDefaultsToFiveDays(t *testing.T) {
	assert.Equal(t, 5*24*time.Hour, defaultTokenTTL)

	Set("TOKEN_TTL", "")
	t.Cleanup(func() { Set("TOKEN_TTL", defaultTokenTTL.String()) })
	assert.Equal(t, defaultTokenTTL, TokenTTL())
}

func TestDatabaseDriverFallsBackToSQLite(t *testing.T) {
	Set("DB_DRIVER", "oracle")
	t.Cleanup(func() { Set("DB_DRIVER", defaultDatabaseDriver) })

	assert.Equal(t, "sqlite", DatabaseDriver())
	assert.Equal(t, defaultSQLiteDSN, DatabaseDSN())
}

func TestLoginMaxAttemptsIgnoresGarbage(t *testing.T) {
	Set("LOGIN_MAX_ATTEMPTS", "-3")
	t.Cleanup(func() { Set("LOGIN_MAX_ATTEMPTS", "5") })

	assert.Equal(t, defaultLoginAttempts, LoginMaxAttempts())
}

func TestMergeDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment\nJWT_SECRET=\"quoted\"\nauth_header = x-token\nbroken line\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	out := map[string]string{}
	require.NoError(t, mergeDotEnv(path, out))

	assert.Equal(t, "quoted", out["JWT_SECRET"])
	assert.Equal(t, "x-token", out["AUTH_HEADER"])
	assert.Len(t, out, 2)
}

func TestMergeJSONConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"app_port":"9000","login_max_attempts":3,"nested":{"a":1}}`), 0o600))

	out := map[string]string{}
	require.NoError(t, mergeJSONConfig(path, out))

	assert.Equal(t, "9000", out["APP_PORT"])
	assert.Equal(t, "3", out["LOGIN_MAX_ATTEMPTS"])
	assert.NotContains(t, out, "NESTED")
}

func TestTrustedProxies(t *testing.T) {
	assert.Nil(t, TrustedProxies())

	Set("TRUSTED_PROXIES", "10.0.0.0/8,192.0.2.1")
	t.Cleanup(func() { Set("TRUSTED_PROXIES", "") })
	assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.1"}, TrustedProxies())
}
