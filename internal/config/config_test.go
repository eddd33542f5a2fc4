package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{
			name: "Development defaults",
			config: Config{
				Port:                   "8000",
				Env:                    "development",
				SecretKey:              DefaultSecretKey,
				DatabaseURL:            "sqlite://app.db",
				RegistrationTTLMinutes: 60,
			},
			expectError: false,
		},
		{
			name: "Production with default secret",
			config: Config{
				Port:                   "8000",
				Env:                    "production",
				SecretKey:              DefaultSecretKey,
				DatabaseURL:            "postgres://u:p@localhost/quitemap",
				RegistrationTTLMinutes: 60,
			},
			expectError: true,
		},
		{
			name: "Production with short secret",
			config: Config{
				Port:                   "8000",
				Env:                    "prod",
				SecretKey:              "short",
				DatabaseURL:            "postgres://u:p@localhost/quitemap",
				RegistrationTTLMinutes: 60,
			},
			expectError: true,
		},
		{
			name: "Production with strong secret",
			config: Config{
				Port:                   "8000",
				Env:                    "production",
				SecretKey:              "a-sufficiently-long-production-secret-key",
				DatabaseURL:            "postgres://u:p@localhost/quitemap",
				RegistrationTTLMinutes: 60,
			},
			expectError: false,
		},
		{
			name: "Missing port",
			config: Config{
				Env:                    "development",
				SecretKey:              DefaultSecretKey,
				DatabaseURL:            "sqlite://app.db",
				RegistrationTTLMinutes: 60,
			},
			expectError: true,
		},
		{
			name: "Non-positive registration TTL",
			config: Config{
				Port:                   "8000",
				Env:                    "development",
				SecretKey:              DefaultSecretKey,
				DatabaseURL:            "sqlite://app.db",
				RegistrationTTLMinutes: 0,
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_EnvLocalPrecedence(t *testing.T) {
	defer viper.Reset()
	defer os.Unsetenv("YANDEX_MAPS_API_KEY")
	defer os.Unsetenv("SECRET_KEY")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("YANDEX_MAPS_API_KEY=base-key\nSECRET_KEY=base-secret\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"),
		[]byte("YANDEX_MAPS_API_KEY=local-key\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	cfg, err := LoadConfig()
	require.NoError(t, err)

	// .env.local overrides .env, untouched keys fall through to .env
	assert.Equal(t, "local-key", cfg.YandexMapsAPIKey)
	assert.Equal(t, "base-secret", cfg.SecretKey)
}

func TestLoadConfig_EnvironmentOverridesDotenv(t *testing.T) {
	defer viper.Reset()
	defer os.Unsetenv("PORT")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=9999\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	os.Setenv("PORT", "7777")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "7777", cfg.Port)
}

func TestLoadConfig_Defaults(t *testing.T) {
	defer viper.Reset()

	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "sqlite://app.db", cfg.DatabaseURL)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "hybrid", cfg.DBSchemaMode)
	assert.Equal(t, 60, cfg.RegistrationTTLMinutes)
	assert.False(t, cfg.IsProduction())
}
