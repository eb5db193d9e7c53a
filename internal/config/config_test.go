package config

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"ENDPOINT", "TIMEOUT", "LOG_LEVEL", "LOG_FILE", "CELEBRATE", "STUB_ADDR"} {
		key := EnvPrefix + "_" + k
		// Setenv registers the restore; envconfig treats set-but-empty as a value.
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := load(Overrides{})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", cfg.Endpoint)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.LogFile)
	assert.True(t, cfg.Celebrate)
	assert.Equal(t, ":5000", cfg.StubAddr)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("CROPCAST_ENDPOINT", "https://crops.example.com")
	t.Setenv("CROPCAST_TIMEOUT", "5s")
	t.Setenv("CROPCAST_LOG_LEVEL", "debug")
	t.Setenv("CROPCAST_CELEBRATE", "false")

	cfg, err := load(Overrides{})
	require.NoError(t, err)
	assert.Equal(t, "https://crops.example.com", cfg.Endpoint)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.Celebrate)
}

func TestLoad_OverridesWin(t *testing.T) {
	clearEnv(t)
	t.Setenv("CROPCAST_ENDPOINT", "https://crops.example.com")

	cfg, err := load(Overrides{
		Endpoint: "http://127.0.0.1:8080",
		Timeout:  time.Second,
		LogLevel: "warn",
		LogFile:  "/tmp/cropcast.log",
		StubAddr: ":9000",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080", cfg.Endpoint)
	assert.Equal(t, time.Second, cfg.Timeout)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "/tmp/cropcast.log", cfg.LogFile)
	assert.Equal(t, ":9000", cfg.StubAddr)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		o    Overrides
		want ConfigErrorType
	}{
		{"bad duration", map[string]string{"CROPCAST_TIMEOUT": "soon"}, Overrides{}, ErrParsing},
		{"bad bool", map[string]string{"CROPCAST_CELEBRATE": "perhaps"}, Overrides{}, ErrParsing},
		{"negative timeout", nil, Overrides{Timeout: -time.Second}, ErrValidation},
		{"unknown level", map[string]string{"CROPCAST_LOG_LEVEL": "chatty"}, Overrides{}, ErrValidation},
		{"endpoint not a url", nil, Overrides{Endpoint: "not a url"}, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := load(tt.o)
			var ce *ConfigError
			require.True(t, errors.As(err, &ce), "got %v", err)
			assert.Equal(t, tt.want, ce.Type)
			assert.NotNil(t, errors.Unwrap(err))
		})
	}
}

func TestConfigError_Message(t *testing.T) {
	e := &ConfigError{Type: ErrValidation, Message: "bad"}
	assert.Equal(t, "[VALIDATION_FAILED] bad", e.Error())

	e.Err = errors.New("cause")
	assert.Equal(t, "[VALIDATION_FAILED] bad: cause", e.Error())
}
