package config

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(overrides map[string]interface{}) *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := FromViper(newViper(nil))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, 4*1024*1024, cfg.BodyLimit)
	assert.False(t, cfg.ExposeErrorDetails)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "shop.db", cfg.Database.DSN)
	assert.False(t, cfg.Auth.Enabled)
	assert.False(t, cfg.RabbitMQ.Enabled)
	assert.Equal(t, "product_events", cfg.RabbitMQ.Queue)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("APP_PORT", ":9090")
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("EXPOSE_ERROR_DETAILS", "true")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.AppPort)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.True(t, cfg.ExposeErrorDetails)
	assert.Equal(t, "console", cfg.Logger.Format)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]interface{}
		wantErr   string
	}{
		{"unknown driver", map[string]interface{}{"DB_DRIVER": "mysql"}, "invalid database driver"},
		{"missing dsn", map[string]interface{}{"DATABASE_DSN": ""}, "DATABASE_DSN is required"},
		{"memory needs no dsn", map[string]interface{}{"DB_DRIVER": "memory", "DATABASE_DSN": ""}, ""},
		{"auth without secret", map[string]interface{}{"AUTH_ENABLED": true}, "JWT_SECRET is required"},
		{"auth with secret", map[string]interface{}{"AUTH_ENABLED": true, "JWT_SECRET": "s"}, ""},
		{"auth on memory", map[string]interface{}{"AUTH_ENABLED": true, "JWT_SECRET": "s", "DB_DRIVER": "memory"}, "auth requires"},
		{"rabbitmq without url", map[string]interface{}{"RABBITMQ_ENABLED": true, "RABBITMQ_URL": ""}, "RABBITMQ_URL is required"},
		{"bad log level", map[string]interface{}{"LOG_LEVEL": "trace"}, "invalid log level"},
		{"bad log format", map[string]interface{}{"LOG_FORMAT": "xml"}, "invalid log format"},
		{"bad body limit", map[string]interface{}{"BODY_LIMIT": 0}, "invalid body limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromViper(newViper(tt.overrides))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(LoggerConfig{Level: "warn", Format: "json"}, &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)
}
