package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.True(t, cfg.Server.IsDevelopment())
	assert.Empty(t, cfg.Server.AllowedOrigins)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 100, cfg.RateLimit.Requests)
	assert.Equal(t, int64(4<<20), cfg.Flights.MaxBodyBytes)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_ENV", "production")
	t.Setenv("SERVER_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com,")
	t.Setenv("DATABASE_AUTO_MIGRATE", "yes")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("FLIGHTS_MAX_BODY_BYTES", "1048576")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.False(t, cfg.Server.IsDevelopment())
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.Server.AllowedOrigins)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, int64(1<<20), cfg.Flights.MaxBodyBytes)
}

func TestLoad_BadFlag(t *testing.T) {
	t.Setenv("DATABASE_AUTO_MIGRATE", "sometimes")

	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_AUTO_MIGRATE")
}

func TestParseFlag(t *testing.T) {
	tests := []struct {
		name    string
		raw     interface{}
		want    bool
		wantErr bool
	}{
		{"bool_true", true, true, false},
		{"string_true", "true", true, false},
		{"string_one", "1", true, false},
		{"yes", "YES", true, false},
		{"on", " on ", true, false},
		{"no", "no", false, false},
		{"off", "off", false, false},
		{"empty", "", false, false},
		{"int_zero", 0, false, false},
		{"garbage", "maybe", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFlag(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "skychat", SSLMode: "require"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=skychat sslmode=require", d.DSN())
}
