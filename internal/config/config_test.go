package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr error
		anyErr  bool
		check   func(*testing.T, *Config)
	}{
		{
			name:    "missing secret fails",
			envVars: map[string]string{"AUTH_JWT_SECRET": ""},
			wantErr: ErrMissingJWTSecret,
		},
		{
			name:    "blank secret fails",
			envVars: map[string]string{"AUTH_JWT_SECRET": "   "},
			wantErr: ErrMissingJWTSecret,
		},
		{
			name:    "defaults",
			envVars: map[string]string{"AUTH_JWT_SECRET": "s3cret"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "3001", cfg.App.Port)
				assert.Equal(t, "0.0.0.0:3001", cfg.App.Addr())
				assert.True(t, cfg.App.IsDevelopment())
				assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL())
				assert.Equal(t, 10, cfg.Auth.BcryptCost)
				assert.Equal(t, 5, cfg.Auth.LoginMaxFailures)
				assert.Equal(t, 5*time.Minute, cfg.Auth.LoginLockout())
				assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
				assert.Empty(t, cfg.Postgres.DSN)
				assert.Empty(t, cfg.Redis.Addr)
			},
		},
		{
			name: "overrides",
			envVars: map[string]string{
				"AUTH_JWT_SECRET":      "s3cret",
				"APP_PORT":             "9000",
				"APP_ENV":              "production",
				"AUTH_TOKEN_TTL_HOURS": "2",
				"CORS_ALLOWED_ORIGINS": "https://a.example, https://b.example",
				"REDIS_ADDR":           "redis:6379",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "9000", cfg.App.Port)
				assert.False(t, cfg.App.IsDevelopment())
				assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL())
				assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
				assert.Equal(t, "redis:6379", cfg.Redis.Addr)
			},
		},
		{
			name:    "bad redis db",
			envVars: map[string]string{"AUTH_JWT_SECRET": "s3cret", "REDIS_DB": "x"},
			anyErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if tt.anyErr {
				require.Error(t, err)
				return
			}
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
