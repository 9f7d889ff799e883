// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/platform/config"
)

/*
TestLoad_SQLiteDefaults verifies defaults when only the driver is chosen.
*/
func TestLoad_SQLiteDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ALLOWED_ORIGINS", "example.org,library.test")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, config.DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "./data/locallibrary.db", cfg.SQLitePath)
	assert.Equal(t, []string{"example.org", "library.test"}, cfg.Origins())
	assert.True(t, cfg.IsDevelopment())
}

/*
TestLoad_PostgresRequiresURL ensures the postgres driver cannot start without a DSN.
*/
func TestLoad_PostgresRequiresURL(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

/*
TestValidate covers driver selection and rate limit fallbacks.
*/
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{"postgres_ok", config.Config{DBDriver: "postgres", DatabaseURL: "postgres://localhost/library"}, false},
		{"sqlite_ok", config.Config{DBDriver: "sqlite", SQLitePath: "/tmp/library.db"}, false},
		{"sqlite_missing_path", config.Config{DBDriver: "sqlite"}, true},
		{"unknown_driver", config.Config{DBDriver: "mongo"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Positive(t, tt.cfg.RateLimitRPS)
			assert.Positive(t, tt.cfg.RateLimitBurst)
		})
	}
}
