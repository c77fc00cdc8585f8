package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_USER", "testuser")
		t.Setenv("DB_PASSWORD", "testpass")
		t.Setenv("DB_NAME", "testdb")
		t.Setenv("DB_PORT", "5432")
		t.Setenv("APP_PORT", "8080")
		t.Setenv("APP_ENV", "test")
		t.Setenv("SEED_DEMO", "false")
		t.Setenv("SEED_CSV_PATH", "feed.csv")

		cfg := LoadConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "testuser", cfg.DBUser)
		assert.Equal(t, "testpass", cfg.DBPassword)
		assert.Equal(t, "testdb", cfg.DBName)
		assert.Equal(t, "5432", cfg.DBPort)
		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.False(t, cfg.SeedDemo)
		assert.Equal(t, "feed.csv", cfg.SeedCSVPath)
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("APP_PORT", "")
		t.Setenv("APP_ENV", "")
		t.Setenv("SEED_DEMO", "")
		t.Setenv("SEED_CSV_PATH", "")

		cfg := LoadConfig()

		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, "sample_products.csv", cfg.SeedCSVPath)
		assert.True(t, cfg.SeedDemo)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("Production env", func(t *testing.T) {
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("APP_ENV", "production")

		cfg := LoadConfig()
		assert.True(t, cfg.IsProduction())
	})
}
