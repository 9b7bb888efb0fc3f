package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MemoryDefaults(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "memory")
	t.Setenv("JWT_ACCESS_SECRET", "dev-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "studybuds", cfg.JWT.Issuer)
	assert.Equal(t, 24*time.Hour, cfg.JWT.DevTokenExpiry)
	assert.Equal(t, 60, cfg.Matching.MinScore)
	assert.Equal(t, 24*time.Hour, cfg.Matching.FeedSkipTTL)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "studybuds")
	t.Setenv("DB_NAME", "studybuds")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("JWT_ACCESS_SECRET", "dev-secret")
	t.Setenv("MATCH_MIN_SCORE", "75")
	t.Setenv("FEED_SKIP_TTL_HOURS", "2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "host=db port=5432 user=studybuds password= dbname=studybuds sslmode=disable", cfg.Database.GetDSN())
	assert.Equal(t, "cache:6379", cfg.Redis.GetAddr())
	assert.Equal(t, 75, cfg.Matching.MinScore)
	assert.Equal(t, 2*time.Hour, cfg.Matching.FeedSkipTTL)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Env: "development"},
			Storage:  StorageConfig{Type: StorageTypeMemory},
			JWT:      JWTConfig{AccessSecret: "short"},
			Matching: MatchingConfig{MinScore: 60},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"unknown storage", func(c *Config) { c.Storage.Type = "mongo" }, "unknown storage type"},
		{"postgres needs host", func(c *Config) { c.Storage.Type = StorageTypePostgres }, "database host is required"},
		{"missing secret", func(c *Config) { c.JWT.AccessSecret = "" }, "JWT access secret is required"},
		{"short secret in production", func(c *Config) { c.Server.Env = EnvProduction }, "at least 32 characters"},
		{"min score range", func(c *Config) { c.Matching.MinScore = 101 }, "between 0 and 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
