package config

import (
	"os"
	"strings"
	"testing"
)

var configKeys = []string{
	"SERVER_PORT", "GIN_MODE", "MODEL_PATH", "TRANSFORMER_PATH",
	"DATA_SOURCE", "PRICING_PATH", "DELAY_PATH", "DELAY_SHEET",
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
	"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB", "REDIS_PING_ATTEMPTS",
	"CACHE_TTL_SEC", "CORS_ALLOWED_ORIGINS",
	"LOG_FILE", "LOG_MAX_SIZE_MB", "LOG_MAX_BACKUPS", "LOG_MAX_AGE_DAYS", "LOG_COMPRESS",
}

func clearEnv() {
	for _, key := range configKeys {
		os.Unsetenv(key)
	}
}

func TestGetDSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "getaround",
		Password: "secret",
		Name:     "getaround",
		SSLMode:  "disable",
	}
	dsn := db.GetDSN()

	expected := "host=localhost port=5432 user=getaround password=secret dbname=getaround sslmode=disable"
	if dsn != expected {
		t.Errorf("GetDSN() = %q, want %q", dsn, expected)
	}
}

func TestGetDSNCustomValues(t *testing.T) {
	db := DatabaseConfig{
		Host:     "db.example.com",
		Port:     5433,
		User:     "admin",
		Password: "p@ss",
		Name:     "rentals",
		SSLMode:  "require",
	}
	dsn := db.GetDSN()

	if !strings.Contains(dsn, "host=db.example.com") {
		t.Errorf("DSN missing host, got: %s", dsn)
	}
	if !strings.Contains(dsn, "port=5433") {
		t.Errorf("DSN missing port, got: %s", dsn)
	}
	if !strings.Contains(dsn, "sslmode=require") {
		t.Errorf("DSN missing sslmode, got: %s", dsn)
	}
}

func TestGetEnv(t *testing.T) {
	os.Unsetenv("TEST_CONFIG_VAR")
	if got := getEnv("TEST_CONFIG_VAR", "default"); got != "default" {
		t.Errorf("getEnv() = %q, want %q", got, "default")
	}

	os.Setenv("TEST_CONFIG_VAR", "custom")
	defer os.Unsetenv("TEST_CONFIG_VAR")
	if got := getEnv("TEST_CONFIG_VAR", "default"); got != "custom" {
		t.Errorf("getEnv() = %q, want %q", got, "custom")
	}
}

func TestGetIntEnv(t *testing.T) {
	t.Run("fallback when unset", func(t *testing.T) {
		os.Unsetenv("TEST_INT_VAR")
		got, err := getIntEnv("TEST_INT_VAR", 4000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 4000 {
			t.Errorf("getIntEnv() = %d, want %d", got, 4000)
		}
	})

	t.Run("parses valid int", func(t *testing.T) {
		os.Setenv("TEST_INT_VAR", "9090")
		defer os.Unsetenv("TEST_INT_VAR")
		got, err := getIntEnv("TEST_INT_VAR", 4000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 9090 {
			t.Errorf("getIntEnv() = %d, want %d", got, 9090)
		}
	})

	t.Run("error on invalid int", func(t *testing.T) {
		os.Setenv("TEST_INT_VAR", "not_int")
		defer os.Unsetenv("TEST_INT_VAR")
		_, err := getIntEnv("TEST_INT_VAR", 4000)
		if err == nil {
			t.Error("expected error for invalid int value")
		}
	})
}

func TestGetBoolEnv(t *testing.T) {
	os.Unsetenv("TEST_BOOL_VAR")
	got, err := getBoolEnv("TEST_BOOL_VAR", true)
	if err != nil || !got {
		t.Errorf("getBoolEnv() = %v, %v, want true, nil", got, err)
	}

	os.Setenv("TEST_BOOL_VAR", "false")
	defer os.Unsetenv("TEST_BOOL_VAR")
	got, err = getBoolEnv("TEST_BOOL_VAR", true)
	if err != nil || got {
		t.Errorf("getBoolEnv() = %v, %v, want false, nil", got, err)
	}

	os.Setenv("TEST_BOOL_VAR", "maybe")
	if _, err := getBoolEnv("TEST_BOOL_VAR", true); err == nil {
		t.Error("expected error for invalid bool value")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Server.Port != 4000 {
		t.Errorf("Server.Port = %d, want 4000", cfg.Server.Port)
	}
	if cfg.Model.ModelPath != "model/model_reg.json" {
		t.Errorf("Model.ModelPath = %q", cfg.Model.ModelPath)
	}
	if cfg.Model.TransformerPath != "model/transformer.json" {
		t.Errorf("Model.TransformerPath = %q", cfg.Model.TransformerPath)
	}
	if cfg.Data.Source != SourceFile {
		t.Errorf("Data.Source = %q, want %q", cfg.Data.Source, SourceFile)
	}
	if cfg.Data.DelaySheet != "" {
		t.Errorf("Data.DelaySheet = %q, want empty", cfg.Data.DelaySheet)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Database.Port = %d, want 5432", cfg.Database.Port)
	}
	if cfg.Redis.Port != 6379 {
		t.Errorf("Redis.Port = %d, want 6379", cfg.Redis.Port)
	}
	if cfg.Redis.PingAttempts != 3 {
		t.Errorf("Redis.PingAttempts = %d, want 3", cfg.Redis.PingAttempts)
	}
	if cfg.Cache.TTLSeconds != 300 {
		t.Errorf("Cache.TTLSeconds = %d, want 300", cfg.Cache.TTLSeconds)
	}
	if cfg.CORS.AllowedOrigins != "*" {
		t.Errorf("CORS.AllowedOrigins = %q, want %q", cfg.CORS.AllowedOrigins, "*")
	}
	if cfg.Log.MaxSizeMB != 50 || cfg.Log.Compress {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLoadConfigCustom(t *testing.T) {
	clearEnv()
	os.Setenv("SERVER_PORT", "3000")
	os.Setenv("DATA_SOURCE", "postgres")
	os.Setenv("DB_HOST", "db.prod")
	os.Setenv("DB_PORT", "5433")
	os.Setenv("CACHE_TTL_SEC", "60")
	defer clearEnv()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Data.Source != SourcePostgres {
		t.Errorf("Data.Source = %q, want %q", cfg.Data.Source, SourcePostgres)
	}
	if cfg.Database.Host != "db.prod" {
		t.Errorf("Database.Host = %q, want %q", cfg.Database.Host, "db.prod")
	}
	if cfg.Database.Port != 5433 {
		t.Errorf("Database.Port = %d, want 5433", cfg.Database.Port)
	}
	if cfg.Cache.TTLSeconds != 60 {
		t.Errorf("Cache.TTLSeconds = %d, want 60", cfg.Cache.TTLSeconds)
	}
}

func TestLoadConfigInvalidPort(t *testing.T) {
	clearEnv()
	os.Setenv("SERVER_PORT", "invalid")
	defer os.Unsetenv("SERVER_PORT")

	_, err := LoadConfig()
	if err == nil {
		t.Error("expected error for invalid SERVER_PORT")
	}
}

func TestLoadConfigInvalidSource(t *testing.T) {
	clearEnv()
	os.Setenv("DATA_SOURCE", "s3")
	defer os.Unsetenv("DATA_SOURCE")

	_, err := LoadConfig()
	if err == nil {
		t.Error("expected error for unknown DATA_SOURCE")
	}
}
