package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	Model    ModelConfig
	Data     DataConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	CORS     CORSConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port    int
	GinMode string
}

type ModelConfig struct {
	ModelPath       string
	TransformerPath string
}

type DataConfig struct {
	Source      string
	PricingPath string
	DelayPath   string
	// DelaySheet empty means the first sheet of the workbook.
	DelaySheet string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (d DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

type RedisConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	PingAttempts int
}

type CacheConfig struct {
	TTLSeconds int
}

type CORSConfig struct {
	AllowedOrigins string
}

type LogConfig struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func LoadConfig() (*Config, error) {
	serverPort, err := getIntEnv("SERVER_PORT", 4000)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	dbPort, err := getIntEnv("DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	redisPort, err := getIntEnv("REDIS_PORT", 6379)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_PORT: %w", err)
	}
	redisDB, err := getIntEnv("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	pingAttempts, err := getIntEnv("REDIS_PING_ATTEMPTS", 3)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_PING_ATTEMPTS: %w", err)
	}

	cacheTTL, err := getIntEnv("CACHE_TTL_SEC", 300)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL_SEC: %w", err)
	}

	logMaxSize, err := getIntEnv("LOG_MAX_SIZE_MB", 50)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_MAX_SIZE_MB: %w", err)
	}
	logMaxBackups, err := getIntEnv("LOG_MAX_BACKUPS", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_MAX_BACKUPS: %w", err)
	}
	logMaxAge, err := getIntEnv("LOG_MAX_AGE_DAYS", 14)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_MAX_AGE_DAYS: %w", err)
	}
	logCompress, err := getBoolEnv("LOG_COMPRESS", false)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_COMPRESS: %w", err)
	}

	source := getEnv("DATA_SOURCE", SourceFile)
	if source != SourceFile && source != SourcePostgres {
		return nil, fmt.Errorf("invalid DATA_SOURCE %q: want %q or %q", source, SourceFile, SourcePostgres)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:    serverPort,
			GinMode: getEnv("GIN_MODE", "release"),
		},
		Model: ModelConfig{
			ModelPath:       getEnv("MODEL_PATH", "model/model_reg.json"),
			TransformerPath: getEnv("TRANSFORMER_PATH", "model/transformer.json"),
		},
		Data: DataConfig{
			Source:      source,
			PricingPath: getEnv("PRICING_PATH", "src/get_around_pricing_project.csv"),
			DelayPath:   getEnv("DELAY_PATH", "src/get_around_delay_analysis.xlsx"),
			DelaySheet:  getEnv("DELAY_SHEET", ""),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "getaround"),
			Password: getEnv("DB_PASSWORD", "getaround_dev_password"),
			Name:     getEnv("DB_NAME", "getaround"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         redisPort,
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           redisDB,
			PingAttempts: pingAttempts,
		},
		Cache: CacheConfig{
			TTLSeconds: cacheTTL,
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Log: LogConfig{
			File:       getEnv("LOG_FILE", "logs/api.log"),
			MaxSizeMB:  logMaxSize,
			MaxBackups: logMaxBackups,
			MaxAgeDays: logMaxAge,
			Compress:   logCompress,
		},
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getIntEnv(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func getBoolEnv(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseBool(value)
}
