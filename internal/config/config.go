package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DeepSeek DeepSeekConfig
	Supabase SupabaseConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Explain  ExplainConfig
	Backfill BackfillConfig
	Logging  LoggingConfig
}

type DeepSeekConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
}

type SupabaseConfig struct {
	URL   string
	Key   string
	Table string
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type ExplainConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// ReferenceFile names one transcript file and the episode label it stands for.
type ReferenceFile struct {
	Label string
	Path  string
}

type BackfillConfig struct {
	SeriesName  string
	Status      int
	References  []ReferenceFile
	Concurrency int
}

type LoggingConfig struct {
	Level string
	File  string
}

const (
	StoreREST     = "rest"
	StorePostgres = "postgres"
)

func Load() (*Config, error) {
	_ = godotenv.Load()

	references, err := parseReferences(getEnv("BACKFILL_REFERENCES", "S01E02=SHDBZ S01E02.srt,S01E03=SHDBZ S01E03.srt"))
	if err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg := &Config{
		DeepSeek: DeepSeekConfig{
			APIKey:      getEnv("DEEPSEEK_API_KEY", ""),
			BaseURL:     getEnv("DEEPSEEK_BASE_URL", "https://api.deepseek.com"),
			Model:       getEnv("DEEPSEEK_MODEL", "deepseek-chat"),
			MaxTokens:   getEnvInt("DEEPSEEK_MAX_TOKENS", 2048),
			Temperature: getEnvFloat("DEEPSEEK_TEMPERATURE", 1),
		},
		Supabase: SupabaseConfig{
			URL:   strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
			Key:   getEnv("SUPABASE_KEY", ""),
			Table: getEnv("WORD_TABLE", "word"),
		},
		Postgres: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", ""),
			Database: getEnv("POSTGRES_DB", "postgres"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "require"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Explain: ExplainConfig{
			CacheEnabled: getEnvBool("EXPLAIN_CACHE_ENABLED", false),
			CacheTTL:     time.Duration(getEnvInt("EXPLAIN_CACHE_TTL_HOURS", 168)) * time.Hour,
		},
		Backfill: BackfillConfig{
			SeriesName:  getEnv("BACKFILL_SERIES_NAME", "TBBT"),
			Status:      getEnvInt("BACKFILL_STATUS", 3),
			References:  references,
			Concurrency: getEnvInt("BACKFILL_CONCURRENCY", 1),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	return cfg, nil
}

// ValidateExplain checks the settings cmd/explain depends on.
func (c *Config) ValidateExplain() error {
	if c.DeepSeek.APIKey == "" {
		return fmt.Errorf("DEEPSEEK_API_KEY is required")
	}
	if c.DeepSeek.BaseURL == "" {
		return fmt.Errorf("DEEPSEEK_BASE_URL is required")
	}
	if c.DeepSeek.MaxTokens <= 0 {
		return fmt.Errorf("DEEPSEEK_MAX_TOKENS must be positive")
	}
	return nil
}

// ValidateBackfill checks the settings cmd/backfill depends on for the given store.
func (c *Config) ValidateBackfill(store string) error {
	switch store {
	case StoreREST:
		if c.Supabase.URL == "" {
			return fmt.Errorf("SUPABASE_URL is required")
		}
		if c.Supabase.Key == "" {
			return fmt.Errorf("SUPABASE_KEY is required")
		}
	case StorePostgres:
		if c.Postgres.Host == "" {
			return fmt.Errorf("POSTGRES_HOST is required")
		}
		if c.Postgres.Password == "" {
			return fmt.Errorf("POSTGRES_PASSWORD is required")
		}
	default:
		return fmt.Errorf("unknown store %q (want %s or %s)", store, StoreREST, StorePostgres)
	}
	if c.Supabase.Table == "" {
		return fmt.Errorf("WORD_TABLE is required")
	}
	if len(c.Backfill.References) == 0 {
		return fmt.Errorf("BACKFILL_REFERENCES is required")
	}
	if c.Backfill.Concurrency < 1 {
		return fmt.Errorf("BACKFILL_CONCURRENCY must be at least 1")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func parseCommaSeparated(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// parseReferences reads an ordered "label=path,label=path" list. Order is
// preserved because the first matching reference wins.
func parseReferences(value string) ([]ReferenceFile, error) {
	entries := parseCommaSeparated(value)
	result := make([]ReferenceFile, 0, len(entries))
	for _, entry := range entries {
		label, path, ok := strings.Cut(entry, "=")
		label = strings.TrimSpace(label)
		path = strings.TrimSpace(path)
		if !ok || label == "" || path == "" {
			return nil, fmt.Errorf("invalid reference %q (want label=path)", entry)
		}
		result = append(result, ReferenceFile{Label: label, Path: path})
	}
	return result, nil
}
