package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Matching MatchingConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type MatchingConfig struct {
	// MLServiceURL points at the external scoring service. Empty means the
	// default local address.
	MLServiceURL string
	// JobsAPIBaseURL is the job board API root. Empty means the public board.
	JobsAPIBaseURL string
	// CorpusPath is the CSV of job descriptions the term weight table is
	// built from at startup.
	CorpusPath string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, fallback string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return fallback
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     opt("APP_NAME", "joblens"),
		Environment: opt("APP_ENV", "development"),
		HTTPPort:    opt("HTTP_PORT", "8080"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST", ""),
		DBPort:     opt("DB_PORT", ""),
		DBName:     opt("DB_NAME", ""),
		DBUser:     opt("DB_USER", ""),
		DBPassword: opt("DB_PASSWORD", ""),
		DBSSLMode:  opt("DB_SSL_MODE", ""),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD", ""),
		TTL:      secondsOrDefault("REDIS_TTL", 600*time.Second),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:  req("JWT_ACCESS_SECRET"),
		RefreshSecret: req("JWT_REFRESH_SECRET"),
		AccessTTL:     secondsOrDefault("JWT_ACCESS_TTL", 15*time.Minute),
		RefreshTTL:    secondsOrDefault("JWT_REFRESH_TTL", 7*24*time.Hour),
	}

	cfg.Matching = MatchingConfig{
		MLServiceURL:   opt("ML_SERVICE_URL", ""),
		JobsAPIBaseURL: opt("JOBS_API_BASE_URL", ""),
		CorpusPath:     opt("CORPUS_PATH", "./dataset/job_descriptions.csv"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func secondsOrDefault(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return time.Duration(v) * time.Second
}
