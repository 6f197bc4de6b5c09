package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL        string
	ServerPort         int
	JWTSecretKey       string
	CORSAllowedOrigins []string
	AutoMigrate        bool

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
}

// R2Enabled reports whether every object storage setting is present.
func (c *Config) R2Enabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" &&
		c.R2BucketName != "" && c.R2PublicBaseURL != ""
}

// AuthEnabled reports whether write routes require a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecretKey != ""
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) (*Config, error) {
	dbURL := getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = buildDatabaseURL(getenv)
	}

	portStr := getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	autoMigrate := false
	if v := getenv("DB_AUTO_MIGRATE"); v != "" {
		autoMigrate, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_AUTO_MIGRATE environment variable: %w", err)
		}
	}

	cfg := &Config{
		DatabaseURL:        dbURL,
		ServerPort:         port,
		JWTSecretKey:       getenv("JWT_SECRET_KEY"),
		CORSAllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS"), []string{"*"}),
		AutoMigrate:        autoMigrate,
		R2AccountID:        getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:      getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey:  getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:       getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:    getenv("R2_PUBLIC_BASE_URL"),
	}

	r2Set := cfg.R2AccountID != "" || cfg.R2AccessKeyID != "" || cfg.R2SecretAccessKey != "" ||
		cfg.R2BucketName != "" || cfg.R2PublicBaseURL != ""
	if r2Set && !cfg.R2Enabled() {
		return nil, fmt.Errorf("incomplete R2 configuration: R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_BUCKET_NAME and R2_PUBLIC_BASE_URL must all be set")
	}

	return cfg, nil
}

func buildDatabaseURL(getenv func(string) string) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(envOr(getenv, "PG_USER", "playerz"), envOr(getenv, "PG_PASSWORD", "playerz")),
		Host:   envOr(getenv, "PG_HOST", "localhost") + ":" + envOr(getenv, "PG_PORT", "5432"),
		Path:   "/" + envOr(getenv, "PG_DBNAME", "playerz"),
	}
	q := url.Values{}
	q.Set("sslmode", envOr(getenv, "PG_SSLMODE", "disable"))
	u.RawQuery = q.Encode()
	return u.String()
}

func envOr(getenv func(string) string, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(raw string, def []string) []string {
	if strings.TrimSpace(raw) == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
