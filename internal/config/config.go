package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingEnv = errors.New("missing required environment variable")

type Config struct {
	Env      string
	LogLevel string
	LogFile  string

	// web server
	Protocol string
	Host     string
	Port     int

	DBURL         string
	DBMaxConns    int32
	DBAutoMigrate bool

	JWTSecret string

	OTLPEndpoint string
	ServiceName  string

	CORSAllowedOrigins []string
	MaxBodyBytes       int64
}

// Load reads a local .env (if any) and then the process environment.
// Required values that are absent or malformed values are start-up errors.
func Load() (Config, error) {
	// .env is optional, deployments inject real env vars
	_ = godotenv.Load()

	var missing []string

	required := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg := Config{
		Env:          getEnv("APP_ENV", "dev"),
		LogLevel:     getEnv("LOG_LEVEL", ""),
		LogFile:      getEnv("LOG_FILE", ""),
		Protocol:     required("WEB_SERVER_PROTOCOL"),
		Host:         required("WEB_SERVER_HOST"),
		DBURL:        required("DATABASE_URL"),
		JWTSecret:    required("JWT_SECRET"),
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName:  getEnv("OTEL_SERVICE_NAME", "todohub"),
	}

	rawPort := required("WEB_SERVER_PORT")

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("WEB_SERVER_PORT must be a valid port, got %q", rawPort)
	}
	cfg.Port = port

	maxConns, err := getEnvInt("DB_MAX_CONNS", 10)
	if err != nil {
		return Config{}, err
	}
	if maxConns <= 0 {
		return Config{}, fmt.Errorf("DB_MAX_CONNS must be positive, got %d", maxConns)
	}
	cfg.DBMaxConns = int32(maxConns)

	cfg.DBAutoMigrate, err = getEnvBool("DB_AUTO_MIGRATE", true)
	if err != nil {
		return Config{}, err
	}

	maxBody, err := getEnvInt("MAX_BODY_BYTES", 1<<20)
	if err != nil {
		return Config{}, err
	}
	cfg.MaxBodyBytes = int64(maxBody)

	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	return cfg, nil
}

// LoadDSN reads only DATABASE_URL, for tools that never start the server.
func LoadDSN() (string, error) {
	_ = godotenv.Load()

	dsn := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dsn == "" {
		return "", fmt.Errorf("%w: DATABASE_URL", ErrMissingEnv)
	}
	return dsn, nil
}

// Addr is the bind address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BaseURL is only used for the start-up log line.
func (c Config) BaseURL() string {
	return fmt.Sprintf("%s://%s:%d/", c.Protocol, c.Host, c.Port)
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	num, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}

	return num, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}

	return b, nil
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
