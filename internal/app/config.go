package app

import (
	"time"

	"github.com/yungbote/addressbook-backend/internal/observability"
	"github.com/yungbote/addressbook-backend/internal/platform/envutil"
	"github.com/yungbote/addressbook-backend/internal/platform/logger"
)

const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

type Config struct {
	Port    string
	LogMode string

	StoreBackend  string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	PostgresDSN   string
	SQLitePath    string

	SeedFile string

	MetricsEnabled bool
	MetricsAddr    string

	RateLimitRPS   float64
	RateLimitBurst int

	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration

	Otel observability.OtelConfig
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		Port:    envutil.String("PORT", "8080", log),
		LogMode: envutil.String("LOG_MODE", "development", log),

		StoreBackend:  envutil.String("STORE_BACKEND", BackendRedis, log),
		RedisAddr:     envutil.String("REDIS_ADDR", "localhost:6379", log),
		RedisPassword: envutil.String("REDIS_PASSWORD", "", log),
		RedisDB:       envutil.Int("REDIS_DB", 0, log),
		PostgresDSN:   envutil.String("POSTGRES_DSN", "", log),
		SQLitePath:    envutil.String("SQLITE_PATH", "addressbook.db", log),

		SeedFile: envutil.String("CONTACTS_SEED_FILE", "", log),

		MetricsEnabled: envutil.Bool("METRICS_ENABLED", false, log),
		MetricsAddr:    envutil.String("METRICS_ADDR", ":9090", log),

		RateLimitRPS:   envutil.Float("RATE_LIMIT_RPS", 0, log),
		RateLimitBurst: envutil.Int("RATE_LIMIT_BURST", 10, log),

		CORSAllowedOrigins: envutil.List("CORS_ALLOWED_ORIGINS", nil, log),
		ShutdownTimeout:    envutil.Seconds("SHUTDOWN_TIMEOUT_SECONDS", 5*time.Second, log),

		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false, log),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", "addressbook", log),
			Environment: envutil.String("OTEL_ENVIRONMENT", envutil.String("APP_ENV", "", log), log),
			Version:     envutil.String("OTEL_SERVICE_VERSION", "", log),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", "", log),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false, log),
			Headers:     observability.ParseHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "", log)),
			SampleRatio: envutil.Float("OTEL_SAMPLER_RATIO", 1.0, log),
		},
	}
}
