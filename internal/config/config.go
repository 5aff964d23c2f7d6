package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/saswath-06/roommait/pkg/database"
)

// Config roommait API configuration, loaded once at startup.
type Config struct {
	Environment string
	HTTP        struct {
		Addr         string
		CORSOrigins  []string
		MaxBodyBytes int64
	}
	DBEnabled bool
	Database  database.Config
	Redis     struct {
		Enabled  bool
		Addr     string
		Password string
		DB       int
	}
	Log struct {
		Level  string
		Format string
	}
	Auth      AuthConfig
	Catalog   CatalogConfig
	RateLimit RateLimitConfig
	MQTT      MQTTConfig
	Events    EventsConfig
	// SeedModels upserts the default generic model set on startup.
	SeedModels bool
}

// AuthConfig identity provider settings.
type AuthConfig struct {
	Domain       string
	Audience     string
	JWKSCacheTTL time.Duration
	Timeout      time.Duration
}

// Configured reports whether tokens can be verified at all.
func (a AuthConfig) Configured() bool {
	return strings.TrimSpace(a.Domain) != ""
}

// Issuer is the expected iss claim.
func (a AuthConfig) Issuer() string {
	return "https://" + a.Domain + "/"
}

// JWKSURL is where the provider publishes its signing keys.
func (a AuthConfig) JWKSURL() string {
	return "https://" + a.Domain + "/.well-known/jwks.json"
}

// CatalogConfig retail product search settings. Empty SearchURL selects the
// embedded static catalog.
type CatalogConfig struct {
	SearchURL string
	APIKey    string
	Timeout   time.Duration
}

// RateLimitConfig is a per-client token bucket. TrustProxyHeaders keys it on
// X-Forwarded-For and belongs only behind a proxy that overwrites that header.
type RateLimitConfig struct {
	RequestsPerSecond int
	Burst             int
	TrustProxyHeaders bool
}

// MQTTConfig event fan-out (disabled by default).
type MQTTConfig struct {
	Enabled     bool
	Broker      string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
}

// EventsConfig Redis stream sink; empty RedisStream disables it.
type EventsConfig struct {
	RedisStream  string
	StreamMaxLen int64
}

func Load() *Config {
	// .env is optional; real env vars win.
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.Environment = getEnv("APP_ENV", "development")
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8000")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("HTTP_ADDR") == "" {
		cfg.HTTP.Addr = ":" + port
	}
	cfg.HTTP.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:19006"))
	cfg.HTTP.MaxBodyBytes = int64(parseInt(getEnv("HTTP_MAX_BODY_BYTES", "1048576"), 1<<20))

	// Without a reachable DB the service falls back to in-memory repositories.
	cfg.DBEnabled = getEnv("DB_ENABLED", "true") == "true"
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "roommait")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = parseInt(getEnv("DB_MAX_CONNS", "10"), 10)
	cfg.Database.MaxIdle = parseInt(getEnv("DB_MAX_IDLE", "5"), 5)

	cfg.Redis.Enabled = getEnv("REDIS_ENABLED", "true") == "true"
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.Auth.Domain = strings.TrimSuffix(strings.TrimPrefix(getEnv("AUTH0_DOMAIN", ""), "https://"), "/")
	cfg.Auth.Audience = getEnv("AUTH0_AUDIENCE", "")
	cfg.Auth.JWKSCacheTTL = parseDuration(getEnv("JWKS_CACHE_TTL", "10m"), 10*time.Minute)
	cfg.Auth.Timeout = parseDuration(getEnv("AUTH_HTTP_TIMEOUT", "5s"), 5*time.Second)

	cfg.Catalog.SearchURL = getEnv("CATALOG_SEARCH_URL", "")
	cfg.Catalog.APIKey = getEnv("CATALOG_API_KEY", "")
	cfg.Catalog.Timeout = parseDuration(getEnv("CATALOG_TIMEOUT", "10s"), 10*time.Second)

	cfg.RateLimit.RequestsPerSecond = parseInt(getEnv("RATE_LIMIT_RPS", "20"), 20)
	cfg.RateLimit.Burst = parseInt(getEnv("RATE_LIMIT_BURST", "40"), 40)
	cfg.RateLimit.TrustProxyHeaders = getEnv("TRUST_PROXY_HEADERS", "false") == "true"

	cfg.MQTT.Enabled = getEnv("MQTT_ENABLED", "false") == "true"
	cfg.MQTT.Broker = getEnv("MQTT_BROKER", "tcp://localhost:1883")
	cfg.MQTT.ClientID = getEnv("MQTT_CLIENT_ID", "roommait-api")
	cfg.MQTT.Username = getEnv("MQTT_USERNAME", "")
	cfg.MQTT.Password = getEnv("MQTT_PASSWORD", "")
	cfg.MQTT.TopicPrefix = getEnv("MQTT_TOPIC_PREFIX", "roommait/events")

	cfg.Events.RedisStream = getEnv("EVENTS_REDIS_STREAM", "")
	cfg.Events.StreamMaxLen = int64(parseInt(getEnv("EVENTS_STREAM_MAXLEN", "10000"), 10000))

	cfg.SeedModels = getEnv("SEED_MODELS", "true") == "true"

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
