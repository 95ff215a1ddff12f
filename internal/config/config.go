package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends accepted by QUILL_STORE.
const (
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreFile     = "file"
	StoreMemory   = "memory"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request deadline (ex: 5s)
	MaxBodyBytes    int64         // JSON request body cap, inline images included (default: 16MiB)

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Storage
	Store       string // "redis" | "postgres" | "file" | "memory"
	Namespace   string // key prefix (redis) or row key (postgres)
	PostgresDSN string // required when Store == "postgres"
	DataFile    string // JSON file path when Store == "file"

	SeedFile           string        // optional YAML seed applied to a fresh workspace
	TrashRetention     time.Duration // 0 => trashed entries are kept until purged by hand
	TrashSweepInterval time.Duration // interval between trash sweeps (default: 24h)

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict API access to specific Host headers
	AllowedCIDRS []string // optional, restrict health endpoints to specific IPs (e.g. "1.2.3.4, 10.0.0.0/8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
	CORSOrigins  []string // optional, browser origins allowed to call the API

	RateLimitBurst  int // writes a client may burst; 0 disables write limiting
	RateLimitPerMin int // sustained writes per client per minute
}

func Load() *Config {
	// Load .env file if exists (not required in production)
	_ = godotenv.Load()

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("QUILL_LISTEN_PORT", ":8080"),
		ShutdownTimeout: positiveDuration("QUILL_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  positiveDuration("QUILL_REQUEST_TIMEOUT", 5*time.Second),
		MaxBodyBytes:    int64(getenvInt("QUILL_MAX_BODY_BYTES", 16<<20)),

		// Logging
		LogLevel:  getenv("QUILL_LOG_LEVEL", "info"),
		PrettyLog: mustBool("QUILL_PRETTY_LOG", true),

		// Storage
		Store:     strings.ToLower(getenv("QUILL_STORE", StoreRedis)),
		Namespace: getenv("QUILL_NAMESPACE", "quill"),
		DataFile:  getenv("QUILL_DATA_FILE", "./data/workspace.json"),

		SeedFile:           getenv("QUILL_SEED_FILE", ""), // Optional, empty = no seed
		TrashRetention:     mustDuration("QUILL_TRASH_RETENTION", 0),
		TrashSweepInterval: positiveDuration("QUILL_TRASH_SWEEP_INTERVAL", 24*time.Hour),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("QUILL_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("QUILL_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("QUILL_TRUST_PROXY", false),
		CORSOrigins:  splitAndTrim(getenv("QUILL_CORS_ORIGINS", "")),

		RateLimitBurst:  getenvInt("QUILL_RATE_LIMIT_BURST", 60),
		RateLimitPerMin: getenvInt("QUILL_RATE_LIMIT_PER_MIN", 120),
	}

	switch cfg.Store {
	case StoreRedis:
		loadRedis(cfg)
	case StorePostgres:
		cfg.PostgresDSN = requireEnv("QUILL_POSTGRES_DSN")
	case StoreFile, StoreMemory:
	default:
		panic(fmt.Sprintf("❌ FATAL: QUILL_STORE must be one of redis, postgres, file, memory (got %q)", cfg.Store))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		if cfg.PostgresDSN != "" {
			cfgCopy.PostgresDSN = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

func loadRedis(cfg *Config) {
	cfg.RedisAddr = requireEnv("QUILL_REDIS_ADDR")
	cfg.RedisUser = getenv("QUILL_REDIS_USERNAME", "default")
	cfg.RedisPasswordRequired = mustBool("QUILL_REDIS_PASSWORD_REQUIRED", true)
	cfg.RedisPassword = getenv("QUILL_REDIS_PASSWORD", "")
	cfg.RedisDB = getenvInt("QUILL_REDIS_DB", 0)
	cfg.RedisDT = mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second)
	cfg.RedisRT = mustDuration("REDIS_READ_TIMEOUT", 3*time.Second)
	cfg.RedisWT = mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second)
	cfg.RedisMaxWait = mustDuration("REDIS_MAX_WAIT", 10*time.Second)
	cfg.RedisPingTimeout = mustDuration("REDIS_PING_TIMEOUT", 5*time.Second)
	cfg.RedisPoolSize = getenvInt("REDIS_POOL_SIZE", 10)
	cfg.RedisConnectTimeout = mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second)
	cfg.RedisRetryInterval = mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second)
	cfg.RedisWarnThreshold = getenvInt("REDIS_WARN_THRESHOLD", 3)

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: QUILL_REDIS_PASSWORD is required when QUILL_REDIS_PASSWORD_REQUIRED=true")
	}
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// positiveDuration is mustDuration for settings where zero or a negative
// value cannot work. Those fall back to def.
func positiveDuration(key string, def time.Duration) time.Duration {
	if d := mustDuration(key, def); d > 0 {
		return d
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
