package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Capture   CaptureConfig
	Providers ProvidersConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Log       LogConfig
	Webhook   WebhookConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// MaxPages is the page pool capacity (max concurrent tabs).
	MaxPages int // default: 5

	// DefaultProxy is the default proxy URL for all page loads.
	DefaultProxy string

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string
}

// CaptureConfig controls page loading and network capture.
type CaptureConfig struct {
	// DefaultTimeout is the per-analysis timeout.
	DefaultTimeout time.Duration // default: 30s

	// MaxTimeout is the maximum allowed timeout from the client.
	MaxTimeout time.Duration // default: 120s

	// SettleDelay is how long to keep collecting network events after the
	// DOM has stabilised; third-party beacons often fire late.
	SettleDelay time.Duration // default: 2s
}

// ProvidersConfig holds the external lookup service endpoints.
type ProvidersConfig struct {
	// DoHBaseURL is the DNS-over-HTTPS JSON resolve endpoint.
	DoHBaseURL string // default: "https://dns.google/resolve"

	// GeoBaseURL is the IP geolocation API base.
	GeoBaseURL string // default: "https://ipinfo.io"

	// GeoToken is the bearer token for the geolocation API.
	GeoToken string

	// GreenBaseURL is the green-hosting registry greencheck endpoint base.
	GreenBaseURL string // default: "https://api.thegreenwebfoundation.org/greencheck"

	// EntityBaseURL is the third-party entity identification API base.
	// When empty, only the built-in tracker table is consulted.
	EntityBaseURL string

	// LookupTimeout is the per-item deadline for every provider call.
	LookupTimeout time.Duration // default: 5s

	// ChromeTLS fingerprints outbound provider requests as Chrome (utls).
	ChromeTLS bool // default: true
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 1

	// Burst is the maximum burst size per API key.
	Burst int // default: 3
}

// CacheConfig controls the analysis response cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached responses.
	MaxEntries int // default: 500

	// TTL is how long a cached report stays valid. Zero disables caching.
	TTL time.Duration // default: 10m
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// WebhookConfig controls async completion notifications.
type WebhookConfig struct {
	// URL receives a signed event per completed analysis. Empty disables.
	URL string

	// Secret signs event bodies with HMAC-SHA256 when non-empty.
	Secret string
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("FOOTPRINT_HOST", "0.0.0.0"),
			Port: envIntOr("FOOTPRINT_PORT", 8080),
			Mode: envOr("FOOTPRINT_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:     envBoolOr("FOOTPRINT_HEADLESS", true),
			MaxPages:     envIntOr("FOOTPRINT_MAX_PAGES", 5),
			DefaultProxy: os.Getenv("FOOTPRINT_PROXY"),
			NoSandbox:    envBoolOr("FOOTPRINT_NO_SANDBOX", false),
			BrowserBin:   os.Getenv("FOOTPRINT_BROWSER_BIN"),
		},
		Capture: CaptureConfig{
			DefaultTimeout: envDurationOr("FOOTPRINT_DEFAULT_TIMEOUT", 30*time.Second),
			MaxTimeout:     envDurationOr("FOOTPRINT_MAX_TIMEOUT", 120*time.Second),
			SettleDelay:    envDurationOr("FOOTPRINT_SETTLE_DELAY", 2*time.Second),
		},
		Providers: ProvidersConfig{
			DoHBaseURL:    envOr("FOOTPRINT_DOH_URL", "https://dns.google/resolve"),
			GeoBaseURL:    envOr("FOOTPRINT_GEO_URL", "https://ipinfo.io"),
			GeoToken:      os.Getenv("FOOTPRINT_GEO_TOKEN"),
			GreenBaseURL:  envOr("FOOTPRINT_GREEN_URL", "https://api.thegreenwebfoundation.org/greencheck"),
			EntityBaseURL: os.Getenv("FOOTPRINT_ENTITY_URL"),
			LookupTimeout: envDurationOr("FOOTPRINT_LOOKUP_TIMEOUT", 5*time.Second),
			ChromeTLS:     envBoolOr("FOOTPRINT_CHROME_TLS", true),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("FOOTPRINT_AUTH_ENABLED", false),
			APIKeys: envSliceOr("FOOTPRINT_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("FOOTPRINT_RATE_RPS", 1.0),
			Burst:             envIntOr("FOOTPRINT_RATE_BURST", 3),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("FOOTPRINT_CACHE_MAX_ENTRIES", 500),
			TTL:        envDurationOr("FOOTPRINT_CACHE_TTL", 10*time.Minute),
		},
		Log: LogConfig{
			Level:  envOr("FOOTPRINT_LOG_LEVEL", "info"),
			Format: envOr("FOOTPRINT_LOG_FORMAT", "json"),
		},
		Webhook: WebhookConfig{
			URL:    os.Getenv("FOOTPRINT_WEBHOOK_URL"),
			Secret: os.Getenv("FOOTPRINT_WEBHOOK_SECRET"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
