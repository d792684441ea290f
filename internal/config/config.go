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
	Shopify   ShopifyConfig
	HTTP      HTTPConfig
	RateLimit RateLimitConfig
	Features  FeaturesConfig
	Log       LogConfig
	Tracing   TracingConfig
}

// ShopifyConfig holds the credentials of the admin REST API.
type ShopifyConfig struct {
	Domain      string
	AccessToken string
	APIVersion  string
	Timeout     time.Duration
}

type HTTPConfig struct {
	Addr           string
	StaticDir      string
	AllowedOrigins []string
	// TrustedProxies lists the proxy IPs/CIDRs whose X-Forwarded-For is
	// believed. Empty means the socket peer is the client.
	TrustedProxies []string
	// TrustedPlatform names a header set by the hosting platform, such as
	// CF-Connecting-IP, that carries the client IP.
	TrustedPlatform string
}

type RateLimitConfig struct {
	Enabled   bool
	Requests  int
	Window    time.Duration
	RedisAddr string // empty keeps counters in process memory
}

type FeaturesConfig struct {
	DebugEndpoints bool
	StatusUpdate   bool
}

type LogConfig struct {
	Level string
}

type TracingConfig struct {
	Enabled     bool
	ServiceName string
}

const defaultAPIVersion = "2024-10"

func LoadConfig() *Config {
	shopifyConf := ShopifyConfig{
		Domain:      normalizeDomain(getEnv("SHOPIFY_DOMAIN", "")),
		AccessToken: strings.TrimSpace(getEnv("SHOPIFY_ACCESS_TOKEN", "")),
		APIVersion:  strings.TrimSpace(getEnv("SHOPIFY_API_VERSION", defaultAPIVersion)),
		Timeout:     getDuration("SHOPIFY_TIMEOUT", 5*time.Second),
	}

	origins := splitList(getEnv("CORS_ALLOWED_ORIGINS", "*.myshopify.com,*.vercel.app"))
	if shopifyConf.Domain != "" {
		origins = append(origins, shopifyConf.Domain)
	}

	httpConf := HTTPConfig{
		Addr:            getEnv("HTTP_ADDR", ":8080"),
		StaticDir:       getEnv("STATIC_DIR", "static"),
		AllowedOrigins:  origins,
		TrustedProxies:  splitList(getEnv("TRUSTED_PROXIES", "")),
		TrustedPlatform: strings.TrimSpace(getEnv("TRUSTED_PLATFORM", "")),
	}

	rateConf := RateLimitConfig{
		Enabled:   getBool("RATE_LIMIT_ENABLED", true),
		Requests:  getInt("RATE_LIMIT_REQUESTS", 10),
		Window:    getDuration("RATE_LIMIT_WINDOW", time.Minute),
		RedisAddr: getEnv("RATE_LIMIT_REDIS_ADDR", ""),
	}

	return &Config{
		Shopify:   shopifyConf,
		HTTP:      httpConf,
		RateLimit: rateConf,
		Features: FeaturesConfig{
			DebugEndpoints: getBool("DEBUG_ENDPOINTS", false),
			StatusUpdate:   getBool("STATUS_UPDATE_ENABLED", false),
		},
		Log: LogConfig{Level: getEnv("LOG_LEVEL", "info")},
		Tracing: TracingConfig{
			Enabled:     getBool("TRACING_ENABLED", false),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "order-tracker"),
		},
	}
}

// Validate reports configuration faults that must stop the process at startup.
func (c *Config) Validate() error {
	var errs []error
	if c.Shopify.Domain == "" {
		errs = append(errs, errors.New("SHOPIFY_DOMAIN is not set"))
	}
	if c.Shopify.AccessToken == "" {
		errs = append(errs, errors.New("SHOPIFY_ACCESS_TOKEN is not set"))
	}
	if c.Shopify.APIVersion == "" {
		errs = append(errs, errors.New("SHOPIFY_API_VERSION is empty"))
	}
	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0) {
		errs = append(errs, fmt.Errorf("invalid rate limit %d per %s", c.RateLimit.Requests, c.RateLimit.Window))
	}
	return errors.Join(errs...)
}

// Configured reports whether the store credentials are present.
func (s ShopifyConfig) Configured() bool {
	return s.Domain != "" && s.AccessToken != ""
}

// MaskedToken describes the access token without revealing any of it.
func (s ShopifyConfig) MaskedToken() string {
	if s.AccessToken == "" {
		return "missing"
	}
	return fmt.Sprintf("set (len=%d)", len(s.AccessToken))
}

func normalizeDomain(domain string) string {
	domain = strings.TrimSpace(domain)
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	return strings.TrimSuffix(domain, "/")
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}
