package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	AuthProviderStatic   = "static"
	AuthProviderSupabase = "supabase"

	minSessionSecret = 32
)

type Config struct {
	Port            string
	SupabaseURL     string
	SupabaseAnonKey string
	MongoDBURI      string
	MongoDBPassword string
	MongoDBName     string
	RedisURL        string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	SessionSecret      string
	SessionTTL         time.Duration
	AuthProvider       string
	AdminCredentials   string
	LoginRatePerMinute int

	FormRelayURL   string
	AllowedOrigins []string
	RetryBaseDelay time.Duration

	Environment string
	LogLevel    string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:                getEnvWithDefault("PORT", "8080"),
		SupabaseURL:         os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey:     getEnvWithDefault("SUPABASE_ANON_KEY", os.Getenv("SUPABASE_URL_ANON_KEY")),
		MongoDBURI:          os.Getenv("MONGODB_URI"),
		MongoDBPassword:     os.Getenv("MONGODB_PASSWORD"),
		MongoDBName:         getEnvWithDefault("MONGODB_DB", "gogols"),
		RedisURL:            os.Getenv("REDIS_URL"),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		SessionSecret:       os.Getenv("SESSION_SECRET"),
		AuthProvider:        strings.ToLower(getEnvWithDefault("AUTH_PROVIDER", AuthProviderStatic)),
		AdminCredentials:    os.Getenv("ADMIN_CREDENTIALS"),
		FormRelayURL:        os.Getenv("FORM_RELAY_URL"),
		AllowedOrigins:      splitList(getEnvWithDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		Environment:         getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:            getEnvWithDefault("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.SessionTTL, err = durationEnv("SESSION_TTL", 8*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RetryBaseDelay, err = durationEnv("RETRY_BASE_DELAY", time.Second); err != nil {
		return nil, err
	}
	if cfg.LoginRatePerMinute, err = intEnv("LOGIN_RATE_PER_MINUTE", 10); err != nil {
		return nil, err
	}

	// Validate required fields
	if cfg.SupabaseURL == "" {
		return nil, fmt.Errorf("SUPABASE_URL is required")
	}
	if cfg.SupabaseAnonKey == "" {
		return nil, fmt.Errorf("SUPABASE_ANON_KEY is required")
	}
	if cfg.AuthProvider != AuthProviderStatic && cfg.AuthProvider != AuthProviderSupabase {
		return nil, fmt.Errorf("AUTH_PROVIDER must be %q or %q", AuthProviderStatic, AuthProviderSupabase)
	}
	if cfg.IsProduction() {
		if len(cfg.SessionSecret) < minSessionSecret {
			return nil, fmt.Errorf("SESSION_SECRET must be at least %d characters in production", minSessionSecret)
		}
		if cfg.AuthProvider == AuthProviderStatic && cfg.AdminCredentials == "" {
			return nil, fmt.Errorf("ADMIN_CREDENTIALS is required in production")
		}
	}
	if cfg.LoginRatePerMinute <= 0 {
		return nil, fmt.Errorf("LOGIN_RATE_PER_MINUTE must be positive")
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration like 8h or 500ms", key)
	}
	return d, nil
}

func intEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) MongoEnabled() bool { return c.MongoDBURI != "" }

func (c *Config) RedisEnabled() bool { return c.RedisURL != "" }

func (c *Config) CloudinaryEnabled() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}
