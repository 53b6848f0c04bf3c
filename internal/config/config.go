package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Translator TranslatorConfig `yaml:"translator"`
	Remote     RemoteConfig     `yaml:"remote"`
	Admin      AdminConfig      `yaml:"admin"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// TrustProxy takes the client address from X-Forwarded-For.
	TrustProxy bool `yaml:"trust_proxy" env:"SERVER_TRUST_PROXY" env-default:"false"`
}

// DatabaseConfig holds PostgreSQL connection settings. The database is only
// required when translator.source is "postgres".
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// Phrase data source kinds.
const (
	SourceFile     = "file"
	SourceURL      = "url"
	SourcePostgres = "postgres"
)

// TranslatorConfig holds the local engine and its phrase data source.
type TranslatorConfig struct {
	Source          string        `yaml:"source"           env:"TRANSLATOR_SOURCE"           env-default:"file"`
	FilePath        string        `yaml:"file_path"        env:"TRANSLATOR_FILE_PATH"        env-default:"./data/phrases.json"`
	URL             string        `yaml:"url"              env:"TRANSLATOR_URL"`
	FetchTimeout    time.Duration `yaml:"fetch_timeout"    env:"TRANSLATOR_FETCH_TIMEOUT"    env-default:"15s"`
	ChunkWindow     int           `yaml:"chunk_window"     env:"TRANSLATOR_CHUNK_WINDOW"     env-default:"5"`
	FuzzyThreshold  float64       `yaml:"fuzzy_threshold"  env:"TRANSLATOR_FUZZY_THRESHOLD"  env-default:"0.7"`
	SuggestionLimit int           `yaml:"suggestion_limit" env:"TRANSLATOR_SUGGESTION_LIMIT" env-default:"5"`
	MaxTextLength   int           `yaml:"max_text_length"  env:"TRANSLATOR_MAX_TEXT_LENGTH"  env-default:"5000"`
}

// Remote translator providers.
const (
	ProviderNone      = "none"
	ProviderAnthropic = "anthropic"
	ProviderHTTP      = "http"
)

// RemoteConfig holds the optional remote translator.
type RemoteConfig struct {
	Provider  string        `yaml:"provider"   env:"REMOTE_PROVIDER"   env-default:"none"`
	APIKey    string        `yaml:"api_key"    env:"REMOTE_API_KEY"`
	Model     string        `yaml:"model"      env:"REMOTE_MODEL"      env-default:"claude-haiku-4-5"`
	MaxTokens int64         `yaml:"max_tokens" env:"REMOTE_MAX_TOKENS" env-default:"1024"`
	BaseURL   string        `yaml:"base_url"   env:"REMOTE_BASE_URL"`
	Timeout   time.Duration `yaml:"timeout"    env:"REMOTE_TIMEOUT"    env-default:"15s"`
	CacheSize int           `yaml:"cache_size" env:"REMOTE_CACHE_SIZE" env-default:"1000"`
}

// Enabled reports whether a remote translator is configured.
func (c RemoteConfig) Enabled() bool {
	return c.Provider != "" && c.Provider != ProviderNone
}

// AdminConfig holds the single admin account and its token settings.
// An empty PasswordHash disables the admin endpoints.
type AdminConfig struct {
	Username          string        `yaml:"username"            env:"ADMIN_USERNAME"            env-default:"admin"`
	PasswordHash      string        `yaml:"password_hash"       env:"ADMIN_PASSWORD_HASH"`
	JWTSecret         string        `yaml:"jwt_secret"          env:"ADMIN_JWT_SECRET"`
	JWTIssuer         string        `yaml:"jwt_issuer"          env:"ADMIN_JWT_ISSUER"          env-default:"pidgin-backend"`
	TokenTTL          time.Duration `yaml:"token_ttl"           env:"ADMIN_TOKEN_TTL"           env-default:"24h"`
	MaxFailedAttempts int           `yaml:"max_failed_attempts" env:"ADMIN_MAX_FAILED_ATTEMPTS" env-default:"5"`
	LockoutDuration   time.Duration `yaml:"lockout_duration"    env:"ADMIN_LOCKOUT_DURATION"    env-default:"15m"`
}

// Enabled reports whether admin login is configured.
func (c AdminConfig) Enabled() bool {
	return c.PasswordHash != ""
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-IP request limits.
type RateLimitConfig struct {
	TranslatePerMinute int           `yaml:"translate_per_minute" env:"RATE_LIMIT_TRANSLATE" env-default:"60"`
	AdminPerMinute     int           `yaml:"admin_per_minute"     env:"RATE_LIMIT_ADMIN"     env-default:"10"`
	CleanupInterval    time.Duration `yaml:"cleanup_interval"     env:"RATE_LIMIT_CLEANUP"   env-default:"5m"`
}

// Origins splits AllowedOrigins into trimmed, non-empty entries.
func (c CORSConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
