package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be > 0 (got %v)", c.Server.ShutdownTimeout)
	}
	if c.RateLimit.CleanupInterval <= 0 {
		return fmt.Errorf("rate_limit.cleanup_interval must be > 0 (got %v)", c.RateLimit.CleanupInterval)
	}

	if err := c.Translator.validate(); err != nil {
		return fmt.Errorf("translator: %w", err)
	}

	if c.Translator.Source == SourcePostgres && c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required when translator.source is %q", SourcePostgres)
	}

	if err := c.Remote.validate(); err != nil {
		return fmt.Errorf("remote: %w", err)
	}

	if err := c.Admin.validate(); err != nil {
		return fmt.Errorf("admin: %w", err)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (t *TranslatorConfig) validate() error {
	switch t.Source {
	case SourceFile:
		if t.FilePath == "" {
			return fmt.Errorf("file_path is required for source %q", SourceFile)
		}
	case SourceURL:
		u, err := url.Parse(t.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("url must be an absolute http(s) URL (got %q)", t.URL)
		}
	case SourcePostgres:
	default:
		return fmt.Errorf("source must be file, url or postgres (got %q)", t.Source)
	}

	if t.ChunkWindow < 2 {
		return fmt.Errorf("chunk_window must be >= 2 (got %d)", t.ChunkWindow)
	}
	if t.FuzzyThreshold <= 0 || t.FuzzyThreshold >= 1 {
		return fmt.Errorf("fuzzy_threshold must be in (0, 1) (got %v)", t.FuzzyThreshold)
	}
	if t.SuggestionLimit <= 0 {
		return fmt.Errorf("suggestion_limit must be > 0 (got %d)", t.SuggestionLimit)
	}
	if t.MaxTextLength <= 0 {
		return fmt.Errorf("max_text_length must be > 0 (got %d)", t.MaxTextLength)
	}
	return nil
}

func (r *RemoteConfig) validate() error {
	switch r.Provider {
	case "", ProviderNone:
		return nil
	case ProviderAnthropic:
		if r.APIKey == "" {
			return fmt.Errorf("api_key is required for provider %q", ProviderAnthropic)
		}
		if r.MaxTokens <= 0 {
			return fmt.Errorf("max_tokens must be > 0 (got %d)", r.MaxTokens)
		}
	case ProviderHTTP:
		if r.BaseURL == "" {
			return fmt.Errorf("base_url is required for provider %q", ProviderHTTP)
		}
	default:
		return fmt.Errorf("provider must be none, anthropic or http (got %q)", r.Provider)
	}
	if r.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", r.Timeout)
	}
	if r.CacheSize < 0 {
		return fmt.Errorf("cache_size must be >= 0 (got %d)", r.CacheSize)
	}
	return nil
}

func (a *AdminConfig) validate() error {
	if !a.Enabled() {
		return nil
	}
	if len(a.JWTSecret) < 32 {
		return fmt.Errorf("jwt_secret must be at least 32 characters (got %d)", len(a.JWTSecret))
	}
	if !strings.HasPrefix(a.PasswordHash, "$2") {
		return fmt.Errorf("password_hash must be a bcrypt hash")
	}
	if a.MaxFailedAttempts <= 0 {
		return fmt.Errorf("max_failed_attempts must be > 0 (got %d)", a.MaxFailedAttempts)
	}
	if a.TokenTTL <= 0 {
		return fmt.Errorf("token_ttl must be > 0 (got %v)", a.TokenTTL)
	}
	return nil
}
