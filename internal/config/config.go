package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"horse.fit/bookstore/internal/language"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	DBMinConns  int32  `envconfig:"BOOKSTORE_DB_MIN_CONNS" default:"1"`
	DBMaxConns  int32  `envconfig:"BOOKSTORE_DB_MAX_CONNS" default:"8"`

	AdminUser         string `envconfig:"ADMIN_USER" default:"admin"`
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH" default:""`
	AuthTokenSecret   string `envconfig:"AUTH_TOKEN_SECRET" default:""`
	AuthTokenTTLHours int    `envconfig:"AUTH_TOKEN_TTL_HOURS" default:"24"`
	AuthCookieName    string `envconfig:"AUTH_COOKIE_NAME" default:"bookstore_token"`
	AuthCookieSecure  bool   `envconfig:"AUTH_COOKIE_SECURE" default:"false"`

	// TranslationSourceLang is the source language sent to the translation
	// provider for every synopsis. The catalogue is seeded with English
	// synopses; books recorded in another original language still translate
	// from this code.
	TranslationSourceLang string `envconfig:"TRANSLATION_SOURCE_LANG" default:"en"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.DBMinConns < 0 {
		return fmt.Errorf("BOOKSTORE_DB_MIN_CONNS must be >= 0")
	}
	if c.DBMaxConns < 1 {
		return fmt.Errorf("BOOKSTORE_DB_MAX_CONNS must be >= 1")
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("BOOKSTORE_DB_MIN_CONNS (%d) cannot exceed BOOKSTORE_DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	if strings.TrimSpace(c.AdminUser) == "" {
		return fmt.Errorf("ADMIN_USER is required")
	}
	if c.AuthTokenTTLHours < 1 {
		return fmt.Errorf("AUTH_TOKEN_TTL_HOURS must be >= 1")
	}
	if strings.TrimSpace(c.AuthCookieName) == "" {
		return fmt.Errorf("AUTH_COOKIE_NAME is required")
	}
	if language.NormalizeCode(c.TranslationSourceLang) == "" {
		return fmt.Errorf("TRANSLATION_SOURCE_LANG %q is not a valid language code", c.TranslationSourceLang)
	}
	return nil
}

// SourceLanguage returns the normalized translation source language code.
func (c *Config) SourceLanguage() string {
	if c == nil {
		return "en"
	}
	if code := language.NormalizeCode(c.TranslationSourceLang); code != "" {
		return code
	}
	return "en"
}
