package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/penwyp/go-campus-client/internal/core/checksum"
)

// ErrMissingConfig is returned when a required setting is absent or unusable.
var ErrMissingConfig = errors.New("missing required configuration")

const (
	DefaultHTTPTimeout = 30 * time.Second
	DefaultTimezone    = "Local"
	DefaultEnvFile     = ".env"
)

// Environment keys.
const (
	KeyBaseURL     = "BASE_URL"
	KeySurveyURL   = "GOOGLE_AUTH_URL"
	KeyAuthenKey   = "AUTHEN_KEY"
	KeyMainKey     = "SECRET_KEY_MAIN"
	KeyAltKey      = "SECRET_KEY_ALT"
	KeyLongKey     = "SECRET_KEY_LONG"
	KeySharedCode  = "SUPER_SECRET_CODE"
	KeyTimezone    = "TIMEZONE"
	KeyHTTPTimeout = "HTTP_TIMEOUT"
)

// Config is loaded once at startup and never mutated afterwards.
type Config struct {
	BaseURL     string
	SurveyURL   string
	AuthenKey   string
	Secrets     checksum.Secrets
	Timezone    string
	HTTPTimeout time.Duration
}

// Load seeds the environment from envFile and builds a validated Config.
// An empty envFile tries ./.env and ignores its absence; an explicit path must exist.
// Variables already present in the environment take precedence over the file.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		_ = godotenv.Load(DefaultEnvFile)
	} else if err := godotenv.Load(envFile); err != nil {
		return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from any key lookup, typically os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	// Secret material is used verbatim; surrounding whitespace is part of the key.
	raw := func(key string) string {
		v, _ := lookup(key)
		return v
	}
	get := func(key string) string {
		return strings.TrimSpace(raw(key))
	}

	cfg := &Config{
		BaseURL:   strings.TrimRight(get(KeyBaseURL), "/"),
		SurveyURL: strings.TrimRight(get(KeySurveyURL), "/"),
		AuthenKey: raw(KeyAuthenKey),
		Secrets: checksum.Secrets{
			MainKey:    raw(KeyMainKey),
			AltKey:     raw(KeyAltKey),
			LongKey:    raw(KeyLongKey),
			SharedCode: raw(KeySharedCode),
		},
		Timezone:    DefaultTimezone,
		HTTPTimeout: DefaultHTTPTimeout,
	}

	if tz := get(KeyTimezone); tz != "" {
		cfg.Timezone = tz
	}
	if raw := get(KeyHTTPTimeout); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid %s %q: must be a positive duration such as 30s", KeyHTTPTimeout, raw)
		}
		cfg.HTTPTimeout = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every missing or malformed required value in one error.
func (c *Config) Validate() error {
	var problems []string

	for _, u := range []struct{ key, value string }{
		{KeyBaseURL, c.BaseURL},
		{KeySurveyURL, c.SurveyURL},
	} {
		if u.value == "" {
			problems = append(problems, u.key)
			continue
		}
		parsed, err := url.Parse(u.value)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			problems = append(problems, fmt.Sprintf("%s (not an http(s) URL)", u.key))
		}
	}
	if c.AuthenKey == "" {
		problems = append(problems, KeyAuthenKey)
	}
	problems = append(problems, c.Secrets.Missing()...)

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(problems, ", "))
	}
	return nil
}

// String is safe to log.
func (c *Config) String() string {
	return fmt.Sprintf("Config{base=%s survey=%s authen=%t secrets=%s tz=%s timeout=%s}",
		c.BaseURL, c.SurveyURL, c.AuthenKey != "", c.Secrets, c.Timezone, c.HTTPTimeout)
}
