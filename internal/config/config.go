package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

var ErrMissingRequiredValue = errors.New("missing required value")
var ErrInvalidValue = errors.New("invalid value")

type environment string

const (
	production  environment = "production"
	staging     environment = "staging"
	development environment = "development"
)

const (
	DefaultAPIURL         = "https://api.mojang.com"
	DefaultSessionURL     = "https://sessionserver.mojang.com"
	DefaultStatusURL      = "https://status.mojang.com"
	DefaultConnectTimeout = 30 * time.Second
	DefaultRequestTimeout = 30 * time.Second
	DefaultRequestsPerSec = 10
	DefaultBurst          = 20
)

type Config struct {
	apiURL             string
	sessionURL         string
	statusURL          string
	connectTimeout     time.Duration
	requestTimeout     time.Duration
	requestsPerSecond  int
	burst              int
	sentryDSN          string
	otelEnabled        bool
	googleCloudProject string
	env                environment
}

func (c *Config) APIURL() string {
	return c.apiURL
}

func (c *Config) SessionURL() string {
	return c.sessionURL
}

func (c *Config) StatusURL() string {
	return c.statusURL
}

func (c *Config) ConnectTimeout() time.Duration {
	return c.connectTimeout
}

func (c *Config) RequestTimeout() time.Duration {
	return c.requestTimeout
}

func (c *Config) RequestsPerSecond() int {
	return c.requestsPerSecond
}

func (c *Config) Burst() int {
	return c.burst
}

func (c *Config) SentryDSN() string {
	return c.sentryDSN
}

func (c *Config) OTelEnabled() bool {
	return c.otelEnabled
}

func (c *Config) GoogleCloudProject() string {
	return c.googleCloudProject
}

func (c *Config) IsProduction() bool {
	return c.env == production
}

func (c *Config) IsStaging() bool {
	return c.env == staging
}

func (c *Config) IsDevelopment() bool {
	return c.env == development
}

// Return a string representation suitable for logging etc
func (c *Config) NonSensitiveString() string {
	return fmt.Sprintf(
		"Config{env: %s, apiURL: %s, sessionURL: %s, statusURL: %s, connectTimeout: %s, requestTimeout: %s, requestsPerSecond: %d, burst: %d, otelEnabled: %t, ...}",
		string(c.env),
		c.apiURL,
		c.sessionURL,
		c.statusURL,
		c.connectTimeout,
		c.requestTimeout,
		c.requestsPerSecond,
		c.burst,
		c.otelEnabled,
	)
}

func ConfigFromEnv() (Config, error) {
	missingKey := func(key string) (Config, error) {
		return Config{}, fmt.Errorf("%w: %s", ErrMissingRequiredValue, key)
	}
	invalidKey := func(key string, value string) (Config, error) {
		return Config{}, fmt.Errorf("%w: %s (%s)", ErrInvalidValue, key, value)
	}

	var env environment
	rawEnv, ok := os.LookupEnv("MOJANG_ENVIRONMENT")
	if !ok || rawEnv == "" {
		return missingKey("MOJANG_ENVIRONMENT")
	}
	switch rawEnv {
	case "production":
		env = production
	case "staging":
		env = staging
	case "development":
		env = development
	default:
		return invalidKey("MOJANG_ENVIRONMENT", rawEnv)
	}
	if string(env) == "" {
		panic("logic error: env is empty")
	}

	urls := map[string]string{
		"MOJANG_API_URL":     DefaultAPIURL,
		"MOJANG_SESSION_URL": DefaultSessionURL,
		"MOJANG_STATUS_URL":  DefaultStatusURL,
	}
	for key := range urls {
		raw := os.Getenv(key)
		if raw == "" {
			continue
		}
		parsed, err := url.Parse(raw)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return invalidKey(key, raw)
		}
		urls[key] = raw
	}

	durations := map[string]time.Duration{
		"MOJANG_CONNECT_TIMEOUT": DefaultConnectTimeout,
		"MOJANG_REQUEST_TIMEOUT": DefaultRequestTimeout,
	}
	for key := range durations {
		raw := os.Getenv(key)
		if raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			return invalidKey(key, raw)
		}
		durations[key] = parsed
	}

	ints := map[string]int{
		"MOJANG_REQUESTS_PER_SECOND": DefaultRequestsPerSec,
		"MOJANG_BURST":               DefaultBurst,
	}
	for key := range ints {
		raw := os.Getenv(key)
		if raw == "" {
			continue
		}
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return invalidKey(key, raw)
		}
		ints[key] = parsed
	}

	otelEnabled := false
	if raw := os.Getenv("OTEL_ENABLED"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return invalidKey("OTEL_ENABLED", raw)
		}
		otelEnabled = parsed
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	googleCloudProject := os.Getenv("GOOGLE_CLOUD_PROJECT")

	if env == production || env == staging {
		if sentryDSN == "" {
			return missingKey("SENTRY_DSN")
		}
	}

	return Config{
		apiURL:             urls["MOJANG_API_URL"],
		sessionURL:         urls["MOJANG_SESSION_URL"],
		statusURL:          urls["MOJANG_STATUS_URL"],
		connectTimeout:     durations["MOJANG_CONNECT_TIMEOUT"],
		requestTimeout:     durations["MOJANG_REQUEST_TIMEOUT"],
		requestsPerSecond:  ints["MOJANG_REQUESTS_PER_SECOND"],
		burst:              ints["MOJANG_BURST"],
		sentryDSN:          sentryDSN,
		otelEnabled:        otelEnabled,
		googleCloudProject: googleCloudProject,
		env:                env,
	}, nil
}
