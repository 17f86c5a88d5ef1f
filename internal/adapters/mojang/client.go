package mojang

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Amund211/mojangid/internal/adapters/cache"
	"github.com/Amund211/mojangid/internal/config"
	"github.com/Amund211/mojangid/internal/domain"
	"github.com/Amund211/mojangid/internal/logging"
	"github.com/Amund211/mojangid/internal/ratelimiting"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const (
	CacheTTL      = 10 * time.Minute
	CacheCapacity = 100
)

type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Base URLs of the upstream hosts, without trailing slash
type Endpoints struct {
	API     string
	Session string
	Status  string
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		API:     config.DefaultAPIURL,
		Session: config.DefaultSessionURL,
		Status:  config.DefaultStatusURL,
	}
}

func EndpointsFromConfig(cfg config.Config) Endpoints {
	return Endpoints{
		API:     cfg.APIURL(),
		Session: cfg.SessionURL(),
		Status:  cfg.StatusURL(),
	}
}

// Client for the Mojang identity service.
//
// Create one per process and share it, the caches live as long as the client.
// Safe for concurrent use.
type Client struct {
	httpClient HttpClient
	endpoints  Endpoints
	nowFunc    func() time.Time
	limiter    ratelimiting.RateLimiter

	identityCache cache.Cache[string, domain.PlayerIdentity]
	profileCache  cache.Cache[uuid.UUID, domain.PlayerIdentity]
	stopCaches    []func()

	metrics mojangMetricsCollection
	tracer  trace.Tracer
}

type Option func(*Client)

func WithEndpoints(endpoints Endpoints) Option {
	return func(c *Client) {
		c.endpoints = endpoints
	}
}

func WithNowFunc(nowFunc func() time.Time) Option {
	return func(c *Client) {
		c.nowFunc = nowFunc
	}
}

// Requests are rejected without contacting the network when the limiter has no
// tokens for the upstream host.
func WithRateLimiter(limiter ratelimiting.RateLimiter) Option {
	return func(c *Client) {
		c.limiter = limiter
	}
}

func NewClient(httpClient HttpClient, opts ...Option) (*Client, error) {
	const name = "mojangid/adapters/mojang"

	metrics, err := setupMojangMetrics(otel.Meter(name))
	if err != nil {
		return nil, fmt.Errorf("failed to set up metrics: %w", err)
	}

	client := &Client{
		httpClient: httpClient,
		endpoints:  DefaultEndpoints(),
		nowFunc:    time.Now,
		limiter:    ratelimiting.NewUnlimited(),

		metrics: metrics,
		tracer:  otel.Tracer(name),
	}

	for _, opt := range opts {
		opt(client)
	}

	identityCache := cache.NewTTLCache[string, domain.PlayerIdentity](CacheTTL, CacheCapacity, client.nowFunc)
	profileCache := cache.NewTTLCache[uuid.UUID, domain.PlayerIdentity](CacheTTL, CacheCapacity, client.nowFunc)
	client.identityCache = identityCache
	client.profileCache = profileCache
	client.stopCaches = []func(){identityCache.Stop, profileCache.Stop}

	return client, nil
}

// Stops the cache expiry goroutines. The client must not be used afterwards.
func (c *Client) Close() {
	for _, stop := range c.stopCaches {
		stop()
	}
}

// http.Client with a bounded connect timeout, an overall request timeout, tracing and request logging
func NewHTTPClient(connectTimeout time.Duration, requestTimeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}).DialContext

	return &http.Client{
		Timeout:   requestTimeout,
		Transport: otelhttp.NewTransport(logging.NewLoggingTransport(transport)),
	}
}
