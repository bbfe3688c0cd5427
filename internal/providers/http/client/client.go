package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/GriffinCanCode/httpdata/internal/data/catalog"
	"github.com/GriffinCanCode/httpdata/internal/infrastructure/config"
	"github.com/GriffinCanCode/httpdata/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/httpdata/internal/logging"
	"github.com/GriffinCanCode/httpdata/internal/providers/http/headers"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries the correlation id of each request.
const RequestIDHeader = "X-Request-Id"

// Client sends Requests through resty on top of a retrying transport, with
// client-side rate limiting and a set of default headers.
type Client struct {
	Resty    *resty.Client
	Retry    *retryablehttp.Client
	Limiter  *rate.Limiter
	Defaults *headers.Headers
	Mu       sync.RWMutex

	log     *logging.Logger
	metrics *monitoring.Metrics
	verbose bool
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *logging.Logger) Option {
	return func(c *Client) {
		if l == nil {
			l = logging.Nop()
		}
		c.log = l.Component("http.client")
	}
}

// WithMetrics records request metrics on m.
func WithMetrics(m *monitoring.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithVerboseHeaders logs credential headers in clear text.
func WithVerboseHeaders(verbose bool) Option {
	return func(c *Client) {
		c.verbose = verbose
	}
}

// HTTPOps provides base functionality for all HTTP modules
type HTTPOps struct {
	Client *Client
}

// New creates a client from configuration.
func New(cfg config.ClientConfig, opts ...Option) *Client {
	c := &Client{
		Defaults: headers.New(),
		log:      logging.Nop(),
		metrics:  monitoring.NewMetrics(),
	}
	for _, opt := range opts {
		opt(c)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryMax
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.Logger = nil
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		if attempt == 0 {
			return
		}
		c.metrics.RecordRetry(req.Method, req.URL.Hostname())
		c.log.Debug("retrying request",
			zap.String("method", req.Method),
			zap.String("host", req.URL.Host),
			zap.Int("attempt", attempt))
	}

	// Retries happen in the transport; resty only sends.
	restyClient := resty.NewWithClient(retryClient.StandardClient())
	restyClient.
		SetTimeout(cfg.Timeout).
		SetRetryCount(0)

	c.Resty = restyClient
	c.Retry = retryClient
	c.timeout = cfg.Timeout
	c.Limiter = newLimiter(cfg.RateLimitRPS)
	if cfg.UserAgent != "" {
		c.Defaults.SetUserAgent(cfg.UserAgent)
	}
	return c
}

// NewDefault creates a client with the default configuration.
func NewDefault(opts ...Option) *Client {
	return New(config.Default().Client, opts...)
}

func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// Metrics returns the collectors this client records on.
func (c *Client) Metrics() *monitoring.Metrics {
	return c.metrics
}

// Logger returns the client's logger.
func (c *Client) Logger() *logging.Logger {
	return c.log
}

// SetHeader replaces a default header.
func (c *Client) SetHeader(name, value string) error {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	return c.Defaults.Set(name, value)
}

// RemoveHeader removes a default header.
func (c *Client) RemoveHeader(name string) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.Defaults.Del(name)
}

// DefaultLines returns the default headers as wire lines.
func (c *Client) DefaultLines() ([]headers.Line, error) {
	c.Mu.RLock()
	defer c.Mu.RUnlock()
	return c.Defaults.ToWireLines()
}

// SetBasicAuth configures basic authentication
func (c *Client) SetBasicAuth(username, password string) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.Defaults.SetBasicAuthentication(username, password)
}

// SetBearerAuth configures bearer token authentication
func (c *Client) SetBearerAuth(token string) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.Defaults.SetAuthorization("Bearer " + token)
}

// ClearAuth removes the default Authorization header.
func (c *Client) ClearAuth() {
	c.RemoveHeader("Authorization")
}

// mergeLines overlays request lines on the defaults; a name present in the
// request replaces every default line of that name.
func mergeLines(defaults, request []headers.Line) []headers.Line {
	override := make(map[string]bool, len(request))
	for _, l := range request {
		override[catalog.Fold(l.Name)] = true
	}
	out := make([]headers.Line, 0, len(defaults)+len(request))
	for _, l := range defaults {
		if !override[catalog.Fold(l.Name)] {
			out = append(out, l)
		}
	}
	return append(out, request...)
}

func requestID(lines []headers.Line) string {
	for _, l := range lines {
		if catalog.Fold(l.Name) == catalog.Fold(RequestIDHeader) {
			return l.Value
		}
	}
	return ""
}

// errorType classifies a transport error for metrics.
func errorType(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	}
	var ne interface{ Timeout() bool }
	if errors.As(err, &ne) && ne.Timeout() {
		return "timeout"
	}
	return "transport"
}

func (c *Client) wait(ctx context.Context) error {
	c.Mu.RLock()
	limiter := c.Limiter
	c.Mu.RUnlock()
	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit error: %w", err)
	}
	return nil
}

// Settings is a snapshot of the transport configuration.
type Settings struct {
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	// RateLimit is in requests per second, zero when unlimited.
	RateLimit float64
	// Burst is derived from RateLimit and ignored by Apply.
	Burst int
}

// MaxRetries bounds Settings.RetryMax.
const MaxRetries = 10

// ErrSettings marks settings rejected by Apply.
var ErrSettings = errors.New("invalid client settings")

// Validate checks the settings Apply would install.
func (s Settings) Validate() error {
	switch {
	case s.Timeout <= 0:
		return fmt.Errorf("%w: timeout must be positive", ErrSettings)
	case s.RetryMax < 0 || s.RetryMax > MaxRetries:
		return fmt.Errorf("%w: retry max must be between 0 and %d", ErrSettings, MaxRetries)
	case s.RetryWaitMin < 0 || s.RetryWaitMax < 0:
		return fmt.Errorf("%w: retry waits cannot be negative", ErrSettings)
	case s.RetryWaitMin > s.RetryWaitMax:
		return fmt.Errorf("%w: retry wait min exceeds retry wait max", ErrSettings)
	case s.RateLimit < 0:
		return fmt.Errorf("%w: rate limit cannot be negative", ErrSettings)
	}
	return nil
}

// Settings returns the current transport configuration.
func (c *Client) Settings() Settings {
	c.Mu.RLock()
	defer c.Mu.RUnlock()
	s := Settings{
		Timeout:      c.timeout,
		RetryMax:     c.Retry.RetryMax,
		RetryWaitMin: c.Retry.RetryWaitMin,
		RetryWaitMax: c.Retry.RetryWaitMax,
	}
	if limit := c.Limiter.Limit(); limit != rate.Inf {
		s.RateLimit = float64(limit)
		s.Burst = c.Limiter.Burst()
	}
	return s
}

// Apply installs s. The limiter is replaced only when the rate changes.
func (c *Client) Apply(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.timeout = s.Timeout
	c.Resty.SetTimeout(s.Timeout)
	c.Retry.RetryMax = s.RetryMax
	c.Retry.RetryWaitMin = s.RetryWaitMin
	c.Retry.RetryWaitMax = s.RetryWaitMax

	current := 0.0
	if limit := c.Limiter.Limit(); limit != rate.Inf {
		current = float64(limit)
	}
	if current != s.RateLimit {
		c.Limiter = newLimiter(s.RateLimit)
	}
	return nil
}
