package client

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// ProductionBaseURL is the SAUR customer API.
	ProductionBaseURL = "https://apib2c.azure.saurclient.fr"
	// DevBaseURL is used when dev mode is enabled.
	DevBaseURL = "http://localhost:8080"

	// DefaultUserAgent is the browser user agent the SAUR API expects.
	DefaultUserAgent = "Mozilla/5.0 (X11; CrOS x86_64 14541.0.0) AppleWebKit/537.36" +
		" (KHTML, like Gecko) Chrome/132.0.0.0 Safari/537.36"
)

type Option func(*Options)

type Options struct {
	baseURL                   string
	devMode                   bool
	token                     string
	sectionID                 string
	maxRetries                int
	backoffFactor             time.Duration
	requestTimeout            time.Duration
	transportRetryCount       int
	transportRetryWaitTime    time.Duration
	transportRetryMaxWaitTime time.Duration
	transportRetryPolicy      func(*resty.Response, error) bool
	requestLogger             RequestLogger
	requestHeaders            map[string]string
	metrics                   *Metrics
}

func newClientOptions() *Options {
	return &Options{
		maxRetries:                3,
		backoffFactor:             500 * time.Millisecond,
		requestTimeout:            30 * time.Second,
		transportRetryCount:       3,
		transportRetryWaitTime:    500 * time.Millisecond,
		transportRetryMaxWaitTime: 3 * time.Second,
		transportRetryPolicy:      DefaultRetryPolicy,
		requestLogger:             &NoopLogger{},
		requestHeaders: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
			"User-Agent":   DefaultUserAgent,
		},
	}
}

// resolvedBaseURL returns the explicit base URL if set, otherwise the
// production or dev URL depending on dev mode.
func (o *Options) resolvedBaseURL() string {
	if o.baseURL != "" {
		return o.baseURL
	}

	if o.devMode {
		return DevBaseURL
	}

	return ProductionBaseURL
}

// Validate checks the option values. It is called by [Client] before the
// session is created.
func (o *Options) Validate() error {
	if o.maxRetries < 1 {
		return errors.New("maxRetries must be at least 1")
	}

	if o.maxRetries > 10 {
		return errors.New("maxRetries must not exceed 10")
	}

	if o.backoffFactor < 0 {
		return errors.New("backoffFactor must be non-negative")
	}

	if o.backoffFactor > time.Minute {
		return fmt.Errorf("backoffFactor must not exceed %v", time.Minute)
	}

	if o.requestTimeout < time.Second {
		return errors.New("requestTimeout must be at least 1s")
	}

	if o.requestTimeout > 5*time.Minute {
		return fmt.Errorf("requestTimeout must not exceed %v", 5*time.Minute)
	}

	if o.transportRetryCount < 0 {
		return errors.New("transportRetryCount must be non-negative")
	}

	if o.transportRetryCount > 100 {
		return errors.New("transportRetryCount must not exceed 100")
	}

	if o.transportRetryWaitTime < 100*time.Millisecond {
		return errors.New("transportRetryWaitTime must be at least 100ms")
	}

	if o.transportRetryWaitTime > time.Minute {
		return fmt.Errorf("transportRetryWaitTime must not exceed %v", time.Minute)
	}

	if o.transportRetryMaxWaitTime < 100*time.Millisecond {
		return errors.New("transportRetryMaxWaitTime must be at least 100ms")
	}

	if o.transportRetryMaxWaitTime > 5*time.Minute {
		return fmt.Errorf("transportRetryMaxWaitTime must not exceed %v", 5*time.Minute)
	}

	if o.transportRetryMaxWaitTime < o.transportRetryWaitTime {
		return fmt.Errorf("transportRetryMaxWaitTime (%v) must be greater than or equal to transportRetryWaitTime (%v)",
			o.transportRetryMaxWaitTime, o.transportRetryWaitTime)
	}

	if o.transportRetryPolicy == nil {
		return errors.New("transportRetryPolicy must not be nil")
	}

	if o.requestLogger == nil {
		return errors.New("requestLogger must not be nil")
	}

	base := o.resolvedBaseURL()
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		return fmt.Errorf("base URL %q must use http or https", base)
	}

	return nil
}

// WithBaseURL overrides the API base URL. It takes precedence over
// [WithDevMode].
func WithBaseURL(baseURL string) Option {
	return func(o *Options) {
		baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
		if baseURL != "" {
			o.baseURL = baseURL
		}
	}
}

// WithDevMode targets [DevBaseURL] instead of [ProductionBaseURL].
func WithDevMode(enabled bool) Option {
	return func(o *Options) {
		o.devMode = enabled
	}
}

// WithToken seeds the client with a previously obtained bearer token, so the
// first request skips authentication.
func WithToken(token string) Option {
	return func(o *Options) {
		o.token = strings.TrimSpace(token)
	}
}

// WithSectionID sets the section subscription identifier used in the data
// endpoints. When unset, the identifier returned by authentication is used.
func WithSectionID(id string) Option {
	return func(o *Options) {
		o.sectionID = strings.TrimSpace(id)
	}
}

// WithMaxRetries sets the number of attempts a data request gets before
// failing when the API keeps answering 401.
func WithMaxRetries(count int) Option {
	return func(o *Options) {
		if count >= 1 {
			o.maxRetries = count
		}
	}
}

// WithBackoffFactor sets the base delay of the re-authentication backoff.
// The wait before retry n (from 0) is factor * 2^n.
func WithBackoffFactor(factor time.Duration) Option {
	return func(o *Options) {
		if factor >= 0 {
			o.backoffFactor = factor
		}
	}
}

// WithRequestTimeout bounds every individual HTTP request.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		if timeout >= time.Second {
			o.requestTimeout = timeout
		}
	}
}

func WithTransportRetryCount(count int) Option {
	return func(o *Options) {
		if count >= 0 {
			o.transportRetryCount = count
		}
	}
}

func WithTransportRetryWaitTime(waitTime time.Duration) Option {
	return func(o *Options) {
		if waitTime >= 100*time.Millisecond {
			o.transportRetryWaitTime = waitTime
		}
	}
}

func WithTransportRetryMaxWaitTime(maxWaitTime time.Duration) Option {
	return func(o *Options) {
		if maxWaitTime >= 100*time.Millisecond {
			o.transportRetryMaxWaitTime = maxWaitTime
		}
	}
}

func WithTransportRetryPolicy(policy func(*resty.Response, error) bool) Option {
	return func(o *Options) {
		if policy != nil {
			o.transportRetryPolicy = policy
		}
	}
}

func WithRequestLogger(logger RequestLogger) Option {
	return func(o *Options) {
		if logger != nil {
			o.requestLogger = logger
		}
	}
}

// WithRequestHeader adds a header to every request. Content-Type, Accept and
// Authorization are managed by the client and cannot be overridden.
func WithRequestHeader(header, value string) Option {
	return func(o *Options) {
		header = strings.TrimSpace(header)

		if header == "" ||
			strings.EqualFold(header, "Content-Type") ||
			strings.EqualFold(header, "Accept") ||
			strings.EqualFold(header, "Authorization") {
			return
		}

		o.requestHeaders[header] = value
	}
}

func WithUserAgent(userAgent string) Option {
	return func(o *Options) {
		if strings.TrimSpace(userAgent) != "" {
			o.requestHeaders["User-Agent"] = userAgent
		}
	}
}

// WithMetrics records request and authentication metrics into m.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) {
		if m != nil {
			o.metrics = m
		}
	}
}
