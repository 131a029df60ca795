package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/singleflight"
)

// Client is a SAUR API client. It owns one resty session, created on first use
// and released by [Client.Close], and the bearer token obtained from
// [Client.Authenticate]. A Client is safe for concurrent use.
type Client struct {
	login    string
	password string
	baseURL  string
	options  *Options

	mu        sync.Mutex
	session   *resty.Client
	closed    bool
	token     string
	sectionID string

	authGroup singleflight.Group
	sleep     func(ctx context.Context, d time.Duration) error
}

// New creates a client for the given credentials. No network call is made;
// the session is created and the options validated on the first request.
func New(login, password string, opts ...Option) *Client {
	options := newClientOptions()

	for _, o := range opts {
		o(options)
	}

	return &Client{
		login:     login,
		password:  password,
		baseURL:   options.resolvedBaseURL(),
		options:   options,
		token:     options.token,
		sectionID: options.sectionID,
		sleep:     sleepContext,
	}
}

// WithClient creates a client, passes it to fn and closes it on every exit
// path, including a panic in fn. The error from fn takes precedence over the
// error from closing.
func WithClient(ctx context.Context, login, password string, fn func(context.Context, *Client) error, opts ...Option) (err error) {
	c := New(login, password, opts...)

	defer func() {
		if closeErr := c.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return fn(ctx, c)
}

// Token returns the current bearer token, or an empty string if the client
// has not authenticated yet.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.token
}

// SectionID returns the section subscription identifier used in data
// requests. It is empty until configured or learned from authentication.
func (c *Client) SectionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.sectionID
}

// Close releases the session. It is safe to call more than once; calls after
// the first are no-ops. Operations on a closed client return [ErrClientClosed].
func (c *Client) Close() error {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true

	if c.session != nil {
		c.session.GetClient().CloseIdleConnections()
		c.session = nil
		c.options.requestLogger.Debugf("SAUR session for %s closed", c.baseURL)
	}

	return nil
}

// restyClient returns the session, creating it on first use.
func (c *Client) restyClient() (*resty.Client, error) {
	if c == nil {
		return nil, errors.New("saur client is nil")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClientClosed
	}

	if c.session != nil {
		return c.session, nil
	}

	if err := c.options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	c.session = resty.New().
		SetBaseURL(c.baseURL).
		SetHeaders(c.options.requestHeaders).
		SetTimeout(c.options.requestTimeout).
		SetRetryCount(c.options.transportRetryCount).
		SetRetryWaitTime(c.options.transportRetryWaitTime).
		SetRetryMaxWaitTime(c.options.transportRetryMaxWaitTime).
		AddRetryCondition(c.options.transportRetryPolicy).
		SetLogger(c.options.requestLogger).
		SetDisableWarn(true)

	c.options.requestLogger.Debugf("SAUR session created for %s", c.baseURL)

	return c.session, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
