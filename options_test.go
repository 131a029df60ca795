package client

import (
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
)

func TestNewClientOptions(t *testing.T) {
	t.Parallel()

	opts := newClientOptions()

	if opts.maxRetries != 3 {
		t.Errorf("expected maxRetries=3, got %d", opts.maxRetries)
	}

	if opts.backoffFactor != 500*time.Millisecond {
		t.Errorf("expected backoffFactor=500ms, got %v", opts.backoffFactor)
	}

	if opts.requestTimeout != 30*time.Second {
		t.Errorf("expected requestTimeout=30s, got %v", opts.requestTimeout)
	}

	if opts.transportRetryCount != 3 {
		t.Errorf("expected transportRetryCount=3, got %d", opts.transportRetryCount)
	}

	if opts.transportRetryWaitTime != 500*time.Millisecond {
		t.Errorf("expected transportRetryWaitTime=500ms, got %v", opts.transportRetryWaitTime)
	}

	if opts.transportRetryMaxWaitTime != 3*time.Second {
		t.Errorf("expected transportRetryMaxWaitTime=3s, got %v", opts.transportRetryMaxWaitTime)
	}

	if opts.requestLogger == nil {
		t.Error("expected requestLogger to be set")
	}

	if opts.transportRetryPolicy == nil {
		t.Error("expected transportRetryPolicy to be set")
	}

	if opts.requestHeaders["Content-Type"] != "application/json" {
		t.Errorf("expected Content-Type=application/json, got %s", opts.requestHeaders["Content-Type"])
	}

	if opts.requestHeaders["Accept"] != "application/json" {
		t.Errorf("expected Accept=application/json, got %s", opts.requestHeaders["Accept"])
	}

	if opts.requestHeaders["User-Agent"] != DefaultUserAgent {
		t.Errorf("expected default User-Agent, got %s", opts.requestHeaders["User-Agent"])
	}

	if opts.resolvedBaseURL() != ProductionBaseURL {
		t.Errorf("expected base URL=%s, got %s", ProductionBaseURL, opts.resolvedBaseURL())
	}
}

func TestResolvedBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     []Option
		expected string
	}{
		{"production by default", nil, ProductionBaseURL},
		{"dev mode", []Option{WithDevMode(true)}, DevBaseURL},
		{"explicit URL wins over dev mode", []Option{WithDevMode(true), WithBaseURL("http://127.0.0.1:9000")}, "http://127.0.0.1:9000"},
		{"trailing slash trimmed", []Option{WithBaseURL("https://saur.test/")}, "https://saur.test"},
		{"blank URL ignored", []Option{WithBaseURL("  ")}, ProductionBaseURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := newClientOptions()
			for _, o := range tt.opts {
				o(opts)
			}

			if got := opts.resolvedBaseURL(); got != tt.expected {
				t.Errorf("expected base URL=%s, got %s", tt.expected, got)
			}
		})
	}
}

func TestWithMaxRetries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"valid positive", 5, 5},
		{"one", 1, 1},
		{"zero ignored", 0, 3}, // default is 3
		{"negative ignored", -1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := newClientOptions()
			WithMaxRetries(tt.input)(opts)

			if opts.maxRetries != tt.expected {
				t.Errorf("expected maxRetries=%d, got %d", tt.expected, opts.maxRetries)
			}
		})
	}
}

func TestWithBackoffFactor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    time.Duration
		expected time.Duration
	}{
		{"valid", 2 * time.Second, 2 * time.Second},
		{"zero disables waiting", 0, 0},
		{"negative ignored", -time.Second, 500 * time.Millisecond}, // default is 500ms
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := newClientOptions()
			WithBackoffFactor(tt.input)(opts)

			if opts.backoffFactor != tt.expected {
				t.Errorf("expected backoffFactor=%v, got %v", tt.expected, opts.backoffFactor)
			}
		})
	}
}

func TestWithRequestTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    time.Duration
		expected time.Duration
	}{
		{"valid", 10 * time.Second, 10 * time.Second},
		{"minimum valid", time.Second, time.Second},
		{"below minimum ignored", 500 * time.Millisecond, 30 * time.Second}, // default is 30s
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := newClientOptions()
			WithRequestTimeout(tt.input)(opts)

			if opts.requestTimeout != tt.expected {
				t.Errorf("expected requestTimeout=%v, got %v", tt.expected, opts.requestTimeout)
			}
		})
	}
}

func TestWithTransportRetryCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"valid positive", 5, 5},
		{"zero", 0, 0},
		{"negative ignored", -1, 3}, // default is 3
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := newClientOptions()
			WithTransportRetryCount(tt.input)(opts)

			if opts.transportRetryCount != tt.expected {
				t.Errorf("expected transportRetryCount=%d, got %d", tt.expected, opts.transportRetryCount)
			}
		})
	}
}

func TestWithTransportRetryWaitTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    time.Duration
		expected time.Duration
	}{
		{"valid", 200 * time.Millisecond, 200 * time.Millisecond},
		{"minimum valid", 100 * time.Millisecond, 100 * time.Millisecond},
		{"below minimum ignored", 50 * time.Millisecond, 500 * time.Millisecond}, // default is 500ms
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := newClientOptions()
			WithTransportRetryWaitTime(tt.input)(opts)

			if opts.transportRetryWaitTime != tt.expected {
				t.Errorf("expected transportRetryWaitTime=%v, got %v", tt.expected, opts.transportRetryWaitTime)
			}
		})
	}
}

func TestWithTransportRetryMaxWaitTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    time.Duration
		expected time.Duration
	}{
		{"valid", 5 * time.Second, 5 * time.Second},
		{"minimum valid", 100 * time.Millisecond, 100 * time.Millisecond},
		{"below minimum ignored", 50 * time.Millisecond, 3 * time.Second}, // default is 3s
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := newClientOptions()
			WithTransportRetryMaxWaitTime(tt.input)(opts)

			if opts.transportRetryMaxWaitTime != tt.expected {
				t.Errorf("expected transportRetryMaxWaitTime=%v, got %v", tt.expected, opts.transportRetryMaxWaitTime)
			}
		})
	}
}

func TestWithRequestLogger(t *testing.T) {
	t.Parallel()

	t.Run("valid logger", func(t *testing.T) {
		t.Parallel()

		opts := newClientOptions()
		logger := &NoopLogger{}
		WithRequestLogger(logger)(opts)

		if opts.requestLogger != logger {
			t.Error("expected requestLogger to be set")
		}
	})

	t.Run("nil ignored", func(t *testing.T) {
		t.Parallel()

		opts := newClientOptions()
		originalLogger := opts.requestLogger
		WithRequestLogger(nil)(opts)

		if opts.requestLogger != originalLogger {
			t.Error("nil logger should be ignored")
		}
	})
}

func TestWithTransportRetryPolicy(t *testing.T) {
	t.Parallel()

	t.Run("valid policy", func(t *testing.T) {
		t.Parallel()

		called := false
		opts := newClientOptions()
		WithTransportRetryPolicy(func(_ *resty.Response, _ error) bool {
			called = true
			return true
		})(opts)

		if !opts.transportRetryPolicy(nil, nil) || !called {
			t.Error("expected custom transportRetryPolicy to be set")
		}
	})

	t.Run("nil ignored", func(t *testing.T) {
		t.Parallel()

		opts := newClientOptions()
		WithTransportRetryPolicy(nil)(opts)

		if opts.transportRetryPolicy == nil {
			t.Error("nil policy should be ignored")
		}
	})
}

func TestWithRequestHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		header        string
		value         string
		expectIgnored bool
	}{
		{"valid header", "X-Custom", "value", false},
		{"empty header ignored", "", "value", true},
		{"whitespace header ignored", "   ", "value", true},
		{"Content-Type protected", "Content-Type", "text/plain", true},
		{"content-type protected (case insensitive)", "content-type", "text/plain", true},
		{"Accept protected", "Accept", "text/plain", true},
		{"accept protected (case insensitive)", "ACCEPT", "text/plain", true},
		{"Authorization protected", "authorization", "Basic abc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := newClientOptions()
			originalContentType := opts.requestHeaders["Content-Type"]
			originalAccept := opts.requestHeaders["Accept"]
			originalLen := len(opts.requestHeaders)

			WithRequestHeader(tt.header, tt.value)(opts)

			if tt.expectIgnored {
				if opts.requestHeaders["Content-Type"] != originalContentType {
					t.Error("Content-Type should not be changed")
				}
				if opts.requestHeaders["Accept"] != originalAccept {
					t.Error("Accept should not be changed")
				}
				if len(opts.requestHeaders) != originalLen {
					t.Error("ignored header should not add to headers")
				}
			} else if opts.requestHeaders[tt.header] != tt.value {
				t.Errorf("expected header %s=%s, got %s", tt.header, tt.value, opts.requestHeaders[tt.header])
			}
		})
	}
}

func TestWithUserAgent(t *testing.T) {
	t.Parallel()

	opts := newClientOptions()
	WithUserAgent("saur-cli/1.0")(opts)

	if opts.requestHeaders["User-Agent"] != "saur-cli/1.0" {
		t.Errorf("expected User-Agent=saur-cli/1.0, got %s", opts.requestHeaders["User-Agent"])
	}

	WithUserAgent(" ")(opts)

	if opts.requestHeaders["User-Agent"] != "saur-cli/1.0" {
		t.Errorf("blank user agent should be ignored, got %s", opts.requestHeaders["User-Agent"])
	}
}

func TestWithTokenAndSectionID(t *testing.T) {
	t.Parallel()

	opts := newClientOptions()
	WithToken(" my-token ")(opts)
	WithSectionID(" 42 ")(opts)

	if opts.token != "my-token" {
		t.Errorf("expected token=my-token, got %s", opts.token)
	}

	if opts.sectionID != "42" {
		t.Errorf("expected sectionID=42, got %s", opts.sectionID)
	}
}

func TestOptionsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		modify    func(*Options)
		wantError string
	}{
		{
			name:      "valid defaults",
			modify:    func(_ *Options) {},
			wantError: "",
		},
		{
			name:      "zero maxRetries",
			modify:    func(o *Options) { o.maxRetries = 0 },
			wantError: "maxRetries must be at least 1",
		},
		{
			name:      "maxRetries exceeds max",
			modify:    func(o *Options) { o.maxRetries = 11 },
			wantError: "maxRetries must not exceed 10",
		},
		{
			name:      "negative backoffFactor",
			modify:    func(o *Options) { o.backoffFactor = -time.Millisecond },
			wantError: "backoffFactor must be non-negative",
		},
		{
			name:      "backoffFactor exceeds max",
			modify:    func(o *Options) { o.backoffFactor = 2 * time.Minute },
			wantError: "backoffFactor must not exceed 1m0s",
		},
		{
			name:      "requestTimeout below minimum",
			modify:    func(o *Options) { o.requestTimeout = 10 * time.Millisecond },
			wantError: "requestTimeout must be at least 1s",
		},
		{
			name:      "requestTimeout exceeds max",
			modify:    func(o *Options) { o.requestTimeout = 6 * time.Minute },
			wantError: "requestTimeout must not exceed 5m0s",
		},
		{
			name:      "negative transportRetryCount",
			modify:    func(o *Options) { o.transportRetryCount = -1 },
			wantError: "transportRetryCount must be non-negative",
		},
		{
			name:      "transportRetryCount exceeds max",
			modify:    func(o *Options) { o.transportRetryCount = 101 },
			wantError: "transportRetryCount must not exceed 100",
		},
		{
			name:      "transportRetryWaitTime below minimum",
			modify:    func(o *Options) { o.transportRetryWaitTime = 50 * time.Millisecond },
			wantError: "transportRetryWaitTime must be at least 100ms",
		},
		{
			name:      "transportRetryWaitTime exceeds max",
			modify:    func(o *Options) { o.transportRetryWaitTime = 2 * time.Minute },
			wantError: "transportRetryWaitTime must not exceed 1m0s",
		},
		{
			name:      "transportRetryMaxWaitTime below minimum",
			modify:    func(o *Options) { o.transportRetryMaxWaitTime = 50 * time.Millisecond },
			wantError: "transportRetryMaxWaitTime must be at least 100ms",
		},
		{
			name:      "transportRetryMaxWaitTime exceeds max",
			modify:    func(o *Options) { o.transportRetryMaxWaitTime = 6 * time.Minute },
			wantError: "transportRetryMaxWaitTime must not exceed 5m0s",
		},
		{
			name: "transportRetryMaxWaitTime less than transportRetryWaitTime",
			modify: func(o *Options) {
				o.transportRetryWaitTime = 1 * time.Second
				o.transportRetryMaxWaitTime = 500 * time.Millisecond
			},
			wantError: "transportRetryMaxWaitTime (500ms) must be greater than or equal to transportRetryWaitTime (1s)",
		},
		{
			name:      "nil transportRetryPolicy",
			modify:    func(o *Options) { o.transportRetryPolicy = nil },
			wantError: "transportRetryPolicy must not be nil",
		},
		{
			name:      "nil requestLogger",
			modify:    func(o *Options) { o.requestLogger = nil },
			wantError: "requestLogger must not be nil",
		},
		{
			name:      "unsupported scheme",
			modify:    func(o *Options) { o.baseURL = "ftp://saur.test" },
			wantError: `base URL "ftp://saur.test" must use http or https`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := newClientOptions()
			tt.modify(opts)

			err := opts.Validate()

			if tt.wantError == "" {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.wantError)
				} else if err.Error() != tt.wantError {
					t.Errorf("expected error %q, got %q", tt.wantError, err.Error())
				}
			}
		})
	}
}
