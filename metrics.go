package client

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors updated by [Client]. Create one with
// [NewMetrics] and pass it to clients via [WithMetrics].
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	authTotal       *prometheus.CounterVec
}

// NewMetrics creates the client collectors and registers them with reg.
// Collectors already registered by another client are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "saur_api_requests_total",
				Help: "Total number of SAUR API requests (by endpoint and status).",
			},
			[]string{"endpoint", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "saur_api_request_duration_seconds",
				Help:    "Duration of SAUR API requests in seconds.",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
			},
			[]string{"endpoint"},
		),
		authTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "saur_api_authentications_total",
				Help: "Total number of SAUR authentication round-trips (by result).",
			},
			[]string{"result"},
		),
	}

	if reg == nil {
		return m, nil
	}

	var err error
	if m.requestsTotal, err = register(reg, m.requestsTotal); err != nil {
		return nil, err
	}

	if m.requestDuration, err = register(reg, m.requestDuration); err != nil {
		return nil, err
	}

	if m.authTotal, err = register(reg, m.authTotal); err != nil {
		return nil, err
	}

	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}

		return c, err
	}

	return c, nil
}

func (m *Metrics) observeRequest(endpoint string, status int, start time.Time) {
	if m == nil {
		return
	}

	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}

	m.requestsTotal.WithLabelValues(endpoint, label).Inc()
	m.requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

func (m *Metrics) observeAuth(err error) {
	if m == nil {
		return
	}

	result := "success"
	if err != nil {
		result = "failure"
	}

	m.authTotal.WithLabelValues(result).Inc()
}
