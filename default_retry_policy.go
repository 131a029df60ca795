package client

import (
	"context"
	"errors"
	"net"

	"github.com/go-resty/resty/v2"
)

// DefaultRetryPolicy is the default transport retry condition used by
// [Client]. It retries transient connection errors only. It does not retry on
// context cancellation, deadline exceeded, or DNS resolution failures, and it
// never retries on an HTTP status: a 401 is handled by the re-authentication
// loop and every other failure status is returned to the caller as an
// [*APIRequestError].
//
// Supply a custom function via [WithTransportRetryPolicy] to override this
// behaviour.
func DefaultRetryPolicy(_ *resty.Response, err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return false
	}

	return true
}
