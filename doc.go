// Package client provides an HTTP client for the SAUR water-utility API.
//
// The client wraps [github.com/go-resty/resty/v2] with bearer-token
// authentication, reactive token refresh, transport retries and pluggable
// logging. Response payloads are returned as decoded JSON objects without
// further interpretation.
//
// # Basic Usage
//
//	c := client.New("login", "password",
//	    client.WithSectionID("123456"),
//	    client.WithRequestTimeout(10*time.Second),
//	)
//	defer c.Close()
//
//	data, err := c.GetMonthlyData(ctx, 2024, 9)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// [WithClient] runs a function with a client that is closed on every exit
// path:
//
//	err := client.WithClient(ctx, login, password, func(ctx context.Context, c *client.Client) error {
//	    points, err := c.GetDeliveryPointsData(ctx)
//	    ...
//	})
//
// # Configuration
//
// All configuration is supplied as [Option] functions passed to [New].
// Invalid values are silently ignored and the default is retained;
// all configuration is validated when the session is created on the first
// request.
//
// # Authentication
//
// The first request authenticates with the login and password unless a token
// was supplied with [WithToken]. The section subscription identifier returned
// by authentication is used in the data endpoints unless one was supplied with
// [WithSectionID]. Token expiry is not tracked: when a data endpoint answers
// 401 the client waits, re-authenticates and retries, up to [WithMaxRetries]
// attempts with a delay of factor * 2^attempt (see [WithBackoffFactor]).
// Concurrent authentications are coalesced into one round-trip.
//
// # Errors
//
// Rejected credentials are reported as [*AuthenticationError], failure
// statuses and exhausted re-authentication as [*APIRequestError], and
// unparseable bodies as [*APIResponseError]. Transport errors are returned
// wrapped with the request method and path only.
//
// # Retry Behaviour
//
// Independently of re-authentication, [DefaultRetryPolicy] retries transient
// connection errors. Context cancellation, deadline exceeded, DNS resolution
// errors and HTTP failure statuses are never retried. Supply a custom
// function via [WithTransportRetryPolicy] to override this behaviour.
//
// # Logging and Metrics
//
// Implement [RequestLogger] and supply it via [WithRequestLogger] to
// integrate with your logging library, or use [NewZapLogger]. The default
// [NoopLogger] discards all log output. Tokens and passwords are never logged.
// Prometheus collectors are recorded when [WithMetrics] is supplied.
package client
