package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// getJSON performs an authenticated GET and decodes the body as a JSON object.
//
// pathFormat receives the escaped section identifier on every attempt, so an
// identifier learned during authentication is used. A 401 triggers a
// re-authentication after backoffFactor * 2^attempt; the request is attempted
// at most maxRetries times.
func (c *Client) getJSON(ctx context.Context, endpoint, pathFormat string, query map[string]string) (map[string]any, error) {
	session, err := c.restyClient()
	if err != nil {
		return nil, err
	}

	token := c.Token()
	if token == "" {
		if token, err = c.authenticate(ctx); err != nil {
			return nil, err
		}
	}

	maxRetries := c.options.maxRetries

	for attempt := 0; ; attempt++ {
		path := fmt.Sprintf(pathFormat, url.PathEscape(c.SectionID()))

		resp, err := c.send(ctx, session, endpoint, path, query, token)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode() == http.StatusUnauthorized {
			if attempt >= maxRetries-1 {
				c.options.requestLogger.Errorf("GET %s still unauthorized after %d attempts", path, attempt+1)
				return nil, newAPIRequestError(resp, path, ErrAuthExhausted)
			}

			delay := c.options.backoffFactor << attempt
			c.options.requestLogger.Warnf("GET %s returned 401, re-authenticating in %v (attempt %d/%d)",
				path, delay, attempt+1, maxRetries)

			if err := c.sleep(ctx, delay); err != nil {
				return nil, err
			}

			if token, err = c.authenticate(ctx); err != nil {
				return nil, err
			}

			continue
		}

		if !resp.IsSuccess() {
			return nil, newAPIRequestError(resp, path, nil)
		}

		return decodeObject(resp, path)
	}
}

func (c *Client) send(ctx context.Context, session *resty.Client, endpoint, path string, query map[string]string, token string) (*resty.Response, error) {
	start := time.Now()

	req := session.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader(requestIDHeader, uuid.NewString())

	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	resp, err := req.Get(path)

	c.options.metrics.observeRequest(endpoint, statusCode(resp), start)

	if err != nil {
		c.options.requestLogger.Errorf("GET %s failed: %v", path, err)
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}

	c.options.requestLogger.Debugf("GET %s returned %d in %v", path, resp.StatusCode(), time.Since(start))

	return resp, nil
}

func newAPIRequestError(resp *resty.Response, path string, cause error) *APIRequestError {
	return &APIRequestError{
		Method:     http.MethodGet,
		URL:        path,
		StatusCode: resp.StatusCode(),
		Body:       string(resp.Body()),
		cause:      cause,
	}
}

func decodeObject(resp *resty.Response, path string) (map[string]any, error) {
	body := resp.Body()

	if len(body) == 0 {
		return nil, &APIResponseError{URL: path, StatusCode: resp.StatusCode(), cause: errors.New("empty body")}
	}

	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, &APIResponseError{URL: path, StatusCode: resp.StatusCode(), Body: string(body), cause: err}
	}

	if data == nil {
		return nil, &APIResponseError{
			URL:        path,
			StatusCode: resp.StatusCode(),
			Body:       string(body),
			cause:      errors.New("body is not a JSON object"),
		}
	}

	return data, nil
}
