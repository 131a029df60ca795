package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const (
	authPath        = "/admin/v2/auth"
	requestIDHeader = "X-Request-Id"
)

type authRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	ClientID      string `json:"client_id"`
	GrantType     string `json:"grant_type"`
	Scope         string `json:"scope"`
	IsRecaptchaV3 bool   `json:"isRecaptchaV3"`
	CaptchaToken  bool   `json:"captchaToken"`
}

// authResponse accepts the token either as a plain string or as an object
// carrying access_token.
type authResponse struct {
	Token            json.RawMessage `json:"token"`
	DefaultSectionID json.RawMessage `json:"defaultSectionId"`
}

// Authenticate exchanges the client credentials for a bearer token and stores
// it, replacing any previous token. The section identifier returned by the API
// is kept unless one was configured with [WithSectionID].
//
// Rejected credentials and malformed responses are reported as
// [*AuthenticationError]. Concurrent calls share a single round-trip; a caller
// whose ctx ends first returns ctx.Err() without cancelling it for the others.
func (c *Client) Authenticate(ctx context.Context) error {
	_, err := c.authenticate(ctx)
	return err
}

// authenticate joins the in-flight authentication or starts one. The shared
// round-trip is detached from the caller's cancellation and bounded by the
// session timeout; each caller stops waiting when its own ctx is done.
func (c *Client) authenticate(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ch := c.authGroup.DoChan("authenticate", func() (any, error) {
		return c.fetchToken(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}

		if res.Shared {
			c.options.requestLogger.Debugf("SAUR authentication shared with a concurrent caller")
		}

		return res.Val.(string), nil
	}
}

func (c *Client) fetchToken(ctx context.Context) (string, error) {
	session, err := c.restyClient()
	if err != nil {
		return "", err
	}

	if c.login == "" || c.password == "" {
		return "", &AuthenticationError{Reason: "login and password must be set"}
	}

	start := time.Now()

	resp, err := session.R().
		SetContext(ctx).
		SetHeader(requestIDHeader, uuid.NewString()).
		SetBody(authRequest{
			Username:      c.login,
			Password:      c.password,
			ClientID:      "frontjs-client",
			GrantType:     "password",
			Scope:         "api-scope",
			IsRecaptchaV3: true,
			CaptchaToken:  true,
		}).
		Post(authPath)

	c.options.metrics.observeRequest("auth", statusCode(resp), start)

	if err != nil {
		c.options.metrics.observeAuth(err)
		c.options.requestLogger.Errorf("SAUR authentication request failed: %v", err)
		return "", fmt.Errorf("POST %s: %w", authPath, err)
	}

	token, sectionID, err := parseAuthResponse(resp)
	c.options.metrics.observeAuth(err)

	if err != nil {
		c.options.requestLogger.Warnf("SAUR authentication rejected: %v", err)
		return "", err
	}

	c.mu.Lock()
	c.token = token
	if c.sectionID == "" {
		c.sectionID = sectionID
	}
	c.mu.Unlock()

	c.options.requestLogger.Debugf("SAUR authentication succeeded in %v", time.Since(start))

	return token, nil
}

func parseAuthResponse(resp *resty.Response) (token, sectionID string, err error) {
	body := resp.Body()

	if !resp.IsSuccess() {
		return "", "", &AuthenticationError{
			StatusCode: resp.StatusCode(),
			Body:       string(body),
			Reason:     errorMessageFromBody(string(body)),
		}
	}

	var payload authResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", "", &AuthenticationError{
			StatusCode: resp.StatusCode(),
			Body:       string(body),
			Reason:     "malformed response: " + err.Error(),
		}
	}

	token, err = decodeToken(payload.Token)
	if err != nil {
		return "", "", &AuthenticationError{
			StatusCode: resp.StatusCode(),
			Body:       string(body),
			Reason:     err.Error(),
		}
	}

	return token, decodeScalar(payload.DefaultSectionID), nil
}

func decodeToken(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", errors.New("response has no token")
	}

	var token string
	if err := json.Unmarshal(raw, &token); err == nil {
		if token == "" {
			return "", errors.New("response has an empty token")
		}
		return token, nil
	}

	var nested struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(raw, &nested); err != nil {
		return "", fmt.Errorf("token has unexpected shape: %w", err)
	}

	if nested.AccessToken == "" {
		return "", errors.New("response has an empty access_token")
	}

	return nested.AccessToken, nil
}

// decodeScalar returns a JSON string or number as text. Anything else yields
// an empty string.
func decodeScalar(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}

	return ""
}

func statusCode(resp *resty.Response) int {
	if resp == nil || resp.RawResponse == nil {
		return 0
	}

	return resp.StatusCode()
}
