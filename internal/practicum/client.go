// Package practicum is the client for the homework review status API.
package practicum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"homework_bot/internal/homework"
)

// DefaultEndpoint is the production homework status endpoint.
const DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

const maxBodySize = 5 * 1024 * 1024

// Fetch errors.
var (
	ErrTransport   = errors.New("api request failed")
	ErrUnavailable = errors.New("api unavailable")
)

// UnavailableError reports a non-2xx response from the API.
type UnavailableError struct {
	StatusCode int
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s: status %d", ErrUnavailable, e.StatusCode)
}

// Is lets errors.Is(err, ErrUnavailable) match any status code.
func (e *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches homework statuses on behalf of one API token.
type Client struct {
	client   HTTPClient
	endpoint string
	token    string
	timeout  time.Duration
}

// New creates a Client for the given endpoint and OAuth token.
func New(endpoint, token string, client HTTPClient) *Client {
	return &Client{
		client:   client,
		endpoint: endpoint,
		token:    token,
		timeout:  30 * time.Second,
	}
}

// SetTimeout overrides the default 30-second request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	c.timeout = d
}

// Fetch requests statuses changed since the given unix timestamp and returns
// the decoded JSON body. The payload shape is not checked here.
func (c *Client) Fetch(ctx context.Context, since int64) (any, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("from_date", strconv.FormatInt(since, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UnavailableError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode json: %w", homework.ErrMalformedResponse, err)
	}
	return payload, nil
}
