package eo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"etternabot/internal/etterna"
)

// ErrNotFound is returned when the API has no record for the requested
// user or score.
var ErrNotFound = errors.New("eo: not found")

// Fetcher defines the EtternaOnline operations the bot uses.
type Fetcher interface {
	UserDetails(ctx context.Context, username string) (*User, error)
	RecentScores(ctx context.Context, username string, limit int) ([]*Score, error)
	Score(ctx context.Context, scorekey etterna.Scorekey) (*Score, error)
}

// Client provides access to the EtternaOnline API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ Fetcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New creates an EtternaOnline client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("eo base url required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// UserDetails fetches account details for a username.
func (c *Client) UserDetails(ctx context.Context, username string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("username must not be empty")
	}
	var payload userEnvelope
	if err := c.get(ctx, "/user/"+url.PathEscape(username), nil, &payload); err != nil {
		return nil, err
	}
	return payload.Data.toUser()
}

// RecentScores fetches the user's most recent scores, newest first. The
// listed scores carry no replay data; fetch a score individually for that.
func (c *Client) RecentScores(ctx context.Context, username string, limit int) ([]*Score, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("username must not be empty")
	}
	if limit <= 0 {
		limit = 10
	}
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	var payload scoreListEnvelope
	if err := c.get(ctx, "/user/"+url.PathEscape(username)+"/scores", params, &payload); err != nil {
		return nil, err
	}
	scores := make([]*Score, 0, len(payload.Data))
	for _, resource := range payload.Data {
		score, err := resource.toScore()
		if err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	return scores, nil
}

// Score fetches one score in full, replay included when the server has one.
func (c *Client) Score(ctx context.Context, scorekey etterna.Scorekey) (*Score, error) {
	if !scorekey.Valid() {
		return nil, fmt.Errorf("malformed scorekey %q", scorekey)
	}
	var payload scoreEnvelope
	if err := c.get(ctx, "/score/"+string(scorekey), nil, &payload); err != nil {
		return nil, err
	}
	return payload.Data.toScore()
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse eo url: %w", err)
	}
	if len(params) > 0 {
		endpoint.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	default:
		return fmt.Errorf("eo request %s returned %d (latency=%v)", path, resp.StatusCode, latency)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode eo response: %w", err)
	}
	return nil
}
