// Package travio implements the live and mock clients for the Travio
// travel-booking REST API.
package travio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tripdesk/travio-gateway/internal/api/metrics"
	"github.com/tripdesk/travio-gateway/internal/core/domain"
	"github.com/tripdesk/travio-gateway/internal/core/ports"
)

const (
	// connectTimeout bounds TCP connection establishment; readTimeout bounds
	// the whole exchange and is deliberately long to tolerate slow upstream
	// search operations.
	connectTimeout = 10 * time.Second
	readTimeout    = 30 * time.Second

	// defaultExpiresIn is assumed when the auth response omits expires_in.
	defaultExpiresIn = 3600

	// expiryMargin keeps a safety margin against clock skew and network
	// latency: tokens are considered expired at 90% of their declared TTL.
	expiryMargin = 0.9
)

// Options configures a live Client.
type Options struct {
	BaseURL  string
	ID       int
	Key      string
	Language string
	// TokenStore is optional; when set, a still-valid token survives
	// process restarts.
	TokenStore ports.TokenStore
	Logger     zerolog.Logger
}

// Client is the live Travio API client. It owns the cached bearer token and
// serializes refresh attempts so concurrent callers needing a fresh token
// trigger exactly one authentication round-trip.
type Client struct {
	http     *http.Client
	baseURL  string
	id       int
	key      string
	language string
	store    ports.TokenStore
	log      zerolog.Logger

	mu    sync.Mutex
	token domain.Token
}

var _ ports.Upstream = (*Client)(nil)

// NewClient builds a live client with the fixed connect/read timeouts.
func NewClient(opts Options) *Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
	}
	return &Client{
		http: &http.Client{
			Timeout:   readTimeout,
			Transport: transport,
		},
		baseURL:  opts.BaseURL,
		id:       opts.ID,
		key:      opts.Key,
		language: opts.Language,
		store:    opts.TokenStore,
		log:      opts.Logger,
	}
}

// Close releases idle pooled connections.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// Authenticate returns a valid bearer token. The whole check-then-refresh
// sequence runs under a single mutex: late arrivals observe the token
// written by the first refresher instead of issuing redundant auth calls.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UTC()
	if c.token.Valid(now) {
		return c.token.Value, nil
	}

	if c.store != nil {
		if tok, err := c.store.Load(ctx); err == nil && tok.Valid(now) {
			c.token = tok
			return tok.Value, nil
		}
	}

	c.log.Info().Msg("requesting travio auth token")
	status, raw, err := c.do(ctx, http.MethodPost, "/auth", nil, map[string]any{"id": c.id, "key": c.key}, "")
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		return "", fmt.Errorf("travio auth: %w", err)
	}
	if status != http.StatusOK {
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		return "", &domain.AuthError{StatusCode: status, Body: string(raw)}
	}

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		return "", fmt.Errorf("travio auth: decode response: %w", err)
	}
	value, _ := data["token"].(string)
	if value == "" {
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		return "", &domain.AuthError{StatusCode: status, Body: string(raw)}
	}

	expiresIn := float64(defaultExpiresIn)
	if v, ok := data["expires_in"].(float64); ok && v > 0 {
		expiresIn = v
	}
	c.token = domain.Token{
		Value:  value,
		Expiry: now.Add(time.Duration(int(expiresIn*expiryMargin)) * time.Second),
	}
	c.persistToken(ctx)
	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	return value, nil
}

// Login forwards upstream user credentials and, on success, overwrites the
// cached token with the enriched session token. When the response omits
// expires_in the token has no tracked expiry and stays valid until the next
// login or auth call.
func (c *Client) Login(ctx context.Context, credentials map[string]any) (map[string]any, error) {
	data, err := c.request(ctx, http.MethodPost, "/login", nil, credentials)
	if err != nil {
		var re *domain.RequestError
		if errors.As(err, &re) {
			return nil, &domain.AuthError{StatusCode: re.StatusCode, Body: re.Body}
		}
		return nil, err
	}

	if value, ok := data["token"].(string); ok && value != "" {
		tok := domain.Token{Value: value}
		if v, ok := data["expires_in"].(float64); ok && v > 0 {
			tok.Expiry = time.Now().UTC().Add(time.Duration(int(v*expiryMargin)) * time.Second)
		}
		c.mu.Lock()
		c.token = tok
		c.persistToken(ctx)
		c.mu.Unlock()
	}
	return data, nil
}

// --- Profile ---

func (c *Client) GetProfile(ctx context.Context) (map[string]any, error) {
	return c.request(ctx, http.MethodGet, "/profile", nil, nil)
}

// --- CRM ---

func (c *Client) SearchClients(ctx context.Context, params map[string]string) (map[string]any, error) {
	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}
	return c.request(ctx, http.MethodGet, "/rest/master-data", values, nil)
}

func (c *Client) GetClient(ctx context.Context, clientID int) (map[string]any, error) {
	return c.request(ctx, http.MethodGet, "/rest/master-data/"+strconv.Itoa(clientID), nil, nil)
}

func (c *Client) CreateClient(ctx context.Context, payload map[string]any) (map[string]any, error) {
	return c.request(ctx, http.MethodPost, "/rest/master-data", nil, map[string]any{"data": payload})
}

func (c *Client) UpdateClient(ctx context.Context, clientID int, payload map[string]any) (map[string]any, error) {
	return c.request(ctx, http.MethodPut, "/rest/master-data/"+strconv.Itoa(clientID), nil, map[string]any{"data": payload})
}

func (c *Client) ListCategories(ctx context.Context, page, perPage int) (map[string]any, error) {
	values := url.Values{}
	values.Set("page", strconv.Itoa(page))
	values.Set("per_page", strconv.Itoa(perPage))
	return c.request(ctx, http.MethodGet, "/rest/master-data-categories", values, nil)
}

func (c *Client) ListDestinations(ctx context.Context, page, perPage int) (map[string]any, error) {
	values := url.Values{}
	values.Set("page", strconv.Itoa(page))
	values.Set("per_page", strconv.Itoa(perPage))
	values.Set("sort_by", `[["name","ASC"]]`)
	return c.request(ctx, http.MethodGet, "/rest/geo", values, nil)
}

// --- Booking ---

func (c *Client) BookingSearch(ctx context.Context, payload map[string]any) (map[string]any, error) {
	return c.request(ctx, http.MethodPost, "/booking/search", nil, payload)
}

func (c *Client) BookingResults(ctx context.Context, payload map[string]any) (map[string]any, error) {
	return c.request(ctx, http.MethodPost, "/booking/results", nil, payload)
}

func (c *Client) BookingPicks(ctx context.Context, payload map[string]any) (map[string]any, error) {
	return c.request(ctx, http.MethodPost, "/booking/picks", nil, payload)
}

func (c *Client) CartAdd(ctx context.Context, payload map[string]any) (map[string]any, error) {
	return c.request(ctx, http.MethodPut, "/booking/cart", nil, payload)
}

func (c *Client) CartGet(ctx context.Context, cartID string) (map[string]any, error) {
	return c.request(ctx, http.MethodGet, "/booking/cart/"+url.PathEscape(cartID), nil, nil)
}

func (c *Client) CartRemove(ctx context.Context, payload map[string]any) (map[string]any, error) {
	return c.request(ctx, http.MethodDelete, "/booking/cart", nil, payload)
}

func (c *Client) PlaceReservation(ctx context.Context, cartID string, payload map[string]any) (map[string]any, error) {
	return c.request(ctx, http.MethodPost, "/booking/place/"+url.PathEscape(cartID), nil, payload)
}

func (c *Client) SendQuote(ctx context.Context, reservationID int, payload map[string]any) (map[string]any, error) {
	return c.request(ctx, http.MethodPost, "/tools/print/reservation/"+strconv.Itoa(reservationID), nil, payload)
}

// --- Transport ---

// request performs an authorized upstream call. Non-2xx responses become
// RequestError; transport and decode failures are wrapped as plain errors.
// An empty response body yields an empty object rather than a parse error.
// No retries: a failed call is surfaced immediately.
func (c *Client) request(ctx context.Context, method, path string, params url.Values, body any) (map[string]any, error) {
	token, err := c.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	c.log.Debug().Str("method", method).Str("path", path).Msg("travio request")
	status, raw, err := c.do(ctx, method, path, params, body, token)
	if err != nil {
		return nil, fmt.Errorf("travio %s %s: %w", method, path, err)
	}
	if status >= http.StatusBadRequest {
		c.log.Error().
			Int("status", status).
			Str("path", path).
			Str("body", string(raw)).
			Msg("travio api error")
		return nil, &domain.RequestError{StatusCode: status, Body: string(raw)}
	}
	if len(raw) == 0 {
		return map[string]any{}, nil
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("travio %s %s: decode response: %w", method, path, err)
	}
	return out, nil
}

// do issues one HTTP exchange and records metrics. Token is optional: the
// auth endpoint itself is called without a bearer credential.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body any, token string) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Lang", c.language)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(method, "error").Inc()
		return 0, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(method, "error").Inc()
		return 0, nil, err
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(method, metrics.StatusClass(resp.StatusCode)).Inc()
	metrics.UpstreamRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	return resp.StatusCode, raw, nil
}

// persistToken writes the cached token to the store. Must be called with
// c.mu held. Store failures are logged and otherwise ignored: the in-memory
// token remains authoritative.
func (c *Client) persistToken(ctx context.Context) {
	if c.store == nil {
		return
	}
	if err := c.store.Save(ctx, c.token); err != nil {
		c.log.Warn().Err(err).Msg("failed to persist token")
	}
}
