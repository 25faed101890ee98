// Package upstream provides the HTTP client for the MedPlant upstream
// service. All responses are normalized through domain/gateway before
// they reach the handlers.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medplant/plantgate/adapters/metrics"
	"github.com/medplant/plantgate/domain/gateway"
	"github.com/medplant/plantgate/domain/session"
	"github.com/medplant/plantgate/ports"
)

// maxResponseBytes caps upstream response bodies.
const maxResponseBytes = 10 << 20

// Config contains configuration for the upstream client.
type Config struct {
	BaseURL         string
	Timeout         time.Duration
	IdentifyTimeout time.Duration
	MaxIdleConns    int
	IdleConnTimeout time.Duration
}

// Client forwards requests to the MedPlant upstream service.
type Client struct {
	client         *http.Client // buffered requests
	identifyClient *http.Client // model inference, long timeout
	baseURL        string
	logger         zerolog.Logger
	metrics        *metrics.Collector
}

// New creates a new upstream HTTP client.
func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("base URL must be http(s), got %q", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	identifyTimeout := cfg.IdentifyTimeout
	if identifyTimeout == 0 {
		identifyTimeout = 60 * time.Second
	}

	maxIdleConns := cfg.MaxIdleConns
	if maxIdleConns == 0 {
		maxIdleConns = 100
	}

	idleConnTimeout := cfg.IdleConnTimeout
	if idleConnTimeout == 0 {
		idleConnTimeout = 90 * time.Second
	}

	transport := &http.Transport{
		MaxIdleConns:        maxIdleConns,
		MaxIdleConnsPerHost: maxIdleConns,
		IdleConnTimeout:     idleConnTimeout,
	}

	return &Client{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		identifyClient: &http.Client{
			Transport: transport,
			Timeout:   identifyTimeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  logger,
	}, nil
}

// SetMetrics enables Prometheus instrumentation of upstream calls.
func (c *Client) SetMetrics(m *metrics.Collector) {
	c.metrics = m
}

// Login exchanges credentials for a bearer token. The upstream speaks
// the OAuth2 password flow: form-encoded username/password fields.
func (c *Client) Login(ctx context.Context, email, password string) (*ports.AuthSession, error) {
	form := url.Values{
		"username": {email},
		"password": {password},
	}

	payload, err := c.do(ctx, c.client, "login", http.MethodPost, pathLogin, "",
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}

	return c.parseAuthSession("login", payload)
}

// Signup registers a new user and returns a bearer token.
func (c *Client) Signup(ctx context.Context, req session.SignupRequest) (*ports.AuthSession, error) {
	// Upstream field names are snake_case
	body, err := json.Marshal(struct {
		FirstName       string `json:"first_name"`
		LastName        string `json:"last_name"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirm_password"`
	}{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return nil, gateway.ErrInternal()
	}

	payload, err := c.do(ctx, c.client, "signup", http.MethodPost, pathSignup, "",
		"application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	return c.parseAuthSession("signup", payload)
}

// Logout notifies the upstream that the session ended. Best-effort.
func (c *Client) Logout(ctx context.Context, token session.Token) error {
	_, err := c.do(ctx, c.client, "logout", http.MethodPost, pathLogout, token, "", nil)
	return err
}

// ValidateSession resolves the current user from a bearer token.
func (c *Client) ValidateSession(ctx context.Context, token session.Token) (json.RawMessage, error) {
	return c.do(ctx, c.client, "validate", http.MethodGet, pathValidate, token, "", nil)
}

// Identify streams a multipart image body through to the model
// endpoint. The inbound Content-Type is forwarded unchanged so the
// multipart boundary survives; the body is never re-encoded.
func (c *Client) Identify(ctx context.Context, token session.Token, contentType string, body io.Reader) (json.RawMessage, error) {
	return c.do(ctx, c.identifyClient, "identify", http.MethodPost, pathIdentify, token, contentType, body)
}

// Identifications lists the user's recent identifications.
func (c *Client) Identifications(ctx context.Context, token session.Token) (json.RawMessage, error) {
	return c.do(ctx, c.client, "identifications", http.MethodGet, pathIdentifications, token, "", nil)
}

// DeleteIdentification deletes an identification by id.
func (c *Client) DeleteIdentification(ctx context.Context, token session.Token, id string) (json.RawMessage, error) {
	return c.do(ctx, c.client, "delete_identification", http.MethodDelete, pathIdentification(id), token, "", nil)
}

// ToggleFavorite flips the favorite flag of an identification.
func (c *Client) ToggleFavorite(ctx context.Context, token session.Token, id string) (json.RawMessage, error) {
	return c.do(ctx, c.client, "toggle_favorite", http.MethodPost, pathFavorite(id), token, "", nil)
}

// PlantDetails looks up a plant by scientific name.
func (c *Client) PlantDetails(ctx context.Context, token session.Token, scientificName string) (json.RawMessage, error) {
	return c.do(ctx, c.client, "plant_details", http.MethodGet, pathPlantDetails(scientificName), token, "", nil)
}

// SavedPlants lists the user's saved plants.
func (c *Client) SavedPlants(ctx context.Context, token session.Token) (json.RawMessage, error) {
	return c.do(ctx, c.client, "saved_plants", http.MethodGet, pathSavedPlants, token, "", nil)
}

// UserStats returns identification counts and accuracy rate.
func (c *Client) UserStats(ctx context.Context, token session.Token) (json.RawMessage, error) {
	return c.do(ctx, c.client, "user_stats", http.MethodGet, pathUserStats, token, "", nil)
}

// UserProgress returns identification/favorite progress counters.
func (c *Client) UserProgress(ctx context.Context, token session.Token) (json.RawMessage, error) {
	return c.do(ctx, c.client, "user_progress", http.MethodGet, pathUserProgress, token, "", nil)
}

// PlantOfTheDay returns a plant picked from the user's history.
func (c *Client) PlantOfTheDay(ctx context.Context, token session.Token) (json.RawMessage, error) {
	return c.do(ctx, c.client, "plant_of_the_day", http.MethodGet, pathPlantOfTheDay, token, "", nil)
}

// ActivityFeed returns the user's recent activity entries.
func (c *Client) ActivityFeed(ctx context.Context, token session.Token) (json.RawMessage, error) {
	return c.do(ctx, c.client, "activity_feed", http.MethodGet, pathActivityFeed, token, "", nil)
}

// HealthCheck verifies the upstream is reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/", nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()

	// Any response (even 404) means upstream is reachable
	return nil
}

// do executes a single upstream call and normalizes the response.
// Transport-level failures map to the generic internal error; the
// cause is logged here, never surfaced to the client.
func (c *Client) do(ctx context.Context, hc *http.Client, op, method, path string, token session.Token, contentType string, body io.Reader) (json.RawMessage, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		c.logger.Error().Err(err).Str("operation", op).Msg("build upstream request")
		return nil, gateway.ErrInternal()
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+string(token))
	}
	req.Header.Set("X-Request-ID", requestID(ctx))

	if c.metrics != nil {
		c.metrics.UpstreamInFlight.Inc()
		defer c.metrics.UpstreamInFlight.Dec()
	}

	resp, err := hc.Do(req)
	if err != nil {
		c.logger.Error().Err(err).
			Str("operation", op).
			Str("method", method).
			Msg("upstream request failed")
		if c.metrics != nil {
			c.metrics.UpstreamErrors.WithLabelValues("network").Inc()
		}
		return nil, gateway.ErrInternal()
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.logger.Error().Err(err).Str("operation", op).Msg("read upstream response")
		if c.metrics != nil {
			c.metrics.UpstreamErrors.WithLabelValues("read").Inc()
		}
		return nil, gateway.ErrInternal()
	}

	if c.metrics != nil {
		c.metrics.UpstreamDuration.
			WithLabelValues(op, strconv.Itoa(resp.StatusCode)).
			Observe(time.Since(start).Seconds())
	}

	payload, err := gateway.Decode(resp.StatusCode, http.StatusText(resp.StatusCode), respBody)
	if err != nil {
		c.logger.Debug().
			Str("operation", op).
			Int("status", resp.StatusCode).
			Dur("duration", time.Since(start)).
			Msg("upstream returned error")
		return nil, err
	}

	c.logger.Debug().
		Str("operation", op).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("upstream request")

	return payload, nil
}

// authResponse is the upstream's login/signup response envelope.
type authResponse struct {
	AccessToken string          `json:"access_token"`
	Message     string          `json:"message"`
	User        json.RawMessage `json:"user"`
}

func (c *Client) parseAuthSession(op string, payload json.RawMessage) (*ports.AuthSession, error) {
	var parsed authResponse
	if err := json.Unmarshal(payload, &parsed); err != nil || parsed.AccessToken == "" {
		// Missing access_token on a 2xx is a broken upstream contract
		c.logger.Error().Str("operation", op).Msg("upstream auth response missing access_token")
		return nil, gateway.ErrInternal()
	}

	return &ports.AuthSession{
		Token:   session.Token(parsed.AccessToken),
		User:    parsed.User,
		Message: parsed.Message,
	}, nil
}

// requestID reuses the inbound request id when present so one id
// traces the whole relay, falling back to a fresh one.
func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

// Ensure interface compliance.
var _ ports.Upstream = (*Client)(nil)
