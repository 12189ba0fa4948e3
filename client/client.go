package client

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
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/welltyped-systems/binsolver-go/config"
	"github.com/welltyped-systems/binsolver-go/internal/circuitbreaker"
	"github.com/welltyped-systems/binsolver-go/internal/logger"
	"github.com/welltyped-systems/binsolver-go/internal/metrics"
	"github.com/welltyped-systems/binsolver-go/model"
	"github.com/welltyped-systems/binsolver-go/sdkerrors"
)

// Version is reported in the default User-Agent.
const Version = "0.1.0"

const (
	healthPath = "/health"
	packPath   = "/v1/pack"

	// APIKeyHeader carries the caller's credential.
	APIKeyHeader = "x-api-key"

	opHealth = "health"
	opPack   = "pack"

	maxResponseBytes = 32 << 20
)

// ErrClosed is wrapped by the TransportError returned from calls made after Close.
var ErrClosed = errors.New("client is closed")

// Client talks to the BinSolver service. It is safe for concurrent use.
type Client struct {
	apiKey    string
	baseURL   string
	timeout   time.Duration
	userAgent string
	logger    zerolog.Logger

	doer  HTTPDoer
	owned *http.Client

	breakerThreshold int
	breakerCooldown  time.Duration
	breaker          *circuitbreaker.CircuitBreaker

	closed atomic.Bool
}

// New creates a Client authenticating with apiKey.
func New(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &sdkerrors.ValidationError{Field: "api_key", Message: "must not be empty"}
	}

	c := &Client{
		apiKey:    apiKey,
		baseURL:   config.DefaultBaseURL,
		timeout:   config.DefaultTimeout,
		userAgent: "binsolver-go/" + Version,
		logger:    logger.Component("binsolver-client"),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := validateBaseURL(c.baseURL); err != nil {
		return nil, err
	}
	if c.timeout <= 0 {
		return nil, &sdkerrors.ValidationError{Field: "timeout", Message: "must be greater than 0"}
	}

	if c.doer == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		c.owned = &http.Client{Transport: transport, Timeout: c.timeout}
		c.doer = c.owned
	}
	if c.breakerThreshold > 0 {
		cfg := circuitbreaker.DefaultConfig()
		cfg.Name = "binsolver-pack"
		cfg.FailureThreshold = c.breakerThreshold
		if c.breakerCooldown > 0 {
			cfg.Cooldown = c.breakerCooldown
		}
		cfg.ShouldTrip = shouldTrip
		cfg.Logger = &c.logger
		c.breaker = circuitbreaker.New(cfg)
	}
	return c, nil
}

// NewFromConfig creates a Client from cfg. Options are applied after the
// configured values, so they take precedence.
func NewFromConfig(cfg config.ClientConfig, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base := []Option{
		WithBaseURL(cfg.BaseURL),
		WithTimeout(cfg.Timeout),
	}
	if cfg.CircuitBreakerThreshold > 0 {
		base = append(base, WithCircuitBreaker(cfg.CircuitBreakerThreshold, cfg.CircuitBreakerCooldown))
	}
	return New(cfg.APIKey, append(base, opts...)...)
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &sdkerrors.ValidationError{Field: "base_url", Message: fmt.Sprintf("invalid URL %q", raw)}
	}
	return nil
}

// BaseURL returns the service endpoint.
func (c *Client) BaseURL() string { return c.baseURL }

// Timeout returns the per-call upper bound.
func (c *Client) Timeout() time.Duration { return c.timeout }

// BreakerStats is a snapshot of the circuit breaker guarding Pack.
type BreakerStats struct {
	// State is "closed", "open" or "half-open"
	State string
	// ConsecutiveFailures counts tripping failures since the last success
	ConsecutiveFailures int
	// Rejected counts calls refused while open
	Rejected int
	OpenedAt time.Time
}

// BreakerStats reports the circuit breaker state. ok is false when the
// client was built without WithCircuitBreaker.
func (c *Client) BreakerStats() (stats BreakerStats, ok bool) {
	if c.breaker == nil {
		return BreakerStats{}, false
	}
	s := c.breaker.GetStats()
	return BreakerStats{
		State:               s.State,
		ConsecutiveFailures: s.FailureCount,
		Rejected:            s.Rejected,
		OpenedAt:            s.OpenedAt,
	}, true
}

// Health reports whether the service answered GET /health with 200 "ok".
// Every failure, including a closed client, yields false.
func (c *Client) Health(ctx context.Context) bool {
	start := time.Now()
	status, _, body, err := c.do(ctx, opHealth, http.MethodGet, healthPath, nil)
	healthy := err == nil && status == http.StatusOK && strings.TrimSpace(string(body)) == "ok"

	outcome := metrics.OutcomeSuccess
	switch {
	case err != nil:
		outcome = sdkerrors.KindOf(err).String()
	case !healthy:
		outcome = metrics.OutcomeUnhealthy
	}
	metrics.RecordClientRequest(opHealth, outcome, time.Since(start))
	return healthy
}

// Pack validates req, submits it in a single POST /v1/pack and decodes the
// result. Errors are *sdkerrors.ValidationError (before any network call),
// *sdkerrors.TransportError, *sdkerrors.APIError or *sdkerrors.DecodeError.
func (c *Client) Pack(ctx context.Context, req *model.PackRequest) (*model.PackResponse, error) {
	if req == nil {
		err := &sdkerrors.ValidationError{Message: "request must not be nil"}
		metrics.RecordClientRequest(opPack, sdkerrors.KindValidation.String(), 0)
		return nil, err
	}
	payload, err := req.Serialize()
	if err != nil {
		metrics.RecordClientRequest(opPack, sdkerrors.KindValidation.String(), 0)
		return nil, err
	}
	return c.pack(ctx, payload)
}

// PackRaw submits payload without model validation. It accepts []byte or
// json.RawMessage holding a JSON document, or any value encoding/json can
// marshal (e.g. map[string]any). The response is decoded like Pack's.
func (c *Client) PackRaw(ctx context.Context, payload any) (*model.PackResponse, error) {
	body, err := rawPayload(payload)
	if err != nil {
		metrics.RecordClientRequest(opPack, sdkerrors.KindValidation.String(), 0)
		return nil, err
	}
	return c.pack(ctx, body)
}

func rawPayload(payload any) ([]byte, error) {
	var body []byte
	switch p := payload.(type) {
	case nil:
		return nil, &sdkerrors.ValidationError{Message: "payload must not be nil"}
	case []byte:
		body = p
	case json.RawMessage:
		body = p
	default:
		encoded, err := json.Marshal(p)
		if err != nil {
			return nil, &sdkerrors.ValidationError{Message: fmt.Sprintf("payload is not JSON-encodable: %v", err)}
		}
		body = encoded
	}
	if !json.Valid(body) {
		return nil, &sdkerrors.ValidationError{Message: "payload is not valid JSON"}
	}
	return body, nil
}

func (c *Client) pack(ctx context.Context, payload []byte) (*model.PackResponse, error) {
	start := time.Now()

	var resp *model.PackResponse
	call := func(ctx context.Context) error {
		status, header, body, err := c.do(ctx, opPack, http.MethodPost, packPath, payload)
		if err != nil {
			return err
		}
		if status < 200 || status > 299 {
			return sdkerrors.NewAPIError(status, header, body)
		}
		resp, err = model.DecodePackResponse(status, body)
		return err
	}

	var err error
	if c.breaker != nil && !c.closed.Load() {
		err = c.breaker.Execute(ctx, call)
	} else {
		err = call(ctx)
	}

	if err != nil {
		outcome := sdkerrors.KindOf(err).String()
		if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
			outcome = metrics.OutcomeCircuitOpen
		}
		if sdkerrors.KindOf(err) == sdkerrors.KindUnknown {
			// the breaker refused or the context was already done
			err = &sdkerrors.TransportError{
				Op:      opPack,
				URL:     c.baseURL + packPath,
				Timeout: errors.Is(err, context.DeadlineExceeded),
				Err:     err,
			}
			if outcome != metrics.OutcomeCircuitOpen {
				outcome = sdkerrors.KindTransport.String()
			}
		}
		metrics.RecordClientRequest(opPack, outcome, time.Since(start))
		return nil, err
	}
	metrics.RecordClientRequest(opPack, metrics.OutcomeSuccess, time.Since(start))
	return resp, nil
}

// do performs one HTTP exchange bounded by the configured timeout and
// returns the status, headers and body.
func (c *Client) do(ctx context.Context, op, method, path string, payload []byte) (int, http.Header, []byte, error) {
	target := c.baseURL + path
	if c.closed.Load() {
		return 0, nil, nil, &sdkerrors.TransportError{Op: op, URL: target, Err: ErrClosed}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return 0, nil, nil, &sdkerrors.TransportError{Op: op, URL: target, Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set(APIKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(sdkerrors.RequestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	res, err := c.doer.Do(req)
	if err != nil {
		c.logger.Debug().
			Str("operation", op).
			Str("method", method).
			Str("path", path).
			Str("request_id", requestID).
			Dur("duration", time.Since(start)).
			Err(err).
			Msg("binsolver request failed")
		return 0, nil, nil, &sdkerrors.TransportError{Op: op, URL: target, Timeout: isTimeout(ctx, err), Err: err}
	}
	defer func() { _ = res.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, nil, &sdkerrors.TransportError{Op: op, URL: target, Timeout: isTimeout(ctx, err), Err: err}
	}

	c.logger.Debug().
		Str("operation", op).
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Int("status", res.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("binsolver request completed")
	return res.StatusCode, res.Header, data, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// shouldTrip counts transport failures and retryable API errors against the
// breaker. Rejected input and malformed bodies mean the service is up.
func shouldTrip(err error) bool {
	if errors.Is(err, ErrClosed) {
		return false
	}
	var apiErr *sdkerrors.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	return sdkerrors.KindOf(err) == sdkerrors.KindTransport
}

// Close releases idle connections of the owned transport. It is idempotent;
// later calls fail with a TransportError wrapping ErrClosed.
func (c *Client) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	if c.owned != nil {
		c.owned.CloseIdleConnections()
	}
	return nil
}
