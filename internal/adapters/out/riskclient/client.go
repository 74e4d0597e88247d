// Package riskclient calls the remote risk prediction service.
//
// Each attempt carries its own timeout. Transient failures (transport errors,
// timeouts, 429 and 5xx gateway-class statuses) are retried with exponential
// backoff up to a fixed number of total attempts; anything else fails at once.
// The client never substitutes a score: callers decide what to do on error.
package riskclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"logistics/internal/core/ports"
	"logistics/internal/pkg/metrics"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	predictRiskPath = "/predict-risk"
	maxBodyBytes    = 1 << 20
	maxErrorBody    = 512

	tracerName = "logistics/riskclient"
)

// MaxAttemptsLimit bounds Config.MaxAttempts.
const MaxAttemptsLimit = 10

var ErrInvalidConfig = errors.New("invalid risk client config")

type Config struct {
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int
	BackoffBase time.Duration
}

func DefaultConfig() Config {
	return Config{
		BaseURL:     "http://127.0.0.1:8001",
		Timeout:     2 * time.Second,
		MaxAttempts: 3,
		BackoffBase: 500 * time.Millisecond,
	}
}

func (c Config) validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: base url %q must be absolute", ErrInvalidConfig, c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	if c.MaxAttempts < 1 || c.MaxAttempts > MaxAttemptsLimit {
		return fmt.Errorf("%w: attempts must be within [1, %d], got %d", ErrInvalidConfig, MaxAttemptsLimit, c.MaxAttempts)
	}
	if c.BackoffBase < 0 {
		return fmt.Errorf("%w: backoff base must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Client implements ports.RiskScorer and ports.RiskProber over HTTP.
type Client struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
}

var (
	_ ports.RiskScorer = (*Client)(nil)
	_ ports.RiskProber = (*Client)(nil)
)

type Option func(*Client)

// WithHTTPClient replaces the default otelhttp-instrumented client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		c.tracer = tp.Tracer(tracerName)
	}
}

func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:     cfg,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "risk_client")

	return c, nil
}

type predictRiskRequest struct {
	OrderID  string `json:"order_id"`
	DriverID string `json:"driver_id"`
	Reason   string `json:"reason"`
}

type predictRiskResponse struct {
	RiskScore *float64 `json:"risk_score"`
}

// Score posts req to /predict-risk. A response without risk_score yields 0.
// The returned value is not range-checked.
func (c *Client) Score(ctx context.Context, req ports.RiskRequest) (float64, error) {
	ctx, span := c.tracer.Start(ctx, "riskclient.Score", trace.WithAttributes(
		attribute.String("order.id", req.OrderID),
		attribute.String("driver.id", req.DriverID),
	))
	defer span.End()

	body, err := json.Marshal(predictRiskRequest{
		OrderID:  req.OrderID,
		DriverID: req.DriverID,
		Reason:   req.Reason,
	})
	if err != nil {
		return 0, err
	}

	attempts := 0
	operation := func() (float64, error) {
		attempts++
		score, err := c.predict(ctx, body)
		switch {
		case err == nil:
			c.metrics.ObserveRemoteAttempt(metrics.AttemptSuccess)
			return score, nil
		case isRetryable(err):
			c.metrics.ObserveRemoteAttempt(metrics.AttemptRetryable)
			return 0, err
		default:
			c.metrics.ObserveRemoteAttempt(metrics.AttemptPermanent)
			return 0, backoff.Permanent(err)
		}
	}
	notify := func(err error, wait time.Duration) {
		c.logger.WarnContext(ctx, "risk scorer attempt failed, retrying",
			"order_id", req.OrderID,
			"attempt", attempts,
			"max_attempts", c.cfg.MaxAttempts,
			"wait", wait,
			"error", err,
		)
	}

	score, err := backoff.RetryNotifyWithData(operation, c.newBackOff(ctx), notify)
	span.SetAttributes(attribute.Int("risk.attempts", attempts))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "risk scoring failed")
		return 0, fmt.Errorf("risk scorer failed after %d attempt(s): %w", attempts, err)
	}

	span.SetAttributes(attribute.Float64("risk.score", score))
	return score, nil
}

// Ping checks that the risk scorer answers on its root path.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Body: readErrorBody(resp.Body)}
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	return nil
}

func (c *Client) newBackOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.cfg.BackoffBase
	exp.Multiplier = 2
	exp.RandomizationFactor = 0
	exp.MaxInterval = c.cfg.BackoffBase << (c.cfg.MaxAttempts - 1)
	exp.MaxElapsedTime = 0

	retries := uint64(c.cfg.MaxAttempts - 1)
	return backoff.WithContext(backoff.WithMaxRetries(exp, retries), ctx)
}

// predict performs a single attempt under its own timeout.
func (c *Client) predict(ctx context.Context, body []byte) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+predictRiskPath, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("call risk scorer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, &StatusError{StatusCode: resp.StatusCode, Body: readErrorBody(resp.Body)}
	}

	var out predictRiskResponse
	if err = json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&out); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, fmt.Errorf("read risk scorer response: %w", err)
		}
		return 0, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	if out.RiskScore == nil {
		return 0, nil
	}
	return *out.RiskScore, nil
}

func readErrorBody(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	return strings.TrimSpace(string(raw))
}
