// Package client talks to the receivables REST API (/api/clientes and
// /api/contas-receber). It implements port.CustomerAPI and
// port.ReceivableAPI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/boddenberg/ardesk-go/internal/domain"
	"github.com/boddenberg/ardesk-go/internal/infra/observability"
	"github.com/boddenberg/ardesk-go/internal/infra/resilience"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("client")

// Client calls the receivables API with circuit breaker, bulkhead and tracing.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cb         *gobreaker.CircuitBreaker
	bulkhead   *resilience.Bulkhead
	cfg        resilience.Config
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// New creates a new Client.
func New(
	httpClient *http.Client,
	baseURL string,
	cb *gobreaker.CircuitBreaker,
	cfg resilience.Config,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		cb:         cb,
		bulkhead:   resilience.NewBulkhead(cfg.MaxConcurrency),
		cfg:        cfg,
		metrics:    metrics,
		logger:     logger,
	}
}

// call describes one API request.
type call struct {
	operation string
	method    string
	path      string
	body      any
	// out receives the decoded JSON body; nil means the body is ignored.
	out any
}

// do sends req once, or with read retries for GET requests. Every failure is
// returned as *domain.ErrExternalService wrapping ErrNetwork or
// ErrServerRejected.
func (c *Client) do(ctx context.Context, req call) error {
	ctx, span := tracer.Start(ctx, "Client."+req.operation)
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", req.method),
		attribute.String("api.path", req.path),
	)

	start := time.Now()
	defer func() {
		c.metrics.RecordAPIDuration(req.operation, time.Since(start))
	}()

	if err := c.bulkhead.Acquire(ctx); err != nil {
		return c.fail(span, req, &domain.ErrNetwork{Err: err})
	}
	defer c.bulkhead.Release()

	attempt := func() error {
		_, err := c.cb.Execute(func() (any, error) {
			return nil, c.roundTrip(ctx, req)
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return &domain.ErrNetwork{Err: err}
		}
		return err
	}

	var err error
	if req.method == http.MethodGet {
		err = resilience.RetryWithBackoff(ctx, c.cfg, attempt)
	} else {
		err = attempt()
	}
	if err != nil {
		var network *domain.ErrNetwork
		var rejected *domain.ErrServerRejected
		if !errors.As(err, &network) && !errors.As(err, &rejected) {
			err = &domain.ErrNetwork{Err: err}
		}
		return c.fail(span, req, err)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, req call) error {
	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return &domain.ErrNetwork{Err: err}
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, body)
	if err != nil {
		return &domain.ErrNetwork{Err: err}
	}
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if req.method != http.MethodGet {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &domain.ErrNetwork{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &domain.ErrServerRejected{StatusCode: resp.StatusCode}
	}

	if req.out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(req.out); err != nil {
		return &domain.ErrNetwork{Err: fmt.Errorf("decode %s: %w", req.path, err)}
	}
	return nil
}

func (c *Client) fail(span trace.Span, req call, err error) error {
	kind := domain.ErrorKind(err)
	span.RecordError(err)
	span.SetStatus(codes.Error, kind)
	c.metrics.IncrAPIError(req.operation, kind)
	c.logger.Debug("api call failed",
		zap.String("operation", req.operation),
		zap.String("method", req.method),
		zap.String("path", req.path),
		zap.String("kind", kind),
		zap.Error(err),
	)
	return &domain.ErrExternalService{Operation: req.operation, Err: err}
}
