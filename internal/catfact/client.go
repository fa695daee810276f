package catfact

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	apperrors "github.com/agbru/meowgic/internal/errors"
	"github.com/agbru/meowgic/internal/logging"
)

// maxBodyBytes caps how much of a response body is decoded.
const maxBodyBytes = 1 << 20

// ErrEmptyFact is returned when the API answers 2xx with no fact text.
var ErrEmptyFact = errors.New("response contained no fact")

const tracerName = "github.com/agbru/meowgic/internal/catfact"

// Client fetches facts over HTTP.
type Client struct {
	url        string
	httpClient *http.Client
	timeout    time.Duration
	limiter    *rate.Limiter
	observer   Observer
	logger     logging.Logger
	tracer     trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithURL overrides the endpoint.
func WithURL(url string) Option {
	return func(c *Client) { c.url = url }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds each request. Zero leaves the platform default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRateLimit paces requests to at most rps per second. Zero or negative
// disables pacing.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		} else {
			c.limiter = nil
		}
	}
}

// WithObserver registers a request observer.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a Client for DefaultURL unless overridden.
func NewClient(opts ...Option) *Client {
	c := &Client{
		url:        DefaultURL,
		httpClient: http.DefaultClient,
		observer:   nopObserver{},
		logger:     logging.NewNopLogger(),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the configured endpoint.
func (c *Client) URL() string { return c.url }

// Fetch performs one GET request and decodes the fact. Every failure is
// returned as an apperrors.FetchError.
func (c *Client) Fetch(ctx context.Context) (Fact, error) {
	ctx, span := c.tracer.Start(ctx, "catfact.Fetch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("http.url", c.url)))
	defer span.End()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	c.observer.FetchStarted()
	start := time.Now()

	fact, err := c.do(ctx)
	elapsed := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		c.observer.FetchFinished(OutcomeFailure, elapsed)
		c.logger.Error("cat fact fetch failed", err,
			logging.String("url", c.url), logging.Duration("elapsed", elapsed))
		return Fact{}, err
	}

	span.SetAttributes(attribute.Int("catfact.length", fact.Length))
	c.observer.FetchFinished(OutcomeSuccess, elapsed)
	c.logger.Debug("cat fact fetched",
		logging.Int("length", fact.Length), logging.Duration("elapsed", elapsed))
	return fact, nil
}

func (c *Client) do(ctx context.Context) (Fact, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return Fact{}, apperrors.FetchError{URL: c.url, Cause: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, http.NoBody)
	if err != nil {
		return Fact{}, apperrors.FetchError{URL: c.url, Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Fact{}, apperrors.FetchError{URL: c.url, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return Fact{}, apperrors.FetchError{URL: c.url, StatusCode: resp.StatusCode}
	}

	var fact Fact
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&fact); err != nil {
		return Fact{}, apperrors.FetchError{URL: c.url, Cause: apperrors.WrapError(err, "decode body")}
	}
	if strings.TrimSpace(fact.Text) == "" {
		return Fact{}, apperrors.FetchError{URL: c.url, Cause: ErrEmptyFact}
	}
	if fact.Length == 0 {
		fact.Length = len(fact.Text)
	}
	return fact, nil
}

var _ Fetcher = (*Client)(nil)
