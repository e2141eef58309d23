// Package client talks to the clinic backend's REST API. Every call goes
// through the same pipeline: token pre-check, rate limit, circuit breaker,
// envelope decoding, metrics and one log line.
package client

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/clinicdesk/pkg/auth"
	"github.com/jwalitptl/clinicdesk/pkg/circuitbreaker"
	apperrors "github.com/jwalitptl/clinicdesk/pkg/errors"
	"github.com/jwalitptl/clinicdesk/pkg/httputil"
	"github.com/jwalitptl/clinicdesk/pkg/logger"
	"github.com/jwalitptl/clinicdesk/pkg/metrics"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 32 << 20
)

// Config configures a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Token   string

	// RequestsPerSecond <= 0 disables rate limiting.
	RequestsPerSecond float64
	Burst             int

	Breaker    circuitbreaker.Settings
	Registerer prometheus.Registerer
	Logger     *logger.Logger

	// HTTPClient overrides the transport; Timeout still applies per request.
	HTTPClient *http.Client
	Now        func() time.Time
}

// Client is safe for concurrent use.
type Client struct {
	base    *url.URL
	http    *http.Client
	timeout time.Duration
	limiter *rate.Limiter
	breaker *circuitbreaker.CircuitBreaker
	metrics *metrics.Metrics
	log     *logger.Logger
	group   singleflight.Group
	now     func() time.Time

	mu    sync.RWMutex
	token string
}

// New validates cfg and builds a client.
func New(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	c := &Client{
		base:    base,
		http:    httpClient,
		timeout: cfg.Timeout,
		metrics: metrics.NewMetrics("clinicdesk", "client", cfg.Registerer),
		log:     cfg.Logger.With("api-client"),
		now:     cfg.Now,
		token:   cfg.Token,
	}
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	settings := cfg.Breaker
	if settings.Name == "" {
		settings.Name = "clinic-api"
	}
	if settings.Timeout <= 0 {
		settings.Timeout = 30 * time.Second
	}
	onChange := settings.OnStateChange
	settings.OnStateChange = func(name, to string) {
		c.metrics.BreakerTransitions.WithLabelValues(name, to).Inc()
		c.log.Info("circuit breaker state changed", "breaker", name, "state", to)
		if onChange != nil {
			onChange(name, to)
		}
	}
	c.breaker = circuitbreaker.NewCircuitBreaker(settings)
	return c, nil
}

// SetToken replaces the bearer token used for subsequent calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Metrics exposes the client's collectors.
func (c *Client) Metrics() *metrics.Metrics {
	return c.metrics
}

// request describes one backend call.
type request struct {
	op     string
	method string
	path   string // escaped
	query  url.Values
	body   any
	// raw skips envelope decoding on success.
	raw bool
}

// reply is the shared outcome of a round trip. Joined callers read it
// concurrently, so it is never mutated after the call returns.
type reply struct {
	status  int
	header  http.Header
	data    json.RawMessage
	payload []byte
}

// call runs req through the pipeline and decodes envelope data into out.
func (c *Client) call(ctx context.Context, req request, out any) error {
	rep, err := c.execute(ctx, req)
	if err != nil {
		return err
	}
	if err := httputil.DecodeData(rep.data, out); err != nil {
		return apperrors.NewInternal(err)
	}
	return nil
}

func (c *Client) execute(ctx context.Context, req request) (*reply, error) {
	token := c.bearer()
	if token != "" && auth.Expired(token, c.now()) {
		c.metrics.ObserveRequest(req.op, "expired", 0)
		return nil, apperrors.Unauthorized("session expired, please log in again")
	}

	var payload []byte
	if req.body != nil {
		b, err := json.Marshal(req.body)
		if err != nil {
			return nil, apperrors.NewBadRequest("invalid request body", err)
		}
		payload = b
	}

	// The flight outlives any single caller; each caller only stops waiting
	// when its own context ends.
	key := flightKey(req, payload)
	flight := c.group.DoChan(key, func() (interface{}, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		return c.roundTrip(fctx, req, token, payload)
	})

	select {
	case <-ctx.Done():
		return nil, apperrors.NewTransport(ctx.Err())
	case res := <-flight:
		if res.Shared {
			c.metrics.JoinedRequests.WithLabelValues(req.op).Inc()
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*reply), nil
	}
}

func flightKey(req request, payload []byte) string {
	sum := sha256.Sum256(payload)
	return req.method + " " + req.path + "?" + req.query.Encode() + "#" + hex.EncodeToString(sum[:8])
}

func (c *Client) roundTrip(ctx context.Context, req request, token string, payload []byte) (*reply, error) {
	start := time.Now()
	status := 0
	var rep *reply
	var callErr error

	defer func() {
		label := "error"
		if status != 0 {
			label = strconv.Itoa(status)
		}
		elapsed := time.Since(start)
		c.metrics.ObserveRequest(req.op, label, elapsed.Seconds())
		var ev *zerolog.Event
		if callErr != nil {
			ev = c.log.Zerolog().Warn().Err(callErr)
		} else {
			ev = c.log.Zerolog().Debug()
		}
		ev.Str("op", req.op).
			Str("method", req.method).
			Str("path", req.path).
			Int("status", status).
			Dur("duration", elapsed).
			Msg("api request")
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			callErr = apperrors.NewTransport(err)
			return nil, callErr
		}
	}

	err := c.breaker.Execute(func() error {
		var err error
		rep, err = c.send(ctx, req, token, payload)
		if err != nil {
			return err
		}
		status = rep.status
		if rep.status >= http.StatusInternalServerError {
			return fmt.Errorf("server responded %d", rep.status)
		}
		return nil
	})
	if rep == nil {
		if errors.Is(err, circuitbreaker.ErrOpen) {
			callErr = &apperrors.AppError{
				Code:    apperrors.ErrTransport,
				Message: "backend unavailable, try again shortly",
				Err:     err,
			}
		} else {
			callErr = apperrors.NewTransport(err)
		}
		return nil, callErr
	}

	rep, callErr = interpret(rep, req.raw)
	return rep, callErr
}

func (c *Client) send(ctx context.Context, req request, token string, payload []byte) (*reply, error) {
	// req.path is already escaped; keep it as the raw path so ids are not
	// escaped twice.
	u := *c.base
	u.RawPath = strings.TrimRight(c.base.EscapedPath(), "/") + req.path
	p, err := url.PathUnescape(u.RawPath)
	if err != nil {
		return nil, fmt.Errorf("invalid request path %q: %w", req.path, err)
	}
	u.Path = p
	if len(req.query) > 0 {
		u.RawQuery = req.query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, u.String(), body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return &reply{status: resp.StatusCode, header: resp.Header.Clone(), payload: raw}, nil
}

// interpret applies the envelope rules: success:false carries the backend
// message (possibly empty), a non-2xx status without an envelope carries the
// status text.
func interpret(rep *reply, raw bool) (*reply, error) {
	ok := rep.status >= 200 && rep.status < 300
	if ok && raw {
		return rep, nil
	}

	env, err := httputil.Decode(rep.payload)
	if err != nil {
		if ok && len(bytes.TrimSpace(rep.payload)) == 0 {
			return rep, nil
		}
		if ok {
			return nil, apperrors.NewInternal(err)
		}
		return nil, apperrors.FromStatus(rep.status, http.StatusText(rep.status))
	}
	if !ok || !env.Success {
		return nil, apperrors.FromStatus(rep.status, env.ErrorMessage())
	}
	rep.data = env.Data
	return rep, nil
}
