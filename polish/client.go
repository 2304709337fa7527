package polish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"

	"github.com/iw2rmb/blockpad"
)

// DefaultInstruction asks for a light copy edit that keeps the author's voice.
const DefaultInstruction = "Improve the grammar, clarity and flow of the following text. " +
	"Keep the meaning and tone. Return only the improved text."

const maxErrorBody = 512

var (
	// ErrNoEndpoint is returned by New when no endpoint is configured.
	ErrNoEndpoint = errors.New("polish: endpoint is required")
	// ErrEmptyResult is returned when the service answers without text.
	ErrEmptyResult = errors.New("polish: empty result")
)

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("polish: unexpected status %d", e.Code)
	}
	return fmt.Sprintf("polish: unexpected status %d: %s", e.Code, e.Body)
}

// Retryable reports whether the request may succeed when repeated.
func (e *StatusError) Retryable() bool {
	return e.Code >= 500 || e.Code == http.StatusTooManyRequests
}

// Config configures a Client.
type Config struct {
	Endpoint    string
	APIKey      string
	Model       string
	Instruction string // default: DefaultInstruction

	// Retries is the number of attempts after the first one.
	Retries        uint64
	InitialBackoff time.Duration // default: 250ms
	MaxBackoff     time.Duration // default: 5s

	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client improves text through a remote service. It is safe for concurrent
// use.
type Client struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger
}

type request struct {
	Model       string `json:"model,omitempty"`
	Instruction string `json:"instruction"`
	Text        string `json:"text"`
}

type response struct {
	Text string `json:"text"`
}

func New(cfg Config) (*Client, error) {
	cfg.Endpoint = strings.TrimSpace(cfg.Endpoint)
	if cfg.Endpoint == "" {
		return nil, ErrNoEndpoint
	}
	if cfg.Instruction == "" {
		cfg.Instruction = DefaultInstruction
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = 250 * time.Millisecond
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 5 * time.Second
	}

	c := &Client{cfg: cfg, client: cfg.HTTPClient, logger: cfg.Logger}
	if c.client == nil {
		c.client = &http.Client{Timeout: 60 * time.Second}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c, nil
}

// Improve sends text to the service and returns the improved version. The
// context bounds the whole call including retries.
func (c *Client) Improve(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(request{
		Model:       c.cfg.Model,
		Instruction: c.cfg.Instruction,
		Text:        text,
	})
	if err != nil {
		return "", errors.Wrap(err, "polish: encode request")
	}

	var out string
	attempt := 0
	op := func() error {
		attempt++
		res, err := c.do(ctx, body)
		if err != nil {
			return err
		}
		out = res
		return nil
	}
	notify := func(err error, wait time.Duration) {
		c.logger.Debug("polish retry", "attempt", attempt, "wait", wait, "err", err)
	}

	if err := backoff.RetryNotify(op, c.policy(ctx), notify); err != nil {
		return "", err
	}
	return out, nil
}

func (c *Client) policy(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.cfg.InitialBackoff
	exp.MaxInterval = c.cfg.MaxBackoff
	exp.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(exp, c.cfg.Retries), ctx)
}

// do performs one attempt. Errors that must not be retried are wrapped in
// backoff.Permanent.
func (c *Client) do(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", backoff.Permanent(errors.Wrap(err, "polish: build request"))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", blockpad.UserAgent())
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", backoff.Permanent(errors.Wrap(ctx.Err(), "polish: request"))
		}
		return "", errors.Wrap(err, "polish: request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		serr := &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
		if serr.Retryable() {
			return "", serr
		}
		return "", backoff.Permanent(serr)
	}

	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", backoff.Permanent(errors.Wrap(err, "polish: decode response"))
	}
	if strings.TrimSpace(r.Text) == "" {
		return "", backoff.Permanent(ErrEmptyResult)
	}
	return r.Text, nil
}
