package scansion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	webTimeout = 10 * time.Second
)

// ErrNoAccent is returned when a stress model answers without any stress mark.
var ErrNoAccent = errors.New("no stress marks in model response")

type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Shared HTTP Client
var sharedHTTPClient = &http.Client{
	Timeout: webTimeout,
	Transport: &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,
	},
}

// SingleFetchWithClient handles the messy business of the HTTP connection
// and is testable with dependency injection
func SingleFetchWithClient(ctx context.Context, url string, c HTTPClient) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, err
	}

	resp, err := c.Do(req)
	if err != nil {
		slog.Error("Fetch Error", slog.Any("Error", err))
		return 0, nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("Close Error", slog.Any("Error", err))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("Could not read body", slog.Any("Error", err))
		return 0, nil, err
	}

	return resp.StatusCode, body, nil
}

// SingleFetch uses the shared client so model connections are reused.
func SingleFetch(ctx context.Context, url string) (int, []byte, error) {
	return SingleFetchWithClient(ctx, url, sharedHTTPClient)
}

// HTTPAccentizer asks a remote stress model to mark a line.
// The service receives the line as ?text= and its body is turned
// into accented text by Decode (plain text when nil).
// A nil Client uses the shared client. Timeout bounds each request and
// cannot extend past the shared client's own timeout.
type HTTPAccentizer struct {
	URL     string
	Client  HTTPClient
	Timeout time.Duration
	Limiter *rate.Limiter
	Decode  func(body []byte) (string, error)
}

// NewHTTPAccentizer builds an accentizer allowing rps requests per second.
// A non-positive rps disables limiting.
func NewHTTPAccentizer(endpoint string, rps float64) *HTTPAccentizer {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &HTTPAccentizer{
		URL:     endpoint,
		Limiter: rate.NewLimiter(limit, 1),
	}
}

func (ha *HTTPAccentizer) Accentize(ctx context.Context, line string) (string, error) {
	if ha.Limiter != nil {
		if err := ha.Limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit: %w", err)
		}
	}

	if ha.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ha.Timeout)
		defer cancel()
	}

	var (
		code int
		body []byte
		err  error
	)
	if ha.Client != nil {
		code, body, err = SingleFetchWithClient(ctx, requestURL(ha.URL, line), ha.Client)
	} else {
		code, body, err = SingleFetch(ctx, requestURL(ha.URL, line))
	}
	if err != nil {
		return "", fmt.Errorf("stress model request: %w", err)
	}
	if code != http.StatusOK {
		slog.Error("Stress model returned error", slog.Int("code", code), slog.String("url", ha.URL))
		return "", fmt.Errorf("stress model returned status %d", code)
	}

	text := strings.TrimSpace(string(body))
	if ha.Decode != nil {
		if text, err = ha.Decode(body); err != nil {
			return "", fmt.Errorf("decode stress model response: %w", err)
		}
	}

	if !strings.ContainsRune(text, StressMark) {
		return "", ErrNoAccent
	}
	return text, nil
}

// requestURL adds the text query, keeping any query the endpoint already has.
func requestURL(endpoint, line string) string {
	u, err := url.Parse(endpoint)
	if err != nil {
		return endpoint + "?text=" + url.QueryEscape(line)
	}
	q := u.Query()
	q.Set("text", line)
	u.RawQuery = q.Encode()
	return u.String()
}
