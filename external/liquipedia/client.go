package liquipedia

import (
	"compress/gzip"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/playrift/esports-ingest/internal/platform/cache"
	"github.com/playrift/esports-ingest/internal/platform/logging"
	"github.com/playrift/esports-ingest/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
)

const (
	defaultBaseURL   = "https://liquipedia.net/leagueoflegends"
	defaultUserAgent = "esports-ingest/1.0 (match data sync)"
	maxResponseBytes = 6 << 20
)

var errLiquipediaTransient = crerr.New("liquipedia transient failure")

// FetchError reports a failed page fetch. A zero StatusCode means the
// request never produced an HTTP response.
type FetchError struct {
	Page       string
	StatusCode int
	Reason     string
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch page %q: status=%d", e.Page, e.StatusCode)
	}
	return fmt.Sprintf("fetch page %q: %s", e.Page, e.Reason)
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	UserAgent      string
	AcceptGzip     bool
	Timeout        time.Duration
	MaxRetries     int
	PageCacheTTL   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches wiki pages over plain HTTP. Responses may be raw HTML or
// a MediaWiki parse envelope; both come back as an HTML string.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	userAgent      string
	acceptGzip     bool
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
	pages          *cache.Store
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		// Wiki hosts reject the Go default agent.
		userAgent = defaultUserAgent
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	var pages *cache.Store
	if cfg.PageCacheTTL > 0 {
		pages = cache.NewStore(cfg.PageCacheTTL)
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		userAgent:      userAgent,
		acceptGzip:     cfg.AcceptGzip,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		pages:          pages,
	}
}

// FetchPage downloads one wiki page and returns its HTML. The page argument
// is a path relative to the configured base URL, e.g. "/Liquipedia:Matches".
func (c *Client) FetchPage(ctx context.Context, page string) (string, error) {
	page = strings.TrimSpace(page)
	if page == "" {
		return "", &FetchError{Page: page, Reason: "page path is required"}
	}
	if !strings.HasPrefix(page, "/") {
		page = "/" + page
	}

	if c.pages != nil {
		value, err := c.pages.GetOrLoad(ctx, page, func(ctx context.Context) (any, error) {
			return c.fetchPage(ctx, page)
		})
		if err != nil {
			return "", err
		}
		html, ok := value.(string)
		if !ok {
			return "", fmt.Errorf("unexpected cached payload type %T", value)
		}
		return html, nil
	}

	return c.fetchPage(ctx, page)
}

func (c *Client) fetchPage(ctx context.Context, page string) (string, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "liquipedia circuit breaker rejected request", "state", c.breaker.State(), "page", page)
			return "", &FetchError{Page: page, Reason: "source is temporarily unavailable"}
		}
	}

	buf := bytebufferpool.Get()
	buf.WriteString(c.baseURL)
	buf.WriteString(page)
	fullURL := buf.String()
	bytebufferpool.Put(buf)

	out, err, _ := c.flight.Do(page, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, page, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isLiquipediaCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return "", err
	}

	raw, ok := out.([]byte)
	if !ok {
		return "", fmt.Errorf("unexpected response payload type %T", out)
	}

	return unwrapParseEnvelope(raw), nil
}

func (c *Client) executeRequest(ctx context.Context, page, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "text/html,application/json")
		if c.acceptGzip {
			req.Header.Set("Accept-Encoding", "gzip")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errLiquipediaTransient, err)
		} else {
			raw, readErr := readBody(resp)
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errLiquipediaTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else {
				lastErr = &FetchError{Page: page, StatusCode: resp.StatusCode}
				if !isRetryableStatus(resp.StatusCode) {
					return nil, lastErr
				}
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, &FetchError{Page: page, Reason: ctx.Err().Error()}
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = &FetchError{Page: page, Reason: "request failed"}
	}
	c.logger.WarnContext(ctx, "liquipedia request failed", "url", fullURL, "error", lastErr)
	if stderrors.Is(lastErr, errLiquipediaTransient) {
		return nil, &FetchError{Page: page, Reason: lastErr.Error()}
	}
	return nil, lastErr
}

func readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = io.LimitReader(resp.Body, maxResponseBytes)
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(reader)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}
	return io.ReadAll(reader)
}

type parseEnvelope struct {
	Parse struct {
		Text map[string]string `json:"text"`
	} `json:"parse"`
}

// unwrapParseEnvelope extracts HTML from a MediaWiki action=parse response.
// Anything that does not decode as that envelope is returned untouched.
func unwrapParseEnvelope(raw []byte) string {
	trimmed := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(trimmed, "{") {
		return trimmed
	}

	var envelope parseEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return trimmed
	}
	if html := strings.TrimSpace(envelope.Parse.Text["*"]); html != "" {
		return html
	}
	return trimmed
}

func isLiquipediaCircuitFailure(err error) bool {
	if stderrors.Is(err, errLiquipediaTransient) {
		return true
	}
	var fetchErr *FetchError
	if stderrors.As(err, &fetchErr) {
		return fetchErr.StatusCode == 0 || isRetryableStatus(fetchErr.StatusCode)
	}
	return false
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
