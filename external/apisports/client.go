package apisports

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/sports-answer/internal/domain/game"
	"github.com/riskibarqy/sports-answer/internal/domain/query"
	"github.com/riskibarqy/sports-answer/internal/domain/team"
	"github.com/riskibarqy/sports-answer/internal/platform/logging"
	"github.com/riskibarqy/sports-answer/internal/platform/metrics"
	"github.com/riskibarqy/sports-answer/internal/platform/resilience"
	"github.com/riskibarqy/sports-answer/internal/usecase"
)

const (
	DefaultBasketballBaseURL = "https://v2.nba.api-sports.io"
	DefaultFootballBaseURL   = "https://v1.american-football.api-sports.io"

	apiKeyHeader   = "x-apisports-key"
	upstreamName   = "apisports"
	maxBodyBytes   = 6 << 20
	defaultTimeout = 10 * time.Second
)

var errAPISportsTransient = crerr.New("api-sports transient failure")

var (
	_ team.Directory  = (*Client)(nil)
	_ game.Repository = (*Client)(nil)
)

type ClientConfig struct {
	HTTPClient        *http.Client
	BasketballBaseURL string
	FootballBaseURL   string
	APIKey            string
	Timeout           time.Duration
	MaxRetries        int
	Logger            *logging.Logger
	Metrics           *metrics.Recorder
	CircuitBreaker    resilience.CircuitBreakerConfig
}

// Client talks to the api-sports basketball and american-football APIs. It
// is safe for concurrent use.
type Client struct {
	httpClient     *http.Client
	basketballBase string
	footballBase   string
	apiKey         string
	timeout        time.Duration
	maxRetries     int
	logger         *logging.Logger
	metrics        *metrics.Recorder
	breaker        *resilience.CircuitBreaker
	flight         resilience.Group[[]byte]
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		httpClient:     httpClient,
		basketballBase: baseURLOr(cfg.BasketballBaseURL, DefaultBasketballBaseURL),
		footballBase:   baseURLOr(cfg.FootballBaseURL, DefaultFootballBaseURL),
		apiKey:         strings.TrimSpace(cfg.APIKey),
		timeout:        timeout,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		metrics:        cfg.Metrics,
		breaker:        resilience.NewCircuitBreakerFromConfig(upstreamName, cfg.CircuitBreaker),
	}
	c.breaker.OnStateChange(func(name string, from, to resilience.CircuitState) {
		c.metrics.SetBreakerOpen(name, to != resilience.CircuitStateClosed)
		c.logger.Warn("circuit breaker state changed", "breaker", name, "from", from, "to", to)
	})
	return c
}

// SearchTeams returns the provider's candidates for a free-form team name.
func (c *Client) SearchTeams(ctx context.Context, sport query.Sport, search string) ([]team.Team, error) {
	var items []teamItem
	if err := c.doJSON(ctx, "teams", sport, "/teams", url.Values{"search": {search}}, &items); err != nil {
		return nil, err
	}

	out := make([]team.Team, 0, len(items))
	for _, item := range items {
		out = append(out, item.toDomain())
	}
	return out, nil
}

// ListByDate returns every game of the league on date (YYYY-MM-DD).
func (c *Client) ListByDate(ctx context.Context, sport query.Sport, leagueID int64, date string) ([]game.Game, error) {
	params := url.Values{
		"date":   {date},
		"league": {strconv.FormatInt(leagueID, 10)},
	}

	var items []gameItem
	if err := c.doJSON(ctx, "games", sport, "/games", params, &items); err != nil {
		return nil, err
	}

	out := make([]game.Game, 0, len(items))
	for _, item := range items {
		out = append(out, item.toDomain())
	}
	return out, nil
}

// FetchTeamStats returns the raw per-team box score of one game. Both sports
// expose it on the same path.
func (c *Client) FetchTeamStats(ctx context.Context, sport query.Sport, gameID int64) (json.RawMessage, error) {
	var stats json.RawMessage
	params := url.Values{"id": {strconv.FormatInt(gameID, 10)}}
	if err := c.doJSON(ctx, "team_stats", sport, "/games/statistics/teams", params, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (c *Client) baseFor(sport query.Sport) (string, error) {
	switch sport {
	case query.SportNBA:
		return c.basketballBase, nil
	case query.SportNFL, query.SportNCAAF:
		return c.footballBase, nil
	default:
		return "", fmt.Errorf("%w: %s", usecase.ErrUnsupportedSport, sport)
	}
}

// doJSON fetches path and decodes the envelope's response field into target.
func (c *Client) doJSON(ctx context.Context, operation string, sport query.Sport, path string, params url.Values, target any) (err error) {
	started := time.Now()
	defer func() {
		c.metrics.ObserveUpstream(upstreamName, operation, err, time.Since(started))
	}()

	base, err := c.baseFor(sport)
	if err != nil {
		return err
	}

	fullURL := base + path
	if encoded := params.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	// The flight is shared by every caller asking for the same URL, so it runs
	// on a context none of them can cancel. Each caller waits on its own ctx.
	raw, _, err := c.flight.DoContext(ctx, fullURL, func() ([]byte, error) {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "api-sports circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: sports data provider is temporarily unavailable", usecase.ErrProviderUnavailable)
		}

		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		body, reqErr := c.executeRequest(flightCtx, fullURL)
		if isCircuitFailure(reqErr) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
		return body, reqErr
	})
	if err != nil {
		if ctx.Err() != nil {
			return callerError(ctx)
		}
		return err
	}

	var env envelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return crerr.Wrapf(usecase.ErrProviderUnavailable, "decode provider envelope: %v", err)
	}
	if env.hasErrors() {
		return crerr.Wrapf(usecase.ErrProviderUnavailable, "provider errors=%s", abbreviateBody(env.Errors))
	}
	if len(env.Response) == 0 || string(env.Response) == "null" {
		return nil
	}
	if err := sonic.Unmarshal(env.Response, target); err != nil {
		return crerr.Wrapf(usecase.ErrProviderUnavailable, "decode provider response: %v", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set(apiKeyHeader, c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctxErr := timeoutError(ctx); ctxErr != nil {
				return nil, ctxErr
			}
			lastErr = crerr.Mark(
				crerr.Wrapf(usecase.ErrProviderUnavailable, "send request: %s", sanitizeSensitiveText(err.Error(), c.apiKey)),
				errAPISportsTransient,
			)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				if ctxErr := timeoutError(ctx); ctxErr != nil {
					return nil, ctxErr
				}
				lastErr = crerr.Mark(crerr.Wrapf(usecase.ErrProviderUnavailable, "read response body: %v", readErr), errAPISportsTransient)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Mark(
					crerr.Wrapf(usecase.ErrProviderUnavailable, "provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw)),
					errAPISportsTransient,
				)
			default:
				return nil, crerr.Wrapf(usecase.ErrProviderUnavailable, "provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * 250 * time.Millisecond
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			if ctxErr := timeoutError(ctx); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "api-sports request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

// timeoutError maps an expired deadline to the timeout kind.
func timeoutError(ctx context.Context) error {
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: sports data provider did not answer in time", usecase.ErrTimeout)
	}
	return nil
}

// callerError reports why the caller stopped waiting. The provider may be
// perfectly healthy, so it never carries the transient mark.
func callerError(ctx context.Context) error {
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: request deadline passed before the sports data provider answered", usecase.ErrTimeout)
	}
	return fmt.Errorf("api-sports request abandoned: %w", ctx.Err())
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return crerr.Is(err, errAPISportsTransient) || stderrors.Is(err, usecase.ErrTimeout)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func sanitizeSensitiveText(value, key string) string {
	value = strings.TrimSpace(value)
	if value == "" || key == "" {
		return value
	}
	return strings.ReplaceAll(value, key, "REDACTED")
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func baseURLOr(raw, fallback string) string {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" {
		return fallback
	}
	return raw
}
