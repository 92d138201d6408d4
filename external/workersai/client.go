package workersai

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/sports-answer/internal/domain/assistant"
	"github.com/riskibarqy/sports-answer/internal/platform/logging"
	"github.com/riskibarqy/sports-answer/internal/platform/metrics"
	"github.com/riskibarqy/sports-answer/internal/platform/resilience"
	"github.com/riskibarqy/sports-answer/internal/usecase"
	openai "github.com/sashabaranov/go-openai"
)

const (
	DefaultModel = "@cf/meta/llama-3.3-70b-instruct-fp8-fast"

	upstreamName   = "llm"
	defaultTimeout = 20 * time.Second
)

var errWorkersAITransient = crerr.New("workers ai transient failure")

var _ assistant.LanguageModel = (*Client)(nil)

type ClientConfig struct {
	HTTPClient *http.Client
	// BaseURL is the OpenAI-compatible root, e.g.
	// https://api.cloudflare.com/client/v4/accounts/<id>/ai/v1. When empty it
	// is built from AccountID.
	BaseURL        string
	AccountID      string
	APIToken       string
	Model          string
	Timeout        time.Duration
	RateLimit      resilience.RateLimitConfig
	CircuitBreaker resilience.CircuitBreakerConfig
	Logger         *logging.Logger
	Metrics        *metrics.Recorder
}

// Client is a LanguageModel backed by an OpenAI-compatible chat completions
// endpoint.
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
	limiter *resilience.RateLimiter
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
	metrics *metrics.Recorder
}

// AccountBaseURL is the Workers AI OpenAI-compatible root for an account.
func AccountBaseURL(accountID string) string {
	return "https://api.cloudflare.com/client/v4/accounts/" + strings.TrimSpace(accountID) + "/ai/v1"
}

func NewClient(cfg ClientConfig) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		if strings.TrimSpace(cfg.AccountID) == "" {
			return nil, fmt.Errorf("workers ai base url or account id is required")
		}
		baseURL = AccountBaseURL(cfg.AccountID)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	apiCfg := openai.DefaultConfig(strings.TrimSpace(cfg.APIToken))
	apiCfg.BaseURL = baseURL
	if cfg.HTTPClient != nil {
		apiCfg.HTTPClient = cfg.HTTPClient
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		api:     openai.NewClientWithConfig(apiCfg),
		model:   model,
		timeout: timeout,
		limiter: resilience.NewRateLimiter(cfg.RateLimit),
		breaker: resilience.NewCircuitBreakerFromConfig(upstreamName, cfg.CircuitBreaker),
		logger:  logger,
		metrics: cfg.Metrics,
	}
	c.breaker.OnStateChange(func(name string, from, to resilience.CircuitState) {
		c.metrics.SetBreakerOpen(name, to != resilience.CircuitStateClosed)
		c.logger.Warn("circuit breaker state changed", "breaker", name, "from", from, "to", to)
	})
	return c, nil
}

// Complete sends req and returns the first choice's content. A reply with no
// choices is returned as empty text.
func (c *Client) Complete(ctx context.Context, req assistant.Request) (text string, err error) {
	started := time.Now()
	defer func() {
		c.metrics.ObserveUpstream(upstreamName, "chat_completion", err, time.Since(started))
	}()

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// The limiter refuses early when the next token lands past callCtx's
	// deadline, so any refusal that is not a cancellation is a timeout.
	if err := c.limiter.Wait(callCtx); err != nil {
		if ctx.Err() != nil {
			return "", callerError(ctx)
		}
		return "", fmt.Errorf("%w: rate limiter: %v", usecase.ErrTimeout, err)
	}

	err = c.breaker.Execute(func() error {
		resp, callErr := c.api.CreateChatCompletion(callCtx, c.buildRequest(req))
		if callErr != nil {
			return c.classify(ctx, callCtx, callErr)
		}
		if len(resp.Choices) > 0 {
			text = resp.Choices[0].Message.Content
		}
		return nil
	}, isCircuitFailure)
	if resilience.IsAbandoned(err) {
		return "", err
	}
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "language model circuit breaker rejected request", "state", c.breaker.State())
		return "", fmt.Errorf("%w: language model is temporarily unavailable", usecase.ErrModelUnavailable)
	}
	if err != nil {
		c.logger.WarnContext(ctx, "language model request failed", "model", c.model, "error", err)
		return "", err
	}
	return text, nil
}

func (c *Client) buildRequest(req assistant.Request) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    roleName(msg.Role),
			Content: msg.Content,
		})
	}

	out := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.JSONObject {
		out.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}
	return out
}

func roleName(role assistant.Role) string {
	switch role {
	case assistant.RoleSystem:
		return openai.ChatMessageRoleSystem
	case assistant.RoleAssistant:
		return openai.ChatMessageRoleAssistant
	default:
		return openai.ChatMessageRoleUser
	}
}

// classify maps a client error to a kind. Rate limiting, 5xx, transport
// errors and our own call timeout count against the breaker; other HTTP
// errors and the caller going away do not.
func (c *Client) classify(ctx, callCtx context.Context, err error) error {
	if ctx.Err() != nil {
		return resilience.Abandoned(callerError(ctx))
	}
	if timeoutErr := timeoutError(callCtx); timeoutErr != nil {
		return crerr.Mark(timeoutErr, errWorkersAITransient)
	}

	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case stderrors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case stderrors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	wrapped := crerr.Wrapf(usecase.ErrModelUnavailable, "chat completion status=%d: %v", status, err)
	if status == 0 || status == http.StatusTooManyRequests || status >= http.StatusInternalServerError {
		return crerr.Mark(wrapped, errWorkersAITransient)
	}
	return wrapped
}

func timeoutError(ctx context.Context) error {
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: language model did not answer in time", usecase.ErrTimeout)
	}
	return nil
}

// callerError reports why the caller stopped waiting.
func callerError(ctx context.Context) error {
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: request deadline passed before the language model answered", usecase.ErrTimeout)
	}
	return fmt.Errorf("language model call abandoned: %w", ctx.Err())
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errWorkersAITransient)
}
