package llm

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

const hfRouterBaseURL = "https://router.huggingface.co/v1"

// Sampling parameters for blog generation requests.
const (
	completionMaxTokens   = 2048
	completionTemperature = 0.7
	completionTopP        = 0.92
)

// Retry policy applied around every completion request.
const (
	defaultMaxAttempts  = 3
	minUsableTextLength = 50

	warmupCooldown        = 30 * time.Second
	defaultRateLimitDelay = 30 * time.Second
	timeoutRetryDelay     = 10 * time.Second
	transportRetryDelay   = 5 * time.Second
)

// Completer sends a prompt to a remote text-generation backend and returns the generated text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ClientOptions controls how the completion client is initialised.
type ClientOptions struct {
	APIKey         string
	BaseURL        string
	Model          string
	MaxAttempts    int
	RequestTimeout time.Duration
	HTTPClient     *http.Client
	Logger         *logrus.Logger
}

// Client wraps an OpenAI-compatible chat completion backend with the retry
// policy the generation pipeline relies on.
type Client struct {
	chat        chatCompletionClient
	logger      *logrus.Logger
	baseURL     string
	model       string
	maxAttempts int

	// sleep is swapped out in tests to avoid real backoff waits.
	sleep func(ctx context.Context, d time.Duration) error
}

type chatCompletionClient interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

var _ Completer = (*Client)(nil)

// NewClient constructs a Client for an OpenAI-compatible inference endpoint.
func NewClient(opts ClientOptions) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, eris.New("llm api key is required")
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		return nil, eris.New("llm model is required")
	}

	baseURL := strings.TrimSpace(opts.BaseURL)
	if baseURL == "" {
		baseURL = hfRouterBaseURL
	}

	maxAttempts := opts.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}

	requestOptions := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithBaseURL(baseURL),
		// The SDK's own retry loop would hide the backoff policy below.
		option.WithMaxRetries(0),
	}

	if opts.RequestTimeout > 0 {
		requestOptions = append(requestOptions, option.WithRequestTimeout(opts.RequestTimeout))
	}

	if opts.HTTPClient != nil {
		requestOptions = append(requestOptions, option.WithHTTPClient(opts.HTTPClient))
	}

	apiClient := openai.NewClient(requestOptions...)

	return &Client{
		chat:        &apiClient.Chat.Completions,
		logger:      opts.Logger,
		baseURL:     baseURL,
		model:       model,
		maxAttempts: maxAttempts,
		sleep:       sleepContext,
	}, nil
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// BaseURL returns the configured base URL for outbound requests.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Complete sends the prompt as a chat completion request, retrying transient
// failures: a warming-up signal waits a fixed cooldown, a rate limit waits the
// server-advised duration, timeouts and other transport errors wait short
// fixed delays. Non-retryable failures surface immediately as *ModelError.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", eris.New("prompt is required")
	}

	var lastErr *ModelError

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		text, err := c.requestCompletion(ctx, prompt)
		if err == nil {
			return text, nil
		}

		modelErr := c.classify(err)
		if !modelErr.Retryable() {
			return "", modelErr
		}

		lastErr = modelErr
		if attempt == c.maxAttempts {
			break
		}

		delay := retryDelay(modelErr)
		c.logWarn(logrus.Fields{
			"attempt":  attempt,
			"kind":     modelErr.Kind.String(),
			"delay_ms": delay.Milliseconds(),
		}, "completion request failed, retrying")

		if sleepErr := c.sleep(ctx, delay); sleepErr != nil {
			return "", eris.Wrap(sleepErr, "waiting before retry")
		}
	}

	return "", lastErr
}

func (c *Client) requestCompletion(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(completionMaxTokens),
		Temperature: openai.Float(completionTemperature),
		TopP:        openai.Float(completionTopP),
	}

	completion, err := c.chat.New(ctx, params)
	if err != nil {
		return "", err
	}

	if completion == nil || len(completion.Choices) == 0 {
		return "", &ModelError{
			Kind:    FailureMalformedResponse,
			Message: "completion contains no choices",
		}
	}

	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if len(text) < minUsableTextLength {
		return "", &ModelError{
			Kind:    FailureMalformedResponse,
			Message: "completion text is too short to be usable",
		}
	}

	return text, nil
}

func (c *Client) classify(err error) *ModelError {
	var modelErr *ModelError
	if errors.As(err, &modelErr) {
		return modelErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &ModelError{Kind: FailureTimeout, Message: "completion request timed out", Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &ModelError{Kind: FailureTimeout, Message: "completion request timed out", Err: err}
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusServiceUnavailable:
			return &ModelError{
				Kind:       FailureWarmingUp,
				StatusCode: apiErr.StatusCode,
				Message:    "model is warming up",
				Err:        err,
			}
		case http.StatusTooManyRequests:
			return &ModelError{
				Kind:       FailureRateLimited,
				StatusCode: apiErr.StatusCode,
				RetryAfter: retryAfterFromResponse(apiErr.Response),
				Message:    "request was rate limited",
				Err:        err,
			}
		default:
			return &ModelError{
				Kind:       FailureBadStatus,
				StatusCode: apiErr.StatusCode,
				Message:    badStatusMessage(c.model, apiErr),
				Err:        err,
			}
		}
	}

	return &ModelError{Kind: FailureTransport, Message: "completion request failed", Err: err}
}

func retryDelay(modelErr *ModelError) time.Duration {
	switch modelErr.Kind {
	case FailureWarmingUp:
		return warmupCooldown
	case FailureRateLimited:
		if modelErr.RetryAfter > 0 {
			return modelErr.RetryAfter
		}
		return defaultRateLimitDelay
	case FailureTimeout:
		return timeoutRetryDelay
	default:
		return transportRetryDelay
	}
}

func retryAfterFromResponse(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}

	header := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if header == "" {
		return 0
	}

	seconds, err := strconv.Atoi(header)
	if err != nil || seconds <= 0 {
		return 0
	}

	return time.Duration(seconds) * time.Second
}

func badStatusMessage(model string, apiErr *openai.Error) string {
	message := strings.TrimSpace(apiErr.Message)
	lower := strings.ToLower(message)

	if strings.Contains(lower, "not a chat model") ||
		strings.Contains(lower, "conversational") ||
		strings.Contains(lower, "chat template") {
		return "model " + model + " does not support chat completions; configure a chat-capable model"
	}

	if message == "" {
		return "backend returned a non-success status"
	}

	return message
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) logWarn(fields logrus.Fields, message string) {
	if c.logger == nil {
		return
	}

	entry := c.logger.WithField("model", c.model)
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Warn(message)
}
