// Package chat is a client for the chat completion API. Every call is
// authenticated with a freshly issued apitoken.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lithammer/shortuuid"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/bigmodel/pkg/apitoken"
	"github.com/domino14/bigmodel/pkg/config"
)

const completionsPath = "chat/completions"

// Client sends chat completion requests. It is safe for concurrent use.
type Client struct {
	api        openai.Client
	apiOptions []option.RequestOption
	issuer     *apitoken.Issuer
	credential string
	tokenTTL   int64
	model      Model
	defaults   Request
	logger     zerolog.Logger
}

type Option func(*Client)

// WithBaseURL sets the API root, e.g. https://open.bigmodel.cn/api/paas/v4/.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		c.apiOptions = append(c.apiOptions, option.WithBaseURL(baseURL))
	}
}

func WithModel(model Model) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithTokenTTL sets the lifetime in seconds of the token issued per request.
func WithTokenTTL(seconds int64) Option {
	return func(c *Client) {
		c.tokenTTL = seconds
	}
}

func WithIssuer(issuer *apitoken.Issuer) Option {
	return func(c *Client) {
		if issuer != nil {
			c.issuer = issuer
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.apiOptions = append(c.apiOptions, option.WithHTTPClient(client))
		}
	}
}

func WithMaxRetries(retries int) Option {
	return func(c *Client) {
		c.apiOptions = append(c.apiOptions, option.WithMaxRetries(retries))
	}
}

// WithTimeout bounds each attempt of a request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.apiOptions = append(c.apiOptions, option.WithRequestTimeout(d))
		}
	}
}

// WithDefaults sets sampling parameters applied to requests that leave them
// unset.
func WithDefaults(temperature, topP *float64, maxTokens int) Option {
	return func(c *Client) {
		c.defaults.Temperature = temperature
		c.defaults.TopP = topP
		c.defaults.MaxTokens = maxTokens
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the given <id>.<secret> credential.
func New(credential string, opts ...Option) (*Client, error) {
	if credential == "" {
		return nil, ErrMissingCredential
	}
	if _, _, err := apitoken.SplitCredential(credential); err != nil {
		return nil, err
	}
	c := &Client{
		issuer:     apitoken.NewIssuer(),
		credential: credential,
		tokenTTL:   config.DefaultTokenTTL,
		model:      config.DefaultModel,
		logger:     log.Logger,
		apiOptions: []option.RequestOption{option.WithBaseURL(config.DefaultBaseURL)},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.apiOptions = append(c.apiOptions, option.WithMiddleware(c.authorize))
	c.api = openai.NewClient(c.apiOptions...)
	return c, nil
}

// openaiHeaders are filled in from OPENAI_* environment variables by the
// transport's defaults and must not reach this API.
var openaiHeaders = []string{"OpenAI-Organization", "OpenAI-Project"}

// authorize runs once per attempt, so every retry carries a freshly issued
// token.
func (c *Client) authorize(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
	token, err := c.issuer.Issue(c.credential, c.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	for _, h := range openaiHeaders {
		req.Header.Del(h)
	}
	req.Header.Set("Authorization", token)
	return next(req)
}

// NewFromConfig creates a client from a validated configuration.
func NewFromConfig(cfg *config.Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts := []Option{
		WithBaseURL(cfg.BaseURL),
		WithModel(Model(cfg.Model)),
		WithTokenTTL(cfg.TokenTTL),
		WithIssuer(apitoken.NewIssuer(cfg.IssuerOptions()...)),
		WithMaxRetries(cfg.MaxRetries),
		WithTimeout(cfg.Timeout),
	}
	var temperature, topP *float64
	if cfg.Temperature > 0 {
		temperature = Float(cfg.Temperature)
	}
	if cfg.TopP > 0 {
		topP = Float(cfg.TopP)
	}
	opts = append(opts, WithDefaults(temperature, topP, cfg.MaxTokens))
	return New(cfg.APIKey, opts...)
}

// Complete sends req and returns the decoded response. Model, request id and
// unset sampling parameters are filled from the client.
func (c *Client) Complete(ctx context.Context, req Request) (*Response, error) {
	if len(req.Messages) == 0 {
		return nil, ErrNoMessages
	}
	if req.Stream {
		return nil, ErrStreamingUnsupported
	}
	for _, t := range req.Tools {
		if ft, ok := t.(FunctionTool); ok {
			if err := ft.Parameters.Validate(); err != nil {
				return nil, fmt.Errorf("tool %s: %w", ft.Name, err)
			}
		}
	}
	if req.Model == "" {
		req.Model = c.model
	}
	if req.RequestID == "" {
		req.RequestID = shortuuid.New()
	}
	if req.Temperature == nil {
		req.Temperature = c.defaults.Temperature
	}
	if req.TopP == nil {
		req.TopP = c.defaults.TopP
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = c.defaults.MaxTokens
	}

	// Fail before sending when no token can be issued; attempts get their
	// own tokens in authorize.
	if _, err := c.issuer.Issue(c.credential, c.tokenTTL); err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	start := time.Now()
	var httpResp *http.Response
	err := c.api.Post(ctx, completionsPath, req, &httpResp)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			err = &APIError{StatusCode: apiErr.StatusCode, Err: err}
		}
		c.logger.Err(err).Str("request_id", req.RequestID).Str("model", string(req.Model)).
			Msg("chat-completion-failure")
		return nil, err
	}
	defer httpResp.Body.Close()

	resp := &Response{}
	if err := json.NewDecoder(httpResp.Body).Decode(resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	c.logger.Debug().Str("request_id", req.RequestID).Str("model", string(req.Model)).
		Int("total_tokens", resp.Usage.TotalTokens).Dur("latency", time.Since(start)).
		Msg("chat completion")
	if len(resp.Choices) == 0 {
		return resp, ErrEmptyResponse
	}
	return resp, nil
}

// Ask sends history followed by prompt as a user message. It returns the
// reply and the history extended with the prompt and the reply; history
// itself is not modified.
func (c *Client) Ask(ctx context.Context, history []Message, prompt string, tools ...Tool) (AssistantMessage, []Message, error) {
	msgs := append(history[:len(history):len(history)], UserMessage{Content: prompt})
	resp, err := c.Complete(ctx, Request{Messages: msgs, Tools: tools})
	if err != nil {
		return AssistantMessage{}, history, err
	}
	reply, err := resp.Reply()
	if err != nil {
		return AssistantMessage{}, history, err
	}
	return reply, append(msgs, reply), nil
}
