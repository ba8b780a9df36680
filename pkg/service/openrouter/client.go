package openrouter

import (
	"context"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sashabaranov/go-openai"
	"github.com/secmon-lab/asclepius/pkg/domain/interfaces"
	"github.com/secmon-lab/asclepius/pkg/domain/model"
)

const (
	// DefaultBaseURL is the OpenRouter OpenAI-compatible endpoint
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	// DefaultModel is the model requested when none is configured
	DefaultModel = "deepseek/deepseek-r1-0528:free"
	// DefaultReferer is sent as HTTP-Referer for OpenRouter app attribution
	DefaultReferer = "http://localhost:5000"
	// DefaultTitle is sent as X-Title for OpenRouter app attribution
	DefaultTitle = "Asclepius Chat"
)

var ErrNoChoices = goerr.New("completion returned no choices")

// client implements interfaces.ChatCompleter on top of the OpenAI-compatible API.
// The API key is supplied per call, so a go-openai client is built for every request.
type client struct {
	baseURL    string
	model      string
	referer    string
	title      string
	httpClient *http.Client
	timeout    time.Duration
}

// Option is a functional option for client configuration
type Option func(*client)

// WithBaseURL overrides the API endpoint
func WithBaseURL(url string) Option {
	return func(c *client) {
		c.baseURL = url
	}
}

// WithModel sets the requested model
func WithModel(model string) Option {
	return func(c *client) {
		c.model = model
	}
}

// WithAttribution sets the HTTP-Referer and X-Title headers. Empty values are not sent.
func WithAttribution(referer, title string) Option {
	return func(c *client) {
		c.referer = referer
		c.title = title
	}
}

// WithTimeout bounds every upstream request. Zero disables the client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *client) {
		c.timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client. Its transport is wrapped to add
// attribution headers.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// New creates a ChatCompleter for OpenRouter (or any OpenAI-compatible endpoint)
func New(opts ...Option) (interfaces.ChatCompleter, error) {
	c := &client{
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
		referer: DefaultReferer,
		title:   DefaultTitle,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.baseURL == "" {
		return nil, goerr.New("upstream base URL is required")
	}
	if c.model == "" {
		return nil, goerr.New("upstream model is required")
	}

	base := c.httpClient
	if base == nil {
		base = &http.Client{}
	}
	transport := base.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	c.httpClient = &http.Client{
		Transport: &headerTransport{
			base:    transport,
			referer: c.referer,
			title:   c.title,
		},
		CheckRedirect: base.CheckRedirect,
		Jar:           base.Jar,
		Timeout:       c.timeout,
	}

	return c, nil
}

// Complete sends the conversation and returns the first choice's content
func (c *client) Complete(ctx context.Context, apiKey string, messages []model.ChatMessage) (string, error) {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = c.baseURL
	cfg.HTTPClient = c.httpClient
	api := openai.NewClientWithConfig(cfg)

	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: toOpenAIMessages(messages),
	}

	resp, err := api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create chat completion",
			goerr.V("model", c.model),
			goerr.V("message_count", len(messages)),
		)
	}

	if len(resp.Choices) == 0 {
		return "", goerr.Wrap(ErrNoChoices, "failed to read chat completion", goerr.V("model", c.model))
	}

	return resp.Choices[0].Message.Content, nil
}

func toOpenAIMessages(messages []model.ChatMessage) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		out[i] = openai.ChatCompletionMessage{
			Role:    msg.Role.String(),
			Content: msg.Content,
		}
	}
	return out
}

// headerTransport adds OpenRouter attribution headers to every request
type headerTransport struct {
	base    http.RoundTripper
	referer string
	title   string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if t.referer != "" {
		req.Header.Set("HTTP-Referer", t.referer)
	}
	if t.title != "" {
		req.Header.Set("X-Title", t.title)
	}
	return t.base.RoundTrip(req)
}
