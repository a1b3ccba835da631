package vision

import (
	"context"
	"fmt"
	"github.com/HugoJF/boxbox/internal/config"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"golang.org/x/time/rate"
	"strings"
	"sync"
	"time"
)

const (
	defaultMaxTokens   = 512
	defaultTemperature = 0.2
)

// OpenAIModel sends requests to an OpenAI compatible chat completion API,
// such as OpenRouter. One langchaingo client is kept per model name.
type OpenAIModel struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	limiter *rate.Limiter

	mu      sync.Mutex
	clients map[string]llms.Model
}

func NewOpenAIModel(configuration *config.Configuration) *OpenAIModel {
	cfg := configuration.Analysis
	return &OpenAIModel{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey(),
		timeout: cfg.TimeoutDuration(),
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst),
		clients: make(map[string]llms.Model),
	}
}

func (m *OpenAIModel) Generate(ctx context.Context, req Request) (string, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}
	llm, err := m.client(req.Model)
	if err != nil {
		return "", err
	}
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	messages := []llms.MessageContent{
		{
			Role: schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextContent{Text: req.Prompt},
				llms.ImageURLContent{URL: req.Image},
			},
		},
	}
	options := []llms.CallOption{
		llms.WithMaxTokens(defaultMaxTokens),
		llms.WithTemperature(defaultTemperature),
	}
	if req.JSON {
		options = append(options, llms.WithJSONMode())
	}

	resp, err := llm.GenerateContent(ctx, messages, options...)
	if err != nil {
		return "", fmt.Errorf("model %s request failed: %w", req.Model, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return "", ErrEmptyReply
	}
	return resp.Choices[0].Content, nil
}

func (m *OpenAIModel) client(model string) (llms.Model, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if llm, ok := m.clients[model]; ok {
		return llm, nil
	}
	llm, err := openai.New(
		openai.WithToken(m.apiKey),
		openai.WithBaseURL(m.baseURL),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create client for model %s: %w", model, err)
	}
	m.clients[model] = llm
	return llm, nil
}
