package classifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sanctuary/internal/config"
	"sanctuary/internal/domain"
	"sanctuary/internal/logger"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const defaultOpenAIModel = "gpt-4o-mini"

var errNoAPIKey = errors.New("llm.openai.api_key is not configured")

// OpenAIClassifier classifies transcripts with the chat completions API in
// JSON mode.
type OpenAIClassifier struct {
	client   *openai.Client
	model    string
	maxChars int
	timeout  time.Duration
}

func NewOpenAIClassifier(cfg config.LLMConfig) *OpenAIClassifier {
	c := &OpenAIClassifier{
		model:    cfg.OpenAI.Model,
		maxChars: cfg.MaxTranscriptChars,
		timeout:  cfg.Timeout,
	}
	if c.model == "" {
		c.model = defaultOpenAIModel
	}
	if cfg.OpenAI.APIKey == "" {
		logger.Get().Warn("OpenAI API key missing; classification will fail")
		return c
	}

	clientCfg := openai.DefaultConfig(cfg.OpenAI.APIKey)
	if cfg.OpenAI.BaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAI.BaseURL
	}
	c.client = openai.NewClientWithConfig(clientCfg)
	return c
}

func (c *OpenAIClassifier) Name() string { return config.ProviderOpenAI }

func (c *OpenAIClassifier) Classify(ctx context.Context, transcript string) (*domain.Classification, error) {
	if c.client == nil {
		return nil, domain.NewClassificationFailureError(errNoAPIKey)
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	l := logger.Get().With(zap.String("classifier", c.Name()), zap.String("model", c.model))
	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(transcript, c.maxChars),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.2,
	})
	if err != nil {
		l.Error("Chat completion failed", zap.Error(err))
		return nil, domain.NewClassificationFailureError(fmt.Errorf("chat completion: %w", err))
	}
	if len(resp.Choices) == 0 {
		return nil, domain.NewClassificationFailureError(errors.New("chat completion returned no choices"))
	}

	classification, err := ParseClassification(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, domain.NewClassificationFailureError(err)
	}

	l.Info("Transcript classified",
		zap.String("root_category", classification.RootCategory),
		zap.String("sub_category", classification.SubCategory),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
		zap.Duration("elapsed", time.Since(start)),
	)
	return classification, nil
}
