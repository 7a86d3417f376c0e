package classifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sanctuary/internal/config"
	"sanctuary/internal/domain"
	"sanctuary/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

// LangChainClassifier classifies transcripts with any langchaingo model.
type LangChainClassifier struct {
	llm      llms.Model
	name     string
	maxChars int
	timeout  time.Duration
}

func NewLangChainClassifier(llm llms.Model, name string, cfg config.LLMConfig) *LangChainClassifier {
	return &LangChainClassifier{
		llm:      llm,
		name:     name,
		maxChars: cfg.MaxTranscriptChars,
		timeout:  cfg.Timeout,
	}
}

// NewOllamaClassifier talks to a local Ollama server in JSON mode.
func NewOllamaClassifier(cfg config.LLMConfig) (*LangChainClassifier, error) {
	if cfg.Ollama.ServerURL == "" {
		return nil, fmt.Errorf("ollama server URL cannot be empty")
	}
	if cfg.Ollama.Model == "" {
		return nil, fmt.Errorf("ollama model name cannot be empty")
	}

	llm, err := ollama.New(
		ollama.WithModel(cfg.Ollama.Model),
		ollama.WithServerURL(cfg.Ollama.ServerURL),
		ollama.WithFormat("json"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama LLM client: %w", err)
	}
	return NewLangChainClassifier(llm, config.ProviderOllama, cfg), nil
}

func (c *LangChainClassifier) Name() string { return c.name }

func (c *LangChainClassifier) Classify(ctx context.Context, transcript string) (*domain.Classification, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	l := logger.Get().With(zap.String("classifier", c.name))

	raw, err := llms.GenerateFromSinglePrompt(ctx, c.llm, BuildPrompt(transcript, c.maxChars), llms.WithTemperature(0.1))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			l.Error("LLM request timed out", zap.Error(err))
		} else {
			l.Error("LLM call failed", zap.Error(err))
		}
		return nil, domain.NewClassificationFailureError(fmt.Errorf("llm call: %w", err))
	}
	l.Debug("Raw LLM response received", zap.String("raw_response", raw))

	classification, err := ParseClassification(raw)
	if err != nil {
		return nil, domain.NewClassificationFailureError(err)
	}
	l.Info("Transcript classified",
		zap.String("root_category", classification.RootCategory),
		zap.String("sub_category", classification.SubCategory),
	)
	return classification, nil
}
