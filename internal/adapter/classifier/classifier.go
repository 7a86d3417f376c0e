// Package classifier turns a transcript into a topic classification and a
// short multiple-choice quiz using a language model.
package classifier

import (
	"fmt"

	"sanctuary/internal/config"
	"sanctuary/internal/domain"
)

// New returns the classifier selected by cfg.Provider.
func New(cfg config.LLMConfig) (domain.ContentClassifier, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI, "":
		return NewOpenAIClassifier(cfg), nil
	case config.ProviderOllama:
		return NewOllamaClassifier(cfg)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}

var (
	_ domain.ContentClassifier = (*OpenAIClassifier)(nil)
	_ domain.ContentClassifier = (*LangChainClassifier)(nil)
)
