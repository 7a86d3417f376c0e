package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"sanctuary/internal/domain"
	"sanctuary/internal/logger"

	"go.uber.org/zap"
)

var errNoJSONObject = errors.New("no JSON object found in model response")

// ParseClassification extracts the JSON object from a raw model reply and
// validates it. Reasoning models may wrap the answer in <think> tags or prose.
func ParseClassification(raw string) (*domain.Classification, error) {
	l := logger.Get()

	cleaned := strings.TrimSpace(raw)
	if thinkStart := strings.Index(cleaned, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(cleaned, "</think>"); thinkEnd > thinkStart {
			cleaned = strings.TrimSpace(cleaned[:thinkStart] + cleaned[thinkEnd+len("</think>"):])
		}
	}

	jsonStart := strings.Index(cleaned, "{")
	jsonEnd := strings.LastIndex(cleaned, "}")
	if jsonStart == -1 || jsonEnd <= jsonStart {
		l.Warn("Model response has no JSON object", zap.String("response", cleaned))
		return nil, errNoJSONObject
	}

	var c domain.Classification
	if err := json.Unmarshal([]byte(cleaned[jsonStart:jsonEnd+1]), &c); err != nil {
		l.Warn("Failed to unmarshal model response", zap.Error(err), zap.String("response", cleaned))
		return nil, fmt.Errorf("unmarshal classification: %w", err)
	}

	c.RootCategory = strings.TrimSpace(c.RootCategory)
	c.SubCategory = strings.TrimSpace(c.SubCategory)
	for i := range c.Questions {
		c.Questions[i].Correct = strings.TrimSpace(c.Questions[i].Correct)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	if !domain.IsRootCategory(c.RootCategory) {
		// Accepted as-is; the topic index shows it under its own label.
		l.Info("Model chose a root category outside the atlas", zap.String("root_category", c.RootCategory))
	}
	return &c, nil
}
