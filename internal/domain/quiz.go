package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// QuestionsPerQuiz is the number of questions requested per classification.
	QuestionsPerQuiz = 3
	// MinOptionsPerQuestion is the smallest acceptable option list.
	MinOptionsPerQuestion = 2

	PlaceholderTitle   = "Unknown Title"
	PlaceholderChannel = "Unknown Channel"
)

// Video is the durable record of an analysed video. Transcript never changes
// once written.
type Video struct {
	ID           string
	Title        string
	ChannelName  string
	Transcript   string
	RootCategory string
	SubCategory  string
	CreatedAt    time.Time
}

// WatchURL returns the canonical watch page for the video.
func (v *Video) WatchURL() string {
	return WatchURL(v.ID)
}

func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

func EmbedURL(videoID string) string {
	return "https://www.youtube.com/embed/" + videoID
}

// Question is a multiple-choice question. Each option starts with its label
// ("A) ...") and Correct holds the label of the right option.
type Question struct {
	Prompt  string   `json:"q"`
	Options []string `json:"options"`
	Correct string   `json:"correct"`
}

// Validate checks the shape required for a question to be scorable.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("question has an empty prompt")
	}
	if len(q.Options) < MinOptionsPerQuestion {
		return fmt.Errorf("question %q has %d options, need at least %d", q.Prompt, len(q.Options), MinOptionsPerQuestion)
	}
	if strings.TrimSpace(q.Correct) == "" {
		return fmt.Errorf("question %q has no correct-option marker", q.Prompt)
	}
	return nil
}

// Quiz is the generated question set for a video.
type Quiz struct {
	VideoID   string
	Questions []Question
	CreatedAt time.Time
}

// Classification is the structured result of classifying a transcript.
type Classification struct {
	RootCategory string     `json:"root_category"`
	SubCategory  string     `json:"sub_category"`
	Questions    []Question `json:"questions"`
}

// Validate rejects anything short of a complete, scorable classification.
func (c *Classification) Validate() error {
	if c == nil {
		return fmt.Errorf("classification is empty")
	}
	if strings.TrimSpace(c.RootCategory) == "" {
		return fmt.Errorf("classification has no root_category")
	}
	if len(c.Questions) != QuestionsPerQuiz {
		return fmt.Errorf("classification has %d questions, want %d", len(c.Questions), QuestionsPerQuiz)
	}
	for i, q := range c.Questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}
