package classifier

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"sanctuary/internal/domain"
)

// DefaultMaxTranscriptChars bounds the transcript text sent to a model.
const DefaultMaxTranscriptChars = 15000

const promptTemplate = `TASK: Classify this text into exactly one of these root categories: %s
Pick the sub category that fits best; the known sub categories per root are: %s
Then write %d multiple-choice verification questions that can only be answered by someone who watched the video.

Rules:
1. Each question has at least 2 options and every option starts with its label, for example "A) ...".
2. "correct" holds only the label of the right option, for example "A".
3. Respond with ONLY a JSON object of this shape:
{"root_category": "...", "sub_category": "...", "questions": [{"q": "...", "options": ["A) ...", "B) ...", "C) ...", "D) ..."], "correct": "A"}]}

TEXT: %s`

// BuildPrompt renders the classification prompt with the transcript cut to
// maxChars characters.
func BuildPrompt(transcript string, maxChars int) string {
	roots, _ := json.Marshal(domain.RootCategories())
	subs := make(map[string][]string, len(domain.Atlas))
	for _, t := range domain.Atlas {
		subs[t.Root] = t.SubCategories
	}
	subJSON, _ := json.Marshal(subs)
	return fmt.Sprintf(promptTemplate, roots, subJSON, domain.QuestionsPerQuiz, Truncate(transcript, maxChars))
}

// Truncate returns at most maxChars characters of s without splitting a
// multi-byte character. maxChars <= 0 selects DefaultMaxTranscriptChars.
func Truncate(s string, maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultMaxTranscriptChars
	}
	if utf8.RuneCountInString(s) <= maxChars {
		return s
	}
	n := 0
	for i := range s {
		if n == maxChars {
			return s[:i]
		}
		n++
	}
	return s
}
