package domain

import (
	"fmt"
	"strings"
)

// ScoreResult is the outcome of scoring one quiz submission.
type ScoreResult struct {
	Score   int
	Total   int
	Passed  bool
	Correct []bool
	Message string
}

// ScoreQuiz grades selections against questions. A selection is correct when
// it begins with the question's correct label; missing selections are wrong.
// Passing requires every question to be correct.
func ScoreQuiz(questions []Question, selections []string) ScoreResult {
	result := ScoreResult{
		Total:   len(questions),
		Correct: make([]bool, len(questions)),
	}
	for i, q := range questions {
		if i >= len(selections) {
			break
		}
		answer := strings.TrimSpace(selections[i])
		label := strings.TrimSpace(q.Correct)
		if answer != "" && label != "" && strings.HasPrefix(answer, label) {
			result.Correct[i] = true
			result.Score++
		}
	}

	result.Passed = result.Total > 0 && result.Score == result.Total
	if result.Passed {
		result.Message = MsgAccessGranted
	} else {
		result.Message = fmt.Sprintf(msgVerificationFailedFmt, result.Score, result.Total)
	}
	return result
}
