package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleQuestions(labels ...string) []Question {
	qs := make([]Question, len(labels))
	for i, l := range labels {
		qs[i] = Question{
			Prompt:  "question",
			Options: []string{"A) one", "B) two", "C) three"},
			Correct: l,
		}
	}
	return qs
}

func TestScoreQuiz(t *testing.T) {
	tests := []struct {
		name       string
		labels     []string
		selections []string
		wantScore  int
		wantPassed bool
		wantMsg    string
	}{
		{
			name:       "one wrong answer fails",
			labels:     []string{"A", "B", "A"},
			selections: []string{"A) x", "C) y", "A) z"},
			wantScore:  2,
			wantPassed: false,
			wantMsg:    "Verification Failed. Score: 2/3. Rewatch the video.",
		},
		{
			name:       "all correct passes",
			labels:     []string{"A", "B", "A"},
			selections: []string{"A) x", "B) y", "A) z"},
			wantScore:  3,
			wantPassed: true,
			wantMsg:    MsgAccessGranted,
		},
		{
			name:       "unselected answers count as wrong",
			labels:     []string{"A", "B", "C"},
			selections: []string{"A) x", "", ""},
			wantScore:  1,
			wantPassed: false,
			wantMsg:    "Verification Failed. Score: 1/3. Rewatch the video.",
		},
		{
			name:       "fewer selections than questions",
			labels:     []string{"A", "B", "C"},
			selections: []string{"A) x"},
			wantScore:  1,
			wantPassed: false,
			wantMsg:    "Verification Failed. Score: 1/3. Rewatch the video.",
		},
		{
			name:       "surrounding whitespace is ignored",
			labels:     []string{" B "},
			selections: []string{"  B) y"},
			wantScore:  1,
			wantPassed: true,
			wantMsg:    MsgAccessGranted,
		},
		{
			name:       "empty quiz never passes",
			labels:     nil,
			selections: []string{"A) x"},
			wantScore:  0,
			wantPassed: false,
			wantMsg:    "Verification Failed. Score: 0/0. Rewatch the video.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreQuiz(sampleQuestions(tt.labels...), tt.selections)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, len(tt.labels), got.Total)
			assert.Equal(t, tt.wantPassed, got.Passed)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}
}

func TestScoreQuiz_ReportsPerQuestionCorrectness(t *testing.T) {
	got := ScoreQuiz(sampleQuestions("A", "B", "A"), []string{"A) x", "C) y", "A) z"})
	assert.Equal(t, []bool{true, false, true}, got.Correct)
}
