package models

import (
	"database/sql"
	"testing"
	"time"

	"sanctuary/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideo_RoundTripThroughRow(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	in := &domain.Video{
		ID:           "dQw4w9WgXcQ",
		Title:        "Never Gonna",
		ChannelName:  "Rick",
		Transcript:   "we're no strangers",
		RootCategory: "Humanities",
		SubCategory:  "Arts",
		CreatedAt:    now,
	}

	out := FromDomainVideo(in).ToDomain()
	assert.Equal(t, in, out)
}

func TestVideo_ToDomainFillsPlaceholders(t *testing.T) {
	row := &Video{VideoID: "dQw4w9WgXcQ", Transcript: "text"}
	v := row.ToDomain()
	assert.Equal(t, domain.PlaceholderTitle, v.Title)
	assert.Equal(t, domain.PlaceholderChannel, v.ChannelName)
	assert.True(t, v.CreatedAt.IsZero())
}

func TestQuiz_ToDomain(t *testing.T) {
	payload, err := EncodeQuestions([]domain.Question{
		{Prompt: "What?", Options: []string{"A) yes", "B) no"}, Correct: "A"},
	})
	require.NoError(t, err)
	assert.Equal(t, `[{"q":"What?","options":["A) yes","B) no"],"correct":"A"}]`, payload)

	q, err := (&Quiz{VideoID: "dQw4w9WgXcQ", QuizData: payload, CreatedAt: sql.NullTime{}}).ToDomain()
	require.NoError(t, err)
	require.Len(t, q.Questions, 1)
	assert.Equal(t, "A", q.Questions[0].Correct)
}

func TestDecodeQuestions_Corrupt(t *testing.T) {
	for _, data := range []string{"", "null", "{not json", `{"q":"object not list"}`} {
		_, err := DecodeQuestions(data)
		assert.ErrorIs(t, err, domain.ErrQuizPayloadCorrupt, data)
	}
}

func TestEncodeQuestions_NilIsEmptyList(t *testing.T) {
	payload, err := EncodeQuestions(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", payload)
}
