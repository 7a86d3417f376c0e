package models

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"sanctuary/internal/domain"
	"sanctuary/internal/util"
)

// Video is the row shape of the videos table.
type Video struct {
	VideoID      string         `db:"video_id"`
	Title        sql.NullString `db:"title"`
	ChannelName  sql.NullString `db:"channel_name"`
	Transcript   string         `db:"transcript"`
	RootCategory sql.NullString `db:"root_category"`
	SubCategory  sql.NullString `db:"sub_category"`
	DateAdded    sql.NullTime   `db:"date_added"`
}

// Quiz is the row shape of the quizzes table. QuizData holds the question
// list as JSON text.
type Quiz struct {
	VideoID   string       `db:"video_id"`
	QuizData  string       `db:"quiz_data"`
	CreatedAt sql.NullTime `db:"created_at"`
}

func FromDomainVideo(v *domain.Video) *Video {
	return &Video{
		VideoID:      v.ID,
		Title:        util.StringToNullString(v.Title),
		ChannelName:  util.StringToNullString(v.ChannelName),
		Transcript:   v.Transcript,
		RootCategory: util.StringToNullString(v.RootCategory),
		SubCategory:  util.StringToNullString(v.SubCategory),
		DateAdded:    sql.NullTime{Time: v.CreatedAt, Valid: !v.CreatedAt.IsZero()},
	}
}

func (m *Video) ToDomain() *domain.Video {
	return &domain.Video{
		ID:           m.VideoID,
		Title:        util.NullStringOr(m.Title, domain.PlaceholderTitle),
		ChannelName:  util.NullStringOr(m.ChannelName, domain.PlaceholderChannel),
		Transcript:   m.Transcript,
		RootCategory: util.NullStringOr(m.RootCategory, ""),
		SubCategory:  util.NullStringOr(m.SubCategory, ""),
		CreatedAt:    util.NullTimeOr(m.DateAdded, time.Time{}),
	}
}

// ToDomain decodes the stored payload. A payload that does not decode is
// reported as domain.ErrQuizPayloadCorrupt.
func (m *Quiz) ToDomain() (*domain.Quiz, error) {
	questions, err := DecodeQuestions(m.QuizData)
	if err != nil {
		return nil, err
	}
	return &domain.Quiz{
		VideoID:   m.VideoID,
		Questions: questions,
		CreatedAt: util.NullTimeOr(m.CreatedAt, time.Time{}),
	}, nil
}

// EncodeQuestions serializes a question list for the quiz_data column.
func EncodeQuestions(questions []domain.Question) (string, error) {
	if questions == nil {
		questions = []domain.Question{}
	}
	raw, err := json.Marshal(questions)
	if err != nil {
		return "", fmt.Errorf("failed to encode questions: %w", err)
	}
	return string(raw), nil
}

// DecodeQuestions parses the quiz_data column back into questions.
func DecodeQuestions(data string) ([]domain.Question, error) {
	if data == "" || data == "null" {
		return nil, fmt.Errorf("%w: empty payload", domain.ErrQuizPayloadCorrupt)
	}
	var questions []domain.Question
	if err := json.Unmarshal([]byte(data), &questions); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrQuizPayloadCorrupt, err)
	}
	return questions, nil
}
