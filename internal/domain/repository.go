package domain

import (
	"context"
	"errors"
)

// ErrQuizPayloadCorrupt is returned by GetQuiz when the stored question list
// cannot be decoded.
var ErrQuizPayloadCorrupt = errors.New("stored quiz payload is corrupt")

// VideoRepository is the persistence port for Video and Quiz records.
type VideoRepository interface {
	// AddVideo inserts a new video. It returns false, without error, when a
	// video with the same ID already exists; the stored record is untouched.
	AddVideo(ctx context.Context, video *Video) (bool, error)

	// GetVideo returns nil, nil when the video does not exist.
	GetVideo(ctx context.Context, id string) (*Video, error)

	// SaveQuiz replaces any existing quiz for quiz.VideoID.
	SaveQuiz(ctx context.Context, quiz *Quiz) error

	// GetQuiz returns nil, nil when no quiz exists for the video.
	GetQuiz(ctx context.Context, videoID string) (*Quiz, error)

	Ping(ctx context.Context) error
}
