package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sanctuary/internal/domain"
	"sanctuary/internal/logger"
	"sanctuary/internal/repository/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const (
	insertVideoQuery = `INSERT INTO videos (video_id, title, channel_name, transcript, root_category, sub_category, date_added)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (video_id) DO NOTHING`

	selectVideoQuery = `SELECT video_id, title, channel_name, transcript, root_category, sub_category, date_added
FROM videos WHERE video_id = ?`

	upsertQuizQuery = `INSERT OR REPLACE INTO quizzes (video_id, quiz_data, created_at) VALUES (?, ?, ?)`

	selectQuizQuery = `SELECT video_id, quiz_data, created_at FROM quizzes WHERE video_id = ?`
)

// VideoDatabaseAdapter implements domain.VideoRepository on SQLite through
// sqlx. Each call borrows a pooled connection and commits on its own.
type VideoDatabaseAdapter struct {
	db  DBTX
	raw *sqlx.DB
	now func() time.Time
}

// NewVideoDatabaseAdapter creates a new instance of VideoDatabaseAdapter
func NewVideoDatabaseAdapter(db *sqlx.DB) domain.VideoRepository {
	return &VideoDatabaseAdapter{db: db, raw: db, now: time.Now}
}

// AddVideo implements domain.VideoRepository. The first write wins.
func (a *VideoDatabaseAdapter) AddVideo(ctx context.Context, video *domain.Video) (bool, error) {
	if video == nil || video.ID == "" {
		return false, domain.NewInvalidInputError("video id is required")
	}
	if video.CreatedAt.IsZero() {
		video.CreatedAt = a.now().UTC()
	}
	row := models.FromDomainVideo(video)

	res, err := a.db.ExecContext(ctx, insertVideoQuery,
		row.VideoID, row.Title, row.ChannelName, row.Transcript, row.RootCategory, row.SubCategory, row.DateAdded)
	if err != nil {
		return false, fmt.Errorf("failed to insert video %s: %w", video.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result for video %s: %w", video.ID, err)
	}
	if affected == 0 {
		logger.Get().Info("Video already exists, keeping the original record", zap.String("video_id", video.ID))
		return false, nil
	}
	return true, nil
}

// GetVideo implements domain.VideoRepository
func (a *VideoDatabaseAdapter) GetVideo(ctx context.Context, id string) (*domain.Video, error) {
	var row models.Video
	if err := a.db.GetContext(ctx, &row, selectVideoQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get video %s: %w", id, err)
	}
	return row.ToDomain(), nil
}

// SaveQuiz implements domain.VideoRepository. The last write wins.
func (a *VideoDatabaseAdapter) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if quiz == nil || quiz.VideoID == "" {
		return domain.NewInvalidInputError("quiz video id is required")
	}
	payload, err := models.EncodeQuestions(quiz.Questions)
	if err != nil {
		return err
	}
	if quiz.CreatedAt.IsZero() {
		quiz.CreatedAt = a.now().UTC()
	}

	if _, err := a.db.ExecContext(ctx, upsertQuizQuery, quiz.VideoID, payload, quiz.CreatedAt); err != nil {
		return fmt.Errorf("failed to save quiz for video %s: %w", quiz.VideoID, err)
	}
	return nil
}

// GetQuiz implements domain.VideoRepository
func (a *VideoDatabaseAdapter) GetQuiz(ctx context.Context, videoID string) (*domain.Quiz, error) {
	var row models.Quiz
	if err := a.db.GetContext(ctx, &row, selectQuizQuery, videoID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz for video %s: %w", videoID, err)
	}

	quiz, err := row.ToDomain()
	if err != nil {
		logger.Get().Warn("Stored quiz payload does not decode", zap.String("video_id", videoID), zap.Error(err))
		return nil, err
	}
	return quiz, nil
}

// Ping implements domain.VideoRepository
func (a *VideoDatabaseAdapter) Ping(ctx context.Context) error {
	return a.raw.PingContext(ctx)
}
