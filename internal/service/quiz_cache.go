package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"sanctuary/internal/cache"
	"sanctuary/internal/domain"
	"sanctuary/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrQuizNotCached is returned by Get on a cache miss.
var ErrQuizNotCached = errors.New("quiz not found in cache")

// Cache modes reported by diagnostics.
const (
	CacheModeRedis       = "redis"
	CacheModeUnreachable = "redis (unreachable)"
	CacheModeDisabled    = "disabled"
)

// QuestionLoader reads the question list from the store. It returns nil
// questions and a nil error when no quiz exists.
type QuestionLoader func(ctx context.Context) ([]domain.Question, error)

// QuizCacheService is a read-through cache for quiz question lists. Cache
// failures are logged and never surface to callers of Load.
type QuizCacheService interface {
	Get(ctx context.Context, videoID string) ([]domain.Question, error)
	Put(ctx context.Context, videoID string, questions []domain.Question) error
	Invalidate(ctx context.Context, videoID string) error
	// Load returns cached questions or calls load once per video ID, even
	// under concurrent requests, and caches a non-empty result.
	Load(ctx context.Context, videoID string, load QuestionLoader) ([]domain.Question, error)
	Mode(ctx context.Context) string
}

type quizCacheServiceImpl struct {
	cache   domain.Cache
	ttl     time.Duration
	sfGroup singleflight.Group
}

// NewQuizCacheService falls back to a no-op implementation when c is nil.
func NewQuizCacheService(c domain.Cache, ttl time.Duration) QuizCacheService {
	if c == nil {
		logger.Get().Warn("QuizCacheService initialized without a cache; quiz reads go straight to the database")
		return &noopQuizCacheService{}
	}
	return &quizCacheServiceImpl{cache: c, ttl: ttl}
}

func (s *quizCacheServiceImpl) Get(ctx context.Context, videoID string) ([]domain.Question, error) {
	key := cache.QuizQuestionsKey(videoID)
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Debug("Quiz cache miss", zap.String("key", key))
			return nil, ErrQuizNotCached
		}
		return nil, domain.NewInternalError("failed to read quiz from cache", err)
	}
	if data == "" {
		return nil, ErrQuizNotCached
	}

	var questions []domain.Question
	if err := json.Unmarshal([]byte(data), &questions); err != nil {
		// A bad entry is dropped so the next read repopulates it.
		_ = s.cache.Delete(ctx, key)
		return nil, domain.NewInternalError("failed to decode cached quiz", err)
	}
	return questions, nil
}

func (s *quizCacheServiceImpl) Put(ctx context.Context, videoID string, questions []domain.Question) error {
	if len(questions) == 0 {
		return domain.NewInvalidInputError("cannot cache an empty quiz")
	}
	data, err := json.Marshal(questions)
	if err != nil {
		return domain.NewInternalError("failed to encode quiz for caching", err)
	}

	key := cache.QuizQuestionsKey(videoID)
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		return domain.NewInternalError("failed to write quiz to cache", err)
	}
	logger.Get().Debug("Cached quiz", zap.String("key", key), zap.Duration("ttl", s.ttl))
	return nil
}

func (s *quizCacheServiceImpl) Invalidate(ctx context.Context, videoID string) error {
	if err := s.cache.Delete(ctx, cache.QuizQuestionsKey(videoID)); err != nil {
		return domain.NewInternalError("failed to invalidate cached quiz", err)
	}
	return nil
}

func (s *quizCacheServiceImpl) Load(ctx context.Context, videoID string, load QuestionLoader) ([]domain.Question, error) {
	l := logger.Get().With(zap.String("video_id", videoID))

	questions, err := s.Get(ctx, videoID)
	if err == nil {
		return questions, nil
	}
	if !errors.Is(err, ErrQuizNotCached) {
		l.Warn("Quiz cache read failed; using database", zap.Error(err))
	}

	v, err, shared := s.sfGroup.Do(videoID, func() (interface{}, error) {
		loaded, err := load(ctx)
		if err != nil || len(loaded) == 0 {
			return loaded, err
		}
		if putErr := s.Put(ctx, videoID, loaded); putErr != nil {
			l.Warn("Failed to populate quiz cache", zap.Error(putErr))
		}
		return loaded, nil
	})
	if shared {
		l.Debug("Quiz load shared with a concurrent request")
	}
	if err != nil {
		return nil, err
	}
	loaded, _ := v.([]domain.Question)
	return loaded, nil
}

func (s *quizCacheServiceImpl) Mode(ctx context.Context) string {
	if err := s.cache.Ping(ctx); err != nil {
		return CacheModeUnreachable
	}
	return CacheModeRedis
}

// noopQuizCacheService always misses.
type noopQuizCacheService struct{}

func (s *noopQuizCacheService) Get(context.Context, string) ([]domain.Question, error) {
	return nil, ErrQuizNotCached
}

func (s *noopQuizCacheService) Put(context.Context, string, []domain.Question) error { return nil }

func (s *noopQuizCacheService) Invalidate(context.Context, string) error { return nil }

func (s *noopQuizCacheService) Load(ctx context.Context, _ string, load QuestionLoader) ([]domain.Question, error) {
	return load(ctx)
}

func (s *noopQuizCacheService) Mode(context.Context) string { return CacheModeDisabled }
