package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"sanctuary/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const quizKey = "sanctuary:quiz:questions:dQw4w9WgXcQ"

func TestQuizCacheService_PutAndGet(t *testing.T) {
	mockCache := new(MockCache)
	svc := NewQuizCacheService(mockCache, time.Hour)
	ctx := context.Background()

	payload, err := json.Marshal(sampleQuestions())
	require.NoError(t, err)

	mockCache.On("Set", ctx, quizKey, string(payload), time.Hour).Return(nil).Once()
	require.NoError(t, svc.Put(ctx, "dQw4w9WgXcQ", sampleQuestions()))

	mockCache.On("Get", ctx, quizKey).Return(string(payload), nil).Once()
	got, err := svc.Get(ctx, "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, sampleQuestions(), got)

	mockCache.AssertExpectations(t)
}

func TestQuizCacheService_GetMiss(t *testing.T) {
	mockCache := new(MockCache)
	svc := NewQuizCacheService(mockCache, time.Hour)
	ctx := context.Background()

	mockCache.On("Get", ctx, quizKey).Return("", domain.ErrCacheMiss).Once()
	_, err := svc.Get(ctx, "dQw4w9WgXcQ")
	assert.ErrorIs(t, err, ErrQuizNotCached)
}

func TestQuizCacheService_GetCorruptEntryIsDropped(t *testing.T) {
	mockCache := new(MockCache)
	svc := NewQuizCacheService(mockCache, time.Hour)
	ctx := context.Background()

	mockCache.On("Get", ctx, quizKey).Return("{not json", nil).Once()
	mockCache.On("Delete", ctx, quizKey).Return(nil).Once()

	_, err := svc.Get(ctx, "dQw4w9WgXcQ")
	assert.True(t, domain.HasCode(err, domain.CodeInternal))
	mockCache.AssertExpectations(t)
}

func TestQuizCacheService_PutRejectsEmpty(t *testing.T) {
	svc := NewQuizCacheService(new(MockCache), time.Hour)
	err := svc.Put(context.Background(), "dQw4w9WgXcQ", nil)
	assert.True(t, domain.HasCode(err, domain.CodeInvalidInput))
}

func TestQuizCacheService_LoadPopulatesOnMiss(t *testing.T) {
	mockCache := new(MockCache)
	svc := NewQuizCacheService(mockCache, time.Hour)
	ctx := context.Background()

	mockCache.On("Get", ctx, quizKey).Return("", domain.ErrCacheMiss).Once()
	mockCache.On("Set", ctx, quizKey, mock.AnythingOfType("string"), time.Hour).Return(nil).Once()

	got, err := svc.Load(ctx, "dQw4w9WgXcQ", func(context.Context) ([]domain.Question, error) {
		return sampleQuestions(), nil
	})
	require.NoError(t, err)
	assert.Len(t, got, 3)
	mockCache.AssertExpectations(t)
}

func TestQuizCacheService_LoadSurvivesCacheFailure(t *testing.T) {
	mockCache := new(MockCache)
	svc := NewQuizCacheService(mockCache, time.Hour)
	ctx := context.Background()

	mockCache.On("Get", ctx, quizKey).Return("", errors.New("connection refused")).Once()
	mockCache.On("Set", ctx, quizKey, mock.AnythingOfType("string"), time.Hour).Return(errors.New("connection refused")).Once()

	got, err := svc.Load(ctx, "dQw4w9WgXcQ", func(context.Context) ([]domain.Question, error) {
		return sampleQuestions(), nil
	})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestQuizCacheService_LoadPassesLoaderError(t *testing.T) {
	mockCache := new(MockCache)
	svc := NewQuizCacheService(mockCache, time.Hour)
	ctx := context.Background()
	loadErr := errors.New("database is locked")

	mockCache.On("Get", ctx, quizKey).Return("", domain.ErrCacheMiss).Once()

	_, err := svc.Load(ctx, "dQw4w9WgXcQ", func(context.Context) ([]domain.Question, error) {
		return nil, loadErr
	})
	assert.ErrorIs(t, err, loadErr)
	mockCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestQuizCacheService_LoadCollapsesConcurrentMisses(t *testing.T) {
	mockCache := new(MockCache)
	svc := NewQuizCacheService(mockCache, time.Hour)
	ctx := context.Background()

	mockCache.On("Get", ctx, quizKey).Return("", domain.ErrCacheMiss)
	mockCache.On("Set", ctx, quizKey, mock.AnythingOfType("string"), time.Hour).Return(nil)

	var loads atomic.Int32
	release := make(chan struct{})
	loader := func(context.Context) ([]domain.Question, error) {
		loads.Add(1)
		<-release
		return sampleQuestions(), nil
	}

	const callers = 5
	var started, done sync.WaitGroup
	started.Add(callers)
	done.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer done.Done()
			started.Done()
			got, err := svc.Load(ctx, "dQw4w9WgXcQ", loader)
			assert.NoError(t, err)
			assert.Len(t, got, 3)
		}()
	}
	started.Wait()
	// Let the goroutines reach the singleflight group before the loader returns.
	time.Sleep(50 * time.Millisecond)
	close(release)
	done.Wait()

	assert.EqualValues(t, 1, loads.Load())
}

func TestNoopQuizCacheService(t *testing.T) {
	svc := NewQuizCacheService(nil, time.Hour)
	ctx := context.Background()

	assert.NoError(t, svc.Put(ctx, "dQw4w9WgXcQ", sampleQuestions()))
	_, err := svc.Get(ctx, "dQw4w9WgXcQ")
	assert.ErrorIs(t, err, ErrQuizNotCached)
	assert.NoError(t, svc.Invalidate(ctx, "dQw4w9WgXcQ"))
	assert.Equal(t, CacheModeDisabled, svc.Mode(ctx))

	got, err := svc.Load(ctx, "dQw4w9WgXcQ", func(context.Context) ([]domain.Question, error) {
		return sampleQuestions(), nil
	})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestQuizCacheService_Mode(t *testing.T) {
	mockCache := new(MockCache)
	svc := NewQuizCacheService(mockCache, time.Hour)
	ctx := context.Background()

	mockCache.On("Ping", ctx).Return(nil).Once()
	assert.Equal(t, CacheModeRedis, svc.Mode(ctx))

	mockCache.On("Ping", ctx).Return(errors.New("dial tcp: refused")).Once()
	assert.Equal(t, CacheModeUnreachable, svc.Mode(ctx))
}
