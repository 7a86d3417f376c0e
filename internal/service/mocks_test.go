package service

import (
	"context"
	"time"

	"sanctuary/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockVideoRepository ---
type MockVideoRepository struct {
	mock.Mock
}

func (m *MockVideoRepository) AddVideo(ctx context.Context, video *domain.Video) (bool, error) {
	args := m.Called(ctx, video)
	return args.Bool(0), args.Error(1)
}

func (m *MockVideoRepository) GetVideo(ctx context.Context, id string) (*domain.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Video), args.Error(1)
}

func (m *MockVideoRepository) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockVideoRepository) GetQuiz(ctx context.Context, videoID string) (*domain.Quiz, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quiz), args.Error(1)
}

func (m *MockVideoRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockTranscriptAcquirer ---
type MockTranscriptAcquirer struct {
	mock.Mock
}

func (m *MockTranscriptAcquirer) Acquire(ctx context.Context, videoID string) (string, error) {
	args := m.Called(ctx, videoID)
	return args.String(0), args.Error(1)
}

func (m *MockTranscriptAcquirer) Name() string { return "mock-acquirer" }

// --- MockContentClassifier ---
type MockContentClassifier struct {
	mock.Mock
}

func (m *MockContentClassifier) Classify(ctx context.Context, transcript string) (*domain.Classification, error) {
	args := m.Called(ctx, transcript)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Classification), args.Error(1)
}

func (m *MockContentClassifier) Name() string { return "mock-classifier" }

// --- MockMetadataFetcher ---
type MockMetadataFetcher struct {
	mock.Mock
}

func (m *MockMetadataFetcher) FetchMetadata(ctx context.Context, videoID string) (*domain.VideoMetadata, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VideoMetadata), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{Prompt: "Which sort is discussed first?", Options: []string{"A) Quicksort", "B) Bubble sort"}, Correct: "A"},
		{Prompt: "What is its worst case?", Options: []string{"A) O(n)", "B) O(n log n)", "C) O(n^2)"}, Correct: "C"},
		{Prompt: "Is it stable?", Options: []string{"A) Yes", "B) No"}, Correct: "A"},
	}
}

func sampleClassification() *domain.Classification {
	return &domain.Classification{
		RootCategory: "Formal Sciences",
		SubCategory:  "Computer Science",
		Questions:    sampleQuestions(),
	}
}
