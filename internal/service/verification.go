package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"sanctuary/internal/config"
	"sanctuary/internal/domain"
	"sanctuary/internal/logger"
	"sanctuary/internal/util"

	"go.uber.org/zap"
)

const defaultMinPastedChars = 200

// errQuizMissing marks a store miss inside the quiz loader.
var errQuizMissing = errors.New("quiz not stored")

// SubmitInput is one submission: a link and optionally a pasted transcript.
type SubmitInput struct {
	URL        string
	Transcript string
}

// SubmitResult is a successful run of the pipeline.
type SubmitResult struct {
	VideoID      string
	States       []domain.PipelineState
	CacheHit     bool
	RootCategory string
	SubCategory  string
	Message      string
	SessionToken string
}

// Diagnostics describes the configured collaborators.
type Diagnostics struct {
	Status             string
	TranscriptStrategy string
	Classifier         string
	Database           string
	Cache              string
	Credentials        map[string]bool
}

// VerificationService runs the verification pipeline and serves archived
// videos and quizzes.
type VerificationService interface {
	Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error)
	GetVideo(ctx context.Context, videoID string) (*domain.Video, error)
	GetQuiz(ctx context.Context, videoID string) (*domain.Quiz, error)
	CheckAnswers(ctx context.Context, videoID string, selections []string) (*domain.ScoreResult, error)
	Diagnostics(ctx context.Context) *Diagnostics
}

type verificationService struct {
	repo       domain.VideoRepository
	acquirer   domain.TranscriptAcquirer
	classifier domain.ContentClassifier
	metadata   domain.MetadataFetcher
	quizCache  QuizCacheService
	sessions   SessionService
	cfg        *config.Config
}

// NewVerificationService wires the pipeline. metadata and sessions may be
// nil; quizCache nil means no caching.
func NewVerificationService(
	repo domain.VideoRepository,
	acquirer domain.TranscriptAcquirer,
	classifier domain.ContentClassifier,
	metadata domain.MetadataFetcher,
	quizCache QuizCacheService,
	sessions SessionService,
	cfg *config.Config,
) VerificationService {
	if quizCache == nil {
		quizCache = NewQuizCacheService(nil, 0)
	}
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &verificationService{
		repo:       repo,
		acquirer:   acquirer,
		classifier: classifier,
		metadata:   metadata,
		quizCache:  quizCache,
		sessions:   sessions,
		cfg:        cfg,
	}
}

// pipelineRun records the visited states of one submission.
type pipelineRun struct {
	videoID string
	states  []domain.PipelineState
	log     *zap.Logger
}

func (r *pipelineRun) enter(state domain.PipelineState) {
	r.states = append(r.states, state)
	r.log.Debug("Pipeline state", zap.String("state", string(state)))
}

// fail moves to Failed and attaches the trail to err.
func (r *pipelineRun) fail(err *domain.DomainError) error {
	r.enter(domain.StateFailed)
	r.log.Warn("Verification failed", zap.String("code", string(err.Code)), zap.Error(err))
	return err.WithContext("stages", stateNames(r.states))
}

func stateNames(states []domain.PipelineState) []string {
	names := make([]string, len(states))
	for i, s := range states {
		names[i] = string(s)
	}
	return names
}

func (s *verificationService) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	run := &pipelineRun{log: logger.Get()}
	run.enter(domain.StateIdle)

	videoID, ok := util.ExtractVideoID(in.URL)
	if !ok {
		return nil, run.fail(domain.NewInvalidIdentifierError())
	}
	run.videoID = videoID
	run.log = run.log.With(zap.String("video_id", videoID))

	run.enter(domain.StateChecking)
	existing, err := s.repo.GetVideo(ctx, videoID)
	if err != nil {
		return nil, run.fail(domain.NewInternalError("failed to look up video", err))
	}
	if existing != nil {
		run.enter(domain.StateCacheHit)
		return s.ready(run, &SubmitResult{
			CacheHit:     true,
			RootCategory: existing.RootCategory,
			SubCategory:  existing.SubCategory,
			Message:      domain.MsgLibraryHit,
		})
	}

	run.enter(domain.StateAcquiring)
	transcript, derr := s.acquire(ctx, videoID, in.Transcript)
	if derr != nil {
		return nil, run.fail(derr)
	}

	run.enter(domain.StateClassifying)
	classification, err := s.classifier.Classify(ctx, transcript)
	if err != nil {
		var de *domain.DomainError
		if !errors.As(err, &de) || de.Code != domain.CodeClassificationFailure {
			de = domain.NewClassificationFailureError(err)
		}
		return nil, run.fail(de)
	}

	run.enter(domain.StatePersisting)
	if derr := s.persist(ctx, run, videoID, transcript, classification); derr != nil {
		return nil, run.fail(derr)
	}

	return s.ready(run, &SubmitResult{
		RootCategory: classification.RootCategory,
		SubCategory:  classification.SubCategory,
		Message:      domain.MsgVerifiedAndArchived,
	})
}

// acquire prefers pasted text over the configured acquirer.
func (s *verificationService) acquire(ctx context.Context, videoID, pasted string) (string, *domain.DomainError) {
	l := logger.Get().With(zap.String("video_id", videoID))

	if pasted = strings.TrimSpace(pasted); pasted != "" {
		minChars := s.cfg.Transcript.MinPastedChars
		if minChars <= 0 {
			minChars = defaultMinPastedChars
		}
		if n := utf8.RuneCountInString(pasted); n < minChars {
			cause := domain.NewAcquisitionError(videoID, domain.ReasonTooShort,
				fmt.Errorf("pasted transcript has %d characters, need %d", n, minChars))
			return "", domain.NewError(domain.CodeAcquisitionFailure, domain.MsgPastedTooShort, cause)
		}
		l.Info("Using pasted transcript", zap.Int("chars", len(pasted)))
		return pasted, nil
	}

	if s.acquirer == nil {
		return "", domain.NewAcquisitionFailureError(
			domain.NewAcquisitionError(videoID, domain.ReasonMissingCredential, errors.New("no transcript acquirer configured")))
	}
	transcript, err := s.acquirer.Acquire(ctx, videoID)
	if err != nil {
		l.Warn("Transcript acquisition failed",
			zap.String("strategy", s.acquirer.Name()),
			zap.String("reason", string(domain.AcquisitionReasonOf(err))),
			zap.Error(err))
		return "", domain.NewAcquisitionFailureError(err)
	}
	if strings.TrimSpace(transcript) == "" {
		return "", domain.NewAcquisitionFailureError(
			domain.NewAcquisitionError(videoID, domain.ReasonNoTranscript, errors.New("empty transcript")))
	}
	return transcript, nil
}

// persist writes the Video then the Quiz. An existing Video is kept and the
// Quiz is still written.
func (s *verificationService) persist(ctx context.Context, run *pipelineRun, videoID, transcript string, c *domain.Classification) *domain.DomainError {
	md := s.lookupMetadata(ctx, videoID)
	now := time.Now().UTC()

	video := &domain.Video{
		ID:           videoID,
		Title:        md.Title,
		ChannelName:  md.ChannelName,
		Transcript:   transcript,
		RootCategory: c.RootCategory,
		SubCategory:  c.SubCategory,
		CreatedAt:    now,
	}
	created, err := s.repo.AddVideo(ctx, video)
	if err != nil {
		return domain.NewInternalError("failed to save video", err)
	}
	if !created {
		run.log.Info("Video already archived by a concurrent submission; saving quiz anyway")
	}

	quiz := &domain.Quiz{VideoID: videoID, Questions: c.Questions, CreatedAt: now}
	if err := s.repo.SaveQuiz(ctx, quiz); err != nil {
		return domain.NewInternalError("failed to save quiz", err)
	}

	if err := s.quizCache.Put(ctx, videoID, c.Questions); err != nil {
		run.log.Warn("Failed to write quiz through to cache", zap.Error(err))
	}
	run.log.Info("Video verified and archived",
		zap.String("root_category", c.RootCategory),
		zap.String("sub_category", c.SubCategory))
	return nil
}

func (s *verificationService) lookupMetadata(ctx context.Context, videoID string) *domain.VideoMetadata {
	placeholder := &domain.VideoMetadata{Title: domain.PlaceholderTitle, ChannelName: domain.PlaceholderChannel}
	if s.metadata == nil {
		return placeholder
	}
	md, err := s.metadata.FetchMetadata(ctx, videoID)
	if err != nil || md == nil {
		logger.Get().Debug("Metadata lookup failed; using placeholders", zap.String("video_id", videoID), zap.Error(err))
		return placeholder
	}
	return md
}

func (s *verificationService) ready(run *pipelineRun, result *SubmitResult) (*SubmitResult, error) {
	run.enter(domain.StateReady)
	result.VideoID = run.videoID
	if s.sessions != nil {
		token, err := s.sessions.Issue(run.videoID)
		if err != nil {
			run.log.Error("Failed to issue session token", zap.Error(err))
		}
		result.SessionToken = token
	}
	result.States = run.states
	return result, nil
}

func (s *verificationService) GetVideo(ctx context.Context, videoID string) (*domain.Video, error) {
	if !util.IsVideoID(videoID) {
		return nil, domain.NewInvalidIdentifierError()
	}
	video, err := s.repo.GetVideo(ctx, videoID)
	if err != nil {
		return nil, domain.NewInternalError("failed to look up video", err)
	}
	if video == nil {
		return nil, domain.NewNotFoundError(domain.MsgVideoNotFound).WithContext("video_id", videoID)
	}
	return video, nil
}

func (s *verificationService) GetQuiz(ctx context.Context, videoID string) (*domain.Quiz, error) {
	if !util.IsVideoID(videoID) {
		return nil, domain.NewInvalidIdentifierError()
	}

	questions, err := s.quizCache.Load(ctx, videoID, func(ctx context.Context) ([]domain.Question, error) {
		quiz, err := s.repo.GetQuiz(ctx, videoID)
		if err != nil {
			return nil, err
		}
		if quiz == nil || len(quiz.Questions) == 0 {
			return nil, errQuizMissing
		}
		return quiz.Questions, nil
	})
	switch {
	case err == nil:
		return &domain.Quiz{VideoID: videoID, Questions: questions}, nil
	case errors.Is(err, domain.ErrQuizPayloadCorrupt):
		logger.Get().Error("Stored quiz is corrupt", zap.String("video_id", videoID), zap.Error(err))
		return nil, domain.NewQuizUnavailableError(videoID, err)
	case errors.Is(err, errQuizMissing):
		// Distinguish an unknown video from a video whose quiz was never saved.
		if _, verr := s.GetVideo(ctx, videoID); verr != nil {
			return nil, verr
		}
		logger.Get().Warn("Video has no quiz", zap.String("video_id", videoID))
		return nil, domain.NewQuizUnavailableError(videoID, err)
	default:
		return nil, domain.NewInternalError("failed to load quiz", err)
	}
}

func (s *verificationService) CheckAnswers(ctx context.Context, videoID string, selections []string) (*domain.ScoreResult, error) {
	quiz, err := s.GetQuiz(ctx, videoID)
	if err != nil {
		return nil, err
	}
	result := domain.ScoreQuiz(quiz.Questions, selections)
	logger.Get().Info("Quiz checked",
		zap.String("video_id", videoID),
		zap.Int("score", result.Score),
		zap.Int("total", result.Total),
		zap.Bool("passed", result.Passed))
	return &result, nil
}

func (s *verificationService) Diagnostics(ctx context.Context) *Diagnostics {
	d := &Diagnostics{
		Status:   "ok",
		Database: "ok",
		Cache:    s.quizCache.Mode(ctx),
		Credentials: map[string]bool{
			"openai_api_key":  s.cfg.LLM.OpenAI.APIKey != "",
			"youtube_api_key": s.cfg.Transcript.YouTubeAPIKey != "",
			"oauth_token":     s.cfg.Transcript.OAuthToken != "",
			"proxy_api_key":   s.cfg.Transcript.Proxy.APIKey != "",
			"session_secret":  s.sessions != nil && s.sessions.SecretConfigured(),
		},
	}
	if s.acquirer != nil {
		d.TranscriptStrategy = s.acquirer.Name()
	}
	if s.classifier != nil {
		d.Classifier = s.classifier.Name()
	}
	if err := s.repo.Ping(ctx); err != nil {
		logger.Get().Error("Database ping failed", zap.Error(err))
		d.Database = "unreachable"
		d.Status = "degraded"
	}
	return d
}
