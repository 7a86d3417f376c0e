package handler

import (
	"time"

	"sanctuary/internal/domain"
	"sanctuary/internal/dto"
	"sanctuary/internal/logger"
	"sanctuary/internal/middleware"
	"sanctuary/internal/service"
	"sanctuary/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// VerificationHandler handles video submission, quiz and session requests
type VerificationHandler struct {
	service    service.VerificationService
	validator  *validation.Validator
	sessionTTL time.Duration
}

// NewVerificationHandler creates a new VerificationHandler instance
func NewVerificationHandler(svc service.VerificationService, v *validation.Validator, sessionTTL time.Duration) *VerificationHandler {
	if v == nil {
		v = validation.NewValidator()
	}
	return &VerificationHandler{service: svc, validator: v, sessionTTL: sessionTTL}
}

// SubmitVideo godoc
// @Summary Verify a video
// @Description Runs the verification pipeline for a YouTube link: library check, transcript acquisition, classification and archiving
// @Tags videos
// @Accept json
// @Produce json
// @Param request body dto.SubmitVideoRequest true "YouTube link and optional pasted transcript"
// @Success 200 {object} dto.SubmitVideoResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /videos [post]
func (h *VerificationHandler) SubmitVideo(c *fiber.Ctx) error {
	var req dto.SubmitVideoRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Debug("Failed to parse submit body", zap.Error(err))
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateStruct(req); len(errs) > 0 {
		return errs
	}

	result, err := h.service.Submit(c.UserContext(), service.SubmitInput{URL: req.URL, Transcript: req.Transcript})
	if err != nil {
		return err
	}

	if result.SessionToken != "" {
		c.Cookie(&fiber.Cookie{
			Name:     middleware.SessionCookie,
			Value:    result.SessionToken,
			Path:     "/",
			Expires:  time.Now().Add(h.sessionTTL),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}

	return c.JSON(dto.SubmitVideoResponse{
		VideoID:      result.VideoID,
		Stages:       stageNames(result.States),
		CacheHit:     result.CacheHit,
		RootCategory: result.RootCategory,
		SubCategory:  result.SubCategory,
		Message:      result.Message,
		WatchURL:     domain.WatchURL(result.VideoID),
		EmbedURL:     domain.EmbedURL(result.VideoID),
		SessionToken: result.SessionToken,
	})
}

// GetVideo godoc
// @Summary Get an archived video
// @Tags videos
// @Produce json
// @Param videoId path string true "11 character YouTube video id"
// @Param include_transcript query bool false "Include the stored transcript"
// @Success 200 {object} dto.VideoResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /videos/{videoId} [get]
func (h *VerificationHandler) GetVideo(c *fiber.Ctx) error {
	videoID := c.Params("videoId")
	video, err := h.service.GetVideo(c.UserContext(), videoID)
	if err != nil {
		return err
	}

	resp := dto.VideoResponse{
		VideoID:      video.ID,
		Title:        video.Title,
		ChannelName:  video.ChannelName,
		RootCategory: video.RootCategory,
		SubCategory:  video.SubCategory,
		DateAdded:    video.CreatedAt,
		WatchURL:     video.WatchURL(),
		EmbedURL:     domain.EmbedURL(video.ID),
	}
	if c.QueryBool("include_transcript", false) {
		resp.Transcript = video.Transcript
	}
	return c.JSON(resp)
}

// GetQuiz godoc
// @Summary Get the verification quiz of a video
// @Description Correct answers are never included
// @Tags quiz
// @Produce json
// @Param videoId path string true "11 character YouTube video id"
// @Success 200 {object} dto.QuizResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /videos/{videoId}/quiz [get]
func (h *VerificationHandler) GetQuiz(c *fiber.Ctx) error {
	quiz, err := h.service.GetQuiz(c.UserContext(), c.Params("videoId"))
	if err != nil {
		return err
	}

	questions := make([]dto.QuizQuestionResponse, len(quiz.Questions))
	for i, q := range quiz.Questions {
		questions[i] = dto.QuizQuestionResponse{Index: i, Question: q.Prompt, Options: q.Options}
	}
	return c.JSON(dto.QuizResponse{VideoID: quiz.VideoID, Questions: questions})
}

// CheckAnswers godoc
// @Summary Score a quiz attempt
// @Description Every question must be answered correctly to pass
// @Tags quiz
// @Accept json
// @Produce json
// @Param videoId path string true "11 character YouTube video id"
// @Param request body dto.CheckAnswersRequest true "Selected options in question order"
// @Success 200 {object} dto.CheckAnswersResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /videos/{videoId}/quiz/check [post]
func (h *VerificationHandler) CheckAnswers(c *fiber.Ctx) error {
	var req dto.CheckAnswersRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateStruct(req); len(errs) > 0 {
		return errs
	}

	result, err := h.service.CheckAnswers(c.UserContext(), c.Params("videoId"), req.Answers)
	if err != nil {
		return err
	}
	return c.JSON(dto.CheckAnswersResponse{
		Score:   result.Score,
		Total:   result.Total,
		Passed:  result.Passed,
		Correct: result.Correct,
		Message: result.Message,
	})
}

// GetSession godoc
// @Summary Current selection
// @Description Returns the video selected by the session token, or the empty state
// @Tags session
// @Produce json
// @Param X-Session-Token header string false "Session token"
// @Success 200 {object} dto.SessionResponse
// @Router /session [get]
func (h *VerificationHandler) GetSession(c *fiber.Ctx) error {
	claims := middleware.SessionClaims(c)
	if claims == nil {
		return c.JSON(dto.SessionResponse{Message: domain.MsgEmptyState})
	}
	return c.JSON(dto.SessionResponse{
		HasSelection: true,
		SessionID:    claims.ID,
		VideoID:      claims.VideoID,
		WatchURL:     domain.WatchURL(claims.VideoID),
		EmbedURL:     domain.EmbedURL(claims.VideoID),
	})
}

// GetTopics godoc
// @Summary List the Atlas
// @Tags topics
// @Produce json
// @Success 200 {array} dto.TopicResponse
// @Router /topics [get]
func (h *VerificationHandler) GetTopics(c *fiber.Ctx) error {
	topics := make([]dto.TopicResponse, len(domain.Atlas))
	for i, t := range domain.Atlas {
		topics[i] = dto.TopicResponse{RootCategory: t.Root, SubCategories: t.SubCategories}
	}
	return c.JSON(topics)
}

// Health godoc
// @Summary Liveness and configuration report
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *VerificationHandler) Health(c *fiber.Ctx) error {
	d := h.service.Diagnostics(c.UserContext())
	return c.JSON(dto.HealthResponse{
		Status:             d.Status,
		TranscriptStrategy: d.TranscriptStrategy,
		Classifier:         d.Classifier,
		Database:           d.Database,
		Cache:              d.Cache,
		Credentials:        d.Credentials,
	})
}

func stageNames(states []domain.PipelineState) []string {
	names := make([]string, len(states))
	for i, s := range states {
		names[i] = string(s)
	}
	return names
}
