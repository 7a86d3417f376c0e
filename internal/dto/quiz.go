package dto

import "time"

// SubmitVideoRequest is the body of POST /api/videos.
// @Description A YouTube link and an optional pasted transcript
type SubmitVideoRequest struct {
	URL        string `json:"url" validate:"required,max=2048"`
	Transcript string `json:"transcript,omitempty" validate:"max=500000"`
}

// SubmitVideoResponse reports the pipeline outcome for a submission.
// @Description Verification pipeline result
type SubmitVideoResponse struct {
	VideoID      string   `json:"video_id"`
	Stages       []string `json:"stages"`
	CacheHit     bool     `json:"cache_hit"`
	RootCategory string   `json:"root_category,omitempty"`
	SubCategory  string   `json:"sub_category,omitempty"`
	Message      string   `json:"message"`
	WatchURL     string   `json:"watch_url"`
	EmbedURL     string   `json:"embed_url"`
	SessionToken string   `json:"session_token,omitempty"`
}

// VideoResponse represents an archived video.
// @Description Archived video record
type VideoResponse struct {
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title"`
	ChannelName  string    `json:"channel_name"`
	RootCategory string    `json:"root_category"`
	SubCategory  string    `json:"sub_category"`
	DateAdded    time.Time `json:"date_added"`
	WatchURL     string    `json:"watch_url"`
	EmbedURL     string    `json:"embed_url"`
	Transcript   string    `json:"transcript,omitempty"`
}

// QuizQuestionResponse is a question without its correct answer.
type QuizQuestionResponse struct {
	Index    int      `json:"index"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// QuizResponse represents a quiz in the API response
// @Description Verification quiz, correct answers hidden
type QuizResponse struct {
	VideoID   string                 `json:"video_id"`
	Questions []QuizQuestionResponse `json:"questions"`
}

// CheckAnswersRequest carries one selected option per question, in order.
// @Description Selected options, e.g. ["A) ...", "C) ..."]
type CheckAnswersRequest struct {
	Answers []string `json:"answers" validate:"required,min=1,max=20,dive,max=1000"`
}

// CheckAnswersResponse represents the scoring result in the API response
type CheckAnswersResponse struct {
	Score   int    `json:"score"`
	Total   int    `json:"total"`
	Passed  bool   `json:"passed"`
	Correct []bool `json:"correct"`
	Message string `json:"message"`
}

// TopicResponse is one Atlas root with its sub categories.
type TopicResponse struct {
	RootCategory  string   `json:"root_category"`
	SubCategories []string `json:"sub_categories"`
}

// HealthResponse is the liveness and diagnostics report.
type HealthResponse struct {
	Status             string          `json:"status"`
	TranscriptStrategy string          `json:"transcript_strategy"`
	Classifier         string          `json:"classifier"`
	Database           string          `json:"database"`
	Cache              string          `json:"cache"`
	Credentials        map[string]bool `json:"credentials"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Status  int         `json:"status"`
	Details interface{} `json:"details,omitempty"`
}
