package cache

import "strings"

const (
	GlobalKeyPrefix = "sanctuary"
)

// GenerateCacheKey builds "sanctuary:<service>:<object>:<id>", appending any
// params joined by "_" as a final segment.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// QuizQuestionsKey is where the question list of a video's quiz is cached.
func QuizQuestionsKey(videoID string) string {
	return GenerateCacheKey("quiz", "questions", videoID)
}
