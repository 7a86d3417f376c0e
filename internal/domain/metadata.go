package domain

import "context"

// VideoMetadata is the descriptive information shown next to a video.
type VideoMetadata struct {
	Title       string
	ChannelName string
}

// MetadataFetcher looks up descriptive metadata. Callers fall back to
// placeholders on any error.
type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, videoID string) (*VideoMetadata, error)
}
