package domain

import "context"

// TranscriptAcquirer produces the spoken text of a video. Failures are
// always *AcquisitionError.
type TranscriptAcquirer interface {
	Acquire(ctx context.Context, videoID string) (string, error)
	// Name identifies the strategy in logs and diagnostics.
	Name() string
}
