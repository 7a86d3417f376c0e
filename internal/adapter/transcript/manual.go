package transcript

import (
	"context"
	"errors"

	"sanctuary/internal/domain"
)

var errPasteOnly = errors.New("manual strategy only accepts pasted transcripts")

// ManualAcquirer is used when transcripts are always pasted by the operator.
// Acquiring by identifier always reports that no transcript is available.
type ManualAcquirer struct{}

func NewManualAcquirer() *ManualAcquirer { return &ManualAcquirer{} }

func (m *ManualAcquirer) Name() string { return "manual" }

func (m *ManualAcquirer) Acquire(_ context.Context, videoID string) (string, error) {
	return "", domain.NewAcquisitionError(videoID, domain.ReasonNoTranscript, errPasteOnly)
}
