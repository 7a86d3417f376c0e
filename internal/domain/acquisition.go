package domain

import (
	"errors"
	"fmt"
)

// AcquisitionReason tags why a transcript could not be obtained.
type AcquisitionReason string

const (
	ReasonNoTranscript      AcquisitionReason = "no_transcript"
	ReasonNetwork           AcquisitionReason = "network"
	ReasonMalformed         AcquisitionReason = "malformed"
	ReasonMissingCredential AcquisitionReason = "missing_credential"
	ReasonTooShort          AcquisitionReason = "too_short"
)

// AcquisitionError is the only error a TranscriptAcquirer returns.
type AcquisitionError struct {
	VideoID string
	Reason  AcquisitionReason
	Err     error
}

func (e *AcquisitionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transcript acquisition for %s failed (%s): %v", e.VideoID, e.Reason, e.Err)
	}
	return fmt.Sprintf("transcript acquisition for %s failed (%s)", e.VideoID, e.Reason)
}

func (e *AcquisitionError) Unwrap() error {
	return e.Err
}

func NewAcquisitionError(videoID string, reason AcquisitionReason, err error) *AcquisitionError {
	return &AcquisitionError{VideoID: videoID, Reason: reason, Err: err}
}

// AcquisitionReasonOf extracts the tagged reason, defaulting to network for
// untyped errors.
func AcquisitionReasonOf(err error) AcquisitionReason {
	var ae *AcquisitionError
	if errors.As(err, &ae) {
		return ae.Reason
	}
	return ReasonNetwork
}
