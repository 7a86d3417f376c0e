package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_WrapsCause(t *testing.T) {
	cause := errors.New("upstream 500")
	err := NewClassificationFailureError(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Analysis Failed: AI Error.: upstream 500", err.Error())
	assert.True(t, HasCode(fmt.Errorf("submit: %w", err), CodeClassificationFailure))
	assert.False(t, HasCode(err, CodeAcquisitionFailure))
	assert.False(t, HasCode(cause, CodeClassificationFailure))
}

func TestDomainError_MarshalJSONHidesCause(t *testing.T) {
	err := NewQuizUnavailableError("dQw4w9WgXcQ", errors.New("secret detail"))

	raw, mErr := json.Marshal(err)
	require.NoError(t, mErr)
	assert.NotContains(t, string(raw), "secret detail")

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "QUIZ_UNAVAILABLE", body["code"])
	assert.Equal(t, MsgQuizUnavailable, body["message"])
	assert.Equal(t, map[string]interface{}{"video_id": "dQw4w9WgXcQ"}, body["details"])
}

func TestAcquisitionReasonOf(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewAcquisitionError("id", ReasonNoTranscript, nil))
	assert.Equal(t, ReasonNoTranscript, AcquisitionReasonOf(err))
	assert.Equal(t, ReasonNetwork, AcquisitionReasonOf(errors.New("boom")))
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{NewMissingFieldError("url"), NewOutOfRangeError("answers", 12, 1, 10)}
	assert.Equal(t, "url: field is required (and 1 more)", errs.Error())
	assert.Equal(t, "validation failed", ValidationErrors{}.Error())
}
