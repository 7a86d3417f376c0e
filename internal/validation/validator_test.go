package validation

import (
	"strings"
	"testing"

	"sanctuary/internal/domain"
	"sanctuary/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStruct_SubmitVideoRequest(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateStruct(&dto.SubmitVideoRequest{URL: "https://youtu.be/dQw4w9WgXcQ"}))

	errs := v.ValidateStruct(&dto.SubmitVideoRequest{})
	require.Len(t, errs, 1)
	assert.Equal(t, "url", errs[0].Field)
	assert.Equal(t, domain.CodeMissingField, errs[0].Code)

	errs = v.ValidateStruct(&dto.SubmitVideoRequest{URL: strings.Repeat("x", 2049)})
	require.Len(t, errs, 1)
	assert.Equal(t, domain.CodeOutOfRange, errs[0].Code)
}

func TestValidateStruct_CheckAnswersRequest(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateStruct(&dto.CheckAnswersRequest{Answers: []string{"A) x", "B) y", "C) z"}}))

	errs := v.ValidateStruct(&dto.CheckAnswersRequest{})
	require.Len(t, errs, 1)
	assert.Equal(t, "answers", errs[0].Field)
	assert.Equal(t, domain.CodeMissingField, errs[0].Code)

	errs = v.ValidateStruct(&dto.CheckAnswersRequest{Answers: []string{"A", strings.Repeat("x", 1001)}})
	require.Len(t, errs, 1)
	assert.Equal(t, "answers[1]", errs[0].Field)
	assert.Equal(t, domain.CodeOutOfRange, errs[0].Code)
}

func TestValidateVideoID(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateVideoID("dQw4w9WgXcQ"))

	errs := v.ValidateVideoID("")
	require.Len(t, errs, 1)
	assert.Equal(t, domain.CodeMissingField, errs[0].Code)

	errs = v.ValidateVideoID("dQw4w9WgXc!")
	require.Len(t, errs, 1)
	assert.Equal(t, domain.CodeInvalidFormat, errs[0].Code)
	assert.Equal(t, "videoId", errs[0].Field)
}
