package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"sanctuary/internal/domain"
	"sanctuary/internal/util"

	"github.com/go-playground/validator/v10"
)

const videoIDTag = "videoid"

// Validator provides request validation functionality
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation(videoIDTag, func(fl validator.FieldLevel) bool {
		return util.IsVideoID(fl.Field().String())
	})

	return &Validator{validate: v}
}

// ValidateStruct checks a request DTO against its validate tags.
func (v *Validator) ValidateStruct(s interface{}) domain.ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.ValidationErrors{{Field: "body", Code: domain.CodeValidation, Message: err.Error()}}
	}
	return translate(fieldErrs)
}

// ValidateVideoID validates the :videoId path parameter.
func (v *Validator) ValidateVideoID(videoID string) domain.ValidationErrors {
	if strings.TrimSpace(videoID) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("videoId")}
	}
	if err := v.validate.Var(videoID, videoIDTag); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("videoId", videoID)}
	}
	return nil
}

func translate(fieldErrs validator.ValidationErrors) domain.ValidationErrors {
	out := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			out = append(out, domain.NewMissingFieldError(fe.Field()))
		case "min", "max", "len":
			out = append(out, domain.ValidationError{
				Field:   fe.Field(),
				Code:    domain.CodeOutOfRange,
				Message: fmt.Sprintf("field violates %s=%s", fe.Tag(), fe.Param()),
			})
		default:
			out = append(out, domain.NewInvalidFormatError(fe.Field(), fe.Value()))
		}
	}
	return out
}
