package services

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/founder-command-center/internal/dto"
)

var validate = validator.New()

// requiredText applies a non-blank string field. Absence is only an error
// when creating.
func requiredText(v *ValidationError, field string, in dto.Optional[string], creating bool, max int, dst *string) {
	if !in.Set {
		if creating {
			v.Add(field, msgRequired)
		}
		return
	}
	if in.Null {
		v.Add(field, msgNull)
		return
	}
	if in.Invalid {
		v.Add(field, msgInvalidString)
		return
	}

	value := strings.TrimSpace(in.Value)
	if value == "" {
		v.Add(field, msgBlank)
		return
	}
	if !withinLength(v, field, value, max) {
		return
	}
	*dst = value
}

// optionalText applies a nullable string field; null and blank clear it.
func optionalText(v *ValidationError, field string, in dto.Optional[string], max int, dst **string) {
	if !in.Set {
		return
	}
	if in.Invalid {
		v.Add(field, msgInvalidString)
		return
	}

	value := strings.TrimSpace(in.Value)
	if in.Null || value == "" {
		*dst = nil
		return
	}
	if !withinLength(v, field, value, max) {
		return
	}
	*dst = &value
}

// optionalEmail is optionalText restricted to email addresses.
func optionalEmail(v *ValidationError, field string, in dto.Optional[string], max int, dst **string) {
	if in.Present() && strings.TrimSpace(in.Value) != "" {
		if err := validate.Var(strings.TrimSpace(in.Value), "email"); err != nil {
			v.Add(field, msgInvalidEmail)
			return
		}
	}
	optionalText(v, field, in, max, dst)
}

func withinLength(v *ValidationError, field, value string, max int) bool {
	if max <= 0 {
		return true
	}
	if err := validate.Var(value, fmt.Sprintf("max=%d", max)); err != nil {
		v.Add(field, tooLong(max))
		return false
	}
	return true
}
