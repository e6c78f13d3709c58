package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen/wine-dashboard/internal/domain"
)

var (
	// ErrValidation wraps struct tag failures.
	ErrValidation = errors.New("validation failed")

	// ErrBinding wraps query strings that could not be decoded.
	ErrBinding = errors.New("binding failed")
)

// Validatable is implemented by queries with rules beyond struct tags.
type Validatable interface {
	Validate() error
}

var validate = newValidator()

// newValidator names fields by their query parameter and knows the
// "report" tag.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	if err := v.RegisterValidation("report", knownReport); err != nil {
		panic(err)
	}

	return v
}

// BindQueryAndValidate decodes the query string into v, checks its tags and
// then its Validate method. Tag failures wrap ErrValidation; cross-field
// failures are returned as the domain error.
func BindQueryAndValidate(c *gin.Context, v any) error {
	if err := c.ShouldBindQuery(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if cv, ok := v.(Validatable); ok {
		return cv.Validate()
	}

	return nil
}

// IsBindingError reports whether err came from decoding or tag checks.
func IsBindingError(err error) bool {
	return errors.Is(err, ErrBinding) || errors.Is(err, ErrValidation)
}

// ValidationErrors maps each failing query parameter to a message.
func ValidationErrors(err error) map[string]string {
	var fes validator.ValidationErrors
	if !errors.As(err, &fes) {
		return map[string]string{}
	}

	out := make(map[string]string, len(fes))
	for _, fe := range fes {
		out[fe.Field()] = fieldMessage(fe)
	}

	return out
}

func fieldMessage(fe validator.FieldError) string {
	p := fe.Param()

	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "report":
		return "must be a known report"
	case "oneof":
		return "must be one of: " + p
	case "gte", "min":
		return "must be at least " + p
	case "lte", "max":
		return "must be at most " + p
	case "gt":
		return "must be greater than " + p
	case "lt":
		return "must be less than " + p
	default:
		return "failed validation: " + fe.Tag()
	}
}

// knownReport accepts an empty selection, a slug or a sidebar label.
func knownReport(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}

	_, err := domain.ParseReportMode(s)

	return err == nil
}
