package middlewares

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shishikan-sg/shishikan/internal/sskerror"
)

type structValidator struct {
	validate *validator.Validate
}

// NewValidator returns an echo.Validator checking the `validate` struct tags.
// Failures are rendered as bad requests naming the JSON field.
func NewValidator() echo.Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &structValidator{validate: validate}
}

// Validate implements echo.Validator.
func (v *structValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Wrap(err, "could not validate params")
	}

	return sskerror.BadRequest(message(verrs[0]))
}

func message(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:] // Strip struct name
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", field)
	case "max":
		return fmt.Sprintf("%s must have at most %s elements or characters.", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s elements or characters.", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid.", field)
	}
}
