package middleware

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"doccstock/internal/core/apperror"
)

// SetupValidator makes gin's validator report JSON or form field names.
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
	}
}

// BindingError converts a gin binding error into a validation AppError.
// Field-level failures are listed under details.fields.
func BindingError(message string, err error) *apperror.AppError {
	appErr := apperror.NewValidation(message)

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return appErr.WithDetail("error", err.Error())
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = validationMessage(fe)
	}
	return appErr.WithDetail("fields", fields)
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if e.Type().Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must contain at least " + e.Param() + " items"
	case "max":
		return "Must be at most " + e.Param() + " characters"
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "datetime":
		return "Must be a date formatted " + e.Param()
	default:
		return "Invalid value"
	}
}
