package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"agrisense-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateRequest runs the struct tags of a request DTO and returns a Validation error
// naming the first offending field.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperror.Validation("Invalid request")
	}

	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required":
		return apperror.Validation(fmt.Sprintf("%s is required", field))
	case "oneof":
		return apperror.Validation(fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
	case "email":
		return apperror.Validation(fmt.Sprintf("%s must be a valid email", field))
	case "max":
		return apperror.Validation(fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
	default:
		return apperror.Validation(fmt.Sprintf("%s is invalid", field))
	}
}
