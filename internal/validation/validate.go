package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/argshape/argshape/internal/errors"
)

// Field validates a single reconstructed field value against an argument's
// validation tag, reporting failures under the argument's visible spelling.
func Field(validate *validator.Validate, display string, value any, tag string) error {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}

	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrValidation, err)
	}

	first := invalid[0]

	return fmt.Errorf("%w: `%v` is not a valid %s for %s",
		errors.ErrValidation, first.Value(), first.Tag(), display)
}

// New returns the validator used when none was supplied by the caller.
func New() *validator.Validate {
	return validator.New()
}
