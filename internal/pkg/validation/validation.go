// Package validation runs struct-tag validation on command inputs and maps
// the failures onto the errs taxonomy, one error per field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"aidmatch/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	})
	return instance
}

// Struct validates v against its `validate` tags. Field errors are joined;
// a required field that is missing yields ValueIsRequiredError and every
// other failure ValueIsInvalidError.
func Struct(v any) error {
	err := get().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.NewValueIsInvalidErrorWithCause("input", err)
	}

	joined := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		joined = append(joined, fieldError(fe))
	}
	return errors.Join(joined...)
}

func fieldError(fe validator.FieldError) error {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return errs.NewValueIsRequiredError(field)
	case "oneof":
		return errs.NewValueIsInvalidErrorWithCause(field, fmt.Errorf("must be one of %s", fe.Param()))
	case "max":
		return errs.NewValueIsInvalidErrorWithCause(field, fmt.Errorf("must be at most %s characters", fe.Param()))
	case "min":
		return errs.NewValueIsInvalidErrorWithCause(field, fmt.Errorf("must be at least %s characters", fe.Param()))
	case "uuid":
		return errs.NewValueIsInvalidErrorWithCause(field, errors.New("must be a UUID"))
	default:
		return errs.NewValueIsInvalidErrorWithCause(field, fmt.Errorf("failed %s", fe.Tag()))
	}
}
