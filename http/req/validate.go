package req

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	v10 "github.com/go-playground/validator/v10"
	"github.com/xy-planning-network/responsable"
)

type validator struct {
	valid *v10.Validate
}

// newValidator constructs a validator, which applies default configuration.
//
// Fields are named by their json tag, falling back to their schema tag.
func newValidator() validator {
	v := v10.New()
	v.RegisterValidation("enum", validateEnumerable)
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			name = ""
		}

		if name == "" {
			name = strings.SplitN(field.Tag.Get("schema"), ",", 2)[0]
		}

		if name == "-" {
			name = ""
		}

		return name
	})

	return validator{v}
}

// validate checks the fields on structPtr match the rules set by "validate" struct tags.
// On success, validate returns no error.
// On failure, validate translates each issue to a ValidationError,
// returning them all as ValidationErrors.
func (v validator) validate(structPtr any) error {
	err := v.valid.Struct(structPtr)
	if err == nil {
		return nil
	}

	var errs v10.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("%w: %s", ErrBadAny, err)
	}

	var validateErrs ValidationErrors
	for _, ve := range errs {
		field := ve.Namespace()

		ns := strings.SplitN(field, ".", 2)
		if len(ns) == 2 {
			field = ns[1]
		}

		rule := ve.Tag()
		if ve.Param() != "" {
			rule += "=" + ve.Param()
		}

		validateErrs = append(validateErrs, ValidationError{
			Field:   field,
			Got:     ve.Value(),
			Rule:    rule + "; " + ve.Type().String(),
			Message: message(field, ve.Tag(), ve.Param()),
		})
	}

	return validateErrs
}

// message phrases a failed rule for the people filling in the field.
func message(field, tag, param string) string {
	name := humanize(field)
	switch tag {
	case "required":
		return fmt.Sprintf("The %s field is required.", name)
	case "enum", "oneof":
		return fmt.Sprintf("The selected %s is invalid.", name)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", name)
	case "min", "gte":
		return fmt.Sprintf("The %s field must be at least %s.", name, param)
	case "max", "lte":
		return fmt.Sprintf("The %s field must not be greater than %s.", name, param)
	case "gt":
		return fmt.Sprintf("The %s field must be greater than %s.", name, param)
	case "lt":
		return fmt.Sprintf("The %s field must be less than %s.", name, param)
	}

	if param != "" {
		return fmt.Sprintf("The %s field must satisfy %s=%s.", name, tag, param)
	}

	return fmt.Sprintf("The %s field must satisfy %s.", name, tag)
}

// humanize turns a field path like "address.zip_code" into "address zip code".
func humanize(field string) string {
	return strings.NewReplacer(".", " ", "_", " ").Replace(field)
}

// validateEnumerable validates whether field is a valid Enumerable or slice of valid Enumerable.
func validateEnumerable(fl v10.FieldLevel) bool {
	field := fl.Field()

	if field.Kind() == reflect.Slice {
		vals := []reflect.Value{}
		for i := 0; i < field.Len(); i++ {
			vals = append(vals, field.Index(i))
		}

		return checkEnums(vals...)
	}

	return checkEnums(field)
}

// checkEnums asserts each [reflect.Value] is an Enumerable and valid.
func checkEnums(items ...reflect.Value) bool {
	if len(items) == 0 {
		return false
	}

	for _, item := range items {
		enum, ok := item.Interface().(responsable.Enumerable)
		if !ok || enum.Valid() != nil {
			return false
		}
	}

	return true
}
