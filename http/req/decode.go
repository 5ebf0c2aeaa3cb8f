package req

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gorilla/schema"
)

// A formDecoder fills a struct from url.Values.
type formDecoder interface {
	Decode(dst any, src map[string][]string) error
}

var _ formDecoder = (*schema.Decoder)(nil)

func newFormDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)

	return dec
}

// translateDecoderError converts an error returned by *schema.Decoder into standardized errors.
// Some *schema.Decoder errors are issues with calling code;
// some errors are unexpected issues;
// still some are mismatches between the values and the expected shape,
// which become ValidationErrors.
func translateDecoderError(err error) error {
	var pkgErrs schema.MultiError
	if !errors.As(err, &pkgErrs) {
		if strings.Contains(err.Error(), "schema: interface must be a pointer to struct") {
			return fmt.Errorf("%w: %s", ErrBadAny, err)
		}

		return fmt.Errorf("%w: %s", ErrBadFormat, err)
	}

	var validErrs ValidationErrors
	for _, pkgErr := range pkgErrs {
		switch err := pkgErr.(type) {
		case schema.ConversionError:
			// For non-slice values, Index is -1.
			validErrs = append(validErrs, ValidationError{
				Field:   err.Key,
				Got:     fmt.Sprintf("bad value at index %d", max(0, err.Index)),
				Rule:    "must be " + err.Type.String(),
				Message: fmt.Sprintf("The %s field must be of type %s.", humanize(err.Key), err.Type.String()),
			})

		case schema.EmptyFieldError:
			return fmt.Errorf(`%w: set "required" through validate tags, not schema`, ErrNotImplemented)

		case schema.UnknownKeyError:
			validErrs = append(validErrs, ValidationError{
				Field:   err.Key,
				Got:     "value is set",
				Rule:    "unexpected key should not be set",
				Message: fmt.Sprintf("The %s field is not allowed.", humanize(err.Key)),
			})

		default:
			// A field lacking a registered schema.Converter only errors
			// once the values set that field.
			if strings.Contains(err.Error(), "schema: converter not found for") {
				return fmt.Errorf("%w: cannot convert values into unsupported type", ErrNotImplemented)
			}

			return fmt.Errorf("%w: %s", ErrUnexpected, err)
		}
	}

	return validErrs
}
