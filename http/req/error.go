package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBadAny         = errors.New("bad value for any")
	ErrBadFormat      = errors.New("bad format")
	ErrNotImplemented = errors.New("not implemented")
	ErrNotValid       = errors.New("invalid")
	ErrUnexpected     = errors.New("unexpected")
)

// A ValidationError is an issue with a concrete value not matching the rule set on its field.
type ValidationError struct {
	Field   string `json:"field"`
	Got     any    `json:"got"`
	Rule    string `json:"rule,omitempty"`
	Message string `json:"message,omitempty"`
}

// ValidationErrors is a set of ValidationError.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msg := fmt.Sprintf("field=%q rule=%q got=%q", err.Field, err.Rule, fmt.Sprint(err.Got))
		msgs = append(msgs, msg)
	}

	return strings.Join(msgs, "\n")
}

func (v ValidationErrors) MarshalJSON() ([]byte, error) {
	var errs struct {
		E []ValidationError `json:"validationErrors,omitempty"`
	}

	errs.E = append(errs.E, v...)

	return json.Marshal(errs)
}

func (ValidationErrors) Unwrap() error { return ErrNotValid }

// Errors groups the messages by field,
// in the shape an error envelope or flashed failure carries:
//
//	{"name": ["The name field is required."]}
func (v ValidationErrors) Errors() map[string]any {
	grouped := make(map[string][]string)
	for _, err := range v {
		msg := err.Message
		if msg == "" {
			msg = fmt.Sprintf("The %s field is invalid.", humanize(err.Field))
		}

		grouped[err.Field] = append(grouped[err.Field], msg)
	}

	m := make(map[string]any, len(grouped))
	for field, msgs := range grouped {
		m[field] = msgs
	}

	return m
}

// ErrorsFrom pulls the field errors out of err,
// reporting false if err holds no ValidationErrors.
func ErrorsFrom(err error) (map[string]any, bool) {
	var v ValidationErrors
	if !errors.As(err, &v) {
		return nil, false
	}

	return v.Errors(), true
}
