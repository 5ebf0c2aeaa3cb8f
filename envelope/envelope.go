package envelope

import (
	"net/http"
	"reflect"
)

const (
	DefaultSuccessCode = http.StatusOK
	DefaultErrorCode   = http.StatusUnprocessableEntity
)

// An Envelope is the top-level JSON structure of an API response.
//
// Data is only set on a successful Envelope and Errors only on an error Envelope.
// Meta is only set when a Paginator is provided to Success.
type Envelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Code    int    `json:"code"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
	Meta    Meta   `json:"meta,omitempty"`
}

// An Opt configures the values Success or Error build an Envelope from.
type Opt func(*options)

type options struct {
	code      int
	data      any
	errors    map[string]any
	message   string
	paginator Paginator
}

// Code sets the code of the Envelope, which is also the HTTP status code of the response.
// Code performs no validation of c.
func Code(c int) Opt {
	return func(o *options) {
		o.code = c
	}
}

// Data sets the payload of a successful Envelope.
//
// Used with Success.
func Data(d any) Opt {
	return func(o *options) {
		o.data = d
	}
}

// Errors sets the field-to-error mapping of an error Envelope.
//
// Used with Error.
func Errors(errs map[string]any) Opt {
	return func(o *options) {
		o.errors = errs
	}
}

// Message sets the human-readable message of the Envelope.
func Message(msg string) Opt {
	return func(o *options) {
		o.message = msg
	}
}

// Paginate attaches pagination metadata to a successful Envelope.
// A nil p is the same as not calling Paginate.
//
// Used with Success.
func Paginate(p Paginator) Opt {
	return func(o *options) {
		o.paginator = p
	}
}

// Success builds a successful Envelope.
//
// Without options, the Envelope has an empty message, code 200 and an empty object for data.
// A nil slice for data becomes an empty slice of the same type and a nil map an empty map,
// so data always encodes as an object or an array.
func Success(opts ...Opt) Envelope {
	o := options{code: DefaultSuccessCode}
	for _, opt := range opts {
		opt(&o)
	}

	e := Envelope{
		Status:  true,
		Message: o.message,
		Code:    o.code,
		Data:    emptyIfNil(o.data),
	}

	if o.paginator != nil {
		e.Meta = o.paginator.Meta()
	}

	return e
}

// Error builds an error Envelope.
//
// Without options, the Envelope has an empty message, code 422 and an empty object for errors.
func Error(opts ...Opt) Envelope {
	o := options{code: DefaultErrorCode}
	for _, opt := range opts {
		opt(&o)
	}

	errs := o.errors
	if errs == nil {
		errs = make(map[string]any)
	}

	return Envelope{
		Status:  false,
		Message: o.message,
		Code:    o.code,
		Errors:  errs,
	}
}

// emptyIfNil replaces an untyped nil, a nil slice or a nil map with an empty value.
func emptyIfNil(d any) any {
	if d == nil {
		return make(map[string]any)
	}

	v := reflect.ValueOf(d)
	switch v.Kind() {
	case reflect.Slice:
		if v.IsNil() {
			return reflect.MakeSlice(v.Type(), 0, 0).Interface()
		}
	case reflect.Map:
		if v.IsNil() {
			return reflect.MakeMap(v.Type()).Interface()
		}
	}

	return d
}
