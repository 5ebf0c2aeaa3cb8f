package resp

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/responsable/flash"
)

// A Fn is a functional option that mutates the state of the Response.
type Fn func(Responder, *Response) error

// A Response is the internal object a Responder response method builds while applying all
// functional options.
type Response struct {
	w       http.ResponseWriter
	r       *http.Request
	code    int
	persist bool
	state   flash.State
	url     *url.URL
}

// Code sets the response status code.
//
// Used with Responder.Redirect, Code also overrides the code staged by Success or Failure.
func Code(c int) Fn {
	return func(_ Responder, r *Response) error {
		r.code = c
		return nil
	}
}

// Failure stages error state, with the message and errors provided, in the session.
//
// The staged code defaults to http.StatusUnprocessableEntity.
func Failure(msg string, errs map[string]any) Fn {
	return func(_ Responder, r *Response) error {
		r.state = flash.Failure(msg, 0, errs)
		return nil
	}
}

// Param adds the query parameter to the response's URL.
//
// Used with Responder.Redirect.
func Param(key, val string) Fn {
	return func(_ Responder, r *Response) error {
		if r.url == nil {
			return fmt.Errorf("%w: Url() has not been called", ErrMissingData)
		}

		q := r.url.Query()
		q.Add(key, val)
		r.url.RawQuery = q.Encode()
		return nil
	}
}

// Persist stages state so it remains in the session until Responder.Forget clears it.
//
// Without Persist, staged state is available to the next request only.
func Persist() Fn {
	return func(_ Responder, r *Response) error {
		r.persist = true
		return nil
	}
}

// Success stages success state, with the message and data provided, in the session.
//
// The staged code defaults to http.StatusOK.
func Success(msg string, data map[string]any) Fn {
	return func(_ Responder, r *Response) error {
		r.state = flash.Success(msg, 0, data)
		return nil
	}
}

// ToRoot sets the URL to redirect to as the Responder's root URL.
func ToRoot() Fn {
	return func(d Responder, r *Response) error {
		if d.rootUrl == nil {
			r.url = nil
			return nil
		}

		u := *d.rootUrl
		r.url = &u
		return nil
	}
}

// Url parses u into a URL to redirect to.
//
// Used with Responder.Redirect.
func Url(u string) Fn {
	return func(_ Responder, r *Response) error {
		parsed, err := url.ParseRequestURI(u)
		if err != nil {
			return fmt.Errorf("%w: u is not a valid URL: %v", ErrNotValid, err)
		}
		r.url = parsed
		return nil
	}
}
