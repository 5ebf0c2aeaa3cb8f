package resp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/xy-planning-network/responsable"
	"github.com/xy-planning-network/responsable/envelope"
	"github.com/xy-planning-network/responsable/flash"
	"github.com/xy-planning-network/responsable/http/session"
	"github.com/xy-planning-network/responsable/logger"
)

const responderFrames = 1

// Responder maintains reusable pieces for responding to HTTP requests.
// It exposes many common methods for writing structured data as an HTTP response.
// These are the forms of response Responder can execute:
//
//	Json, and its shorthands Success, Error and Err
//	Redirect
//
// Most oftentimes, setting up a single instance of a Responder suffices for an application.
//
// When redirecting, calling code supplies the destination and any state to stage
// in the session through Fn functions.
type Responder struct {
	logger logger.Logger

	// Pool of *bytes.Buffer to prerender responses into
	pool *sync.Pool

	// Root URL the responder is listening on, the default redirect destination
	rootUrl *url.URL
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
func NewResponder(opts ...ResponderOptFn) *Responder {
	d := &Responder{
		pool: &sync.Pool{New: func() any { return new(bytes.Buffer) }},
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.New()
	}

	if l, ok := d.logger.(logger.SkipLogger); ok {
		d.logger = l.AddSkip(l.Skip() + responderFrames)
	}

	return d
}

// Err logs err and responds with an error envelope with the status code http.StatusInternalServerError.
//
// opts may override the code and message.
func (doer *Responder) Err(w http.ResponseWriter, r *http.Request, err error, opts ...envelope.Opt) error {
	if err != nil {
		doer.logger.Error(err.Error(), newLogContext(r, err, nil))
	}

	opts = append([]envelope.Opt{
		envelope.Code(http.StatusInternalServerError),
		envelope.Message(http.StatusText(http.StatusInternalServerError)),
	}, opts...)

	return doer.Error(w, r, opts...)
}

// Error responds with an error envelope built from opts.
//
// The default status code is http.StatusUnprocessableEntity.
func (doer *Responder) Error(w http.ResponseWriter, r *http.Request, opts ...envelope.Opt) error {
	return doer.Json(w, r, envelope.Error(opts...))
}

// Json writes env as JSON, using env.Code as the response status code.
//
// If env.Code is not a valid HTTP status code, http.StatusInternalServerError is used instead.
func (doer *Responder) Json(w http.ResponseWriter, r *http.Request, env envelope.Envelope) error {
	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	if err := json.NewEncoder(b).Encode(env); err != nil {
		err = fmt.Errorf("cannot encode envelope: %w", err)
		doer.logger.Error(err.Error(), newLogContext(r, err, nil))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}

	code := env.Code
	if code < 100 || code > 999 {
		code = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(code)
	if _, err := b.WriteTo(w); err != nil {
		return err
	}

	return nil
}

// Success responds with a success envelope built from opts.
//
// The default status code is http.StatusOK.
func (doer *Responder) Success(w http.ResponseWriter, r *http.Request, opts ...envelope.Opt) error {
	return doer.Json(w, r, envelope.Success(opts...))
}

// Redirect calls http.Redirect, given Url() set the redirect destination.
// If Url() is not passed in opts, then ToRoot() sets the redirect destination.
//
// If Success() or Failure() staged state, Redirect writes it to the session
// found in the *http.Request.Context and saves the session before redirecting.
// Persist() keeps that state beyond the next request.
//
// The response status code defaults to the staged code or, lacking staged state, 302.
// If that is not a standard redirect 3xx status,
// Redirect overwrites the status code with an appropriate 3xx status code.
func (doer *Responder) Redirect(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, append([]Fn{ToRoot()}, opts...)...)
	if err != nil {
		return err
	}

	// NOTE: because of the default ToRoot(),
	// this only occurs with a Responder missing WithRootUrl.
	if rr.url == nil {
		return fmt.Errorf("%w: cannot redirect, no resp.url", ErrMissingData)
	}

	if !rr.state.IsZero() {
		if rr.code != 0 {
			rr.state.Code = rr.code
		}
		rr.code = rr.state.Code

		s, err := doer.Session(r.Context())
		if err != nil {
			return err
		}

		if err := flash.Write(s, rr.state, rr.persist); err != nil {
			return err
		}

		if err := s.Save(w, r); err != nil {
			err = fmt.Errorf("cannot save session: %w", err)
			doer.logger.Error(err.Error(), newLogContext(r, err, nil))
			return err
		}
	}

	http.Redirect(w, r, rr.url.String(), redirectCode(rr.code))
	return nil
}

// Forget clears any state staged by Redirect from the session found in the *http.Request.Context
// and saves the session.
func (doer *Responder) Forget(w http.ResponseWriter, r *http.Request) error {
	s, err := doer.Session(r.Context())
	if err != nil {
		return err
	}

	flash.Clear(s)
	if err := s.Save(w, r); err != nil {
		err = fmt.Errorf("cannot save session: %w", err)
		doer.logger.Error(err.Error(), newLogContext(r, err, nil))
		return err
	}

	return nil
}

// State retrieves the state staged by Redirect from the session found in the *http.Request.Context.
//
// A zero-value flash.State, save for empty Data and Errors, returns when nothing is staged.
func (doer *Responder) State(r *http.Request) (flash.State, error) {
	s, err := doer.Session(r.Context())
	if err != nil {
		return flash.State{}, err
	}

	return flash.Read(s), nil
}

// Session retrieves the session set in the context as a session.Session.
//
// If the context.Context has no value for responsable.SessionKey, ErrNotFound returns.
func (doer Responder) Session(ctx context.Context) (session.Session, error) {
	val := ctx.Value(responsable.SessionKey)
	if val == nil {
		return session.Session{}, fmt.Errorf("%w: no session found with %q", ErrNotFound, responsable.SessionKey)
	}

	s, ok := val.(session.Session)
	if !ok {
		return session.Session{}, fmt.Errorf("%w: is not session.Session, is %T", ErrNotValid, val)
	}

	return s, nil
}

// do applies all options to the passed in http.ResponseWriter and *http.Request.
//
// Calling code ought to pass Options in the correct order.
// An option requiring something set by another one should come after.
// do nonetheless attempts to retry calling functional options until all do not return errors or,
// a set of options unable to not return errors is reached.
//
// Should all options apply successfully, do returns a validly formed *Response.
func (doer *Responder) do(w http.ResponseWriter, r *http.Request, opts ...Fn) (*Response, error) {
	resp := &Response{w: w, r: r}

	redos := make([]Fn, 0)
	for _, opt := range opts {
		select {
		case <-r.Context().Done():
			return nil, ErrDone
		default:
			if err := opt(*doer, resp); err != nil {
				redos = append(redos, opt)
			}
		}
	}

	for i := -1; i != len(redos); {
		select {
		case <-r.Context().Done():
			return nil, ErrDone
		default:
			// NOTE: redo shrinks redos whenever an option applies,
			// so an unchanged length means the rest will keep failing.
			i = len(redos)
			redos = doer.redo(resp, redos...)
		}
	}

	var err error
	for _, opt := range redos {
		nested := opt(*doer, resp)
		if err == nil {
			err = nested
			continue
		}
		err = fmt.Errorf("%w: %s", nested, err)
	}

	if err != nil {
		return resp, err
	}

	return resp, nil
}

// redo applies as many Options as it can, returning those Options that continue to throw an error.
func (doer *Responder) redo(r *Response, opts ...Fn) []Fn {
	bad := make([]Fn, 0)
	for _, opt := range opts {
		if err := opt(*doer, r); err != nil {
			bad = append(bad, opt)
		}
	}

	return bad
}

// redirectCode maps code onto a 3xx status code.
//
// 4xx and 5xx codes map to 303 See Other, which a client follows with a GET.
func redirectCode(code int) int {
	switch {
	case code >= http.StatusMultipleChoices && code <= http.StatusPermanentRedirect:
		return code
	case code >= http.StatusBadRequest:
		return http.StatusSeeOther
	default:
		return http.StatusFound
	}
}

// newLogContext helps structure a logger.LogContext from the provided parts.
func newLogContext(r *http.Request, err error, data map[string]any) *logger.LogContext {
	ctx := &logger.LogContext{Data: data, Error: err, Request: r}
	if r != nil {
		if id, ok := r.Context().Value(responsable.RequestIDKey).(string); ok {
			ctx.RequestID = id
		}
	}

	return ctx
}
