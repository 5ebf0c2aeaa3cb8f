package logger

import (
	"bytes"
	"encoding"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"runtime"
)

var _ encoding.TextMarshaler = LogContext{}

const callerTmpl = "%s:%d"

// A LogContext is the structured part of a log line.
//
// The Responder fills one for every failed response it writes,
// the request middleware for every request it logs.
// A SentryLogger turns its Error, Request and RequestID into a Sentry event.
type LogContext struct {
	// Caller replaces the file:line a log line is attributed to.
	// It is not part of the marshaled text.
	//
	// Goroutines use it, via CurrentCaller, to point back at the code that started them.
	Caller string

	// Data holds extra values, e.g., the envelope a failed response carried.
	Data map[string]any

	// Error is the failure being logged, if any.
	Error error

	// Request is the request in flight, if any.
	Request *http.Request

	// RequestID is the X-Request-Id of the request in flight.
	RequestID string
}

// MarshalText renders the LogContext as a JSON object, leaving out empty fields.
//
// A JSON request body is decoded into the "request" object and then restored,
// so handlers further down still read the whole body.
// Data values JSON cannot encode make MarshalText fail.
func (lc LogContext) MarshalText() ([]byte, error) {
	m := make(map[string]any)
	if lc.Data != nil {
		m["data"] = lc.Data
	}

	if lc.Error != nil {
		m["error"] = lc.Error.Error()
	}

	if lc.Request != nil {
		m["request"] = describeRequest(lc.Request)
	}

	if lc.RequestID != "" {
		m["request_id"] = lc.RequestID
	}

	return json.Marshal(m)
}

// String is the MarshalText output, or "" when it fails.
func (lc LogContext) String() string {
	b, err := lc.MarshalText()
	if err != nil {
		return ""
	}

	return string(b)
}

// describeRequest collects the parts of r worth logging.
func describeRequest(r *http.Request) map[string]any {
	d := map[string]any{
		"method": r.Method,
		"url":    r.URL.String(),
		"header": r.Header,
	}

	if r.Form != nil {
		d["form"] = r.Form
	}

	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt != "application/json" || r.Body == nil {
		return d
	}

	read := new(bytes.Buffer)
	body := make(map[string]any)
	if err := json.NewDecoder(io.TeeReader(r.Body, read)).Decode(&body); err == nil {
		d["json"] = body
	}

	r.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(read, r.Body), r.Body}

	return d
}

// CurrentCaller reports the file:line that called the function calling CurrentCaller,
// for use as LogContext.Caller.
//
//	func logLater(l Logger, msg string) {
//		caller := CurrentCaller() // the line calling logLater
//		go func() { l.Info(msg, &LogContext{Caller: caller}) }()
//	}
func CurrentCaller() string {
	_, file, line, _ := runtime.Caller(2)
	return fmt.Sprintf(callerTmpl, immediateFilepath(file), line)
}
