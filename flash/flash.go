package flash

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Session keys a State is stored under.
const (
	TypeKey    = "response_type"
	MessageKey = "message"
	CodeKey    = "code"
	DataKey    = "data"
	ErrorsKey  = "errors"
)

// Keys lists every key a State may be stored under.
var Keys = []string{TypeKey, MessageKey, CodeKey, DataKey, ErrorsKey}

//go:generate mockgen -destination=flashtest/mock_store.go -package=flashtest . Store

// A Store is the key-value session storage a State is persisted in.
//
// Put stores a value until it is forgotten.
// Flash stores a value that the Store expires after the next request.
type Store interface {
	Get(key string) any
	Put(key string, val any)
	Flash(key string, val any)
	Forget(keys ...string)
}

// A Type identifies whether a State reports a success or an error.
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
)

func (t Type) String() string { return string(t) }

// Valid asserts t is TypeSuccess or TypeError.
func (t Type) Valid() error {
	switch t {
	case TypeSuccess, TypeError:
		return nil
	default:
		return fmt.Errorf("%w: Type %q", ErrNotValid, string(t))
	}
}

// A State is the outcome of one request staged for rendering in a later one.
//
// Data is only meaningful when Type is TypeSuccess and Errors when Type is TypeError.
type State struct {
	Type    Type           `json:"type"`
	Message string         `json:"message"`
	Code    int            `json:"code"`
	Data    map[string]any `json:"data"`
	Errors  map[string]any `json:"errors"`
}

// Success constructs a State of TypeSuccess.
// A code of 0 defaults to 200.
func Success(msg string, code int, data map[string]any) State {
	if code == 0 {
		code = http.StatusOK
	}

	if data == nil {
		data = make(map[string]any)
	}

	return State{Type: TypeSuccess, Message: msg, Code: code, Data: data, Errors: make(map[string]any)}
}

// Failure constructs a State of TypeError.
// A code of 0 defaults to 422.
func Failure(msg string, code int, errs map[string]any) State {
	if code == 0 {
		code = http.StatusUnprocessableEntity
	}

	if errs == nil {
		errs = make(map[string]any)
	}

	return State{Type: TypeError, Message: msg, Code: code, Data: make(map[string]any), Errors: errs}
}

// IsZero asserts whether no State has been written.
func (st State) IsZero() bool { return st.Type == "" }

// Write stages st in s.
//
// If persist is true, each key is Put and remains until Clear.
// Otherwise, each key is Flashed and s expires it after the next request.
//
// Write stores response_type, message, code
// and either data, for TypeSuccess, or errors, for TypeError.
// If st.Type is not valid, Write returns ErrNotValid and stores nothing.
func Write(s Store, st State, persist bool) error {
	if err := st.Type.Valid(); err != nil {
		return err
	}

	store := s.Flash
	if persist {
		store = s.Put
	}

	store(TypeKey, st.Type.String())
	store(MessageKey, st.Message)
	store(CodeKey, st.Code)

	switch st.Type {
	case TypeSuccess:
		data := st.Data
		if data == nil {
			data = make(map[string]any)
		}
		store(DataKey, data)

	case TypeError:
		errs := st.Errors
		if errs == nil {
			errs = make(map[string]any)
		}
		store(ErrorsKey, errs)
	}

	return nil
}

// Read retrieves the State stored in s.
//
// Keys not found in s resolve to zero values, except Data and Errors which resolve to empty maps.
// Read does not alter s.
func Read(s Store) State {
	st := State{
		Data:   make(map[string]any),
		Errors: make(map[string]any),
	}

	switch t := s.Get(TypeKey).(type) {
	case string:
		st.Type = Type(t)
	case Type:
		st.Type = t
	}

	if msg, ok := s.Get(MessageKey).(string); ok {
		st.Message = msg
	}

	st.Code = toInt(s.Get(CodeKey))

	if data, ok := s.Get(DataKey).(map[string]any); ok && data != nil {
		st.Data = data
	}

	if errs, ok := s.Get(ErrorsKey).(map[string]any); ok && errs != nil {
		st.Errors = errs
	}

	return st
}

// Clear removes every key a State may be stored under from s.
func Clear(s Store) { s.Forget(Keys...) }

// toInt converts the numeric types a Store may decode a code into.
func toInt(val any) int {
	switch n := val.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0
		}
		return int(i)
	default:
		return 0
	}
}
