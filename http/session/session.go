package session

import (
	"net/http"

	gorilla "github.com/gorilla/sessions"
	"github.com/xy-planning-network/responsable/flash"
)

// keys tracking which values were flashed and when.
const (
	flashNewKey = "_flash.new" // flashed during the current request
	flashOldKey = "_flash.old" // flashed during the previous request
)

var _ flash.Store = Session{}

// A Session provides key-value storage across requests for a single client.
//
// Values can be stored until removed, through Put or Set,
// or for only the following request, through Flash.
// Age expires flashed values and ought to run once at the start of every request;
// middleware.InjectSession does so.
//
// Its functionality is implemented by lightly wrapping a gorilla.Session.
// Mutations are only persisted by calling Save.
type Session struct {
	s *gorilla.Session
}

// NewSession constructs a Session from a *gorilla.Session.
func NewSession(g *gorilla.Session) Session { return Session{s: g} }

// Age expires values flashed before the previous request
// and marks values flashed during the previous request to expire at the next call to Age.
//
// Age reports whether the Session changed and so needs to be saved.
func (s Session) Age() bool {
	old := s.keys(flashOldKey)
	fresh := s.keys(flashNewKey)
	if len(old) == 0 && len(fresh) == 0 {
		return false
	}

	for _, key := range old {
		delete(s.s.Values, key)
	}

	s.setKeys(flashOldKey, fresh)
	s.setKeys(flashNewKey, nil)

	return true
}

// Delete removes a session by making the MaxAge negative.
func (s Session) Delete(w http.ResponseWriter, r *http.Request) error {
	s.s.Options.MaxAge = -1
	return s.Save(w, r)
}

// Flash stores val under key until the request following this one ends.
func (s Session) Flash(key string, val any) {
	s.s.Values[key] = val
	s.setKeys(flashNewKey, appendKey(s.keys(flashNewKey), key))
	s.setKeys(flashOldKey, removeKey(s.keys(flashOldKey), key))
}

// Forget removes the values stored under keys, whether they were Put or Flashed.
func (s Session) Forget(keys ...string) {
	for _, key := range keys {
		delete(s.s.Values, key)
		s.unflash(key)
	}
}

// Get retrieves a value from the session according to the key passed in.
func (s Session) Get(key string) any {
	return s.s.Values[key]
}

// ID returns the identifier of the underlying session; it is empty for cookie-backed sessions.
func (s Session) ID() string { return s.s.ID }

// Put stores val under key until it is forgotten.
// If key was flashed, it no longer expires.
func (s Session) Put(key string, val any) {
	s.s.Values[key] = val
	s.unflash(key)
}

// Save wraps gorilla.Session.Save, saving the session in the request.
func (s Session) Save(w http.ResponseWriter, r *http.Request) error { return s.s.Save(r, w) }

// Set stores a value according to the key passed in on the session and saves it.
func (s Session) Set(w http.ResponseWriter, r *http.Request, key string, val any) error {
	s.Put(key, val)
	return s.Save(w, r)
}

// keys retrieves the flash bookkeeping list stored under name.
func (s Session) keys(name string) []string {
	keys, _ := s.s.Values[name].([]string)
	return keys
}

// setKeys stores the flash bookkeeping list under name, removing it when empty.
func (s Session) setKeys(name string, keys []string) {
	if len(keys) == 0 {
		delete(s.s.Values, name)
		return
	}

	s.s.Values[name] = keys
}

// unflash removes key from all flash bookkeeping.
func (s Session) unflash(key string) {
	s.setKeys(flashNewKey, removeKey(s.keys(flashNewKey), key))
	s.setKeys(flashOldKey, removeKey(s.keys(flashOldKey), key))
}

func appendKey(keys []string, key string) []string {
	for _, k := range keys {
		if k == key {
			return keys
		}
	}

	return append(keys, key)
}

func removeKey(keys []string, key string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != key {
			out = append(out, k)
		}
	}

	return out
}
