/*
Package flashtest provides implementations of flash.Store for unit tests.

[Store] keeps values in memory and models the request boundary with [*Store.NextRequest]:
values written with Flash survive exactly one boundary, values written with Put survive until forgotten.

[MockStore] is a gomock mock of flash.Store for asserting which storage calls are made.
*/
package flashtest

import "github.com/xy-planning-network/responsable/flash"

var _ flash.Store = new(Store)

// A Store is an in-memory flash.Store.
type Store struct {
	values map[string]any

	// keys flashed during the current request
	fresh map[string]bool

	// keys flashed during the previous request
	aged map[string]bool
}

// NewStore constructs an empty *Store.
func NewStore() *Store {
	return &Store{
		values: make(map[string]any),
		fresh:  make(map[string]bool),
		aged:   make(map[string]bool),
	}
}

// Get retrieves the value stored under key or nil.
func (s *Store) Get(key string) any { return s.values[key] }

// Put stores val under key until Forget removes it.
func (s *Store) Put(key string, val any) {
	s.values[key] = val
	delete(s.fresh, key)
	delete(s.aged, key)
}

// Flash stores val under key until the request after the next one begins.
func (s *Store) Flash(key string, val any) {
	s.values[key] = val
	s.fresh[key] = true
	delete(s.aged, key)
}

// Forget removes the keys, whether they were Put or Flashed.
func (s *Store) Forget(keys ...string) {
	for _, key := range keys {
		delete(s.values, key)
		delete(s.fresh, key)
		delete(s.aged, key)
	}
}

// Len returns the number of keys stored.
func (s *Store) Len() int { return len(s.values) }

// NextRequest simulates a new request beginning:
// keys flashed before the previous request began are removed
// and keys flashed during the previous request are marked for removal at the next boundary.
func (s *Store) NextRequest() {
	for key := range s.aged {
		delete(s.values, key)
	}

	s.aged = s.fresh
	s.fresh = make(map[string]bool)
}
