package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/responsable/http/session"
)

func newStubSession(t *testing.T) session.Session {
	t.Helper()

	s, err := session.NewStub().GetSession(nil)
	require.Nil(t, err)

	return s
}

func TestSessionPutGet(t *testing.T) {
	// Arrange
	s := newStubSession(t)

	// Act
	s.Put("key", "val")

	// Assert
	require.Equal(t, "val", s.Get("key"))
	require.False(t, s.Age())
	require.Equal(t, "val", s.Get("key"))
}

func TestSessionFlashExpires(t *testing.T) {
	// Arrange
	s := newStubSession(t)
	s.Flash("key", "val")

	// Act + Assert: the next request still sees the value
	require.True(t, s.Age())
	require.Equal(t, "val", s.Get("key"))

	// Act + Assert: the request after does not
	require.True(t, s.Age())
	require.Nil(t, s.Get("key"))

	// Act + Assert: nothing left to age
	require.False(t, s.Age())
}

func TestSessionFlashReadTwice(t *testing.T) {
	// Arrange
	s := newStubSession(t)
	s.Flash("key", "val")
	require.True(t, s.Age())

	// Act
	first := s.Get("key")
	second := s.Get("key")

	// Assert
	require.Equal(t, "val", first)
	require.Equal(t, "val", second)
}

func TestSessionPutAfterFlash(t *testing.T) {
	// Arrange
	s := newStubSession(t)
	s.Flash("key", "flashed")

	// Act
	s.Put("key", "put")
	s.Age()
	s.Age()

	// Assert
	require.Equal(t, "put", s.Get("key"))
}

func TestSessionFlashAfterPut(t *testing.T) {
	// Arrange
	s := newStubSession(t)
	s.Put("key", "put")

	// Act
	s.Flash("key", "flashed")
	s.Age()
	s.Age()

	// Assert
	require.Nil(t, s.Get("key"))
}

func TestSessionReflash(t *testing.T) {
	// Arrange
	s := newStubSession(t)
	s.Flash("key", "first")
	s.Age()

	// Act
	s.Flash("key", "second")
	s.Age()

	// Assert
	require.Equal(t, "second", s.Get("key"))
	s.Age()
	require.Nil(t, s.Get("key"))
}

func TestSessionForget(t *testing.T) {
	// Arrange
	s := newStubSession(t)
	s.Put("put", 1)
	s.Flash("flashed", 2)

	// Act
	s.Forget("put", "flashed", "missing")

	// Assert
	require.Nil(t, s.Get("put"))
	require.Nil(t, s.Get("flashed"))
	require.False(t, s.Age())
}

func TestSessionSetAndDelete(t *testing.T) {
	// Arrange
	s := newStubSession(t)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

	// Act + Assert
	require.Nil(t, s.Set(w, r, "key", "val"))
	require.Equal(t, "val", s.Get("key"))
	require.Nil(t, s.Delete(w, r))
	require.Empty(t, s.ID())
}
