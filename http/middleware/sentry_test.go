package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/responsable"
	"github.com/xy-planning-network/responsable/http/middleware"
)

func TestReportPanic(t *testing.T) {
	// Arrange + Act
	actual := middleware.ReportPanic(responsable.Development, nil)

	// Assert
	require.True(t, isNoop(actual))

	for _, env := range []responsable.Environment{responsable.Development, responsable.Testing} {
		t.Run(env.String(), func(t *testing.T) {
			// Arrange
			b := new(bytes.Buffer)
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
			h := http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) { panic("gears jammed") })

			// Act
			require.NotPanics(t, func() {
				middleware.ReportPanic(env, newResponder(b))(h).ServeHTTP(w, r)
			})

			// Assert
			require.Equal(t, http.StatusInternalServerError, w.Code)
			require.Equal(t, false, decodeEnvelope(t, w)["status"])
			require.Contains(t, b.String(), "recovered panic: gears jammed")
		})
	}

	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	h := http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) { panic(http.ErrAbortHandler) })

	// Act + Assert
	require.PanicsWithValue(t, http.ErrAbortHandler, func() {
		middleware.ReportPanic(responsable.Development, newResponder(new(bytes.Buffer)))(h).ServeHTTP(w, r)
	})
}
