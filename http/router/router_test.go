package router_test

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/responsable"
	"github.com/xy-planning-network/responsable/envelope"
	"github.com/xy-planning-network/responsable/http/middleware"
	"github.com/xy-planning-network/responsable/http/resp"
	"github.com/xy-planning-network/responsable/http/router"
	"github.com/xy-planning-network/responsable/logger"
)

func newRouter(b *bytes.Buffer) (*router.Router, *resp.Responder) {
	l := logger.New(logger.WithLogger(log.New(b, "", 0)))
	d := resp.NewResponder(resp.WithLogger(l), resp.WithRootUrl("https://example.com"))
	return router.New(responsable.Testing, d, middleware.LogRequest(l)), d
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	m := make(map[string]any)
	require.Nil(t, json.NewDecoder(w.Body).Decode(&m))

	return m
}

func TestRouterHandleRoutes(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	rt, d := newRouter(b)

	var order []string
	tag := func(name string) middleware.Adapter {
		return func(h http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				h.ServeHTTP(w, r)
			})
		}
	}

	rt.OnEveryRequest(tag("every"))
	rt.HandleRoutes(
		[]router.Route{
			{
				Path:   "/widgets",
				Method: http.MethodGet,
				Handler: func(w http.ResponseWriter, r *http.Request) {
					d.Success(w, r, envelope.Data([]string{"sprocket"}))
				},
				Middlewares: []middleware.Adapter{tag("route")},
			},
		},
		tag("group"),
	)

	// Act
	w := serve(rt, http.MethodGet, "https://example.com/widgets")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []any{"sprocket"}, decode(t, w)["data"])
	require.Equal(t, []string{"every", "group", "route"}, order)
	require.Contains(t, b.String(), "GET /widgets")
}

func TestRouterNotFound(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	rt, _ := newRouter(b)

	// Act
	w := serve(rt, http.MethodGet, "https://example.com/missing")

	// Assert
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, map[string]any{
		"status":  false,
		"message": "Not Found",
		"code":    float64(http.StatusNotFound),
		"errors":  map[string]any{},
	}, decode(t, w))
	require.Contains(t, b.String(), "GET /missing")
}

func TestRouterMethodNotAllowed(t *testing.T) {
	// Arrange
	rt, _ := newRouter(new(bytes.Buffer))
	rt.Handle(router.Route{Path: "/widgets", Method: http.MethodPost, Handler: func(w http.ResponseWriter, r *http.Request) {}})

	// Act
	w := serve(rt, http.MethodDelete, "https://example.com/widgets")

	// Assert
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	require.Equal(t, "Method Not Allowed", decode(t, w)["message"])
}

func TestRouterHandleNotFound(t *testing.T) {
	// Arrange
	rt, _ := newRouter(new(bytes.Buffer))
	rt.HandleNotFound(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })

	// Act
	w := serve(rt, http.MethodGet, "https://example.com/missing")

	// Assert
	require.Equal(t, http.StatusTeapot, w.Code)
}

func TestRouterRecoversPanics(t *testing.T) {
	// Arrange
	rt, _ := newRouter(new(bytes.Buffer))
	rt.Handle(router.Route{Path: "/boom", Method: http.MethodGet, Handler: func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}})

	// Act
	w := serve(rt, http.MethodGet, "https://example.com/boom")

	// Assert
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, false, decode(t, w)["status"])
}

func TestRouterSubrouter(t *testing.T) {
	// Arrange
	rt, d := newRouter(new(bytes.Buffer))
	api := rt.Subrouter("/api/v1")
	api.Handle(router.Route{Path: "/widgets", Method: http.MethodGet, Handler: func(w http.ResponseWriter, r *http.Request) {
		d.Success(w, r, envelope.Message("v1"))
	}})

	// Act
	w := serve(rt, http.MethodGet, "https://example.com/api/v1/widgets")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "v1", decode(t, w)["message"])
}

func TestRouterCatchAll(t *testing.T) {
	// Arrange
	rt, d := newRouter(new(bytes.Buffer))
	rt.CatchAll(func(w http.ResponseWriter, r *http.Request) {
		d.Error(w, r, envelope.Code(http.StatusServiceUnavailable), envelope.Message("Down for maintenance"))
	})

	// Act
	w := serve(rt, http.MethodGet, "https://example.com/anything")

	// Assert
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Equal(t, "Down for maintenance", decode(t, w)["message"])
}

func TestRouterStatic(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	require.Nil(t, os.WriteFile(filepath.Join(dir, "app.css"), []byte("body{}"), 0o600))

	rt, _ := newRouter(new(bytes.Buffer))
	rt.Static("/assets/", dir)

	// Act
	w := serve(rt, http.MethodGet, "https://example.com/assets/app.css")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "body{}", w.Body.String())
	require.Equal(t, "max-age=2592000", w.Header().Get("Cache-Control"))
}
