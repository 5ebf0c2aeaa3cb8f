package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/responsable"
	"github.com/xy-planning-network/responsable/envelope"
	"github.com/xy-planning-network/responsable/http/middleware"
	"github.com/xy-planning-network/responsable/http/resp"
)

// A Route maps a path and HTTP method to an [http.HandlerFunc].
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
type Route struct {
	Path        string
	Method      string
	Handler     http.HandlerFunc
	Middlewares []middleware.Adapter
}

// Router routes requests for resources to their handlers,
// responding with error envelopes when no handler matches.
type Router struct {
	Env           responsable.Environment
	d             *resp.Responder
	everyReqStack []middleware.Adapter
	logReq        middleware.Adapter
	r             *mux.Router
}

// New constructs a [*Router] for the given environment.
//
// d writes the error envelopes for unmatched requests and recovered panics;
// if d is nil, a default *resp.Responder is used.
// logReq is applied to those unmatched requests, alongside every request matching a Route.
func New(env responsable.Environment, d *resp.Responder, logReq middleware.Adapter) *Router {
	if d == nil {
		d = resp.NewResponder()
	}

	if logReq == nil {
		logReq = middleware.NoopAdapter
	}

	r := &Router{Env: env, d: d, logReq: logReq, r: mux.NewRouter()}
	r.HandleNotFound(r.notFound)
	r.r.MethodNotAllowedHandler = middleware.Chain(http.HandlerFunc(r.methodNotAllowed), logReq)

	return r
}

// CatchAll sets up a handler for all routes to funnel to for e.g. maintenance mode.
func (r *Router) CatchAll(handler http.HandlerFunc) {
	r.r.PathPrefix("/").Handler(
		middleware.Chain(
			handler,
			append([]middleware.Adapter{middleware.ReportPanic(r.Env, r.d)}, r.everyReqStack...)...,
		),
	)
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(route Route) {
	r.HandleRoutes([]Route{route})
}

// HandleNotFound sets the provided [http.HandlerFunc] as the default function
// for when no other registered Route is matched.
//
// By default, a [*Router] responds with an error envelope with the status code http.StatusNotFound.
func (r *Router) HandleNotFound(handler http.HandlerFunc) {
	r.r.NotFoundHandler = middleware.Chain(
		handler,
		middleware.ReportPanic(r.Env, r.d),
		r.logReq,
	)
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		mws := []middleware.Adapter{middleware.ReportPanic(r.Env, r.d)}
		mws = append(mws, r.everyReqStack...)
		mws = append(mws, middlewares...)
		mws = append(mws, route.Middlewares...)
		r.r.Handle(route.Path, middleware.Chain(route.Handler, mws...)).Methods(route.Method)
	}
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every request.
//
// Call OnEveryRequest before registering any Routes.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.r.ServeHTTP(w, req)
}

// Static serves the files in dir for requests to endpoints matching the prefix,
// telling clients to cache them for 30 days.
func (r *Router) Static(prefix, dir string) {
	r.r.PathPrefix(prefix).Handler(middleware.Chain(
		http.StripPrefix(prefix, http.FileServer(http.Dir(dir))),
		cacheControlMiddleware(),
		r.logReq,
	))
}

// Subrouter constructs a [Router] that handles requests to endpoints matching the prefix.
//
// e.g., r.Subrouter("/api/v1") handles requests to endpoints like /api/v1/widgets
func (r *Router) Subrouter(prefix string) *Router {
	return &Router{
		Env:           r.Env,
		d:             r.d,
		r:             r.r.PathPrefix(prefix).Subrouter(),
		logReq:        r.logReq,
		everyReqStack: r.everyReqStack,
	}
}

// methodNotAllowed responds with an error envelope with the status code http.StatusMethodNotAllowed.
func (r *Router) methodNotAllowed(w http.ResponseWriter, req *http.Request) {
	r.d.Error(w, req,
		envelope.Code(http.StatusMethodNotAllowed),
		envelope.Message(http.StatusText(http.StatusMethodNotAllowed)),
	)
}

// notFound responds with an error envelope with the status code http.StatusNotFound.
func (r *Router) notFound(w http.ResponseWriter, req *http.Request) {
	r.d.Error(w, req,
		envelope.Code(http.StatusNotFound),
		envelope.Message(http.StatusText(http.StatusNotFound)),
	)
}

// cacheControlMiddleware helps by adding a "Cache-Control" header to the response.
func cacheControlMiddleware() middleware.Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "max-age=2592000") // 30 days
			handler.ServeHTTP(w, r)
		})
	}
}
