/*
Package router routes HTTP requests to their handlers through a thin wrapper around [mux.Router].

A [Router] leverages a standardized data model - a [Route] -
when registering how requests should be routed.
A path and an HTTP method comprise a [Route].
An implementation of [http.Handler] is the function called when a request matches a Route.
Before a request gets to a handler, though,
any middlewares added to the Route are called in the order they appear.

It is often the case that many routes for a web server share identical middleware stacks.
[*Router.OnEveryRequest] sets that stack once,
and [*Router.HandleRoutes] registers many logically associated Routes in a single call.

Requests matching no Route, or matching a path but not its method,
receive error envelopes with the status codes 404 and 405, respectively.
Every Route recovers from panics with [middleware.ReportPanic].
*/
package router
