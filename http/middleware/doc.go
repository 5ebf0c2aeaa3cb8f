/*
The middleware package defines what a middleware is in responsable and a set of basic middlewares.

The available middlewares are:
  - CORS
  - Idempotent
  - InjectIPAddress
  - InjectSession
  - LogRequest
  - RateLimit
  - ReportPanic
  - RequestID

Middlewares rejecting a request respond with an error envelope through a *resp.Responder.

Due to the amount of configuration required, middleware does not provide a default middleware chain.
Instead, the following can be copy-pasted:

	vs := middleware.NewVisitors()
	adpts := []middleware.Adapter{
		middleware.ReportPanic(env, responder),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(log),
		middleware.RateLimit(vs, responder),
		middleware.CORS(baseURL),
		middleware.InjectSession(sessionStore, log),
	}
*/
package middleware
