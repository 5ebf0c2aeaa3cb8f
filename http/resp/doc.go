/*
Package resp provides a high-level API for responding to HTTP requests
with an easy way to configure the responses application-wide.

resp provides two main ways of responding to an HTTP request:
  - writing an [envelope.Envelope] as JSON, with the HTTP status matching the envelope's code
  - redirecting, optionally staging success or error state in the session for the next request

The state staged by [*Responder.Redirect] is retrieved by [*Responder.State]
and cleared by [*Responder.Forget].
*/
package resp
