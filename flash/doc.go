/*
Package flash stages success or error state in a session so a request following a redirect can render it.

A [State] is stored under five fixed keys:

	response_type  "success" or "error"
	message        string
	code           int
	data           map, success only
	errors         map, error only

[Write] stages a [State] in a [Store], either for exactly the next request (a flash write)
or until [Clear] removes it (a durable write).
[Read] retrieves the [State] without removing it.

Expiring flashed keys is the responsibility of the [Store];
github.com/xy-planning-network/responsable/http/session provides one backed by gorilla/sessions.
*/
package flash
