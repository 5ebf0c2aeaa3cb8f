/*
Package envelope builds the JSON envelope API endpoints respond with.

Every envelope carries a status, a message and a code.
A successful envelope adds data and, when a [Paginator] is supplied, pagination metadata:

	{
		"status": true,
		"message": "",
		"code": 200,
		"data": {},
		"meta": {}
	}

An error envelope adds errors instead:

	{
		"status": false,
		"message": "",
		"code": 422,
		"errors": {}
	}

Build them with [Success] and [Error], configured through [Opt] functions:

	e := envelope.Success(envelope.Message("found"), envelope.Data(widgets), envelope.Paginate(page))

The [Paginator] implementations are a closed set: [LengthAware], [Simple] and [CursorPage].
The concrete type passed to [Paginate] selects the shape of "meta".
*/
package envelope
