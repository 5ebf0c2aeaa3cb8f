/*
Package req parses HTTP request payloads into structs and validates them.

It supports JSON-encoded bodies, url-encoded forms and query parameters.
In every case, package req expects to parse payloads into a pointer to a struct.
That struct ought to leverage the appropriate struct tags for performing two tasks.
First, matching keys in the payload to fields on the struct ("json" or "schema").
Second, validating the payload's data meets requirements ("validate").

Validation failures return as [ValidationErrors].
[ValidationErrors.Errors] groups their messages by field,
ready for envelope.Errors or resp.Failure:

	var in widgetInput
	if err := parser.ParseBody(r.Body, &in); err != nil {
		if errs, ok := req.ErrorsFrom(err); ok {
			d.Error(w, r, envelope.Message("The given data was invalid."), envelope.Errors(errs))
			return
		}
		...
	}

The "enum" validation tag accepts any responsable.Enumerable whose Valid method returns nil.
*/
package req
