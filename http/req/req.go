package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
)

// A Parser decodes request payloads into structs and validates them.
type Parser struct {
	decoder formDecoder
	validator
}

func NewParser() *Parser {
	return &Parser{
		decoder:   newFormDecoder(),
		validator: newValidator(),
	}
}

// ParseBody decodes into a pointer to a struct the JSON data in *http.Request.Body.
// If successful, ParseBody runs validation against the contents,
// returning ValidationErrors if the data fails validation rules.
//
// ParseBody reads the entire r.Body and can't be read from again.
// Use a [io.TeeReader] if r.Body needs to be reused after calling ParseBody.
func (p *Parser) ParseBody(body io.Reader, structPtr any) error {
	var ourFault *json.InvalidUnmarshalError
	err := json.NewDecoder(body).Decode(structPtr)
	if errors.As(err, &ourFault) {
		return fmt.Errorf("%w: ParseBody called with non-pointer: %s", ErrBadAny, err)
	}

	if err != nil {
		return fmt.Errorf("%w: failed decoding request body: %s", ErrBadFormat, err)
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("%T failed validation: %w", structPtr, err)
	}

	return nil
}

// ParseForm decodes into a pointer to a struct url-encoded form values,
// like those in *http.Request.PostForm.
// If successful, ParseForm runs validation against the contents,
// returning ValidationErrors if the data fails validation rules.
func (p *Parser) ParseForm(form url.Values, structPtr any) error {
	if err := p.decode(form, structPtr); err != nil {
		return fmt.Errorf("failed decoding form: %w", err)
	}

	return p.validateValues(structPtr)
}

// ParseQueryParams decodes into a pointer to a struct the query param data in *http.Request.URL.Query.
// If successful, ParseQueryParams runs validation against the contents,
// returning ValidationErrors if the data fails validation rules.
func (p *Parser) ParseQueryParams(params url.Values, structPtr any) error {
	if err := p.decode(params, structPtr); err != nil {
		return fmt.Errorf("failed decoding request query params: %w", err)
	}

	return p.validateValues(structPtr)
}

func (p *Parser) decode(vals url.Values, structPtr any) error {
	if err := p.decoder.Decode(structPtr, vals); err != nil {
		return translateDecoderError(err)
	}

	return nil
}

func (p *Parser) validateValues(structPtr any) error {
	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("%T failed validation: %w", structPtr, err)
	}

	return nil
}
