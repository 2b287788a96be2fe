package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/xy-planning-network/prestapp"
)

// A Parser decodes request payloads into structs and validates them.
type Parser struct {
	now               func() time.Time
	queryParamDecoder queryParamDecoder
	validator
}

// A ParserOpt configures a Parser.
type ParserOpt func(*Parser)

// WithNow sets the clock date rules, such as "adult", are checked against.
func WithNow(now func() time.Time) ParserOpt {
	return func(p *Parser) {
		p.now = now
	}
}

// NewParser constructs a Parser with prestapp's validation rules registered.
func NewParser(opts ...ParserOpt) *Parser {
	p := &Parser{
		now:               time.Now,
		queryParamDecoder: newQueryParamDecoder(),
	}

	for _, opt := range opts {
		opt(p)
	}

	p.validator = newValidator(p.now)

	return p
}

// ParseBody decodes into a pointer to a struct the JSON data in body.
// If successful, ParseBody runs validation against the contents,
// returning ValidationErrors, which wrap prestapp.ErrNotValid, if the data fails validation rules.
//
// ParseBody reads the entire body and it can't be read from again.
func (p *Parser) ParseBody(body io.Reader, structPtr any) error {
	var ourFault *json.InvalidUnmarshalError
	err := json.NewDecoder(body).Decode(structPtr)
	if errors.As(err, &ourFault) {
		return fmt.Errorf("prestapp/http/req: %w: ParseBody called with non-pointer: %s", prestapp.ErrBadAny, err)
	}

	if err != nil {
		return fmt.Errorf("prestapp/http/req: %w: failed decoding request body: %s", prestapp.ErrBadFormat, err)
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("prestapp/http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}

// ParseQueryParams decodes into a pointer to a struct the query param data in params.
// If successful, ParseQueryParams runs validation against the contents,
// returning ValidationErrors, which wrap prestapp.ErrNotValid, if the data fails validation rules.
func (p *Parser) ParseQueryParams(params url.Values, structPtr any) error {
	if err := p.queryParamDecoder.decode(structPtr, params); err != nil {
		return fmt.Errorf("prestapp/http/req: failed decoding request query params: %w", err)
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("prestapp/http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}
