package application

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/vertexinsure/insurance-connector/internal/domain"
)

// Payload is a decoded webhook body. Shopify payloads carry far more fields
// than we consume and their types drift between API versions, so the decode
// is deliberately schemaless: accessors coerce what they can and report
// absence instead of failing.
type Payload map[string]any

// ParsePayload decodes rawBody into a Payload. Numbers are kept as
// json.Number so integer ids survive without float formatting artifacts.
func ParsePayload(rawBody []byte) (Payload, error) {
	dec := json.NewDecoder(bytes.NewReader(rawBody))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, ErrMalformedPayload
	}
	if dec.More() {
		// trailing garbage after the first value
		return nil, ErrMalformedPayload
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, ErrInvalidPayload
	}
	return Payload(obj), nil
}

// String returns the value under key if it is a JSON string.
func (p Payload) String(key string) (string, bool) {
	s, ok := p[key].(string)
	return s, ok
}

// Text returns the string form of the value under key: strings verbatim,
// numbers as written in the source document. Other types do not coerce.
func (p Payload) Text(key string) (string, bool) {
	switch v := p[key].(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	default:
		return "", false
	}
}

// Number returns the value under key as a float64, accepting JSON numbers
// and numeric strings. Unparseable values report absence, never an error.
func (p Payload) Number(key string) (float64, bool) {
	switch v := p[key].(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Object returns the value under key if it is a JSON object.
func (p Payload) Object(key string) (Payload, bool) {
	m, ok := p[key].(map[string]any)
	if !ok {
		return nil, false
	}
	return Payload(m), true
}

// Manifest extracts the insurance-relevant fields. Every field is
// independent: one missing or malformed field never blocks the others.
//
// The customer email resolves in two tiers: the nested customer object is
// consulted first, then the top-level email field. Some upstream apps flatten
// the customer out of the payload, so the tier order matters.
func (p Payload) Manifest() domain.OrderManifest {
	var m domain.OrderManifest

	if id, ok := p.Text("id"); ok {
		m.OrderID = &id
	}
	if price, ok := p.Number("total_price"); ok {
		m.TotalPrice = &price
	}
	if cur, ok := p.String("currency"); ok {
		m.Currency = &cur
	}

	if customer, ok := p.Object("customer"); ok {
		if email, ok := customer.String("email"); ok {
			m.Email = &email
			return m
		}
	}
	if email, ok := p.String("email"); ok {
		m.Email = &email
	}
	return m
}
