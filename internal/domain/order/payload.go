package order

import (
	"unicode/utf8"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// Payload is a decoded submission body before validation: the JSON kind of
// the root value and, for objects, the raw value of every key.
type Payload struct {
	kind   jx.Type
	fields map[string]jx.Raw
}

// ParsePayload decodes body into a Payload. Any well-formed JSON value is
// accepted here; only bodies that are not JSON at all, including bodies that
// are not valid UTF-8, fail with ErrMalformedBody.
func ParsePayload(body []byte) (Payload, error) {
	if !utf8.Valid(body) || !jx.Valid(body) {
		return Payload{}, ErrMalformedBody
	}

	d := jx.DecodeBytes(body)
	p := Payload{kind: d.Next()}
	if p.kind != jx.Object {
		return p, nil
	}

	p.fields = make(map[string]jx.Raw)
	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		raw, err := d.Raw()
		if err != nil {
			return err
		}
		// Raw aliases the decoder buffer.
		p.fields[string(key)] = append(jx.Raw(nil), raw...)
		return nil
	}); err != nil {
		return Payload{}, errors.Wrapf(ErrMalformedBody, "decode: %v", err)
	}
	return p, nil
}

// PayloadFromMap builds an object Payload from already-encoded field values.
func PayloadFromMap(fields map[string]jx.Raw) Payload {
	return Payload{kind: jx.Object, fields: fields}
}

// IsObject reports whether the root value is a JSON object.
func (p Payload) IsObject() bool {
	return p.kind == jx.Object
}

// Field returns the raw JSON value stored under key.
func (p Payload) Field(key string) (jx.Raw, bool) {
	raw, ok := p.fields[key]
	return raw, ok
}
