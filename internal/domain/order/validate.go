package order

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

// Numeric quantities with an exponent outside these bounds are classified
// without decimal arithmetic.
const (
	minQuantityExponent = -32
	maxQuantityExponent = 18
)

var maxQuantity = decimal.NewFromInt(1<<63 - 1)

// Valid reports whether p is an acceptable order submission.
func Valid(p Payload) bool {
	_, err := Validate(p)
	return err == nil
}

// Validate checks that p is an object carrying cliente, producto, cantidad
// and ciudad, and that cantidad coerces to an integer greater than zero.
// Unknown keys are ignored. The returned error is always a *ValidationError.
//
// Quantity coercion: JSON numbers must be integral ("5", "5.0" and "1e2" pass,
// "2.9" is rejected rather than truncated); JSON strings must hold a base-10
// integer literal, surrounding whitespace allowed. Booleans, null, objects
// and arrays are rejected.
func Validate(p Payload) (Request, error) {
	if !p.IsObject() {
		return Request{}, &ValidationError{Reason: ReasonNotObject}
	}
	for _, key := range requiredFields {
		if _, ok := p.Field(key); !ok {
			return Request{}, &ValidationError{Field: key, Reason: ReasonMissing}
		}
	}

	raw, _ := p.Field(FieldCantidad)
	qty, reason := coerceQuantity(raw)
	if reason != "" {
		return Request{}, &ValidationError{Field: FieldCantidad, Reason: reason}
	}

	cliente, _ := p.Field(FieldCliente)
	producto, _ := p.Field(FieldProducto)
	ciudad, _ := p.Field(FieldCiudad)
	return Request{
		Cliente:  text(cliente),
		Producto: text(producto),
		Cantidad: qty,
		Ciudad:   text(ciudad),
	}, nil
}

// coerceQuantity converts a raw cantidad value, returning a non-empty reason
// on rejection.
func coerceQuantity(raw jx.Raw) (int64, string) {
	d := jx.DecodeBytes(raw)
	switch d.Next() {
	case jx.Number:
		num, err := d.Num()
		if err != nil {
			return 0, ReasonNotInteger
		}
		return quantityFromNumber(num.String())
	case jx.String:
		s, err := d.Str()
		if err != nil {
			return 0, ReasonNotInteger
		}
		return quantityFromString(s)
	default:
		return 0, ReasonNotInteger
	}
}

func quantityFromNumber(literal string) (int64, string) {
	v, err := decimal.NewFromString(literal)
	if err != nil {
		return 0, ReasonNotInteger
	}
	if reason := exponentReason(v); reason != "" {
		return 0, reason
	}
	if !v.IsInteger() {
		return 0, ReasonNotInteger
	}
	if v.Sign() <= 0 {
		return 0, ReasonNotPositive
	}
	if v.GreaterThan(maxQuantity) {
		return 0, ReasonOutOfRange
	}
	return v.IntPart(), ""
}

// exponentReason classifies numbers whose exponent is outside the bounds
// without doing arithmetic on them. It returns "" for numbers that are safe
// to inspect further.
func exponentReason(v decimal.Decimal) string {
	exp := v.Exponent()
	if exp >= minQuantityExponent && exp <= maxQuantityExponent {
		return ""
	}
	coef := v.Coefficient()
	if coef.Sign() == 0 {
		return ReasonNotPositive
	}
	if exp > maxQuantityExponent {
		// |v| >= 10^19 > max int64.
		if coef.Sign() < 0 {
			return ReasonNotPositive
		}
		return ReasonOutOfRange
	}
	// |v| < 10^(digits+exp), so a non-positive sum means 0 < |v| < 1.
	digits := len(new(big.Int).Abs(coef).String())
	if int64(digits)+int64(exp) <= 0 {
		return ReasonNotInteger
	}
	// The coefficient has more digits than -exp, so the divisor used by
	// IsInteger is bounded by the body size.
	return ""
}

func quantityFromString(s string) (int64, string) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, ReasonOutOfRange
		}
		return 0, ReasonNotInteger
	}
	if n <= 0 {
		return 0, ReasonNotPositive
	}
	return n, ""
}

// text renders a presence-only field: strings unquoted, null as empty, any
// other JSON value as its literal text.
func text(raw jx.Raw) string {
	d := jx.DecodeBytes(raw)
	switch d.Next() {
	case jx.String:
		if s, err := d.Str(); err == nil {
			return s
		}
	case jx.Null:
		return ""
	}
	return string(raw)
}
