package order

import (
	"fmt"

	"github.com/go-faster/errors"
)

// Sentinel errors for order intake.
var (
	ErrMalformedBody = errors.New("malformed request body")
	ErrInvalidOrder  = errors.New("invalid order")
)

// Rejection reasons reported by ValidationError.
const (
	ReasonNotObject   = "not an object"
	ReasonMissing     = "missing"
	ReasonNotInteger  = "not an integer"
	ReasonNotPositive = "must be greater than 0"
	ReasonOutOfRange  = "out of range"
)

// ValidationError describes why a structurally decodable payload was rejected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid order: %s", e.Reason)
	}
	return fmt.Sprintf("invalid order: %s %s", e.Field, e.Reason)
}

// Is makes every ValidationError match ErrInvalidOrder.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidOrder
}
