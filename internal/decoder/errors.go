package decoder

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedOpcode is returned when the leading byte matches no known
	// opcode pattern. The length of such an instruction is unknown, so
	// decoding cannot continue past it.
	ErrUnsupportedOpcode = errors.New("unsupported opcode")

	// ErrTruncatedInput is returned when the stream ends inside an instruction.
	ErrTruncatedInput = errors.New("truncated input")

	// ErrInternal means a classified kind has no decoding routine.
	ErrInternal = errors.New("internal consistency failure")
)

// DecodeError records where decoding stopped.
type DecodeError struct {
	Offset int
	Opcode byte
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("offset %d (%08b): %v", e.Offset, e.Opcode, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
