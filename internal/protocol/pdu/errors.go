package pdu

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownType   = errors.New("pdu: unknown pdu type")
	ErrTypeExists    = errors.New("pdu: type already registered")
	ErrNilFactory    = errors.New("pdu: nil body factory")
	ErrTypeMismatch  = errors.New("pdu: type mismatch")
	ErrInvalidLength = errors.New("pdu: invalid length")
	ErrPduTooLarge   = errors.New("pdu: pdu too large")
	ErrNilBody       = errors.New("pdu: nil body")
)

// UnknownTypeError reports a header whose PduType has no registered body.
type UnknownTypeError struct {
	Type   Type
	Offset int
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("pdu: unknown pdu type %d at offset %d", uint8(e.Type), e.Offset)
}

func (e *UnknownTypeError) Unwrap() error {
	return ErrUnknownType
}
