package wire

import (
	"errors"
	"fmt"
)

var (
	ErrTruncated  = errors.New("wire: truncated input")
	ErrWriteFault = errors.New("wire: write fault")
)

// TruncatedError reports a read that needed more bytes than remained.
type TruncatedError struct {
	Offset int
	Want   int
	Have   int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("wire: truncated input at offset %d: want %d bytes, have %d", e.Offset, e.Want, e.Have)
}

func (e *TruncatedError) Unwrap() error {
	return ErrTruncated
}

// WriteFaultError reports a sink that rejected or shortened a write.
type WriteFaultError struct {
	Offset int
	Err    error
}

func (e *WriteFaultError) Error() string {
	return fmt.Sprintf("wire: write fault at offset %d: %v", e.Offset, e.Err)
}

func (e *WriteFaultError) Unwrap() []error {
	return []error{ErrWriteFault, e.Err}
}
