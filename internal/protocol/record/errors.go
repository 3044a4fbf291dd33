package record

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSizeMismatch    = errors.New("record: encoded size mismatch")
	ErrCountOverflow   = errors.New("record: collection length exceeds count field width")
	ErrTooManyElements = errors.New("record: decoded count exceeds element limit")
	ErrBitLength       = errors.New("record: bit length does not match data")
)

// FieldError locates a codec failure within a record layout.
type FieldError struct {
	Path   string
	Offset int
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("record: field %s at offset %d: %v", e.Path, e.Offset, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// wrapField prefixes name onto an existing FieldError path or creates one.
func wrapField(name string, offset int, err error) error {
	if fe, ok := err.(*FieldError); ok {
		sep := "."
		if strings.HasPrefix(fe.Path, "[") {
			sep = ""
		}
		return &FieldError{Path: name + sep + fe.Path, Offset: fe.Offset, Err: fe.Err}
	}
	return &FieldError{Path: name, Offset: offset, Err: err}
}
