package record

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/danmuck/disctl/internal/protocol/wire"
)

// derived is a length-like field computed from the live record on encode.
// The decoded value is read past and discarded.
type derived struct {
	name  string
	width int
	value func() int
}

// Derived8 binds a one-byte field computed by value at encode time.
func Derived8(name string, value func() int) Field {
	return &derived{name: name, width: 1, value: value}
}

// Derived16 binds a two-byte field computed by value at encode time.
func Derived16(name string, value func() int) Field {
	return &derived{name: name, width: 2, value: value}
}

func (d *derived) Name() string { return d.name }
func (d *derived) Size() int    { return d.width }

func (d *derived) encode(w *wire.Writer) error {
	return writeUnsigned(w, d.width, uint64(d.value()))
}

func (d *derived) decode(r *wire.Reader) error {
	return r.Skip(d.width)
}

// verify rejects decoded content whose derived value overflows the field.
func (d *derived) verify() error {
	if v, limit := d.value(), 1<<(8*d.width)-1; v > limit {
		return fmt.Errorf("%w: derived %d does not fit %d bytes", ErrCountOverflow, v, d.width)
	}
	return nil
}

func (d *derived) equal(other Field) bool {
	_, ok := other.(*derived)
	return ok
}

func (d *derived) hash(*xxhash.Digest) {}

func (d *derived) describe() Node {
	return Node{Name: d.name, Type: "derived(" + widthKind(d.width).String() + ")", Value: strconv.Itoa(d.value())}
}
