package record

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/cespare/xxhash/v2"
	"github.com/danmuck/disctl/internal/protocol/wire"
)

// Record is a fixed-order wire layout.
// Fields returns descriptors bound to the receiver's storage and is called
// once per operation, so per-call state (staged counts) never leaks between
// operations.
type Record interface {
	Fields() []Field
}

// Field is one slot of a record layout.
type Field interface {
	Name() string
	Size() int

	encode(w *wire.Writer) error
	decode(r *wire.Reader) error
	equal(other Field) bool
	hash(d *xxhash.Digest)
	describe() Node
}

// Size returns the number of bytes Marshal writes for r.
func Size(r Record) int {
	n := 0
	for _, f := range r.Fields() {
		n += f.Size()
	}
	return n
}

// Marshal writes r's fields in declared order.
func Marshal(w *wire.Writer, r Record) error {
	for _, f := range r.Fields() {
		start := w.Offset()
		if err := f.encode(w); err != nil {
			return wrapField(f.Name(), start, err)
		}
	}
	return nil
}

// Unmarshal reads r's fields in declared order. Once every field is read,
// derived fields are checked against the decoded content so that anything
// Unmarshal accepts can be marshalled again.
func Unmarshal(rd *wire.Reader, r Record) error {
	fields := r.Fields()
	starts := make([]int, len(fields))
	for i, f := range fields {
		starts[i] = rd.Offset()
		if err := f.decode(rd); err != nil {
			return wrapField(f.Name(), starts[i], err)
		}
	}
	for i, f := range fields {
		v, ok := f.(interface{ verify() error })
		if !ok {
			continue
		}
		if err := v.verify(); err != nil {
			return wrapField(f.Name(), starts[i], err)
		}
	}
	return nil
}

// Encode returns the wire form of r in a buffer sized by Size.
func Encode(r Record) ([]byte, error) {
	n := Size(r)
	buf := bytes.NewBuffer(make([]byte, 0, n))
	if err := Marshal(wire.NewWriter(buf), r); err != nil {
		return nil, err
	}
	if buf.Len() != n {
		return nil, fmt.Errorf("%w: %s computed %d bytes, wrote %d", ErrSizeMismatch, typeName(r), n, buf.Len())
	}
	return buf.Bytes(), nil
}

// Decode populates r from buf.
func Decode(buf []byte, r Record, limits wire.Limits) error {
	return Unmarshal(wire.NewReader(buf, limits), r)
}

// Equal reports structural equality: same concrete type and every field equal
// in declared order. Floats compare by bit pattern. Derived counts and
// lengths are not compared; the data they are derived from is.
func Equal(a, b Record) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	fa, fb := a.Fields(), b.Fields()
	if len(fa) != len(fb) {
		return false
	}
	for i := range fa {
		if !fa[i].equal(fb[i]) {
			return false
		}
	}
	return true
}

// Hash returns an xxhash-64 digest of r's canonical field bytes.
// Records that are Equal hash equally.
func Hash(r Record) uint64 {
	d := xxhash.New()
	hashRecord(d, r)
	return d.Sum64()
}

func hashRecord(d *xxhash.Digest, r Record) {
	for _, f := range r.Fields() {
		f.hash(d)
	}
}

// Describe returns the field tree of r.
func Describe(name string, r Record) Node {
	fields := r.Fields()
	n := Node{Name: name, Type: typeName(r), Children: make([]Node, 0, len(fields))}
	for _, f := range fields {
		n.Children = append(n.Children, f.describe())
	}
	return n
}

func typeName(r Record) string {
	t := reflect.TypeOf(r)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
