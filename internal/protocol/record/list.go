package record

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/danmuck/disctl/internal/protocol/wire"
)

// List binds a slice of records to a count-prefixed collection.
// The count field and the elements field may sit anywhere in the layout as
// long as the count precedes the elements.
type List[T any, P interface {
	*T
	Record
}] struct {
	items   *[]T
	pending int
}

// NewList binds items. Use one List per Fields call.
func NewList[T any, P interface {
	*T
	Record
}](items *[]T) *List[T, P] {
	return &List[T, P]{items: items}
}

func (l *List[T, P]) Count8(name string) Field  { return &countField{name: name, width: 1, src: l} }
func (l *List[T, P]) Count16(name string) Field { return &countField{name: name, width: 2, src: l} }
func (l *List[T, P]) Count32(name string) Field { return &countField{name: name, width: 4, src: l} }

// Elements returns the field holding the records themselves.
func (l *List[T, P]) Elements(name string) Field {
	return &elementsField[T, P]{name: name, list: l}
}

func (l *List[T, P]) count() int { return len(*l.items) }

func (l *List[T, P]) stage(n uint64, r *wire.Reader) error {
	if limit := r.Limits().MaxElements; n > uint64(limit) {
		return fmt.Errorf("%w: %d > %d", ErrTooManyElements, n, limit)
	}
	l.pending = int(n)
	return nil
}

type counted interface {
	count() int
	stage(n uint64, r *wire.Reader) error
}

// countField writes the live collection length and stages the decoded one.
type countField struct {
	name  string
	width int
	src   counted
}

func (c *countField) Name() string { return c.name }
func (c *countField) Size() int    { return c.width }

func (c *countField) encode(w *wire.Writer) error {
	if v, ok := c.src.(interface{ check() error }); ok {
		if err := v.check(); err != nil {
			return err
		}
	}
	return writeUnsigned(w, c.width, uint64(c.src.count()))
}

func (c *countField) decode(r *wire.Reader) error {
	n, err := readUnsigned(r, c.width)
	if err != nil {
		return err
	}
	return c.src.stage(n, r)
}

func (c *countField) equal(other Field) bool {
	_, ok := other.(*countField)
	return ok
}

func (c *countField) hash(*xxhash.Digest) {}

func (c *countField) describe() Node {
	return Node{Name: c.name, Type: "count(" + widthKind(c.width).String() + ")", Value: strconv.Itoa(c.src.count())}
}

type elementsField[T any, P interface {
	*T
	Record
}] struct {
	name string
	list *List[T, P]
}

func (e *elementsField[T, P]) Name() string { return e.name }

func (e *elementsField[T, P]) Size() int {
	n := 0
	items := *e.list.items
	for i := range items {
		n += Size(P(&items[i]))
	}
	return n
}

func (e *elementsField[T, P]) encode(w *wire.Writer) error {
	items := *e.list.items
	for i := range items {
		start := w.Offset()
		if err := Marshal(w, P(&items[i])); err != nil {
			return wrapField(index(i), start, err)
		}
	}
	return nil
}

func (e *elementsField[T, P]) decode(r *wire.Reader) error {
	n := e.list.pending
	e.list.pending = 0
	if n == 0 {
		*e.list.items = nil
		return nil
	}
	var zero T
	if err := r.Need(n * Size(P(&zero))); err != nil {
		return err
	}
	items := make([]T, n)
	for i := range items {
		start := r.Offset()
		if err := Unmarshal(r, P(&items[i])); err != nil {
			return wrapField(index(i), start, err)
		}
	}
	*e.list.items = items
	return nil
}

func (e *elementsField[T, P]) equal(other Field) bool {
	o, ok := other.(*elementsField[T, P])
	if !ok {
		return false
	}
	a, b := *e.list.items, *o.list.items
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(P(&a[i]), P(&b[i])) {
			return false
		}
	}
	return true
}

func (e *elementsField[T, P]) hash(d *xxhash.Digest) {
	items := *e.list.items
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(len(items)))
	_, _ = d.Write(b[:])
	for i := range items {
		hashRecord(d, P(&items[i]))
	}
}

func (e *elementsField[T, P]) describe() Node {
	items := *e.list.items
	var zero T
	n := Node{Name: e.name, Type: "[]" + typeName(P(&zero)), Children: make([]Node, 0, len(items))}
	for i := range items {
		n.Children = append(n.Children, Describe(index(i), P(&items[i])))
	}
	return n
}

func index(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}

func widthKind(width int) Kind {
	switch width {
	case 1:
		return KindUint8
	case 2:
		return KindUint16
	case 4:
		return KindUint32
	default:
		return KindUint64
	}
}

func writeUnsigned(w *wire.Writer, width int, v uint64) error {
	if limit := uint64(1)<<(8*uint(width)) - 1; width < 8 && v > limit {
		return fmt.Errorf("%w: %d does not fit %d bytes", ErrCountOverflow, v, width)
	}
	switch width {
	case 1:
		return w.WriteUint8(uint8(v))
	case 2:
		return w.WriteUint16(uint16(v))
	case 4:
		return w.WriteUint32(uint32(v))
	default:
		return w.WriteUint64(v)
	}
}

func readUnsigned(r *wire.Reader, width int) (uint64, error) {
	switch width {
	case 1:
		v, err := r.ReadUint8()
		return uint64(v), err
	case 2:
		v, err := r.ReadUint16()
		return uint64(v), err
	case 4:
		v, err := r.ReadUint32()
		return uint64(v), err
	default:
		return r.ReadUint64()
	}
}
