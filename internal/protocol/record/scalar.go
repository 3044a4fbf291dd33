package record

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/danmuck/disctl/internal/protocol/wire"
)

// Kind is the wire representation of a scalar field.
type Kind uint8

const (
	KindUint8 Kind = iota + 1
	KindInt8
	KindUint16
	KindInt16
	KindUint32
	KindInt32
	KindUint64
	KindInt64
	KindFloat32
	KindFloat64
)

var kindNames = map[Kind]string{
	KindUint8:   "uint8",
	KindInt8:    "int8",
	KindUint16:  "uint16",
	KindInt16:   "int16",
	KindUint32:  "uint32",
	KindInt32:   "int32",
	KindUint64:  "uint64",
	KindInt64:   "int64",
	KindFloat32: "float32",
	KindFloat64: "float64",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Size returns the encoded width in bytes.
func (k Kind) Size() int {
	switch k {
	case KindUint8, KindInt8:
		return 1
	case KindUint16, KindInt16:
		return 2
	case KindUint32, KindInt32, KindFloat32:
		return 4
	case KindUint64, KindInt64, KindFloat64:
		return 8
	default:
		return 0
	}
}

type number interface {
	~uint8 | ~int8 | ~uint16 | ~int16 | ~uint32 | ~int32 | ~uint64 | ~int64 | ~float32 | ~float64
}

type scalar[T number] struct {
	name    string
	kind    Kind
	padding bool
	p       *T
}

func Uint8[T ~uint8](name string, p *T) Field     { return &scalar[T]{name: name, kind: KindUint8, p: p} }
func Int8[T ~int8](name string, p *T) Field       { return &scalar[T]{name: name, kind: KindInt8, p: p} }
func Uint16[T ~uint16](name string, p *T) Field   { return &scalar[T]{name: name, kind: KindUint16, p: p} }
func Int16[T ~int16](name string, p *T) Field     { return &scalar[T]{name: name, kind: KindInt16, p: p} }
func Uint32[T ~uint32](name string, p *T) Field   { return &scalar[T]{name: name, kind: KindUint32, p: p} }
func Int32[T ~int32](name string, p *T) Field     { return &scalar[T]{name: name, kind: KindInt32, p: p} }
func Uint64[T ~uint64](name string, p *T) Field   { return &scalar[T]{name: name, kind: KindUint64, p: p} }
func Int64[T ~int64](name string, p *T) Field     { return &scalar[T]{name: name, kind: KindInt64, p: p} }
func Float32[T ~float32](name string, p *T) Field { return &scalar[T]{name: name, kind: KindFloat32, p: p} }
func Float64[T ~float64](name string, p *T) Field { return &scalar[T]{name: name, kind: KindFloat64, p: p} }

// Padding fields are stored like any scalar: written, read, compared and
// hashed by their literal value. They differ only in how they describe.

func Pad8[T ~uint8 | ~int8](name string, p *T) Field {
	return &scalar[T]{name: name, kind: signedKind(p, KindUint8, KindInt8), padding: true, p: p}
}

func Pad16[T ~uint16 | ~int16](name string, p *T) Field {
	return &scalar[T]{name: name, kind: signedKind(p, KindUint16, KindInt16), padding: true, p: p}
}

func Pad32[T ~uint32 | ~int32](name string, p *T) Field {
	return &scalar[T]{name: name, kind: signedKind(p, KindUint32, KindInt32), padding: true, p: p}
}

func signedKind[T number](_ *T, unsigned, signed Kind) Kind {
	var zero T
	if zero-1 < zero {
		return signed
	}
	return unsigned
}

func (s *scalar[T]) Name() string { return s.name }
func (s *scalar[T]) Size() int    { return s.kind.Size() }

func (s *scalar[T]) encode(w *wire.Writer) error {
	v := *s.p
	switch s.kind {
	case KindUint8:
		return w.WriteUint8(uint8(v))
	case KindInt8:
		return w.WriteInt8(int8(v))
	case KindUint16:
		return w.WriteUint16(uint16(v))
	case KindInt16:
		return w.WriteInt16(int16(v))
	case KindUint32:
		return w.WriteUint32(uint32(v))
	case KindInt32:
		return w.WriteInt32(int32(v))
	case KindUint64:
		return w.WriteUint64(uint64(v))
	case KindInt64:
		return w.WriteInt64(int64(v))
	case KindFloat32:
		return w.WriteFloat32(float32(v))
	default:
		return w.WriteFloat64(float64(v))
	}
}

func (s *scalar[T]) decode(r *wire.Reader) error {
	var err error
	switch s.kind {
	case KindUint8:
		var v uint8
		v, err = r.ReadUint8()
		*s.p = T(v)
	case KindInt8:
		var v int8
		v, err = r.ReadInt8()
		*s.p = T(v)
	case KindUint16:
		var v uint16
		v, err = r.ReadUint16()
		*s.p = T(v)
	case KindInt16:
		var v int16
		v, err = r.ReadInt16()
		*s.p = T(v)
	case KindUint32:
		var v uint32
		v, err = r.ReadUint32()
		*s.p = T(v)
	case KindInt32:
		var v int32
		v, err = r.ReadInt32()
		*s.p = T(v)
	case KindUint64:
		var v uint64
		v, err = r.ReadUint64()
		*s.p = T(v)
	case KindInt64:
		var v int64
		v, err = r.ReadInt64()
		*s.p = T(v)
	case KindFloat32:
		var v float32
		v, err = r.ReadFloat32()
		*s.p = T(v)
	default:
		var v float64
		v, err = r.ReadFloat64()
		*s.p = T(v)
	}
	return err
}

// bits returns the wire bit pattern zero-extended to 64 bits.
func (s *scalar[T]) bits() uint64 {
	v := *s.p
	switch s.kind {
	case KindUint8, KindInt8:
		return uint64(uint8(v))
	case KindUint16, KindInt16:
		return uint64(uint16(v))
	case KindUint32, KindInt32:
		return uint64(uint32(v))
	case KindFloat32:
		return uint64(math.Float32bits(float32(v)))
	case KindFloat64:
		return math.Float64bits(float64(v))
	default:
		return uint64(v)
	}
}

func (s *scalar[T]) equal(other Field) bool {
	o, ok := other.(*scalar[T])
	return ok && o.kind == s.kind && o.bits() == s.bits()
}

func (s *scalar[T]) hash(d *xxhash.Digest) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], s.bits())
	_, _ = d.Write(b[8-s.kind.Size():])
}

func (s *scalar[T]) describe() Node {
	typ := s.kind.String()
	if s.padding {
		typ = "padding(" + typ + ")"
	}
	return Node{Name: s.name, Type: typ, Value: s.format()}
}

func (s *scalar[T]) format() string {
	v := *s.p
	switch s.kind {
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return strconv.FormatInt(int64(v), 10)
	case KindFloat32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case KindFloat64:
		return strconv.FormatFloat(float64(v), 'g', -1, 64)
	default:
		return strconv.FormatUint(s.bits(), 10)
	}
}
