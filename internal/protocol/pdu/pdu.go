package pdu

import (
	"math"
	"reflect"

	"github.com/danmuck/disctl/internal/protocol/record"
)

// Body is the type-specific part of a PDU.
type Body interface {
	record.Record
	Type() Type
	Family() Family
}

// Pdu is a header followed by a body.
type Pdu struct {
	Header Header
	Body   Body
}

// New wraps body in a PDU for the given exercise.
func New(exerciseID uint8, body Body) *Pdu {
	return &Pdu{
		Header: Header{ProtocolVersion: ProtocolVersionDIS6, ExerciseID: exerciseID},
		Body:   body,
	}
}

// Fields lays out header then body. A PDU without a body is its header
// alone, so Hash, Equal and Describe accept one; Marshal rejects it.
func (p *Pdu) Fields() []record.Field {
	if noBody(p.Body) {
		return []record.Field{record.Struct("header", &p.Header)}
	}
	return []record.Field{
		record.Struct("header", &p.Header),
		record.Struct("body", p.Body),
	}
}

// Size returns HeaderSize plus the computed body size.
func (p *Pdu) Size() int {
	if noBody(p.Body) {
		return HeaderSize
	}
	return HeaderSize + record.Size(p.Body)
}

// stamp derives the header fields that follow from the body.
func (p *Pdu) stamp() error {
	if noBody(p.Body) {
		return ErrNilBody
	}
	size := p.Size()
	if size > math.MaxUint16 {
		return ErrPduTooLarge
	}
	p.Header.PduType = p.Body.Type()
	p.Header.ProtocolFamily = p.Body.Family()
	p.Header.Length = uint16(size)
	if p.Header.ProtocolVersion == 0 {
		p.Header.ProtocolVersion = ProtocolVersionDIS6
	}
	return nil
}

// noBody reports a nil body, including a typed nil pointer.
func noBody(b Body) bool {
	if b == nil {
		return true
	}
	v := reflect.ValueOf(b)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
