package pdu

import (
	"bytes"
	"fmt"
	"io"

	"github.com/danmuck/disctl/internal/protocol/record"
	"github.com/danmuck/disctl/internal/protocol/wire"
	"github.com/rs/zerolog/log"
)

// Encode stamps p's header from its body and writes the PDU to w.
func Encode(w io.Writer, p *Pdu) error {
	if err := p.stamp(); err != nil {
		return err
	}
	return record.Marshal(wire.NewWriter(w), p)
}

// Marshal returns the wire form of p. The header is stamped in place.
func Marshal(p *Pdu) ([]byte, error) {
	if err := p.stamp(); err != nil {
		return nil, err
	}
	n := int(p.Header.Length)
	buf := bytes.NewBuffer(make([]byte, 0, n))
	if err := record.Marshal(wire.NewWriter(buf), p); err != nil {
		return nil, err
	}
	if buf.Len() != n {
		return nil, fmt.Errorf("%w: %s header length %d, wrote %d", record.ErrSizeMismatch, p.Header.PduType, n, buf.Len())
	}
	return buf.Bytes(), nil
}

// Decoder dispatches PDU bodies through a registry.
type Decoder struct {
	registry *Registry
	limits   wire.Limits
}

// NewDecoder creates a decoder. A nil registry selects DefaultRegistry.
func NewDecoder(reg *Registry, limits wire.Limits) *Decoder {
	if reg == nil {
		reg = DefaultRegistry()
	}
	return &Decoder{registry: reg, limits: limits.WithDefaults()}
}

// Decode reads one PDU from the start of buf.
// Bytes after the header's declared Length are ignored.
func (d *Decoder) Decode(buf []byte) (*Pdu, error) {
	return d.next(wire.NewReader(buf, d.limits))
}

// DecodeStream reads back-to-back PDUs until buf is exhausted. On error it
// returns the PDUs fully decoded before the failing one.
func (d *Decoder) DecodeStream(buf []byte) ([]*Pdu, error) {
	r := wire.NewReader(buf, d.limits)
	var out []*Pdu
	for r.Remaining() > 0 {
		p, err := d.next(r)
		if err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, nil
}

// DecodeInto decodes buf into body, which must match the header's type.
func (d *Decoder) DecodeInto(buf []byte, body Body) (Header, error) {
	if noBody(body) {
		return Header{}, ErrNilBody
	}
	r := wire.NewReader(buf, d.limits)
	h, sub, err := d.header(r)
	if err != nil {
		return Header{}, err
	}
	if h.PduType != body.Type() {
		return Header{}, fmt.Errorf("%w: header %s, body %s", ErrTypeMismatch, h.PduType, body.Type())
	}
	if err := record.Unmarshal(sub, body); err != nil {
		return Header{}, fmt.Errorf("pdu: decode %s: %w", h.PduType, err)
	}
	return h, nil
}

func (d *Decoder) next(r *wire.Reader) (*Pdu, error) {
	start := r.Offset()
	var h Header
	if err := record.Unmarshal(r, &h); err != nil {
		return nil, fmt.Errorf("pdu: decode header: %w", err)
	}
	factory, ok := d.registry.Resolve(h.PduType)
	if !ok {
		log.Debug().
			Uint8("pdu_type", uint8(h.PduType)).
			Uint8("exercise", h.ExerciseID).
			Int("offset", start).
			Msg("pdu dispatch: unregistered type")
		return nil, &UnknownTypeError{Type: h.PduType, Offset: start}
	}
	sub, err := d.body(r, h)
	if err != nil {
		return nil, err
	}
	body := factory()
	if err := record.Unmarshal(sub, body); err != nil {
		return nil, fmt.Errorf("pdu: decode %s: %w", h.PduType, err)
	}
	return &Pdu{Header: h, Body: body}, nil
}

func (d *Decoder) header(r *wire.Reader) (Header, *wire.Reader, error) {
	var h Header
	if err := record.Unmarshal(r, &h); err != nil {
		return Header{}, nil, fmt.Errorf("pdu: decode header: %w", err)
	}
	sub, err := d.body(r, h)
	return h, sub, err
}

// body bounds the body reader to the header's declared length.
func (d *Decoder) body(r *wire.Reader, h Header) (*wire.Reader, error) {
	length := int(h.Length)
	if length < HeaderSize {
		return nil, fmt.Errorf("%w: %s declares %d bytes", ErrInvalidLength, h.PduType, length)
	}
	if length > d.limits.MaxPduBytes {
		return nil, fmt.Errorf("%w: %s declares %d bytes, limit %d", ErrPduTooLarge, h.PduType, length, d.limits.MaxPduBytes)
	}
	return r.Sub(length - HeaderSize)
}

// Equal reports whether a and b have equal headers and bodies.
func Equal(a, b *Pdu) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if !record.Equal(&a.Header, &b.Header) {
		return false
	}
	if noBody(a.Body) || noBody(b.Body) {
		return noBody(a.Body) && noBody(b.Body)
	}
	return record.Equal(a.Body, b.Body)
}

// Hash digests header and body. A nil p hashes as an empty PDU.
func Hash(p *Pdu) uint64 {
	if p == nil {
		p = &Pdu{}
	}
	return record.Hash(p)
}

// Describe returns the field tree of p, named after its header type.
func Describe(p *Pdu) record.Node {
	if p == nil {
		p = &Pdu{}
	}
	return record.Describe(p.Header.PduType.String(), p)
}
