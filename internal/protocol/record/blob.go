package record

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/danmuck/disctl/internal/protocol/wire"
)

// Blob binds opaque data whose length travels in a separate count field,
// in bits or in octets, and whose wire form is zero-padded to a multiple of
// align bytes. Without ExactBits a bit length is always whole bytes.
type Blob struct {
	data    *[]byte
	bits    *int
	align   int
	pending int
}

func NewBlob(data *[]byte, align int) *Blob {
	if align < 1 {
		align = 1
	}
	return &Blob{data: data, align: align}
}

// ExactBits keeps a bit length that does not fill the last byte. Zero
// means len(data)*8; otherwise it must lie in (len-1)*8+1 .. len*8.
func (b *Blob) ExactBits(bits *int) *Blob {
	b.bits = bits
	return b
}

// bitLength is the length in bits written for the blob.
func (b *Blob) bitLength() int {
	if b.bits != nil && *b.bits != 0 {
		return *b.bits
	}
	return len(*b.data) * 8
}

func (b *Blob) Bits16(name string) Field { return b.length(name, 2, 8) }
func (b *Blob) Bits32(name string) Field { return b.length(name, 4, 8) }

func (b *Blob) Octets8(name string) Field  { return b.length(name, 1, 1) }
func (b *Blob) Octets16(name string) Field { return b.length(name, 2, 1) }

func (b *Blob) length(name string, width int, unit uint64) Field {
	return &countField{name: name, width: width, src: blobLength{b: b, unit: unit}}
}

// Data returns the field holding the padded bytes.
func (b *Blob) Data(name string) Field {
	return &blobData{name: name, blob: b}
}

func (b *Blob) padded(n int) int {
	return (n + b.align - 1) / b.align * b.align
}

// blobLength counts the blob in units per byte: 8 for bits, 1 for octets.
type blobLength struct {
	b    *Blob
	unit uint64
}

func (s blobLength) count() int {
	if s.unit == 8 {
		return s.b.bitLength()
	}
	return len(*s.b.data) * int(s.unit)
}

func (s blobLength) check() error {
	if s.unit != 8 || s.b.bits == nil || *s.b.bits == 0 {
		return nil
	}
	n, bits := len(*s.b.data), *s.b.bits
	if bits < (n-1)*8+1 || bits > n*8 {
		return fmt.Errorf("%w: %d bits for %d bytes", ErrBitLength, bits, n)
	}
	return nil
}

func (s blobLength) stage(n uint64, r *wire.Reader) error {
	if limit := uint64(r.Limits().MaxPduBytes) * s.unit; n > limit {
		return fmt.Errorf("%w: length %d > %d", ErrTooManyElements, n, limit)
	}
	s.b.pending = int((n + s.unit - 1) / s.unit)
	if s.unit == 8 && s.b.bits != nil {
		*s.b.bits = 0
		if n%8 != 0 {
			*s.b.bits = int(n)
		}
	}
	return nil
}

type blobData struct {
	name string
	blob *Blob
}

func (d *blobData) Name() string { return d.name }
func (d *blobData) Size() int    { return d.blob.padded(len(*d.blob.data)) }

func (d *blobData) encode(w *wire.Writer) error {
	data := *d.blob.data
	if err := w.WriteBytes(data); err != nil {
		return err
	}
	return w.WriteZeros(d.blob.padded(len(data)) - len(data))
}

func (d *blobData) decode(r *wire.Reader) error {
	n := d.blob.pending
	d.blob.pending = 0
	total := d.blob.padded(n)
	if err := r.Need(total); err != nil {
		return err
	}
	if n == 0 {
		*d.blob.data = nil
		return nil
	}
	data, err := r.ReadBytes(n)
	if err != nil {
		return err
	}
	*d.blob.data = data
	return r.Skip(total - n)
}

func (d *blobData) equal(other Field) bool {
	o, ok := other.(*blobData)
	return ok && bytes.Equal(*d.blob.data, *o.blob.data) && d.blob.bitLength() == o.blob.bitLength()
}

func (d *blobData) hash(h *xxhash.Digest) {
	data := *d.blob.data
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(d.blob.bitLength()))
	_, _ = h.Write(b[:])
	_, _ = h.Write(data)
}

func (d *blobData) describe() Node {
	data := *d.blob.data
	return Node{
		Name:  d.name,
		Type:  "bytes(align=" + strconv.Itoa(d.blob.align) + ")",
		Value: hex.EncodeToString(data),
	}
}
