package record

import (
	"bytes"
	"encoding/hex"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/danmuck/disctl/internal/protocol/wire"
)

type composite struct {
	name string
	r    Record
}

// Struct embeds a nested record. The nested record is owned by its parent.
func Struct(name string, r Record) Field {
	return &composite{name: name, r: r}
}

func (c *composite) Name() string { return c.name }
func (c *composite) Size() int    { return Size(c.r) }

func (c *composite) encode(w *wire.Writer) error { return Marshal(w, c.r) }
func (c *composite) decode(r *wire.Reader) error { return Unmarshal(r, c.r) }

func (c *composite) equal(other Field) bool {
	o, ok := other.(*composite)
	return ok && Equal(c.r, o.r)
}

func (c *composite) hash(d *xxhash.Digest) { hashRecord(d, c.r) }
func (c *composite) describe() Node        { return Describe(c.name, c.r) }

type fixedBytes struct {
	name string
	b    []byte
	text bool
}

// Bytes binds a fixed-width byte array, typically arr[:] of an array field.
func Bytes(name string, b []byte) Field {
	return &fixedBytes{name: name, b: b}
}

// Chars is Bytes for character data; it describes as trimmed text.
func Chars(name string, b []byte) Field {
	return &fixedBytes{name: name, b: b, text: true}
}

func (f *fixedBytes) Name() string { return f.name }
func (f *fixedBytes) Size() int    { return len(f.b) }

func (f *fixedBytes) encode(w *wire.Writer) error { return w.WriteBytes(f.b) }
func (f *fixedBytes) decode(r *wire.Reader) error { return r.ReadInto(f.b) }

func (f *fixedBytes) equal(other Field) bool {
	o, ok := other.(*fixedBytes)
	return ok && bytes.Equal(f.b, o.b)
}

func (f *fixedBytes) hash(d *xxhash.Digest) { _, _ = d.Write(f.b) }

func (f *fixedBytes) describe() Node {
	typ := "bytes[" + strconv.Itoa(len(f.b)) + "]"
	if f.text {
		return Node{Name: f.name, Type: "chars[" + strconv.Itoa(len(f.b)) + "]", Value: string(bytes.TrimRight(f.b, "\x00"))}
	}
	return Node{Name: f.name, Type: typ, Value: hex.EncodeToString(f.b)}
}
