package record

import (
	"bytes"
	"errors"
	"testing"

	"github.com/danmuck/disctl/internal/protocol/wire"
	"github.com/danmuck/disctl/internal/testutil/testlog"
)

const (
	itemSize           = 1 + 1 + 12 + 8
	containerFixedSize = 2 + 1 + 6 + 2 + 4 + 4
)

func TestEncodeSizeAndRoundTrip(t *testing.T) {
	testlog.Start(t)
	in := sampleContainer()

	b, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := containerFixedSize + 3*itemSize + 8
	if len(b) != Size(in) || len(b) != want {
		t.Fatalf("size law broken: len=%d Size=%d want=%d", len(b), Size(in), want)
	}

	out := &container{}
	if err := Decode(b, out, wire.DefaultLimits()); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !Equal(in, out) {
		t.Fatalf("round-trip mismatch:\n in=%+v\nout=%+v", in, out)
	}
	if Hash(in) != Hash(out) {
		t.Fatalf("equal records hash differently")
	}
}

func TestCountIsDerivedFromLength(t *testing.T) {
	testlog.Start(t)
	in := sampleContainer()
	b, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if b[2] != 3 {
		t.Fatalf("count byte=%d want 3", b[2])
	}
	in.Items = append(in.Items, item{Kind: 9})
	b, err = Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if b[2] != 4 {
		t.Fatalf("count byte after append=%d want 4", b[2])
	}
}

func TestCountOverflowFails(t *testing.T) {
	testlog.Start(t)
	in := &container{Items: make([]item, 256)}
	_, err := Encode(in)
	if !errors.Is(err, ErrCountOverflow) {
		t.Fatalf("expected ErrCountOverflow, got %v", err)
	}
	var fe *FieldError
	if !errors.As(err, &fe) || fe.Path != "numberOfItems" {
		t.Fatalf("expected failure on numberOfItems, got %v", err)
	}
}

func TestZeroLengthCollection(t *testing.T) {
	testlog.Start(t)
	in := &container{ID: 1}
	b, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(b) != containerFixedSize {
		t.Fatalf("expected %d bytes, got %d", containerFixedSize, len(b))
	}
	if b[2] != 0 {
		t.Fatalf("count byte=%d want 0", b[2])
	}

	r := wire.NewReader(append(b, 0xAA), wire.DefaultLimits())
	out := &container{Items: []item{{Kind: 5}}}
	if err := Unmarshal(r, out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Items) != 0 || len(out.Payload) != 0 {
		t.Fatalf("expected empty collections, got items=%d payload=%d", len(out.Items), len(out.Payload))
	}
	if r.Remaining() != 1 {
		t.Fatalf("zero-length collection consumed element bytes, remaining=%d", r.Remaining())
	}
}

func TestTruncationAtEveryPrefix(t *testing.T) {
	testlog.Start(t)
	b, err := Encode(sampleContainer())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	for n := 0; n < len(b); n++ {
		out := &container{}
		err := Decode(b[:n], out, wire.DefaultLimits())
		if !errors.Is(err, wire.ErrTruncated) {
			t.Fatalf("prefix %d: expected ErrTruncated, got %v", n, err)
		}
		var fe *FieldError
		if !errors.As(err, &fe) {
			t.Fatalf("prefix %d: expected FieldError, got %T", n, err)
		}
	}
}

func TestTruncatedCollectionReportsCollectionPath(t *testing.T) {
	testlog.Start(t)
	b, err := Encode(sampleContainer())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	cut := containerFixedSize + itemSize + 8
	err = Decode(b[:cut], &container{}, wire.DefaultLimits())
	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldError, got %v", err)
	}
	if fe.Path != "items" || fe.Offset != containerFixedSize {
		t.Fatalf("unexpected failure location path=%q offset=%d", fe.Path, fe.Offset)
	}
}

func TestWriteFaultPathNamesNestedField(t *testing.T) {
	testlog.Start(t)
	// items[1].where.y starts after the fixed part, one item, kind, flags and x
	at := containerFixedSize + itemSize + 1 + 1 + 4
	err := Marshal(wire.NewWriter(&limitedWriter{n: at}), sampleContainer())
	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldError, got %v", err)
	}
	if fe.Path != "items[1].where.y" || fe.Offset != at {
		t.Fatalf("unexpected failure location path=%q offset=%d", fe.Path, fe.Offset)
	}
}

func TestElementLimitGuardsAllocation(t *testing.T) {
	testlog.Start(t)
	b, err := Encode(sampleContainer())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	err = Decode(b, &container{}, wire.Limits{MaxElements: 2})
	if !errors.Is(err, ErrTooManyElements) {
		t.Fatalf("expected ErrTooManyElements, got %v", err)
	}
}

func TestHostileCountFailsBeforeAllocation(t *testing.T) {
	testlog.Start(t)
	in := &container{}
	b, _ := Encode(in)
	b[2] = 200
	err := Decode(b, &container{}, wire.DefaultLimits())
	var te *wire.TruncatedError
	if !errors.As(err, &te) {
		t.Fatalf("expected TruncatedError, got %v", err)
	}
	if te.Want != 200*itemSize {
		t.Fatalf("expected up-front check for %d bytes, got %+v", 200*itemSize, te)
	}
}

func TestPaddingParticipatesInEquality(t *testing.T) {
	testlog.Start(t)
	a, b := sampleContainer(), sampleContainer()
	if !Equal(a, b) || Hash(a) != Hash(b) {
		t.Fatalf("identical records not equal")
	}
	b.Pad = 0
	if Equal(a, b) {
		t.Fatalf("padding difference not detected")
	}
	if Hash(a) == Hash(b) {
		t.Fatalf("padding difference not hashed")
	}
}

func TestEqualComparesCollectionsInOrder(t *testing.T) {
	testlog.Start(t)
	a, b := sampleContainer(), sampleContainer()
	b.Items[0], b.Items[1] = b.Items[1], b.Items[0]
	if Equal(a, b) {
		t.Fatalf("reordered elements compared equal")
	}
	b = sampleContainer()
	b.Items = b.Items[:2]
	if Equal(a, b) {
		t.Fatalf("shorter collection compared equal")
	}
	if Equal(a, &section{}) {
		t.Fatalf("different record types compared equal")
	}
}

func TestBlobPadsToAlignment(t *testing.T) {
	testlog.Start(t)
	in := &container{Payload: []byte{0xA1, 0xA2, 0xA3, 0xA4, 0xA5, 0xA6, 0xA7, 0xA8, 0xA9}}
	b, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(b) != containerFixedSize+16 {
		t.Fatalf("expected payload padded to 16 bytes, total=%d", len(b))
	}
	if got := b[15:19]; !bytes.Equal(got, []byte{0, 0, 0, 72}) {
		t.Fatalf("payload length bits=% x want 72", got)
	}
	if !bytes.Equal(b[len(b)-7:], make([]byte, 7)) {
		t.Fatalf("padding not zero: % x", b[len(b)-7:])
	}
	out := &container{}
	if err := Decode(b, out, wire.DefaultLimits()); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(out.Payload, in.Payload) {
		t.Fatalf("payload mismatch: % x", out.Payload)
	}
}

func TestDerivedLengthTracksContent(t *testing.T) {
	testlog.Start(t)
	s := &section{Code: 3, Parts: []point{{1, 1, 1}, {2, 2, 2}}}
	b, err := Encode(s)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if want := (4 + 2*12) / 4; int(b[0]) != want {
		t.Fatalf("derived length=%d want %d", b[0], want)
	}
	b[0] = 0xFF
	out := &section{}
	if err := Decode(b, out, wire.DefaultLimits()); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !Equal(s, out) {
		t.Fatalf("decoded length value leaked into record: %+v", out)
	}
}

func TestDescribeTree(t *testing.T) {
	testlog.Start(t)
	n := Describe("container", sampleContainer())
	if n.Type != "container" {
		t.Fatalf("type=%q", n.Type)
	}
	count, ok := n.Child("numberOfItems")
	if !ok || count.Value != "3" {
		t.Fatalf("count node=%+v", count)
	}
	label, _ := n.Child("label")
	if label.Value != "alpha" {
		t.Fatalf("label=%q", label.Value)
	}
	pad, _ := n.Child("padding")
	if pad.Type != "padding(int16)" || pad.Value != "-1" {
		t.Fatalf("padding node=%+v", pad)
	}
	items, _ := n.Child("items")
	if len(items.Children) != 3 || items.Children[1].Name != "[1]" {
		t.Fatalf("items node=%+v", items)
	}
	where, _ := items.Children[0].Child("where")
	x, _ := where.Child("x")
	if x.Value != "1" || x.Type != "float32" {
		t.Fatalf("nested float node=%+v", x)
	}
}

func TestMarshalWriteFault(t *testing.T) {
	testlog.Start(t)
	w := wire.NewWriter(&limitedWriter{n: 5})
	err := Marshal(w, sampleContainer())
	if !errors.Is(err, wire.ErrWriteFault) {
		t.Fatalf("expected ErrWriteFault, got %v", err)
	}
	var fe *FieldError
	if !errors.As(err, &fe) || fe.Path != "label" || fe.Offset != 3 {
		t.Fatalf("unexpected failure location: %v", err)
	}
}

type limitedWriter struct {
	n int
}

func (l *limitedWriter) Write(p []byte) (int, error) {
	if len(p) > l.n {
		return 0, errors.New("sink full")
	}
	l.n -= len(p)
	return len(p), nil
}

func TestOctetCountedBlobs(t *testing.T) {
	testlog.Start(t)
	in := &tagged{Short: []byte{9, 8, 7}, Long: bytes.Repeat([]byte{0x5A}, 300)}
	b, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(b) != 3+3+300 {
		t.Fatalf("size=%d, octet blobs must not pad", len(b))
	}
	if b[0] != 0x01 || b[1] != 0x2C || b[2] != 3 {
		t.Fatalf("counts=% x want 01 2c 03", b[:3])
	}
	out := &tagged{}
	if err := Decode(b, out, wire.DefaultLimits()); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !Equal(in, out) {
		t.Fatalf("round trip mismatch")
	}

	over := &tagged{Short: make([]byte, 256)}
	if _, err := Encode(over); !errors.Is(err, ErrCountOverflow) {
		t.Fatalf("expected count overflow, got %v", err)
	}
}

func TestExactBitsRoundTrip(t *testing.T) {
	testlog.Start(t)
	in := []byte{0x00, 0x0b, 0xf0, 0xe0}
	out := &burst{}
	if err := Decode(in, out, wire.DefaultLimits()); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Bits != 11 || !bytes.Equal(out.Data, []byte{0xf0, 0xe0}) {
		t.Fatalf("decoded bits=%d data=% x", out.Bits, out.Data)
	}
	b, err := Encode(out)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(b, in) {
		t.Fatalf("re-encoded % x want % x", b, in)
	}
	if Hash(out) == Hash(&burst{Data: out.Data}) {
		t.Fatalf("bit length not part of the hash")
	}

	whole := &burst{}
	if err := Decode([]byte{0x00, 0x10, 0xf0, 0xe0}, whole, wire.DefaultLimits()); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if whole.Bits != 0 {
		t.Fatalf("whole-byte length kept bits=%d", whole.Bits)
	}

	if _, err := Encode(&burst{Data: []byte{1, 2}, Bits: 8}); !errors.Is(err, ErrBitLength) {
		t.Fatalf("expected ErrBitLength, got %v", err)
	}
}

func TestDecodeRejectsContentDerivedFieldCannotHold(t *testing.T) {
	testlog.Start(t)
	// 85 parts make 4+85*12 = 1024 bytes, 256 words.
	buf := make([]byte, 4+85*12)
	buf[1] = 85
	err := Decode(buf, &section{}, wire.DefaultLimits())
	if !errors.Is(err, ErrCountOverflow) {
		t.Fatalf("expected ErrCountOverflow, got %v", err)
	}
	var fe *FieldError
	if !errors.As(err, &fe) || fe.Path != "lengthWords" {
		t.Fatalf("expected path lengthWords, got %v", err)
	}

	buf = make([]byte, 4+84*12)
	buf[1] = 84
	out := &section{}
	if err := Decode(buf, out, wire.DefaultLimits()); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, err := Encode(out); err != nil {
		t.Fatalf("re-encode: %v", err)
	}
}
