package wire

import (
	"encoding/binary"
	"io"
	"math"
)

// Writer encodes big-endian primitives to an io.Writer.
type Writer struct {
	w       io.Writer
	off     int
	scratch [8]byte
}

// NewWriter wraps w. The Writer does not buffer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Offset returns the number of bytes written so far.
func (w *Writer) Offset() int {
	return w.off
}

func (w *Writer) write(b []byte) error {
	n, err := w.w.Write(b)
	if n == len(b) && err == nil {
		w.off += n
		return nil
	}
	at := w.off
	w.off += n
	if err == nil {
		err = io.ErrShortWrite
	}
	return &WriteFaultError{Offset: at, Err: err}
}

func (w *Writer) WriteUint8(v uint8) error {
	w.scratch[0] = v
	return w.write(w.scratch[:1])
}

func (w *Writer) WriteInt8(v int8) error {
	return w.WriteUint8(uint8(v))
}

func (w *Writer) WriteUint16(v uint16) error {
	binary.BigEndian.PutUint16(w.scratch[:2], v)
	return w.write(w.scratch[:2])
}

func (w *Writer) WriteInt16(v int16) error {
	return w.WriteUint16(uint16(v))
}

func (w *Writer) WriteUint32(v uint32) error {
	binary.BigEndian.PutUint32(w.scratch[:4], v)
	return w.write(w.scratch[:4])
}

func (w *Writer) WriteInt32(v int32) error {
	return w.WriteUint32(uint32(v))
}

func (w *Writer) WriteUint64(v uint64) error {
	binary.BigEndian.PutUint64(w.scratch[:8], v)
	return w.write(w.scratch[:8])
}

func (w *Writer) WriteInt64(v int64) error {
	return w.WriteUint64(uint64(v))
}

func (w *Writer) WriteFloat32(v float32) error {
	return w.WriteUint32(math.Float32bits(v))
}

func (w *Writer) WriteFloat64(v float64) error {
	return w.WriteUint64(math.Float64bits(v))
}

// WriteBytes writes b verbatim.
func (w *Writer) WriteBytes(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	return w.write(b)
}

// WriteZeros writes n zero bytes.
func (w *Writer) WriteZeros(n int) error {
	clear(w.scratch[:])
	for n > 0 {
		chunk := min(n, len(w.scratch))
		if err := w.write(w.scratch[:chunk]); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}
