// Package wire owns the primitive DIS field codec.
//
// Ownership boundary:
// - fixed-width integer and IEEE 754 float encoding, big-endian only
// - byte cursors with offset tracking for error reporting
// - decode limits for untrusted datagrams
package wire
