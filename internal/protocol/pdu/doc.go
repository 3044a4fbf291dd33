// Package pdu assembles DIS protocol data units from a fixed header and a
// typed body.
//
// Ownership boundary:
// - the 12-byte PDU header and its length stamping
// - the PDU type registry used for generic dispatch decode
// - the record catalogue for the registered PDU types (DIS version 6 layouts)
//
// Encoding is two-pass: the body size is computed from its layout, stamped
// into Header.Length, then header and body are written. Decoding reads the
// header, resolves the body factory by Header.PduType and decodes the body
// from exactly Header.Length-12 bytes.
package pdu
