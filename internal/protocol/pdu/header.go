package pdu

import "github.com/danmuck/disctl/internal/protocol/record"

const (
	// HeaderSize is the fixed wire size of Header.
	HeaderSize = 12
	// ProtocolVersionDIS6 is IEEE 1278.1-1995.
	ProtocolVersionDIS6 uint8 = 6
)

// Header is the fixed prefix of every PDU.
// Length is the total PDU size in bytes, header included.
type Header struct {
	ProtocolVersion uint8
	ExerciseID      uint8
	PduType         Type
	ProtocolFamily  Family
	Timestamp       uint32
	Length          uint16
	Padding         uint16
}

func (h *Header) Fields() []record.Field {
	return []record.Field{
		record.Uint8("protocolVersion", &h.ProtocolVersion),
		record.Uint8("exerciseID", &h.ExerciseID),
		record.Uint8("pduType", &h.PduType),
		record.Uint8("protocolFamily", &h.ProtocolFamily),
		record.Uint32("timestamp", &h.Timestamp),
		record.Uint16("length", &h.Length),
		record.Pad16("padding", &h.Padding),
	}
}
