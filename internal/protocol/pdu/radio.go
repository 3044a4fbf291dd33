package pdu

import "github.com/danmuck/disctl/internal/protocol/record"

// Signal carries encoded radio data. The data length is in bits and the data
// is zero-padded to a 32-bit boundary on the wire.
type Signal struct {
	EntityID       EntityID
	RadioID        uint16
	EncodingScheme uint16
	TDLType        uint16
	SampleRate     uint32
	Samples        uint16
	Data           []byte
	// DataBits is the exact length of Data in bits when the last byte is
	// partly used; zero means len(Data)*8.
	DataBits int
}

func (*Signal) Type() Type     { return TypeSignal }
func (*Signal) Family() Family { return FamilyRadioCommunications }

func (p *Signal) Fields() []record.Field {
	data := record.NewBlob(&p.Data, 4).ExactBits(&p.DataBits)
	return []record.Field{
		record.Struct("entityId", &p.EntityID),
		record.Uint16("radioId", &p.RadioID),
		record.Uint16("encodingScheme", &p.EncodingScheme),
		record.Uint16("tdlType", &p.TDLType),
		record.Uint32("sampleRate", &p.SampleRate),
		data.Bits16("dataLength"),
		record.Uint16("samples", &p.Samples),
		data.Data("data"),
	}
}

type Receiver struct {
	EntityID            EntityID
	RadioID             uint16
	ReceiverState       uint16
	Padding             uint16
	ReceivedPower       float32
	TransmitterEntityID EntityID
	TransmitterRadioID  uint16
}

func (*Receiver) Type() Type     { return TypeReceiver }
func (*Receiver) Family() Family { return FamilyRadioCommunications }

func (p *Receiver) Fields() []record.Field {
	return []record.Field{
		record.Struct("entityId", &p.EntityID),
		record.Uint16("radioId", &p.RadioID),
		record.Uint16("receiverState", &p.ReceiverState),
		record.Pad16("padding1", &p.Padding),
		record.Float32("receivedPower", &p.ReceivedPower),
		record.Struct("transmitterEntityId", &p.TransmitterEntityID),
		record.Uint16("transmitterRadioId", &p.TransmitterRadioID),
	}
}

type ModulationType struct {
	SpreadSpectrum uint16
	Major          uint16
	Detail         uint16
	System         uint16
}

func (m *ModulationType) Fields() []record.Field {
	return []record.Field{
		record.Uint16("spreadSpectrum", &m.SpreadSpectrum),
		record.Uint16("major", &m.Major),
		record.Uint16("detail", &m.Detail),
		record.Uint16("system", &m.System),
	}
}

// Transmitter follows the IEEE 1278.1-1995 layout: both variable parts are
// counted in octets and written unpadded, modulation parameters first.
type Transmitter struct {
	EntityID                   EntityID
	RadioID                    uint16
	RadioEntityType            RadioEntityType
	TransmitState              uint8
	InputSource                uint8
	Padding1                   uint16
	AntennaLocation            Vector3Double
	RelativeAntennaLocation    Vector3Float
	AntennaPatternType         uint16
	Frequency                  uint64
	TransmitFrequencyBandwidth float32
	Power                      float32
	ModulationType             ModulationType
	CryptoSystem               uint16
	CryptoKeyID                uint16
	Padding2                   uint16
	Padding3                   uint8
	ModulationParameters       []byte
	AntennaPattern             []byte
}

func (*Transmitter) Type() Type     { return TypeTransmitter }
func (*Transmitter) Family() Family { return FamilyRadioCommunications }

func (p *Transmitter) Fields() []record.Field {
	modulation := record.NewBlob(&p.ModulationParameters, 1)
	pattern := record.NewBlob(&p.AntennaPattern, 1)
	return []record.Field{
		record.Struct("entityId", &p.EntityID),
		record.Uint16("radioId", &p.RadioID),
		record.Struct("radioEntityType", &p.RadioEntityType),
		record.Uint8("transmitState", &p.TransmitState),
		record.Uint8("inputSource", &p.InputSource),
		record.Pad16("padding1", &p.Padding1),
		record.Struct("antennaLocation", &p.AntennaLocation),
		record.Struct("relativeAntennaLocation", &p.RelativeAntennaLocation),
		record.Uint16("antennaPatternType", &p.AntennaPatternType),
		pattern.Octets16("antennaPatternCount"),
		record.Uint64("frequency", &p.Frequency),
		record.Float32("transmitFrequencyBandwidth", &p.TransmitFrequencyBandwidth),
		record.Float32("power", &p.Power),
		record.Struct("modulationType", &p.ModulationType),
		record.Uint16("cryptoSystem", &p.CryptoSystem),
		record.Uint16("cryptoKeyId", &p.CryptoKeyID),
		modulation.Octets8("modulationParameterCount"),
		record.Pad16("padding2", &p.Padding2),
		record.Pad8("padding3", &p.Padding3),
		modulation.Data("modulationParameterList"),
		pattern.Data("antennaPatternList"),
	}
}
