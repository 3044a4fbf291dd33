package pdu

import (
	"bytes"

	"github.com/danmuck/disctl/internal/protocol/record"
)

// EntityID identifies an entity within a simulation exercise.
type EntityID struct {
	Site        uint16
	Application uint16
	Entity      uint16
}

func (e *EntityID) Fields() []record.Field {
	return []record.Field{
		record.Uint16("site", &e.Site),
		record.Uint16("application", &e.Application),
		record.Uint16("entity", &e.Entity),
	}
}

// EventID identifies an event such as a fire or a collision.
type EventID struct {
	Site        uint16
	Application uint16
	EventNumber uint16
}

func (e *EventID) Fields() []record.Field {
	return []record.Field{
		record.Uint16("site", &e.Site),
		record.Uint16("application", &e.Application),
		record.Uint16("eventNumber", &e.EventNumber),
	}
}

type EntityType struct {
	Kind        uint8
	Domain      uint8
	Country     uint16
	Category    uint8
	Subcategory uint8
	Specific    uint8
	Extra       uint8
}

func (e *EntityType) Fields() []record.Field {
	return []record.Field{
		record.Uint8("entityKind", &e.Kind),
		record.Uint8("domain", &e.Domain),
		record.Uint16("country", &e.Country),
		record.Uint8("category", &e.Category),
		record.Uint8("subcategory", &e.Subcategory),
		record.Uint8("specific", &e.Specific),
		record.Uint8("extra", &e.Extra),
	}
}

type RadioEntityType struct {
	Kind                uint8
	Domain              uint8
	Country             uint16
	Category            uint8
	NomenclatureVersion uint8
	Nomenclature        uint16
}

func (e *RadioEntityType) Fields() []record.Field {
	return []record.Field{
		record.Uint8("entityKind", &e.Kind),
		record.Uint8("domain", &e.Domain),
		record.Uint16("country", &e.Country),
		record.Uint8("category", &e.Category),
		record.Uint8("nomenclatureVersion", &e.NomenclatureVersion),
		record.Uint16("nomenclature", &e.Nomenclature),
	}
}

type Vector3Float struct {
	X, Y, Z float32
}

func (v *Vector3Float) Fields() []record.Field {
	return []record.Field{
		record.Float32("x", &v.X),
		record.Float32("y", &v.Y),
		record.Float32("z", &v.Z),
	}
}

// Vector3Double is a world coordinate in meters.
type Vector3Double struct {
	X, Y, Z float64
}

func (v *Vector3Double) Fields() []record.Field {
	return []record.Field{
		record.Float64("x", &v.X),
		record.Float64("y", &v.Y),
		record.Float64("z", &v.Z),
	}
}

// Orientation holds Euler angles in radians.
type Orientation struct {
	Psi, Theta, Phi float32
}

func (o *Orientation) Fields() []record.Field {
	return []record.Field{
		record.Float32("psi", &o.Psi),
		record.Float32("theta", &o.Theta),
		record.Float32("phi", &o.Phi),
	}
}

// ArticulationParameter describes one articulated or attached part.
type ArticulationParameter struct {
	ParameterTypeDesignator uint8
	ChangeIndicator         uint8
	PartAttachedTo          uint16
	ParameterType           int32
	ParameterValue          float64
}

func (a *ArticulationParameter) Fields() []record.Field {
	return []record.Field{
		record.Uint8("parameterTypeDesignator", &a.ParameterTypeDesignator),
		record.Uint8("changeIndicator", &a.ChangeIndicator),
		record.Uint16("partAttachedTo", &a.PartAttachedTo),
		record.Int32("parameterType", &a.ParameterType),
		record.Float64("parameterValue", &a.ParameterValue),
	}
}

type DeadReckoningParameter struct {
	Algorithm          uint8
	OtherParameters    [15]byte
	LinearAcceleration Vector3Float
	AngularVelocity    Vector3Float
}

func (d *DeadReckoningParameter) Fields() []record.Field {
	return []record.Field{
		record.Uint8("deadReckoningAlgorithm", &d.Algorithm),
		record.Bytes("otherParameters", d.OtherParameters[:]),
		record.Struct("entityLinearAcceleration", &d.LinearAcceleration),
		record.Struct("entityAngularVelocity", &d.AngularVelocity),
	}
}

// CharacterSetASCII is the Marking character set for plain ASCII.
const CharacterSetASCII uint8 = 1

// Marking is the 11-character entity label.
type Marking struct {
	CharacterSet uint8
	Characters   [11]byte
}

// NewMarking builds an ASCII marking, truncating s to 11 bytes.
func NewMarking(s string) Marking {
	m := Marking{CharacterSet: CharacterSetASCII}
	copy(m.Characters[:], s)
	return m
}

func (m Marking) String() string {
	return string(bytes.TrimRight(m.Characters[:], "\x00 "))
}

func (m *Marking) Fields() []record.Field {
	return []record.Field{
		record.Uint8("characterSet", &m.CharacterSet),
		record.Chars("characters", m.Characters[:]),
	}
}

type BurstDescriptor struct {
	Munition EntityType
	Warhead  uint16
	Fuse     uint16
	Quantity uint16
	Rate     uint16
}

func (b *BurstDescriptor) Fields() []record.Field {
	return []record.Field{
		record.Struct("munition", &b.Munition),
		record.Uint16("warhead", &b.Warhead),
		record.Uint16("fuse", &b.Fuse),
		record.Uint16("quantity", &b.Quantity),
		record.Uint16("rate", &b.Rate),
	}
}

type ClockTime struct {
	Hour         int32
	TimePastHour uint32
}

func (c *ClockTime) Fields() []record.Field {
	return []record.Field{
		record.Int32("hour", &c.Hour),
		record.Uint32("timePastHour", &c.TimePastHour),
	}
}

type FixedDatum struct {
	ID    uint32
	Value uint32
}

func (f *FixedDatum) Fields() []record.Field {
	return []record.Field{
		record.Uint32("fixedDatumID", &f.ID),
		record.Uint32("fixedDatumValue", &f.Value),
	}
}

// VariableDatum carries a bit-length-prefixed value padded to 64 bits.
type VariableDatum struct {
	ID    uint32
	Value []byte
	// ValueBits is set when the value does not end on a byte boundary.
	ValueBits int
}

func (v *VariableDatum) Fields() []record.Field {
	value := record.NewBlob(&v.Value, 8).ExactBits(&v.ValueBits)
	return []record.Field{
		record.Uint32("variableDatumID", &v.ID),
		value.Bits32("variableDatumLength"),
		value.Data("variableDatumValue"),
	}
}

// DatumID names a datum requested by a DataQuery.
type DatumID struct {
	ID uint32
}

func (d *DatumID) Fields() []record.Field {
	return []record.Field{record.Uint32("datumID", &d.ID)}
}

type SupplyQuantity struct {
	SupplyType EntityType
	Quantity   float32
}

func (s *SupplyQuantity) Fields() []record.Field {
	return []record.Field{
		record.Struct("supplyType", &s.SupplyType),
		record.Float32("quantity", &s.Quantity),
	}
}

// datumFields lays out the fixed and variable datum counts followed by
// both collections, as shared by the simulation management bodies.
func datumFields(fixed *[]FixedDatum, variable *[]VariableDatum) []record.Field {
	f := record.NewList(fixed)
	v := record.NewList(variable)
	return []record.Field{
		f.Count32("numberOfFixedDatumRecords"),
		v.Count32("numberOfVariableDatumRecords"),
		f.Elements("fixedDatums"),
		v.Elements("variableDatums"),
	}
}
