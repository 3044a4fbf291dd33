package pdu

import "github.com/danmuck/disctl/internal/protocol/record"

type Fire struct {
	FiringEntityID   EntityID
	TargetEntityID   EntityID
	MunitionID       EntityID
	EventID          EventID
	FireMissionIndex uint32
	Location         Vector3Double
	Burst            BurstDescriptor
	Velocity         Vector3Float
	RangeToTarget    float32
}

func (*Fire) Type() Type     { return TypeFire }
func (*Fire) Family() Family { return FamilyWarfare }

func (p *Fire) Fields() []record.Field {
	return []record.Field{
		record.Struct("firingEntityID", &p.FiringEntityID),
		record.Struct("targetEntityID", &p.TargetEntityID),
		record.Struct("munitionID", &p.MunitionID),
		record.Struct("eventID", &p.EventID),
		record.Uint32("fireMissionIndex", &p.FireMissionIndex),
		record.Struct("locationInWorldCoordinates", &p.Location),
		record.Struct("burstDescriptor", &p.Burst),
		record.Struct("velocity", &p.Velocity),
		record.Float32("rangeToTarget", &p.RangeToTarget),
	}
}

type Detonation struct {
	FiringEntityID         EntityID
	TargetEntityID         EntityID
	MunitionID             EntityID
	EventID                EventID
	Velocity               Vector3Float
	Location               Vector3Double
	Burst                  BurstDescriptor
	LocationInEntity       Vector3Float
	DetonationResult       uint8
	Padding                int16
	ArticulationParameters []ArticulationParameter
}

func (*Detonation) Type() Type     { return TypeDetonation }
func (*Detonation) Family() Family { return FamilyWarfare }

func (p *Detonation) Fields() []record.Field {
	params := record.NewList(&p.ArticulationParameters)
	return []record.Field{
		record.Struct("firingEntityID", &p.FiringEntityID),
		record.Struct("targetEntityID", &p.TargetEntityID),
		record.Struct("munitionID", &p.MunitionID),
		record.Struct("eventID", &p.EventID),
		record.Struct("velocity", &p.Velocity),
		record.Struct("locationInWorldCoordinates", &p.Location),
		record.Struct("burstDescriptor", &p.Burst),
		record.Struct("locationInEntityCoordinates", &p.LocationInEntity),
		record.Uint8("detonationResult", &p.DetonationResult),
		params.Count8("numberOfArticulationParameters"),
		record.Pad16("pad", &p.Padding),
		params.Elements("articulationParameters"),
	}
}
