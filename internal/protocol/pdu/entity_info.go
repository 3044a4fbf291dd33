package pdu

import "github.com/danmuck/disctl/internal/protocol/record"

// EntityState reports the full state of one entity.
type EntityState struct {
	EntityID               EntityID
	ForceID                uint8
	EntityType             EntityType
	AlternativeEntityType  EntityType
	LinearVelocity         Vector3Float
	Location               Vector3Double
	Orientation            Orientation
	Appearance             int32
	DeadReckoning          DeadReckoningParameter
	Marking                Marking
	Capabilities           int32
	ArticulationParameters []ArticulationParameter
}

func (*EntityState) Type() Type     { return TypeEntityState }
func (*EntityState) Family() Family { return FamilyEntityInformation }

func (p *EntityState) Fields() []record.Field {
	params := record.NewList(&p.ArticulationParameters)
	return []record.Field{
		record.Struct("entityID", &p.EntityID),
		record.Uint8("forceId", &p.ForceID),
		params.Count8("numberOfArticulationParameters"),
		record.Struct("entityType", &p.EntityType),
		record.Struct("alternativeEntityType", &p.AlternativeEntityType),
		record.Struct("entityLinearVelocity", &p.LinearVelocity),
		record.Struct("entityLocation", &p.Location),
		record.Struct("entityOrientation", &p.Orientation),
		record.Int32("entityAppearance", &p.Appearance),
		record.Struct("deadReckoningParameters", &p.DeadReckoning),
		record.Struct("marking", &p.Marking),
		record.Int32("capabilities", &p.Capabilities),
		params.Elements("articulationParameters"),
	}
}

// EntityStateUpdate is the reduced EntityState for non-static updates.
type EntityStateUpdate struct {
	EntityID               EntityID
	Padding1               int8
	LinearVelocity         Vector3Float
	Location               Vector3Double
	Orientation            Orientation
	Appearance             int32
	ArticulationParameters []ArticulationParameter
}

func (*EntityStateUpdate) Type() Type     { return TypeEntityStateUpdate }
func (*EntityStateUpdate) Family() Family { return FamilyEntityInformation }

func (p *EntityStateUpdate) Fields() []record.Field {
	params := record.NewList(&p.ArticulationParameters)
	return []record.Field{
		record.Struct("entityID", &p.EntityID),
		record.Pad8("padding1", &p.Padding1),
		params.Count8("numberOfArticulationParameters"),
		record.Struct("entityLinearVelocity", &p.LinearVelocity),
		record.Struct("entityLocation", &p.Location),
		record.Struct("entityOrientation", &p.Orientation),
		record.Int32("entityAppearance", &p.Appearance),
		params.Elements("articulationParameters"),
	}
}

type Collision struct {
	IssuingEntityID   EntityID
	CollidingEntityID EntityID
	EventID           EventID
	CollisionType     uint8
	Padding           int8
	Velocity          Vector3Float
	Mass              float32
	Location          Vector3Float
}

func (*Collision) Type() Type     { return TypeCollision }
func (*Collision) Family() Family { return FamilyEntityInformation }

func (p *Collision) Fields() []record.Field {
	return []record.Field{
		record.Struct("issuingEntityID", &p.IssuingEntityID),
		record.Struct("collidingEntityID", &p.CollidingEntityID),
		record.Struct("eventID", &p.EventID),
		record.Uint8("collisionType", &p.CollisionType),
		record.Pad8("pad", &p.Padding),
		record.Struct("velocity", &p.Velocity),
		record.Float32("mass", &p.Mass),
		record.Struct("location", &p.Location),
	}
}
