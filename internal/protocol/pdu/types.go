package pdu

import "strconv"

// Type is the PDU type discriminant carried in the header.
type Type uint8

const (
	TypeOther                   Type = 0
	TypeEntityState             Type = 1
	TypeFire                    Type = 2
	TypeDetonation              Type = 3
	TypeCollision               Type = 4
	TypeServiceRequest          Type = 5
	TypeResupplyOffer           Type = 6
	TypeResupplyReceived        Type = 7
	TypeResupplyCancel          Type = 8
	TypeRepairComplete          Type = 9
	TypeRepairResponse          Type = 10
	TypeCreateEntity            Type = 11
	TypeRemoveEntity            Type = 12
	TypeStartResume             Type = 13
	TypeStopFreeze              Type = 14
	TypeAcknowledge             Type = 15
	TypeActionRequest           Type = 16
	TypeActionResponse          Type = 17
	TypeDataQuery               Type = 18
	TypeSetData                 Type = 19
	TypeData                    Type = 20
	TypeEventReport             Type = 21
	TypeComment                 Type = 22
	TypeElectromagneticEmission Type = 23
	TypeDesignator              Type = 24
	TypeTransmitter             Type = 25
	TypeSignal                  Type = 26
	TypeReceiver                Type = 27
	TypeAggregateState          Type = 33
	TypeMinefieldData           Type = 39
	TypeGriddedData             Type = 42
	TypeEntityStateUpdate       Type = 67
)

var typeNames = map[Type]string{
	TypeOther:                   "Other",
	TypeEntityState:             "EntityState",
	TypeFire:                    "Fire",
	TypeDetonation:              "Detonation",
	TypeCollision:               "Collision",
	TypeServiceRequest:          "ServiceRequest",
	TypeResupplyOffer:           "ResupplyOffer",
	TypeResupplyReceived:        "ResupplyReceived",
	TypeResupplyCancel:          "ResupplyCancel",
	TypeRepairComplete:          "RepairComplete",
	TypeRepairResponse:          "RepairResponse",
	TypeCreateEntity:            "CreateEntity",
	TypeRemoveEntity:            "RemoveEntity",
	TypeStartResume:             "StartResume",
	TypeStopFreeze:              "StopFreeze",
	TypeAcknowledge:             "Acknowledge",
	TypeActionRequest:           "ActionRequest",
	TypeActionResponse:          "ActionResponse",
	TypeDataQuery:               "DataQuery",
	TypeSetData:                 "SetData",
	TypeData:                    "Data",
	TypeEventReport:             "EventReport",
	TypeComment:                 "Comment",
	TypeElectromagneticEmission: "ElectromagneticEmission",
	TypeDesignator:              "Designator",
	TypeTransmitter:             "Transmitter",
	TypeSignal:                  "Signal",
	TypeReceiver:                "Receiver",
	TypeAggregateState:          "AggregateState",
	TypeMinefieldData:           "MinefieldData",
	TypeGriddedData:             "GriddedData",
	TypeEntityStateUpdate:       "EntityStateUpdate",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "PduType(" + strconv.Itoa(int(t)) + ")"
}

// ParseType resolves a type by name (case-sensitive) or decimal value.
func ParseType(s string) (Type, bool) {
	for t, name := range typeNames {
		if name == s {
			return t, true
		}
	}
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, false
	}
	return Type(n), true
}

// Family is the protocol family carried in the header.
type Family uint8

const (
	FamilyOther                           Family = 0
	FamilyEntityInformation               Family = 1
	FamilyWarfare                         Family = 2
	FamilyLogistics                       Family = 3
	FamilyRadioCommunications             Family = 4
	FamilySimulationManagement            Family = 5
	FamilyDistributedEmissionRegeneration Family = 6
	FamilyEntityManagement                Family = 7
	FamilyMinefield                       Family = 8
	FamilySyntheticEnvironment            Family = 9
)

var familyNames = map[Family]string{
	FamilyOther:                           "Other",
	FamilyEntityInformation:               "EntityInformation",
	FamilyWarfare:                         "Warfare",
	FamilyLogistics:                       "Logistics",
	FamilyRadioCommunications:             "RadioCommunications",
	FamilySimulationManagement:            "SimulationManagement",
	FamilyDistributedEmissionRegeneration: "DistributedEmissionRegeneration",
	FamilyEntityManagement:                "EntityManagement",
	FamilyMinefield:                       "Minefield",
	FamilySyntheticEnvironment:            "SyntheticEnvironment",
}

func (f Family) String() string {
	if s, ok := familyNames[f]; ok {
		return s
	}
	return "Family(" + strconv.Itoa(int(f)) + ")"
}
