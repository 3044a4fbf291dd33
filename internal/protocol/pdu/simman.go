package pdu

import "github.com/danmuck/disctl/internal/protocol/record"

// Simulation management bodies all open with the originating and receiving
// entity. Datum-carrying bodies close with fixed then variable datums.

func managed(orig, recv *EntityID, rest ...record.Field) []record.Field {
	out := make([]record.Field, 0, len(rest)+2)
	out = append(out,
		record.Struct("originatingEntityID", orig),
		record.Struct("receivingEntityID", recv),
	)
	return append(out, rest...)
}

type CreateEntity struct {
	OriginatingEntityID EntityID
	ReceivingEntityID   EntityID
	RequestID           uint32
}

func (*CreateEntity) Type() Type     { return TypeCreateEntity }
func (*CreateEntity) Family() Family { return FamilySimulationManagement }

func (p *CreateEntity) Fields() []record.Field {
	return managed(&p.OriginatingEntityID, &p.ReceivingEntityID,
		record.Uint32("requestID", &p.RequestID),
	)
}

type RemoveEntity struct {
	OriginatingEntityID EntityID
	ReceivingEntityID   EntityID
	RequestID           uint32
}

func (*RemoveEntity) Type() Type     { return TypeRemoveEntity }
func (*RemoveEntity) Family() Family { return FamilySimulationManagement }

func (p *RemoveEntity) Fields() []record.Field {
	return managed(&p.OriginatingEntityID, &p.ReceivingEntityID,
		record.Uint32("requestID", &p.RequestID),
	)
}

type StartResume struct {
	OriginatingEntityID EntityID
	ReceivingEntityID   EntityID
	RealWorldTime       ClockTime
	SimulationTime      ClockTime
	RequestID           uint32
}

func (*StartResume) Type() Type     { return TypeStartResume }
func (*StartResume) Family() Family { return FamilySimulationManagement }

func (p *StartResume) Fields() []record.Field {
	return managed(&p.OriginatingEntityID, &p.ReceivingEntityID,
		record.Struct("realWorldTime", &p.RealWorldTime),
		record.Struct("simulationTime", &p.SimulationTime),
		record.Uint32("requestID", &p.RequestID),
	)
}

type StopFreeze struct {
	OriginatingEntityID EntityID
	ReceivingEntityID   EntityID
	RealWorldTime       ClockTime
	Reason              uint8
	FrozenBehavior      uint8
	Padding             int16
	RequestID           uint32
}

func (*StopFreeze) Type() Type     { return TypeStopFreeze }
func (*StopFreeze) Family() Family { return FamilySimulationManagement }

func (p *StopFreeze) Fields() []record.Field {
	return managed(&p.OriginatingEntityID, &p.ReceivingEntityID,
		record.Struct("realWorldTime", &p.RealWorldTime),
		record.Uint8("reason", &p.Reason),
		record.Uint8("frozenBehavior", &p.FrozenBehavior),
		record.Pad16("padding1", &p.Padding),
		record.Uint32("requestID", &p.RequestID),
	)
}

type Acknowledge struct {
	OriginatingEntityID EntityID
	ReceivingEntityID   EntityID
	AcknowledgeFlag     uint16
	ResponseFlag        uint16
	RequestID           uint32
}

func (*Acknowledge) Type() Type     { return TypeAcknowledge }
func (*Acknowledge) Family() Family { return FamilySimulationManagement }

func (p *Acknowledge) Fields() []record.Field {
	return managed(&p.OriginatingEntityID, &p.ReceivingEntityID,
		record.Uint16("acknowledgeFlag", &p.AcknowledgeFlag),
		record.Uint16("responseFlag", &p.ResponseFlag),
		record.Uint32("requestID", &p.RequestID),
	)
}

type ActionRequest struct {
	OriginatingEntityID EntityID
	ReceivingEntityID   EntityID
	RequestID           uint32
	ActionID            uint32
	FixedDatums         []FixedDatum
	VariableDatums      []VariableDatum
}

func (*ActionRequest) Type() Type     { return TypeActionRequest }
func (*ActionRequest) Family() Family { return FamilySimulationManagement }

func (p *ActionRequest) Fields() []record.Field {
	return managed(&p.OriginatingEntityID, &p.ReceivingEntityID, append([]record.Field{
		record.Uint32("requestID", &p.RequestID),
		record.Uint32("actionID", &p.ActionID),
	}, datumFields(&p.FixedDatums, &p.VariableDatums)...)...)
}

type ActionResponse struct {
	OriginatingEntityID EntityID
	ReceivingEntityID   EntityID
	RequestID           uint32
	RequestStatus       uint32
	FixedDatums         []FixedDatum
	VariableDatums      []VariableDatum
}

func (*ActionResponse) Type() Type     { return TypeActionResponse }
func (*ActionResponse) Family() Family { return FamilySimulationManagement }

func (p *ActionResponse) Fields() []record.Field {
	return managed(&p.OriginatingEntityID, &p.ReceivingEntityID, append([]record.Field{
		record.Uint32("requestID", &p.RequestID),
		record.Uint32("requestStatus", &p.RequestStatus),
	}, datumFields(&p.FixedDatums, &p.VariableDatums)...)...)
}

// DataQuery lists the datum IDs being requested rather than datum records.
type DataQuery struct {
	OriginatingEntityID EntityID
	ReceivingEntityID   EntityID
	RequestID           uint32
	TimeInterval        uint32
	FixedDatumIDs       []DatumID
	VariableDatumIDs    []DatumID
}

func (*DataQuery) Type() Type     { return TypeDataQuery }
func (*DataQuery) Family() Family { return FamilySimulationManagement }

func (p *DataQuery) Fields() []record.Field {
	fixed := record.NewList(&p.FixedDatumIDs)
	variable := record.NewList(&p.VariableDatumIDs)
	return managed(&p.OriginatingEntityID, &p.ReceivingEntityID,
		record.Uint32("requestID", &p.RequestID),
		record.Uint32("timeInterval", &p.TimeInterval),
		fixed.Count32("numberOfFixedDatumRecords"),
		variable.Count32("numberOfVariableDatumRecords"),
		fixed.Elements("fixedDatums"),
		variable.Elements("variableDatums"),
	)
}

type SetData struct {
	OriginatingEntityID EntityID
	ReceivingEntityID   EntityID
	RequestID           uint32
	Padding             uint32
	FixedDatums         []FixedDatum
	VariableDatums      []VariableDatum
}

func (*SetData) Type() Type     { return TypeSetData }
func (*SetData) Family() Family { return FamilySimulationManagement }

func (p *SetData) Fields() []record.Field {
	return managed(&p.OriginatingEntityID, &p.ReceivingEntityID, append([]record.Field{
		record.Uint32("requestID", &p.RequestID),
		record.Pad32("padding1", &p.Padding),
	}, datumFields(&p.FixedDatums, &p.VariableDatums)...)...)
}

type Data struct {
	OriginatingEntityID EntityID
	ReceivingEntityID   EntityID
	RequestID           uint32
	Padding             uint32
	FixedDatums         []FixedDatum
	VariableDatums      []VariableDatum
}

func (*Data) Type() Type     { return TypeData }
func (*Data) Family() Family { return FamilySimulationManagement }

func (p *Data) Fields() []record.Field {
	return managed(&p.OriginatingEntityID, &p.ReceivingEntityID, append([]record.Field{
		record.Uint32("requestID", &p.RequestID),
		record.Pad32("padding1", &p.Padding),
	}, datumFields(&p.FixedDatums, &p.VariableDatums)...)...)
}

type EventReport struct {
	OriginatingEntityID EntityID
	ReceivingEntityID   EntityID
	EventType           uint32
	Padding             uint32
	FixedDatums         []FixedDatum
	VariableDatums      []VariableDatum
}

func (*EventReport) Type() Type     { return TypeEventReport }
func (*EventReport) Family() Family { return FamilySimulationManagement }

func (p *EventReport) Fields() []record.Field {
	return managed(&p.OriginatingEntityID, &p.ReceivingEntityID, append([]record.Field{
		record.Uint32("eventType", &p.EventType),
		record.Pad32("padding1", &p.Padding),
	}, datumFields(&p.FixedDatums, &p.VariableDatums)...)...)
}

// Comment carries free-form datums between simulation managers.
type Comment struct {
	OriginatingEntityID EntityID
	ReceivingEntityID   EntityID
	FixedDatums         []FixedDatum
	VariableDatums      []VariableDatum
}

func (*Comment) Type() Type     { return TypeComment }
func (*Comment) Family() Family { return FamilySimulationManagement }

func (p *Comment) Fields() []record.Field {
	return managed(&p.OriginatingEntityID, &p.ReceivingEntityID, datumFields(&p.FixedDatums, &p.VariableDatums)...)
}
