package pdu

import "github.com/danmuck/disctl/internal/protocol/record"

type ServiceRequest struct {
	RequestingEntityID   EntityID
	ServicingEntityID    EntityID
	ServiceTypeRequested uint8
	Padding              int16
	Supplies             []SupplyQuantity
}

func (*ServiceRequest) Type() Type     { return TypeServiceRequest }
func (*ServiceRequest) Family() Family { return FamilyLogistics }

func (p *ServiceRequest) Fields() []record.Field {
	supplies := record.NewList(&p.Supplies)
	return []record.Field{
		record.Struct("requestingEntityID", &p.RequestingEntityID),
		record.Struct("servicingEntityID", &p.ServicingEntityID),
		record.Uint8("serviceTypeRequested", &p.ServiceTypeRequested),
		supplies.Count8("numberOfSupplyTypes"),
		record.Pad16("serviceRequestPadding", &p.Padding),
		supplies.Elements("supplies"),
	}
}

// resupplyFields is the layout shared by ResupplyOffer and ResupplyReceived.
func resupplyFields(receiving, supplying *EntityID, pad1 *int16, pad2 *int8, supplies *[]SupplyQuantity) []record.Field {
	list := record.NewList(supplies)
	return []record.Field{
		record.Struct("receivingEntityID", receiving),
		record.Struct("supplyingEntityID", supplying),
		list.Count8("numberOfSupplyTypes"),
		record.Pad16("padding1", pad1),
		record.Pad8("padding2", pad2),
		list.Elements("supplies"),
	}
}

type ResupplyOffer struct {
	ReceivingEntityID EntityID
	SupplyingEntityID EntityID
	Padding1          int16
	Padding2          int8
	Supplies          []SupplyQuantity
}

func (*ResupplyOffer) Type() Type     { return TypeResupplyOffer }
func (*ResupplyOffer) Family() Family { return FamilyLogistics }

func (p *ResupplyOffer) Fields() []record.Field {
	return resupplyFields(&p.ReceivingEntityID, &p.SupplyingEntityID, &p.Padding1, &p.Padding2, &p.Supplies)
}

type ResupplyReceived struct {
	ReceivingEntityID EntityID
	SupplyingEntityID EntityID
	Padding1          int16
	Padding2          int8
	Supplies          []SupplyQuantity
}

func (*ResupplyReceived) Type() Type     { return TypeResupplyReceived }
func (*ResupplyReceived) Family() Family { return FamilyLogistics }

func (p *ResupplyReceived) Fields() []record.Field {
	return resupplyFields(&p.ReceivingEntityID, &p.SupplyingEntityID, &p.Padding1, &p.Padding2, &p.Supplies)
}

type ResupplyCancel struct {
	ReceivingEntityID EntityID
	SupplyingEntityID EntityID
}

func (*ResupplyCancel) Type() Type     { return TypeResupplyCancel }
func (*ResupplyCancel) Family() Family { return FamilyLogistics }

func (p *ResupplyCancel) Fields() []record.Field {
	return []record.Field{
		record.Struct("receivingEntityID", &p.ReceivingEntityID),
		record.Struct("supplyingEntityID", &p.SupplyingEntityID),
	}
}

type RepairComplete struct {
	ReceivingEntityID EntityID
	RepairingEntityID EntityID
	Repair            uint16
	Padding           int16
}

func (*RepairComplete) Type() Type     { return TypeRepairComplete }
func (*RepairComplete) Family() Family { return FamilyLogistics }

func (p *RepairComplete) Fields() []record.Field {
	return []record.Field{
		record.Struct("receivingEntityID", &p.ReceivingEntityID),
		record.Struct("repairingEntityID", &p.RepairingEntityID),
		record.Uint16("repair", &p.Repair),
		record.Pad16("padding2", &p.Padding),
	}
}

type RepairResponse struct {
	ReceivingEntityID EntityID
	RepairingEntityID EntityID
	RepairResult      uint8
	Padding1          int16
	Padding2          int8
}

func (*RepairResponse) Type() Type     { return TypeRepairResponse }
func (*RepairResponse) Family() Family { return FamilyLogistics }

func (p *RepairResponse) Fields() []record.Field {
	return []record.Field{
		record.Struct("receivingEntityID", &p.ReceivingEntityID),
		record.Struct("repairingEntityID", &p.RepairingEntityID),
		record.Uint8("repairResult", &p.RepairResult),
		record.Pad16("padding1", &p.Padding1),
		record.Pad8("padding2", &p.Padding2),
	}
}
