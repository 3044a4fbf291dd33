package pdu

import "fmt"

// Sample returns a populated body of type t, with every collection
// non-empty. It backs `disctl sample` and the catalogue tests.
func Sample(t Type) (Body, error) {
	build, ok := samples[t]
	if !ok {
		return nil, &UnknownTypeError{Type: t}
	}
	return build(), nil
}

// SamplePdu wraps Sample in a stamped PDU for the given exercise.
func SamplePdu(exerciseID uint8, t Type) (*Pdu, error) {
	body, err := Sample(t)
	if err != nil {
		return nil, err
	}
	p := New(exerciseID, body)
	if err := p.stamp(); err != nil {
		return nil, fmt.Errorf("pdu: sample %s: %w", t, err)
	}
	return p, nil
}

var (
	sampleA = EntityID{Site: 1, Application: 2, Entity: 3}
	sampleB = EntityID{Site: 1, Application: 2, Entity: 40}

	sampleEvent = EventID{Site: 1, Application: 2, EventNumber: 77}

	sampleTank  = EntityType{Kind: 1, Domain: 1, Country: 225, Category: 1, Subcategory: 1, Specific: 3}
	sampleShell = EntityType{Kind: 2, Domain: 9, Country: 225, Category: 2, Subcategory: 1}
)

func sampleParams() []ArticulationParameter {
	return []ArticulationParameter{
		{ParameterTypeDesignator: 0, ChangeIndicator: 1, PartAttachedTo: 0, ParameterType: 4096 + 11, ParameterValue: 0.785},
		{ParameterTypeDesignator: 0, ChangeIndicator: 1, PartAttachedTo: 1, ParameterType: 4416 + 11, ParameterValue: -0.125},
	}
}

func sampleFixed() []FixedDatum {
	return []FixedDatum{{ID: 240000, Value: 1}, {ID: 240001, Value: 42}}
}

func sampleVariable() []VariableDatum {
	return []VariableDatum{
		{ID: 50000, Value: []byte("hello, exercise")},
		{ID: 50001, Value: []byte{0xb0}, ValueBits: 3},
	}
}

func sampleSupplies() []SupplyQuantity {
	return []SupplyQuantity{
		{SupplyType: EntityType{Kind: 4, Domain: 1, Country: 225, Category: 1}, Quantity: 200},
		{SupplyType: EntityType{Kind: 4, Domain: 1, Country: 225, Category: 2}, Quantity: 12.5},
	}
}

var samples = map[Type]func() Body{
	TypeEntityState: func() Body {
		return &EntityState{
			EntityID:               sampleA,
			ForceID:                1,
			EntityType:             sampleTank,
			AlternativeEntityType:  sampleTank,
			LinearVelocity:         Vector3Float{X: 4.5, Y: -1, Z: 0},
			Location:               Vector3Double{X: 4_518_236.25, Y: 1_021_553.5, Z: 4_376_021.75},
			Orientation:            Orientation{Psi: 1.5, Theta: 0.02, Phi: -0.01},
			Appearance:             1 << 3,
			DeadReckoning:          DeadReckoningParameter{Algorithm: 2, LinearAcceleration: Vector3Float{X: 0.1}},
			Marking:                NewMarking("TANK 01"),
			Capabilities:           0,
			ArticulationParameters: sampleParams(),
		}
	},
	TypeFire: func() Body {
		return &Fire{
			FiringEntityID:   sampleA,
			TargetEntityID:   sampleB,
			MunitionID:       EntityID{Site: 1, Application: 2, Entity: 900},
			EventID:          sampleEvent,
			FireMissionIndex: 3,
			Location:         Vector3Double{X: 4_518_236.25, Y: 1_021_553.5, Z: 4_376_021.75},
			Burst:            BurstDescriptor{Munition: sampleShell, Warhead: 1000, Fuse: 1000, Quantity: 1, Rate: 0},
			Velocity:         Vector3Float{X: 820},
			RangeToTarget:    2200,
		}
	},
	TypeDetonation: func() Body {
		return &Detonation{
			FiringEntityID:         sampleA,
			TargetEntityID:         sampleB,
			MunitionID:             EntityID{Site: 1, Application: 2, Entity: 900},
			EventID:                sampleEvent,
			Velocity:               Vector3Float{X: 790, Z: -12},
			Location:               Vector3Double{X: 4_519_900, Y: 1_022_010, Z: 4_375_800},
			Burst:                  BurstDescriptor{Munition: sampleShell, Warhead: 1000, Fuse: 1000, Quantity: 1},
			LocationInEntity:       Vector3Float{X: 1.2, Y: 0.4, Z: 1.9},
			DetonationResult:       1,
			ArticulationParameters: sampleParams()[:1],
		}
	},
	TypeCollision: func() Body {
		return &Collision{
			IssuingEntityID:   sampleA,
			CollidingEntityID: sampleB,
			EventID:           sampleEvent,
			CollisionType:     1,
			Velocity:          Vector3Float{X: 3, Y: 1},
			Mass:              62000,
			Location:          Vector3Float{X: 2.5, Y: 0, Z: 0.8},
		}
	},
	TypeServiceRequest: func() Body {
		return &ServiceRequest{RequestingEntityID: sampleA, ServicingEntityID: sampleB, ServiceTypeRequested: 1, Supplies: sampleSupplies()}
	},
	TypeResupplyOffer: func() Body {
		return &ResupplyOffer{ReceivingEntityID: sampleA, SupplyingEntityID: sampleB, Supplies: sampleSupplies()}
	},
	TypeResupplyReceived: func() Body {
		return &ResupplyReceived{ReceivingEntityID: sampleA, SupplyingEntityID: sampleB, Supplies: sampleSupplies()[:1]}
	},
	TypeResupplyCancel: func() Body {
		return &ResupplyCancel{ReceivingEntityID: sampleA, SupplyingEntityID: sampleB}
	},
	TypeRepairComplete: func() Body {
		return &RepairComplete{ReceivingEntityID: sampleA, RepairingEntityID: sampleB, Repair: 1010}
	},
	TypeRepairResponse: func() Body {
		return &RepairResponse{ReceivingEntityID: sampleA, RepairingEntityID: sampleB, RepairResult: 2}
	},
	TypeCreateEntity: func() Body {
		return &CreateEntity{OriginatingEntityID: sampleA, ReceivingEntityID: sampleB, RequestID: 101}
	},
	TypeRemoveEntity: func() Body {
		return &RemoveEntity{OriginatingEntityID: sampleA, ReceivingEntityID: sampleB, RequestID: 102}
	},
	TypeStartResume: func() Body {
		return &StartResume{
			OriginatingEntityID: sampleA,
			ReceivingEntityID:   sampleB,
			RealWorldTime:       ClockTime{Hour: 14, TimePastHour: 1_800_000},
			SimulationTime:      ClockTime{Hour: 6, TimePastHour: 0},
			RequestID:           103,
		}
	},
	TypeStopFreeze: func() Body {
		return &StopFreeze{
			OriginatingEntityID: sampleA,
			ReceivingEntityID:   sampleB,
			RealWorldTime:       ClockTime{Hour: 15, TimePastHour: 42},
			Reason:              2,
			FrozenBehavior:      1,
			RequestID:           104,
		}
	},
	TypeAcknowledge: func() Body {
		return &Acknowledge{OriginatingEntityID: sampleA, ReceivingEntityID: sampleB, AcknowledgeFlag: 3, ResponseFlag: 1, RequestID: 103}
	},
	TypeActionRequest: func() Body {
		return &ActionRequest{
			OriginatingEntityID: sampleA,
			ReceivingEntityID:   sampleB,
			RequestID:           105,
			ActionID:            7,
			FixedDatums:         sampleFixed(),
			VariableDatums:      sampleVariable(),
		}
	},
	TypeActionResponse: func() Body {
		return &ActionResponse{
			OriginatingEntityID: sampleA,
			ReceivingEntityID:   sampleB,
			RequestID:           105,
			RequestStatus:       4,
			FixedDatums:         sampleFixed(),
			VariableDatums:      sampleVariable(),
		}
	},
	TypeDataQuery: func() Body {
		return &DataQuery{
			OriginatingEntityID: sampleA,
			ReceivingEntityID:   sampleB,
			RequestID:           106,
			TimeInterval:        5000,
			FixedDatumIDs:       []DatumID{{ID: 240000}, {ID: 240001}},
			VariableDatumIDs:    []DatumID{{ID: 50000}},
		}
	},
	TypeSetData: func() Body {
		return &SetData{OriginatingEntityID: sampleA, ReceivingEntityID: sampleB, RequestID: 107, FixedDatums: sampleFixed(), VariableDatums: sampleVariable()}
	},
	TypeData: func() Body {
		return &Data{OriginatingEntityID: sampleA, ReceivingEntityID: sampleB, RequestID: 106, FixedDatums: sampleFixed(), VariableDatums: sampleVariable()}
	},
	TypeEventReport: func() Body {
		return &EventReport{OriginatingEntityID: sampleA, ReceivingEntityID: sampleB, EventType: 2, FixedDatums: sampleFixed(), VariableDatums: sampleVariable()}
	},
	TypeComment: func() Body {
		return &Comment{
			OriginatingEntityID: sampleA,
			ReceivingEntityID:   sampleB,
			VariableDatums:      []VariableDatum{{ID: 1, Value: []byte("checkpoint alpha reached")}},
		}
	},
	TypeElectromagneticEmission: func() Body {
		return &ElectromagneticEmission{
			EmittingEntityID:     sampleA,
			EventID:              sampleEvent,
			StateUpdateIndicator: 1,
			Systems: []ElectronicEmissionSystemData{{
				EmitterSystem: EmitterSystem{EmitterName: 2530, Function: 2, EmitterIDNumber: 1},
				Location:      Vector3Float{Z: 3.1},
				Beams: []ElectronicEmissionBeamData{{
					BeamIDNumber:       1,
					BeamParameterIndex: 10,
					Parameters: FundamentalParameterData{
						Frequency:                9.4e9,
						FrequencyRange:           5e7,
						EffectiveRadiatedPower:   70,
						PulseRepetitionFrequency: 1000,
						PulseWidth:               1.2,
						BeamAzimuthSweep:         0.5,
						BeamElevationSweep:       0.2,
					},
					BeamFunction:        4,
					JammingModeSequence: 0,
					TrackJamTargets:     []TrackJamTarget{{TrackJam: sampleB, EmitterID: 1, BeamID: 1}},
				}},
			}},
		}
	},
	TypeDesignator: func() Body {
		return &Designator{
			DesignatingEntityID:    sampleA,
			CodeName:               1,
			DesignatedEntityID:     sampleB,
			DesignatorCode:         1111,
			DesignatorPower:        100,
			DesignatorWavelength:   1.064,
			SpotWrtDesignated:      Vector3Float{X: 0.5, Z: 1},
			SpotLocation:           Vector3Double{X: 4_519_900, Y: 1_022_010, Z: 4_375_800},
			DeadReckoningAlgorithm: 4,
		}
	},
	TypeTransmitter: func() Body {
		return &Transmitter{
			EntityID:                   sampleA,
			RadioID:                    1,
			RadioEntityType:            RadioEntityType{Kind: 7, Domain: 1, Country: 225, Category: 1, NomenclatureVersion: 1, Nomenclature: 3},
			TransmitState:              2,
			InputSource:                1,
			AntennaLocation:            Vector3Double{X: 4_518_236.25, Y: 1_021_553.5, Z: 4_376_024},
			RelativeAntennaLocation:    Vector3Float{Z: 2.5},
			AntennaPatternType:         1,
			Frequency:                  30_000_000,
			TransmitFrequencyBandwidth: 25000,
			Power:                      10,
			ModulationType:             ModulationType{Major: 2, Detail: 2, System: 1},
			ModulationParameters:       []byte{0x01, 0x02, 0x03, 0x04, 0x05},
			AntennaPattern:             []byte{0x00, 0x00, 0x3f, 0x80, 0x00, 0x00, 0x00, 0x00},
		}
	},
	TypeSignal: func() Body {
		return &Signal{
			EntityID:       sampleA,
			RadioID:        1,
			EncodingScheme: 0x0004,
			SampleRate:     8000,
			Samples:        6,
			Data:           []byte{0x10, 0x22, 0x31, 0x40, 0x55, 0x6a},
		}
	},
	TypeReceiver: func() Body {
		return &Receiver{
			EntityID:            sampleB,
			RadioID:             1,
			ReceiverState:       2,
			ReceivedPower:       -71.5,
			TransmitterEntityID: sampleA,
			TransmitterRadioID:  1,
		}
	},
	TypeEntityStateUpdate: func() Body {
		return &EntityStateUpdate{
			EntityID:               sampleA,
			LinearVelocity:         Vector3Float{X: 4.5, Y: -1},
			Location:               Vector3Double{X: 4_518_240, Y: 1_021_552, Z: 4_376_021.75},
			Orientation:            Orientation{Psi: 1.5},
			Appearance:             1 << 3,
			ArticulationParameters: sampleParams(),
		}
	},
}
