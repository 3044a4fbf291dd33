package pdu

import "github.com/danmuck/disctl/internal/protocol/record"

type EmitterSystem struct {
	EmitterName     uint16
	Function        uint8
	EmitterIDNumber uint8
}

func (e *EmitterSystem) Fields() []record.Field {
	return []record.Field{
		record.Uint16("emitterName", &e.EmitterName),
		record.Uint8("function", &e.Function),
		record.Uint8("emitterIdNumber", &e.EmitterIDNumber),
	}
}

type FundamentalParameterData struct {
	Frequency                float32
	FrequencyRange           float32
	EffectiveRadiatedPower   float32
	PulseRepetitionFrequency float32
	PulseWidth               float32
	BeamAzimuthCenter        float32
	BeamAzimuthSweep         float32
	BeamElevationCenter      float32
	BeamElevationSweep       float32
	BeamSweepSync            float32
}

func (f *FundamentalParameterData) Fields() []record.Field {
	return []record.Field{
		record.Float32("frequency", &f.Frequency),
		record.Float32("frequencyRange", &f.FrequencyRange),
		record.Float32("effectiveRadiatedPower", &f.EffectiveRadiatedPower),
		record.Float32("pulseRepetitionFrequency", &f.PulseRepetitionFrequency),
		record.Float32("pulseWidth", &f.PulseWidth),
		record.Float32("beamAzimuthCenter", &f.BeamAzimuthCenter),
		record.Float32("beamAzimuthSweep", &f.BeamAzimuthSweep),
		record.Float32("beamElevationCenter", &f.BeamElevationCenter),
		record.Float32("beamElevationSweep", &f.BeamElevationSweep),
		record.Float32("beamSweepSync", &f.BeamSweepSync),
	}
}

type TrackJamTarget struct {
	TrackJam  EntityID
	EmitterID uint8
	BeamID    uint8
}

func (t *TrackJamTarget) Fields() []record.Field {
	return []record.Field{
		record.Struct("trackJam", &t.TrackJam),
		record.Uint8("emitterID", &t.EmitterID),
		record.Uint8("beamID", &t.BeamID),
	}
}

// words returns the size of r in 32-bit words.
func words(r record.Record) func() int {
	return func() int { return record.Size(r) / 4 }
}

type ElectronicEmissionBeamData struct {
	BeamIDNumber        uint8
	BeamParameterIndex  uint16
	Parameters          FundamentalParameterData
	BeamFunction        uint8
	HighDensityTrackJam uint8
	Padding             uint8
	JammingModeSequence uint32
	TrackJamTargets     []TrackJamTarget
}

func (b *ElectronicEmissionBeamData) Fields() []record.Field {
	targets := record.NewList(&b.TrackJamTargets)
	return []record.Field{
		record.Derived8("beamDataLength", words(b)),
		record.Uint8("beamIDNumber", &b.BeamIDNumber),
		record.Uint16("beamParameterIndex", &b.BeamParameterIndex),
		record.Struct("fundamentalParameterData", &b.Parameters),
		record.Uint8("beamFunction", &b.BeamFunction),
		targets.Count8("numberOfTrackJamTargets"),
		record.Uint8("highDensityTrackJam", &b.HighDensityTrackJam),
		record.Pad8("pad4", &b.Padding),
		record.Uint32("jammingModeSequence", &b.JammingModeSequence),
		targets.Elements("trackJamTargets"),
	}
}

type ElectronicEmissionSystemData struct {
	Padding       uint16
	EmitterSystem EmitterSystem
	Location      Vector3Float
	Beams         []ElectronicEmissionBeamData
}

func (s *ElectronicEmissionSystemData) Fields() []record.Field {
	beams := record.NewList(&s.Beams)
	return []record.Field{
		record.Derived8("systemDataLength", words(s)),
		beams.Count8("numberOfBeams"),
		record.Pad16("emissionsPadding2", &s.Padding),
		record.Struct("emitterSystem", &s.EmitterSystem),
		record.Struct("location", &s.Location),
		beams.Elements("beamDataRecords"),
	}
}

type ElectromagneticEmission struct {
	EmittingEntityID     EntityID
	EventID              EventID
	StateUpdateIndicator uint8
	Padding              uint16
	Systems              []ElectronicEmissionSystemData
}

func (*ElectromagneticEmission) Type() Type     { return TypeElectromagneticEmission }
func (*ElectromagneticEmission) Family() Family { return FamilyDistributedEmissionRegeneration }

func (p *ElectromagneticEmission) Fields() []record.Field {
	systems := record.NewList(&p.Systems)
	return []record.Field{
		record.Struct("emittingEntityID", &p.EmittingEntityID),
		record.Struct("eventID", &p.EventID),
		record.Uint8("stateUpdateIndicator", &p.StateUpdateIndicator),
		systems.Count8("numberOfSystems"),
		record.Pad16("paddingForEmissionsPdu", &p.Padding),
		systems.Elements("systems"),
	}
}

type Designator struct {
	DesignatingEntityID    EntityID
	CodeName               uint16
	DesignatedEntityID     EntityID
	DesignatorCode         uint16
	DesignatorPower        float32
	DesignatorWavelength   float32
	SpotWrtDesignated      Vector3Float
	SpotLocation           Vector3Double
	DeadReckoningAlgorithm int8
	Padding1               uint16
	Padding2               int8
	LinearAcceleration     Vector3Float
}

func (*Designator) Type() Type     { return TypeDesignator }
func (*Designator) Family() Family { return FamilyDistributedEmissionRegeneration }

func (p *Designator) Fields() []record.Field {
	return []record.Field{
		record.Struct("designatingEntityID", &p.DesignatingEntityID),
		record.Uint16("codeName", &p.CodeName),
		record.Struct("designatedEntityID", &p.DesignatedEntityID),
		record.Uint16("designatorCode", &p.DesignatorCode),
		record.Float32("designatorPower", &p.DesignatorPower),
		record.Float32("designatorWavelength", &p.DesignatorWavelength),
		record.Struct("designatorSpotWrtDesignated", &p.SpotWrtDesignated),
		record.Struct("designatorSpotLocation", &p.SpotLocation),
		record.Int8("deadReckoningAlgorithm", &p.DeadReckoningAlgorithm),
		record.Pad16("padding1", &p.Padding1),
		record.Pad8("padding2", &p.Padding2),
		record.Struct("entityLinearAcceleration", &p.LinearAcceleration),
	}
}
