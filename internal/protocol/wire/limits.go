package wire

const (
	// DefaultMaxPduBytes matches the largest PDU the DIS standard permits on the wire.
	DefaultMaxPduBytes = 8192

	// DefaultMaxElements bounds a single decoded collection.
	DefaultMaxElements = 4096
)

// Limits constrains decode memory use for untrusted input.
type Limits struct {
	MaxPduBytes int
	MaxElements int
}

func DefaultLimits() Limits {
	return Limits{
		MaxPduBytes: DefaultMaxPduBytes,
		MaxElements: DefaultMaxElements,
	}
}

// WithDefaults fills zero or negative fields from DefaultLimits.
func (l Limits) WithDefaults() Limits {
	def := DefaultLimits()
	if l.MaxPduBytes <= 0 {
		l.MaxPduBytes = def.MaxPduBytes
	}
	if l.MaxElements <= 0 {
		l.MaxElements = def.MaxElements
	}
	return l
}
