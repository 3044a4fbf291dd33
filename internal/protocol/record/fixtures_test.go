package record

type point struct {
	X, Y, Z float32
}

func (p *point) Fields() []Field {
	return []Field{
		Float32("x", &p.X),
		Float32("y", &p.Y),
		Float32("z", &p.Z),
	}
}

type item struct {
	Kind  uint8
	Flags int8
	Where point
	Value float64
}

func (i *item) Fields() []Field {
	return []Field{
		Uint8("kind", &i.Kind),
		Int8("flags", &i.Flags),
		Struct("where", &i.Where),
		Float64("value", &i.Value),
	}
}

// container places its count ahead of unrelated fields, as EntityState does.
type container struct {
	ID      uint16
	Label   [6]byte
	Pad     int16
	Stamp   uint32
	Items   []item
	Payload []byte
}

func (c *container) Fields() []Field {
	items := NewList(&c.Items)
	payload := NewBlob(&c.Payload, 8)
	return []Field{
		Uint16("id", &c.ID),
		items.Count8("numberOfItems"),
		Chars("label", c.Label[:]),
		Pad16("padding", &c.Pad),
		Uint32("stamp", &c.Stamp),
		payload.Bits32("payloadLength"),
		items.Elements("items"),
		payload.Data("payload"),
	}
}

// section carries a derived length in 32-bit words covering itself.
type section struct {
	Code  uint16
	Parts []point
}

func (s *section) Fields() []Field {
	parts := NewList(&s.Parts)
	return []Field{
		Derived8("lengthWords", func() int { return Size(s) / 4 }),
		parts.Count8("numberOfParts"),
		Uint16("code", &s.Code),
		parts.Elements("parts"),
	}
}

func sampleContainer() *container {
	c := &container{
		ID:      7,
		Pad:     -1,
		Stamp:   0xdeadbeef,
		Payload: []byte{1, 2, 3},
		Items: []item{
			{Kind: 1, Flags: -2, Where: point{1, 2, 3}, Value: 0.5},
			{Kind: 2, Where: point{-1, 0, 1}, Value: -8},
			{Kind: 3, Flags: 127, Value: 1e9},
		},
	}
	copy(c.Label[:], "alpha")
	return c
}

// tagged carries two unpadded blobs whose counts are octets, the way
// Transmitter lays out modulation and antenna data.
type tagged struct {
	Short []byte
	Long  []byte
}

func (g *tagged) Fields() []Field {
	short := NewBlob(&g.Short, 1)
	long := NewBlob(&g.Long, 1)
	return []Field{
		long.Octets16("longLength"),
		short.Octets8("shortLength"),
		short.Data("short"),
		long.Data("long"),
	}
}

// burst keeps an exact bit count for data that ends mid-byte.
type burst struct {
	Data []byte
	Bits int
}

func (b *burst) Fields() []Field {
	data := NewBlob(&b.Data, 2).ExactBits(&b.Bits)
	return []Field{
		data.Bits16("lengthBits"),
		data.Data("data"),
	}
}
