// Package record is the schema-driven codec shared by every DIS record type.
//
// A record type declares its wire layout once by implementing Record:
//
//	func (v *Vector3Float) Fields() []record.Field {
//		return []record.Field{
//			record.Float32("x", &v.X),
//			record.Float32("y", &v.Y),
//			record.Float32("z", &v.Z),
//		}
//	}
//
// Size, Marshal, Unmarshal, Equal, Hash and Describe all walk that single
// layout, so encoded size and encoded bytes cannot drift apart.
//
// Collection counts and length fields are never stored on the record. They
// are computed from the live data on encode and only staged while decoding
// the elements that follow them.
//
// A record left partially populated by a failed Unmarshal must be discarded.
package record
