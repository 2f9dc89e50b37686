package board

// Form is the silhouette class of a segment: which of the six tile edges
// the feature spans, before rotation. Values 13–16 are reserved forms seen
// in save data whose geometry is not deciphered; they decode and encode
// verbatim but cover no edges, so they never join a group.
type Form uint8

const (
	FormSize1         Form = iota // one edge
	FormSize2                     // two adjacent edges
	FormBridge                    // two edges, one apart
	FormStraight                  // two opposite edges
	FormSize3                     // three adjacent edges
	FormJunctionLeft              // pair plus one, gap of one
	FormJunctionRight             // pair plus one, gap of two
	FormThreeWay                  // every other edge
	FormSize4                     // four adjacent edges
	FormFanOut                    // three adjacent plus one
	FormX                         // two pairs, opposite
	FormSize5                     // five adjacent edges
	FormSize6                     // all six edges
	FormReserved13
	FormReserved14
	FormReserved15
	FormReserved16

	formEnd
)

var formNames = [formEnd]string{
	"size1", "size2", "bridge", "straight", "size3",
	"junction_left", "junction_right", "three_way", "size4",
	"fan_out", "x", "size5", "size6",
	"reserved13", "reserved14", "reserved15", "reserved16",
}

func (f Form) String() string {
	if f >= formEnd {
		return "reserved"
	}
	return formNames[f]
}

// Edge coverage per form as a 6-bit mask, bit i = local edge i.
// Reserved forms cover nothing.
var formEdges = [formEnd]uint8{
	FormSize1:         0b000001,
	FormSize2:         0b000011,
	FormBridge:        0b000101,
	FormStraight:      0b001001,
	FormSize3:         0b000111,
	FormJunctionLeft:  0b001011,
	FormJunctionRight: 0b010011,
	FormThreeWay:      0b010101,
	FormSize4:         0b001111,
	FormFanOut:        0b010111,
	FormX:             0b011011,
	FormSize5:         0b011111,
	FormSize6:         0b111111,
}

// EdgeMask returns the covered edges of the segment rotated clockwise by
// rotation steps, as a 6-bit mask in absolute direction order.
func (f Form) EdgeMask(rotation uint8) uint8 {
	if f >= formEnd {
		return 0
	}
	mask := uint16(formEdges[f]) << (rotation % 6)
	return uint8(mask|mask>>6) & 0b111111
}

// Covers reports whether the rotated segment extends to the given edge.
func (f Form) Covers(rotation uint8, edge uint8) bool {
	return f.EdgeMask(rotation)&(1<<(edge%6)) != 0
}
