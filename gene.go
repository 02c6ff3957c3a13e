package biosim

import (
	"fmt"
	"math"
	"strconv"
)

// WeightScale is the fixed-point scale of the 16-bit weight field: a stored
// +8192 decodes to weight 1.0.
const WeightScale = 8192.0

// geneHexLen is the width of one packed gene in hex characters.
const geneHexLen = 8

// Gene is one directed weighted connection in the neural graph. Genes have
// no identity, only value; copying one by assignment is a full copy.
//
// Packed layout of the 32-bit word, MSB first:
//
//	bit  31     source kind (0 = neuron, 1 = sensor)
//	bits 30..24 source index (7 bits)
//	bit  23     sink kind (0 = neuron, 1 = action)
//	bits 22..16 sink index (7 bits)
//	bits 15..0  weight, signed 16-bit two's complement, scale 1/8192
//
// The 7-bit indices deliberately overshoot the real sensor/action/neuron
// counts: any bit pattern remaps onto a valid endpoint by modulo at compile
// time, so a genome spliced at an arbitrary nibble boundary still decodes
// without validation failure.
type Gene struct {
	SourceKind  Kind
	SourceIndex uint8
	SinkKind    Kind
	SinkIndex   uint8
	Weight      float64
}

// Pack encodes the gene as a 32-bit word. The weight saturates at the
// int16 range rather than wrapping.
func (g Gene) Pack() uint32 {
	w := int(math.Round(g.Weight * WeightScale))
	if w > math.MaxInt16 {
		w = math.MaxInt16
	} else if w < math.MinInt16 {
		w = math.MinInt16
	}
	return uint32(g.SourceKind&1)<<31 |
		uint32(g.SourceIndex&0x7F)<<24 |
		uint32(g.SinkKind&1)<<23 |
		uint32(g.SinkIndex&0x7F)<<16 |
		uint32(uint16(int16(w)))
}

// UnpackGene decodes a 32-bit word into a Gene. The weight field is
// sign-extended before scaling.
func UnpackGene(u uint32) Gene {
	return Gene{
		SourceKind:  Kind(u >> 31 & 1),
		SourceIndex: uint8(u >> 24 & 0x7F),
		SinkKind:    Kind(u >> 23 & 1),
		SinkIndex:   uint8(u >> 16 & 0x7F),
		Weight:      float64(int16(u&0xFFFF)) / WeightScale,
	}
}

// Hex renders the packed gene as 8 uppercase hex digits, the canonical
// on-wire form.
func (g Gene) Hex() string {
	return fmt.Sprintf("%08X", g.Pack())
}

// ParseHexGene parses one 8-character hex window into a Gene. Mixed case is
// accepted.
func ParseHexGene(s string) (Gene, error) {
	if len(s) != geneHexLen {
		return Gene{}, fmt.Errorf("gene hex must be %d characters, got %d", geneHexLen, len(s))
	}
	u, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Gene{}, err
	}
	return UnpackGene(uint32(u)), nil
}

// Binary renders the packed gene as 32 '0'/'1' characters. This form exists
// for bitwise genome comparisons.
func (g Gene) Binary() string {
	return fmt.Sprintf("%032b", g.Pack())
}

func (g Gene) String() string {
	src := fmt.Sprintf("Neur(%d)", g.SourceIndex)
	if g.SourceKind == Sensor {
		src = fmt.Sprintf("Sens(%d)", g.SourceIndex)
	}
	sink := fmt.Sprintf("Neur(%d)", g.SinkIndex)
	if g.SinkKind == Action {
		sink = fmt.Sprintf("Act(%d)", g.SinkIndex)
	}
	return fmt.Sprintf("[%s -> %s w=%.2f]", src, sink, g.Weight)
}
