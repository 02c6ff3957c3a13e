package biosim

import (
	"strings"

	"github.com/inlined/rand"
)

// Genome is an ordered sequence of genes, the inheritable unit. The DNA hex
// string is the equivalent wire form: 8 hex characters per gene, no
// separators.
type Genome []Gene

// ToHex renders the genome as its DNA string (uppercase).
func (g Genome) ToHex() string {
	var b strings.Builder
	b.Grow(len(g) * geneHexLen)
	for _, gene := range g {
		b.WriteString(gene.Hex())
	}
	return b.String()
}

// ToBinary renders the genome as a '0'/'1' string, 32 characters per gene.
func (g Genome) ToBinary() string {
	var b strings.Builder
	b.Grow(len(g) * 32)
	for _, gene := range g {
		b.WriteString(gene.Binary())
	}
	return b.String()
}

// GenomeFromHex parses a DNA string in 8-character windows. A trailing
// partial window, or a window that is not valid hex, is silently dropped;
// crossover at nibble granularity relies on this.
func GenomeFromHex(dna string) Genome {
	g := make(Genome, 0, len(dna)/geneHexLen)
	for i := 0; i+geneHexLen <= len(dna); i += geneHexLen {
		gene, err := ParseHexGene(dna[i : i+geneHexLen])
		if err != nil {
			continue
		}
		g = append(g, gene)
	}
	return g
}

// Clone returns an independent copy of the genome.
func (g Genome) Clone() Genome {
	c := make(Genome, len(g))
	copy(c, g)
	return c
}

// GeneDomains bounds the index domains random genes draw from. Sensors and
// Actions list the enabled indices; an empty list falls back to the full
// enumeration so a blank configuration still produces decodable genes.
type GeneDomains struct {
	Neurons int
	Sensors []int
	Actions []int
}

func pickIndex(r rand.Rand, enabled []int, full int) uint8 {
	if len(enabled) == 0 {
		return uint8(r.Int31n(int32(full)))
	}
	return uint8(enabled[r.Int31n(int32(len(enabled)))])
}

// RandomGene draws a fresh gene: kinds uniform on {0, 1}, indices uniform on
// the kind-appropriate domain, weight uniform on [-4, +4].
func RandomGene(r rand.Rand, d GeneDomains) Gene {
	g := Gene{
		SourceKind: Kind(r.Int31n(2)),
		SinkKind:   Kind(r.Int31n(2)),
		Weight:     r.Float64()*8.0 - 4.0,
	}
	if g.SourceKind == Sensor {
		g.SourceIndex = pickIndex(r, d.Sensors, NumSensors)
	} else {
		g.SourceIndex = uint8(r.Int31n(int32(d.Neurons)))
	}
	if g.SinkKind == Action {
		g.SinkIndex = pickIndex(r, d.Actions, NumActions)
	} else {
		g.SinkIndex = uint8(r.Int31n(int32(d.Neurons)))
	}
	return g
}

// NewRandomGenome draws length independent random genes.
func NewRandomGenome(r rand.Rand, length int, d GeneDomains) Genome {
	g := make(Genome, length)
	for i := range g {
		g[i] = RandomGene(r, d)
	}
	return g
}
