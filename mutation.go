package biosim

import (
	"github.com/inlined/rand"
)

// Mutator introduces randomness into an inherited genome. Mutation must be
// rare relative to crossover or the search degenerates into a random walk.
type Mutator interface {
	Mutate(r rand.Rand, g Genome, d GeneDomains) Genome
}

// PointMutation is the per-gene trait mutation plus a per-genome
// delete/append pass.
//
// For each gene, with probability Rate exactly one of five traits mutates:
// flip the source kind, resample the source index, flip the sink kind,
// resample the sink index, or perturb the weight by a uniform draw on
// [-1, +1]. Index resampling draws from the domain of the gene's current
// kind, so a kind flipped by an earlier mutation resamples in its new
// domain. After the per-gene pass, with probability DeletionRate one random
// gene is removed (never below length 1), and with probability InsertionRate
// one fresh random gene is appended.
type PointMutation struct {
	Rate          float64
	InsertionRate float64
	DeletionRate  float64
}

// Mutate implements Mutator. The input genome is not modified.
func (m PointMutation) Mutate(r rand.Rand, g Genome, d GeneDomains) Genome {
	out := g.Clone()
	for i := range out {
		if r.Float64() >= m.Rate {
			continue
		}
		switch r.Int31n(5) {
		case 0:
			out[i].SourceKind ^= 1
		case 1:
			if out[i].SourceKind == Sensor {
				out[i].SourceIndex = pickIndex(r, d.Sensors, NumSensors)
			} else {
				out[i].SourceIndex = uint8(r.Int31n(int32(d.Neurons)))
			}
		case 2:
			out[i].SinkKind ^= 1
		case 3:
			if out[i].SinkKind == Action {
				out[i].SinkIndex = pickIndex(r, d.Actions, NumActions)
			} else {
				out[i].SinkIndex = uint8(r.Int31n(int32(d.Neurons)))
			}
		case 4:
			out[i].Weight += r.Float64()*2.0 - 1.0
		}
	}
	if r.Float64() < m.DeletionRate && len(out) > 1 {
		i := int(r.Int31n(int32(len(out))))
		out = append(out[:i], out[i+1:]...)
	}
	if r.Float64() < m.InsertionRate {
		out = append(out, RandomGene(r, d))
	}
	return out
}
