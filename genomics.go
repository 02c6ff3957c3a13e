package biosim

import "math/bits"

// DefaultSpeciesThreshold is the normalized Hamming distance below which
// two genomes are considered the same species.
const DefaultSpeciesThreshold = 0.2

// HammingDistance is the normalized bit distance between two genomes'
// binary DNA: mismatched bits over the common prefix plus the full length
// gap, divided by the longer length. Two empty genomes are maximally
// distant by convention. The comparison runs on the packed 32-bit words
// directly, which is equivalent to diffing the '0'/'1' strings.
func HammingDistance(a, b Genome) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	common := minInt(len(a), len(b))
	diffs := 0
	for i := 0; i < common; i++ {
		diffs += bits.OnesCount32(a[i].Pack() ^ b[i].Pack())
	}
	diffs += (maxInt(len(a), len(b)) - common) * 32
	return float64(diffs) / float64(maxInt(len(a), len(b))*32)
}

// ClusterSpecies groups genomes by single-link similarity at the given
// threshold: genomes are visited in index order, each unassigned one seeds
// a new cluster and captures every later unassigned genome closer than the
// threshold. Returns a cluster label per genome and the cluster count.
//
// This is O(n^2); the driver only runs it at generation boundaries.
func ClusterSpecies(genomes []Genome, threshold float64) (labels []int, count int) {
	labels = make([]int, len(genomes))
	for i := range labels {
		labels[i] = -1
	}
	for i := range genomes {
		if labels[i] != -1 {
			continue
		}
		labels[i] = count
		for j := i + 1; j < len(genomes); j++ {
			if labels[j] == -1 && HammingDistance(genomes[i], genomes[j]) < threshold {
				labels[j] = count
			}
		}
		count++
	}
	return labels, count
}
