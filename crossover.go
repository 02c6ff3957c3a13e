package biosim

import (
	"github.com/inlined/rand"
)

// DefaultPivotJitter bounds how far the second parent's pivot may drift from
// the first's in unequal crossover.
const DefaultPivotJitter = 16

// Recombiner is a strategy for splicing two parent DNA strings into a child.
// Pivots land on character (nibble) boundaries, not gene boundaries; the
// caller re-parses the child and drops any trailing fractional gene.
type Recombiner interface {
	Recombine(r rand.Rand, d1, d2 string) string
}

// orphanRule implements the shared degenerate cases: both parents empty
// yields empty, a single empty parent yields the other.
func orphanRule(d1, d2 string) (string, bool) {
	if len(d1) == 0 {
		return d2, true
	}
	if len(d2) == 0 {
		return d1, true
	}
	return "", false
}

// EqualCrossover splices at a single shared pivot drawn uniformly from
// [1, min(|d1|,|d2|)-1]. Both halves therefore come from the same offset in
// their parent, which preserves gene alignment when the parents have equal
// length.
type EqualCrossover struct{}

// Recombine implements Recombiner.
func (EqualCrossover) Recombine(r rand.Rand, d1, d2 string) string {
	if child, done := orphanRule(d1, d2); done {
		return child
	}
	shorter := len(d1)
	if len(d2) < shorter {
		shorter = len(d2)
	}
	if shorter < 2 {
		return d2
	}
	pivot := 1 + int(r.Int31n(int32(shorter-1)))
	return d1[:pivot] + d2[pivot:]
}

// UnequalCrossover draws an independent pivot per parent: pivot1 uniform on
// [0, |d1|], pivot2 = pivot1 + jitter clamped to [0, |d2|], jitter uniform
// on [-Jitter, +Jitter]. Misaligned pivots shift the reading frame, so the
// child may gain or lose genes and the fused gene at the seam is an ordinary
// valid gene.
type UnequalCrossover struct {
	Jitter int
}

// Recombine implements Recombiner.
func (c UnequalCrossover) Recombine(r rand.Rand, d1, d2 string) string {
	if child, done := orphanRule(d1, d2); done {
		return child
	}
	jitter := c.Jitter
	if jitter <= 0 {
		jitter = DefaultPivotJitter
	}
	p1 := int(r.Int31n(int32(len(d1) + 1)))
	p2 := p1 + int(r.Int31n(int32(2*jitter+1))) - jitter
	if p2 < 0 {
		p2 = 0
	} else if p2 > len(d2) {
		p2 = len(d2)
	}
	return d1[:p1] + d2[p2:]
}

// MixedCrossover chooses per call between the unequal and equal modes with
// probability UnequalRate for the unequal mode.
type MixedCrossover struct {
	UnequalRate float64
	Jitter      int
}

// Recombine implements Recombiner.
func (c MixedCrossover) Recombine(r rand.Rand, d1, d2 string) string {
	if r.Float64() < c.UnequalRate {
		return UnequalCrossover{Jitter: c.Jitter}.Recombine(r, d1, d2)
	}
	return EqualCrossover{}.Recombine(r, d1, d2)
}
