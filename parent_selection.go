package biosim

import (
	"github.com/inlined/rand"
)

// ParentSelection is a strategy for sourcing parent indexes from a survivor
// pool. A ParentSelection MAY NOT BE GOROUTINE SAFE. It may only be used by
// one generation boundary at a time.
type ParentSelection interface {
	SelectParents(rand rand.Rand, numParents, numCandidates int) (indexes []int)
}

// UniformWithReplacement samples each parent independently and uniformly
// from the candidate pool. Survival is a binary fitness here, so every
// survivor has equal reproductive odds; a parent may be drawn twice in a
// row, and self-crossover produces a near-clone.
type UniformWithReplacement struct{}

// SelectParents implements the ParentSelection interface.
func (UniformWithReplacement) SelectParents(rand rand.Rand, numParents, numCandidates int) []int {
	if numCandidates < 1 {
		return nil
	}
	indexes := make([]int, numParents)
	for n := range indexes {
		indexes[n] = int(rand.Int31n(int32(numCandidates)))
	}
	return indexes
}
