package biosim_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/inlined/rand"
	"github.com/inlined/xkcd"

	"github.com/inlined/biosim"
)

func TestParentSelection(t *testing.T) {
	for _, test := range []struct {
		tag             string
		strategy        biosim.ParentSelection
		numParents      int
		numCandidates   int
		rand            rand.Rand
		expectedParents []int
	}{
		{
			tag:             "uniform pair",
			strategy:        biosim.UniformWithReplacement{},
			numParents:      2,
			numCandidates:   5,
			rand:            xkcd.Rand(3, 1),
			expectedParents: []int{3, 1},
		}, {
			tag:             "self pairing allowed",
			strategy:        biosim.UniformWithReplacement{},
			numParents:      2,
			numCandidates:   5,
			rand:            xkcd.Rand(4, 4),
			expectedParents: []int{4, 4},
		}, {
			tag:             "sole survivor",
			strategy:        biosim.UniformWithReplacement{},
			numParents:      4,
			numCandidates:   1,
			rand:            xkcd.Rand(0, 0, 0, 0),
			expectedParents: []int{0, 0, 0, 0},
		}, {
			tag:             "no candidates",
			strategy:        biosim.UniformWithReplacement{},
			numParents:      2,
			numCandidates:   0,
			rand:            xkcd.Rand(),
			expectedParents: nil,
		},
	} {
		t.Run(test.tag, func(t *testing.T) {
			got := test.strategy.SelectParents(test.rand, test.numParents, test.numCandidates)
			if diff := cmp.Diff(got, test.expectedParents); diff != "" {
				t.Fatalf("Got wrong indexes; got=%v; want=%v; diff=%v", got, test.expectedParents, diff)
			}
		})
	}
}

func TestUniformSelectionStaysInRange(t *testing.T) {
	rng := rand.New()
	rng.Seed(31)
	got := biosim.UniformWithReplacement{}.SelectParents(rng, 1000, 7)
	for _, idx := range got {
		if idx < 0 || idx >= 7 {
			t.Fatalf("index %d outside candidate pool", idx)
		}
	}
}
