package biosim_test

import (
	"testing"

	"github.com/inlined/rand"
	"github.com/inlined/xkcd"

	"github.com/inlined/biosim"
)

func TestCrossover(t *testing.T) {
	const d1 = "AAAAAAAA"
	const d2 = "55555555"
	for _, test := range []struct {
		tag      string
		strategy biosim.Recombiner
		d1, d2   string
		rand     rand.Rand
		child    string
	}{
		{
			tag:      "equal midpoint",
			strategy: biosim.EqualCrossover{},
			d1:       d1, d2: d2,
			rand:  xkcd.Rand(3), // pivot = 1 + 3
			child: "AAAA5555",
		}, {
			tag:      "equal leftmost pivot",
			strategy: biosim.EqualCrossover{},
			d1:       d1, d2: d2,
			rand:  xkcd.Rand(0), // pivot = 1
			child: "A5555555",
		}, {
			tag:      "equal rightmost pivot",
			strategy: biosim.EqualCrossover{},
			d1:       d1, d2: d2,
			rand:  xkcd.Rand(6), // pivot = 7
			child: "AAAAAAA5",
		}, {
			tag:      "equal first parent empty",
			strategy: biosim.EqualCrossover{},
			d1:       "", d2: d2,
			rand:  xkcd.Rand(),
			child: d2,
		}, {
			tag:      "equal second parent empty",
			strategy: biosim.EqualCrossover{},
			d1:       d1, d2: "",
			rand:  xkcd.Rand(),
			child: d1,
		}, {
			tag:      "equal both parents empty",
			strategy: biosim.EqualCrossover{},
			d1:       "", d2: "",
			rand:  xkcd.Rand(),
			child: "",
		}, {
			tag:      "unequal aligned pivots",
			strategy: biosim.UnequalCrossover{Jitter: 16},
			d1:       d1, d2: d2,
			rand:  xkcd.Rand(4, 16), // pivot1 = 4, jitter = 0
			child: "AAAA5555",
		}, {
			tag:      "unequal jitter clamps high",
			strategy: biosim.UnequalCrossover{Jitter: 16},
			d1:       d1, d2: d2,
			rand:  xkcd.Rand(8, 32), // pivot1 = 8, pivot2 clamps to 8
			child: d1,
		}, {
			tag:      "unequal jitter clamps low",
			strategy: biosim.UnequalCrossover{Jitter: 16},
			d1:       d1, d2: d2,
			rand:  xkcd.Rand(0, 0), // pivot1 = 0, pivot2 clamps to 0
			child: d2,
		}, {
			tag:      "unequal frame shift grows child",
			strategy: biosim.UnequalCrossover{Jitter: 16},
			d1:       d1, d2: d2,
			rand:  xkcd.Rand(6, 12), // pivot1 = 6, pivot2 = 2
			child: "AAAAAA555555",
		},
	} {
		t.Run(test.tag, func(t *testing.T) {
			got := test.strategy.Recombine(test.rand, test.d1, test.d2)
			if got != test.child {
				t.Errorf("Recombine(%s, %s): got=%s want=%s", test.d1, test.d2, got, test.child)
			}
		})
	}
}

// A child fused at a non-gene boundary still decodes to a well-formed gene.
func TestCrossoverFusedGene(t *testing.T) {
	child := biosim.GenomeFromHex("AAAA5555")
	if len(child) != 1 {
		t.Fatalf("got %d genes, want 1", len(child))
	}
	g := child[0]
	if g.SourceKind != biosim.Sensor {
		t.Errorf("source kind: got=%d want sensor", g.SourceKind)
	}
	if g.SourceIndex != 0x2A {
		t.Errorf("source index: got=%d want=%d", g.SourceIndex, 0x2A)
	}
	if g.SinkKind != biosim.Action {
		t.Errorf("sink kind: got=%d want action", g.SinkKind)
	}
	if g.SinkIndex != 0x2A {
		t.Errorf("sink index: got=%d want=%d", g.SinkIndex, 0x2A)
	}
	if want := float64(0x5555) / biosim.WeightScale; g.Weight != want {
		t.Errorf("weight: got=%v want=%v", g.Weight, want)
	}
}

func TestMixedCrossoverModes(t *testing.T) {
	rng := rand.New()
	rng.Seed(5)
	domains := biosim.GeneDomains{Neurons: 10}
	d1 := biosim.NewRandomGenome(rng, 6, domains).ToHex()
	d2 := biosim.NewRandomGenome(rng, 6, domains).ToHex()

	// Rate 0 always picks the equal mode, which preserves length for
	// equal-length parents.
	equalOnly := biosim.MixedCrossover{UnequalRate: 0}
	for i := 0; i < 100; i++ {
		if child := equalOnly.Recombine(rng, d1, d2); len(child) != len(d1) {
			t.Fatalf("equal-only crossover changed length: %d -> %d", len(d1), len(child))
		}
	}

	// Rate 1 always picks the unequal mode; with a wide jitter, length
	// changes show up quickly.
	unequalOnly := biosim.MixedCrossover{UnequalRate: 1, Jitter: 16}
	changed := false
	for i := 0; i < 100; i++ {
		if child := unequalOnly.Recombine(rng, d1, d2); len(child) != len(d1) {
			changed = true
			break
		}
	}
	if !changed {
		t.Error("unequal-only crossover never shifted the reading frame in 100 tries")
	}
}
