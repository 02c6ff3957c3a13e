package biosim_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/inlined/rand"

	"github.com/inlined/biosim"
)

func TestHammingDistance(t *testing.T) {
	base := biosim.GenomeFromHex("830520000580C000")
	oneBit := base.Clone()
	oneBit[1].SinkIndex ^= 1

	for _, test := range []struct {
		tag  string
		a, b biosim.Genome
		want float64
	}{
		{tag: "identical", a: base, b: base, want: 0},
		{tag: "both empty", a: biosim.Genome{}, b: biosim.Genome{}, want: 1.0},
		{tag: "one empty", a: base, b: biosim.Genome{}, want: 1.0},
		{tag: "single bit flip", a: base, b: oneBit, want: 1.0 / 64},
		{
			tag:  "length penalty",
			a:    biosim.GenomeFromHex("83052000"),
			b:    biosim.GenomeFromHex("8305200083052000"),
			want: 32.0 / 64,
		},
		{
			tag:  "symmetric",
			a:    biosim.GenomeFromHex("8305200083052000"),
			b:    biosim.GenomeFromHex("83052000"),
			want: 32.0 / 64,
		},
	} {
		t.Run(test.tag, func(t *testing.T) {
			if got := biosim.HammingDistance(test.a, test.b); got != test.want {
				t.Errorf("HammingDistance: got=%v want=%v", got, test.want)
			}
		})
	}
}

func TestClusterSpecies(t *testing.T) {
	rng := rand.New()
	rng.Seed(107)
	domains := biosim.GeneDomains{Neurons: 10}
	a := biosim.NewRandomGenome(rng, 8, domains)
	b := biosim.NewRandomGenome(rng, 8, domains)

	for _, test := range []struct {
		tag        string
		genomes    []biosim.Genome
		wantLabels []int
		wantCount  int
	}{
		{
			tag:        "clones collapse to one cluster",
			genomes:    []biosim.Genome{a, a.Clone(), a.Clone()},
			wantLabels: []int{0, 0, 0},
			wantCount:  1,
		}, {
			tag:        "random genomes split",
			genomes:    []biosim.Genome{a, b, a.Clone()},
			wantLabels: []int{0, 1, 0},
			wantCount:  2,
		}, {
			tag:        "empty input",
			genomes:    nil,
			wantLabels: []int{},
			wantCount:  0,
		}, {
			tag:        "single genome",
			genomes:    []biosim.Genome{a},
			wantLabels: []int{0},
			wantCount:  1,
		},
	} {
		t.Run(test.tag, func(t *testing.T) {
			labels, count := biosim.ClusterSpecies(test.genomes, biosim.DefaultSpeciesThreshold)
			if d := cmp.Diff(test.wantLabels, labels); d != "" {
				t.Errorf("labels; diff=%s", d)
			}
			if count != test.wantCount {
				t.Errorf("count: got=%d want=%d", count, test.wantCount)
			}
		})
	}
}

// Nearly identical genomes join the seed's cluster; the threshold is
// strict.
func TestClusterThreshold(t *testing.T) {
	base := biosim.GenomeFromHex("830520000580C000")
	near := base.Clone()
	near[0].Weight += 1.0 / biosim.WeightScale // a single weight bit

	_, count := biosim.ClusterSpecies([]biosim.Genome{base, near}, biosim.DefaultSpeciesThreshold)
	if count != 1 {
		t.Errorf("near-identical genomes split into %d clusters", count)
	}
	_, count = biosim.ClusterSpecies([]biosim.Genome{base, near}, 0.0)
	if count != 2 {
		t.Errorf("zero threshold should isolate everything, got %d clusters", count)
	}
}
