package biosim_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inlined/biosim"
)

func TestNormalizeClamps(t *testing.T) {
	p := biosim.DefaultParams()
	p.MutationRate = 1.5
	p.InsertionRate = -0.2
	p.DeletionRate = 2
	p.UnequalRate = -1
	p.PopSize = -5
	p.GenomeLen = 0
	p.StepsPerGen = -1
	p.SpawnMargin = -3
	p.MaxNeurons = 0

	require.NoError(t, p.Normalize())
	assert.Equal(t, 1.0, p.MutationRate)
	assert.Equal(t, 0.0, p.InsertionRate)
	assert.Equal(t, 1.0, p.DeletionRate)
	assert.Equal(t, 0.0, p.UnequalRate)
	assert.Equal(t, 0, p.PopSize)
	assert.Equal(t, 1, p.GenomeLen)
	assert.Equal(t, 1, p.StepsPerGen)
	assert.Equal(t, 0, p.SpawnMargin)
	assert.Equal(t, 1, p.MaxNeurons)
}

func TestNormalizeRejectsBadGrid(t *testing.T) {
	p := biosim.DefaultParams()
	p.GridSize = 0
	assert.Error(t, p.Normalize())
}

func TestParamsFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	want := biosim.DefaultParams()
	want.GridSize = 64
	want.PopSize = 500
	want.UnequalRate = 0.3
	want.EnabledSensors = []int{biosim.SensorLocX, biosim.SensorSmell}
	want.EnabledActions = []int{biosim.ActionMoveX, biosim.ActionEmit}
	want.SpawnAway = true

	require.NoError(t, want.WriteFile(path))
	got, err := biosim.LoadParams(path)
	require.NoError(t, err)
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("params round trip; diff=%s", d)
	}
}

func TestLoadParamsDefaultsAndClamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mutation_rate: 3.0\npop_size: 250\n"), 0o644))

	got, err := biosim.LoadParams(path)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.MutationRate, "out-of-range probabilities clamp")
	assert.Equal(t, 250, got.PopSize)
	assert.Equal(t, 128, got.GridSize, "unspecified fields keep defaults")
}

func TestLoadParamsFailures(t *testing.T) {
	if _, err := biosim.LoadParams(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing file should fail")
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t- not yaml"), 0o644))
	if _, err := biosim.LoadParams(path); err == nil {
		t.Error("malformed yaml should fail")
	}
}

func TestDomains(t *testing.T) {
	p := biosim.DefaultParams()
	p.MaxNeurons = 6
	p.EnabledSensors = []int{biosim.SensorOsc}
	p.EnabledActions = []int{biosim.ActionKill}
	d := p.Domains()
	assert.Equal(t, 6, d.Neurons)
	assert.Equal(t, []int{biosim.SensorOsc}, d.Sensors)
	assert.Equal(t, []int{biosim.ActionKill}, d.Actions)
}
