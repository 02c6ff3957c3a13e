package biosim

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Params is the parameter block consumed by the core each generation. The
// enabled sensor/action sets are explicit state here, never hidden module
// globals, so two simulations can run different configurations side by
// side.
type Params struct {
	GridSize    int `yaml:"grid_size" json:"grid_size"`
	PopSize     int `yaml:"pop_size" json:"pop_size"`
	GenomeLen   int `yaml:"genome_len" json:"genome_len"`
	StepsPerGen int `yaml:"steps_per_gen" json:"steps_per_gen"`

	MutationRate  float64 `yaml:"mutation_rate" json:"mutation_rate"`
	InsertionRate float64 `yaml:"insertion_rate" json:"insertion_rate"`
	DeletionRate  float64 `yaml:"deletion_rate" json:"deletion_rate"`
	UnequalRate   float64 `yaml:"unequal_rate" json:"unequal_rate"`

	EnabledSensors []int `yaml:"enabled_sensors" json:"enabled_sensors"`
	EnabledActions []int `yaml:"enabled_actions" json:"enabled_actions"`

	SpawnAway   bool `yaml:"spawn_away" json:"spawn_away"`
	SpawnMargin int  `yaml:"spawn_margin" json:"spawn_margin"`

	MaxNeurons int `yaml:"max_neurons" json:"max_neurons"`
}

// DefaultParams mirrors the sandbox defaults: a 128-cell world, a thousand
// agents with 12-gene genomes, and every sensor and action enabled.
func DefaultParams() Params {
	sensors := make([]int, NumSensors)
	for i := range sensors {
		sensors[i] = i
	}
	actions := make([]int, NumActions)
	for i := range actions {
		actions[i] = i
	}
	return Params{
		GridSize:       128,
		PopSize:        1000,
		GenomeLen:      12,
		StepsPerGen:    300,
		MutationRate:   0.01,
		InsertionRate:  0.01,
		DeletionRate:   0.01,
		UnequalRate:    0.0,
		EnabledSensors: sensors,
		EnabledActions: actions,
		SpawnAway:      false,
		SpawnMargin:    5,
		MaxNeurons:     10,
	}
}

// Normalize clamps out-of-range fields in place: probabilities to [0, 1],
// pop_size below 1 to 0, spawn margin below 0 to 0, max_neurons below 1 to
// 1. A grid_size below 1 cannot be repaired and is rejected.
func (p *Params) Normalize() error {
	if p.GridSize < 1 {
		return errors.Errorf("grid_size must be >= 1, got %d", p.GridSize)
	}
	for _, f := range []*float64{&p.MutationRate, &p.InsertionRate, &p.DeletionRate, &p.UnequalRate} {
		*f = clamp01(*f)
	}
	if p.PopSize < 1 {
		p.PopSize = 0
	}
	if p.GenomeLen < 1 {
		p.GenomeLen = 1
	}
	if p.StepsPerGen < 1 {
		p.StepsPerGen = 1
	}
	if p.SpawnMargin < 0 {
		p.SpawnMargin = 0
	}
	if p.MaxNeurons < 1 {
		p.MaxNeurons = 1
	}
	return nil
}

// Domains derives the random-gene index domains from the enabled sets.
func (p Params) Domains() GeneDomains {
	return GeneDomains{
		Neurons: p.MaxNeurons,
		Sensors: p.EnabledSensors,
		Actions: p.EnabledActions,
	}
}

// LoadParams reads a YAML parameter file and normalizes it.
func LoadParams(path string) (Params, error) {
	p := DefaultParams()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, errors.Wrapf(err, "reading params %s", path)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, errors.Wrapf(err, "parsing params %s", path)
	}
	if err := p.Normalize(); err != nil {
		return p, errors.Wrapf(err, "invalid params %s", path)
	}
	return p, nil
}

// WriteFile saves the parameter block as YAML.
func (p Params) WriteFile(path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "encoding params")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "writing params %s", path)
}
