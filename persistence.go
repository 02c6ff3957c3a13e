package biosim

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Snapshot is the on-disk form of a paused world: the parameter block, the
// edit-time grid state, and the agents with their genomes in DNA hex form.
// The pheromone field and hidden neuron state are transient and are not
// persisted; they restore to zero.
type Snapshot struct {
	Params Params          `json:"params"`
	Grid   GridSnapshot    `json:"grid"`
	Agents []AgentSnapshot `json:"agents"`
}

// GridSnapshot lists the non-default cells of the grid.
type GridSnapshot struct {
	Size      int      `json:"size"`
	Barriers  [][2]int `json:"barriers"`
	SafeZones [][2]int `json:"safe_zones"`
}

// AgentSnapshot is one persisted agent.
type AgentSnapshot struct {
	ID     int    `json:"id"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Genome string `json:"genome"`
}

// TakeSnapshot captures the simulation's persistent state.
func TakeSnapshot(s *Simulation) Snapshot {
	snap := Snapshot{
		Params: s.Params,
		Grid:   GridSnapshot{Size: s.Grid.Size(), Barriers: [][2]int{}, SafeZones: [][2]int{}},
		Agents: []AgentSnapshot{},
	}
	for x := 0; x < s.Grid.Size(); x++ {
		for y := 0; y < s.Grid.Size(); y++ {
			if s.Grid.IsBarrier(x, y) {
				snap.Grid.Barriers = append(snap.Grid.Barriers, [2]int{x, y})
			}
			if s.Grid.IsSafe(x, y) {
				snap.Grid.SafeZones = append(snap.Grid.SafeZones, [2]int{x, y})
			}
		}
	}
	for _, a := range s.Agents {
		if !a.Alive {
			continue
		}
		snap.Agents = append(snap.Agents, AgentSnapshot{
			ID: a.ID, X: a.X, Y: a.Y, Genome: a.Genome.ToHex(),
		})
	}
	return snap
}

// Save writes the simulation snapshot as JSON.
func Save(w io.Writer, s *Simulation) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(TakeSnapshot(s)), "encoding snapshot")
}

// SaveFile writes the snapshot to path.
func SaveFile(path string, s *Simulation) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating snapshot %s", path)
	}
	defer f.Close()
	if err := Save(f, s); err != nil {
		return errors.Wrapf(err, "saving snapshot %s", path)
	}
	return errors.Wrapf(f.Close(), "saving snapshot %s", path)
}

// Load restores a simulation from a JSON snapshot. Nothing is mutated on
// failure: the simulation is built fresh and only returned on success.
// Agents whose recorded position is a barrier cell keep their place in the
// agent list but are not written into the occupancy layer.
func Load(rd io.Reader) (*Simulation, error) {
	var snap Snapshot
	if err := json.NewDecoder(rd).Decode(&snap); err != nil {
		return nil, errors.Wrap(err, "decoding snapshot")
	}
	snap.Params.GridSize = snap.Grid.Size
	s, err := NewSimulation(snap.Params)
	if err != nil {
		return nil, errors.Wrap(err, "restoring snapshot")
	}
	for _, b := range snap.Grid.Barriers {
		s.Grid.SetBarrier(b[0], b[1])
	}
	for _, z := range snap.Grid.SafeZones {
		s.Grid.SetSafe(z[0], z[1], true)
	}
	s.Agents = make([]*Agent, 0, len(snap.Agents))
	s.byID = make(map[int]*Agent, len(snap.Agents))
	for _, rec := range snap.Agents {
		a := NewAgent(rec.ID, rec.X, rec.Y, GenomeFromHex(rec.Genome), s.Params.MaxNeurons)
		s.Agents = append(s.Agents, a)
		s.byID[a.ID] = a
		if !s.Grid.IsBarrier(a.X, a.Y) {
			s.Grid.Set(a.X, a.Y, a.ID)
		}
	}
	return s, nil
}

// LoadFile restores a simulation from the snapshot at path.
func LoadFile(path string) (*Simulation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening snapshot %s", path)
	}
	defer f.Close()
	s, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading snapshot %s", path)
	}
	return s, nil
}
