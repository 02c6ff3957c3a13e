package biosim

import (
	"log/slog"

	"github.com/inlined/rand"
)

// Simulation composes the world, the population, and the evolutionary
// strategies into one generational run. The strategy fields default to the
// standard sandbox behavior but can be swapped before the run starts.
//
// Scheduling is single-threaded and cooperative: Step mutates the grid and
// agents in place, and external observers may only look between complete
// steps. A caller stops the run by not invoking the next Step.
type Simulation struct {
	Grid   *Grid
	Agents []*Agent
	Params Params

	Generation int
	StepCount  int
	Kills      int

	Recombine Recombiner
	Mutate    Mutator
	Select    ParentSelection

	History      History
	SpeciesCount int

	// Logger, when non-nil, receives one summary record per generation
	// boundary.
	Logger *slog.Logger

	byID map[int]*Agent
}

// NewSimulation normalizes the parameter block, builds the grid, and wires
// the default strategies.
func NewSimulation(p Params) (*Simulation, error) {
	if err := p.Normalize(); err != nil {
		return nil, err
	}
	grid, err := NewGrid(p.GridSize)
	if err != nil {
		return nil, err
	}
	return &Simulation{
		Grid:       grid,
		Params:     p,
		Generation: 1,
		Recombine:  MixedCrossover{UnequalRate: p.UnequalRate, Jitter: DefaultPivotJitter},
		Mutate: PointMutation{
			Rate:          p.MutationRate,
			InsertionRate: p.InsertionRate,
			DeletionRate:  p.DeletionRate,
		},
		Select: UniformWithReplacement{},
		byID:   map[int]*Agent{},
	}, nil
}

// AliveCount returns the number of currently live agents.
func (s *Simulation) AliveCount() int {
	n := 0
	for _, a := range s.Agents {
		if a.Alive {
			n++
		}
	}
	return n
}

// AgentByID resolves a live-or-dead agent from its grid id.
func (s *Simulation) AgentByID(id int) *Agent { return s.byID[id] }

// SetAgents replaces the population wholesale, reindexing ids and writing
// each live agent into the occupancy layer. External editors use this to
// construct exact scenarios.
func (s *Simulation) SetAgents(agents []*Agent) {
	s.Agents = agents
	s.byID = make(map[int]*Agent, len(agents))
	for _, a := range agents {
		s.byID[a.ID] = a
		if a.Alive {
			s.Grid.Set(a.X, a.Y, a.ID)
		}
	}
}

// Populate starts a run: the occupancy layer and pheromone field reset and
// pop_size fresh random-genome agents spawn.
func (s *Simulation) Populate(r rand.Rand) {
	s.Grid.ResetOccupancy()
	s.Grid.ClearPheromones()
	s.Kills = 0
	s.StepCount = 0
	domains := s.Params.Domains()
	genomes := make([]Genome, s.Params.PopSize)
	for i := range genomes {
		genomes[i] = NewRandomGenome(r, s.Params.GenomeLen, domains)
	}
	s.placeAgents(r, genomes)
}

// Step advances the world one tick:
//
//  1. The pheromone field decays and diffuses, before any agent senses.
//  2. The agent list is shuffled so no direction of iteration is favored.
//  3. Each live agent senses, thinks, and acts. Effects apply immediately:
//     an agent killed earlier in the step does not act, and a vacated cell
//     is open to later movers in the same step.
//
// When the step counter reaches steps_per_gen the generation boundary runs
// atomically before Step returns.
func (s *Simulation) Step(r rand.Rand) {
	s.Grid.UpdatePheromones()
	r.Shuffle(len(s.Agents), func(i, j int) {
		s.Agents[i], s.Agents[j] = s.Agents[j], s.Agents[i]
	})
	for _, a := range s.Agents {
		if !a.Alive {
			continue
		}
		intent := a.Think(r, s.Grid, s.StepCount)

		if intent.Kill {
			dx, dy := a.Heading()
			tx, ty := a.X+dx, a.Y+dy
			if id := s.Grid.At(tx, ty); id > 0 {
				if victim := s.byID[id]; victim != nil && victim.Alive {
					victim.Alive = false
					s.Grid.Clear(tx, ty)
					s.Kills++
				}
			}
		}

		if intent.DX != 0 || intent.DY != 0 {
			nx, ny := a.X+intent.DX, a.Y+intent.DY
			if s.Grid.IsEmpty(nx, ny) {
				s.Grid.Clear(a.X, a.Y)
				s.Grid.Set(nx, ny, a.ID)
				a.X, a.Y = nx, ny
				a.LastMoveX, a.LastMoveY = intent.DX, intent.DY
			}
		}
	}
	s.StepCount++
	if s.StepCount >= s.Params.StepsPerGen {
		s.advanceGeneration(r)
	}
}

// RunGenerations drives the simulation through n full generations.
func (s *Simulation) RunGenerations(r rand.Rand, n int) {
	target := s.Generation + n
	for s.Generation < target {
		s.Step(r)
	}
}

// advanceGeneration is the boundary procedure: cluster the survivors,
// record analytics, reset the world, and respawn from the survivor pool (or
// from scratch after an extinction).
func (s *Simulation) advanceGeneration(r rand.Rand) {
	survivors := Survivors(s.Agents, s.Grid)

	if len(survivors) > 1 {
		genomes := make([]Genome, len(survivors))
		for i, a := range survivors {
			genomes[i] = a.Genome
		}
		_, s.SpeciesCount = ClusterSpecies(genomes, DefaultSpeciesThreshold)
	} else {
		s.SpeciesCount = len(survivors)
	}

	stats := GenerationStats{
		Generation:       s.Generation,
		Survivors:        len(survivors),
		Kills:            s.Kills,
		MeanGenomeLength: MeanGenomeLength(s.Agents),
		Species:          s.SpeciesCount,
	}
	s.History.Record(stats)
	if s.Logger != nil {
		s.Logger.Info("generation complete",
			"generation", s.Generation,
			"survivors", stats.Survivors,
			"kills", stats.Kills,
			"mean_genome_length", stats.MeanGenomeLength,
			"species", stats.Species)
	}

	s.Grid.ResetOccupancy()
	s.Grid.ClearPheromones()

	domains := s.Params.Domains()
	children := make([]Genome, 0, s.Params.PopSize)
	if len(survivors) == 0 {
		for i := 0; i < s.Params.PopSize; i++ {
			children = append(children, NewRandomGenome(r, s.Params.GenomeLen, domains))
		}
	} else {
		parents := s.Select.SelectParents(r, 2*s.Params.PopSize, len(survivors))
		for i := 0; i < s.Params.PopSize; i++ {
			p1 := survivors[parents[2*i]]
			p2 := survivors[parents[2*i+1]]
			child := GenomeFromHex(s.Recombine.Recombine(r, p1.Genome.ToHex(), p2.Genome.ToHex()))
			children = append(children, s.Mutate.Mutate(r, child, domains))
		}
	}
	s.placeAgents(r, children)

	s.Kills = 0
	s.StepCount = 0
	s.Generation++
}

// placeAgents replaces the population, spawning one agent per genome at a
// random empty location. A genome with no placeable cell inside the search
// budget is silently dropped.
func (s *Simulation) placeAgents(r rand.Rand, genomes []Genome) {
	s.Agents = make([]*Agent, 0, len(genomes))
	s.byID = make(map[int]*Agent, len(genomes))
	for i, g := range genomes {
		x, y, ok := s.Grid.FindEmptyLocation(r, s.Params.SpawnAway, s.Params.SpawnMargin)
		if !ok {
			continue
		}
		a := NewAgent(i+1, x, y, g, s.Params.MaxNeurons)
		s.Grid.Set(x, y, a.ID)
		s.Agents = append(s.Agents, a)
		s.byID[a.ID] = a
	}
}
