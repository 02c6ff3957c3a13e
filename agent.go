package biosim

import (
	"hash/fnv"
	"math"

	"github.com/inlined/rand"
)

// visionProbe is how many cells forward the distance/density sensors look.
const visionProbe = 10

// Agent is one individual: a grid position, its genome, and the compiled
// brain. Agents are created at generation start and discarded at the
// boundary; ids start at 1 and are unique within a generation (a dropped
// spawn leaves a gap) and the grid's occupancy layer stores the id, never
// the agent itself.
type Agent struct {
	ID     int
	X, Y   int
	Genome Genome
	Brain  *Brain
	Alive  bool

	// LastMoveX/Y remember the last successful move; the pair doubles as
	// the agent's heading for the forward-looking sensors.
	LastMoveX int
	LastMoveY int

	// KillIntent is the activated kill drive from the most recent think
	// step, kept for inspection tooling.
	KillIntent float64

	// Color is a stable RGB derived from genome structure: equal genomes
	// always render the same color.
	Color [3]uint8
}

// Intent is the externally visible outcome of one think step. Movement and
// kills are requests; the scheduler resolves them against the grid.
type Intent struct {
	DX, DY int
	Kill   bool
}

// NewAgent builds an agent at (x, y) from an inherited genome.
func NewAgent(id, x, y int, genome Genome, numNeurons int) *Agent {
	return &Agent{
		ID:     id,
		X:      x,
		Y:      y,
		Genome: genome,
		Brain:  NewBrain(genome, numNeurons),
		Alive:  true,
		Color:  genomeColor(genome),
	}
}

// genomeColor hashes the (source index, sink index) pairs of the genome and
// splits the result mod 256^3 into RGB.
func genomeColor(g Genome) [3]uint8 {
	h := fnv.New32a()
	for _, gene := range g {
		h.Write([]byte{gene.SourceIndex, gene.SinkIndex})
	}
	v := h.Sum32() % (256 * 256 * 256)
	return [3]uint8{uint8(v % 256), uint8(v / 256 % 256), uint8(v / 65536 % 256)}
}

// Heading returns the forward direction: the last move, or (1, 0) if the
// agent has not moved yet.
func (a *Agent) Heading() (dx, dy int) {
	if a.LastMoveX == 0 && a.LastMoveY == 0 {
		return 1, 0
	}
	return a.LastMoveX, a.LastMoveY
}

// ReadSensors samples the full sensor vector against the current grid.
// Values are in [0, 1] except SmellLR, which is centered on 0.5 and may
// exceed the unit range when the side scents differ strongly.
func (a *Agent) ReadSensors(r rand.Rand, g *Grid, step int) []float64 {
	s := make([]float64, NumSensors)
	size := float64(g.Size())
	dx, dy := a.Heading()

	s[SensorLocX] = float64(a.X) / size
	s[SensorLocY] = float64(a.Y) / size
	s[SensorRnd] = r.Float64()
	s[SensorLmvX] = float64(a.LastMoveX+1) / 2
	s[SensorLmvY] = float64(a.LastMoveY+1) / 2
	s[SensorOsc] = (math.Sin(float64(step)*0.1) + 1) / 2

	// Forward probes.
	for d := 1; d <= visionProbe; d++ {
		nx, ny := a.X+dx*d, a.Y+dy*d
		if !g.InBounds(nx, ny) || g.IsBarrier(nx, ny) {
			s[SensorDstBarrier] = float64(visionProbe-d) / visionProbe
			break
		}
	}
	for d := 1; d <= visionProbe; d++ {
		if g.IsSafe(a.X+dx*d, a.Y+dy*d) {
			s[SensorDstSafe] = float64(visionProbe-d) / visionProbe
			break
		}
	}
	count := 0
	for d := 1; d <= visionProbe; d++ {
		if g.IsAgent(a.X+dx*d, a.Y+dy*d) {
			count++
		}
	}
	s[SensorDensAgents] = float64(count) / visionProbe

	// Scent. The left/right samples sit beside the forward cell, rotated
	// 90 degrees off the heading.
	s[SensorSmell] = g.Pheromone(a.X, a.Y)
	s[SensorSmellFwd] = g.Pheromone(a.X+dx, a.Y+dy)
	left := g.Pheromone(a.X+dx-dy, a.Y+dy+dx)
	right := g.Pheromone(a.X+dx+dy, a.Y+dy-dx)
	s[SensorSmellLR] = 0.5 + (left - right)

	// SensorDanger stays 0: reserved.
	return s
}

// Think runs one full agent tick: sense, evaluate the brain, decode
// actions. Pheromone emission applies immediately; movement and kill come
// back as an Intent for the scheduler to resolve.
func (a *Agent) Think(r rand.Rand, g *Grid, step int) Intent {
	levels := a.Brain.Step(a.ReadSensors(r, g, step))

	moveX := math.Tanh(levels[ActionMoveX])
	moveY := math.Tanh(levels[ActionMoveY])

	if emit := math.Tanh(levels[ActionEmit]); emit > 0 {
		g.AddPheromone(a.X, a.Y, emit*0.5)
	}
	a.KillIntent = math.Tanh(levels[ActionKill])

	var intent Intent
	if r.Float64() < math.Abs(moveX) {
		if moveX > 0 {
			intent.DX = 1
		} else {
			intent.DX = -1
		}
	}
	if r.Float64() < math.Abs(moveY) {
		if moveY > 0 {
			intent.DY = 1
		} else {
			intent.DY = -1
		}
	}
	intent.Kill = a.KillIntent > 0.5
	return intent
}
