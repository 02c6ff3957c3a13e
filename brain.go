package biosim

import (
	"math"
	"sort"
)

// Connection is one compiled edge of a brain: gene indices remapped onto
// the real sensor/neuron/action ranges.
type Connection struct {
	SourceKind  Kind
	SourceIndex int
	SinkKind    Kind
	SinkIndex   int
	Weight      float64
}

// Compile translates a genome into a connection list. Each raw 7-bit index
// is remapped by modulo onto the domain of its kind. Duplicate connections,
// including same endpoints with different weights, are all retained; their
// contributions sum during evaluation.
func Compile(g Genome, numNeurons int) []Connection {
	conns := make([]Connection, len(g))
	for i, gene := range g {
		c := Connection{
			SourceKind: gene.SourceKind,
			SinkKind:   gene.SinkKind,
			Weight:     gene.Weight,
		}
		if gene.SourceKind == Sensor {
			c.SourceIndex = int(gene.SourceIndex) % NumSensors
		} else {
			c.SourceIndex = int(gene.SourceIndex) % numNeurons
		}
		if gene.SinkKind == Action {
			c.SinkIndex = int(gene.SinkIndex) % NumActions
		} else {
			c.SinkIndex = int(gene.SinkIndex) % numNeurons
		}
		conns[i] = c
	}
	return conns
}

// Brain is the runtime form of a genome: a compiled connection list plus
// the hidden-neuron state vector. Hidden state starts at zero and carries
// across steps within a generation, which is what makes the net recurrent.
type Brain struct {
	conns  []Connection
	hidden []float64
}

// NewBrain compiles a genome against numNeurons hidden units.
func NewBrain(g Genome, numNeurons int) *Brain {
	return &Brain{
		conns:  Compile(g, numNeurons),
		hidden: make([]float64, numNeurons),
	}
}

// Connections exposes the compiled wiring, e.g. for diagram tooling.
func (b *Brain) Connections() []Connection { return b.conns }

// Hidden exposes the current hidden-state vector.
func (b *Brain) Hidden() []float64 { return b.hidden }

// Step runs one evaluation tick. Sensor values feed forward through the
// connection list into fresh action and next-hidden accumulators; the
// hidden vector is then replaced with tanh of its accumulator. Action
// levels are returned raw; per-action activation happens at decode time.
//
// Given identical (sensors, hidden, genome), Step is deterministic.
func (b *Brain) Step(sensors []float64) []float64 {
	actions := make([]float64, NumActions)
	next := make([]float64, len(b.hidden))
	for _, c := range b.conns {
		var v float64
		if c.SourceKind == Sensor {
			v = sensors[c.SourceIndex]
		} else {
			v = b.hidden[c.SourceIndex]
		}
		if c.SinkKind == Action {
			actions[c.SinkIndex] += c.Weight * v
		} else {
			next[c.SinkIndex] += c.Weight * v
		}
	}
	for i, v := range next {
		b.hidden[i] = math.Tanh(v)
	}
	return actions
}

// PruneWiring strips neurons that cannot influence any action: units whose
// every output is a self-loop (which includes pure dead ends) are removed,
// along with the connections feeding them, repeating until stable. The
// survivors are renumbered densely in ascending order of their old index.
// Returns the pruned wiring and the surviving neuron count.
//
// This is an analysis pass for diagnostics and diagram tooling; the
// evaluator always runs the full wiring.
func PruneWiring(conns []Connection) ([]Connection, int) {
	type node struct {
		outputs    int
		selfInputs int
	}
	nodes := make(map[int]*node)
	ensure := func(i int) *node {
		n, ok := nodes[i]
		if !ok {
			n = &node{}
			nodes[i] = n
		}
		return n
	}

	live := make([]Connection, len(conns))
	copy(live, conns)
	for _, c := range live {
		if c.SinkKind == Neuron {
			n := ensure(c.SinkIndex)
			if c.SourceKind == Neuron && c.SourceIndex == c.SinkIndex {
				n.selfInputs++
			}
		}
		if c.SourceKind == Neuron {
			ensure(c.SourceIndex).outputs++
		}
	}

	for {
		var dead []int
		for id, n := range nodes {
			if n.outputs == n.selfInputs {
				dead = append(dead, id)
			}
		}
		if len(dead) == 0 {
			break
		}
		for _, id := range dead {
			delete(nodes, id)
			kept := live[:0]
			for _, c := range live {
				if c.SinkKind == Neuron && c.SinkIndex == id {
					if c.SourceKind == Neuron && c.SourceIndex != id {
						if n, ok := nodes[c.SourceIndex]; ok {
							n.outputs--
						}
					}
					continue
				}
				kept = append(kept, c)
			}
			live = kept
		}
	}

	ids := make([]int, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	remap := make(map[int]int, len(ids))
	for newID, oldID := range ids {
		remap[oldID] = newID
	}

	out := make([]Connection, 0, len(live))
	for _, c := range live {
		if c.SourceKind == Neuron {
			c.SourceIndex = remap[c.SourceIndex]
		}
		if c.SinkKind == Neuron {
			c.SinkIndex = remap[c.SinkIndex]
		}
		out = append(out, c)
	}
	return out, len(ids)
}
