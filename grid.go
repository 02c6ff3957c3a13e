package biosim

import (
	"github.com/inlined/rand"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Pheromone field dynamics.
const (
	pheromoneDecay = 0.98
	pheromoneDiff  = 0.1
)

// Empty-cell search budgets. Restricted searches (avoiding the dilated safe
// zone) get a larger budget because far fewer cells qualify.
const (
	spawnAttempts           = 100
	spawnAttemptsRestricted = 1000
)

// Grid is the square world substrate: an occupancy layer (0 empty, -1
// barrier, >0 agent id), a safe-zone mask, and a scalar pheromone field in
// [0, 1]. Occupancy stores agent ids, never references; the agent list is
// the owner and the grid only borrows ids.
//
// A Grid is exclusively owned by one simulation thread. Nothing here locks.
type Grid struct {
	size       int
	cells      []int
	safe       []bool
	pheromones []float64
	scratch    []float64
}

// NewGrid constructs an empty grid of side size.
func NewGrid(size int) (*Grid, error) {
	if size < 1 {
		return nil, errors.Errorf("grid size must be >= 1, got %d", size)
	}
	return &Grid{
		size:       size,
		cells:      make([]int, size*size),
		safe:       make([]bool, size*size),
		pheromones: make([]float64, size*size),
		scratch:    make([]float64, size*size),
	}, nil
}

// Size returns the grid side length.
func (g *Grid) Size() int { return g.size }

// InBounds reports whether (x, y) is on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.size && y >= 0 && y < g.size
}

func (g *Grid) idx(x, y int) int { return x*g.size + y }

// At returns the occupancy value at (x, y), or 0 out of bounds.
func (g *Grid) At(x, y int) int {
	if !g.InBounds(x, y) {
		return 0
	}
	return g.cells[g.idx(x, y)]
}

// IsEmpty reports whether (x, y) is on the grid and unoccupied. Out of
// bounds is not empty, which is what makes the world edge block movement.
func (g *Grid) IsEmpty(x, y int) bool {
	return g.InBounds(x, y) && g.cells[g.idx(x, y)] == 0
}

// IsBarrier reports whether (x, y) holds a barrier.
func (g *Grid) IsBarrier(x, y int) bool {
	return g.InBounds(x, y) && g.cells[g.idx(x, y)] == Barrier
}

// IsAgent reports whether (x, y) holds a live agent id.
func (g *Grid) IsAgent(x, y int) bool {
	return g.InBounds(x, y) && g.cells[g.idx(x, y)] > 0
}

// IsSafe reports whether (x, y) is inside a safe zone.
func (g *Grid) IsSafe(x, y int) bool {
	return g.InBounds(x, y) && g.safe[g.idx(x, y)]
}

// Set writes an occupancy value at (x, y). Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y, val int) {
	if g.InBounds(x, y) {
		g.cells[g.idx(x, y)] = val
	}
}

// Clear empties the occupancy at (x, y).
func (g *Grid) Clear(x, y int) { g.Set(x, y, 0) }

// SetBarrier marks (x, y) impassable. Edit-time only.
func (g *Grid) SetBarrier(x, y int) { g.Set(x, y, Barrier) }

// SetSafe marks or unmarks (x, y) as a safe zone. Edit-time only.
func (g *Grid) SetSafe(x, y int, safe bool) {
	if g.InBounds(x, y) {
		g.safe[g.idx(x, y)] = safe
	}
}

// Erase clears both the occupancy and the safe-zone mark at (x, y).
func (g *Grid) Erase(x, y int) {
	if g.InBounds(x, y) {
		g.cells[g.idx(x, y)] = 0
		g.safe[g.idx(x, y)] = false
	}
}

// ResetOccupancy empties every non-barrier cell. Barriers and safe zones are
// edit-time state and persist across generations.
func (g *Grid) ResetOccupancy() {
	for i, v := range g.cells {
		if v != Barrier {
			g.cells[i] = 0
		}
	}
}

// Pheromone returns the pheromone level at (x, y), or 0 out of bounds.
func (g *Grid) Pheromone(x, y int) float64 {
	if !g.InBounds(x, y) {
		return 0
	}
	return g.pheromones[g.idx(x, y)]
}

// AddPheromone deposits amount at (x, y), saturating at 1.0.
func (g *Grid) AddPheromone(x, y int, amount float64) {
	if !g.InBounds(x, y) {
		return
	}
	i := g.idx(x, y)
	v := g.pheromones[i] + amount
	if v > 1.0 {
		v = 1.0
	}
	g.pheromones[i] = v
}

// ClearPheromones zeroes the whole field.
func (g *Grid) ClearPheromones() {
	for i := range g.pheromones {
		g.pheromones[i] = 0
	}
}

// UpdatePheromones applies one tick of field dynamics: multiplicative decay
// everywhere, then a 3x3 box-kernel diffusion over the interior window.
// Edge cells keep their decayed value. The result is clipped to [0, 1].
func (g *Grid) UpdatePheromones() {
	floats.Scale(pheromoneDecay, g.pheromones)
	copy(g.scratch, g.pheromones)
	s := g.size
	for x := 1; x < s-1; x++ {
		for y := 1; y < s-1; y++ {
			i := x*s + y
			sum := g.pheromones[i-s-1] + g.pheromones[i-s] + g.pheromones[i-s+1] +
				g.pheromones[i-1] + g.pheromones[i+1] +
				g.pheromones[i+s-1] + g.pheromones[i+s] + g.pheromones[i+s+1]
			g.scratch[i] = (1-pheromoneDiff)*g.pheromones[i] + pheromoneDiff*sum/8.0
		}
	}
	for i, v := range g.scratch {
		g.scratch[i] = clamp01(v)
	}
	g.pheromones, g.scratch = g.scratch, g.pheromones
}

// nearSafe reports whether any cell within Chebyshev distance margin of
// (x, y) is a safe zone.
func (g *Grid) nearSafe(x, y, margin int) bool {
	for dx := -margin; dx <= margin; dx++ {
		for dy := -margin; dy <= margin; dy++ {
			if g.IsSafe(x+dx, y+dy) {
				return true
			}
		}
	}
	return false
}

// FindEmptyLocation samples random cells looking for an empty one. With
// avoidSafe set, the cell must additionally clear the safe zone dilated by
// the Chebyshev margin, and the attempt budget grows accordingly. Returns
// ok=false when the budget is exhausted; callers treat that as a soft
// failure and drop the spawn.
func (g *Grid) FindEmptyLocation(r rand.Rand, avoidSafe bool, margin int) (x, y int, ok bool) {
	budget := spawnAttempts
	if avoidSafe {
		budget = spawnAttemptsRestricted
	}
	for i := 0; i < budget; i++ {
		x = int(r.Int31n(int32(g.size)))
		y = int(r.Int31n(int32(g.size)))
		if g.cells[g.idx(x, y)] != 0 {
			continue
		}
		if avoidSafe && g.nearSafe(x, y, margin) {
			continue
		}
		return x, y, true
	}
	return 0, 0, false
}
