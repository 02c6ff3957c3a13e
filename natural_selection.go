package biosim

// Survives reports whether an agent earns reproduction at the generation
// boundary: it must be alive and standing on a safe-zone cell.
func Survives(a *Agent, g *Grid) bool {
	return a.Alive && g.IsSafe(a.X, a.Y)
}

// Survivors collects the surviving agents in their current list order.
func Survivors(agents []*Agent, g *Grid) []*Agent {
	out := make([]*Agent, 0, len(agents))
	for _, a := range agents {
		if Survives(a, g) {
			out = append(out, a)
		}
	}
	return out
}
