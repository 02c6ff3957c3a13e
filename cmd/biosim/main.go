// Command biosim runs the evolution sandbox headless: it builds a world
// from a parameter file or from a snapshot (a snapshot takes precedence and
// the parameter file is then not read), drives it for a number of
// generations with a seeded random stream, and writes the analytics history
// and a final snapshot.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/inlined/rand"

	"github.com/inlined/biosim"
)

var (
	configPath  = flag.String("config", "", "YAML parameter file (defaults apply when empty)")
	loadPath    = flag.String("load", "", "snapshot to restore instead of a fresh population")
	savePath    = flag.String("save", "", "write the final snapshot here")
	csvPath     = flag.String("csv", "", "write the per-generation analytics CSV here")
	generations = flag.Int("generations", 10, "number of generations to run")
	seed        = flag.Int64("seed", 1, "random seed; a fixed seed reproduces a run exactly")
	safeRight   = flag.Bool("safe-right-half", false, "mark the right half of the grid as a safe zone")

	recombiner biosim.RecombinerFlag
	sensors    biosim.SensorSetFlag
	actions    biosim.ActionSetFlag
)

func init() {
	flag.Var(&recombiner, "crossover", "crossover strategy: Equal, Unequal(jitter), or Mixed(rate)")
	flag.Var(&sensors, "sensors", `enabled sensors, comma-separated names or "all"`)
	flag.Var(&actions, "actions", `enabled actions, comma-separated names or "all"`)
}

// provided reports whether a flag was set on the command line, so defaults
// never clobber values that came from a config file or snapshot.
func provided(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func run() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	rng := rand.New()
	rng.Seed(*seed)

	var sim *biosim.Simulation
	switch {
	case *loadPath != "":
		var err error
		if sim, err = biosim.LoadFile(*loadPath); err != nil {
			return err
		}
		logger.Info("snapshot restored", "path", *loadPath, "agents", len(sim.Agents))
	default:
		params := biosim.DefaultParams()
		if *configPath != "" {
			var err error
			if params, err = biosim.LoadParams(*configPath); err != nil {
				return err
			}
		}
		if provided("sensors") {
			params.EnabledSensors = sensors.Get()
		}
		if provided("actions") {
			params.EnabledActions = actions.Get()
		}
		var err error
		if sim, err = biosim.NewSimulation(params); err != nil {
			return err
		}
		if *safeRight {
			for x := sim.Grid.Size() / 2; x < sim.Grid.Size(); x++ {
				for y := 0; y < sim.Grid.Size(); y++ {
					sim.Grid.SetSafe(x, y, true)
				}
			}
		}
		sim.Populate(rng)
	}

	if provided("crossover") {
		sim.Recombine = recombiner.Get()
	}
	sim.Logger = logger

	sim.RunGenerations(rng, *generations)

	if last := sim.History.Last(); last != nil {
		logger.Info("run finished",
			"generations", *generations,
			"survivors", last.Survivors,
			"species", last.Species)
	}

	if *csvPath != "" {
		f, err := os.Create(*csvPath)
		if err != nil {
			return err
		}
		if err := sim.History.WriteCSV(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		logger.Info("analytics written", "path", *csvPath)
	}
	if *savePath != "" {
		if err := biosim.SaveFile(*savePath, sim); err != nil {
			return err
		}
		logger.Info("snapshot written", "path", *savePath)
	}
	return nil
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "biosim:", err)
		os.Exit(1)
	}
}
