// Package biosim implements a generational agent-based evolution sandbox:
// small recurrent neural networks, encoded as bit-packed genomes, are
// selected by survival on a 2D grid and reproduced with crossover and
// mutation. The swappable pieces (Recombiner, Mutator, ParentSelection)
// follow the strategy style of classic genetic-algorithm toolkits so that
// experiments can swap operators without touching the scheduler.
//
// All randomized operations take a rand.Rand explicitly. Seeding that one
// stream is the single point of control for reproducible runs.
package biosim
