package biosim

// Kind tags the endpoint of a connection gene. Sources are neurons or
// sensors; sinks are neurons or actions. Sensor and Action share the bit
// value 1 because the meaning is positional within a gene.
type Kind uint8

const (
	Neuron Kind = 0
	Sensor Kind = 1
	Action Kind = 1
)

// Sensor indices. Danger is reserved: it is decodable and configurable but
// always reads 0.
const (
	SensorLocX = iota
	SensorLocY
	SensorRnd
	SensorLmvX
	SensorLmvY
	SensorOsc
	SensorDstBarrier
	SensorDstSafe
	SensorDensAgents
	SensorSmell
	SensorSmellFwd
	SensorSmellLR
	SensorDanger

	NumSensors = iota
)

// Action indices. MoveFwd is reserved: its accumulator is decoded but
// drives nothing.
const (
	ActionMoveX = iota
	ActionMoveY
	ActionMoveFwd
	ActionEmit
	ActionKill

	NumActions = iota
)

// SensorNames maps sensor indices to short display labels.
var SensorNames = map[int]string{
	SensorLocX:       "LocX",
	SensorLocY:       "LocY",
	SensorRnd:        "Rnd",
	SensorLmvX:       "LmvX",
	SensorLmvY:       "LmvY",
	SensorOsc:        "Osc",
	SensorDstBarrier: "DstBar",
	SensorDstSafe:    "DstSafe",
	SensorDensAgents: "DensAg",
	SensorSmell:      "Smell",
	SensorSmellFwd:   "SmlFwd",
	SensorSmellLR:    "SmlLR",
	SensorDanger:     "Danger",
}

// ActionNames maps action indices to short display labels.
var ActionNames = map[int]string{
	ActionMoveX:   "MvX",
	ActionMoveY:   "MvY",
	ActionMoveFwd: "MvFwd",
	ActionEmit:    "Emit",
	ActionKill:    "Kill",
}

// Barrier is the occupancy value of an impassable cell.
const Barrier = -1
