package biosim

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	errAlreadySet      = "%sFlag.Set(%s): already set to %s"
	errUnexpectedFn    = "%sFlag.Set(%s): unknown function name %s"
	errUnexpectedParam = "%sFlag.Set(%s): function %s does not accept parameters"
	errInvalidParam    = "%sFlag.Set(%s): param %s should %s"
	errUnknownName     = "%sFlag.Set(%s): unknown %s name %s"

	equalCrossover   = "Equal"
	unequalCrossover = "Unequal"
	mixedCrossover   = "Mixed"
)

var flagFmt = regexp.MustCompile(`^(\w+)(\(([\w.]*)\))?$`)

// RecombinerFlag allows developers to pick a Recombiner strategy using
// flag.Value. Valid values include:
// --flag=Equal
// --flag=Unequal(16)
// --flag=Mixed(0.3)
type RecombinerFlag struct {
	recombiner Recombiner
}

func (f RecombinerFlag) String() string {
	if f.recombiner == nil {
		return fmt.Sprintf("%s(0)", mixedCrossover)
	}
	switch r := f.recombiner.(type) {
	case EqualCrossover:
		return equalCrossover
	case UnequalCrossover:
		return fmt.Sprintf("%s(%d)", unequalCrossover, r.Jitter)
	case MixedCrossover:
		return fmt.Sprintf("%s(%g)", mixedCrossover, r.UnequalRate)
	}
	return fmt.Sprintf("%v", f.recombiner)
}

// Set implements flag.Value
func (f *RecombinerFlag) Set(s string) error {
	if f.recombiner != nil {
		return fmt.Errorf(errAlreadySet, "Recombiner", s, f)
	}

	match := flagFmt.FindStringSubmatch(s)
	if match == nil {
		return fmt.Errorf(errUnexpectedFn, "Recombiner", s, s)
	}
	fn, arg := match[1], match[3]

	switch fn {
	case equalCrossover:
		if arg != "" {
			return fmt.Errorf(errUnexpectedParam, "Recombiner", s, fn)
		}
		f.recombiner = EqualCrossover{}
	case unequalCrossover:
		jitter := DefaultPivotJitter
		if arg != "" {
			n, err := strconv.Atoi(arg)
			if err != nil || n < 1 {
				return fmt.Errorf(errInvalidParam, "Recombiner", s, arg, "be a whole number >= 1")
			}
			jitter = n
		}
		f.recombiner = UnequalCrossover{Jitter: jitter}
	case mixedCrossover:
		rate, err := strconv.ParseFloat(arg, 64)
		if err != nil || rate < 0 || rate > 1 {
			return fmt.Errorf(errInvalidParam, "Recombiner", s, arg, "be a probability in [0,1]")
		}
		f.recombiner = MixedCrossover{UnequalRate: rate, Jitter: DefaultPivotJitter}
	default:
		return fmt.Errorf(errUnexpectedFn, "Recombiner", s, fn)
	}

	return nil
}

// Get returns the parsed Recombiner value
func (f *RecombinerFlag) Get() Recombiner {
	if f.recombiner == nil {
		return MixedCrossover{Jitter: DefaultPivotJitter}
	}
	return f.recombiner
}

func parseNameSet(flagName, kind, s string, names map[int]string) ([]int, error) {
	byName := make(map[string]int, len(names))
	for id, name := range names {
		byName[name] = id
	}
	if s == "all" {
		all := make([]int, 0, len(names))
		for id := range names {
			all = append(all, id)
		}
		sort.Ints(all)
		return all, nil
	}
	var ids []int
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		id, ok := byName[tok]
		if !ok {
			return nil, fmt.Errorf(errUnknownName, flagName, s, kind, tok)
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

func formatNameSet(ids []int, names map[int]string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = names[id]
	}
	return strings.Join(parts, ",")
}

// SensorSetFlag parses a comma-separated list of sensor names (or "all")
// into the enabled-sensor index set. Can only be set once.
type SensorSetFlag struct {
	sensors []int
}

func (f SensorSetFlag) String() string {
	if f.sensors == nil {
		return "all"
	}
	return formatNameSet(f.sensors, SensorNames)
}

// Set implements flag.Value
func (f *SensorSetFlag) Set(s string) error {
	if f.sensors != nil {
		return fmt.Errorf(errAlreadySet, "SensorSet", s, f)
	}
	ids, err := parseNameSet("SensorSet", "sensor", s, SensorNames)
	if err != nil {
		return err
	}
	f.sensors = ids
	return nil
}

// Get returns the parsed sensor index set
func (f *SensorSetFlag) Get() []int {
	if f.sensors == nil {
		all, _ := parseNameSet("SensorSet", "sensor", "all", SensorNames)
		return all
	}
	return f.sensors
}

// ActionSetFlag parses a comma-separated list of action names (or "all")
// into the enabled-action index set. Can only be set once.
type ActionSetFlag struct {
	actions []int
}

func (f ActionSetFlag) String() string {
	if f.actions == nil {
		return "all"
	}
	return formatNameSet(f.actions, ActionNames)
}

// Set implements flag.Value
func (f *ActionSetFlag) Set(s string) error {
	if f.actions != nil {
		return fmt.Errorf(errAlreadySet, "ActionSet", s, f)
	}
	ids, err := parseNameSet("ActionSet", "action", s, ActionNames)
	if err != nil {
		return err
	}
	f.actions = ids
	return nil
}

// Get returns the parsed action index set
func (f *ActionSetFlag) Get() []int {
	if f.actions == nil {
		all, _ := parseNameSet("ActionSet", "action", "all", ActionNames)
		return all
	}
	return f.actions
}
