package sim

import (
	"encoding/json"
	"fmt"
)

// Stage is a financing stage in the fixed progression
// Pre-Seed < Seed < Series A < Series B < Series C < IPO.
// The ordering is total; investments only ever move forward,
// one stage at a time.
type Stage int

const (
	PreSeed Stage = iota
	Seed
	SeriesA
	SeriesB
	SeriesC
	IPO
)

// stageNames are the canonical display names. They double as the map keys
// used throughout SimulationConfig, so they must match external
// configuration exactly.
var stageNames = [...]string{"Pre-Seed", "Seed", "Series A", "Series B", "Series C", "IPO"}

func (s Stage) String() string {
	if s < PreSeed || s > IPO {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}

// Valid reports whether s is one of the six defined stages.
func (s Stage) Valid() bool {
	return s >= PreSeed && s <= IPO
}

// Next returns the immediately following stage. The second return is false
// when s is IPO (or invalid) — there is nowhere further to advance.
func (s Stage) Next() (Stage, bool) {
	if s < PreSeed || s >= IPO {
		return s, false
	}
	return s + 1, true
}

// ParseStage maps a canonical display name back to its Stage.
func ParseStage(name string) (Stage, error) {
	for i, n := range stageNames {
		if n == name {
			return Stage(i), nil
		}
	}
	return 0, fmt.Errorf("unknown stage %q", name)
}

// TransitionKey builds the "<from> to <to>" key used by
// AdvancementProbabilities and DilutionRanges.
func TransitionKey(from, to Stage) string {
	return from.String() + " to " + to.String()
}

// EntryStages returns the stages an investment can be originated at,
// in order, starting from initial. IPO is excluded: it is an exit
// outcome, never an entry point.
func EntryStages(initial Stage) []Stage {
	var stages []Stage
	for s := initial; s < IPO; s++ {
		stages = append(stages, s)
	}
	return stages
}

// MarshalJSON encodes the stage as its display name so results are
// directly consumable by external reporting layers.
func (s Stage) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid stage %d", int(s))
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a display name into a Stage.
func (s *Stage) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseStage(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
