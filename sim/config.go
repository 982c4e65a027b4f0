package sim

// Mode selects how the simulator sources its investments.
type Mode int

const (
	// ModeFund synthesizes investments per run from stage allocation budgets.
	ModeFund Mode = iota
	// ModePortfolio advances a fixed, externally supplied company list.
	ModePortfolio
)

func (m Mode) String() string {
	if m == ModePortfolio {
		return "portfolio"
	}
	return "fund"
}

// Range is a closed [Min, Max] interval sampled uniformly. All monetary
// ranges are in $MM, all percentage ranges in points (0–100).
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Default ranges and probabilities applied when a configuration map has no
// entry for a stage or transition. Partially specified configurations are
// expected (imports, share links) and are never an error.
var (
	defaultValuationRange     = Range{Min: 1, Max: 10}
	defaultCheckSizeRange     = Range{Min: 0.5, Max: 2}
	defaultDilutionFund       = Range{Min: 10, Max: 20}
	defaultDilutionPortfolio  = Range{Min: 10, Max: 25}
	defaultExitValuationRange = Range{Min: 4, Max: 10}
)

const (
	defaultAdvancementProbability = 0.0
	defaultLossProbability        = 30.0

	// dustThreshold is the minimum check size ($MM) worth recording.
	// Generation for a stage stops once the remaining budget clips a
	// check below this.
	dustThreshold = 0.1
)

// SimulationConfig describes one fund scenario. It is a plain value: the
// engine only ever reads it, so the same config can drive any number of
// simulations concurrently. Map keys are canonical stage display names
// ("Seed", "Series A", ...) or transition keys ("Seed to Series A").
type SimulationConfig struct {
	FundSize           float64 `yaml:"fund_size" json:"fundSize"`
	InitialStage       string  `yaml:"initial_stage" json:"initialStage"`
	ManagementFeePct   float64 `yaml:"management_fee_pct" json:"managementFeePct"`
	ManagementFeeYears float64 `yaml:"management_fee_years" json:"managementFeeYears"`
	DeploymentYears    float64 `yaml:"deployment_years" json:"deploymentYears"`
	NumSimulations     int     `yaml:"num_simulations" json:"numSimulations"`

	StageAllocations         map[string]float64 `yaml:"stage_allocations" json:"stageAllocations"`
	ValuationRanges          map[string]Range   `yaml:"valuation_ranges" json:"valuationRanges"`
	CheckSizeRanges          map[string]Range   `yaml:"check_size_ranges" json:"checkSizeRanges"`
	AdvancementProbabilities map[string]float64 `yaml:"advancement_probabilities" json:"advancementProbabilities"`
	DilutionRanges           map[string]Range   `yaml:"dilution_ranges" json:"dilutionRanges"`
	ExitValuationRanges      map[string]Range   `yaml:"exit_valuation_ranges" json:"exitValuationRanges"`
	LossProbabilities        map[string]float64 `yaml:"loss_probabilities" json:"lossProbabilities"`
}

// EntryStage resolves InitialStage, defaulting to Pre-Seed when unset.
func (c *SimulationConfig) EntryStage() (Stage, error) {
	if c.InitialStage == "" {
		return PreSeed, nil
	}
	return ParseStage(c.InitialStage)
}

// ManagementFees returns total management fees over the fee-charging years.
func (c *SimulationConfig) ManagementFees() float64 {
	return c.FundSize * c.ManagementFeePct / 100 * c.ManagementFeeYears
}

// DeployableCapital is the fund size net of management fees.
func (c *SimulationConfig) DeployableCapital() float64 {
	return c.FundSize - c.ManagementFees()
}

// StageAllocation returns the percentage of deployable capital earmarked
// for a stage. Absent entries mean no allocation.
func (c *SimulationConfig) StageAllocation(s Stage) float64 {
	return c.StageAllocations[s.String()]
}

// ValuationRange returns the entry valuation range for a stage,
// defaulting to [1, 10].
func (c *SimulationConfig) ValuationRange(s Stage) Range {
	if r, ok := c.ValuationRanges[s.String()]; ok {
		return r
	}
	return defaultValuationRange
}

// CheckSizeRange returns the check size range for a stage,
// defaulting to [0.5, 2].
func (c *SimulationConfig) CheckSizeRange(s Stage) Range {
	if r, ok := c.CheckSizeRanges[s.String()]; ok {
		return r
	}
	return defaultCheckSizeRange
}

// AdvancementProbability returns the percent chance of advancing across a
// stage boundary. Absent entries default to 0: a transition that was never
// configured never succeeds on its own (forced follow-ons excepted).
func (c *SimulationConfig) AdvancementProbability(from, to Stage) float64 {
	if p, ok := c.AdvancementProbabilities[TransitionKey(from, to)]; ok {
		return p
	}
	return defaultAdvancementProbability
}

// DilutionRange returns the dilution percentage range for a transition.
// The default differs by mode: [10, 20] in fund mode, [10, 25] in
// portfolio mode.
func (c *SimulationConfig) DilutionRange(from, to Stage, mode Mode) Range {
	if r, ok := c.DilutionRanges[TransitionKey(from, to)]; ok {
		return r
	}
	if mode == ModePortfolio {
		return defaultDilutionPortfolio
	}
	return defaultDilutionFund
}

// ExitValuationRange returns the exit valuation multiple range for a
// terminal stage, defaulting to [4, 10].
func (c *SimulationConfig) ExitValuationRange(s Stage) Range {
	if r, ok := c.ExitValuationRanges[s.String()]; ok {
		return r
	}
	return defaultExitValuationRange
}

// LossProbability returns the percent chance of a total loss at a terminal
// stage, defaulting to 30. An explicit 0 is honored.
func (c *SimulationConfig) LossProbability(s Stage) float64 {
	if p, ok := c.LossProbabilities[s.String()]; ok {
		return p
	}
	return defaultLossProbability
}
