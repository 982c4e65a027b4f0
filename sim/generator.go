package sim

import (
	"math/rand"
	"strconv"

	"github.com/sirupsen/logrus"
)

// uniform draws a value uniformly from a closed range. A degenerate range
// (Min == Max) always returns Min, so point configurations are exact.
func uniform(rng *rand.Rand, r Range) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// generateInvestments synthesizes one run's worth of fund-mode investments.
// Each active stage gets budget = allocation% × deployable capital, then
// draws (valuation, check) pairs until the budget is exhausted: checks are
// clipped to the remaining budget, and a clipped check below the dust
// threshold ends generation for that stage. Equity is check/valuation at
// entry. A zero allocation yields zero investments for the stage.
func generateInvestments(cfg *SimulationConfig, entry Stage, rng *rand.Rand) []*investmentState {
	deployable := cfg.DeployableCapital()
	var investments []*investmentState
	seq := 0

	for _, stage := range EntryStages(entry) {
		allocation := cfg.StageAllocation(stage)
		if allocation <= 0 {
			continue
		}
		budget := allocation / 100 * deployable
		valuationRange := cfg.ValuationRange(stage)
		checkRange := cfg.CheckSizeRange(stage)

		for {
			valuation := uniform(rng, valuationRange)
			check := uniform(rng, checkRange)
			if check > budget {
				check = budget
			}
			if check < dustThreshold {
				break
			}
			investments = append(investments, &investmentState{
				key:           strconv.Itoa(seq),
				entryStage:    stage,
				stage:         stage,
				entryAmount:   check,
				equity:        check / valuation,
				firedFollowOn: make(map[Stage]bool),
			})
			seq++
			budget -= check
		}
		logrus.Debugf("generated %d investments through %s, stage budget remainder %.3f",
			seq, stage, budget)
	}

	return investments
}
