package sim

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/fundsim/fundsim/sim/portfolio"
)

// Simulator runs Monte Carlo simulations of a fund scenario. It holds
// read-only inputs plus the partitioned RNG; all per-run state is rebuilt
// inside Run, so runs execute concurrently with no shared mutable state.
// For reproducible results construct a fresh Simulator per Run call: the
// RNG streams advance across calls.
type Simulator struct {
	cfg  *SimulationConfig
	mode Mode

	// Portfolio-mode inputs. Empty/nil in fund mode.
	companies       []portfolio.Company
	seedFollowOn    *portfolio.FollowOnConfig
	seriesAFollowOn *portfolio.FollowOnConfig

	rng *PartitionedRNG

	// progress, when set, is invoked with the number of completed runs
	// after each run finishes. Calls may arrive from multiple goroutines
	// but never concurrently.
	progress func(completed, total int)
}

// NewFundSimulator builds a simulator that synthesizes investments per run
// from the config's stage allocation budgets.
func NewFundSimulator(cfg *SimulationConfig, seed int64) *Simulator {
	return &Simulator{
		cfg:  cfg,
		mode: ModeFund,
		rng:  NewPartitionedRNG(NewSimulationKey(seed)),
	}
}

// NewPortfolioSimulator builds a simulator that advances a fixed company
// list each run. seedFollowOn governs Seed→Series A and seriesAFollowOn
// governs Series A→Series B; either may be nil.
func NewPortfolioSimulator(cfg *SimulationConfig, companies []portfolio.Company,
	seedFollowOn, seriesAFollowOn *portfolio.FollowOnConfig, seed int64) *Simulator {
	return &Simulator{
		cfg:             cfg,
		mode:            ModePortfolio,
		companies:       companies,
		seedFollowOn:    seedFollowOn,
		seriesAFollowOn: seriesAFollowOn,
		rng:             NewPartitionedRNG(NewSimulationKey(seed)),
	}
}

// OnRunComplete registers a progress callback fired after each completed
// run. Must be set before Run.
func (s *Simulator) OnRunComplete(fn func(completed, total int)) {
	s.progress = fn
}

// Mode reports whether this simulator is fund- or portfolio-mode.
func (s *Simulator) Mode() Mode {
	return s.mode
}

// followOnFor returns the forced follow-on config applying to an
// investment about to leave `from`, or nil when probabilistic advancement
// applies. Only portfolio mode has follow-ons, only the Seed and Series A
// boundaries are governed, and an override that already fired for this
// investment this run is spent.
func (s *Simulator) followOnFor(inv *investmentState, from Stage) *portfolio.FollowOnConfig {
	if s.mode != ModePortfolio || inv.firedFollowOn[from] {
		return nil
	}
	switch from {
	case Seed:
		if s.seedFollowOn.Selected(inv.key) {
			return s.seedFollowOn
		}
	case SeriesA:
		if s.seriesAFollowOn.Selected(inv.key) {
			return s.seriesAFollowOn
		}
	}
	return nil
}

// advance walks one investment forward through stage boundaries until it
// reaches IPO, fails an advancement draw, or exhausts the stage sequence,
// then resolves its exit. Draws depend on each other, so the loop is
// strictly ordered.
func (s *Simulator) advance(inv *investmentState, rng *rand.Rand) {
	for {
		next, ok := inv.stage.Next()
		if !ok {
			break
		}

		r := rng.Float64() * 100
		forced := s.followOnFor(inv, inv.stage)
		if forced == nil && r >= s.cfg.AdvancementProbability(inv.stage, next) {
			// Stalled: no further advancement this run.
			break
		}
		if forced != nil {
			inv.firedFollowOn[inv.stage] = true
			inv.entryAmount = forced.AvgValuation
			logrus.Debugf("forced follow-on for %s at %s", inv.key, inv.stage)
		}

		d := uniform(rng, s.cfg.DilutionRange(inv.stage, next, s.mode))
		inv.equity *= 1 - d/100
		inv.stage = next

		if next == IPO {
			// IPO exits are priced off the late-stage range and skip
			// the loss check.
			exitValuation := uniform(rng, s.cfg.ExitValuationRange(SeriesC))
			inv.exitAmount = s.exitProceeds(inv, exitValuation)
			inv.exited = true
			return
		}
	}

	s.resolveExit(inv, rng)
}

// resolveExit prices the terminal outcome of a non-IPO investment: a total
// loss with the stage's loss probability, otherwise proceeds from a
// sampled exit valuation. The loss check runs exactly once, after
// advancement has stopped — never per intermediate stage.
func (s *Simulator) resolveExit(inv *investmentState, rng *rand.Rand) {
	if inv.exited {
		return
	}
	if rng.Float64()*100 < s.cfg.LossProbability(inv.stage) {
		inv.exitAmount = 0
		inv.exited = true
		return
	}
	exitValuation := uniform(rng, s.cfg.ExitValuationRange(inv.stage))
	inv.exitAmount = s.exitProceeds(inv, exitValuation)
	inv.exited = true
}

// exitProceeds converts a sampled exit valuation into proceeds. The two
// modes intentionally use different formulas (see DESIGN.md): fund-mode
// equity already embeds check/valuation, so proceeds are equity ×
// exitValuation; portfolio mode scales explicitly by the entry amount.
func (s *Simulator) exitProceeds(inv *investmentState, exitValuation float64) float64 {
	if s.mode == ModePortfolio {
		return inv.equity * exitValuation * inv.entryAmount
	}
	return inv.equity * exitValuation
}

// portfolioInvestments materializes fresh per-run state from the fixed
// company list. Ownership percent becomes an equity fraction.
func (s *Simulator) portfolioInvestments() ([]*investmentState, error) {
	investments := make([]*investmentState, 0, len(s.companies))
	for _, c := range s.companies {
		stage, err := ParseStage(c.Stage)
		if err != nil {
			return nil, validationErrorf("companies", "company %q: %v", c.ID, err)
		}
		investments = append(investments, &investmentState{
			key:           c.ID,
			entryStage:    stage,
			stage:         stage,
			entryAmount:   c.CheckSize,
			equity:        c.OwnershipPct / 100,
			firedFollowOn: make(map[Stage]bool),
		})
	}
	return investments, nil
}
