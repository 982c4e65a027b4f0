package sim

import (
	"math"
	"math/rand"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// irrHorizonYears is the fixed annualization horizon. The reported IRR is
// (MOIC^(1/5) − 1) × 100 clipped to [−50, 100] — a deliberate
// simplification, not a cash-flow-dated rate.
const (
	irrHorizonYears = 5.0
	irrFloorPct     = -50.0
	irrCeilPct      = 100.0
)

// AggregateResult is the reduction of all runs. PaidIn and Distributed are
// per-run averages, not totals, despite the names — downstream consumers
// depend on that reading.
type AggregateResult struct {
	MOICs []float64 `json:"moics"` // one entry per run
	IRRs  []float64 `json:"irrs"`  // one entry per run

	MeanMOIC float64 `json:"meanMoic"`
	MeanIRR  float64 `json:"meanIrr"`

	Investments     []Investment `json:"investments"` // all runs, run-tagged IDs
	PaidIn          float64      `json:"paidIn"`
	Distributed     float64      `json:"distributed"`
	InvestmentCount int          `json:"investmentCount"`
	ManagementFees  float64      `json:"managementFees"`
}

// runOutcome carries one run's results to the merge point.
type runOutcome struct {
	investments []Investment
	paidIn      float64
	distributed float64
	moic        float64
	irr         float64
}

// Run executes NumSimulations independent runs and reduces them into an
// AggregateResult. Each run draws from its own deterministically derived
// RNG stream, so results are bit-identical for a given seed and config
// regardless of how runs are scheduled across workers.
func (s *Simulator) Run() (*AggregateResult, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	entry, err := s.cfg.EntryStage()
	if err != nil {
		return nil, validationErrorf("initial_stage", "%v", err)
	}

	var templates []*investmentState
	if s.mode == ModePortfolio {
		templates, err = s.portfolioInvestments()
		if err != nil {
			return nil, err
		}
	}

	n := s.cfg.NumSimulations
	logrus.Debugf("starting %d %s-mode runs", n, s.mode)

	// Streams must be derived serially; each run then owns its generator.
	rngs := make([]*rand.Rand, n)
	for i := 0; i < n; i++ {
		rngs[i] = s.rng.ForRun(i)
	}

	outcomes := make([]runOutcome, n)
	runs := make(chan int)
	var completed int
	var progressMu sync.Mutex

	var wg sync.WaitGroup
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range runs {
				outcomes[i] = s.simulateRun(i, entry, templates, rngs[i])
				if s.progress != nil {
					progressMu.Lock()
					completed++
					s.progress(completed, n)
					progressMu.Unlock()
				}
			}
		}()
	}
	for i := 0; i < n; i++ {
		runs <- i
	}
	close(runs)
	wg.Wait()

	return s.reduce(outcomes), nil
}

// simulateRun executes one full-portfolio run: obtain investments, advance
// and price each independently, and sum the run's cash in and out.
func (s *Simulator) simulateRun(run int, entry Stage, templates []*investmentState, rng *rand.Rand) runOutcome {
	var investments []*investmentState
	if s.mode == ModePortfolio {
		investments = make([]*investmentState, len(templates))
		for i, t := range templates {
			investments[i] = t.clone()
		}
	} else {
		investments = generateInvestments(s.cfg, entry, rng)
	}

	out := runOutcome{investments: make([]Investment, 0, len(investments))}
	for _, inv := range investments {
		s.advance(inv, rng)
		out.paidIn += inv.entryAmount
		out.distributed += inv.exitAmount
		out.investments = append(out.investments, inv.finalize(run))
	}
	out.moic = safeMOIC(out.distributed, out.paidIn)
	out.irr = annualizedReturn(out.moic, out.paidIn)
	return out
}

// reduce merges per-run outcomes in run order.
func (s *Simulator) reduce(outcomes []runOutcome) *AggregateResult {
	n := len(outcomes)
	res := &AggregateResult{
		MOICs:          make([]float64, 0, n),
		IRRs:           make([]float64, 0, n),
		ManagementFees: s.cfg.ManagementFees(),
	}
	var totalPaidIn, totalDistributed float64
	for _, out := range outcomes {
		res.MOICs = append(res.MOICs, out.moic)
		res.IRRs = append(res.IRRs, out.irr)
		res.Investments = append(res.Investments, out.investments...)
		totalPaidIn += out.paidIn
		totalDistributed += out.distributed
	}
	res.MeanMOIC = stat.Mean(res.MOICs, nil)
	res.MeanIRR = stat.Mean(res.IRRs, nil)
	res.PaidIn = totalPaidIn / float64(n)
	res.Distributed = totalDistributed / float64(n)
	res.InvestmentCount = len(res.Investments)
	return res
}

// validate rejects runs whose preconditions are unmet, as a typed error.
// Missing map keys are not errors — they resolve to documented defaults.
func (s *Simulator) validate() error {
	if s.cfg == nil {
		return validationErrorf("config", "no configuration supplied")
	}
	if s.cfg.NumSimulations <= 0 {
		return validationErrorf("num_simulations", "must be positive, got %d", s.cfg.NumSimulations)
	}
	switch s.mode {
	case ModeFund:
		if s.cfg.FundSize <= 0 {
			return validationErrorf("fund_size", "must be positive, got %g", s.cfg.FundSize)
		}
	case ModePortfolio:
		if len(s.companies) == 0 {
			return validationErrorf("companies", "portfolio mode requires at least one company")
		}
	}
	return nil
}

// safeMOIC guards the zero-paid-in case: an empty run has MOIC 0,
// never NaN.
func safeMOIC(distributed, paidIn float64) float64 {
	if paidIn == 0 {
		return 0
	}
	return distributed / paidIn
}

// annualizedReturn converts a run MOIC into the simplified fixed-horizon
// IRR percentage, clipped to [−50, 100]. Zero paid-in yields 0.
func annualizedReturn(moic, paidIn float64) float64 {
	if paidIn == 0 {
		return 0
	}
	irr := (math.Pow(moic, 1/irrHorizonYears) - 1) * 100
	if irr < irrFloorPct {
		return irrFloorPct
	}
	if irr > irrCeilPct {
		return irrCeilPct
	}
	return irr
}
