package sim

import "fmt"

// Investment is the realized outcome of one holding in one run.
// ID is "{runIndex}-{companyIDOrSequence}" so a caller can slice the
// global list back into per-run detail views.
type Investment struct {
	ID          string  `json:"id"`
	EntryStage  Stage   `json:"entryStage"`
	EntryAmount float64 `json:"entryAmount"`
	ExitStage   Stage   `json:"exitStage"`
	ExitAmount  float64 `json:"exitAmount"`
}

// investmentState is one in-flight holding being advanced through stages.
// It is rebuilt every run, so "follow-on fired" flags are naturally
// transient per-run state.
type investmentState struct {
	key         string // company id, or sequence number in fund mode
	entryStage  Stage
	stage       Stage
	entryAmount float64
	equity      float64 // ownership fraction in [0, 1]; only ever shrinks
	exitAmount  float64
	exited      bool // exit already priced (IPO short-circuit)

	// firedFollowOn records the from-stages whose forced follow-on
	// override has been consumed, so an override fires at most once per
	// transition per investment per run.
	firedFollowOn map[Stage]bool
}

// clone returns a fresh copy ready for a new run, with its own
// follow-on bookkeeping.
func (inv *investmentState) clone() *investmentState {
	return &investmentState{
		key:           inv.key,
		entryStage:    inv.entryStage,
		stage:         inv.entryStage,
		entryAmount:   inv.entryAmount,
		equity:        inv.equity,
		firedFollowOn: make(map[Stage]bool),
	}
}

// finalize tags the terminal state with its run index and freezes it into
// the output record.
func (inv *investmentState) finalize(run int) Investment {
	return Investment{
		ID:          fmt.Sprintf("%d-%s", run, inv.key),
		EntryStage:  inv.entryStage,
		EntryAmount: inv.entryAmount,
		ExitStage:   inv.stage,
		ExitAmount:  inv.exitAmount,
	}
}
