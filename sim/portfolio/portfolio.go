// Package portfolio defines the externally supplied inputs for
// portfolio-mode simulations: the fixed set of holdings to advance and the
// optional forced follow-on configurations that override probabilistic
// advancement for selected companies.
package portfolio

// Company is one existing portfolio holding. Records come from an external
// source (import, share link); the engine treats them as read-only.
// CheckSize and Valuation are in $MM, OwnershipPct in points (0–100).
type Company struct {
	ID           string  `yaml:"id" json:"id"`
	Name         string  `yaml:"name" json:"name"`
	Stage        string  `yaml:"stage" json:"stage"`
	CheckSize    float64 `yaml:"check_size" json:"checkSize"`
	Valuation    float64 `yaml:"valuation" json:"valuation"`
	OwnershipPct float64 `yaml:"ownership_pct" json:"ownershipPct"`
	EntryDate    string  `yaml:"entry_date,omitempty" json:"entryDate,omitempty"`
}

// FollowOnConfig describes a forced follow-on round for one stage boundary.
// At most two instances apply per simulation: one governing Seed→Series A,
// one governing Series A→Series B. For a selected company the transition
// always succeeds; dilution is still sampled and applied, and the
// investment's entry amount is overwritten with AvgValuation for later
// exit scaling.
type FollowOnConfig struct {
	AvgCheckSize float64  `yaml:"avg_check_size" json:"avgCheckSize"`
	AvgValuation float64  `yaml:"avg_valuation" json:"avgValuation"`
	OwnershipPct float64  `yaml:"ownership_pct" json:"ownershipPct"`
	SelectedIDs  []string `yaml:"selected_ids" json:"selectedIds"`
}

// Selected reports whether the company id participates in this follow-on.
// Safe on a nil receiver (no follow-on configured).
func (f *FollowOnConfig) Selected(id string) bool {
	if f == nil {
		return false
	}
	for _, s := range f.SelectedIDs {
		if s == id {
			return true
		}
	}
	return false
}
