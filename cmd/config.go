package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fundsim/fundsim/sim"
	"github.com/fundsim/fundsim/sim/portfolio"
)

// PortfolioFile is the YAML shape for portfolio-mode input: the holdings
// plus optional forced follow-on blocks for the two governed boundaries.
type PortfolioFile struct {
	Companies       []portfolio.Company       `yaml:"companies"`
	SeedFollowOn    *portfolio.FollowOnConfig `yaml:"seed_follow_on,omitempty"`
	SeriesAFollowOn *portfolio.FollowOnConfig `yaml:"series_a_follow_on,omitempty"`
}

// decodeStrict parses YAML with strict field checking so typos in config
// files cause errors instead of silently falling back to defaults.
func decodeStrict(data []byte, out any) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	return decoder.Decode(out)
}

// LoadSimulationConfig reads a fund scenario from a YAML file. Absent map
// entries are left absent: the engine resolves them to its documented
// per-field defaults.
func LoadSimulationConfig(path string) (*sim.SimulationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg sim.SimulationConfig
	if err := decodeStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadPortfolioFile reads portfolio-mode companies and follow-on configs
// from a YAML file.
func LoadPortfolioFile(path string) (*PortfolioFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read portfolio: %w", err)
	}
	var pf PortfolioFile
	if err := decodeStrict(data, &pf); err != nil {
		return nil, fmt.Errorf("parse portfolio %s: %w", path, err)
	}
	return &pf, nil
}
