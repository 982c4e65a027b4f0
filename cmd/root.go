package cmd

import (
	"errors"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fundsim/fundsim/sim"
)

var (
	// CLI flags
	configPath    string // Fund scenario YAML
	portfolioPath string // Optional portfolio-mode YAML (companies + follow-ons)
	seed          int64  // Master seed for the partitioned RNG
	simulations   int    // Override for the config's num_simulations when > 0
	logLevel      string // Log verbosity level
	histogramBins int    // Bin count for the MOIC histogram
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "fundsim",
	Short: "Monte Carlo simulator for venture fund returns",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the fund simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if configPath == "" {
			logrus.Fatalf("No fund configuration provided. Exiting simulation.")
		}
		cfg, err := LoadSimulationConfig(configPath)
		if err != nil {
			logrus.Fatalf("Failed to load configuration: %v", err)
		}
		if simulations > 0 {
			cfg.NumSimulations = simulations
		}

		var simulator *sim.Simulator
		if portfolioPath != "" {
			pf, err := LoadPortfolioFile(portfolioPath)
			if err != nil {
				logrus.Fatalf("Failed to load portfolio: %v", err)
			}
			simulator = sim.NewPortfolioSimulator(cfg, pf.Companies, pf.SeedFollowOn, pf.SeriesAFollowOn, seed)
		} else {
			simulator = sim.NewFundSimulator(cfg, seed)
		}

		logrus.Infof("Starting %s-mode simulation: %d runs, seed=%d",
			simulator.Mode(), cfg.NumSimulations, seed)
		startTime := time.Now()

		result, err := simulator.Run()
		if err != nil {
			var verr *sim.ValidationError
			if errors.As(err, &verr) {
				logrus.Fatalf("Cannot run: %s (%s)", verr.Reason, verr.Field)
			}
			logrus.Fatalf("Simulation failed: %v", err)
		}

		printResult(result, histogramBins, time.Since(startTime))
		logrus.Info("Simulation complete.")
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to the fund scenario YAML")
	runCmd.Flags().StringVar(&portfolioPath, "portfolio", "", "Path to a portfolio YAML (enables portfolio mode)")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for random draw generation")
	runCmd.Flags().IntVar(&simulations, "simulations", 0, "Number of runs (overrides the config when set)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().IntVar(&histogramBins, "bins", 10, "Number of MOIC histogram bins")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
