package cmd

import (
	"fmt"
	"time"

	"github.com/fundsim/fundsim/sim"
	"github.com/fundsim/fundsim/sim/report"
)

// printResult displays the aggregate metrics at the end of the simulation,
// followed by the MOIC distribution summary and histogram.
func printResult(res *sim.AggregateResult, bins int, elapsed time.Duration) {
	fmt.Println("=== Simulation Results ===")
	fmt.Printf("Runs                 : %d\n", len(res.MOICs))
	fmt.Printf("Investments (total)  : %d\n", res.InvestmentCount)
	fmt.Printf("Mean MOIC            : %.2fx\n", res.MeanMOIC)
	fmt.Printf("Mean IRR             : %.2f%%\n", res.MeanIRR)
	fmt.Printf("Avg Paid-In          : $%.2fMM\n", res.PaidIn)
	fmt.Printf("Avg Distributed      : $%.2fMM\n", res.Distributed)
	fmt.Printf("Management Fees      : $%.2fMM\n", res.ManagementFees)
	fmt.Printf("Elapsed              : %s\n", elapsed.Round(time.Millisecond))

	summary := report.Summarize(res.MOICs)
	fmt.Println("=== MOIC Distribution ===")
	fmt.Printf("Min / Median / Max   : %.2fx / %.2fx / %.2fx\n", summary.Min, summary.Median, summary.Max)
	fmt.Printf("P5 / P25 / P75 / P95 : %.2fx / %.2fx / %.2fx / %.2fx\n",
		summary.P5, summary.P25, summary.P75, summary.P95)

	for _, bin := range report.Histogram(res.MOICs, bins) {
		fmt.Printf("  [%6.2f, %6.2f) %d\n", bin.Low, bin.High, bin.Count)
	}
}
