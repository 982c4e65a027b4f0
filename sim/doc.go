// Package sim provides the Monte Carlo stage-transition engine for venture
// fund return estimation.
//
// # Reading Guide
//
// Start with these three files to understand the engine:
//   - stage.go: the fixed financing stage order and transition keys
//   - engine.go: the stage-transition loop, forced follow-ons, and exit pricing
//   - aggregate.go: run fan-out, per-run reduction, and MOIC/IRR metrics
//
// # Architecture
//
// The engine is a pure function from a SimulationConfig (plus, in portfolio
// mode, companies and follow-on configs from sim/portfolio) to an
// AggregateResult. It performs no I/O; configuration loading and report
// rendering live in cmd/, histogram and quantile post-processing in
// sim/report.
//
// Randomness is injected through a PartitionedRNG (rng.go): a master seed
// deterministically derives one independent stream per run, so identical
// seeds give bit-identical results and runs can execute concurrently with
// no coordination beyond the final merge.
package sim
