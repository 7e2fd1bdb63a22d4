// Package analytics implements the NAV time-series analytics engine: the
// performance metrics calculator, the correlation engine and the benchmark
// comparator.
//
// All computation here is synchronous and pure. Given identical inputs every
// function returns identical output, mutates nothing, and performs no I/O,
// so callers are free to parallelize independent invocations without
// coordination.
//
// # Components
//
//   - value.go: the Value optional type replacing NaN sentinels
//   - types.go: the Metrics record, Window bounds and CorrelationMatrix
//   - metrics.go: date-bounded performance statistics per product
//   - drawdown.go: running-peak drawdown and worst-case recovery search
//   - returns.go: implied weekly returns, sample stdev, Pearson correlation
//   - correlation.go: date-aligned pairwise correlation matrix
//   - benchmark.go: excess return, peer consistency, monthly win rate
//
// # Absence versus unavailability
//
// Data-quality problems never surface as errors. Structural shortfalls
// (fewer than two points, fewer than two shared dates) make the whole result
// absent (nil); a single ill-conditioned statistic (zero variance, span
// under seven days, no recovered drawdown) is an unavailable Value while its
// siblings remain computed.
package analytics
