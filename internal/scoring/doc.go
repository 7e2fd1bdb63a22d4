// Package scoring rates a product against category-specific standards.
//
// Each category (equity, fixed income, alternative) carries a table of
// criteria whose tiered thresholds map a metric value to a discrete score,
// and a weight table summing to 1.0. The flag-dependent sub-variants
// (index-enhanced equity, neutral-arbitrage alternative) swap in their own
// tables; the whole set is closed and dispatched exhaustively.
//
// Unavailable inputs produce unavailable scores, and the weighted total
// excludes them from both numerator and denominator; it is a reweighted
// mean over present criteria, not a "missing counts as zero" sum.
package scoring
