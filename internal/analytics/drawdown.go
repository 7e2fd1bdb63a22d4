package analytics

import (
	"github.com/grx1242064203-bit/net-worth-analysis-tool/pkg/contracts/domain"
)

// maxDrawdown returns the most negative percentage decline from a running
// peak, as a fraction ≤ 0. A monotonically non-decreasing series yields 0.
func maxDrawdown(values []float64) float64 {
	peak := values[0]
	minDD := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
		dd := (v - peak) / peak
		if dd < minDD {
			minDD = dd
		}
	}
	return minDD
}

// drawdownRecoveryDays finds, for every peak episode, the trough that
// follows the peak and the first observation at or above that peak after
// the trough, and reports the worst-case (maximum) trough-to-recovery
// duration in days. Episodes with a zero trough drawdown are not drawdown
// episodes and contribute nothing, so a series that never declines reports
// no recovery at all.
func drawdownRecoveryDays(s domain.Series) (int, bool) {
	n := len(s)
	cumMax := make([]float64, n)
	peak := s[0].Value
	for i, p := range s {
		if p.Value > peak {
			peak = p.Value
		}
		cumMax[i] = peak
	}
	drawdown := make([]float64, n)
	for i, p := range s {
		drawdown[i] = (p.Value - cumMax[i]) / cumMax[i]
	}

	peaks := []int{0}
	for i := 1; i < n; i++ {
		if cumMax[i] > cumMax[i-1] {
			peaks = append(peaks, i)
		}
	}

	maxDays := 0
	recovered := false
	for _, p := range peaks {
		troughIdx, troughVal := p, drawdown[p]
		for i := p; i < n; i++ {
			if drawdown[i] < troughVal {
				troughVal = drawdown[i]
				troughIdx = i
			}
		}
		if troughVal == 0 {
			continue
		}
		for i := troughIdx + 1; i < n; i++ {
			if s[i].Value >= cumMax[p] {
				days := domain.DaysBetween(s[troughIdx].Date, s[i].Date)
				if days < 0 {
					days = 0
				}
				if days > maxDays {
					maxDays = days
				}
				recovered = true
				break
			}
		}
	}
	return maxDays, recovered
}
