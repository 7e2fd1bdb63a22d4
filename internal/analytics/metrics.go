package analytics

import (
	"fmt"
	"math"

	"github.com/grx1242064203-bit/net-worth-analysis-tool/pkg/contracts/domain"
)

// Compute calculates the full Metrics record for one product over the given
// window. The window bounds filter the series inclusively; the trailing
// one-year fields always look at the complete, unbounded series. Returns nil
// when fewer than two observations remain after filtering; absence of the
// whole record, as opposed to field-level unavailability, is not an error.
func Compute(series domain.Series, window Window) *Metrics {
	if len(series) < 2 {
		return nil
	}
	s := series.Clip(window.Start, window.End)
	if len(s) < 2 {
		return nil
	}

	first, last := s.First(), s.Last()
	elapsedDays := domain.DaysBetween(first.Date, last.Date)
	if elapsedDays < 0 {
		elapsedDays = 0
	}
	elapsedYears := float64(elapsedDays) / DaysPerYear

	cumulative := (last.Value/first.Value - 1) * 100
	annualized := annualize(cumulative, elapsedDays, elapsedYears)

	rets := weeklyReturns(s)
	volatility := Unavailable()
	sharpe := Unavailable()
	if std, ok := sampleStdDev(rets); ok {
		volatility = Avail(std * math.Sqrt(WeeksPerYear) * 100)
		if std > 0 {
			weeklyRf := RiskFreeRate / WeeksPerYear
			sharpe = Avail((mean(rets) - weeklyRf) / std * math.Sqrt(WeeksPerYear))
		}
	}

	mdd := maxDrawdown(s.Values()) * 100
	recovery := Unavailable()
	if days, ok := drawdownRecoveryDays(s); ok {
		recovery = Avail(float64(days))
	}

	m := &Metrics{
		InceptionDate:    first.Date,
		ElapsedYears:     round2(elapsedYears),
		CumulativeReturn: round2(cumulative),
		AnnualizedReturn: annualized.Round2(),
		Volatility:       volatility.Round2(),
		Sharpe:           sharpe.Round2(),
		MaxDrawdown:      round2(mdd),
		RecoveryDays:     recovery,
	}
	m.TrailingYearReturn, m.TrailingYearVolatility, m.TrailingYearWindow = trailingYear(series)
	return m
}

// annualize converts a cumulative percentage return over a day span into an
// annualized percentage. Unavailable for spans under seven days (annualizing
// them is meaningless) and for returns at or below −100% (the fractional
// power blows up on near-total loss).
func annualize(cumulativePct float64, elapsedDays int, elapsedYears float64) Value {
	if elapsedDays < MinAnnualizationDays || cumulativePct <= -100 {
		return Unavailable()
	}
	return Avail((math.Pow(1+cumulativePct/100, 1/elapsedYears) - 1) * 100)
}

// trailingYear computes the trailing one-year return and volatility on the
// full series. The window end is the last observed date; the window start is
// the observation nearest (first match on ties) to one year before it.
func trailingYear(series domain.Series) (ret, vol Value, label string) {
	end := series.Last().Date
	cutoff := end.AddDate(0, 0, -DaysPerYear)
	startIdx := series.NearestIndex(cutoff)
	start := series[startIdx].Date
	label = fmt.Sprintf("%s – %s", start.Format(domain.DateKey), end.Format(domain.DateKey))

	sub := series.Clip(start, end)
	if len(sub) < 2 {
		return Unavailable(), Unavailable(), label
	}

	days := domain.DaysBetween(sub.First().Date, sub.Last().Date)
	if days < 0 {
		days = 0
	}
	years := float64(days) / DaysPerYear
	cumulative := (sub.Last().Value/sub.First().Value - 1) * 100
	ret = annualize(cumulative, days, years).Round2()

	rets := weeklyReturns(sub)
	if std, ok := sampleStdDev(rets); ok {
		vol = Avail(std * math.Sqrt(WeeksPerYear) * 100).Round2()
	} else {
		vol = Unavailable()
	}
	return ret, vol, label
}
