// Package finmath implements the financial formulas used across the planner:
// compound growth, SIP future values, goal inversions, EMI and loan
// amortization. Every function is pure and stateless; non-positive time
// horizons are treated as the identity case rather than an error, since
// zero-duration projections are a valid input.
package finmath

import "math"

const (
	monthsPerYear = 12
	pctDivisor    = 100.0
)

// FutureValue compounds a lumpsum at an annual rate for the given number of
// years: principal * (1+r)^years. Zero years or zero rate return the
// principal unchanged.
func FutureValue(principal, annualRatePct, years float64) float64 {
	if years <= 0 {
		return principal
	}
	rate := annualRatePct / pctDivisor
	return principal * math.Pow(1+rate, years)
}

// SIPFutureValue returns the future value of a level monthly SIP compounded
// monthly over the given number of years, with contributions at the start of
// each month (annuity due).
func SIPFutureValue(monthlyAmount, annualRatePct float64, years int) float64 {
	if monthlyAmount <= 0 || years <= 0 {
		return 0
	}
	months := float64(years * monthsPerYear)
	r := annualRatePct / pctDivisor / monthsPerYear
	if r == 0 {
		return monthlyAmount * months
	}
	return monthlyAmount * ((math.Pow(1+r, months) - 1) / r) * (1 + r)
}

// StepUpSIPFutureValue returns the future value of a SIP whose monthly
// contribution grows by stepUpPct at the start of each year. Each year's
// contribution stream is future-valued to the terminal date and summed; with
// stepUpPct=0 the result equals SIPFutureValue.
func StepUpSIPFutureValue(monthlyAmount, annualRatePct, stepUpPct float64, years int) float64 {
	if monthlyAmount <= 0 || years <= 0 {
		return 0
	}
	r := annualRatePct / pctDivisor / monthsPerYear
	contribution := monthlyAmount
	total := 0.0
	for year := 0; year < years; year++ {
		yearEnd := SIPFutureValue(contribution, annualRatePct, 1)
		remaining := float64((years - year - 1) * monthsPerYear)
		total += yearEnd * math.Pow(1+r, remaining)
		contribution *= 1 + stepUpPct/pctDivisor
	}
	return total
}

// RequiredSIP inverts the level-SIP formula in closed form: the monthly
// contribution needed to reach targetAmount in the given number of years.
// Zero years returns the target itself.
func RequiredSIP(targetAmount, annualRatePct float64, years int) float64 {
	if targetAmount <= 0 {
		return 0
	}
	if years <= 0 {
		return targetAmount
	}
	months := float64(years * monthsPerYear)
	r := annualRatePct / pctDivisor / monthsPerYear
	if r == 0 {
		return targetAmount / months
	}
	factor := ((math.Pow(1+r, months) - 1) / r) * (1 + r)
	return targetAmount / factor
}

// InflationAdjusted projects the future cost of an amount under inflation.
func InflationAdjusted(currentAmount, inflationRatePct, years float64) float64 {
	return FutureValue(currentAmount, inflationRatePct, years)
}

// CAGR returns the compound annual growth rate between two values as a
// percentage. Growth from a zero base is undefined and reported as 0.
func CAGR(beginValue, endValue, years float64) float64 {
	if years <= 0 || beginValue <= 0 {
		return 0
	}
	return (math.Pow(endValue/beginValue, 1/years) - 1) * pctDivisor
}

// AbsoluteReturns returns the total percentage gain or loss on an investment.
func AbsoluteReturns(invested, current float64) float64 {
	if invested == 0 {
		return 0
	}
	return (current - invested) / invested * pctDivisor
}

// EMI returns the fixed monthly installment that fully amortizes a loan over
// its tenure. A zero rate degenerates to principal/tenureMonths; a
// non-positive tenure returns the principal unchanged.
func EMI(principal, annualRatePct float64, tenureMonths int) float64 {
	if tenureMonths <= 0 {
		return principal
	}
	r := annualRatePct / pctDivisor / monthsPerYear
	n := float64(tenureMonths)
	if r == 0 {
		return principal / n
	}
	pow := math.Pow(1+r, n)
	return principal * r * pow / (pow - 1)
}

// PPFMaturity projects a PPF balance: each year the yearly contribution is
// credited first, then the whole balance compounds at the annual rate.
func PPFMaturity(currentBalance, yearlyContribution, annualRatePct float64, years int) float64 {
	balance := currentBalance
	rate := annualRatePct / pctDivisor
	for year := 0; year < years; year++ {
		balance = (balance + yearlyContribution) * (1 + rate)
	}
	return balance
}
