package finmath

import (
	"errors"

	"github.com/niveshak/finplan/internal/models"
)

var (
	// ErrNegativeAmortization is returned when a loan's EMI does not cover the
	// interest accruing in a month, so the balance would never decrease
	ErrNegativeAmortization = errors.New("emi does not cover accruing interest")

	// ErrInvalidInput is returned when a formula receives an out-of-domain
	// value with no defined identity behavior
	ErrInvalidInput = errors.New("invalid input")
)

// AmortizationSchedule produces the month-by-month repayment schedule for a
// loan balance: interest on the running balance, principal as the remainder of
// the EMI, until the balance reaches zero or remainingMonths is exhausted.
// The balance sequence is strictly decreasing; if the EMI fails to cover a
// month's interest the schedule built so far is returned along with
// ErrNegativeAmortization instead of iterating forever.
func AmortizationSchedule(outstanding, annualRatePct, emi float64, remainingMonths int) ([]models.AmortizationEntry, error) {
	if outstanding < 0 || emi < 0 || annualRatePct < 0 {
		return nil, ErrInvalidInput
	}
	r := annualRatePct / pctDivisor / monthsPerYear
	balance := outstanding
	schedule := make([]models.AmortizationEntry, 0, remainingMonths)
	for month := 1; month <= remainingMonths && balance > 0; month++ {
		interest := balance * r
		principal := emi - interest
		if principal <= 0 {
			return schedule, ErrNegativeAmortization
		}
		if principal > balance {
			principal = balance
		}
		balance -= principal
		schedule = append(schedule, models.AmortizationEntry{
			Month:         month,
			Interest:      interest,
			PrincipalPaid: principal,
			Balance:       balance,
		})
	}
	return schedule, nil
}
