package projection

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/niveshak/finplan/internal/models"
)

// PartitionDeposits splits holdings into corpus-eligible and emergency-reserve
// buckets. Only FD/RD records carry emergency semantics; everything else is
// corpus-eligible regardless of flags. Value is never duplicated or lost:
// every input record lands in exactly one bucket.
func PartitionDeposits(records []models.Investment) (corpusEligible, emergencyReserve []models.Investment) {
	for _, rec := range records {
		if rec.IsEmergencyFund && rec.Type.CanBeEmergencyFund() {
			emergencyReserve = append(emergencyReserve, rec)
			continue
		}
		corpusEligible = append(corpusEligible, rec)
	}
	return corpusEligible, emergencyReserve
}

// aggregate builds the starting-balance summary for a user: per-category
// totals, a single emergency-fund figure excluded from every corpus total,
// and the monthly cash-flow picture from incomes, expenses and loans.
// Inconsistent records are logged and skipped, never aborting the projection.
func (e *Engine) aggregate(ctx context.Context, userID int64) (models.RetirementSummary, []models.Loan, error) {
	summary := models.RetirementSummary{
		StartingBalances: make(map[models.InvestmentType]float64, len(models.AllInvestmentTypes)),
	}

	for _, t := range models.AllInvestmentTypes {
		records, err := e.store.ListInvestmentsByType(ctx, userID, t)
		if err != nil {
			return summary, nil, errors.Wrapf(err, "list %s investments", t)
		}

		clean := make([]models.Investment, 0, len(records))
		for _, rec := range records {
			if rec.CurrentValue < 0 || (rec.IsEmergencyFund && !rec.Type.CanBeEmergencyFund()) {
				e.log.WithFields(logrus.Fields{
					"user_id":       userID,
					"investment_id": rec.ID,
					"type":          rec.Type,
					"current_value": rec.CurrentValue,
				}).Warn("Skipping inconsistent investment record")
				summary.SkippedRecords++
				continue
			}
			clean = append(clean, rec)
		}

		eligible, reserve := PartitionDeposits(clean)
		for _, rec := range reserve {
			summary.EmergencyFund += rec.CurrentValue
		}
		total := 0.0
		for _, rec := range eligible {
			total += rec.CurrentValue
		}
		summary.StartingBalances[t] = total
		summary.InvestableCorpus += total
	}

	incomes, err := e.store.ListIncomes(ctx, userID)
	if err != nil {
		return summary, nil, errors.Wrap(err, "list incomes")
	}
	for _, inc := range incomes {
		summary.MonthlyIncome += inc.MonthlyAmount
	}

	expenses, err := e.store.ListExpenses(ctx, userID)
	if err != nil {
		return summary, nil, errors.Wrap(err, "list expenses")
	}
	for _, exp := range expenses {
		summary.MonthlyExpenses += exp.MonthlyAmount
	}

	insurances, err := e.store.ListInsurances(ctx, userID)
	if err != nil {
		return summary, nil, errors.Wrap(err, "list insurances")
	}
	for _, pol := range insurances {
		summary.MonthlyInsurance += pol.AnnualPremium / 12
	}

	loans, err := e.store.ListLoans(ctx, userID)
	if err != nil {
		return summary, nil, errors.Wrap(err, "list loans")
	}
	active := make([]models.Loan, 0, len(loans))
	for _, loan := range loans {
		if loan.Closed() {
			continue
		}
		summary.MonthlyEMI += loan.EMI
		summary.OutstandingDebt += loan.OutstandingAmount
		active = append(active, loan)
	}

	return summary, active, nil
}
