package service

import (
	"context"
	"fmt"

	"github.com/niveshak/finplan/internal/finmath"
	"github.com/niveshak/finplan/internal/integrations/cas"
	"github.com/niveshak/finplan/internal/models"
)

// SaveInvestment validates and upserts an investment record
func (s *Service) SaveInvestment(ctx context.Context, inv *models.Investment) error {
	if !inv.Type.Valid() {
		return fmt.Errorf("unknown investment type %q", inv.Type)
	}
	if inv.IsEmergencyFund && !inv.Type.CanBeEmergencyFund() {
		return fmt.Errorf("emergency fund tagging is only valid for FD and RD holdings")
	}
	if inv.CurrentValue < 0 || inv.InvestedAmount < 0 {
		return fmt.Errorf("investment amounts must be non-negative")
	}
	return s.repo.UpsertInvestment(ctx, inv)
}

// ListInvestments returns all investment records for a user, optionally
// filtered by category
func (s *Service) ListInvestments(ctx context.Context, userID int64, t models.InvestmentType) ([]models.Investment, error) {
	if t == "" {
		return s.repo.ListInvestments(ctx, userID)
	}
	if !t.Valid() {
		return nil, fmt.Errorf("unknown investment type %q", t)
	}
	return s.repo.ListInvestmentsByType(ctx, userID, t)
}

// DeleteInvestment removes an investment record owned by the user
func (s *Service) DeleteInvestment(ctx context.Context, userID, id int64) error {
	return s.repo.DeleteInvestment(ctx, userID, id)
}

// SaveLoan upserts a loan, deriving the EMI from the amortization formula when
// the caller leaves it unset
func (s *Service) SaveLoan(ctx context.Context, loan *models.Loan) error {
	if loan.OutstandingAmount > loan.OriginalAmount {
		return fmt.Errorf("outstanding amount cannot exceed original amount")
	}
	if loan.RemainingMonths > loan.TenureMonths {
		return fmt.Errorf("remaining months cannot exceed tenure")
	}
	if loan.EMI == 0 {
		loan.EMI = finmath.EMI(loan.OriginalAmount, loan.InterestRate, loan.TenureMonths)
	}
	return s.repo.UpsertLoan(ctx, loan)
}

// ListLoans returns all loans for a user
func (s *Service) ListLoans(ctx context.Context, userID int64) ([]models.Loan, error) {
	return s.repo.ListLoans(ctx, userID)
}

// LoanSchedule produces the remaining amortization schedule for one of the
// user's loans
func (s *Service) LoanSchedule(ctx context.Context, userID, loanID int64) ([]models.AmortizationEntry, error) {
	loans, err := s.repo.ListLoans(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, loan := range loans {
		if loan.ID == loanID {
			return finmath.AmortizationSchedule(loan.OutstandingAmount, loan.InterestRate, loan.EMI, loan.RemainingMonths)
		}
	}
	return nil, fmt.Errorf("loan %d not found", loanID)
}

// SaveIncome upserts an income source
func (s *Service) SaveIncome(ctx context.Context, inc *models.Income) error {
	return s.repo.UpsertIncome(ctx, inc)
}

// ListIncomes returns all income sources for a user
func (s *Service) ListIncomes(ctx context.Context, userID int64) ([]models.Income, error) {
	return s.repo.ListIncomes(ctx, userID)
}

// SaveExpense upserts an expense
func (s *Service) SaveExpense(ctx context.Context, exp *models.Expense) error {
	return s.repo.UpsertExpense(ctx, exp)
}

// ListExpenses returns all expenses for a user
func (s *Service) ListExpenses(ctx context.Context, userID int64) ([]models.Expense, error) {
	return s.repo.ListExpenses(ctx, userID)
}

// SaveInsurance upserts an insurance policy
func (s *Service) SaveInsurance(ctx context.Context, pol *models.Insurance) error {
	return s.repo.UpsertInsurance(ctx, pol)
}

// ListInsurances returns all insurance policies for a user
func (s *Service) ListInsurances(ctx context.Context, userID int64) ([]models.Insurance, error) {
	return s.repo.ListInsurances(ctx, userID)
}

// SaveScenario upserts a retirement scenario after validating the age ordering
func (s *Service) SaveScenario(ctx context.Context, sc *models.RetirementScenario) error {
	if sc.CurrentAge > sc.RetirementAge || sc.RetirementAge > sc.LifeExpectancy {
		return fmt.Errorf("scenario ages must satisfy current <= retirement <= life expectancy")
	}
	return s.repo.UpsertScenario(ctx, sc)
}

// ListScenarios returns all retirement scenarios for a user
func (s *Service) ListScenarios(ctx context.Context, userID int64) ([]models.RetirementScenario, error) {
	return s.repo.ListScenarios(ctx, userID)
}

// SaveGoal upserts a savings goal
func (s *Service) SaveGoal(ctx context.Context, goal *models.Goal) error {
	if goal.TargetAmount <= 0 {
		return fmt.Errorf("goal target must be positive")
	}
	return s.repo.UpsertGoal(ctx, goal)
}

// PlanGoals computes, for each of the user's goals, the monthly SIP required
// to close the gap between what current savings will grow into and the target.
func (s *Service) PlanGoals(ctx context.Context, userID int64) ([]models.GoalPlan, error) {
	goals, err := s.repo.ListGoals(ctx, userID)
	if err != nil {
		return nil, err
	}

	plans := make([]models.GoalPlan, 0, len(goals))
	for _, goal := range goals {
		projected := finmath.FutureValue(goal.CurrentAmount, goal.ExpectedReturn, float64(goal.Years))
		gap := goal.TargetAmount - projected
		if gap < 0 {
			gap = 0
		}
		plans = append(plans, models.GoalPlan{
			Goal:               goal,
			ProjectedCurrent:   projected,
			RequiredMonthlySIP: finmath.RequiredSIP(gap, goal.ExpectedReturn, goal.Years),
		})
	}
	return plans, nil
}

// RetirementMatrix builds the retirement projection for a user. When notify is
// set and the corpus runs out before life expectancy, a shortfall alert email
// is sent; delivery failures are logged, never failing the projection.
func (s *Service) RetirementMatrix(ctx context.Context, userID int64, scenarioID *int64, notify bool) (*models.RetirementMatrix, error) {
	matrix, err := s.engine.BuildMatrix(ctx, userID, scenarioID)
	if err != nil {
		return nil, err
	}

	if notify && matrix.CorpusExhausted() {
		user, err := s.repo.FindUserByID(ctx, userID)
		if err != nil {
			s.log.Warnf("Shortfall alert skipped, user %d lookup failed: %v", userID, err)
			return matrix, nil
		}
		if err := s.mailer.SendShortfallAlert(user.Email, user.Username, matrix); err != nil {
			s.log.Warnf("Shortfall alert to %s failed: %v", user.Email, err)
		}
	}

	return matrix, nil
}

// ImportStatement parses an XML consolidated account statement and upserts the
// holdings it describes for the user. Returns the imported records.
func (s *Service) ImportStatement(ctx context.Context, userID int64, statement []byte) ([]models.Investment, error) {
	investments, err := cas.ParseStatement(statement)
	if err != nil {
		return nil, err
	}
	for i := range investments {
		investments[i].UserID = userID
		if err := s.SaveInvestment(ctx, &investments[i]); err != nil {
			return nil, fmt.Errorf("failed to import holding %q: %w", investments[i].Name, err)
		}
	}
	s.log.Infof("Imported %d holdings for user %d", len(investments), userID)
	return investments, nil
}

// ImportStatementFromURL downloads a statement and imports its holdings
func (s *Service) ImportStatementFromURL(ctx context.Context, userID int64, url string) ([]models.Investment, error) {
	raw, err := s.statements.FetchStatement(ctx, url)
	if err != nil {
		return nil, err
	}
	return s.ImportStatement(ctx, userID, raw)
}
