package projection

import (
	"context"

	"github.com/niveshak/finplan/internal/models"
)

// Store is the read-only view of persisted records the engine needs. The
// Find* lookups return (nil, nil) when no matching scenario exists; the
// engine maps that to ErrNoScenario.
type Store interface {
	ListInvestmentsByType(ctx context.Context, userID int64, t models.InvestmentType) ([]models.Investment, error)
	ListLoans(ctx context.Context, userID int64) ([]models.Loan, error)
	ListIncomes(ctx context.Context, userID int64) ([]models.Income, error)
	ListExpenses(ctx context.Context, userID int64) ([]models.Expense, error)
	ListInsurances(ctx context.Context, userID int64) ([]models.Insurance, error)
	FindDefaultScenario(ctx context.Context, userID int64) (*models.RetirementScenario, error)
	FindScenarioByID(ctx context.Context, id int64) (*models.RetirementScenario, error)
}
