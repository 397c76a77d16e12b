package projection

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niveshak/finplan/internal/models"
)

type fakeStore struct {
	investments []models.Investment
	loans       []models.Loan
	incomes     []models.Income
	expenses    []models.Expense
	insurances  []models.Insurance
	scenarios   map[int64]*models.RetirementScenario
	defaultID   int64
}

func (f *fakeStore) ListInvestmentsByType(_ context.Context, _ int64, t models.InvestmentType) ([]models.Investment, error) {
	var out []models.Investment
	for _, rec := range f.investments {
		if rec.Type == t {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeStore) ListLoans(context.Context, int64) ([]models.Loan, error) {
	return f.loans, nil
}

func (f *fakeStore) ListIncomes(context.Context, int64) ([]models.Income, error) {
	return f.incomes, nil
}

func (f *fakeStore) ListExpenses(context.Context, int64) ([]models.Expense, error) {
	return f.expenses, nil
}

func (f *fakeStore) ListInsurances(context.Context, int64) ([]models.Insurance, error) {
	return f.insurances, nil
}

func (f *fakeStore) FindDefaultScenario(context.Context, int64) (*models.RetirementScenario, error) {
	return f.scenarios[f.defaultID], nil
}

func (f *fakeStore) FindScenarioByID(_ context.Context, id int64) (*models.RetirementScenario, error) {
	return f.scenarios[id], nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func baseScenario() *models.RetirementScenario {
	return &models.RetirementScenario{
		ID:               1,
		UserID:           7,
		CurrentAge:       59,
		RetirementAge:    60,
		LifeExpectancy:   62,
		InflationRate:    0,
		CorpusReturnRate: 10,
		SIPStepUpPercent: 0,
		IsDefault:        true,
	}
}

func TestPartitionDeposits(t *testing.T) {
	records := []models.Investment{
		{ID: 1, Type: models.TypeFD, CurrentValue: 220000, IsEmergencyFund: true},
		{ID: 2, Type: models.TypeFD, CurrentValue: 100000},
		{ID: 3, Type: models.TypeRD, CurrentValue: 50000, IsEmergencyFund: true},
		{ID: 4, Type: models.TypeMutualFund, CurrentValue: 400000},
	}
	eligible, reserve := PartitionDeposits(records)
	assert.Len(t, reserve, 2)
	assert.Len(t, eligible, 2)
	assert.Equal(t, len(records), len(eligible)+len(reserve))
}

func TestBuildMatrix_EmergencyFundSegregation(t *testing.T) {
	store := &fakeStore{
		investments: []models.Investment{
			{ID: 1, Type: models.TypeFD, CurrentValue: 220000, IsEmergencyFund: true},
			{ID: 2, Type: models.TypeFD, CurrentValue: 100000},
			{ID: 3, Type: models.TypeRD, CurrentValue: 50000, IsEmergencyFund: true},
			{ID: 4, Type: models.TypeMutualFund, CurrentValue: 400000},
		},
		scenarios: map[int64]*models.RetirementScenario{1: baseScenario()},
		defaultID: 1,
	}
	engine := NewEngine(store, quietLogger())

	matrix, err := engine.BuildMatrix(context.Background(), 7, nil)
	require.NoError(t, err)

	assert.Equal(t, 270000.0, matrix.Summary.EmergencyFund)
	assert.Equal(t, 100000.0, matrix.Summary.StartingBalances[models.TypeFD])
	assert.Equal(t, 0.0, matrix.Summary.StartingBalances[models.TypeRD])
	assert.Equal(t, 400000.0, matrix.Summary.StartingBalances[models.TypeMutualFund])
	assert.Equal(t, 500000.0, matrix.Summary.InvestableCorpus)
}

func TestBuildMatrix_SingleEmergencyFD(t *testing.T) {
	store := &fakeStore{
		investments: []models.Investment{
			{ID: 1, Type: models.TypeFD, CurrentValue: 220000, IsEmergencyFund: true},
		},
		scenarios: map[int64]*models.RetirementScenario{1: baseScenario()},
		defaultID: 1,
	}
	engine := NewEngine(store, quietLogger())

	matrix, err := engine.BuildMatrix(context.Background(), 7, nil)
	require.NoError(t, err)

	assert.Equal(t, 220000.0, matrix.Summary.EmergencyFund)
	assert.Zero(t, matrix.Summary.InvestableCorpus)
}

func TestBuildMatrix_SkipsInconsistentRecords(t *testing.T) {
	store := &fakeStore{
		investments: []models.Investment{
			{ID: 1, Type: models.TypeStock, CurrentValue: -500},
			{ID: 2, Type: models.TypeGold, CurrentValue: 80000, IsEmergencyFund: true}, // flag invalid for gold
			{ID: 3, Type: models.TypeStock, CurrentValue: 120000},
		},
		scenarios: map[int64]*models.RetirementScenario{1: baseScenario()},
		defaultID: 1,
	}
	engine := NewEngine(store, quietLogger())

	matrix, err := engine.BuildMatrix(context.Background(), 7, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, matrix.Summary.SkippedRecords)
	assert.Equal(t, 120000.0, matrix.Summary.InvestableCorpus)
	assert.Zero(t, matrix.Summary.EmergencyFund)
}

func TestBuildMatrix_NoScenario(t *testing.T) {
	engine := NewEngine(&fakeStore{scenarios: map[int64]*models.RetirementScenario{}}, quietLogger())

	_, err := engine.BuildMatrix(context.Background(), 7, nil)
	assert.ErrorIs(t, err, ErrNoScenario)

	missing := int64(99)
	_, err = engine.BuildMatrix(context.Background(), 7, &missing)
	assert.ErrorIs(t, err, ErrNoScenario)
}

func TestBuildMatrix_ExplicitScenarioOverridesDefault(t *testing.T) {
	alt := baseScenario()
	alt.ID = 2
	alt.CorpusReturnRate = 5
	alt.IsDefault = false
	store := &fakeStore{
		scenarios: map[int64]*models.RetirementScenario{1: baseScenario(), 2: alt},
		defaultID: 1,
	}
	engine := NewEngine(store, quietLogger())

	id := int64(2)
	matrix, err := engine.BuildMatrix(context.Background(), 7, &id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), matrix.Scenario.ID)
	assert.Equal(t, 5.0, matrix.Scenario.CorpusReturnRate)
}

func TestBuildMatrix_SimulationTimeline(t *testing.T) {
	store := &fakeStore{
		investments: []models.Investment{
			{ID: 1, Type: models.TypeMutualFund, CurrentValue: 1_000_000},
		},
		incomes:   []models.Income{{MonthlyAmount: 100000}},
		expenses:  []models.Expense{{MonthlyAmount: 50000}},
		scenarios: map[int64]*models.RetirementScenario{1: baseScenario()},
		defaultID: 1,
	}
	engine := NewEngine(store, quietLogger())

	matrix, err := engine.BuildMatrix(context.Background(), 7, nil)
	require.NoError(t, err)
	require.Len(t, matrix.Years, 3)

	// age 60: one accumulation year of 50k/month surplus
	assert.Equal(t, 60, matrix.Years[0].Age)
	assert.InDelta(t, 1_700_000, matrix.Years[0].CorpusValue, 0.01)
	assert.InDelta(t, 600_000, matrix.Years[0].CashFlow, 0.01)

	// age 61: first withdrawal year, zero inflation keeps expenses at 600k
	assert.Equal(t, 61, matrix.Years[1].Age)
	assert.InDelta(t, 1_270_000, matrix.Years[1].CorpusValue, 0.01)
	assert.InDelta(t, -600_000, matrix.Years[1].CashFlow, 0.01)

	assert.Equal(t, 62, matrix.Years[2].Age)
	assert.InDelta(t, 797_000, matrix.Years[2].CorpusValue, 0.01)
}

func TestBuildMatrix_CorpusExhaustion(t *testing.T) {
	sc := baseScenario()
	sc.CurrentAge = 60
	sc.RetirementAge = 60
	sc.LifeExpectancy = 90
	store := &fakeStore{
		investments: []models.Investment{{ID: 1, Type: models.TypeCash, CurrentValue: 500_000}},
		expenses:    []models.Expense{{MonthlyAmount: 50000}},
		scenarios:   map[int64]*models.RetirementScenario{1: sc},
		defaultID:   1,
	}
	engine := NewEngine(store, quietLogger())

	matrix, err := engine.BuildMatrix(context.Background(), 7, nil)
	require.NoError(t, err)

	require.NotEmpty(t, matrix.Years)
	last := matrix.Years[len(matrix.Years)-1]
	assert.Zero(t, last.CorpusValue)
	assert.Less(t, last.Age, sc.LifeExpectancy)
	assert.True(t, matrix.CorpusExhausted())
}

func TestBuildMatrix_StepUpContributions(t *testing.T) {
	sc := baseScenario()
	sc.CurrentAge = 30
	sc.RetirementAge = 60
	sc.LifeExpectancy = 85
	sc.SIPStepUpPercent = 10
	store := &fakeStore{
		incomes:   []models.Income{{MonthlyAmount: 100000}},
		expenses:  []models.Expense{{MonthlyAmount: 60000}},
		scenarios: map[int64]*models.RetirementScenario{1: sc},
		defaultID: 1,
	}
	engine := NewEngine(store, quietLogger())

	matrix, err := engine.BuildMatrix(context.Background(), 7, nil)
	require.NoError(t, err)
	require.Greater(t, len(matrix.Years), 2)

	assert.InDelta(t, matrix.Years[0].CashFlow*1.1, matrix.Years[1].CashFlow, 0.01)
	assert.InDelta(t, matrix.Years[1].CashFlow*1.1, matrix.Years[2].CashFlow, 0.01)
}

func TestBuildMatrix_InsurancePremiumsReduceSurplus(t *testing.T) {
	sc := baseScenario()
	store := &fakeStore{
		incomes:    []models.Income{{MonthlyAmount: 100000}},
		expenses:   []models.Expense{{MonthlyAmount: 50000}},
		insurances: []models.Insurance{{AnnualPremium: 120000}},
		scenarios:  map[int64]*models.RetirementScenario{1: sc},
		defaultID:  1,
	}
	engine := NewEngine(store, quietLogger())

	matrix, err := engine.BuildMatrix(context.Background(), 7, nil)
	require.NoError(t, err)

	assert.InDelta(t, 10000, matrix.Summary.MonthlyInsurance, 0.01)
	// surplus is 100k - 50k - 10k = 40k/month
	assert.InDelta(t, 480_000, matrix.Years[0].CashFlow, 0.01)
}

func TestBuildMatrix_LoanAmortizedInLockStep(t *testing.T) {
	sc := baseScenario()
	sc.CurrentAge = 40
	sc.RetirementAge = 60
	sc.LifeExpectancy = 80
	loan := models.Loan{
		ID:                1,
		OriginalAmount:    1_000_000,
		OutstandingAmount: 230_000,
		InterestRate:      0,
		EMI:               10_000,
		TenureMonths:      100,
		RemainingMonths:   23,
	}
	store := &fakeStore{
		incomes:   []models.Income{{MonthlyAmount: 100000}},
		expenses:  []models.Expense{{MonthlyAmount: 50000}},
		loans:     []models.Loan{loan},
		scenarios: map[int64]*models.RetirementScenario{1: sc},
		defaultID: 1,
	}
	engine := NewEngine(store, quietLogger())

	matrix, err := engine.BuildMatrix(context.Background(), 7, nil)
	require.NoError(t, err)

	assert.Equal(t, 230_000.0, matrix.Summary.OutstandingDebt)
	assert.Equal(t, 10_000.0, matrix.Summary.MonthlyEMI)

	// zero-rate loan: 12 EMIs of 10k in year one leave 110k outstanding
	assert.InDelta(t, 110_000, matrix.Years[0].LoanBalance, 0.01)
	assert.InDelta(t, 600_000-120_000, matrix.Years[0].CashFlow, 0.01)

	// year two clears the loan with 11 remaining payments
	assert.Zero(t, matrix.Years[1].LoanBalance)
	assert.InDelta(t, 600_000-110_000, matrix.Years[1].CashFlow, 0.01)

	// year three surplus is back to full strength
	assert.InDelta(t, 600_000, matrix.Years[2].CashFlow, 0.01)
}

func TestBuildMatrix_Deterministic(t *testing.T) {
	store := &fakeStore{
		investments: []models.Investment{
			{ID: 1, Type: models.TypeMutualFund, CurrentValue: 750_000},
			{ID: 2, Type: models.TypeFD, CurrentValue: 200_000, IsEmergencyFund: true},
		},
		incomes:   []models.Income{{MonthlyAmount: 90000}},
		expenses:  []models.Expense{{MonthlyAmount: 45000}},
		scenarios: map[int64]*models.RetirementScenario{1: baseScenario()},
		defaultID: 1,
	}
	engine := NewEngine(store, quietLogger())

	first, err := engine.BuildMatrix(context.Background(), 7, nil)
	require.NoError(t, err)
	second, err := engine.BuildMatrix(context.Background(), 7, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildMatrix_InconsistentAges(t *testing.T) {
	sc := baseScenario()
	sc.RetirementAge = 50 // below current age
	store := &fakeStore{
		scenarios: map[int64]*models.RetirementScenario{1: sc},
		defaultID: 1,
	}
	engine := NewEngine(store, quietLogger())

	_, err := engine.BuildMatrix(context.Background(), 7, nil)
	assert.Error(t, err)
}
