// Package projection implements the retirement corpus simulator: it
// aggregates a user's holdings into a starting summary, resolves the
// scenario assumptions, and projects year-by-year net worth from the present
// age to life expectancy. The engine is request-scoped and stateless between
// calls; identical inputs always produce the identical matrix.
package projection

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/niveshak/finplan/internal/finmath"
	"github.com/niveshak/finplan/internal/models"
)

// ErrNoScenario is returned when neither an explicit nor a default retirement
// scenario can be resolved for the user
var ErrNoScenario = errors.New("no retirement scenario configured")

const monthsPerYear = 12

// Engine drives retirement projections over a read-only data store
type Engine struct {
	store Store
	log   *logrus.Logger
}

// NewEngine initializes a projection engine
func NewEngine(store Store, log *logrus.Logger) *Engine {
	return &Engine{store: store, log: log}
}

// BuildMatrix produces the retirement matrix for a user. When scenarioID is
// nil the user's default scenario is used; if none exists the engine reports
// ErrNoScenario rather than guessing assumptions.
func (e *Engine) BuildMatrix(ctx context.Context, userID int64, scenarioID *int64) (*models.RetirementMatrix, error) {
	scenario, err := e.resolveScenario(ctx, userID, scenarioID)
	if err != nil {
		return nil, err
	}
	if scenario.CurrentAge > scenario.RetirementAge || scenario.RetirementAge > scenario.LifeExpectancy {
		return nil, errors.Errorf("scenario %d has inconsistent ages: current=%d retirement=%d lifeExpectancy=%d",
			scenario.ID, scenario.CurrentAge, scenario.RetirementAge, scenario.LifeExpectancy)
	}

	summary, loans, err := e.aggregate(ctx, userID)
	if err != nil {
		return nil, err
	}

	matrix := &models.RetirementMatrix{
		Scenario: *scenario,
		Summary:  summary,
		Years:    e.simulate(scenario, summary, loans),
	}

	e.log.WithFields(logrus.Fields{
		"user_id":         userID,
		"scenario_id":     scenario.ID,
		"years":           len(matrix.Years),
		"starting_corpus": summary.InvestableCorpus,
	}).Debug("Retirement matrix built")

	return matrix, nil
}

func (e *Engine) resolveScenario(ctx context.Context, userID int64, scenarioID *int64) (*models.RetirementScenario, error) {
	if scenarioID != nil {
		scenario, err := e.store.FindScenarioByID(ctx, *scenarioID)
		if err != nil {
			return nil, errors.Wrapf(err, "find scenario %d", *scenarioID)
		}
		if scenario == nil {
			return nil, ErrNoScenario
		}
		return scenario, nil
	}
	scenario, err := e.store.FindDefaultScenario(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "find default scenario")
	}
	if scenario == nil {
		return nil, ErrNoScenario
	}
	return scenario, nil
}

// loanState is the mutable per-loan tracking used inside a single simulation
type loanState struct {
	loan    models.Loan
	balance float64
	months  int
	frozen  bool // negative amortization detected, balance held constant
}

// simulate runs the year loop. Before retirement the corpus grows at the
// scenario return rate and receives the year's step-up SIP contributions from
// monthly surplus, net of EMI outflow; active loans amortize twelve months per
// year in lock-step with the age timeline. From retirement age onward the
// corpus funds inflation-adjusted living expenses until it is exhausted or
// life expectancy is reached. The emergency fund never enters the corpus.
func (e *Engine) simulate(sc *models.RetirementScenario, summary models.RetirementSummary, loans []models.Loan) []models.ProjectionYear {
	states := make([]*loanState, 0, len(loans))
	for _, loan := range loans {
		states = append(states, &loanState{loan: loan, balance: loan.OutstandingAmount, months: loan.RemainingMonths})
	}

	// insurance premiums reduce investable surplus but are not a
	// post-retirement withdrawal
	baseSurplus := summary.MonthlyIncome - summary.MonthlyExpenses - summary.MonthlyInsurance
	if baseSurplus < 0 {
		baseSurplus = 0
	}
	annualExpenses := summary.MonthlyExpenses * monthsPerYear
	growth := 1 + sc.CorpusReturnRate/100
	stepUp := 1 + sc.SIPStepUpPercent/100

	corpus := summary.InvestableCorpus
	horizon := sc.LifeExpectancy - sc.CurrentAge
	years := make([]models.ProjectionYear, 0, horizon)

	for elapsed := 1; elapsed <= horizon; elapsed++ {
		age := sc.CurrentAge + elapsed
		emiOutflow, loanBalance := e.amortizeYear(states)

		var cashFlow float64
		if age <= sc.RetirementAge {
			monthly := baseSurplus
			for i := 1; i < elapsed; i++ {
				monthly *= stepUp
			}
			contribution := monthly*monthsPerYear - emiOutflow
			if contribution < 0 {
				contribution = 0
			}
			corpus = corpus*growth + contribution
			cashFlow = contribution
		} else {
			withdrawal := finmath.InflationAdjusted(annualExpenses, sc.InflationRate, float64(elapsed)) + emiOutflow
			corpus = corpus*growth - withdrawal
			cashFlow = -withdrawal
		}

		if corpus <= 0 && age > sc.RetirementAge {
			years = append(years, models.ProjectionYear{Age: age, CorpusValue: 0, CashFlow: cashFlow, LoanBalance: loanBalance})
			break
		}
		years = append(years, models.ProjectionYear{Age: age, CorpusValue: corpus, CashFlow: cashFlow, LoanBalance: loanBalance})
	}

	return years
}

// amortizeYear advances every active loan by twelve months and returns the
// total EMI outflow for the year plus the outstanding balance across loans at
// year end. A loan whose EMI no longer covers interest is flagged once and
// its balance held constant, charging interest-only outflow thereafter.
func (e *Engine) amortizeYear(states []*loanState) (emiOutflow, totalBalance float64) {
	for _, st := range states {
		if st.balance <= 0 || st.months <= 0 {
			continue
		}
		months := st.months
		if months > monthsPerYear {
			months = monthsPerYear
		}

		if st.frozen {
			emiOutflow += st.loan.EMI * float64(months)
			st.months -= months
			totalBalance += st.balance
			continue
		}

		schedule, err := finmath.AmortizationSchedule(st.balance, st.loan.InterestRate, st.loan.EMI, months)
		if err != nil {
			e.log.WithFields(logrus.Fields{
				"loan_id": st.loan.ID,
				"emi":     st.loan.EMI,
				"balance": st.balance,
			}).Warn("Loan EMI does not cover accruing interest, holding balance constant")
			st.frozen = true
			emiOutflow += st.loan.EMI * float64(months)
			st.months -= months
			totalBalance += st.balance
			continue
		}

		for _, entry := range schedule {
			emiOutflow += entry.Interest + entry.PrincipalPaid
		}
		if len(schedule) > 0 {
			st.balance = schedule[len(schedule)-1].Balance
		}
		st.months -= months
		totalBalance += st.balance
	}
	return emiOutflow, totalBalance
}
