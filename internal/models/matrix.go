package models

// RetirementSummary is the point-in-time aggregation of a user's holdings and
// obligations that seeds the projection. Emergency-tagged FD/RD value is
// reported once under EmergencyFund and excluded from every category balance
// and from InvestableCorpus.
type RetirementSummary struct {
	StartingBalances map[InvestmentType]float64 `json:"starting_balances"`
	EmergencyFund    float64                    `json:"emergency_fund"`
	InvestableCorpus float64                    `json:"investable_corpus"`
	MonthlyIncome    float64                    `json:"monthly_income"`
	MonthlyExpenses  float64                    `json:"monthly_expenses"`
	MonthlyInsurance float64                    `json:"monthly_insurance"`
	MonthlyEMI       float64                    `json:"monthly_emi"`
	OutstandingDebt  float64                    `json:"outstanding_debt"`
	SkippedRecords   int                        `json:"skipped_records,omitempty"`
}

// ProjectionYear is one row of the year-by-year retirement projection.
// CashFlow is positive for contributions into the corpus and negative for
// withdrawals out of it.
type ProjectionYear struct {
	Age         int     `json:"age"`
	CorpusValue float64 `json:"corpus_value"`
	CashFlow    float64 `json:"cash_flow"`
	LoanBalance float64 `json:"loan_balance"`
}

// RetirementMatrix is the projection output: a summary block plus the
// year-indexed corpus sequence in increasing age order. Built fresh on every
// request and never mutated afterwards.
type RetirementMatrix struct {
	Scenario RetirementScenario `json:"scenario"`
	Summary  RetirementSummary  `json:"summary"`
	Years    []ProjectionYear   `json:"years"`
}

// CorpusExhausted reports whether the projected corpus ran out before the
// scenario's life expectancy.
func (m *RetirementMatrix) CorpusExhausted() bool {
	n := len(m.Years)
	return n > 0 && m.Years[n-1].Age < m.Scenario.LifeExpectancy && m.Years[n-1].CorpusValue <= 0
}
