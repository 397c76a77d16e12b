package models

// AmortizationEntry is one month of a loan's repayment schedule
type AmortizationEntry struct {
	Month         int     `json:"month"`
	Interest      float64 `json:"interest"`
	PrincipalPaid float64 `json:"principal_paid"`
	Balance       float64 `json:"balance"`
}
