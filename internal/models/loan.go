package models

import "time"

// Loan represents an amortizing loan in the system
type Loan struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id"`
	Name              string    `json:"name"`
	OriginalAmount    float64   `json:"original_amount"`
	OutstandingAmount float64   `json:"outstanding_amount"`
	InterestRate      float64   `json:"interest_rate"` // annual %, nominal
	EMI               float64   `json:"emi"`
	TenureMonths      int       `json:"tenure_months"`
	RemainingMonths   int       `json:"remaining_months"`
	StartDate         time.Time `json:"start_date"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Closed reports whether the loan is fully amortized.
func (l *Loan) Closed() bool {
	return l.RemainingMonths <= 0 || l.OutstandingAmount <= 0
}
