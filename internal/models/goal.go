package models

import "time"

// Goal represents a savings goal with a target amount and horizon
type Goal struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Name           string    `json:"name"`
	TargetAmount   float64   `json:"target_amount"`
	CurrentAmount  float64   `json:"current_amount"`
	Years          int       `json:"years"`
	ExpectedReturn float64   `json:"expected_return"` // annual %
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// GoalPlan pairs a goal with the contribution needed to reach it: what the
// current savings grow into over the horizon, and the monthly SIP that closes
// the remaining gap.
type GoalPlan struct {
	Goal               Goal    `json:"goal"`
	ProjectedCurrent   float64 `json:"projected_current"`
	RequiredMonthlySIP float64 `json:"required_monthly_sip"`
}
