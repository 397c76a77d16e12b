package models

import "time"

// RetirementScenario holds the assumptions driving a retirement projection.
// Exactly one scenario per user may be marked default.
type RetirementScenario struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	Name             string    `json:"name"`
	CurrentAge       int       `json:"current_age"`
	RetirementAge    int       `json:"retirement_age"`
	LifeExpectancy   int       `json:"life_expectancy"`
	InflationRate    float64   `json:"inflation_rate"`     // annual %
	CorpusReturnRate float64   `json:"corpus_return_rate"` // annual %
	SIPStepUpPercent float64   `json:"sip_step_up_percent"`
	IsDefault        bool      `json:"is_default"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
