package models

import "time"

// Insurance represents an insurance policy held by a user
type Insurance struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	PolicyType    string    `json:"policy_type"` // TERM, HEALTH, VEHICLE, ...
	CoverAmount   float64   `json:"cover_amount"`
	AnnualPremium float64   `json:"annual_premium"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
