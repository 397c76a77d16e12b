package models

import "time"

// Income represents a recurring monthly income source
type Income struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Source        string    `json:"source"`
	MonthlyAmount float64   `json:"monthly_amount"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Expense represents a recurring monthly expense
type Expense struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Category      string    `json:"category"`
	MonthlyAmount float64   `json:"monthly_amount"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
