package models

import "time"

// InvestmentType is the closed enumeration of supported holding categories.
type InvestmentType string

const (
	TypeFD         InvestmentType = "FD"
	TypeRD         InvestmentType = "RD"
	TypePPF        InvestmentType = "PPF"
	TypeEPF        InvestmentType = "EPF"
	TypeMutualFund InvestmentType = "MUTUAL_FUND"
	TypeNPS        InvestmentType = "NPS"
	TypeStock      InvestmentType = "STOCK"
	TypeCash       InvestmentType = "CASH"
	TypeGold       InvestmentType = "GOLD"
	TypeRealEstate InvestmentType = "REAL_ESTATE"
	TypeCrypto     InvestmentType = "CRYPTO"
)

// AllInvestmentTypes lists every category in a fixed order, used when
// aggregating a user's holdings into the retirement summary.
var AllInvestmentTypes = []InvestmentType{
	TypeFD, TypeRD, TypePPF, TypeEPF, TypeMutualFund, TypeNPS,
	TypeStock, TypeCash, TypeGold, TypeRealEstate, TypeCrypto,
}

// Valid reports whether t is one of the enumerated categories.
func (t InvestmentType) Valid() bool {
	for _, known := range AllInvestmentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// CanBeEmergencyFund reports whether the emergency-fund flag is meaningful for
// this category. Only deposit-type holdings (FD/RD) carry emergency semantics.
func (t InvestmentType) CanBeEmergencyFund() bool {
	return t == TypeFD || t == TypeRD
}

// Investment represents a single holding owned by a user
type Investment struct {
	ID              int64          `json:"id"`
	UserID          int64          `json:"user_id"`
	Name            string         `json:"name"`
	Type            InvestmentType `json:"type"`
	InvestedAmount  float64        `json:"invested_amount"`
	CurrentValue    float64        `json:"current_value"`
	IsEmergencyFund bool           `json:"is_emergency_fund"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
