package models

import (
	"time"

	"github.com/google/uuid"
)

// Investment types accepted by add_investment.
const (
	InvestmentStocks      = "stocks"
	InvestmentCrypto      = "crypto"
	InvestmentFixedIncome = "fixed_income"
	InvestmentFunds       = "funds"
	InvestmentOther       = "other"
)

// InvestmentTypes lists the valid investment type values in schema order.
var InvestmentTypes = []string{
	InvestmentStocks,
	InvestmentCrypto,
	InvestmentFixedIncome,
	InvestmentFunds,
	InvestmentOther,
}

// Investment is a tracked asset position. CurrentValue defaults to the
// invested amount until updated.
type Investment struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Name         string
	Type         string
	Amount       float64
	CurrentValue float64
	PurchaseDate time.Time
	CreatedAt    time.Time
}

// InvestmentSummary aggregates a user's positions.
type InvestmentSummary struct {
	TotalInvested     float64
	TotalCurrentValue float64
	TotalReturn       float64
	ReturnPercentage  float64
}
