package models

import (
	"time"

	"github.com/google/uuid"
)

// Budget is a monthly spending limit for one category.
type Budget struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Category  string
	Limit     float64
	Month     int
	Year      int
	CreatedAt time.Time
}

// BudgetStatus compares a budget against the month's actual spending.
type BudgetStatus struct {
	Category    string
	Limit       float64
	Spent       float64
	Remaining   float64
	PercentUsed float64
	OverBudget  bool
}
