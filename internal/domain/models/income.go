package models

import (
	"time"

	"github.com/google/uuid"
)

// Income is a single earning record, categorized by source rather than
// category. GroupID mirrors Expense.GroupID.
type Income struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	GroupID     *string
	Description string
	Amount      float64
	Source      string
	Date        time.Time
	CreatedAt   time.Time

	User *User
}

// IncomeFilter narrows income listings.
type IncomeFilter struct {
	Source string
	From   time.Time
	To     time.Time
	Limit  int
}

// IncomeUpdate carries the fields of an edit. Nil pointers leave the
// corresponding column untouched.
type IncomeUpdate struct {
	Description *string
	Amount      *float64
	Source      *string
}

// Empty reports whether the update would change nothing.
func (u IncomeUpdate) Empty() bool {
	return u.Description == nil && u.Amount == nil && u.Source == nil
}

// SourceTotal is one row of a per-source month summary.
type SourceTotal struct {
	Source string
	Total  float64
}
