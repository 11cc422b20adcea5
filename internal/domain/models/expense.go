package models

import (
	"time"

	"github.com/google/uuid"
)

// Expense is a single spending record. GroupID is nil for personal
// expenses and carries the group chat identity for shared ones.
type Expense struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	GroupID     *string
	Description string
	Amount      float64
	Category    string
	Date        time.Time
	Paid        bool
	CreatedAt   time.Time

	// User is populated by group-scoped reads for per-member attribution.
	User *User
}

// ExpenseFilter narrows expense listings. Zero values mean "no filter";
// a zero Limit means no cap.
type ExpenseFilter struct {
	Category string
	From     time.Time
	To       time.Time
	Limit    int
}

// ExpenseUpdate carries the fields of an edit. Nil pointers leave the
// corresponding column untouched.
type ExpenseUpdate struct {
	Description *string
	Amount      *float64
	Category    *string
	Paid        *bool
}

// Empty reports whether the update would change nothing.
func (u ExpenseUpdate) Empty() bool {
	return u.Description == nil && u.Amount == nil && u.Category == nil && u.Paid == nil
}

// CategoryTotal is one row of a per-category month summary.
type CategoryTotal struct {
	Category string
	Total    float64
}
