package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an internal identity that owns financial records.
// Users are normally bound to a WhatsApp phone number observed on the
// transport. Placeholder users carry a synthetic phone (see Virtual) and
// exist only to hold records attributed to a named group member who has
// never sent a message themselves.
type User struct {
	ID        uuid.UUID
	Phone     string
	Name      string // empty when the transport never supplied a display name
	CreatedAt time.Time
}

// DisplayName returns the user's name, falling back to the last four
// digits of the phone number the way the WhatsApp UI abbreviates contacts.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if len(u.Phone) > 4 {
		return u.Phone[len(u.Phone)-4:]
	}
	return u.Phone
}
