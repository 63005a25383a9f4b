package models

import (
	"time"

	"github.com/google/uuid"
)

// Seva is a temple service category. The wire format uses the numeric
// codes the spreadsheet backend already stores.
type Seva string

const (
	SevaAbhishekam Seva = "1"
	SevaMahaArathi Seva = "2"
	SevaJhulan     Seva = "3"
)

var sevaLabels = map[Seva]string{
	SevaAbhishekam: "ABHISHEKAM SEVA",
	SevaMahaArathi: "MAHA ARATHI SEVA",
	SevaJhulan:     "JHULAN SEVA",
}

// Label returns the human-readable seva name. Unknown codes render as
// themselves so historical records still display.
func (s Seva) Label() string {
	if label, ok := sevaLabels[s]; ok {
		return label
	}
	return string(s)
}

// Valid reports whether s is one of the known seva categories.
func (s Seva) Valid() bool {
	_, ok := sevaLabels[s]
	return ok
}

// AllSevas returns the known categories in catalogue order.
func AllSevas() []Seva {
	return []Seva{SevaAbhishekam, SevaMahaArathi, SevaJhulan}
}

// Coupon is the unit of issuance. JSON field names match the spreadsheet
// backend ("memberSince" is the issue date, a calendar date string).
type Coupon struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Seva     Seva   `json:"seva"`
	IssuedAt string `json:"memberSince"`
	IsActive bool   `json:"isActive"`
}

// IssueDateFormat is the calendar-date layout stored in IssuedAt.
const IssueDateFormat = "2006-01-02"

// Today returns the current date in the coupon issue-date layout.
func Today() string {
	return time.Now().Format(IssueDateFormat)
}

// Session is the cached login blob for the current device. It carries no
// credentials; the signed token is the proof of authentication.
type Session struct {
	Id        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Issued    time.Time `json:"issued"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry (lazy check,
// evaluated on read).
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
