package coupon

import (
	"fmt"
	"strings"

	"github.com/iskcon-mangaluru/seva-coupon-system/internal/models"
)

// RejectReason classifies why an admission was refused.
type RejectReason int

const (
	ReasonNone RejectReason = iota
	ReasonIncompleteName
	ReasonDuplicateForSeva
)

// Admission is the outcome of the identity gate for one submission.
// Either Accepted is true and NormalizedName holds the name to store, or
// Reason and Message describe the refusal.
type Admission struct {
	Accepted       bool
	NormalizedName string
	Reason         RejectReason
	Message        string
}

const incompleteNameMessage = "Please provide a full name (first name and last name) for better identification. Coupon generation halted."

// Admit decides whether a coupon may be issued for the given name and seva
// against the coupons currently visible. Gates run in order and the first
// failing gate wins; the function has no side effects.
func Admit(name string, seva models.Seva, existing []models.Coupon) Admission {
	// Gate 1: the name needs at least a first and a last name. Purely
	// syntactic, never consults existing.
	if len(strings.Fields(name)) < 2 {
		return Admission{
			Reason:  ReasonIncompleteName,
			Message: incompleteNameMessage,
		}
	}

	normalized := NormalizeName(name)

	// Gate 2: one coupon per name per seva.
	for _, c := range existing {
		if strings.ToUpper(c.Name) == normalized && c.Seva == seva {
			return Admission{
				Reason: ReasonDuplicateForSeva,
				Message: fmt.Sprintf(
					"A coupon for %q and %q has already been generated. Please select a different seva or contact the administrator if you need assistance.",
					normalized, seva.Label()),
			}
		}
	}

	return Admission{
		Accepted:       true,
		NormalizedName: normalized,
	}
}

// NormalizeName trims the name, collapses internal whitespace runs to a
// single space and uppercases the result. This is the stored form.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.Join(strings.Fields(name), " "))
}
