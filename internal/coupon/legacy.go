package coupon

import (
	"fmt"
	"strings"

	"github.com/iskcon-mangaluru/seva-coupon-system/internal/models"
)

// Legacy issuance scheme, superseded by seva-scoped uniqueness. Kept only
// for compatibility with historically issued coupons and enabled through
// the legacy_naming configuration flag; never part of the main Admit path.

const legacyCodePrefix = "COUPON"

// LegacyCode derives a deterministic code from the character-code sum of
// the first name, appending a numeric suffix until the candidate is free.
// Guessable and collision-prone across homonyms; do not use for new
// issuance.
func LegacyCode(fullName string, existing []models.Coupon) string {
	sum := 0
	for _, r := range FirstName(fullName) {
		sum += int(r)
	}
	base := fmt.Sprintf("%s%d", legacyCodePrefix, sum)

	candidate := base
	for n := 1; CodeExists(candidate, existing); n++ {
		candidate = fmt.Sprintf("%s_%d", base, n)
	}
	return candidate
}

// FirstName returns the first whitespace-separated token of the name.
func FirstName(fullName string) string {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

// legacyInitials returns the next initials string after used, taking one
// more uppercase initial from the tokens following the first name.
func legacyInitials(fullName string, used string) string {
	parts := strings.Fields(fullName)
	if len(parts) <= 1 {
		return ""
	}

	initials := firstInitial(parts[1])
	if len(used) > 0 {
		next := 1 + len(used)
		if next < len(parts) {
			initials = used + firstInitial(parts[next])
		}
	}
	return initials
}

func firstInitial(token string) string {
	for _, r := range token {
		return strings.ToUpper(string(r))
	}
	return ""
}

// legacyNameTaken reports whether "first name + initials" is already used
// as a display name, case-insensitively.
func legacyNameTaken(firstName, initials string, coupons []models.Coupon) bool {
	search := firstName
	if initials != "" {
		search = firstName + " " + initials
	}
	for _, c := range coupons {
		if strings.EqualFold(c.Name, search) {
			return true
		}
	}
	return false
}

// LegacyUniqueName disambiguates same-named visitors by appending initials
// of subsequent name tokens, then numeric suffixes once initials run out.
func LegacyUniqueName(fullName string, existing []models.Coupon) string {
	firstName := FirstName(fullName)

	if !legacyNameTaken(firstName, "", existing) {
		return firstName
	}

	initials := legacyInitials(fullName, "")
	if initials != "" && !legacyNameTaken(firstName, initials, existing) {
		return firstName + " " + initials
	}

	used := initials
	for attempt := 1; attempt < 10; attempt++ {
		next := legacyInitials(fullName, used)
		if next == "" || next == used {
			break
		}
		used = next
		if !legacyNameTaken(firstName, used, existing) {
			return firstName + " " + used
		}
	}

	if used == "" {
		used = "A"
	}
	counter := 1
	for legacyNameTaken(firstName, fmt.Sprintf("%s%d", used, counter), existing) {
		counter++
	}
	return fmt.Sprintf("%s %s%d", firstName, used, counter)
}
