package coupon

import (
	"testing"

	"github.com/iskcon-mangaluru/seva-coupon-system/internal/models"
	"github.com/stretchr/testify/assert"
)

func named(names ...string) []models.Coupon {
	coupons := make([]models.Coupon, 0, len(names))
	for _, n := range names {
		coupons = append(coupons, models.Coupon{Name: n})
	}
	return coupons
}

func TestLegacyUniqueName(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		existing []models.Coupon
		expected string
	}{
		{
			name:     "FirstNameFree",
			fullName: "John Doe",
			existing: nil,
			expected: "John",
		},
		{
			name:     "FirstInitialOfSecondToken",
			fullName: "John Smith",
			existing: named("John"),
			expected: "John S",
		},
		{
			name:     "DifferentInitialStillFree",
			fullName: "John Wilson",
			existing: named("John", "John S"),
			expected: "John W",
		},
		{
			name:     "ExtendsInitialsAcrossTokens",
			fullName: "John Michael Wilson",
			existing: named("John", "John M"),
			expected: "John MW",
		},
		{
			name:     "NumericSuffixWhenInitialsExhausted",
			fullName: "John Doe",
			existing: named("John", "John D"),
			expected: "John D1",
		},
		{
			name:     "NumericSuffixIncrements",
			fullName: "John Doe",
			existing: named("John", "John D", "John D1"),
			expected: "John D2",
		},
		{
			name:     "CaseInsensitiveMatch",
			fullName: "John Smith",
			existing: named("JOHN"),
			expected: "John S",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LegacyUniqueName(tt.fullName, tt.existing))
		})
	}
}

func TestLegacyCode(t *testing.T) {
	// 'R'+'a'+'m' = 82+97+109 = 288
	assert.Equal(t, "COUPON288", LegacyCode("Ram Das", nil))

	existing := []models.Coupon{{Code: "COUPON288"}}
	assert.Equal(t, "COUPON288_1", LegacyCode("Ram Das", existing))

	existing = append(existing, models.Coupon{Code: "COUPON288_1"})
	assert.Equal(t, "COUPON288_2", LegacyCode("Ram Das", existing))
}

func TestFirstName(t *testing.T) {
	assert.Equal(t, "John", FirstName("  John Doe "))
	assert.Equal(t, "", FirstName("   "))
}
