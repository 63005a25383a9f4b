package coupon

import (
	"regexp"
	"testing"

	"github.com/iskcon-mangaluru/seva-coupon-system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var twelveDigits = regexp.MustCompile(`^[1-9][0-9]{11}$`)

func TestAllocator_TwelveDigitCodes(t *testing.T) {
	allocator, err := NewAllocator()
	require.NoError(t, err, "Failed to create allocator")

	var existing []models.Coupon
	for i := 0; i < 1000; i++ {
		code := allocator.Allocate(existing)
		assert.Regexp(t, twelveDigits, code, "Code must be exactly 12 decimal digits")
		assert.False(t, CodeExists(code, existing), "Code must not collide with existing codes")
		existing = append(existing, models.Coupon{Code: code})
	}
}

func TestAllocator_EmptyCollection(t *testing.T) {
	allocator, err := NewAllocator()
	require.NoError(t, err)

	code := allocator.Allocate(nil)
	assert.Regexp(t, twelveDigits, code)
}

func TestCodeExists(t *testing.T) {
	coupons := []models.Coupon{
		{Code: "100000000001"},
		{Code: "999999999999"},
	}

	tests := []struct {
		name     string
		code     string
		expected bool
	}{
		{name: "PresentFirst", code: "100000000001", expected: true},
		{name: "PresentLast", code: "999999999999", expected: true},
		{name: "Absent", code: "123456789012", expected: false},
		{name: "EmptyCode", code: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CodeExists(tt.code, coupons))
		})
	}
}
