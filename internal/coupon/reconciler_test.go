package coupon

import (
	"testing"

	"github.com/iskcon-mangaluru/seva-coupon-system/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestAdmit_IncompleteName(t *testing.T) {
	existing := []models.Coupon{
		{Code: "100000000001", Name: "KRISHNA DAS", Seva: models.SevaAbhishekam},
	}

	tests := []struct {
		name  string
		input string
	}{
		{name: "SingleToken", input: "Krishna"},
		{name: "Empty", input: ""},
		{name: "OnlySpaces", input: "    "},
		{name: "SingleTokenPadded", input: "  Krishna  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The gate is syntactic and must not depend on existing coupons.
			for _, coupons := range [][]models.Coupon{nil, existing} {
				admission := Admit(tt.input, models.SevaAbhishekam, coupons)
				assert.False(t, admission.Accepted)
				assert.Equal(t, ReasonIncompleteName, admission.Reason)
				assert.Contains(t, admission.Message, "full name")
			}
		})
	}
}

func TestAdmit_Accepted(t *testing.T) {
	admission := Admit("Krishna Das", models.SevaAbhishekam, nil)

	assert.True(t, admission.Accepted)
	assert.Equal(t, "KRISHNA DAS", admission.NormalizedName)
	assert.Equal(t, ReasonNone, admission.Reason)
}

func TestAdmit_NormalizesWhitespaceAndCase(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Lowercase", input: "krishna das", expected: "KRISHNA DAS"},
		{name: "Padded", input: "  Krishna Das  ", expected: "KRISHNA DAS"},
		{name: "InnerRuns", input: "Krishna   Das", expected: "KRISHNA DAS"},
		{name: "ThreeTokens", input: " gopal  krishna das ", expected: "GOPAL KRISHNA DAS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			admission := Admit(tt.input, models.SevaJhulan, nil)
			assert.True(t, admission.Accepted)
			assert.Equal(t, tt.expected, admission.NormalizedName)
		})
	}
}

func TestAdmit_DuplicateForSeva(t *testing.T) {
	existing := []models.Coupon{
		{Code: "100000000001", Name: "KRISHNA DAS", Seva: models.SevaAbhishekam},
	}

	admission := Admit("Krishna Das", models.SevaAbhishekam, existing)

	assert.False(t, admission.Accepted)
	assert.Equal(t, ReasonDuplicateForSeva, admission.Reason)
	assert.Contains(t, admission.Message, "KRISHNA DAS")
	assert.Contains(t, admission.Message, "ABHISHEKAM SEVA", "Message must carry the seva label")
}

func TestAdmit_DuplicateCheckIsCaseInsensitive(t *testing.T) {
	existing := []models.Coupon{
		{Code: "100000000001", Name: "Krishna Das", Seva: models.SevaAbhishekam},
	}

	admission := Admit("  KRISHNA   DAS ", models.SevaAbhishekam, existing)
	assert.False(t, admission.Accepted)
	assert.Equal(t, ReasonDuplicateForSeva, admission.Reason)
}

func TestAdmit_SameNameDifferentSeva(t *testing.T) {
	existing := []models.Coupon{
		{Code: "100000000001", Name: "KRISHNA DAS", Seva: models.SevaAbhishekam},
	}

	admission := Admit("Krishna Das", models.SevaMahaArathi, existing)

	assert.True(t, admission.Accepted, "The same visitor may hold coupons for distinct sevas")
	assert.Equal(t, "KRISHNA DAS", admission.NormalizedName)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "KRISHNA DAS", NormalizeName(" krishna   das "))
	assert.Equal(t, "", NormalizeName("   "))
}
