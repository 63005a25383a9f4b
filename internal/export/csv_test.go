package export

import (
	"strings"
	"testing"

	"github.com/iskcon-mangaluru/seva-coupon-system/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestFormatCSV(t *testing.T) {
	coupons := []models.Coupon{
		{Code: "123456789012", Name: "RAVI KUMAR", Seva: models.SevaAbhishekam, IssuedAt: "2026-08-30", IsActive: true},
		{Code: "987654321098", Name: "SITA DEVI", Seva: models.SevaJhulan, IssuedAt: "2026-08-31", IsActive: false},
	}

	got := FormatCSV(coupons)
	lines := strings.Split(got, "\n")

	assert.Equal(t, []string{
		"code,name,seva,memberSince,isActive",
		`"'123456789012","RAVI KUMAR","1","2026-08-30","true"`,
		`"'987654321098","SITA DEVI","3","2026-08-31","false"`,
	}, lines)
}

func TestFormatCSV_EmptyCollection(t *testing.T) {
	assert.Equal(t, "code,name,seva,memberSince,isActive", FormatCSV(nil))
}

func TestFormatCSV_EmptyCells(t *testing.T) {
	coupons := []models.Coupon{{Code: "123456789012"}}

	lines := strings.Split(FormatCSV(coupons), "\n")
	assert.Equal(t, `"'123456789012","","","","false"`, lines[1])
}

func TestFormatCSV_QuotesEscaped(t *testing.T) {
	coupons := []models.Coupon{
		{Code: "123456789012", Name: `RAVI "RK" KUMAR`, Seva: models.SevaAbhishekam, IssuedAt: "2026-08-30", IsActive: true},
	}

	lines := strings.Split(FormatCSV(coupons), "\n")
	assert.Equal(t, `"'123456789012","RAVI ""RK"" KUMAR","1","2026-08-30","true"`, lines[1])
}
