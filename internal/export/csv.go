package export

import (
	"strings"

	"github.com/iskcon-mangaluru/seva-coupon-system/internal/models"
)

var csvHeaders = []string{"code", "name", "seva", "memberSince", "isActive"}

// FormatCSV renders the collection as CSV text. Every non-empty cell is
// quoted, and the code column additionally carries a leading apostrophe so
// spreadsheet software treats the 12-digit value as text instead of
// collapsing it to scientific notation.
func FormatCSV(coupons []models.Coupon) string {
	var b strings.Builder
	b.WriteString(strings.Join(csvHeaders, ","))

	for _, c := range coupons {
		b.WriteByte('\n')
		cells := []string{
			codeCell(c.Code),
			cell(c.Name),
			cell(string(c.Seva)),
			cell(c.IssuedAt),
			cell(boolString(c.IsActive)),
		}
		b.WriteString(strings.Join(cells, ","))
	}
	return b.String()
}

func codeCell(code string) string {
	return `"'` + strings.ReplaceAll(code, `"`, `""`) + `"`
}

func cell(value string) string {
	if value == "" {
		return `""`
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

func boolString(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
