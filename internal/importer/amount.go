package importer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseARSAmount reads an Argentine-formatted amount: "1.234,56", "$ 350.000" or "-588,74".
// A value without a comma and with a single dot followed by one or two digits is read as a
// plain decimal ("1234.5"), which is how spreadsheets export unformatted cells.
func parseARSAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	clean = strings.ReplaceAll(clean, " ", "")

	if !strings.Contains(clean, ",") && isPlainDecimal(clean) {
		return decimal.NewFromString(clean)
	}

	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	return decimal.NewFromString(clean)
}

func isPlainDecimal(s string) bool {
	i := strings.LastIndex(s, ".")
	if i < 0 || strings.Count(s, ".") != 1 {
		return false
	}

	decimals := len(s) - i - 1

	return decimals == 1 || decimals == 2
}
