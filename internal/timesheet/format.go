package timesheet

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CellDash is what an empty or zero day cell renders as. A zero placeholder
// entry is tolerated in the data but displays as absent, never as "0".
const CellDash = "–"

// FormatCell renders a per-cell value: dash when zero, otherwise fixed
// two decimals with the locale comma separator.
func FormatCell(hours decimal.Decimal) string {
	if hours.IsZero() {
		return CellDash
	}
	return FormatTotal(hours)
}

// FormatTotal renders a total-row value. Unlike cells, totals always show
// "0,00" when zero; the cell/total asymmetry is intentional.
func FormatTotal(hours decimal.Decimal) string {
	return strings.Replace(hours.StringFixed(2), ".", ",", 1)
}
