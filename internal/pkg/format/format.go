package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Money renders an amount as dollars with two decimals, e.g. "$49.90" or "-$5.00".
func Money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// Date renders a calendar date as "Friday, March 15, 2024". ISO timestamps are
// reduced to their date part; anything unparsable is returned unchanged.
func Date(s string) string {
	raw := strings.TrimSpace(s)
	if len(raw) >= 10 {
		if t, err := time.Parse("2006-01-02", raw[:10]); err == nil {
			return t.Format("Monday, January 2, 2006")
		}
	}
	return s
}

// Time renders "14:30:00" or "14:30" as "2:30 PM".
func Time(s string) string {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 {
		return s
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return s
	}
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%s %s", display, parts[1], ampm)
}
