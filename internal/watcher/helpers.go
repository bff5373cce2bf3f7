package watcher

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// nowUTCISO returns the current time as UTC ISO-8601 with a trailing Z,
// seconds precision. This is the format the timestamp column carries.
func nowUTCISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05Z")
}

// parseDecimalOrNil parses a sheet cell into a decimal, nil when the cell is
// empty or not a number.
func parseDecimalOrNil(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

// pctChange returns the percent change from one price to another, zero when
// the starting price is zero.
func pctChange(from, to decimal.Decimal) decimal.Decimal {
	if from.IsZero() {
		return decimal.Zero
	}
	return to.Sub(from).Div(from).Mul(hundred)
}
