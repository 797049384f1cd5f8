// Package report filters, renders, totals and exports sales records.
package report

import (
	"fmt"
	"time"

	"github.com/Veraticus/orderplace/internal/common"
	"github.com/Veraticus/orderplace/internal/model"
	"github.com/shopspring/decimal"
)

// Mode selects the unit of a filter window.
type Mode int

// Filter modes, numbered as in the filter menu.
const (
	ModeDay Mode = iota + 1
	ModeWeek
	ModeMonth
	ModeYear
)

// ParseMode maps a filter menu answer to a mode.
func ParseMode(choice string) (Mode, bool) {
	switch choice {
	case "1":
		return ModeDay, true
	case "2":
		return ModeWeek, true
	case "3":
		return ModeMonth, true
	case "4":
		return ModeYear, true
	default:
		return 0, false
	}
}

// Cap returns the largest bound accepted for the mode.
func (m Mode) Cap() int {
	switch m {
	case ModeDay:
		return 1095
	case ModeWeek:
		return 156
	case ModeMonth:
		return 36
	case ModeYear:
		return 3
	default:
		return 0
	}
}

// Unit returns the plural unit name used in prompts.
func (m Mode) Unit() string {
	switch m {
	case ModeDay:
		return "days"
	case ModeWeek:
		return "weeks"
	case ModeMonth:
		return "months"
	case ModeYear:
		return "years"
	default:
		return "unknown"
	}
}

// Window is a recency filter relative to today.
type Window struct {
	Mode  Mode
	Bound int
}

// NewWindow builds a window. Bounds above the mode's cap are clamped to the
// cap; negative bounds are rejected.
func NewWindow(mode Mode, bound int) (Window, error) {
	if mode.Cap() == 0 {
		return Window{}, common.Validationf("Unknown filter mode %d", int(mode))
	}
	if bound < 0 {
		return Window{}, common.Validationf("Number of %s cannot be negative", mode.Unit())
	}
	return Window{Mode: mode, Bound: min(bound, mode.Cap())}, nil
}

// Includes reports whether a record dated date falls in the window.
//
// Day and week windows compare whole calendar days. Month and year windows
// compare calendar fields only, ignoring the day of month, and accept any
// negative difference: records dated after today pass them.
func (w Window) Includes(today, date time.Time) bool {
	switch w.Mode {
	case ModeDay:
		return daysBetween(today, date) <= w.Bound
	case ModeWeek:
		return daysBetween(today, date) <= w.Bound*7
	case ModeMonth:
		months := (today.Year()-date.Year())*12 + int(today.Month()) - int(date.Month())
		return months < w.Bound
	case ModeYear:
		return today.Year()-date.Year() < w.Bound
	default:
		return false
	}
}

// Apply returns the records inside the window, in their original order.
func (w Window) Apply(records []model.Transaction, today time.Time) ([]model.Transaction, error) {
	var matched []model.Transaction
	for i, rec := range records {
		date, err := rec.ParsedDate(today.Location())
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", common.ErrParse, i+1, err)
		}
		if w.Includes(today, date) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

// Total sums the grand totals of records.
func Total(records []model.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, rec := range records {
		total = total.Add(rec.GrandTotal)
	}
	return total
}

// daysBetween returns the number of calendar days from date to today.
func daysBetween(today, date time.Time) int {
	return int((civilDay(today) - civilDay(date)) / 86400)
}

func civilDay(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix()
}
