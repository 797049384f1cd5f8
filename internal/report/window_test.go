package report

import (
	"testing"
	"time"

	"github.com/Veraticus/orderplace/internal/common"
	"github.com/Veraticus/orderplace/internal/model"
	"github.com/Veraticus/orderplace/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, time.March, 15, 14, 30, 5, 0, time.Local)

func TestNewWindow_Clamps(t *testing.T) {
	tests := []struct {
		mode Mode
		ask  int
		want int
	}{
		{mode: ModeDay, ask: 5000, want: 1095},
		{mode: ModeDay, ask: 1095, want: 1095},
		{mode: ModeDay, ask: 30, want: 30},
		{mode: ModeWeek, ask: 157, want: 156},
		{mode: ModeMonth, ask: 100, want: 36},
		{mode: ModeYear, ask: 4, want: 3},
		{mode: ModeYear, ask: 0, want: 0},
	}

	for _, tt := range tests {
		w, err := NewWindow(tt.mode, tt.ask)
		require.NoError(t, err)
		assert.Equal(t, tt.want, w.Bound, "%s bound %d", tt.mode.Unit(), tt.ask)
	}
}

func TestNewWindow_Rejects(t *testing.T) {
	_, err := NewWindow(ModeDay, -1)
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = NewWindow(Mode(9), 1)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestParseMode(t *testing.T) {
	for choice, want := range map[string]Mode{"1": ModeDay, "2": ModeWeek, "3": ModeMonth, "4": ModeYear} {
		got, ok := ParseMode(choice)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}

	for _, choice := range []string{"5", "", "day", "0"} {
		_, ok := ParseMode(choice)
		assert.False(t, ok, choice)
	}
}

func TestWindow_Includes(t *testing.T) {
	tests := []struct {
		name   string
		date   time.Time
		mode   Mode
		bound  int
		expect bool
	}{
		{name: "day: today with bound 1", mode: ModeDay, bound: 1, date: testutil.Date(2024, time.March, 15), expect: true},
		{name: "day: today with bound 0", mode: ModeDay, bound: 0, date: testutil.Date(2024, time.March, 15), expect: true},
		{name: "day: yesterday with bound 1", mode: ModeDay, bound: 1, date: testutil.Date(2024, time.March, 14), expect: true},
		{name: "day: two days ago with bound 1", mode: ModeDay, bound: 1, date: testutil.Date(2024, time.March, 13), expect: false},
		{name: "day: across leap day", mode: ModeDay, bound: 15, date: testutil.Date(2024, time.February, 29), expect: true},
		{name: "day: tomorrow passes", mode: ModeDay, bound: 0, date: testutil.Date(2024, time.March, 16), expect: true},
		{name: "week: exactly seven days", mode: ModeWeek, bound: 1, date: testutil.Date(2024, time.March, 8), expect: true},
		{name: "week: eight days", mode: ModeWeek, bound: 1, date: testutil.Date(2024, time.March, 7), expect: false},
		{name: "month: same month", mode: ModeMonth, bound: 1, date: testutil.Date(2024, time.March, 1), expect: true},
		{name: "month: last month with bound 1", mode: ModeMonth, bound: 1, date: testutil.Date(2024, time.February, 10), expect: false},
		{name: "month: last month with bound 2", mode: ModeMonth, bound: 2, date: testutil.Date(2024, time.February, 10), expect: true},
		{name: "month: day of month ignored", mode: ModeMonth, bound: 2, date: testutil.Date(2024, time.February, 1), expect: true},
		{name: "month: across year end", mode: ModeMonth, bound: 3, date: testutil.Date(2023, time.December, 31), expect: false},
		{name: "month: across year end with bound 4", mode: ModeMonth, bound: 4, date: testutil.Date(2023, time.December, 31), expect: true},
		{name: "month: future month passes", mode: ModeMonth, bound: 1, date: testutil.Date(2024, time.May, 1), expect: true},
		{name: "month: future month passes bound 0", mode: ModeMonth, bound: 0, date: testutil.Date(2024, time.April, 1), expect: true},
		{name: "month: current month fails bound 0", mode: ModeMonth, bound: 0, date: testutil.Date(2024, time.March, 15), expect: false},
		{name: "year: same year", mode: ModeYear, bound: 1, date: testutil.Date(2024, time.January, 1), expect: true},
		{name: "year: last year with bound 1", mode: ModeYear, bound: 1, date: testutil.Date(2023, time.December, 31), expect: false},
		{name: "year: last year with bound 2", mode: ModeYear, bound: 2, date: testutil.Date(2023, time.January, 1), expect: true},
		{name: "year: future year passes", mode: ModeYear, bound: 1, date: testutil.Date(2026, time.June, 1), expect: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewWindow(tt.mode, tt.bound)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, w.Includes(today, tt.date))
		})
	}
}

func TestWindow_Apply_PreservesOrder(t *testing.T) {
	tea := testutil.Line{Name: "Tea", Price: "10", Qty: 1}
	records := []model.Transaction{
		testutil.Record("2024-03-10", "10:00:00", tea),
		testutil.Record("2023-01-01", "10:00:00", tea),
		testutil.Record("2024-03-15", "09:00:00", tea),
		testutil.Record("2024-03-01", "08:00:00", tea),
	}

	w, err := NewWindow(ModeDay, 14)
	require.NoError(t, err)

	matched, err := w.Apply(records, today)
	require.NoError(t, err)

	require.Len(t, matched, 3)
	assert.Equal(t, "2024-03-10", matched[0].Date)
	assert.Equal(t, "2024-03-15", matched[1].Date)
	assert.Equal(t, "2024-03-01", matched[2].Date)
}

func TestWindow_Apply_ClampedBoundMatchesCap(t *testing.T) {
	tea := testutil.Line{Name: "Tea", Price: "10", Qty: 1}
	records := []model.Transaction{
		testutil.Record("2021-03-16", "10:00:00", tea), // 1095 days before today
		testutil.Record("2021-03-15", "10:00:00", tea), // 1096 days before today
		testutil.Record("2010-01-01", "10:00:00", tea),
	}

	capped, err := NewWindow(ModeDay, 1095)
	require.NoError(t, err)
	oversized, err := NewWindow(ModeDay, 5000)
	require.NoError(t, err)

	want, err := capped.Apply(records, today)
	require.NoError(t, err)
	got, err := oversized.Apply(records, today)
	require.NoError(t, err)

	require.Len(t, want, 1)
	testutil.AssertRecordsEqual(t, want, got)
}

func TestWindow_Apply_MalformedDate(t *testing.T) {
	records := []model.Transaction{{Date: "15/03/2024", Time: "10:00:00"}}

	w, err := NewWindow(ModeYear, 3)
	require.NoError(t, err)

	_, err = w.Apply(records, today)
	assert.ErrorIs(t, err, common.ErrParse)
}

func TestTotal(t *testing.T) {
	records := []model.Transaction{
		testutil.Record("2024-03-15", "10:00:00", testutil.Line{Name: "Tea", Price: "10", Qty: 3}),
		testutil.Record("2024-03-15", "11:00:00", testutil.Line{Name: "Samosa", Price: "12.25", Qty: 2}),
	}

	assert.Equal(t, "54.5", Total(records).String())
	assert.True(t, Total(nil).IsZero())
}
