package normalizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDecomposeDate(t *testing.T) {
	// Saturday 2026-08-15 in UTC+7
	date := time.Date(2026, 8, 15, 10, 30, 0, 0, indochinaZone)
	info := DecomposeDate("SN1", date)

	assert.Equal(t, "SN1", info.OrderID)
	assert.Equal(t, int(time.Saturday), info.DayOfWeek)
	assert.Equal(t, "Saturday", info.DayName)
	assert.Equal(t, 8, info.Month)
	assert.Equal(t, 3, info.Quarter)
	assert.Equal(t, 2026, info.Year)
	assert.Equal(t, "SUMMER", info.Season)
	assert.True(t, info.IsWeekend)
}

func TestDecomposeDate_FiscalCalendar(t *testing.T) {
	tests := []struct {
		date        time.Time
		wantFQ      int
		wantFY      int
	}{
		{time.Date(2026, 4, 1, 0, 0, 0, 0, indochinaZone), 1, 2026},  // fiscal year start
		{time.Date(2026, 8, 15, 0, 0, 0, 0, indochinaZone), 2, 2026},
		{time.Date(2026, 12, 31, 0, 0, 0, 0, indochinaZone), 3, 2026},
		{time.Date(2026, 3, 31, 0, 0, 0, 0, indochinaZone), 4, 2025}, // fiscal year end
		{time.Date(2026, 1, 10, 0, 0, 0, 0, indochinaZone), 4, 2025},
	}
	for _, tt := range tests {
		info := DecomposeDate("SN1", tt.date)
		assert.Equal(t, tt.wantFQ, info.FiscalQuarter, "date %s", tt.date)
		assert.Equal(t, tt.wantFY, info.FiscalYear, "date %s", tt.date)
	}
}

func TestDecomposeDate_ISOWeekBoundary(t *testing.T) {
	// 2027-01-01 is a Friday belonging to ISO week 53 of 2026
	info := DecomposeDate("SN1", time.Date(2027, 1, 1, 0, 0, 0, 0, indochinaZone))
	assert.Equal(t, 53, info.WeekOfYear)
	assert.Equal(t, 2027, info.Year)
}

func TestDecomposeDate_ZeroDate(t *testing.T) {
	info := DecomposeDate("SN1", time.Time{})

	assert.Equal(t, "SN1", info.OrderID)
	assert.True(t, info.OrderDate.IsZero())
	assert.Zero(t, info.Month)
	assert.Zero(t, info.Quarter)
	assert.Zero(t, info.FiscalYear)
	assert.Empty(t, info.Season)
	assert.False(t, info.IsWeekend)
}

func TestSeasonOf(t *testing.T) {
	assert.Equal(t, "WINTER", seasonOf(1))
	assert.Equal(t, "SPRING", seasonOf(3))
	assert.Equal(t, "SUMMER", seasonOf(6))
	assert.Equal(t, "AUTUMN", seasonOf(11))
	assert.Equal(t, "WINTER", seasonOf(12))
}
