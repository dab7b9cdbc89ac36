package normalizer

import (
	"time"

	"github.com/ordersync/backend/internal/domain/canonical"
)

// Calendar decomposition of the order date for downstream analytics.
// The fiscal year starts in April; fiscal year N covers Apr N .. Mar N+1.

// DecomposeDate builds the ProcessingDateInfo row for an order date.
// A zero date yields a row of zero values so the entity stays non-null.
func DecomposeDate(orderID string, date time.Time) *canonical.ProcessingDateInfo {
	info := &canonical.ProcessingDateInfo{
		OrderID:   orderID,
		OrderDate: date,
	}
	if date.IsZero() {
		return info
	}

	_, week := date.ISOWeek()
	month := int(date.Month())
	weekday := date.Weekday()

	info.DayOfWeek = int(weekday)
	info.DayName = weekday.String()
	info.WeekOfYear = week
	info.Month = month
	info.Quarter = (month-1)/3 + 1
	info.Year = date.Year()
	info.Season = seasonOf(month)
	info.IsWeekend = weekday == time.Saturday || weekday == time.Sunday

	// Fiscal calendar: April is fiscal month 1
	fiscalMonth := month - 3
	info.FiscalYear = date.Year()
	if fiscalMonth <= 0 {
		fiscalMonth += 12
		info.FiscalYear = date.Year() - 1
	}
	info.FiscalQuarter = (fiscalMonth-1)/3 + 1

	return info
}

func seasonOf(month int) string {
	switch {
	case month >= 3 && month <= 5:
		return "SPRING"
	case month >= 6 && month <= 8:
		return "SUMMER"
	case month >= 9 && month <= 11:
		return "AUTUMN"
	default:
		return "WINTER"
	}
}
