package booking

import (
	"time"

	"github.com/faazahm/backend-camping/internal/shared/dates"
)

// Interval is one consuming record: Qty units held over the half-open
// [Start, End) day range.
type Interval struct {
	Start time.Time
	End   time.Time
	Qty   int
}

// DayUsage is the folded usage for one calendar day.
type DayUsage struct {
	Day       time.Time
	Used      int
	Remaining int
}

// foldUsage enumerates each day of [start, end) and sums the quantity of
// every interval containing that day. Remaining can go negative when a
// resource's capacity was lowered after admissions.
func foldUsage(start, end time.Time, capacity int, intervals []Interval) []DayUsage {
	var days []DayUsage
	for day := start; day.Before(end); day = dates.AddDays(day, 1) {
		used := 0
		for _, iv := range intervals {
			if !day.Before(iv.Start) && day.Before(iv.End) {
				used += iv.Qty
			}
		}
		days = append(days, DayUsage{Day: day, Used: used, Remaining: capacity - used})
	}
	return days
}

// firstViolation returns the first day on which admitting qty more units
// would exceed capacity, or nil when every day fits. Callers report exactly
// this day; later violations in the range are not scanned for.
func firstViolation(days []DayUsage, qty int) *DayUsage {
	for i := range days {
		if qty > days[i].Remaining {
			return &days[i]
		}
	}
	return nil
}

// attachmentWindow is an attachment's rental window: anchored at the owning
// booking's start and spanning nights days, regardless of how long the
// booking itself runs.
func attachmentWindow(bookingStart time.Time, nights, qty int) Interval {
	return Interval{Start: bookingStart, End: dates.AddDays(bookingStart, nights), Qty: qty}
}
