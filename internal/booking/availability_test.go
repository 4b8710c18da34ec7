package booking

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2025, 2, d, 0, 0, 0, 0, time.UTC)
}

func TestFoldUsageEmptyLedger(t *testing.T) {
	days := foldUsage(day(1), day(3), 10, nil)
	if len(days) != 2 {
		t.Fatalf("expected 2 day records, got %d", len(days))
	}
	for _, d := range days {
		if d.Used != 0 || d.Remaining != 10 {
			t.Fatalf("empty ledger: got used=%d remaining=%d on %s", d.Used, d.Remaining, d.Day)
		}
	}
}

func TestFoldUsageSingleDayStay(t *testing.T) {
	days := foldUsage(day(1), day(2), 5, []Interval{{Start: day(1), End: day(2), Qty: 3}})
	if len(days) != 1 {
		t.Fatalf("single-day stay must produce exactly one record, got %d", len(days))
	}
	if days[0].Used != 3 || days[0].Remaining != 2 {
		t.Fatalf("got used=%d remaining=%d", days[0].Used, days[0].Remaining)
	}
}

func TestFoldUsageHalfOpenBounds(t *testing.T) {
	// interval [1,3) must not touch day 3
	days := foldUsage(day(1), day(4), 10, []Interval{{Start: day(1), End: day(3), Qty: 4}})
	want := []int{4, 4, 0}
	for i, d := range days {
		if d.Used != want[i] {
			t.Fatalf("day %d: got used=%d, want %d", i+1, d.Used, want[i])
		}
	}
}

func TestFoldUsageSumsOverlaps(t *testing.T) {
	intervals := []Interval{
		{Start: day(1), End: day(3), Qty: 4},
		{Start: day(2), End: day(4), Qty: 3},
	}
	days := foldUsage(day(1), day(4), 6, intervals)
	wantUsed := []int{4, 7, 3}
	wantRemaining := []int{2, -1, 3}
	for i, d := range days {
		if d.Used != wantUsed[i] || d.Remaining != wantRemaining[i] {
			t.Fatalf("day %d: got used=%d remaining=%d", i+1, d.Used, d.Remaining)
		}
	}
}

func TestFirstViolationReportsFirstDayOnly(t *testing.T) {
	days := []DayUsage{
		{Day: day(1), Used: 2, Remaining: 8},
		{Day: day(2), Used: 9, Remaining: 1},
		{Day: day(3), Used: 10, Remaining: 0},
	}
	v := firstViolation(days, 2)
	if v == nil {
		t.Fatalf("expected a violation")
	}
	if !v.Day.Equal(day(2)) || v.Remaining != 1 {
		t.Fatalf("got day=%s remaining=%d", v.Day, v.Remaining)
	}

	if v := firstViolation(days[:1], 2); v != nil {
		t.Fatalf("unexpected violation on %s", v.Day)
	}
}

func TestAttachmentWindowAnchorsAtBookingStart(t *testing.T) {
	// 1-night rental on a 2-night stay consumes stock on the first night only
	window := attachmentWindow(day(1), 1, 2)
	days := foldUsage(day(1), day(3), 5, []Interval{window})
	if days[0].Remaining != 3 {
		t.Fatalf("first night: got remaining=%d, want 3", days[0].Remaining)
	}
	if days[1].Remaining != 5 {
		t.Fatalf("second night: got remaining=%d, want 5", days[1].Remaining)
	}
}
