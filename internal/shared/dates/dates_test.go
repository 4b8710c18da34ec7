package dates

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	d, err := Parse("2025-02-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	if !d.Equal(want) {
		t.Fatalf("expected %s, got %s", want, d)
	}

	if _, err := Parse("2025-02-01T10:00:00Z"); err == nil {
		t.Fatalf("expected error for timestamp input")
	}
	if _, err := Parse("01-02-2025"); err == nil {
		t.Fatalf("expected error for wrong layout")
	}
}

func TestParseRange(t *testing.T) {
	start, end, err := ParseRange("2025-02-01", "2025-02-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Nights(start, end) != 2 {
		t.Fatalf("expected 2 nights, got %d", Nights(start, end))
	}

	if _, _, err := ParseRange("2025-02-03", "2025-02-03"); err == nil {
		t.Fatalf("expected error for empty range")
	}
	if _, _, err := ParseRange("2025-02-03", "2025-02-01"); err == nil {
		t.Fatalf("expected error for inverted range")
	}
	if _, _, err := ParseRange("bad", "2025-02-01"); err == nil {
		t.Fatalf("expected error for malformed start")
	}
}

func TestNightsAndAddDays(t *testing.T) {
	start := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	if got := Nights(start, AddDays(start, 1)); got != 1 {
		t.Fatalf("expected 1 night, got %d", got)
	}
	if got := Nights(start, AddDays(start, 14)); got != 14 {
		t.Fatalf("expected 14 nights, got %d", got)
	}
	if Format(AddDays(start, 21)) != "2025-07-01" {
		t.Fatalf("expected month rollover, got %s", Format(AddDays(start, 21)))
	}
}
