package booking

import (
	"context"
	"sort"
	"time"

	"github.com/faazahm/backend-camping/internal/db"
	"github.com/faazahm/backend-camping/internal/shared/apperr"
)

// Admission re-checks availability under row locks before a booking starts
// consuming capacity. Callers hold an open transaction; every failure here
// rolls the whole transaction back, so a rejected admission leaves no rows
// behind. Lock order is fixed: booking row, campsite row, overlapping
// bookings, then equipment rows in ascending id with their overlapping
// attachments.

// admitCampsite verifies that peopleCount more people fit on every day of
// [start, end). The violating day and its remaining capacity are reported
// on the first failure.
func admitCampsite(ctx context.Context, q db.Querier, site campsiteRow, start, end time.Time, peopleCount int) error {
	usage, err := campsiteUsage(ctx, q, site.ID, start, end, true)
	if err != nil {
		return err
	}
	days := foldUsage(start, end, site.DailyCapacity, usage)
	if v := firstViolation(days, peopleCount); v != nil {
		return apperr.CapacityExceeded("campsite "+site.Name, v.Day, v.Remaining)
	}
	return nil
}

// admitEquipment verifies stock over one attachment's rental window, which
// is anchored at the booking's start date.
func admitEquipment(ctx context.Context, q db.Querier, eq equipmentRow, bookingStart time.Time, att Attachment) error {
	window := attachmentWindow(bookingStart, att.Nights, att.Quantity)
	usage, err := equipmentUsage(ctx, q, eq.ID, window.Start, window.End, true)
	if err != nil {
		return err
	}
	days := foldUsage(window.Start, window.End, eq.Stock, usage)
	if v := firstViolation(days, att.Quantity); v != nil {
		return apperr.CapacityExceeded("equipment "+eq.Name, v.Day, v.Remaining)
	}
	return nil
}

// admitBooking runs the full admission for a booking entering the active
// set: campsite capacity for the whole stay, then stock for each attachment.
func admitBooking(ctx context.Context, q db.Querier, b Booking, atts []Attachment) error {
	site, err := lockCampsite(ctx, q, b.CampsiteID)
	if err != nil {
		return err
	}
	if !site.IsActive {
		return apperr.NotFoundf("campsite %s not found", b.CampsiteID)
	}
	if err := admitCampsite(ctx, q, site, b.StartDate, b.EndDate, b.PeopleCount); err != nil {
		return err
	}

	sorted := append([]Attachment(nil), atts...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].EquipmentID < sorted[j].EquipmentID })
	for _, att := range sorted {
		eq, err := lockEquipment(ctx, q, att.EquipmentID)
		if err != nil {
			return err
		}
		if !eq.IsActive {
			return apperr.NotFoundf("equipment %s not found", att.EquipmentID)
		}
		if err := admitEquipment(ctx, q, eq, b.StartDate, att); err != nil {
			return err
		}
	}
	return nil
}

// validateEquipmentRequests applies the lock-free constraints: positive
// quantity and nights, nights within the stay, no duplicate items. Runs
// before any transaction so malformed requests never reach a lock.
func validateEquipmentRequests(reqs []EquipmentRequest, stayNights int) error {
	seen := make(map[string]struct{}, len(reqs))
	for _, r := range reqs {
		if r.EquipmentID == "" {
			return apperr.Invalidf("equipment id required")
		}
		if r.Quantity < 1 || r.Nights < 1 {
			return apperr.Invalidf("equipment quantity and nights must be positive")
		}
		if r.Nights > stayNights {
			return apperr.Invalidf("equipment nights %d exceed the %d-night stay", r.Nights, stayNights)
		}
		if _, dup := seen[r.EquipmentID]; dup {
			return apperr.Invalidf("duplicate equipment %s in request", r.EquipmentID)
		}
		seen[r.EquipmentID] = struct{}{}
	}
	return nil
}
