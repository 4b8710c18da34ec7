package booking

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/faazahm/backend-camping/internal/auth"
	"github.com/faazahm/backend-camping/internal/db"
	"github.com/faazahm/backend-camping/internal/shared/apperr"
	"github.com/faazahm/backend-camping/internal/shared/dates"
	"github.com/faazahm/backend-camping/internal/shared/validate"
)

type Service struct {
	db          db.Pool
	broadcaster Broadcaster
	notifier    Notifier
}

func NewService(pool db.Pool, broadcaster Broadcaster, notifier Notifier) *Service {
	return &Service{db: pool, broadcaster: broadcaster, notifier: notifier}
}

// Create inserts a PENDING booking. PENDING reserves nothing, so creation
// takes no locks and runs no capacity check; the check happens when an admin
// moves the booking into the active set.
func (s *Service) Create(ctx context.Context, caller auth.Identity, req CreateRequest) (b Booking, err error) {
	if err = validate.Struct(req); err != nil {
		return Booking{}, apperr.Invalidf("campsite, dates and a positive people count are required")
	}
	start, end, err := dates.ParseRange(req.StartDate, req.EndDate)
	if err != nil {
		return Booking{}, apperr.Invalidf("invalid date range: %v", err)
	}
	stay := dates.Nights(start, end)
	if err = validateEquipmentRequests(req.Equipment, stay); err != nil {
		return Booking{}, err
	}

	site, err := getCampsite(ctx, s.db, req.CampsiteID)
	if err != nil {
		return Booking{}, err
	}
	if !site.IsActive {
		return Booking{}, apperr.NotFoundf("campsite %s not found", req.CampsiteID)
	}

	atts := make([]Attachment, 0, len(req.Equipment))
	for _, r := range req.Equipment {
		var eq equipmentRow
		eq, err = getEquipment(ctx, s.db, r.EquipmentID)
		if err != nil {
			return Booking{}, err
		}
		if !eq.IsActive {
			return Booking{}, apperr.NotFoundf("equipment %s not found", r.EquipmentID)
		}
		atts = append(atts, Attachment{
			EquipmentID: eq.ID,
			Name:        eq.Name,
			Quantity:    r.Quantity,
			Nights:      r.Nights,
			Price:       eq.Price * int64(r.Quantity) * int64(r.Nights),
		})
	}

	b = Booking{
		Ref:         uuid.NewString(),
		UserID:      caller.UserID,
		CampsiteID:  site.ID,
		StartDate:   start,
		EndDate:     end,
		PeopleCount: req.PeopleCount,
		TotalPrice:  totalPrice(stay, site.NightlyPrice, req.PeopleCount, atts),
		Status:      StatusPending,
		Attachments: atts,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return Booking{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = insertBooking(ctx, tx, &b); err != nil {
		return Booking{}, err
	}
	if err = insertAttachments(ctx, tx, b.ID, b.Attachments); err != nil {
		return Booking{}, err
	}
	if err = tx.Commit(ctx); err != nil {
		return Booking{}, err
	}

	s.emit(eventBookingCreated, b)
	return b, nil
}

// ReplaceEquipment swaps the booking's equipment set: delete all rows,
// insert the new set, recompute the total. On an active booking every new
// attachment passes admission first. Dates and ownership are immutable, so
// the cheap rejections happen before the transaction opens.
func (s *Service) ReplaceEquipment(ctx context.Context, caller auth.Identity, ref string, req ReplaceEquipmentRequest) (b Booking, err error) {
	current, err := getBookingByRef(ctx, s.db, ref)
	if err != nil {
		return Booking{}, err
	}
	if current.UserID != caller.UserID && !caller.Admin() {
		return Booking{}, apperr.Forbiddenf("booking %s does not belong to you", ref)
	}
	if current.Status.Terminal() {
		return Booking{}, apperr.Invalidf("booking %s is %s", ref, current.Status)
	}
	stay := dates.Nights(current.StartDate, current.EndDate)
	if err = validateEquipmentRequests(req.Equipment, stay); err != nil {
		return Booking{}, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return Booking{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	b, err = lockBookingByRef(ctx, tx, ref)
	if err != nil {
		return Booking{}, err
	}
	if b.Status.Terminal() {
		return Booking{}, apperr.Invalidf("booking %s is %s", ref, b.Status)
	}

	oldAtts, err := attachmentsForBooking(ctx, tx, b.ID)
	if err != nil {
		return Booking{}, err
	}
	site, err := getCampsite(ctx, tx, b.CampsiteID)
	if err != nil {
		return Booking{}, err
	}

	// Equipment definition rows lock in ascending id order. Taking the union
	// with the outgoing set keeps that order stable against concurrent edits
	// that still hold attachments on those items.
	newByID := make(map[string]EquipmentRequest, len(req.Equipment))
	for _, r := range req.Equipment {
		newByID[r.EquipmentID] = r
	}
	eqRows := make(map[string]equipmentRow, len(newByID))
	for _, id := range lockOrder(oldAtts, req.Equipment) {
		var eq equipmentRow
		eq, err = lockEquipment(ctx, tx, id)
		if err != nil {
			return Booking{}, err
		}
		eqRows[id] = eq
	}
	for id := range newByID {
		if !eqRows[id].IsActive {
			return Booking{}, apperr.NotFoundf("equipment %s not found", id)
		}
	}

	if err = deleteAttachments(ctx, tx, b.ID); err != nil {
		return Booking{}, err
	}

	newIDs := make([]string, 0, len(newByID))
	for id := range newByID {
		newIDs = append(newIDs, id)
	}
	sort.Strings(newIDs)

	newAtts := make([]Attachment, 0, len(newIDs))
	for _, id := range newIDs {
		r := newByID[id]
		eq := eqRows[id]
		att := Attachment{
			EquipmentID: id,
			Name:        eq.Name,
			Quantity:    r.Quantity,
			Nights:      r.Nights,
			Price:       eq.Price * int64(r.Quantity) * int64(r.Nights),
		}
		if b.Status.Active() {
			if err = admitEquipment(ctx, tx, eq, b.StartDate, att); err != nil {
				return Booking{}, err
			}
		}
		newAtts = append(newAtts, att)
	}

	if err = insertAttachments(ctx, tx, b.ID, newAtts); err != nil {
		return Booking{}, err
	}

	total := totalPrice(stay, site.NightlyPrice, b.PeopleCount, newAtts)
	if err = updateBookingTotal(ctx, tx, b.ID, total); err != nil {
		return Booking{}, err
	}
	if err = tx.Commit(ctx); err != nil {
		return Booking{}, err
	}

	b.TotalPrice = total
	b.Attachments = newAtts
	return b, nil
}

// SetStatus drives the lifecycle. Entering the active set re-runs admission
// under locks; leaving it always succeeds and frees capacity immediately.
func (s *Service) SetStatus(ctx context.Context, ref string, statusStr string) (b Booking, err error) {
	next, err := ParseStatus(statusStr)
	if err != nil {
		return Booking{}, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return Booking{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	b, err = lockBookingByRef(ctx, tx, ref)
	if err != nil {
		return Booking{}, err
	}
	prev := b.Status
	if !prev.CanTransitionTo(next) {
		err = apperr.Invalidf("cannot move booking from %s to %s", prev, next)
		return Booking{}, err
	}

	b.Attachments, err = attachmentsForBooking(ctx, tx, b.ID)
	if err != nil {
		return Booking{}, err
	}

	if next.Active() && !prev.Active() {
		if err = admitBooking(ctx, tx, b, b.Attachments); err != nil {
			return Booking{}, err
		}
	}

	if err = updateBookingStatus(ctx, tx, b.ID, next); err != nil {
		return Booking{}, err
	}
	if err = tx.Commit(ctx); err != nil {
		return Booking{}, err
	}

	b.Status = next
	if next == StatusPaid {
		s.notifyPaid(ctx, b.Ref)
	}
	s.emit(eventBookingStatusChanged, b)
	return b, nil
}

// AttachPaymentProof stores the proof reference. Status stays PENDING; an
// admin verifies and moves the booking to PAID.
func (s *Service) AttachPaymentProof(ctx context.Context, caller auth.Identity, ref, proofURL string) (Booking, error) {
	if proofURL == "" {
		return Booking{}, apperr.Invalidf("payment proof reference required")
	}
	b, err := getBookingByRef(ctx, s.db, ref)
	if err != nil {
		return Booking{}, err
	}
	if b.UserID != caller.UserID && !caller.Admin() {
		return Booking{}, apperr.Forbiddenf("booking %s does not belong to you", ref)
	}
	if b.Status.Terminal() {
		return Booking{}, apperr.Invalidf("booking %s is %s", ref, b.Status)
	}
	if err := updateBookingPaymentProof(ctx, s.db, b.ID, proofURL); err != nil {
		return Booking{}, err
	}
	b.PaymentProof = proofURL
	b.Attachments, err = attachmentsForBooking(ctx, s.db, b.ID)
	if err != nil {
		return Booking{}, err
	}
	return b, nil
}

func (s *Service) GetByRef(ctx context.Context, caller auth.Identity, ref string) (Booking, error) {
	b, err := getBookingByRef(ctx, s.db, ref)
	if err != nil {
		return Booking{}, err
	}
	if b.UserID != caller.UserID && !caller.Admin() {
		return Booking{}, apperr.Forbiddenf("booking %s does not belong to you", ref)
	}
	b.Attachments, err = attachmentsForBooking(ctx, s.db, b.ID)
	if err != nil {
		return Booking{}, err
	}
	return b, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Booking, error) {
	bookings, err := listBookings(ctx, s.db, userID, "")
	if err != nil {
		return nil, err
	}
	if err := loadAttachmentLists(ctx, s.db, bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// List is the admin view over all bookings, optionally filtered by status.
func (s *Service) List(ctx context.Context, statusStr string) ([]Booking, error) {
	var status Status
	if statusStr != "" {
		var err error
		status, err = ParseStatus(statusStr)
		if err != nil {
			return nil, err
		}
	}
	bookings, err := listBookings(ctx, s.db, "", status)
	if err != nil {
		return nil, err
	}
	if err := loadAttachmentLists(ctx, s.db, bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CampsiteAvailability is the display read: no locks, so a concurrent
// admission may shift the numbers between this read and a later booking
// attempt.
func (s *Service) CampsiteAvailability(ctx context.Context, campsiteID, startStr, endStr string) ([]DayAvailability, error) {
	start, end, err := dates.ParseRange(startStr, endStr)
	if err != nil {
		return nil, apperr.Invalidf("invalid date range: %v", err)
	}
	site, err := getCampsite(ctx, s.db, campsiteID)
	if err != nil {
		return nil, err
	}
	if !site.IsActive {
		return nil, apperr.NotFoundf("campsite %s not found", campsiteID)
	}
	usage, err := campsiteUsage(ctx, s.db, campsiteID, start, end, false)
	if err != nil {
		return nil, err
	}
	days := foldUsage(start, end, site.DailyCapacity, usage)
	out := make([]DayAvailability, len(days))
	for i, d := range days {
		out[i] = DayAvailability{Date: dates.Format(d.Day), Used: d.Used, Remaining: d.Remaining}
	}
	return out, nil
}

// EquipmentAvailability reports per-day stock for every active equipment
// item over [start, end).
func (s *Service) EquipmentAvailability(ctx context.Context, startStr, endStr string) ([]EquipmentDayAvailability, error) {
	start, end, err := dates.ParseRange(startStr, endStr)
	if err != nil {
		return nil, apperr.Invalidf("invalid date range: %v", err)
	}
	items, err := listActiveEquipment(ctx, s.db)
	if err != nil {
		return nil, err
	}
	usage, err := fleetUsage(ctx, s.db, start, end)
	if err != nil {
		return nil, err
	}
	var out []EquipmentDayAvailability
	for _, eq := range items {
		for _, d := range foldUsage(start, end, eq.Stock, usage[eq.ID]) {
			out = append(out, EquipmentDayAvailability{
				EquipmentID:    eq.ID,
				Name:           eq.Name,
				Date:           dates.Format(d.Day),
				Stock:          eq.Stock,
				AvailableStock: d.Remaining,
			})
		}
	}
	return out, nil
}

func (s *Service) EquipmentItemAvailability(ctx context.Context, equipmentID, startStr, endStr string) ([]EquipmentDayAvailability, error) {
	start, end, err := dates.ParseRange(startStr, endStr)
	if err != nil {
		return nil, apperr.Invalidf("invalid date range: %v", err)
	}
	eq, err := getEquipment(ctx, s.db, equipmentID)
	if err != nil {
		return nil, err
	}
	if !eq.IsActive {
		return nil, apperr.NotFoundf("equipment %s not found", equipmentID)
	}
	usage, err := equipmentUsage(ctx, s.db, equipmentID, start, end, false)
	if err != nil {
		return nil, err
	}
	var out []EquipmentDayAvailability
	for _, d := range foldUsage(start, end, eq.Stock, usage) {
		out = append(out, EquipmentDayAvailability{
			EquipmentID:    eq.ID,
			Name:           eq.Name,
			Date:           dates.Format(d.Day),
			Stock:          eq.Stock,
			AvailableStock: d.Remaining,
		})
	}
	return out, nil
}

func totalPrice(stayNights int, nightlyPrice int64, peopleCount int, atts []Attachment) int64 {
	total := int64(stayNights) * nightlyPrice * int64(peopleCount)
	for _, att := range atts {
		total += att.Price
	}
	return total
}

// lockOrder is the sorted union of outgoing and incoming equipment ids.
func lockOrder(old []Attachment, next []EquipmentRequest) []string {
	set := make(map[string]struct{}, len(old)+len(next))
	for _, att := range old {
		set[att.EquipmentID] = struct{}{}
	}
	for _, r := range next {
		set[r.EquipmentID] = struct{}{}
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
