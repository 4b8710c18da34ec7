package booking

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/faazahm/backend-camping/internal/db"
	"github.com/faazahm/backend-camping/internal/shared/apperr"
)

// The ledger is the only code that touches booking storage. Locked variants
// run inside the admission transaction; unlocked variants serve availability
// display and pre-checks and may observe slightly stale usage.

// campsiteRow is the slice of the campsites table that admission needs.
type campsiteRow struct {
	ID            string
	Name          string
	NightlyPrice  int64
	DailyCapacity int
	IsActive      bool
}

type equipmentRow struct {
	ID       string
	Name     string
	Price    int64
	Stock    int
	IsActive bool
}

const campsiteColumns = `SELECT id, name, nightly_price, daily_capacity, is_active FROM campsites WHERE id=$1`

func getCampsite(ctx context.Context, q db.Querier, id string) (campsiteRow, error) {
	return scanCampsite(q.QueryRow(ctx, campsiteColumns, id), id)
}

func lockCampsite(ctx context.Context, q db.Querier, id string) (campsiteRow, error) {
	return scanCampsite(q.QueryRow(ctx, campsiteColumns+` FOR UPDATE`, id), id)
}

func scanCampsite(row pgx.Row, id string) (campsiteRow, error) {
	var site campsiteRow
	err := row.Scan(&site.ID, &site.Name, &site.NightlyPrice, &site.DailyCapacity, &site.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return campsiteRow{}, apperr.NotFoundf("campsite %s not found", id)
	}
	if err != nil {
		return campsiteRow{}, err
	}
	return site, nil
}

const equipmentColumns = `SELECT id, name, price, stock, is_active FROM equipment WHERE id=$1`

func getEquipment(ctx context.Context, q db.Querier, id string) (equipmentRow, error) {
	return scanEquipment(q.QueryRow(ctx, equipmentColumns, id), id)
}

func lockEquipment(ctx context.Context, q db.Querier, id string) (equipmentRow, error) {
	return scanEquipment(q.QueryRow(ctx, equipmentColumns+` FOR UPDATE`, id), id)
}

func scanEquipment(row pgx.Row, id string) (equipmentRow, error) {
	var eq equipmentRow
	err := row.Scan(&eq.ID, &eq.Name, &eq.Price, &eq.Stock, &eq.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return equipmentRow{}, apperr.NotFoundf("equipment %s not found", id)
	}
	if err != nil {
		return equipmentRow{}, err
	}
	return eq, nil
}

func listActiveEquipment(ctx context.Context, q db.Querier) ([]equipmentRow, error) {
	rows, err := q.Query(ctx, `
		SELECT id, name, price, stock, is_active
		FROM equipment WHERE is_active
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []equipmentRow
	for rows.Next() {
		var eq equipmentRow
		if err := rows.Scan(&eq.ID, &eq.Name, &eq.Price, &eq.Stock, &eq.IsActive); err != nil {
			return nil, err
		}
		items = append(items, eq)
	}
	return items, rows.Err()
}

// campsiteUsage returns the consuming intervals of every active booking on
// the campsite overlapping [start, end). With lock, the rows are taken FOR
// UPDATE so no overlapping booking can activate concurrently.
func campsiteUsage(ctx context.Context, q db.Querier, campsiteID string, start, end time.Time, lock bool) ([]Interval, error) {
	sql := `
		SELECT start_date, end_date, people_count
		FROM bookings
		WHERE campsite_id=$1 AND status = ANY($2) AND end_date > $3 AND start_date < $4
		ORDER BY id`
	if lock {
		sql += ` FOR UPDATE`
	}
	rows, err := q.Query(ctx, sql, campsiteID, activeStatusList(), start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var intervals []Interval
	for rows.Next() {
		var iv Interval
		if err := rows.Scan(&iv.Start, &iv.End, &iv.Qty); err != nil {
			return nil, err
		}
		intervals = append(intervals, iv)
	}
	return intervals, rows.Err()
}

// equipmentUsage returns the rental windows of every attachment on active
// bookings that overlap [start, end). Windows are anchored at the owning
// booking's start date. The lock takes the attachment rows only, so status
// transitions on other bookings keep their own lock order through the
// equipment definition row.
func equipmentUsage(ctx context.Context, q db.Querier, equipmentID string, start, end time.Time, lock bool) ([]Interval, error) {
	sql := `
		SELECT b.start_date, be.nights, be.quantity
		FROM booking_equipment be
		JOIN bookings b ON b.id = be.booking_id
		WHERE be.equipment_id=$1 AND b.status = ANY($2) AND b.start_date + be.nights > $3 AND b.start_date < $4
		ORDER BY be.id`
	if lock {
		sql += ` FOR UPDATE OF be`
	}
	rows, err := q.Query(ctx, sql, equipmentID, activeStatusList(), start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var intervals []Interval
	for rows.Next() {
		var bookingStart time.Time
		var nights, quantity int
		if err := rows.Scan(&bookingStart, &nights, &quantity); err != nil {
			return nil, err
		}
		intervals = append(intervals, attachmentWindow(bookingStart, nights, quantity))
	}
	return intervals, rows.Err()
}

// fleetUsage gathers rental windows for all equipment at once, keyed by
// equipment id. Display only, never locked.
func fleetUsage(ctx context.Context, q db.Querier, start, end time.Time) (map[string][]Interval, error) {
	rows, err := q.Query(ctx, `
		SELECT be.equipment_id, b.start_date, be.nights, be.quantity
		FROM booking_equipment be
		JOIN bookings b ON b.id = be.booking_id
		WHERE b.status = ANY($1) AND b.start_date + be.nights > $2 AND b.start_date < $3
		ORDER BY be.id`, activeStatusList(), start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	usage := map[string][]Interval{}
	for rows.Next() {
		var equipmentID string
		var bookingStart time.Time
		var nights, quantity int
		if err := rows.Scan(&equipmentID, &bookingStart, &nights, &quantity); err != nil {
			return nil, err
		}
		usage[equipmentID] = append(usage[equipmentID], attachmentWindow(bookingStart, nights, quantity))
	}
	return usage, rows.Err()
}

const bookingColumns = `SELECT id, ref, user_id, campsite_id, start_date, end_date, people_count, total_price, status, COALESCE(payment_proof_url,''), created_at FROM bookings`

func getBookingByRef(ctx context.Context, q db.Querier, ref string) (Booking, error) {
	return scanBooking(q.QueryRow(ctx, bookingColumns+` WHERE ref=$1`, ref), ref)
}

func lockBookingByRef(ctx context.Context, q db.Querier, ref string) (Booking, error) {
	return scanBooking(q.QueryRow(ctx, bookingColumns+` WHERE ref=$1 FOR UPDATE`, ref), ref)
}

func scanBooking(row pgx.Row, ref string) (Booking, error) {
	var b Booking
	var status string
	err := row.Scan(&b.ID, &b.Ref, &b.UserID, &b.CampsiteID, &b.StartDate, &b.EndDate,
		&b.PeopleCount, &b.TotalPrice, &status, &b.PaymentProof, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Booking{}, apperr.NotFoundf("booking %s not found", ref)
	}
	if err != nil {
		return Booking{}, err
	}
	b.Status = Status(status)
	b.StartDate = b.StartDate.UTC()
	b.EndDate = b.EndDate.UTC()
	return b, nil
}

func insertBooking(ctx context.Context, q db.Querier, b *Booking) error {
	row := q.QueryRow(ctx, `
		INSERT INTO bookings (ref, user_id, campsite_id, start_date, end_date, people_count, total_price, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, created_at
	`, b.Ref, b.UserID, b.CampsiteID, b.StartDate, b.EndDate, b.PeopleCount, b.TotalPrice, string(b.Status))
	return row.Scan(&b.ID, &b.CreatedAt)
}

func insertAttachments(ctx context.Context, q db.Querier, bookingID int64, atts []Attachment) error {
	for _, att := range atts {
		_, err := q.Exec(ctx, `
			INSERT INTO booking_equipment (booking_id, equipment_id, quantity, nights, price)
			VALUES ($1,$2,$3,$4,$5)
		`, bookingID, att.EquipmentID, att.Quantity, att.Nights, att.Price)
		if err != nil {
			return err
		}
	}
	return nil
}

func deleteAttachments(ctx context.Context, q db.Querier, bookingID int64) error {
	_, err := q.Exec(ctx, `DELETE FROM booking_equipment WHERE booking_id=$1`, bookingID)
	return err
}

func attachmentsForBooking(ctx context.Context, q db.Querier, bookingID int64) ([]Attachment, error) {
	rows, err := q.Query(ctx, `
		SELECT be.equipment_id, e.name, be.quantity, be.nights, be.price
		FROM booking_equipment be
		JOIN equipment e ON e.id = be.equipment_id
		WHERE be.booking_id=$1
		ORDER BY be.id`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var atts []Attachment
	for rows.Next() {
		var att Attachment
		if err := rows.Scan(&att.EquipmentID, &att.Name, &att.Quantity, &att.Nights, &att.Price); err != nil {
			return nil, err
		}
		atts = append(atts, att)
	}
	return atts, rows.Err()
}

func attachmentsForBookings(ctx context.Context, q db.Querier, bookingIDs []int64) (map[int64][]Attachment, error) {
	if len(bookingIDs) == 0 {
		return map[int64][]Attachment{}, nil
	}
	rows, err := q.Query(ctx, `
		SELECT be.booking_id, be.equipment_id, e.name, be.quantity, be.nights, be.price
		FROM booking_equipment be
		JOIN equipment e ON e.id = be.equipment_id
		WHERE be.booking_id = ANY($1)
		ORDER BY be.booking_id, be.id`, bookingIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	atts := map[int64][]Attachment{}
	for rows.Next() {
		var bookingID int64
		var att Attachment
		if err := rows.Scan(&bookingID, &att.EquipmentID, &att.Name, &att.Quantity, &att.Nights, &att.Price); err != nil {
			return nil, err
		}
		atts[bookingID] = append(atts[bookingID], att)
	}
	return atts, rows.Err()
}

func updateBookingStatus(ctx context.Context, q db.Querier, bookingID int64, status Status) error {
	_, err := q.Exec(ctx, `UPDATE bookings SET status=$2 WHERE id=$1`, bookingID, string(status))
	return err
}

func updateBookingTotal(ctx context.Context, q db.Querier, bookingID int64, total int64) error {
	_, err := q.Exec(ctx, `UPDATE bookings SET total_price=$2 WHERE id=$1`, bookingID, total)
	return err
}

func updateBookingPaymentProof(ctx context.Context, q db.Querier, bookingID int64, url string) error {
	_, err := q.Exec(ctx, `UPDATE bookings SET payment_proof_url=$2 WHERE id=$1`, bookingID, url)
	return err
}

func listBookings(ctx context.Context, q db.Querier, userID string, status Status) ([]Booking, error) {
	var (
		rows pgx.Rows
		err  error
	)
	switch {
	case userID != "":
		rows, err = q.Query(ctx, bookingColumns+` WHERE user_id=$1 ORDER BY created_at DESC, id DESC`, userID)
	case status != "":
		rows, err = q.Query(ctx, bookingColumns+` WHERE status=$1 ORDER BY created_at DESC, id DESC`, string(status))
	default:
		rows, err = q.Query(ctx, bookingColumns+` ORDER BY created_at DESC, id DESC`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		var b Booking
		var rowStatus string
		if err := rows.Scan(&b.ID, &b.Ref, &b.UserID, &b.CampsiteID, &b.StartDate, &b.EndDate,
			&b.PeopleCount, &b.TotalPrice, &rowStatus, &b.PaymentProof, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.Status = Status(rowStatus)
		b.StartDate = b.StartDate.UTC()
		b.EndDate = b.EndDate.UTC()
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// loadAttachmentLists decorates a booking list with its equipment rows in
// one query.
func loadAttachmentLists(ctx context.Context, q db.Querier, bookings []Booking) error {
	ids := make([]int64, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
	}
	atts, err := attachmentsForBookings(ctx, q, ids)
	if err != nil {
		return err
	}
	for i := range bookings {
		bookings[i].Attachments = atts[bookings[i].ID]
	}
	return nil
}
