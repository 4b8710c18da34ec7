package booking

import (
	"time"

	"github.com/faazahm/backend-camping/internal/shared/dates"
)

// Booking is a stay at one campsite over the half-open [StartDate, EndDate)
// range. ID is the internal ordinal used for joins and never leaves the
// process; Ref is the opaque identifier clients see. Dates are UTC midnight.
type Booking struct {
	ID           int64
	Ref          string
	UserID       string
	CampsiteID   string
	StartDate    time.Time
	EndDate      time.Time
	PeopleCount  int
	TotalPrice   int64
	Status       Status
	PaymentProof string
	Attachments  []Attachment
	CreatedAt    time.Time
}

// Attachment rents Quantity units of one equipment item for the first
// Nights nights of the stay, anchored at the booking's start date. Price is
// unit price x quantity x nights at write time.
type Attachment struct {
	EquipmentID string
	Name        string
	Quantity    int
	Nights      int
	Price       int64
}

type CreateRequest struct {
	CampsiteID  string             `json:"campsite_id" validate:"required"`
	StartDate   string             `json:"start_date" validate:"required"`
	EndDate     string             `json:"end_date" validate:"required"`
	PeopleCount int                `json:"people_count" validate:"required,min=1"`
	Equipment   []EquipmentRequest `json:"equipment" validate:"dive"`
}

type EquipmentRequest struct {
	EquipmentID string `json:"equipment_id" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,min=1"`
	Nights      int    `json:"nights" validate:"required,min=1"`
}

type ReplaceEquipmentRequest struct {
	Equipment []EquipmentRequest `json:"equipment" validate:"dive"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type PaymentProofRequest struct {
	URL string `json:"payment_proof_url" validate:"required"`
}

// Response is the wire shape of a booking. Dates render as calendar days,
// never timestamps.
type Response struct {
	Ref          string               `json:"id"`
	UserID       string               `json:"user_id"`
	CampsiteID   string               `json:"campsite_id"`
	StartDate    string               `json:"start_date"`
	EndDate      string               `json:"end_date"`
	PeopleCount  int                  `json:"people_count"`
	TotalPrice   int64                `json:"total_price"`
	Status       Status               `json:"status"`
	PaymentProof string               `json:"payment_proof_url,omitempty"`
	Equipment    []AttachmentResponse `json:"equipment"`
	CreatedAt    time.Time            `json:"created_at"`
}

type AttachmentResponse struct {
	EquipmentID string `json:"equipment_id"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	Nights      int    `json:"nights"`
	Price       int64  `json:"price"`
}

func (b Booking) Response() Response {
	equipment := make([]AttachmentResponse, 0, len(b.Attachments))
	for _, a := range b.Attachments {
		equipment = append(equipment, AttachmentResponse{
			EquipmentID: a.EquipmentID,
			Name:        a.Name,
			Quantity:    a.Quantity,
			Nights:      a.Nights,
			Price:       a.Price,
		})
	}
	return Response{
		Ref:          b.Ref,
		UserID:       b.UserID,
		CampsiteID:   b.CampsiteID,
		StartDate:    dates.Format(b.StartDate),
		EndDate:      dates.Format(b.EndDate),
		PeopleCount:  b.PeopleCount,
		TotalPrice:   b.TotalPrice,
		Status:       b.Status,
		PaymentProof: b.PaymentProof,
		Equipment:    equipment,
		CreatedAt:    b.CreatedAt,
	}
}

// DayAvailability is one day of a campsite's usage ledger.
type DayAvailability struct {
	Date      string `json:"date"`
	Used      int    `json:"used"`
	Remaining int    `json:"remaining"`
}

// EquipmentDayAvailability is one equipment item's stock position on one day.
type EquipmentDayAvailability struct {
	EquipmentID    string `json:"equipment_id"`
	Name           string `json:"name"`
	Date           string `json:"date"`
	Stock          int    `json:"stock"`
	AvailableStock int    `json:"available_stock"`
}
