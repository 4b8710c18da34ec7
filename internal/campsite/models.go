package campsite

import "time"

// Campsite is a bookable pitch. NightlyPrice is in minor currency units per
// night; DailyCapacity bounds the sum of people across active bookings on
// any single day.
type Campsite struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	NightlyPrice  int64     `json:"nightly_price"`
	DailyCapacity int       `json:"daily_capacity"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

type CreateRequest struct {
	Name          string `json:"name" validate:"required"`
	Description   string `json:"description"`
	NightlyPrice  int64  `json:"nightly_price" validate:"min=0"`
	DailyCapacity int    `json:"daily_capacity" validate:"min=0"`
}

// UpdateRequest patches only the fields present in the payload. Zero is a
// meaningful capacity, so numeric fields are pointers.
type UpdateRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	NightlyPrice  *int64  `json:"nightly_price" validate:"omitempty,min=0"`
	DailyCapacity *int    `json:"daily_capacity" validate:"omitempty,min=0"`
	IsActive      *bool   `json:"is_active"`
}
