package equipment

import "time"

// Equipment is rentable gear. Price is per unit per night; Stock bounds the
// sum of quantities across active bookings renting the item on any one day.
type Equipment struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Stock     int       `json:"stock"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateRequest struct {
	Name  string `json:"name" validate:"required"`
	Price int64  `json:"price" validate:"min=0"`
	Stock int    `json:"stock" validate:"min=0"`
}

type UpdateRequest struct {
	Name     *string `json:"name"`
	Price    *int64  `json:"price" validate:"omitempty,min=0"`
	Stock    *int    `json:"stock" validate:"omitempty,min=0"`
	IsActive *bool   `json:"is_active"`
}
