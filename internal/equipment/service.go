package equipment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/faazahm/backend-camping/internal/db"
	"github.com/faazahm/backend-camping/internal/shared/apperr"
	"github.com/faazahm/backend-camping/internal/shared/validate"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (Equipment, error) {
	if err := validate.Struct(req); err != nil {
		return Equipment{}, apperr.Invalidf("name required, price and stock must not be negative")
	}

	item := Equipment{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Price:    req.Price,
		Stock:    req.Stock,
		IsActive: true,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO equipment (id, name, price, stock, is_active)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at
	`, item.ID, item.Name, item.Price, item.Stock, item.IsActive)
	if err := row.Scan(&item.CreatedAt); err != nil {
		return Equipment{}, err
	}
	return item, nil
}

func (s *Service) Get(ctx context.Context, id string) (Equipment, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, price, stock, is_active, created_at
		FROM equipment WHERE id=$1
	`, id)
	var item Equipment
	err := row.Scan(&item.ID, &item.Name, &item.Price, &item.Stock, &item.IsActive, &item.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Equipment{}, apperr.NotFoundf("equipment %s not found", id)
	}
	if err != nil {
		return Equipment{}, err
	}
	return item, nil
}

func (s *Service) List(ctx context.Context) ([]Equipment, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, price, stock, is_active, created_at
		FROM equipment WHERE is_active
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Equipment
	for rows.Next() {
		var item Equipment
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.Stock, &item.IsActive, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Service) Update(ctx context.Context, id string, patch UpdateRequest) (Equipment, error) {
	if err := validate.Struct(patch); err != nil {
		return Equipment{}, apperr.Invalidf("price and stock must not be negative")
	}

	item, err := s.Get(ctx, id)
	if err != nil {
		return Equipment{}, err
	}
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}
	if patch.Stock != nil {
		item.Stock = *patch.Stock
	}
	if patch.IsActive != nil {
		item.IsActive = *patch.IsActive
	}

	_, err = s.db.Exec(ctx, `
		UPDATE equipment
		SET name=$2, price=$3, stock=$4, is_active=$5
		WHERE id=$1
	`, item.ID, item.Name, item.Price, item.Stock, item.IsActive)
	if err != nil {
		return Equipment{}, err
	}
	return item, nil
}

// Deactivate refuses while any booking attachment still references the item,
// whatever the booking's status; attachments carry the price agreed at write
// time and must stay resolvable.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	var referenced bool
	row := s.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM booking_equipment WHERE equipment_id=$1)
	`, id)
	if err := row.Scan(&referenced); err != nil {
		return err
	}
	if referenced {
		return apperr.Conflictf("equipment %s is attached to bookings", id)
	}

	tag, err := s.db.Exec(ctx, `UPDATE equipment SET is_active=FALSE WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFoundf("equipment %s not found", id)
	}
	return nil
}
