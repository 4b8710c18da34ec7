package campsite

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

func (s *Service) Create(ctx context.Context, req CreateRequest) (Campsite, error) {
	if err := validate.Struct(req); err != nil {
		return Campsite{}, apperr.Invalidf("name required, price and capacity must not be negative")
	}

	site := Campsite{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Description:   req.Description,
		NightlyPrice:  req.NightlyPrice,
		DailyCapacity: req.DailyCapacity,
		IsActive:      true,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO campsites (id, name, description, nightly_price, daily_capacity, is_active)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at
	`, site.ID, site.Name, site.Description, site.NightlyPrice, site.DailyCapacity, site.IsActive)
	if err := row.Scan(&site.CreatedAt); err != nil {
		return Campsite{}, err
	}
	return site, nil
}

func (s *Service) Get(ctx context.Context, id string) (Campsite, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, description, nightly_price, daily_capacity, is_active, created_at
		FROM campsites WHERE id=$1
	`, id)
	var site Campsite
	err := row.Scan(&site.ID, &site.Name, &site.Description, &site.NightlyPrice, &site.DailyCapacity, &site.IsActive, &site.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Campsite{}, apperr.NotFoundf("campsite %s not found", id)
	}
	if err != nil {
		return Campsite{}, err
	}
	return site, nil
}

// List returns active campsites only; deactivated sites stay reachable by id
// for their existing bookings but disappear from the catalogue.
func (s *Service) List(ctx context.Context) ([]Campsite, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, description, nightly_price, daily_capacity, is_active, created_at
		FROM campsites WHERE is_active
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sites []Campsite
	for rows.Next() {
		var site Campsite
		if err := rows.Scan(&site.ID, &site.Name, &site.Description, &site.NightlyPrice, &site.DailyCapacity, &site.IsActive, &site.CreatedAt); err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}
	return sites, rows.Err()
}

func (s *Service) Update(ctx context.Context, id string, patch UpdateRequest) (Campsite, error) {
	if err := validate.Struct(patch); err != nil {
		return Campsite{}, apperr.Invalidf("price and capacity must not be negative")
	}

	site, err := s.Get(ctx, id)
	if err != nil {
		return Campsite{}, err
	}
	if patch.Name != nil {
		site.Name = *patch.Name
	}
	if patch.Description != nil {
		site.Description = *patch.Description
	}
	if patch.NightlyPrice != nil {
		site.NightlyPrice = *patch.NightlyPrice
	}
	if patch.DailyCapacity != nil {
		site.DailyCapacity = *patch.DailyCapacity
	}
	if patch.IsActive != nil {
		site.IsActive = *patch.IsActive
	}

	_, err = s.db.Exec(ctx, `
		UPDATE campsites
		SET name=$2, description=$3, nightly_price=$4, daily_capacity=$5, is_active=$6
		WHERE id=$1
	`, site.ID, site.Name, site.Description, site.NightlyPrice, site.DailyCapacity, site.IsActive)
	if err != nil {
		return Campsite{}, err
	}
	return site, nil
}

// Deactivate soft-deletes. Existing bookings stand; new admissions against
// the site fail once is_active is false.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `UPDATE campsites SET is_active=FALSE WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFoundf("campsite %s not found", id)
	}
	return nil
}
