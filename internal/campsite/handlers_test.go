package campsite

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func passthrough(c *fiber.Ctx) error { return c.Next() }

func TestCampsiteHandlersCRUD(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	app := fiber.New()
	RegisterRoutes(app.Group("/campsites"), NewService(mock), passthrough, passthrough)

	mock.ExpectQuery(`INSERT INTO campsites`).
		WithArgs(pgxmock.AnyArg(), "Riverside", "", int64(10000), 8, true).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	body, _ := json.Marshal(CreateRequest{Name: "Riverside", NightlyPrice: 10000, DailyCapacity: 8})
	req := httptest.NewRequest(http.MethodPost, "/campsites/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status: %v %d", err, resp.StatusCode)
	}
	var created Campsite
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode created: %v", err)
	}

	mock.ExpectQuery(`SELECT id, name, description, nightly_price, daily_capacity, is_active, created_at`).
		WithArgs(created.ID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "nightly_price", "daily_capacity", "is_active", "created_at"}).
			AddRow(created.ID, "Riverside", "", int64(10000), 8, true, time.Now()))

	req = httptest.NewRequest(http.MethodGet, "/campsites/"+created.ID, nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("get status: %v", err)
	}

	mock.ExpectQuery(`SELECT id, name, description, nightly_price, daily_capacity, is_active, created_at`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "nightly_price", "daily_capacity", "is_active", "created_at"}).
			AddRow(created.ID, "Riverside", "", int64(10000), 8, true, time.Now()))

	req = httptest.NewRequest(http.MethodGet, "/campsites/", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list status: %v", err)
	}

	mock.ExpectExec(`UPDATE campsites SET is_active=FALSE`).
		WithArgs(created.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	req = httptest.NewRequest(http.MethodDelete, "/campsites/"+created.ID, nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCampsiteHandlersBadPayload(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/campsites"), NewService(nil), passthrough, passthrough)

	req := httptest.NewRequest(http.MethodPost, "/campsites/", bytes.NewReader([]byte("{bad")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request")
	}

	body, _ := json.Marshal(CreateRequest{Name: "", NightlyPrice: 1})
	req = httptest.NewRequest(http.MethodPost, "/campsites/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for missing name")
	}
}

func TestCampsiteHandlersNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, description, nightly_price, daily_capacity, is_active, created_at`).
		WithArgs("site-404").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "nightly_price", "daily_capacity", "is_active", "created_at"}))

	app := fiber.New()
	RegisterRoutes(app.Group("/campsites"), NewService(mock), passthrough, passthrough)

	req := httptest.NewRequest(http.MethodGet, "/campsites/site-404", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found, got %d", resp.StatusCode)
	}
}
