package httpx

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/faazahm/backend-camping/internal/shared/apperr"
)

func respond(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return Error(c, err)
	})
	resp, testErr := app.Test(httptest.NewRequest("GET", "/", nil))
	if testErr != nil {
		t.Fatalf("app test: %v", testErr)
	}
	rec := httptest.NewRecorder()
	rec.Code = resp.StatusCode
	if _, copyErr := rec.Body.ReadFrom(resp.Body); copyErr != nil {
		t.Fatalf("read body: %v", copyErr)
	}
	return rec
}

func TestErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.Invalidf("bad dates"), fiber.StatusBadRequest},
		{apperr.NotFoundf("no such booking"), fiber.StatusNotFound},
		{apperr.Forbiddenf("not yours"), fiber.StatusForbidden},
		{apperr.Conflictf("equipment in use"), fiber.StatusConflict},
		{fiber.NewError(fiber.StatusUnauthorized, "missing token"), fiber.StatusUnauthorized},
		{errors.New("pool closed"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := respond(t, tc.err)
		if rec.Code != tc.want {
			t.Fatalf("error %v: expected status %d, got %d", tc.err, tc.want, rec.Code)
		}
	}
}

func TestErrorCapacityPayload(t *testing.T) {
	day := time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC)
	rec := respond(t, apperr.CapacityExceeded("campsite", day, 2))

	if rec.Code != fiber.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	var body struct {
		Error     string `json:"error"`
		Date      string `json:"date"`
		Remaining int    `json:"remaining"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error != "CAPACITY_EXCEEDED" {
		t.Fatalf("expected capacity error code, got %q", body.Error)
	}
	if body.Date != "2025-02-02" {
		t.Fatalf("expected violating day, got %q", body.Date)
	}
	if body.Remaining != 2 {
		t.Fatalf("expected remaining 2, got %d", body.Remaining)
	}
}

func TestErrorOpaqueInternal(t *testing.T) {
	rec := respond(t, errors.New("connect: connection refused"))
	if rec.Body.String() == "" {
		t.Fatalf("expected body")
	}
	if want := `{"message":"internal error"}`; rec.Body.String() != want {
		t.Fatalf("expected opaque internal message, got %s", rec.Body.String())
	}
}
