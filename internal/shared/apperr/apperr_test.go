package apperr

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestKindOfUnwraps(t *testing.T) {
	err := NotFoundf("booking %s not found", "b-1")
	if KindOf(err) != KindNotFound {
		t.Fatalf("expected %s, got %s", KindNotFound, KindOf(err))
	}

	wrapped := fmt.Errorf("load booking: %w", err)
	if KindOf(wrapped) != KindNotFound {
		t.Fatalf("expected kind to survive wrapping, got %s", KindOf(wrapped))
	}

	if KindOf(errors.New("plain")) != "" {
		t.Fatalf("expected empty kind for plain error")
	}
	if KindOf(nil) != "" {
		t.Fatalf("expected empty kind for nil error")
	}
}

func TestCapacityExceededPayload(t *testing.T) {
	day := time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC)
	err := CapacityExceeded("campsite", day, 1)

	if err.Kind != KindCapacityExceeded {
		t.Fatalf("expected capacity kind, got %s", err.Kind)
	}
	if !err.Day.Equal(day) {
		t.Fatalf("expected day %s, got %s", day, err.Day)
	}
	if err.Remaining != 1 {
		t.Fatalf("expected remaining 1, got %d", err.Remaining)
	}
	if err.Error() != "campsite is full on 2025-02-02: 1 remaining" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestIsKind(t *testing.T) {
	if !IsKind(Forbiddenf("not yours"), KindForbidden) {
		t.Fatalf("expected forbidden kind")
	}
	if IsKind(Invalidf("bad"), KindConflict) {
		t.Fatalf("did not expect conflict kind")
	}
}
