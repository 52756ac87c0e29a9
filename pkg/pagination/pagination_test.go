package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNormalizeLimit(t *testing.T) {
	if got := NormalizeLimit(0); got != DefaultLimit {
		t.Fatalf("expected default limit, got %d", got)
	}
	if got := NormalizeLimit(-3); got != DefaultLimit {
		t.Fatalf("negative limit should normalize to default, got %d", got)
	}
	if got := NormalizeLimit(MaxLimit + 50); got != MaxLimit {
		t.Fatalf("expected max limit cap, got %d", got)
	}
	if got := NormalizeLimit(10); got != 10 {
		t.Fatalf("in-range limit should pass through, got %d", got)
	}
	if got := LimitWithBuffer(10); got != 11 {
		t.Fatalf("buffer should add one, got %d", got)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	original := Cursor{
		CreatedAt: time.Date(2025, 8, 14, 9, 30, 0, 123456789, time.UTC),
		ID:        uuid.New(),
	}

	encoded := EncodeCursor(original)
	parsed, err := ParseCursor(encoded)
	if err != nil {
		t.Fatalf("parse cursor: %v", err)
	}
	if parsed == nil {
		t.Fatal("expected cursor, got nil")
	}
	if !parsed.CreatedAt.Equal(original.CreatedAt) {
		t.Fatalf("timestamp mismatch: %v vs %v", parsed.CreatedAt, original.CreatedAt)
	}
	if parsed.ID != original.ID {
		t.Fatalf("id mismatch: %s vs %s", parsed.ID, original.ID)
	}
}

func TestParseCursorInvalid(t *testing.T) {
	if cursor, err := ParseCursor("  "); err != nil || cursor != nil {
		t.Fatalf("blank cursor should be nil/nil, got %v %v", cursor, err)
	}
	if _, err := ParseCursor("not-base64!!"); err == nil {
		t.Fatal("expected decode error")
	}
	if _, err := ParseCursor("bm8tcGlwZQ"); err == nil {
		t.Fatal("expected format error for cursor without separator")
	}
}
