package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	cases := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeInsufficientStock, http.StatusBadRequest},
		{CodeInvalidCommand, http.StatusBadRequest},
		{CodeRateLimit, http.StatusTooManyRequests},
		{CodeInternal, http.StatusInternalServerError},
		{CodeDependency, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		meta := MetadataFor(tc.code)
		if meta.HTTPStatus != tc.status {
			t.Fatalf("code %s: expected status %d got %d", tc.code, tc.status, meta.HTTPStatus)
		}
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	meta := MetadataFor(Code("BOGUS"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("boom")
	err := Wrap(CodeDependency, cause, "db: insert sale")
	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to survive errors.Is")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("expected dependency code, got %s", err.Code())
	}
}

func TestWrapNilCauseActsLikeNew(t *testing.T) {
	err := Wrap(CodeValidation, nil, "quantity must be positive")
	if err.Unwrap() != nil {
		t.Fatal("expected nil cause")
	}
	if err.Error() != fmt.Sprintf("%s: quantity must be positive", CodeValidation) {
		t.Fatalf("unexpected error string %q", err.Error())
	}
}

func TestAsFindsTypedErrorInChain(t *testing.T) {
	inner := New(CodeInsufficientStock, "not enough items in stock")
	outer := fmt.Errorf("sell: %w", inner)
	typed := As(outer)
	if typed == nil || typed.Code() != CodeInsufficientStock {
		t.Fatalf("expected insufficient stock error, got %v", typed)
	}
}

func TestAsReturnsNilForPlainErrors(t *testing.T) {
	if typed := As(stdErrors.New("plain")); typed != nil {
		t.Fatalf("expected nil, got %v", typed)
	}
	if typed := As(nil); typed != nil {
		t.Fatalf("expected nil for nil input, got %v", typed)
	}
}

func TestWithDetails(t *testing.T) {
	err := New(CodeInvalidCommand, "invalid command").WithDetails(map[string]any{"raw": "@oops"})
	details, ok := err.Details().(map[string]any)
	if !ok || details["raw"] != "@oops" {
		t.Fatalf("unexpected details %v", err.Details())
	}
}
