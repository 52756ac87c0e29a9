package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/oyehq/oye-backend/pkg/enums"
	pkgerrors "github.com/oyehq/oye-backend/pkg/errors"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParseSalesWindow reads an optional trailing-window query parameter. A nil
// result means no window, so callers roll up the full ledger.
func ParseSalesWindow(r *http.Request, key string) (*enums.SalesWindow, error) {
	raw := strings.ToLower(strings.TrimSpace(r.URL.Query().Get(key)))
	if raw == "" {
		return nil, nil
	}
	window, err := enums.ParseSalesWindow(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown sales window").
			WithDetails(map[string]any{"field": key, "allowed": []string{"day", "week", "month", "year"}})
	}
	return &window, nil
}
