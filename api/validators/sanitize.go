package validators

import "strings"

// SanitizeString trims whitespace and clamps free-text fields (shop names,
// item descriptions, customer labels) to maxLen bytes.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 && len(trimmed) > maxLen {
		return trimmed[:maxLen]
	}
	return trimmed
}
