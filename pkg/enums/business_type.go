package enums

import "fmt"

// BusinessType classifies what kind of trade a shop runs.
type BusinessType string

const (
	BusinessTypeRetail        BusinessType = "retail"
	BusinessTypeWholesale     BusinessType = "wholesale"
	BusinessTypeService       BusinessType = "service"
	BusinessTypeManufacturing BusinessType = "manufacturing"
)

var validBusinessTypes = []BusinessType{
	BusinessTypeRetail,
	BusinessTypeWholesale,
	BusinessTypeService,
	BusinessTypeManufacturing,
}

// String implements fmt.Stringer.
func (b BusinessType) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BusinessType.
func (b BusinessType) IsValid() bool {
	for _, candidate := range validBusinessTypes {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBusinessType converts raw input into a BusinessType.
func ParseBusinessType(value string) (BusinessType, error) {
	for _, candidate := range validBusinessTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid business type %q", value)
}
