package enums

import "fmt"

// ItemCategory buckets items for listing and analytics groupings.
type ItemCategory string

const (
	ItemCategoryGrocery     ItemCategory = "grocery"
	ItemCategoryElectronics ItemCategory = "electronics"
	ItemCategoryClothing    ItemCategory = "clothing"
	ItemCategoryFurniture   ItemCategory = "furniture"
	ItemCategoryAppliances  ItemCategory = "appliances"
	ItemCategoryBooks       ItemCategory = "books"
	ItemCategoryStationery  ItemCategory = "stationery"
	ItemCategoryToys        ItemCategory = "toys"
	ItemCategoryBeauty      ItemCategory = "beauty"
	ItemCategoryHealth      ItemCategory = "health"
	ItemCategoryPharmacy    ItemCategory = "pharmacy"
	ItemCategoryHardware    ItemCategory = "hardware"
	ItemCategorySoftware    ItemCategory = "software"
	ItemCategoryServices    ItemCategory = "services"
	ItemCategoryOther       ItemCategory = "other"
)

var validItemCategories = []ItemCategory{
	ItemCategoryGrocery,
	ItemCategoryElectronics,
	ItemCategoryClothing,
	ItemCategoryFurniture,
	ItemCategoryAppliances,
	ItemCategoryBooks,
	ItemCategoryStationery,
	ItemCategoryToys,
	ItemCategoryBeauty,
	ItemCategoryHealth,
	ItemCategoryPharmacy,
	ItemCategoryHardware,
	ItemCategorySoftware,
	ItemCategoryServices,
	ItemCategoryOther,
}

// String implements fmt.Stringer.
func (c ItemCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ItemCategory.
func (c ItemCategory) IsValid() bool {
	for _, candidate := range validItemCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseItemCategory converts raw input into an ItemCategory.
func ParseItemCategory(value string) (ItemCategory, error) {
	for _, candidate := range validItemCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item category %q", value)
}
