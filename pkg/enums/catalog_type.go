package enums

import "fmt"

// CatalogType identifies which storefront catalog an item was added from.
type CatalogType string

const (
	CatalogTypeRetail    CatalogType = "retail"
	CatalogTypeWholesale CatalogType = "wholesale"
)

var validCatalogTypes = []CatalogType{
	CatalogTypeRetail,
	CatalogTypeWholesale,
}

// String implements fmt.Stringer.
func (c CatalogType) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CatalogType.
func (c CatalogType) IsValid() bool {
	for _, candidate := range validCatalogTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCatalogType converts raw input into a CatalogType.
func ParseCatalogType(value string) (CatalogType, error) {
	for _, candidate := range validCatalogTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid catalog type %q", value)
}
