package enums

import "fmt"

// PriceModel controls how a store exposes wholesale pricing to buyers.
type PriceModel string

const (
	PriceModelRetailOnly       PriceModel = "retail_only"
	PriceModelSimpleWholesale  PriceModel = "simple_wholesale"
	PriceModelGradualWholesale PriceModel = "gradual_wholesale"
	PriceModelWholesaleOnly    PriceModel = "wholesale_only"
)

var validPriceModels = []PriceModel{
	PriceModelRetailOnly,
	PriceModelSimpleWholesale,
	PriceModelGradualWholesale,
	PriceModelWholesaleOnly,
}

// String implements fmt.Stringer.
func (p PriceModel) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PriceModel.
func (p PriceModel) IsValid() bool {
	for _, candidate := range validPriceModels {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePriceModel converts raw input into a PriceModel.
func ParsePriceModel(value string) (PriceModel, error) {
	for _, candidate := range validPriceModels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid price model %q", value)
}
