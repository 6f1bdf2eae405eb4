package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// GradeInfo describes a pre-packaged size assortment sold as one unit.
// Sizes and PairsPerSize are parallel slices ordered smallest size first.
type GradeInfo struct {
	Name         string   `json:"name"`
	Sizes        []string `json:"sizes"`
	PairsPerSize []int    `json:"pairs_per_size"`
}

// TotalPairs sums the per-size pair counts.
func (g GradeInfo) TotalPairs() int {
	total := 0
	for _, pairs := range g.PairsPerSize {
		total += pairs
	}
	return total
}

// Value serializes the grade composition to JSON.
func (g GradeInfo) Value() (driver.Value, error) {
	return json.Marshal(g)
}

// Scan decodes JSONB into the grade composition.
func (g *GradeInfo) Scan(value interface{}) error {
	if value == nil {
		*g = GradeInfo{}
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, g)
}

// FlexibleGradeConfig controls which purchase modes a grade variation offers
// and how half/custom purchases are priced.
type FlexibleGradeConfig struct {
	EnableFullGrade          bool            `json:"enable_full_grade"`
	EnableHalfGrade          bool            `json:"enable_half_grade"`
	EnableCustomMix          bool            `json:"enable_custom_mix"`
	HalfGradePercentage      decimal.Decimal `json:"half_grade_percentage"`
	HalfGradeDiscountPercent decimal.Decimal `json:"half_grade_discount_percent"`
	CustomMixMinPairs        int             `json:"custom_mix_min_pairs"`
	CustomMixMaxColors       int             `json:"custom_mix_max_colors"`
	CustomMixPriceAdjustment decimal.Decimal `json:"custom_mix_price_adjustment"`
}

// Value serializes the config to JSON.
func (f FlexibleGradeConfig) Value() (driver.Value, error) {
	return json.Marshal(f)
}

// Scan decodes JSONB into the config.
func (f *FlexibleGradeConfig) Scan(value interface{}) error {
	if value == nil {
		*f = FlexibleGradeConfig{}
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, f)
}

// CustomGradeItem is one hand-picked color/size/quantity entry.
type CustomGradeItem struct {
	Color    string `json:"color"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// CustomGradeSelection records a customer-built assortment.
type CustomGradeSelection struct {
	Items      []CustomGradeItem `json:"items"`
	TotalPairs int               `json:"total_pairs"`
}

// DistinctColors counts the distinct colors in the selection.
func (s CustomGradeSelection) DistinctColors() int {
	seen := map[string]struct{}{}
	for _, item := range s.Items {
		seen[item.Color] = struct{}{}
	}
	return len(seen)
}

// SumPairs recomputes the pair total from the entries.
func (s CustomGradeSelection) SumPairs() int {
	total := 0
	for _, item := range s.Items {
		total += item.Quantity
	}
	return total
}

func asJSON(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported scan type %T", value)
	}
}
