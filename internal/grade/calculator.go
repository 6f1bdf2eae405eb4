package grade

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/brunomacedo/vitrinezap-backend/pkg/enums"
	pkgerrors "github.com/brunomacedo/vitrinezap-backend/pkg/errors"
	"github.com/brunomacedo/vitrinezap-backend/pkg/types"
)

var (
	hundred            = decimal.NewFromInt(100)
	defaultHalfPercent = decimal.NewFromInt(50)
)

// Quote is the priced outcome of one grade unit. TotalPrice is the price of
// a single grade (assortment pack), not of the whole cart line.
type Quote struct {
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
	PairCount  int
}

// Price computes the quote for one grade unit. It is pure: no I/O, no
// side effects. cfg and custom are optional except where the mode
// requires them.
func Price(base decimal.Decimal, info types.GradeInfo, cfg *types.FlexibleGradeConfig, mode enums.FlexibleGradeMode, custom *types.CustomGradeSelection) (Quote, error) {
	if base.Sign() < 0 {
		return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "base price must not be negative")
	}

	switch mode {
	case enums.FlexibleGradeModeHalf:
		return halfQuote(base, info, cfg)
	case enums.FlexibleGradeModeCustom:
		return customQuote(base, cfg, custom)
	case enums.FlexibleGradeModeFull, "":
		return fullQuote(base, info), nil
	default:
		return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown grade mode %q", mode))
	}
}

func fullQuote(base decimal.Decimal, info types.GradeInfo) Quote {
	pairs := info.TotalPairs()
	return Quote{
		UnitPrice:  base,
		TotalPrice: base.Mul(decimal.NewFromInt(int64(pairs))),
		PairCount:  pairs,
	}
}

func halfQuote(base decimal.Decimal, info types.GradeInfo, cfg *types.FlexibleGradeConfig) (Quote, error) {
	if cfg == nil || !cfg.EnableHalfGrade {
		return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "half grade purchase is not enabled for this variation")
	}

	half := HalfComposition(info, cfg.HalfGradePercentage)
	pairs := half.TotalPairs()
	if pairs == 0 {
		return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "half grade composition has no pairs")
	}

	discount := cfg.HalfGradeDiscountPercent.Div(hundred)
	unit := base.Mul(decimal.NewFromInt(1).Sub(discount)).Round(2)
	return Quote{
		UnitPrice:  unit,
		TotalPrice: unit.Mul(decimal.NewFromInt(int64(pairs))),
		PairCount:  pairs,
	}, nil
}

func customQuote(base decimal.Decimal, cfg *types.FlexibleGradeConfig, custom *types.CustomGradeSelection) (Quote, error) {
	if cfg == nil || !cfg.EnableCustomMix {
		return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "custom mix purchase is not enabled for this variation")
	}
	if custom == nil || len(custom.Items) == 0 {
		return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "custom mix selection is required")
	}
	for _, item := range custom.Items {
		if item.Quantity <= 0 {
			return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "custom mix entries need a positive quantity")
		}
	}

	pairs := custom.SumPairs()
	if cfg.CustomMixMinPairs > 0 && pairs < cfg.CustomMixMinPairs {
		return Quote{}, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("custom mix needs at least %d pairs, got %d", cfg.CustomMixMinPairs, pairs))
	}
	if cfg.CustomMixMaxColors > 0 && custom.DistinctColors() > cfg.CustomMixMaxColors {
		return Quote{}, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("custom mix allows at most %d colors, got %d", cfg.CustomMixMaxColors, custom.DistinctColors()))
	}

	unit := base.Add(cfg.CustomMixPriceAdjustment).Round(2)
	return Quote{
		UnitPrice:  unit,
		TotalPrice: unit.Mul(decimal.NewFromInt(int64(pairs))),
		PairCount:  pairs,
	}, nil
}

// HalfComposition derives the half-grade size run: each size's pair count
// is scaled by the configured percentage (50% when unset) and rounded
// half-up per size. Rounding per size keeps the assortment shape stable
// for display and is deterministic across passes.
func HalfComposition(info types.GradeInfo, percentage decimal.Decimal) types.GradeInfo {
	pct := percentage
	if pct.Sign() <= 0 {
		pct = defaultHalfPercent
	}
	ratio := pct.Div(hundred)

	pairs := make([]int, len(info.PairsPerSize))
	for i, count := range info.PairsPerSize {
		scaled := decimal.NewFromInt(int64(count)).Mul(ratio)
		pairs[i] = int(scaled.Round(0).IntPart())
	}
	return types.GradeInfo{
		Name:         info.Name,
		Sizes:        append([]string{}, info.Sizes...),
		PairsPerSize: pairs,
	}
}
