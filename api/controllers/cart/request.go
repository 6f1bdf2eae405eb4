package cart

import (
	"github.com/google/uuid"

	cartdto "github.com/brunomacedo/vitrinezap-backend/api/controllers/cart/dto"
	"github.com/brunomacedo/vitrinezap-backend/internal/products"
	"github.com/brunomacedo/vitrinezap-backend/pkg/enums"
	pkgerrors "github.com/brunomacedo/vitrinezap-backend/pkg/errors"
	"github.com/brunomacedo/vitrinezap-backend/pkg/types"
)

func toLineInput(payload cartdto.AddItemRequest) (products.LineInput, error) {
	productID, err := uuid.Parse(payload.ProductID)
	if err != nil {
		return products.LineInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
	}

	input := products.LineInput{
		ProductID: productID,
		Quantity:  payload.Quantity,
		GradeMode: enums.FlexibleGradeMode(payload.GradeMode),
	}

	if payload.VariationID != nil {
		variationID, err := uuid.Parse(*payload.VariationID)
		if err != nil {
			return products.LineInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid variation id")
		}
		input.VariationID = &variationID
	}

	if len(payload.CustomSelection) > 0 {
		entries := make([]types.CustomGradeItem, 0, len(payload.CustomSelection))
		for _, entry := range payload.CustomSelection {
			entries = append(entries, types.CustomGradeItem{
				Color:    entry.Color,
				Size:     entry.Size,
				Quantity: entry.Quantity,
			})
		}
		input.CustomSelection = &types.CustomGradeSelection{Items: entries}
	}

	return input, nil
}
