package cartdto

// AddItemRequest captures the storefront's add-to-cart intent. The server
// resolves the product and prices the line; the client only says what and
// how many.
type AddItemRequest struct {
	ProductID       string                 `json:"product_id" validate:"required,uuid4"`
	VariationID     *string                `json:"variation_id,omitempty" validate:"omitempty,uuid4"`
	Quantity        int                    `json:"quantity" validate:"required,gt=0"`
	GradeMode       string                 `json:"grade_mode,omitempty" validate:"omitempty,oneof=full half custom"`
	CustomSelection []CustomSelectionEntry `json:"custom_selection,omitempty" validate:"omitempty,dive"`
}

// CustomSelectionEntry is one hand-picked color/size/quantity row of a
// custom grade purchase.
type CustomSelectionEntry struct {
	Color    string `json:"color" validate:"required"`
	Size     string `json:"size" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// UpdateQuantityRequest sets the absolute quantity of a cart line. Zero
// removes the line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}
