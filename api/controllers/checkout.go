package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/brunomacedo/vitrinezap-backend/api/middleware"
	"github.com/brunomacedo/vitrinezap-backend/api/responses"
	"github.com/brunomacedo/vitrinezap-backend/api/validators"
	cartsvc "github.com/brunomacedo/vitrinezap-backend/internal/cart"
	checkoutsvc "github.com/brunomacedo/vitrinezap-backend/internal/checkout"
	"github.com/brunomacedo/vitrinezap-backend/pkg/enums"
	pkgerrors "github.com/brunomacedo/vitrinezap-backend/pkg/errors"
	"github.com/brunomacedo/vitrinezap-backend/pkg/logger"
)

type checkoutRequest struct {
	StoreID         string  `json:"store_id" validate:"required,uuid4"`
	CustomerName    string  `json:"customer_name" validate:"required"`
	CustomerPhone   string  `json:"customer_phone" validate:"required"`
	CustomerEmail   *string `json:"customer_email,omitempty" validate:"omitempty,email"`
	ShippingMethod  string  `json:"shipping_method" validate:"required,oneof=delivery pickup"`
	ShippingAddress *string `json:"shipping_address,omitempty"`
	PaymentMethod   string  `json:"payment_method" validate:"required,oneof=whatsapp online"`
}

// Checkout submits the shopper's settled cart as an order.
func Checkout(manager *cartsvc.Manager, svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart manager unavailable"))
			return
		}
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		cartID := middleware.CartIDFromContext(r.Context())
		if cartID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "cart session missing"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		storeID, err := uuid.Parse(payload.StoreID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid store id"))
			return
		}

		engine, _, err := manager.Engine(r.Context(), cartID, middleware.StoreIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.PlaceOrder(r.Context(), engine, checkoutsvc.PlaceOrderInput{
			CartID:          cartID,
			StoreID:         storeID,
			CustomerName:    payload.CustomerName,
			CustomerPhone:   payload.CustomerPhone,
			CustomerEmail:   payload.CustomerEmail,
			ShippingMethod:  enums.ShippingMethod(payload.ShippingMethod),
			ShippingAddress: payload.ShippingAddress,
			PaymentMethod:   enums.PaymentMethod(payload.PaymentMethod),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
