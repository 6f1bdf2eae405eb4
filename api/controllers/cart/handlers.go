package cart

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	cartdto "github.com/brunomacedo/vitrinezap-backend/api/controllers/cart/dto"
	"github.com/brunomacedo/vitrinezap-backend/api/middleware"
	"github.com/brunomacedo/vitrinezap-backend/api/responses"
	"github.com/brunomacedo/vitrinezap-backend/api/validators"
	cartsvc "github.com/brunomacedo/vitrinezap-backend/internal/cart"
	"github.com/brunomacedo/vitrinezap-backend/internal/products"
	"github.com/brunomacedo/vitrinezap-backend/pkg/enums"
	pkgerrors "github.com/brunomacedo/vitrinezap-backend/pkg/errors"
	"github.com/brunomacedo/vitrinezap-backend/pkg/logger"
)

// CartFetch returns the shopper's settled cart view.
func CartFetch(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine, loaded, cartID, err := engineFromRequest(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartView(cartID, engine, loaded.Notice))
	}
}

// CartAddItem resolves the requested product, prices the line and adds it
// to the cart.
func CartAddItem(manager *cartsvc.Manager, lines products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if lines == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		engine, loaded, cartID, err := engineFromRequest(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartdto.AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := toLineInput(payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, hint, err := lines.BuildCartLine(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := engine.AddItem(r.Context(), item, hint)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, cartdto.AddItemResult{
			Item:           newCartLine(result.Item),
			Merged:         result.Merged,
			NewlyWholesale: result.NewlyWholesale,
			Cart:           newCartView(cartID, engine, loaded.Notice),
		})
	}
}

// CartUpdateItem sets the absolute quantity of a cart line; zero removes it.
func CartUpdateItem(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine, _, cartID, err := engineFromRequest(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID := chi.URLParam(r, "itemID")
		if itemID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		var payload cartdto.UpdateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// the line's own snapshot decides whether the wholesale-only
		// quantity floor applies
		hint := lineHint(engine, itemID)
		if err := engine.UpdateQuantity(r.Context(), itemID, payload.Quantity, hint, nil); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartView(cartID, engine, ""))
	}
}

// CartRemoveItem drops one line from the cart.
func CartRemoveItem(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine, _, cartID, err := engineFromRequest(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID := chi.URLParam(r, "itemID")
		if itemID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		if err := engine.RemoveItem(r.Context(), itemID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartView(cartID, engine, ""))
	}
}

// CartClear empties the cart and its persisted snapshot.
func CartClear(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine, _, cartID, err := engineFromRequest(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := engine.Clear(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartView(cartID, engine, ""))
	}
}

func lineHint(engine *cartsvc.Engine, itemID string) enums.PriceModel {
	for _, item := range engine.Items() {
		if item.ID == itemID {
			return item.Product.PriceModelHint
		}
	}
	return ""
}

func engineFromRequest(r *http.Request, manager *cartsvc.Manager) (*cartsvc.Engine, cartsvc.LoadResult, string, error) {
	if manager == nil {
		return nil, cartsvc.LoadResult{}, "", pkgerrors.New(pkgerrors.CodeInternal, "cart manager unavailable")
	}

	cartID := middleware.CartIDFromContext(r.Context())
	if cartID == "" {
		return nil, cartsvc.LoadResult{}, "", pkgerrors.New(pkgerrors.CodeUnauthorized, "cart session missing")
	}

	engine, loaded, err := manager.Engine(r.Context(), cartID, middleware.StoreIDFromContext(r.Context()))
	if err != nil {
		return nil, cartsvc.LoadResult{}, "", err
	}
	return engine, loaded, cartID, nil
}
