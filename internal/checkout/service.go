package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/brunomacedo/vitrinezap-backend/internal/cart"
	"github.com/brunomacedo/vitrinezap-backend/pkg/db/models"
	"github.com/brunomacedo/vitrinezap-backend/pkg/enums"
	pkgerrors "github.com/brunomacedo/vitrinezap-backend/pkg/errors"
	"github.com/brunomacedo/vitrinezap-backend/pkg/logger"
	"github.com/brunomacedo/vitrinezap-backend/pkg/types"
)

// CartView is the read surface the orchestrator needs from a loaded cart
// engine. The engine has already produced stable, validated totals.
type CartView interface {
	Items() []types.CartItem
	Totals() cart.Totals
	Clear(ctx context.Context) error
}

// StoreModelSource resolves the store's pricing configuration, used here
// for the minimum-purchase gate.
type StoreModelSource interface {
	FetchStoreModel(ctx context.Context, storeID string) *types.StorePriceModel
}

// MessageDispatcher hands a persisted order to the messaging channel and
// returns a dispatch reference (e.g. a WhatsApp link). Message formatting
// lives behind this boundary.
type MessageDispatcher interface {
	Dispatch(ctx context.Context, order *models.Order) (string, error)
}

// PaymentGateway hands a persisted order to the online payment
// collaborator and returns a payment reference.
type PaymentGateway interface {
	CreatePayment(ctx context.Context, order *models.Order) (string, error)
}

type orderRepository interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	UpdateDispatchRef(ctx context.Context, id uuid.UUID, ref string) error
}

// PlaceOrderInput carries the customer and fulfillment data collected by
// the checkout form.
type PlaceOrderInput struct {
	CartID          string
	StoreID         uuid.UUID
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   *string
	ShippingMethod  enums.ShippingMethod
	ShippingAddress *string
	PaymentMethod   enums.PaymentMethod
}

// Service orchestrates checkout: build the order from the settled cart,
// persist it, hand off to the channel collaborator, then clear the cart.
type Service interface {
	PlaceOrder(ctx context.Context, cartView CartView, input PlaceOrderInput) (*OrderDTO, error)
}

type service struct {
	repo       orderRepository
	stores     StoreModelSource
	dispatcher MessageDispatcher
	gateway    PaymentGateway
	logg       *logger.Logger
}

// NewService builds a checkout service. The gateway may be nil when online
// payment is not configured for the deployment; whatsapp checkout still
// works.
func NewService(repo orderRepository, stores StoreModelSource, dispatcher MessageDispatcher, gateway PaymentGateway, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store model source required")
	}
	if dispatcher == nil {
		return nil, fmt.Errorf("message dispatcher required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:       repo,
		stores:     stores,
		dispatcher: dispatcher,
		gateway:    gateway,
		logg:       logg,
	}, nil
}

func (s *service) PlaceOrder(ctx context.Context, cartView CartView, input PlaceOrderInput) (*OrderDTO, error) {
	if cartView == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	items := cartView.Items()
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	totals := cartView.Totals()

	if err := s.checkMinPurchase(ctx, input.StoreID.String(), totals); err != nil {
		return nil, err
	}

	order := buildOrder(input, items, totals)
	order, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persisting order")
	}

	ctx = s.logg.WithFields(ctx, map[string]any{"order_id": order.ID.String(), "cart_id": input.CartID})
	ref, err := s.handoff(ctx, order, input.PaymentMethod)
	if err != nil {
		// the order is persisted; the handoff can be retried out of band
		s.logg.Error(ctx, "checkout handoff failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "dispatching order")
	}
	if ref != "" {
		order.DispatchRef = &ref
		if err := s.repo.UpdateDispatchRef(ctx, order.ID, ref); err != nil {
			s.logg.Error(ctx, "recording dispatch ref failed", err)
		}
	}

	if err := cartView.Clear(ctx); err != nil {
		s.logg.Error(ctx, "clearing cart after checkout failed", err)
	}
	s.logg.Info(ctx, "order placed")
	return orderDTO(order), nil
}

func (s *service) handoff(ctx context.Context, order *models.Order, method enums.PaymentMethod) (string, error) {
	switch method {
	case enums.PaymentMethodOnline:
		if s.gateway == nil {
			return "", pkgerrors.New(pkgerrors.CodeValidation, "online payment is not available for this store")
		}
		return s.gateway.CreatePayment(ctx, order)
	default:
		return s.dispatcher.Dispatch(ctx, order)
	}
}

func (s *service) checkMinPurchase(ctx context.Context, storeID string, totals cart.Totals) error {
	model := s.stores.FetchStoreModel(ctx, storeID)
	if model == nil || !model.MinPurchaseEnabled {
		return nil
	}
	if totals.TotalAmount.GreaterThanOrEqual(model.MinPurchaseAmount) {
		return nil
	}
	message := model.MinPurchaseMessage
	if message == "" {
		message = fmt.Sprintf("This store requires a minimum purchase of %s", model.MinPurchaseAmount.StringFixed(2))
	}
	return pkgerrors.New(pkgerrors.CodeValidation, message)
}

func validateInput(input PlaceOrderInput) error {
	if input.StoreID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "store id is required")
	}
	if strings.TrimSpace(input.CustomerName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if strings.TrimSpace(input.CustomerPhone) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer phone is required")
	}
	if !input.ShippingMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown shipping method %q", input.ShippingMethod))
	}
	if input.ShippingMethod == enums.ShippingMethodDelivery &&
		(input.ShippingAddress == nil || strings.TrimSpace(*input.ShippingAddress) == "") {
		return pkgerrors.New(pkgerrors.CodeValidation, "shipping address is required for delivery")
	}
	if !input.PaymentMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown payment method %q", input.PaymentMethod))
	}
	return nil
}

func buildOrder(input PlaceOrderInput, items []types.CartItem, totals cart.Totals) *models.Order {
	order := &models.Order{
		StoreID:         input.StoreID,
		CartID:          input.CartID,
		CustomerName:    strings.TrimSpace(input.CustomerName),
		CustomerPhone:   strings.TrimSpace(input.CustomerPhone),
		CustomerEmail:   input.CustomerEmail,
		ShippingMethod:  input.ShippingMethod,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   input.PaymentMethod,
		Status:          enums.OrderStatusPending,
		TotalAmount:     totals.TotalAmount,
		TotalItems:      totals.TotalItems,
	}
	for _, item := range items {
		order.Items = append(order.Items, buildLineItem(item))
	}
	return order
}

func buildLineItem(item types.CartItem) models.OrderItem {
	line := models.OrderItem{
		ProductID:   item.Product.ID,
		ProductName: item.Product.Name,
		Quantity:    item.Quantity,
		UnitPrice:   item.Price,
		TotalPrice:  item.LineTotal(),
		IsWholesale: item.IsWholesalePrice,
	}
	if item.Variation != nil {
		label := variationLabel(*item.Variation)
		if label != "" {
			line.VariationLabel = &label
		}
	}
	if item.GradeInfo != nil {
		label := gradeLabel(item)
		line.GradeLabel = &label
	}
	return line
}

func variationLabel(ref types.VariationRef) string {
	parts := make([]string, 0, 2)
	if ref.Color != "" {
		parts = append(parts, ref.Color)
	}
	if ref.Size != "" {
		parts = append(parts, ref.Size)
	}
	return strings.Join(parts, " / ")
}

func gradeLabel(item types.CartItem) string {
	name := item.GradeInfo.Name
	if name == "" {
		name = "Grade"
	}
	if item.FlexibleGradeMode == enums.FlexibleGradeModeCustom && item.CustomGradeSelection != nil {
		return fmt.Sprintf("%s (custom, %d pairs)", name, item.CustomGradeSelection.SumPairs())
	}
	if item.FlexibleGradeMode == enums.FlexibleGradeModeHalf {
		return fmt.Sprintf("%s (half)", name)
	}
	return fmt.Sprintf("%s (%d pairs)", name, item.GradeInfo.TotalPairs())
}
