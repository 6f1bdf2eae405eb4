package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/brunomacedo/vitrinezap-backend/internal/cart"
	"github.com/brunomacedo/vitrinezap-backend/pkg/db/models"
	"github.com/brunomacedo/vitrinezap-backend/pkg/enums"
	pkgerrors "github.com/brunomacedo/vitrinezap-backend/pkg/errors"
	"github.com/brunomacedo/vitrinezap-backend/pkg/logger"
	"github.com/brunomacedo/vitrinezap-backend/pkg/types"
)

type stubRepo struct {
	created   *models.Order
	createErr error
	refs      map[uuid.UUID]string
}

func (s *stubRepo) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	order.ID = uuid.New()
	s.created = order
	return order, nil
}

func (s *stubRepo) UpdateDispatchRef(ctx context.Context, id uuid.UUID, ref string) error {
	if s.refs == nil {
		s.refs = map[uuid.UUID]string{}
	}
	s.refs[id] = ref
	return nil
}

type stubStores struct {
	model *types.StorePriceModel
}

func (s *stubStores) FetchStoreModel(ctx context.Context, storeID string) *types.StorePriceModel {
	return s.model
}

type stubDispatcher struct {
	calls int
	ref   string
	err   error
}

func (s *stubDispatcher) Dispatch(ctx context.Context, order *models.Order) (string, error) {
	s.calls++
	return s.ref, s.err
}

type stubGateway struct {
	calls int
	ref   string
	err   error
}

func (s *stubGateway) CreatePayment(ctx context.Context, order *models.Order) (string, error) {
	s.calls++
	return s.ref, s.err
}

type stubCart struct {
	items   []types.CartItem
	totals  cart.Totals
	cleared bool
}

func (s *stubCart) Items() []types.CartItem { return s.items }
func (s *stubCart) Totals() cart.Totals     { return s.totals }
func (s *stubCart) Clear(ctx context.Context) error {
	s.cleared = true
	return nil
}

func checkoutLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel})
}

func filledCart() *stubCart {
	wholesale := decimal.NewFromInt(7)
	return &stubCart{
		items: []types.CartItem{
			{
				ID: "item-1",
				Product: types.ProductSnapshot{
					ID:             "p1",
					Name:           "Tenis Runner",
					RetailPrice:    decimal.NewFromInt(10),
					WholesalePrice: &wholesale,
					StoreID:        "s1",
				},
				Quantity:         5,
				Price:            decimal.NewFromInt(7),
				OriginalPrice:    decimal.NewFromInt(10),
				CatalogType:      enums.CatalogTypeRetail,
				IsWholesalePrice: true,
				Variation:        &types.VariationRef{ID: "v1", Color: "black", Size: "40"},
			},
		},
		totals: cart.Totals{TotalAmount: decimal.NewFromInt(35), TotalItems: 5},
	}
}

func validInput() PlaceOrderInput {
	return PlaceOrderInput{
		CartID:         "cart-1",
		StoreID:        uuid.New(),
		CustomerName:   "Maria Silva",
		CustomerPhone:  "+5511999990000",
		ShippingMethod: enums.ShippingMethodPickup,
		PaymentMethod:  enums.PaymentMethodWhatsApp,
	}
}

func newTestService(t *testing.T, repo *stubRepo, stores *stubStores, dispatcher *stubDispatcher, gateway *stubGateway) Service {
	t.Helper()
	var gw PaymentGateway
	if gateway != nil {
		gw = gateway
	}
	svc, err := NewService(repo, stores, dispatcher, gw, checkoutLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestPlaceOrderWhatsAppHandoff(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	dispatcher := &stubDispatcher{ref: "https://wa.me/5511999990000?text=order"}
	svc := newTestService(t, repo, &stubStores{}, dispatcher, nil)
	view := filledCart()

	dto, err := svc.PlaceOrder(context.Background(), view, validInput())
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if dispatcher.calls != 1 {
		t.Fatalf("expected one dispatch call, got %d", dispatcher.calls)
	}
	if dto.DispatchRef == nil || *dto.DispatchRef != dispatcher.ref {
		t.Fatalf("expected dispatch ref recorded, got %v", dto.DispatchRef)
	}
	if !dto.TotalAmount.Equal(decimal.NewFromInt(35)) || dto.TotalItems != 5 {
		t.Fatalf("totals not carried to the order: %+v", dto)
	}
	if dto.Status != enums.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", dto.Status)
	}
	if !view.cleared {
		t.Fatalf("cart must be cleared after checkout")
	}
	if repo.created == nil || len(repo.created.Items) != 1 {
		t.Fatalf("expected persisted order with one line")
	}
	line := repo.created.Items[0]
	if line.VariationLabel == nil || *line.VariationLabel != "black / 40" {
		t.Fatalf("unexpected variation label %v", line.VariationLabel)
	}
	if !line.TotalPrice.Equal(decimal.NewFromInt(35)) {
		t.Fatalf("expected line total 35, got %s", line.TotalPrice)
	}
}

func TestPlaceOrderOnlinePayment(t *testing.T) {
	t.Parallel()

	gateway := &stubGateway{ref: "pay_123"}
	dispatcher := &stubDispatcher{}
	svc := newTestService(t, &stubRepo{}, &stubStores{}, dispatcher, gateway)

	input := validInput()
	input.PaymentMethod = enums.PaymentMethodOnline
	dto, err := svc.PlaceOrder(context.Background(), filledCart(), input)
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if gateway.calls != 1 || dispatcher.calls != 0 {
		t.Fatalf("expected gateway handoff only, gateway=%d dispatcher=%d", gateway.calls, dispatcher.calls)
	}
	if dto.DispatchRef == nil || *dto.DispatchRef != "pay_123" {
		t.Fatalf("expected payment ref, got %v", dto.DispatchRef)
	}
}

func TestPlaceOrderOnlineWithoutGatewayRejected(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubRepo{}, &stubStores{}, &stubDispatcher{}, nil)
	input := validInput()
	input.PaymentMethod = enums.PaymentMethodOnline
	_, err := svc.PlaceOrder(context.Background(), filledCart(), input)
	if err == nil {
		t.Fatalf("expected rejection without a configured gateway")
	}
}

func TestPlaceOrderEmptyCartRejected(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubRepo{}, &stubStores{}, &stubDispatcher{}, nil)
	_, err := svc.PlaceOrder(context.Background(), &stubCart{}, validInput())
	var typed *pkgerrors.Error
	if !errors.As(err, &typed) || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPlaceOrderMinPurchaseGate(t *testing.T) {
	t.Parallel()

	stores := &stubStores{model: &types.StorePriceModel{
		StoreID:            "s1",
		PriceModel:         enums.PriceModelSimpleWholesale,
		MinPurchaseEnabled: true,
		MinPurchaseAmount:  decimal.NewFromInt(100),
		MinPurchaseMessage: "Pedido minimo de R$ 100",
	}}
	svc := newTestService(t, &stubRepo{}, stores, &stubDispatcher{}, nil)

	_, err := svc.PlaceOrder(context.Background(), filledCart(), validInput())
	var typed *pkgerrors.Error
	if !errors.As(err, &typed) || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if typed.Message() != "Pedido minimo de R$ 100" {
		t.Fatalf("expected the store's own message, got %q", typed.Message())
	}

	stores.model.MinPurchaseAmount = decimal.NewFromInt(35)
	if _, err := svc.PlaceOrder(context.Background(), filledCart(), validInput()); err != nil {
		t.Fatalf("total at the minimum must pass: %v", err)
	}
}

func TestPlaceOrderDeliveryRequiresAddress(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubRepo{}, &stubStores{}, &stubDispatcher{}, nil)
	input := validInput()
	input.ShippingMethod = enums.ShippingMethodDelivery
	_, err := svc.PlaceOrder(context.Background(), filledCart(), input)
	if err == nil {
		t.Fatalf("expected rejection without a shipping address")
	}

	address := "Rua das Flores, 123"
	input.ShippingAddress = &address
	if _, err := svc.PlaceOrder(context.Background(), filledCart(), input); err != nil {
		t.Fatalf("delivery with address must pass: %v", err)
	}
}

func TestPlaceOrderDispatchFailureKeepsCart(t *testing.T) {
	t.Parallel()

	dispatcher := &stubDispatcher{err: errors.New("channel unavailable")}
	svc := newTestService(t, &stubRepo{}, &stubStores{}, dispatcher, nil)
	view := filledCart()

	_, err := svc.PlaceOrder(context.Background(), view, validInput())
	var typed *pkgerrors.Error
	if !errors.As(err, &typed) || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if view.cleared {
		t.Fatalf("cart must not be cleared when the handoff fails")
	}
}

func TestPlaceOrderGradeLineLabels(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	svc := newTestService(t, repo, &stubStores{}, &stubDispatcher{ref: "ref"}, nil)

	view := filledCart()
	view.items = append(view.items, types.CartItem{
		ID: "grade-1",
		Product: types.ProductSnapshot{
			ID:      "p2",
			Name:    "Grade 34-39",
			StoreID: "s1",
		},
		Quantity:      2,
		Price:         decimal.NewFromInt(120),
		OriginalPrice: decimal.NewFromInt(120),
		CatalogType:   enums.CatalogTypeRetail,
		GradeInfo: &types.GradeInfo{
			Name:         "Grade 34-39",
			Sizes:        []string{"34", "35", "36"},
			PairsPerSize: []int{4, 4, 4},
		},
		FlexibleGradeMode: enums.FlexibleGradeModeHalf,
	})
	view.totals = cart.Totals{TotalAmount: decimal.NewFromInt(275), TotalItems: 7}

	if _, err := svc.PlaceOrder(context.Background(), view, validInput()); err != nil {
		t.Fatalf("place order: %v", err)
	}
	if len(repo.created.Items) != 2 {
		t.Fatalf("expected two lines, got %d", len(repo.created.Items))
	}
	grade := repo.created.Items[1]
	if grade.GradeLabel == nil || *grade.GradeLabel != "Grade 34-39 (half)" {
		t.Fatalf("unexpected grade label %v", grade.GradeLabel)
	}
}
