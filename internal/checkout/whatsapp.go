package checkout

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brunomacedo/vitrinezap-backend/pkg/db/models"
	pkgerrors "github.com/brunomacedo/vitrinezap-backend/pkg/errors"
)

type storeFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

// WhatsAppDispatcher formats the order as a WhatsApp message and returns
// the wa.me link the storefront redirects the customer to. The store's
// number comes from its record; a store without one cannot take WhatsApp
// orders.
type WhatsAppDispatcher struct {
	stores storeFinder
}

// NewWhatsAppDispatcher builds the dispatcher.
func NewWhatsAppDispatcher(stores storeFinder) (*WhatsAppDispatcher, error) {
	if stores == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &WhatsAppDispatcher{stores: stores}, nil
}

// Dispatch implements MessageDispatcher.
func (d *WhatsAppDispatcher) Dispatch(ctx context.Context, order *models.Order) (string, error) {
	store, err := d.stores.FindByID(ctx, order.StoreID)
	if err != nil {
		return "", err
	}
	if store.WhatsAppNumber == nil || *store.WhatsAppNumber == "" {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "store has no whatsapp number configured")
	}

	number := sanitizeNumber(*store.WhatsAppNumber)
	message := formatOrderMessage(store.Name, order)
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, url.QueryEscape(message)), nil
}

func sanitizeNumber(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func formatOrderMessage(storeName string, order *models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*Novo pedido - %s*\n\n", storeName)
	fmt.Fprintf(&b, "Cliente: %s\n", order.CustomerName)
	fmt.Fprintf(&b, "Telefone: %s\n", order.CustomerPhone)
	fmt.Fprintf(&b, "Entrega: %s\n", shippingLabel(order))
	b.WriteString("\n*Itens:*\n")

	for _, item := range order.Items {
		label := item.ProductName
		if item.VariationLabel != nil && *item.VariationLabel != "" {
			label += " " + *item.VariationLabel
		}
		if item.GradeLabel != nil && *item.GradeLabel != "" {
			label += " " + *item.GradeLabel
		}
		fmt.Fprintf(&b, "%dx %s - %s\n", item.Quantity, label, formatBRL(item.TotalPrice))
		if item.IsWholesale {
			b.WriteString("  (preco de atacado)\n")
		}
	}

	fmt.Fprintf(&b, "\n*Total: %s*\n", formatBRL(order.TotalAmount))
	return b.String()
}

func shippingLabel(order *models.Order) string {
	if order.ShippingAddress != nil && *order.ShippingAddress != "" {
		return fmt.Sprintf("%s (%s)", order.ShippingMethod, *order.ShippingAddress)
	}
	return order.ShippingMethod.String()
}

func formatBRL(amount decimal.Decimal) string {
	return "R$ " + amount.StringFixed(2)
}
