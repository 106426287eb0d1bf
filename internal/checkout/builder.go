package checkout

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/lucasmendez/pizzeria-backend/internal/cart"
	pkgerrors "github.com/lucasmendez/pizzeria-backend/pkg/errors"
)

// DeliveryMode selects between home delivery and pickup at the shop.
type DeliveryMode string

const (
	ModeDelivery DeliveryMode = "delivery"
	ModePickup   DeliveryMode = "pickup"
)

// ParseDeliveryMode accepts the API's mode spelling.
func ParseDeliveryMode(value string) (DeliveryMode, error) {
	switch DeliveryMode(strings.ToLower(strings.TrimSpace(value))) {
	case ModeDelivery:
		return ModeDelivery, nil
	case ModePickup:
		return ModePickup, nil
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("modo de entrega inválido %q", value))
}

// Input carries the customer fields collected at checkout.
type Input struct {
	CustomerName string
	Address      string
	Notes        string
	Mode         DeliveryMode
}

// Order is the rendered checkout: the plain order text and the deep
// link that hands it to WhatsApp. Opening the link and clearing the
// cart are the caller's side effects.
type Order struct {
	Message string
	URL     string
}

const separatorWidth = 40

// Build validates the input and renders the deterministic order
// message plus wa.me deep link. It is a pure function of its arguments;
// now supplies the ticket timestamp and should already be in the
// pizzeria's timezone.
func Build(in Input, c *cart.Cart, contactNumber string, now time.Time) (*Order, error) {
	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Por favor, ingresa tu nombre y apellido")
	}

	address := strings.TrimSpace(in.Address)
	switch in.Mode {
	case ModeDelivery:
		if address == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Por favor, ingresa la dirección de envío")
		}
	case ModePickup:
		// Pickup ignores whatever the address field holds.
		address = ""
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "modo de entrega requerido")
	}

	if c == nil || c.Len() == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "No hay productos en el carrito")
	}

	contact := strings.TrimSpace(contactNumber)
	if contact == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "número de contacto requerido")
	}

	message := renderMessage(name, address, strings.TrimSpace(in.Notes), in.Mode, c, now)

	return &Order{
		Message: message,
		URL:     "https://wa.me/" + contact + "?text=" + encodeComponent(message),
	}, nil
}

func renderMessage(name, address, notes string, mode DeliveryMode, c *cart.Cart, now time.Time) string {
	var b strings.Builder
	separator := strings.Repeat("-", separatorWidth)

	b.WriteString("🍕 *NUEVO PEDIDO DE PIZZERÍA* 🍕\n\n")
	fmt.Fprintf(&b, "👤 *Cliente:* %s\n", name)
	if mode == ModePickup {
		b.WriteString("📍 *Retiro en local*\n\n")
	} else {
		fmt.Fprintf(&b, "📍 *Dirección:* %s\n\n", address)
	}
	if notes != "" {
		fmt.Fprintf(&b, "📝 *Observaciones:* %s\n\n", notes)
	}

	b.WriteString("🛒 *DETALLE DEL PEDIDO:*\n")
	b.WriteString(separator + "\n")
	for _, line := range c.Lines() {
		fmt.Fprintf(&b, "• %s\n", line.Description())
		fmt.Fprintf(&b, "  Cantidad: %d - Precio: $%s c/u\n", line.Quantity, line.UnitPrice.String())
		fmt.Fprintf(&b, "  Subtotal: $%s\n\n", line.Subtotal().String())
	}
	b.WriteString(separator + "\n")
	fmt.Fprintf(&b, "💰 *TOTAL GENERAL: $%s*\n\n", c.Total().String())
	fmt.Fprintf(&b, "⏰ Fecha: %s\n", now.Format("2/1/2006"))
	fmt.Fprintf(&b, "🕐 Hora: %s", now.Format("15:04:05"))

	return b.String()
}

// componentUnescaper undoes the escapes QueryEscape applies beyond the
// browser rule: encodeURIComponent leaves !'()*~ and spells space %20.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
	"%7E", "~",
)

// encodeComponent percent-encodes the message the way browsers do for
// query text.
func encodeComponent(value string) string {
	return componentUnescaper.Replace(url.QueryEscape(value))
}
