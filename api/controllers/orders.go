package controllers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lucasmendez/pizzeria-backend/api/responses"
	"github.com/lucasmendez/pizzeria-backend/api/validators"
	"github.com/lucasmendez/pizzeria-backend/internal/cart"
	"github.com/lucasmendez/pizzeria-backend/internal/catalog"
	"github.com/lucasmendez/pizzeria-backend/internal/checkout"
	"github.com/lucasmendez/pizzeria-backend/pkg/logger"
)

type orderLineRequest struct {
	ItemID    string  `json:"itemId"`
	ItemName  string  `json:"itemName" validate:"required"`
	Variant   string  `json:"variant" validate:"required,oneof=whole half"`
	BasePrice float64 `json:"basePrice" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
}

type quoteRequest struct {
	Lines []orderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

type quotedLine struct {
	ItemID      string          `json:"itemId,omitempty"`
	Description string          `json:"description"`
	Variant     string          `json:"variant"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type quoteResponse struct {
	Lines []quotedLine    `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// OrderQuote prices a cart snapshot: variant pricing per line plus the
// grand total. The storefront calls this whenever the cart changes.
func OrderQuote(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload quoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		c, err := cartFromLines(payload.Lines)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteData(w, newQuoteResponse(c))
	}
}

type checkoutRequest struct {
	CustomerName string             `json:"customerName" validate:"required"`
	Address      string             `json:"address"`
	Notes        string             `json:"notes"`
	DeliveryMode string             `json:"deliveryMode" validate:"required,oneof=delivery pickup"`
	Lines        []orderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

type checkoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	URL     string `json:"url"`
}

// OrderCheckout validates the customer fields, renders the order
// message, and returns the WhatsApp deep link. Opening the link and
// clearing the client-side cart stay with the storefront.
func OrderCheckout(store *catalog.Store, loc *time.Location, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		c, err := cartFromLines(payload.Lines)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mode, err := checkout.ParseDeliveryMode(payload.DeliveryMode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		contact := store.ReadContact(r.Context())
		order, err := checkout.Build(checkout.Input{
			CustomerName: payload.CustomerName,
			Address:      payload.Address,
			Notes:        payload.Notes,
			Mode:         mode,
		}, c, contact.ContactNumber, time.Now().In(loc))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, checkoutResponse{
			Success: true,
			Message: order.Message,
			URL:     order.URL,
		})
	}
}

// cartFromLines replays the snapshot through the cart engine so the
// variant pricing and line-merging rules apply uniformly.
func cartFromLines(lines []orderLineRequest) (*cart.Cart, error) {
	c := cart.New()
	for _, l := range lines {
		v, err := cart.ParseVariant(l.Variant)
		if err != nil {
			return nil, err
		}
		base := decimal.NewFromFloat(l.BasePrice)
		for i := 0; i < l.Quantity; i++ {
			c.AddLine(l.ItemID, l.ItemName, v, base)
		}
	}
	return c, nil
}

func newQuoteResponse(c *cart.Cart) quoteResponse {
	lines := c.Lines()
	out := quoteResponse{
		Lines: make([]quotedLine, 0, len(lines)),
		Total: c.Total(),
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, quotedLine{
			ItemID:      l.ItemID,
			Description: l.Description(),
			Variant:     string(l.Variant),
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
			Subtotal:    l.Subtotal(),
		})
	}
	return out
}
