package cart

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/lucasmendez/pizzeria-backend/pkg/errors"
)

// Variant states whether a line is a whole or half pizza.
type Variant string

const (
	VariantWhole Variant = "whole"
	VariantHalf  Variant = "half"
)

// halfFactor is the house rule: a half pizza costs 60% of the whole,
// rounded to the nearest peso.
var halfFactor = decimal.RequireFromString("0.6")

// ParseVariant accepts the API's variant spelling.
func ParseVariant(value string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(value))) {
	case VariantWhole:
		return VariantWhole, nil
	case VariantHalf:
		return VariantHalf, nil
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("variante inválida %q", value))
}

// Label renders the variant the way the order ticket shows it.
func (v Variant) Label() string {
	if v == VariantHalf {
		return "Media"
	}
	return "Entera"
}

// UnitPrice applies the variant pricing rule to a base (whole) price.
func UnitPrice(v Variant, basePrice decimal.Decimal) decimal.Decimal {
	if v == VariantHalf {
		return basePrice.Mul(halfFactor).Round(0)
	}
	return basePrice
}

// Line is one cart entry. ItemID is the catalog slug captured at add
// time; ItemName is kept for display only, identity goes by id when one
// is present.
type Line struct {
	ItemID    string
	ItemName  string
	Variant   Variant
	UnitPrice decimal.Decimal
	Quantity  int
}

// Description renders the line the way the menu and the order ticket
// label it, e.g. "Napolitana (Media)".
func (l Line) Description() string {
	return fmt.Sprintf("%s (%s)", l.ItemName, l.Variant.Label())
}

// Subtotal is unit price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l Line) sameIdentity(other Line) bool {
	if l.Variant != other.Variant {
		return false
	}
	if l.ItemID != "" && other.ItemID != "" {
		return l.ItemID == other.ItemID
	}
	return l.ItemName == other.ItemName
}

// Cart is the in-memory order under construction. It trusts the prices
// it is given and never consults the catalog; the rendering layer owns
// that lookup.
type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// AddLine prices the variant off the supplied base price and either
// increments the quantity of the matching line or appends a new one
// with quantity 1.
func (c *Cart) AddLine(itemID, itemName string, v Variant, basePrice decimal.Decimal) {
	line := Line{
		ItemID:    itemID,
		ItemName:  itemName,
		Variant:   v,
		UnitPrice: UnitPrice(v, basePrice),
		Quantity:  1,
	}
	for i := range c.lines {
		if c.lines[i].sameIdentity(line) {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, line)
}

// ChangeQuantity adds delta to the line's quantity, removing the line
// when it drops to zero or below. An out-of-range index is a no-op.
func (c *Cart) ChangeQuantity(index, delta int) {
	if index < 0 || index >= len(c.lines) {
		return
	}
	c.lines[index].Quantity += delta
	if c.lines[index].Quantity <= 0 {
		c.RemoveLine(index)
	}
}

// RemoveLine drops the line at index. Subsequent indices shift; callers
// re-fetch indices after any mutation.
func (c *Cart) RemoveLine(index int) {
	if index < 0 || index >= len(c.lines) {
		return
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Len reports the number of lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Lines returns a copy of the current lines.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Total recomputes the sum of line subtotals. Never cached: the cart
// has no state beyond its lines.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
