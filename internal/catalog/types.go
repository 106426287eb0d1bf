package catalog

import (
	"github.com/shopspring/decimal"
)

// Prices serialize as JSON numbers, matching the documents the
// storefront already consumes.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Item is one catalog entry. Price fields are pointers because absence
// means "not yet configured", which the UI renders as a placeholder; it
// is not the same as zero.
type Item struct {
	WholePrice  *decimal.Decimal `json:"wholePrice,omitempty"`
	HalfPrice   *decimal.Decimal `json:"halfPrice,omitempty"`
	Ingredients string           `json:"ingredients,omitempty"`
	ImageRef    string           `json:"imageRef,omitempty"`
}

// Catalog maps an item's immutable slug to its record.
type Catalog map[string]Item

// ContactConfig is the single-record WhatsApp document.
type ContactConfig struct {
	ContactNumber string `json:"contactNumber"`
}

// ItemUpdate carries the admin-editable fields of an item. ImageRef is
// deliberately absent: image swaps go through SetItemImage so the
// price/ingredients path can never clobber a reference.
type ItemUpdate struct {
	WholePrice  decimal.Decimal
	HalfPrice   decimal.Decimal
	Ingredients string
}
