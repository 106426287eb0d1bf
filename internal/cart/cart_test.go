package cart

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestParseVariant(t *testing.T) {
	t.Parallel()

	if v, err := ParseVariant(" Whole "); err != nil || v != VariantWhole {
		t.Fatalf("expected whole, got %v %v", v, err)
	}
	if v, err := ParseVariant("half"); err != nil || v != VariantHalf {
		t.Fatalf("expected half, got %v %v", v, err)
	}
	if _, err := ParseVariant("quarter"); err == nil {
		t.Fatal("expected error for unknown variant")
	}
}

func TestUnitPriceHalfRounds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		base string
		want string
	}{
		{"8000", "4800"},
		{"8333", "5000"},
		{"9999", "5999"},
		{"0", "0"},
	}
	for _, tc := range cases {
		got := UnitPrice(VariantHalf, dec(tc.base))
		if !got.Equal(dec(tc.want)) {
			t.Fatalf("half of %s: expected %s, got %s", tc.base, tc.want, got)
		}
	}

	if got := UnitPrice(VariantWhole, dec("8333")); !got.Equal(dec("8333")) {
		t.Fatalf("whole price must pass through, got %s", got)
	}
}

func TestAddLineMergesByIdentity(t *testing.T) {
	t.Parallel()

	c := New()
	c.AddLine("napolitana", "Napolitana", VariantWhole, dec("8000"))
	c.AddLine("napolitana", "Napolitana", VariantWhole, dec("8000"))
	c.AddLine("napolitana", "Napolitana", VariantHalf, dec("8000"))

	if c.Len() != 2 {
		t.Fatalf("expected 2 lines, got %d", c.Len())
	}
	lines := c.Lines()
	if lines[0].Quantity != 2 {
		t.Fatalf("expected merged quantity 2, got %d", lines[0].Quantity)
	}
	if lines[1].Variant != VariantHalf || lines[1].Quantity != 1 {
		t.Fatalf("half line should stay separate: %+v", lines[1])
	}
}

func TestAddLineIdentityFallsBackToName(t *testing.T) {
	t.Parallel()

	c := New()
	c.AddLine("", "Fugazzeta", VariantWhole, dec("9000"))
	c.AddLine("", "Fugazzeta", VariantWhole, dec("9000"))
	if c.Len() != 1 || c.Lines()[0].Quantity != 2 {
		t.Fatalf("nameless-id lines with equal names must merge: %+v", c.Lines())
	}

	c.AddLine("fugazzeta", "Fugazzeta", VariantWhole, dec("9000"))
	if c.Len() != 1 || c.Lines()[0].Quantity != 3 {
		t.Fatalf("id on one side falls back to name identity: %+v", c.Lines())
	}
}

func TestChangeQuantityRemovesAtZero(t *testing.T) {
	t.Parallel()

	c := New()
	c.AddLine("muzzarella", "Muzzarella", VariantWhole, dec("7000"))
	c.AddLine("napolitana", "Napolitana", VariantWhole, dec("8000"))

	c.ChangeQuantity(0, 2)
	if c.Lines()[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", c.Lines()[0].Quantity)
	}

	c.ChangeQuantity(0, -3)
	if c.Len() != 1 {
		t.Fatalf("line at zero quantity must be removed, got %d lines", c.Len())
	}
	if c.Lines()[0].ItemID != "napolitana" {
		t.Fatalf("wrong line survived: %+v", c.Lines()[0])
	}

	c.ChangeQuantity(5, 1)
	if c.Len() != 1 {
		t.Fatal("out-of-range index must be a no-op")
	}
}

func TestRemoveLineShiftsIndices(t *testing.T) {
	t.Parallel()

	c := New()
	c.AddLine("a", "A", VariantWhole, dec("1000"))
	c.AddLine("b", "B", VariantWhole, dec("2000"))
	c.AddLine("c", "C", VariantWhole, dec("3000"))

	c.RemoveLine(1)
	lines := c.Lines()
	if len(lines) != 2 || lines[0].ItemID != "a" || lines[1].ItemID != "c" {
		t.Fatalf("unexpected lines after removal: %+v", lines)
	}

	c.RemoveLine(-1)
	c.RemoveLine(9)
	if c.Len() != 2 {
		t.Fatal("out-of-range removal must be a no-op")
	}
}

func TestTotalRecomputed(t *testing.T) {
	t.Parallel()

	c := New()
	c.AddLine("napolitana", "Napolitana", VariantWhole, dec("8000"))
	c.AddLine("muzzarella", "Muzzarella", VariantHalf, dec("6000"))
	c.AddLine("muzzarella", "Muzzarella", VariantHalf, dec("6000"))

	// 8000 + 2 * round(6000 * 0.6) = 8000 + 7200
	if got := c.Total(); !got.Equal(dec("15200")) {
		t.Fatalf("expected total 15200, got %s", got)
	}

	c.Clear()
	if c.Len() != 0 || !c.Total().Equal(decimal.Zero) {
		t.Fatalf("cleared cart must be empty with zero total, got %s", c.Total())
	}
}

func TestTotalMixedVariants(t *testing.T) {
	t.Parallel()

	// Two whole margheritas at 4500 plus one half napolitana priced at
	// round(4333 * 0.6) = 2600.
	c := New()
	c.AddLine("margherita", "Margherita", VariantWhole, dec("4500"))
	c.AddLine("margherita", "Margherita", VariantWhole, dec("4500"))
	c.AddLine("napolitana", "Napolitana", VariantHalf, dec("4333"))

	lines := c.Lines()
	if !lines[1].UnitPrice.Equal(dec("2600")) {
		t.Fatalf("expected half unit price 2600, got %s", lines[1].UnitPrice)
	}
	if got := c.Total(); !got.Equal(dec("11600")) {
		t.Fatalf("expected total 11600, got %s", got)
	}
}

func TestDescription(t *testing.T) {
	t.Parallel()

	whole := Line{ItemName: "Napolitana", Variant: VariantWhole}
	if got := whole.Description(); got != "Napolitana (Entera)" {
		t.Fatalf("unexpected description %q", got)
	}
	half := Line{ItemName: "Napolitana", Variant: VariantHalf}
	if got := half.Description(); got != "Napolitana (Media)" {
		t.Fatalf("unexpected description %q", got)
	}
}

func TestLinesReturnsCopy(t *testing.T) {
	t.Parallel()

	c := New()
	c.AddLine("a", "A", VariantWhole, dec("1000"))
	lines := c.Lines()
	lines[0].Quantity = 99
	if c.Lines()[0].Quantity != 1 {
		t.Fatal("mutating the returned slice must not touch the cart")
	}
}
