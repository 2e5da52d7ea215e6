package helpers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func verifiedLine(sellerID uuid.UUID, price string, qty int) VerifiedLine {
	return VerifiedLine{
		ProductID: uuid.New(),
		SellerID:  sellerID,
		Name:      "Item",
		UnitPrice: decimal.RequireFromString(price),
		Quantity:  qty,
	}
}

func TestGroupBySellerPreservesFirstAppearanceOrder(t *testing.T) {
	sellerA := uuid.New()
	sellerB := uuid.New()

	groups := GroupBySeller([]VerifiedLine{
		verifiedLine(sellerA, "100.00", 1),
		verifiedLine(sellerB, "50.00", 2),
		verifiedLine(sellerA, "25.00", 1),
	})

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].SellerID != sellerA || groups[1].SellerID != sellerB {
		t.Fatalf("expected first-appearance order [A, B], got [%s, %s]", groups[0].SellerID, groups[1].SellerID)
	}
	if len(groups[0].Lines) != 2 || len(groups[1].Lines) != 1 {
		t.Fatalf("unexpected group sizes %d/%d", len(groups[0].Lines), len(groups[1].Lines))
	}
}

func TestGroupBySellerEmpty(t *testing.T) {
	if groups := GroupBySeller(nil); len(groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(groups))
	}
}

func TestGroupTotal(t *testing.T) {
	sellerID := uuid.New()
	lines := []VerifiedLine{
		verifiedLine(sellerID, "599.00", 2),
		verifiedLine(sellerID, "49.50", 1),
	}

	want := decimal.RequireFromString("1247.50")
	if got := GroupTotal(lines); !got.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, got)
	}
}

func TestLineTotal(t *testing.T) {
	line := verifiedLine(uuid.New(), "33.33", 3)
	want := decimal.RequireFromString("99.99")
	if got := line.LineTotal(); !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}
