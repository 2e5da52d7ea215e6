package helpers

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VerifiedLine is a cart line after re-verification: every field comes
// from the product row read at checkout time, never from the client.
type VerifiedLine struct {
	ProductID uuid.UUID
	SellerID  uuid.UUID
	Name      string
	UnitPrice decimal.Decimal
	Image     string
	Quantity  int
}

// LineTotal returns unit price times quantity.
func (l VerifiedLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// SellerGroup is the slice of verified lines destined for one order.
type SellerGroup struct {
	SellerID uuid.UUID
	Lines    []VerifiedLine
}

// GroupBySeller partitions lines into per-seller groups, preserving the
// order in which each seller first appears in the cart.
func GroupBySeller(lines []VerifiedLine) []SellerGroup {
	index := make(map[uuid.UUID]int, len(lines))
	groups := make([]SellerGroup, 0, len(lines))
	for _, line := range lines {
		pos, seen := index[line.SellerID]
		if !seen {
			index[line.SellerID] = len(groups)
			groups = append(groups, SellerGroup{SellerID: line.SellerID})
			pos = len(groups) - 1
		}
		groups[pos].Lines = append(groups[pos].Lines, line)
	}
	return groups
}

// GroupTotal sums the line totals of one seller group.
func GroupTotal(lines []VerifiedLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LineTotal())
	}
	return total
}

// GrandTotal sums across all lines, the amount charged upfront for
// online payments.
func GrandTotal(lines []VerifiedLine) decimal.Decimal {
	return GroupTotal(lines)
}
