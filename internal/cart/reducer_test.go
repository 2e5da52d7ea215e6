package cart

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func line(id uuid.UUID, name string) Line {
	return Line{
		ProductID: id,
		Name:      name,
		Price:     decimal.NewFromInt(100),
		SellerID:  uuid.New(),
	}
}

func TestApplyAddNewItem(t *testing.T) {
	id := uuid.New()
	next := Apply(Empty(), Action{Type: ActionAddItem, Item: line(id, "Mug")})

	if len(next.Items) != 1 {
		t.Fatalf("expected one line, got %d", len(next.Items))
	}
	if next.Items[0].Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", next.Items[0].Quantity)
	}
	if next.ItemCount != 1 {
		t.Fatalf("expected item count 1, got %d", next.ItemCount)
	}
}

func TestApplyAddIgnoresInputQuantity(t *testing.T) {
	id := uuid.New()
	item := line(id, "Mug")
	item.Quantity = 99

	next := Apply(Empty(), Action{Type: ActionAddItem, Item: item})
	if next.Items[0].Quantity != 1 {
		t.Fatalf("input quantity must be ignored, got %d", next.Items[0].Quantity)
	}
}

func TestApplyDuplicateAddMerges(t *testing.T) {
	id := uuid.New()
	state := Empty()
	state = Apply(state, Action{Type: ActionAddItem, Item: line(id, "Mug")})
	state = Apply(state, Action{Type: ActionAddItem, Item: line(id, "Mug")})

	if len(state.Items) != 1 {
		t.Fatalf("duplicate add must merge into one line, got %d lines", len(state.Items))
	}
	if state.Items[0].Quantity != 2 || state.ItemCount != 2 {
		t.Fatalf("expected quantity 2 / count 2, got %d / %d", state.Items[0].Quantity, state.ItemCount)
	}
}

func TestApplyThreeAddsOneRemove(t *testing.T) {
	id := uuid.New()
	state := Empty()
	for i := 0; i < 3; i++ {
		state = Apply(state, Action{Type: ActionAddItem, Item: line(id, "Mug")})
	}
	state = Apply(state, Action{Type: ActionRemoveItem, Item: Line{ProductID: id}})

	if len(state.Items) != 1 || state.Items[0].Quantity != 2 {
		t.Fatalf("expected single line with quantity 2, got %+v", state.Items)
	}
	if state.ItemCount != 2 {
		t.Fatalf("expected item count 2, got %d", state.ItemCount)
	}
}

func TestApplyAddRemoveRoundTrip(t *testing.T) {
	existing := uuid.New()
	fresh := uuid.New()
	prior := Apply(Empty(), Action{Type: ActionAddItem, Item: line(existing, "Mug")})
	prior = Apply(prior, Action{Type: ActionAddItem, Item: line(existing, "Mug")})

	// Product not yet in the cart: add then remove restores the state.
	next := Apply(prior, Action{Type: ActionAddItem, Item: line(fresh, "Lamp")})
	next = Apply(next, Action{Type: ActionRemoveItem, Item: Line{ProductID: fresh}})
	if !reflect.DeepEqual(next, prior) {
		t.Fatalf("fresh-item round trip diverged:\n before %+v\n after  %+v", prior, next)
	}

	// Product already in the cart: quantity bumps up and back down.
	next = Apply(prior, Action{Type: ActionAddItem, Item: line(existing, "Mug")})
	next = Apply(next, Action{Type: ActionRemoveItem, Item: Line{ProductID: existing}})
	if !reflect.DeepEqual(next, prior) {
		t.Fatalf("existing-item round trip diverged:\n before %+v\n after  %+v", prior, next)
	}
}

func TestApplyRemoveDeletesLineAtOne(t *testing.T) {
	id := uuid.New()
	state := Apply(Empty(), Action{Type: ActionAddItem, Item: line(id, "Mug")})
	state = Apply(state, Action{Type: ActionRemoveItem, Item: Line{ProductID: id}})

	if len(state.Items) != 0 {
		t.Fatalf("line at quantity 1 must be deleted on remove, got %+v", state.Items)
	}
	if state.ItemCount != 0 {
		t.Fatalf("expected item count 0, got %d", state.ItemCount)
	}
}

func TestApplyRemoveAbsentIsNoOp(t *testing.T) {
	id := uuid.New()
	state := Apply(Empty(), Action{Type: ActionAddItem, Item: line(id, "Mug")})

	next := Apply(state, Action{Type: ActionRemoveItem, Item: Line{ProductID: uuid.New()}})
	if len(next.Items) != 1 || next.ItemCount != 1 {
		t.Fatalf("remove of absent product must not change state, got %+v", next)
	}
}

func TestApplyClear(t *testing.T) {
	state := Empty()
	for i := 0; i < 4; i++ {
		state = Apply(state, Action{Type: ActionAddItem, Item: line(uuid.New(), "X")})
	}

	next := Apply(state, Action{Type: ActionClear})
	if len(next.Items) != 0 || next.ItemCount != 0 {
		t.Fatalf("clear must empty the cart, got %+v", next)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	id := uuid.New()
	state := Apply(Empty(), Action{Type: ActionAddItem, Item: line(id, "Mug")})
	before := state.Items[0].Quantity

	_ = Apply(state, Action{Type: ActionAddItem, Item: line(id, "Mug")})
	_ = Apply(state, Action{Type: ActionRemoveItem, Item: Line{ProductID: id}})
	_ = Apply(state, Action{Type: ActionClear})

	if state.Items[0].Quantity != before || state.ItemCount != 1 {
		t.Fatalf("input state was mutated: %+v", state)
	}
}

func TestApplyInvariantsUnderRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	products := make([]uuid.UUID, 5)
	for i := range products {
		products[i] = uuid.New()
	}

	state := Empty()
	for step := 0; step < 500; step++ {
		id := products[rng.Intn(len(products))]
		if rng.Intn(3) == 0 {
			state = Apply(state, Action{Type: ActionRemoveItem, Item: Line{ProductID: id}})
		} else {
			state = Apply(state, Action{Type: ActionAddItem, Item: line(id, "P")})
		}

		seen := map[uuid.UUID]bool{}
		total := 0
		for _, l := range state.Items {
			if seen[l.ProductID] {
				t.Fatalf("step %d: duplicate line for product %s", step, l.ProductID)
			}
			seen[l.ProductID] = true
			if l.Quantity <= 0 {
				t.Fatalf("step %d: retained non-positive quantity %d", step, l.Quantity)
			}
			total += l.Quantity
		}
		if state.ItemCount != total {
			t.Fatalf("step %d: item count %d != quantity sum %d", step, state.ItemCount, total)
		}
	}
}

func TestApplyUnknownActionReturnsStateUnchanged(t *testing.T) {
	state := Apply(Empty(), Action{Type: ActionAddItem, Item: line(uuid.New(), "Mug")})
	next := Apply(state, Action{Type: ActionType("bogus")})

	if next.ItemCount != state.ItemCount || len(next.Items) != len(state.Items) {
		t.Fatalf("unknown action must be identity, got %+v", next)
	}
}
