package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line is one product entry in a cart. Price, name, image, and seller are
// display snapshots; checkout re-reads the authoritative values.
type Line struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	SellerID  uuid.UUID       `json:"seller_id"`
	Quantity  int             `json:"quantity"`
}

// State is a cart snapshot. ItemCount is derived and always equals the
// sum of line quantities.
type State struct {
	Items     []Line `json:"items"`
	ItemCount int    `json:"item_count"`
}

// ActionType enumerates the cart transitions.
type ActionType string

const (
	ActionAddItem    ActionType = "add_item"
	ActionRemoveItem ActionType = "remove_item"
	ActionClear      ActionType = "clear"
)

// Action describes a single cart transition. For AddItem the Item carries
// the product snapshot; its Quantity field is ignored and each add counts
// as one unit. For RemoveItem only Item.ProductID is consulted.
type Action struct {
	Type ActionType
	Item Line
}

// Empty returns the zero cart.
func Empty() State {
	return State{Items: []Line{}}
}

// Apply is a pure reducer: it never mutates its input and returns the
// next state for the given action. Unknown actions return the state
// unchanged.
func Apply(state State, action Action) State {
	switch action.Type {
	case ActionAddItem:
		return addItem(state, action.Item)
	case ActionRemoveItem:
		return removeItem(state, action.Item.ProductID)
	case ActionClear:
		return Empty()
	default:
		return cloneState(state)
	}
}

func addItem(state State, item Line) State {
	next := cloneState(state)
	for i := range next.Items {
		if next.Items[i].ProductID == item.ProductID {
			next.Items[i].Quantity++
			next.ItemCount = countItems(next.Items)
			return next
		}
	}
	item.Quantity = 1
	next.Items = append(next.Items, item)
	next.ItemCount = countItems(next.Items)
	return next
}

func removeItem(state State, productID uuid.UUID) State {
	next := cloneState(state)
	for i := range next.Items {
		if next.Items[i].ProductID != productID {
			continue
		}
		if next.Items[i].Quantity <= 1 {
			next.Items = append(next.Items[:i], next.Items[i+1:]...)
		} else {
			next.Items[i].Quantity--
		}
		next.ItemCount = countItems(next.Items)
		return next
	}
	return next
}

func countItems(items []Line) int {
	total := 0
	for _, line := range items {
		total += line.Quantity
	}
	return total
}

func cloneState(state State) State {
	items := make([]Line, len(state.Items))
	copy(items, state.Items)
	return State{Items: items, ItemCount: state.ItemCount}
}
