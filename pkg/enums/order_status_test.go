package enums

import "testing"

func TestOrderStatusForwardFlow(t *testing.T) {
	flow := []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered}

	for i := 0; i < len(flow)-1; i++ {
		if !flow[i].CanTransitionTo(flow[i+1]) {
			t.Fatalf("expected %s -> %s to be allowed", flow[i], flow[i+1])
		}
	}
}

func TestOrderStatusNoSkippingOrBacktracking(t *testing.T) {
	if OrderStatusPending.CanTransitionTo(OrderStatusShipped) {
		t.Fatal("pending must not skip straight to shipped")
	}
	if OrderStatusShipped.CanTransitionTo(OrderStatusConfirmed) {
		t.Fatal("shipped must not move back to confirmed")
	}
}

func TestOrderStatusCancellation(t *testing.T) {
	for _, from := range []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped} {
		if !from.CanTransitionTo(OrderStatusCancelled) {
			t.Fatalf("expected %s to be cancellable", from)
		}
	}
	if OrderStatusDelivered.CanTransitionTo(OrderStatusCancelled) {
		t.Fatal("delivered orders must not be cancellable")
	}
	if OrderStatusCancelled.CanTransitionTo(OrderStatusConfirmed) {
		t.Fatal("cancelled is terminal")
	}
}

func TestParseOrderStatus(t *testing.T) {
	if _, err := ParseOrderStatus("confirmed"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseOrderStatus("lost"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
