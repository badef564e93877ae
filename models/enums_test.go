package models

import (
	"testing"

	"github.com/masaladesk/restro_backend/utils"
)

func TestParseOrderStatus(t *testing.T) {
	for _, s := range []string{"RECEIVED", "PREPARING", "READY", "COMPLETED", "CANCELLED", "ARCHIVED"} {
		if _, err := ParseOrderStatus(s); err != nil {
			t.Fatalf("ParseOrderStatus(%q): %v", s, err)
		}
	}
	_, err := ParseOrderStatus("DELIVERED")
	if err == nil {
		t.Fatal("expected error for unknown status")
	}
	if !utils.IsValidationError(err) {
		t.Fatal("unknown status must be a validation error")
	}
}

func TestOrderStatusIsTerminal(t *testing.T) {
	if !OrderStatusCompleted.IsTerminal() || !OrderStatusCancelled.IsTerminal() {
		t.Fatal("completed/cancelled must be terminal")
	}
	for _, s := range []OrderStatus{OrderStatusReceived, OrderStatusPreparing, OrderStatusReady, OrderStatusArchived} {
		if s.IsTerminal() {
			t.Fatalf("%s must not be terminal", s)
		}
	}
}

func TestParseStockLogType(t *testing.T) {
	if _, err := ParseStockLogType("IN"); err != nil {
		t.Fatalf("IN: %v", err)
	}
	if _, err := ParseStockLogType("OUT"); err != nil {
		t.Fatalf("OUT: %v", err)
	}
	if _, err := ParseStockLogType("in"); err == nil {
		t.Fatal("lowercase must be rejected")
	}
}

func TestParseInventoryUnit(t *testing.T) {
	for _, s := range []string{"kg", "ltr", "pcs", "packets"} {
		if _, err := ParseInventoryUnit(s); err != nil {
			t.Fatalf("ParseInventoryUnit(%q): %v", s, err)
		}
	}
	if _, err := ParseInventoryUnit("grams"); err == nil {
		t.Fatal("expected error for unknown unit")
	}
}
