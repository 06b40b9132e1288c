package enums

import "testing"

func TestOrderStatusParse(t *testing.T) {
	status, err := ParseOrderStatus("purchased")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != OrderStatusPurchased {
		t.Fatalf("unexpected status %q", status)
	}

	if _, err := ParseOrderStatus("Purchased"); err == nil {
		t.Fatal("parse should be exact-match")
	}
	if OrderStatus("delivered").IsValid() {
		t.Fatal("delivered is not a part order status")
	}
}

func TestUserRoleParse(t *testing.T) {
	role, err := ParseUserRole("warden")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role != UserRoleWarden {
		t.Fatalf("unexpected role %q", role)
	}
	if _, err := ParseUserRole("admin"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestTurnTaskStatusParse(t *testing.T) {
	for _, raw := range []string{"open", "in_progress", "done"} {
		status, err := ParseTurnTaskStatus(raw)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", raw, err)
		}
		if !status.IsValid() {
			t.Fatalf("parsed status %q should be valid", raw)
		}
	}
	if _, err := ParseTurnTaskStatus("closed"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
