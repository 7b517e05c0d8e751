package domain

import (
	"testing"
	"time"
)

func TestTotal(t *testing.T) {
	t.Parallel()

	items := []Item{
		{Name: "Pizza", Quantity: 2, UnitPrice: 9.5},
		{Name: "Cola", Quantity: 3, UnitPrice: 1.5},
	}
	if got := Total(items); got != 23.5 {
		t.Fatalf("expected total 23.5, got %v", got)
	}
	if got := Total(nil); got != 0 {
		t.Fatalf("expected zero total for no items, got %v", got)
	}
}

func TestOrder_StampStatus_WriteOnce(t *testing.T) {
	t.Parallel()

	o := &Order{Status: StatusPrep}
	first := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	o.StampStatus(StatusPicked, first)
	o.StampStatus(StatusPicked, second)

	if o.PickedAt == nil || !o.PickedAt.Equal(first) {
		t.Fatalf("expected picked stamp %v kept, got %v", first, o.PickedAt)
	}
	if o.OnRouteAt != nil || o.DeliveredAt != nil {
		t.Fatal("unrelated stamps must stay nil")
	}
}

func TestPartner_Assignable(t *testing.T) {
	t.Parallel()

	orderID := "o1"
	cases := []struct {
		name string
		p    Partner
		want bool
	}{
		{"ready", Partner{Active: true, Available: true}, true},
		{"inactive", Partner{Active: false, Available: true}, false},
		{"unavailable", Partner{Active: true, Available: false}, false},
		{"busy", Partner{Active: true, Available: true, CurrentOrderID: &orderID}, false},
	}
	for _, c := range cases {
		if got := c.p.Assignable(); got != c.want {
			t.Fatalf("%s: expected assignable=%v, got %v", c.name, c.want, got)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	t.Parallel()

	if !ValidatePhone("+79991234567") {
		t.Fatal("expected valid phone")
	}
	if ValidatePhone("79991234567") || ValidatePhone("+7abc") || ValidatePhone("") {
		t.Fatal("expected invalid phone rejected")
	}
}
