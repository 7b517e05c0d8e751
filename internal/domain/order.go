package domain

import "time"

// Item is a single order line.
type Item struct {
	Name      string
	Quantity  int
	UnitPrice float64
}

// Order represents a delivery order. PartnerID is nil until a partner is
// bound; each lifecycle timestamp is set exactly once, on the corresponding
// transition.
type Order struct {
	ID            string
	Items         []Item
	Status        OrderStatus
	PartnerID     *string
	TotalAmount   float64
	CustomerName  string
	CustomerPhone string
	Address       string
	PrepMinutes   int

	CreatedAt   time.Time
	AssignedAt  *time.Time
	PickedAt    *time.Time
	OnRouteAt   *time.Time
	DeliveredAt *time.Time
}

// Assigned reports whether the order has a partner bound to it.
func (o *Order) Assigned() bool {
	return o.PartnerID != nil
}

// Total computes the order amount from its items.
func Total(items []Item) float64 {
	var sum float64
	for _, it := range items {
		sum += float64(it.Quantity) * it.UnitPrice
	}
	return sum
}

// StampStatus records the timestamp for the status the order just entered.
// Stamps are write-once: an already set timestamp is left untouched.
func (o *Order) StampStatus(status OrderStatus, at time.Time) {
	switch status {
	case StatusPicked:
		if o.PickedAt == nil {
			o.PickedAt = &at
		}
	case StatusOnRoute:
		if o.OnRouteAt == nil {
			o.OnRouteAt = &at
		}
	case StatusDelivered:
		if o.DeliveredAt == nil {
			o.DeliveredAt = &at
		}
	}
}
