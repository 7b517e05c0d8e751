package domain

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

// Order lifecycle. Statuses only ever move forward, one step at a time:
// PREP -> PICKED -> ON_ROUTE -> DELIVERED.
const (
	StatusPrep      OrderStatus = "PREP"
	StatusPicked    OrderStatus = "PICKED"
	StatusOnRoute   OrderStatus = "ON_ROUTE"
	StatusDelivered OrderStatus = "DELIVERED"
)

// nextStatus maps each status to its single permitted successor.
// DELIVERED is terminal and has no entry.
var nextStatus = map[OrderStatus]OrderStatus{
	StatusPrep:    StatusPicked,
	StatusPicked:  StatusOnRoute,
	StatusOnRoute: StatusDelivered,
}

// Valid checks if the OrderStatus is a known lifecycle state.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPrep, StatusPicked, StatusOnRoute, StatusDelivered:
		return true
	}
	return false
}

// Next returns the single permitted successor status.
// ok is false for DELIVERED (terminal) and unknown statuses.
func (s OrderStatus) Next() (OrderStatus, bool) {
	n, ok := nextStatus[s]
	return n, ok
}

// CanTransition reports whether the order may move from s to target.
func (s OrderStatus) CanTransition(target OrderStatus) bool {
	n, ok := nextStatus[s]
	return ok && n == target
}

// Terminal reports whether no further transition is defined.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered
}
