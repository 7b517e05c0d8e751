package domain

import "regexp"

// Partner represents a delivery partner. Invariant: CurrentOrderID != nil
// implies Available == false, and a partner holds at most one current order.
type Partner struct {
	ID              string
	Name            string
	Phone           string
	Available       bool
	Active          bool
	CurrentOrderID  *string
	CompletedOrders int64
}

// Assignable reports whether the partner can take a new order.
func (p *Partner) Assignable() bool {
	return p.Active && p.Available && p.CurrentOrderID == nil
}

// Busy reports whether the partner currently holds an order.
func (p *Partner) Busy() bool {
	return p.CurrentOrderID != nil
}

// rePhone is a regex to validate phone numbers
var rePhone = regexp.MustCompile(`^\+[0-9]{10,14}$`)

// ValidatePhone validates the phone number format
func ValidatePhone(s string) bool {
	return rePhone.MatchString(s)
}
