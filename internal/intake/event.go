package intake

import "time"

// Item is a single line of an upstream order event.
type Item struct {
	Name      string
	Quantity  int
	UnitPrice float64
}

// Event is a single upstream order event.
type Event struct {
	EventID       string
	OrderID       string
	Status        string
	CustomerName  string
	CustomerPhone string
	Address       string
	PrepMinutes   int
	Items         []Item
	CreatedAt     time.Time
}

// DedupKey identifies the event for idempotent processing. Upstream event
// IDs win; order IDs cover producers that do not send one.
func (e Event) DedupKey() string {
	if e.EventID != "" {
		return e.EventID
	}
	return e.OrderID
}
