package fanout

import "time"

// Kind tags an event. The set is closed: every externally observable state
// change maps to exactly one of these.
type Kind string

// Event kinds emitted by the dispatch core.
const (
	KindOrderCreated               Kind = "OrderCreated"
	KindOrderAssigned              Kind = "OrderAssigned"
	KindOrderStatusUpdated         Kind = "OrderStatusUpdated"
	KindDeliveryCompleted          Kind = "DeliveryCompleted"
	KindPartnerAvailabilityChanged Kind = "PartnerAvailabilityChanged"
)

// Event is a single state-change notification delivered to observer groups.
type Event struct {
	Kind      Kind      `json:"kind"`
	OrderID   string    `json:"order_id,omitempty"`
	PartnerID string    `json:"partner_id,omitempty"`
	Status    string    `json:"status,omitempty"`
	Available *bool     `json:"available,omitempty"`
	At        time.Time `json:"at"`
	Summary   string    `json:"summary"`
}

// GroupManagers is the role group every manager observer joins.
const GroupManagers = "managers"

// PartnerGroup returns the canonical personal group name for a partner.
func PartnerGroup(partnerID string) string {
	return "partner:" + partnerID
}
