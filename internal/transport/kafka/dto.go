package kafka

import (
	"strings"
	"time"

	"dispatch-platform-go/internal/intake"
)

// ItemDTO is a single order line on the wire.
type ItemDTO struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// EventDTO is the wire form of an upstream order event.
type EventDTO struct {
	EventID       string    `json:"event_id"`
	OrderID       string    `json:"order_id"`
	Status        string    `json:"status"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	Address       string    `json:"address"`
	PrepMinutes   int       `json:"prep_minutes"`
	Items         []ItemDTO `json:"items"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToDomain converts EventDTO to intake.Event.
func ToDomain(dto EventDTO) intake.Event {
	items := make([]intake.Item, 0, len(dto.Items))
	for _, it := range dto.Items {
		items = append(items, intake.Item{
			Name:      strings.TrimSpace(it.Name),
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return intake.Event{
		EventID:       strings.TrimSpace(dto.EventID),
		OrderID:       strings.TrimSpace(dto.OrderID),
		Status:        strings.TrimSpace(dto.Status),
		CustomerName:  strings.TrimSpace(dto.CustomerName),
		CustomerPhone: strings.TrimSpace(dto.CustomerPhone),
		Address:       strings.TrimSpace(dto.Address),
		PrepMinutes:   dto.PrepMinutes,
		Items:         items,
		CreatedAt:     dto.CreatedAt,
	}
}
