package handlers

import "time"

type itemDTO struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type createOrderRequest struct {
	Items         []itemDTO `json:"items"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	Address       string    `json:"address"`
	PrepMinutes   int       `json:"prep_minutes"`
}

type orderDTO struct {
	ID            string     `json:"id"`
	Status        string     `json:"status"`
	PartnerID     *string    `json:"partner_id,omitempty"`
	Items         []itemDTO  `json:"items"`
	TotalAmount   float64    `json:"total_amount"`
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone"`
	Address       string     `json:"address"`
	PrepMinutes   int        `json:"prep_minutes"`
	CreatedAt     time.Time  `json:"created_at"`
	AssignedAt    *time.Time `json:"assigned_at,omitempty"`
	PickedAt      *time.Time `json:"picked_at,omitempty"`
	OnRouteAt     *time.Time `json:"on_route_at,omitempty"`
	DeliveredAt   *time.Time `json:"delivered_at,omitempty"`
}

type assignOrderRequest struct {
	PartnerID string `json:"partner_id"`
}

type updateStatusRequest struct {
	Status    string `json:"status"`
	PartnerID string `json:"partner_id"`
}

type registerPartnerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type partnerDTO struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Phone           string  `json:"phone"`
	Available       bool    `json:"available"`
	Active          bool    `json:"active"`
	CurrentOrderID  *string `json:"current_order_id,omitempty"`
	CompletedOrders int64   `json:"completed_orders"`
}

type setAvailabilityRequest struct {
	Available *bool `json:"available"`
}
